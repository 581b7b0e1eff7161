package scan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ecovolt/ewaste-backend/internal/vision"
)

// Profile is the device metadata derived from one annotation set. It is
// computed once per scan and never mutated.
type Profile struct {
	Type      string `json:"type"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Age       string `json:"age"`
	Condition string `json:"condition"`
}

const (
	unknownDevice = "Unknown Device"
	unknown       = "Unknown"
)

// Condition values, ordered from best to worst.
const (
	ConditionExcellent = "Excellent"
	ConditionGood      = "Good"
	ConditionFair      = "Fair"
	ConditionPoor      = "Poor"
)

// deviceTypeRules is an ordered rule table: the first label whose lowercased
// description contains any keyword of any type decides the type. The scan
// does not continue looking for a more specific match on later labels.
var deviceTypeRules = []struct {
	Type     string
	Keywords []string
}{
	{"Smartphone", []string{"smartphone", "mobile phone", "iphone", "android phone", "phone"}},
	{"Laptop", []string{"laptop", "notebook computer", "macbook"}},
	{"Desktop", []string{"desktop", "computer tower", "workstation"}},
	{"Tablet", []string{"tablet", "ipad"}},
	{"Monitor", []string{"monitor", "computer display", "lcd screen"}},
	{"Printer", []string{"printer", "photocopier", "scanner"}},
	{"Camera", []string{"camera", "dslr", "camcorder", "webcam"}},
	{"Television", []string{"television", "tv set", "flat screen"}},
	{"Audio", []string{"speaker", "headphone", "earphone", "audio equipment"}},
	{"Appliance", []string{"refrigerator", "washing machine", "microwave", "appliance"}},
}

// knownBrands is scanned against the raw text in this priority order with
// case-sensitive substring matching.
var knownBrands = []string{
	"Apple", "Samsung", "Dell", "HP", "Lenovo", "Asus", "Acer",
	"LG", "Sony", "Microsoft", "Google", "Huawei", "Xiaomi",
}

// modelPattern matches model designations like "XP-13", "Galaxy 21" or
// "Model A123". The first match in the text is used verbatim.
var modelPattern = regexp.MustCompile(`\b(?:Model\s+)?[A-Z]{1,4}-?\d{2,5}[A-Z]{0,2}\b|\b[A-Z][a-z]+\s\d{2,4}\b`)

// yearPattern matches any plausible manufacturing year in the text.
var yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

const maxDeviceAgeYears = 20

// conditionKeywordRules is the fallback used when no manufacturing year was
// found. Tiers are checked in this order (worst first); within a tier the
// labels are scanned in their original order and the first hit wins.
var conditionKeywordRules = []struct {
	Condition string
	Keywords  []string
}{
	{ConditionPoor, []string{"broken", "damaged", "cracked"}},
	{ConditionFair, []string{"scratched", "worn", "used"}},
	{ConditionExcellent, []string{"new", "mint", "perfect"}},
}

// ExtractProfile derives device metadata from an annotation set. It is a
// pure function of the set and the supplied clock; the clock is explicit so
// age inference is testable.
func ExtractProfile(set vision.AnnotationSet, now time.Time) Profile {
	p := Profile{
		Type:      inferType(set.Labels),
		Brand:     inferBrand(set.Text),
		Model:     inferModel(set.Text),
		Age:       unknown,
		Condition: unknown,
	}

	if ageYears, year, ok := inferAge(set.Text, now); ok {
		p.Age = fmt.Sprintf("%d years (%d)", ageYears, year)
		p.Condition = conditionFromAge(ageYears)
	} else {
		p.Condition = conditionFromLabels(set.Labels)
	}
	return p
}

func inferType(labels []vision.Label) string {
	for _, l := range labels {
		desc := strings.ToLower(l.Description)
		for _, rule := range deviceTypeRules {
			for _, kw := range rule.Keywords {
				if strings.Contains(desc, kw) {
					return rule.Type
				}
			}
		}
	}
	return unknownDevice
}

func inferBrand(text string) string {
	for _, brand := range knownBrands {
		if strings.Contains(text, brand) {
			return brand
		}
	}
	return unknown
}

func inferModel(text string) string {
	if m := modelPattern.FindString(text); m != "" {
		return m
	}
	return unknown
}

// inferAge finds the first 4-digit year in the text and converts it to an
// age in years. Ages outside [0, 20] are rejected as implausible.
func inferAge(text string, now time.Time) (ageYears, year int, ok bool) {
	m := yearPattern.FindString(text)
	if m == "" {
		return 0, 0, false
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0, 0, false
	}
	ageYears = now.Year() - year
	if ageYears < 0 || ageYears > maxDeviceAgeYears {
		return 0, 0, false
	}
	return ageYears, year, true
}

func conditionFromAge(ageYears int) string {
	switch {
	case ageYears <= 2:
		return ConditionExcellent
	case ageYears <= 4:
		return ConditionGood
	case ageYears <= 6:
		return ConditionFair
	default:
		return ConditionPoor
	}
}

func conditionFromLabels(labels []vision.Label) string {
	for _, rule := range conditionKeywordRules {
		for _, l := range labels {
			desc := strings.ToLower(l.Description)
			for _, kw := range rule.Keywords {
				if strings.Contains(desc, kw) {
					return rule.Condition
				}
			}
		}
	}
	return unknown
}
