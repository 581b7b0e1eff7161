package scan

import (
	"fmt"
	"testing"
	"time"

	"github.com/ecovolt/ewaste-backend/internal/vision"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func TestExtractProfile_AgeToConditionBoundaries(t *testing.T) {
	tests := []struct {
		ageYears  int
		condition string
	}{
		{2, ConditionExcellent},
		{3, ConditionGood},
		{5, ConditionFair},
		{7, ConditionPoor},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d years", tt.ageYears), func(t *testing.T) {
			year := testNow.Year() - tt.ageYears
			set := vision.AnnotationSet{Text: fmt.Sprintf("%d", year)}

			p := ExtractProfile(set, testNow)

			assert.Equal(t, fmt.Sprintf("%d years (%d)", tt.ageYears, year), p.Age)
			assert.Equal(t, tt.condition, p.Condition)
		})
	}
}

func TestExtractProfile_ImplausibleYearsAreRejected(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"future year", "2031"},
		{"too old", "1998"},
		{"no year", "serial 123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ExtractProfile(vision.AnnotationSet{Text: tt.text}, testNow)
			assert.Equal(t, "Unknown", p.Age)
		})
	}
}

func TestExtractProfile_TextExtraction(t *testing.T) {
	set := vision.AnnotationSet{Text: "Model A123\nSamsung\n2016"}

	p := ExtractProfile(set, testNow)

	assert.Equal(t, "Samsung", p.Brand)
	assert.Equal(t, "Model A123", p.Model)
	assert.Equal(t, "10 years (2016)", p.Age)
	assert.Equal(t, ConditionPoor, p.Condition)
}

func TestExtractProfile_BrandPriorityOrder(t *testing.T) {
	// Both brands appear; the fixed priority order decides.
	p := ExtractProfile(vision.AnnotationSet{Text: "Sony panel inside this LG TV"}, testNow)
	assert.Equal(t, "LG", p.Brand)
}

func TestExtractProfile_BrandMatchIsCaseSensitive(t *testing.T) {
	p := ExtractProfile(vision.AnnotationSet{Text: "SAMSUNG"}, testNow)
	assert.Equal(t, "Unknown", p.Brand)
}

func TestExtractProfile_TypeFirstLabelWins(t *testing.T) {
	set := vision.AnnotationSet{
		Labels: []vision.Label{
			{Description: "Mobile phone", Score: 80},
			{Description: "Laptop", Score: 95},
		},
	}
	p := ExtractProfile(set, testNow)
	// The first matching label decides even when a later label scores higher.
	assert.Equal(t, "Smartphone", p.Type)
}

func TestExtractProfile_UnknownType(t *testing.T) {
	set := vision.AnnotationSet{
		Labels: []vision.Label{{Description: "Cardboard box", Score: 90}},
	}
	p := ExtractProfile(set, testNow)
	assert.Equal(t, "Unknown Device", p.Type)
}

func TestExtractProfile_ConditionFallbackChecksPoorTierFirst(t *testing.T) {
	set := vision.AnnotationSet{
		Labels: []vision.Label{
			{Description: "Scratched surface", Score: 80},
			{Description: "Broken screen", Score: 75},
		},
	}
	p := ExtractProfile(set, testNow)
	// The Poor tier is checked before Fair, so "broken" wins even though the
	// "scratched" label comes first.
	assert.Equal(t, ConditionPoor, p.Condition)
}

func TestExtractProfile_ConditionFallbackTiers(t *testing.T) {
	tests := []struct {
		label     string
		condition string
	}{
		{"Cracked casing", ConditionPoor},
		{"Worn edges", ConditionFair},
		{"Mint packaging", ConditionExcellent},
		{"Photograph", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			set := vision.AnnotationSet{Labels: []vision.Label{{Description: tt.label, Score: 80}}}
			p := ExtractProfile(set, testNow)
			assert.Equal(t, tt.condition, p.Condition)
		})
	}
}

func TestExtractProfile_AgeConditionOverridesLabels(t *testing.T) {
	set := vision.AnnotationSet{
		Labels: []vision.Label{{Description: "Broken screen", Score: 80}},
		Text:   fmt.Sprintf("%d", testNow.Year()-1),
	}
	p := ExtractProfile(set, testNow)
	// A resolved age takes precedence over condition keywords.
	assert.Equal(t, ConditionExcellent, p.Condition)
}
