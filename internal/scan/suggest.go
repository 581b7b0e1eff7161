package scan

import (
	"sort"

	"github.com/ecovolt/ewaste-backend/internal/vision"
)

// Disposal actions.
const (
	ActionRecycle   = "Recycle"
	ActionRefurbish = "Refurbish"
	ActionDonate    = "Donate"
)

// Priorities, used only for ordering.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

var priorityWeight = map[string]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// Center is one candidate facility for a disposal action. The candidates are
// a static lookup per action; they are not derived from the user's location.
type Center struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Distance string `json:"distance"`
}

// Suggestion is one ranked disposal recommendation.
type Suggestion struct {
	Action   string   `json:"action"`
	Priority string   `json:"priority"`
	Centers  []Center `json:"centers"`
}

var centersByAction = map[string][]Center{
	ActionRecycle: {
		{ID: "rc-01", Name: "GreenCycle Recycling Hub", Distance: "2.3 km"},
		{ID: "rc-02", Name: "EcoWaste Processing Center", Distance: "4.1 km"},
		{ID: "rc-03", Name: "City E-Waste Depot", Distance: "5.8 km"},
	},
	ActionRefurbish: {
		{ID: "rf-01", Name: "TechRevive Repair Lab", Distance: "3.2 km"},
		{ID: "rf-02", Name: "Second Life Electronics", Distance: "6.0 km"},
	},
	ActionDonate: {
		{ID: "dn-01", Name: "Digital Bridge Foundation", Distance: "1.9 km"},
		{ID: "dn-02", Name: "Community Tech Drive", Distance: "3.7 km"},
		{ID: "dn-03", Name: "Schools Connect Program", Distance: "7.4 km"},
	},
}

// Suggest produces the ranked disposal recommendations for a device.
// Recycle is always present; Refurbish and Donate are included only when the
// condition warrants them. The result is stable-sorted by descending priority
// weight, so equal-priority entries keep their append order (Recycle,
// Refurbish, Donate). The labels are accepted for interface symmetry with
// the other pipeline stages but do not affect the ranking.
func Suggest(profile Profile, labels []vision.Label) []Suggestion {
	var suggestions []Suggestion

	recyclePriority := PriorityMedium
	if profile.Condition == ConditionPoor {
		recyclePriority = PriorityHigh
	}
	suggestions = append(suggestions, Suggestion{
		Action:   ActionRecycle,
		Priority: recyclePriority,
		Centers:  centersByAction[ActionRecycle],
	})

	switch profile.Condition {
	case ConditionExcellent, ConditionGood, ConditionFair:
		refurbishPriority := PriorityMedium
		if profile.Condition == ConditionGood || profile.Condition == ConditionExcellent {
			refurbishPriority = PriorityHigh
		}
		suggestions = append(suggestions, Suggestion{
			Action:   ActionRefurbish,
			Priority: refurbishPriority,
			Centers:  centersByAction[ActionRefurbish],
		})
	}

	if profile.Condition == ConditionExcellent || profile.Condition == ConditionGood {
		suggestions = append(suggestions, Suggestion{
			Action:   ActionDonate,
			Priority: PriorityMedium,
			Centers:  centersByAction[ActionDonate],
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return priorityWeight[suggestions[i].Priority] > priorityWeight[suggestions[j].Priority]
	})
	return suggestions
}
