package hydration

import "math"

type ActivityLevel string

const (
	ActivityLight    ActivityLevel = "light"
	ActivityModerate ActivityLevel = "moderate"
	ActivityHeavy    ActivityLevel = "heavy"
)

const (
	// DefaultTargetML is used when a user has never saved settings.
	DefaultTargetML = 2000

	// Stored targets must stay inside this range.
	MinStoredTargetML = 500
	MaxStoredTargetML = 5000

	// Recommendations are clamped to this narrower safe range.
	MinRecommendedML = 1500
	MaxRecommendedML = 4000

	defaultWeightKG = 70
	mlPerKG         = 30
)

// Settings holds a user's hydration preferences as stored in user_settings.
type Settings struct {
	HydrationTargetML int           `json:"hydration_target_ml"`
	AdditionalML      int           `json:"additional_ml"`
	WeightKG          *float64      `json:"weight_kg,omitempty"`
	ActivityLevel     ActivityLevel `json:"activity_level"`
	WorksIndoors      bool          `json:"works_indoors"`
}

// ResolveStoredTarget returns the user's saved daily target, or the default
// when no settings row exists yet.
func ResolveStoredTarget(settings *Settings) int {
	if settings == nil || settings.HydrationTargetML <= 0 {
		return DefaultTargetML
	}
	return settings.HydrationTargetML
}

// RecommendTarget computes an advisory daily target from body weight and
// working conditions. It never overwrites the stored target; applying the
// recommendation is an explicit user action.
func RecommendTarget(weightKG *float64, activity ActivityLevel, worksIndoors bool) int {
	weight := float64(defaultWeightKG)
	if weightKG != nil && *weightKG > 0 {
		weight = *weightKG
	}

	base := mlPerKG * weight

	multiplier := 1.2
	switch activity {
	case ActivityLight:
		multiplier = 1.0
	case ActivityModerate:
		multiplier = 1.2
	case ActivityHeavy:
		multiplier = 1.5
	}

	if !worksIndoors {
		multiplier += 0.2
	}

	target := int(math.Round(base * multiplier))
	if target < MinRecommendedML {
		return MinRecommendedML
	}
	if target > MaxRecommendedML {
		return MaxRecommendedML
	}
	return target
}
