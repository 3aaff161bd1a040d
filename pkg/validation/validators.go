package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	experienceLevels = map[string]bool{
		"Beginner":     true,
		"Intermediate": true,
		"Advanced":     true,
	}

	focusAreas = map[string]bool{
		"chest":     true,
		"back":      true,
		"legs":      true,
		"shoulders": true,
		"arms":      true,
		"core":      true,
		"cardio":    true,
		"full_body": true,
	}
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("experience_level", ExperienceLevel)
	_ = v.RegisterValidation("focus_area", FocusArea)
	_ = v.RegisterValidation("height_text", HeightText)
}

// ExperienceLevel validates the onboarding experience enum
func ExperienceLevel(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return experienceLevels[val]
}

// FocusArea validates a workout plan focus area key
func FocusArea(fl validator.FieldLevel) bool {
	return focusAreas[fl.Field().String()]
}

// HeightText validates the free-text height field. Units are user-chosen
// (cm, ft/in), so only emptiness and length are checked.
func HeightText(fl validator.FieldLevel) bool {
	val := strings.TrimSpace(fl.Field().String())
	if val == "" {
		return true
	}
	return len(val) <= 20
}
