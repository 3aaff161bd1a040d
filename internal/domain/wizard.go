package domain

import (
	"context"
	"time"
)

// ============================================================================
// Onboarding Wizard
// ============================================================================

// ExperienceLevel represents valid experience options (Step 1)
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "Beginner"
	ExperienceIntermediate ExperienceLevel = "Intermediate"
	ExperienceAdvanced     ExperienceLevel = "Advanced"
)

// ValidExperienceLevels returns all valid experience levels
func ValidExperienceLevels() []ExperienceLevel {
	return []ExperienceLevel{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}
}

// IsValid checks if the experience level is valid
func (l ExperienceLevel) IsValid() bool {
	for _, valid := range ValidExperienceLevels() {
		if l == valid {
			return true
		}
	}
	return false
}

// Gender represents valid gender options (Step 4)
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// ValidGenders returns all valid gender options
func ValidGenders() []Gender {
	return []Gender{GenderMale, GenderFemale}
}

// IsValid checks if the gender option is valid
func (g Gender) IsValid() bool {
	for _, valid := range ValidGenders() {
		if g == valid {
			return true
		}
	}
	return false
}

// Wizard steps form a strict linear order; no branching, no skipping.
const (
	StepExperience = 1
	StepAge        = 2
	StepBody       = 3
	StepGender     = 4

	StepCount = 4
)

// WizardForm holds the raw values collected step by step. Fields stay
// strings until handoff; the mobile form submits text input as-is.
type WizardForm struct {
	Experience string `json:"experience"`
	Age        string `json:"age"`
	Weight     string `json:"weight"`
	Height     string `json:"height"`
	Gender     string `json:"gender"`
}

// WizardState is the in-memory state of one onboarding flow. It is never
// persisted; abandoned flows are evicted after an idle TTL.
type WizardState struct {
	ID        string     `json:"id"`
	Step      int        `json:"step"`
	Completed bool       `json:"completed"`
	Form      WizardForm `json:"form"`
	UpdatedAt time.Time  `json:"-"`
}

type WizardStore interface {
	Put(ctx context.Context, state *WizardState) error
	// Get returns (nil, nil) when the wizard is unknown or expired.
	Get(ctx context.Context, id string) (*WizardState, error)
	Delete(ctx context.Context, id string) error
}

type WizardUsecase interface {
	Start(ctx context.Context) (*WizardState, error)
	// Advance merges the patch, validates the current step, and moves
	// forward; at the last step it marks the wizard completed instead of
	// producing a step beyond the end.
	Advance(ctx context.Context, id string, patch WizardForm) (*WizardState, error)
	// Retreat steps back one step; a no-op at step 1.
	Retreat(ctx context.Context, id string) (*WizardState, error)
	Get(ctx context.Context, id string) (*WizardState, error)
	// Consume returns the accumulated form of a completed wizard and
	// discards the state (single use handoff to registration).
	Consume(ctx context.Context, id string) (*WizardForm, error)
}

// ============================================================================
// Fitness Profile (persisted onboarding result)
// ============================================================================

type FitnessProfile struct {
	AccountID  string          `json:"account_id"`
	Experience ExperienceLevel `json:"experience"`
	Age        int             `json:"age"`
	WeightKg   float64         `json:"weight_kg"`
	Height     string          `json:"height"`
	Gender     Gender          `json:"gender"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type FitnessProfileRepository interface {
	Save(ctx context.Context, profile *FitnessProfile) error
	// GetByAccountID returns (nil, nil) when no profile exists.
	GetByAccountID(ctx context.Context, accountID string) (*FitnessProfile, error)
}
