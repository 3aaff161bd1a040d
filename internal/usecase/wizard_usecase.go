package usecase

import (
	"context"
	"strconv"
	"strings"

	"elitefit-backend/internal/domain"
	"elitefit-backend/pkg/apperror"

	"github.com/google/uuid"
)

type wizardUsecase struct {
	store domain.WizardStore
}

func NewWizardUsecase(store domain.WizardStore) domain.WizardUsecase {
	return &wizardUsecase{store: store}
}

func (u *wizardUsecase) Start(ctx context.Context) (*domain.WizardState, error) {
	state := &domain.WizardState{
		ID:   uuid.NewString(),
		Step: domain.StepExperience,
	}
	if err := u.store.Put(ctx, state); err != nil {
		return nil, apperror.Internal(err)
	}
	return state, nil
}

func (u *wizardUsecase) Advance(ctx context.Context, id string, patch domain.WizardForm) (*domain.WizardState, error) {
	state, err := u.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if state.Completed {
		return nil, apperror.Conflict("Onboarding is already completed")
	}

	mergeForm(&state.Form, patch)

	if err := validateStep(state.Step, &state.Form); err != nil {
		// Keep what the user typed even when the step does not validate
		_ = u.store.Put(ctx, state)
		return nil, err
	}

	if state.Step < domain.StepCount {
		state.Step++
	} else {
		// Last step passed: completion handoff, never a step beyond the end
		state.Completed = true
	}

	if err := u.store.Put(ctx, state); err != nil {
		return nil, apperror.Internal(err)
	}
	return state, nil
}

func (u *wizardUsecase) Retreat(ctx context.Context, id string) (*domain.WizardState, error) {
	state, err := u.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if state.Completed {
		return nil, apperror.Conflict("Onboarding is already completed")
	}

	// No-op at step 1; steps never go negative
	if state.Step > domain.StepExperience {
		state.Step--
	}

	if err := u.store.Put(ctx, state); err != nil {
		return nil, apperror.Internal(err)
	}
	return state, nil
}

func (u *wizardUsecase) Get(ctx context.Context, id string) (*domain.WizardState, error) {
	return u.get(ctx, id)
}

func (u *wizardUsecase) Consume(ctx context.Context, id string) (*domain.WizardForm, error) {
	state, err := u.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !state.Completed {
		return nil, apperror.BadRequest("Onboarding is not completed yet")
	}

	if err := u.store.Delete(ctx, id); err != nil {
		return nil, apperror.Internal(err)
	}
	form := state.Form
	return &form, nil
}

func (u *wizardUsecase) get(ctx context.Context, id string) (*domain.WizardState, error) {
	state, err := u.store.Get(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if state == nil {
		return nil, apperror.NotFound("Onboarding session not found or expired")
	}
	return state, nil
}

// mergeForm overlays non-empty patch fields onto the accumulated form.
func mergeForm(form *domain.WizardForm, patch domain.WizardForm) {
	if patch.Experience != "" {
		form.Experience = patch.Experience
	}
	if patch.Age != "" {
		form.Age = patch.Age
	}
	if patch.Weight != "" {
		form.Weight = patch.Weight
	}
	if patch.Height != "" {
		form.Height = patch.Height
	}
	if patch.Gender != "" {
		form.Gender = patch.Gender
	}
}

// validateStep applies the per-step rules with the exact messages the
// onboarding screens show.
func validateStep(step int, form *domain.WizardForm) error {
	switch step {
	case domain.StepExperience:
		if !domain.ExperienceLevel(form.Experience).IsValid() {
			return apperror.BadRequest("Please select your experience level")
		}
	case domain.StepAge:
		age, err := strconv.Atoi(strings.TrimSpace(form.Age))
		if err != nil || age <= 0 || age >= 120 {
			return apperror.BadRequest("Please enter a valid age (1-120)")
		}
	case domain.StepBody:
		weight, err := strconv.ParseFloat(strings.TrimSpace(form.Weight), 64)
		if err != nil || weight <= 0 || weight >= 300 || strings.TrimSpace(form.Height) == "" {
			return apperror.BadRequest("Please enter valid weight (1-300 kg) and height")
		}
	case domain.StepGender:
		if !domain.Gender(form.Gender).IsValid() {
			return apperror.BadRequest("Please select your gender")
		}
	default:
		return apperror.BadRequest("Invalid onboarding step")
	}
	return nil
}
