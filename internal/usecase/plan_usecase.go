package usecase

import (
	"context"
	"net/http"
	"strings"

	"elitefit-backend/internal/domain"
	"elitefit-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type planUsecase struct {
	repo     domain.PlanRepository
	validate *validator.Validate
}

func NewPlanUsecase(repo domain.PlanRepository, validate *validator.Validate) domain.PlanUsecase {
	return &planUsecase{repo: repo, validate: validate}
}

func (u *planUsecase) Create(ctx context.Context, accountID string, req *domain.CreatePlanRequest) (*domain.WorkoutPlan, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Validation failed: " + err.Error())
	}

	plan := &domain.WorkoutPlan{
		AccountID:   accountID,
		Name:        req.Name,
		DaysPerWeek: req.DaysPerWeek,
		FocusAreas:  dedupeFocusAreas(req.FocusAreas),
	}
	if err := u.repo.Create(ctx, plan); err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to create workout plan: "+err.Error(), err)
	}
	return plan, nil
}

func (u *planUsecase) ListMine(ctx context.Context, accountID string) ([]domain.WorkoutPlan, error) {
	plans, err := u.repo.ListByAccountID(ctx, accountID)
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to list workout plans: "+err.Error(), err)
	}
	return plans, nil
}

func (u *planUsecase) Delete(ctx context.Context, accountID string, planID int64) error {
	deleted, err := u.repo.Delete(ctx, accountID, planID)
	if err != nil {
		return apperror.New(http.StatusInternalServerError, "Failed to delete workout plan: "+err.Error(), err)
	}
	if !deleted {
		return apperror.NotFound("Workout plan not found")
	}
	return nil
}

func dedupeFocusAreas(areas []string) []string {
	seen := make(map[string]bool, len(areas))
	result := make([]string, 0, len(areas))
	for _, area := range areas {
		if !seen[area] {
			seen[area] = true
			result = append(result, area)
		}
	}
	return result
}
