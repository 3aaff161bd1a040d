package domain

import (
	"context"
	"time"
)

type WorkoutPlan struct {
	ID          int64     `json:"id"`
	AccountID   string    `json:"account_id"`
	Name        string    `json:"name"`
	DaysPerWeek int       `json:"days_per_week"`
	FocusAreas  []string  `json:"focus_areas"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreatePlanRequest struct {
	Name        string   `json:"name" validate:"required,max=80"`
	DaysPerWeek int      `json:"days_per_week" validate:"required,min=1,max=7"`
	FocusAreas  []string `json:"focus_areas" validate:"required,min=1,dive,focus_area"`
}

type PlanRepository interface {
	Create(ctx context.Context, plan *WorkoutPlan) error
	ListByAccountID(ctx context.Context, accountID string) ([]WorkoutPlan, error)
	// Delete removes the plan if it belongs to accountID; reports whether a
	// row was deleted.
	Delete(ctx context.Context, accountID string, planID int64) (bool, error)
}

type PlanUsecase interface {
	Create(ctx context.Context, accountID string, req *CreatePlanRequest) (*WorkoutPlan, error)
	ListMine(ctx context.Context, accountID string) ([]WorkoutPlan, error)
	Delete(ctx context.Context, accountID string, planID int64) error
}
