package postgres

import (
	"context"
	"fmt"
	"time"

	"elitefit-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type planRepository struct {
	db *pgxpool.Pool
}

func NewPlanRepository(db *pgxpool.Pool) domain.PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) error {
	query := `
		INSERT INTO workout_plans (account_id, name, days_per_week, focus_areas, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	plan.CreatedAt = time.Now()
	err := r.db.QueryRow(ctx, query,
		plan.AccountID, plan.Name, plan.DaysPerWeek,
		pq.Array(plan.FocusAreas), plan.CreatedAt,
	).Scan(&plan.ID)
	if err != nil {
		return fmt.Errorf("failed to create workout plan: %w", err)
	}
	return nil
}

func (r *planRepository) ListByAccountID(ctx context.Context, accountID string) ([]domain.WorkoutPlan, error) {
	query := `
		SELECT id, account_id, name, days_per_week, focus_areas, created_at
		FROM workout_plans
		WHERE account_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout plans: %w", err)
	}
	defer rows.Close()

	plans := []domain.WorkoutPlan{}
	for rows.Next() {
		var p domain.WorkoutPlan
		var focusAreas []string
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Name, &p.DaysPerWeek, pq.Array(&focusAreas), &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workout plan: %w", err)
		}
		p.FocusAreas = focusAreas
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *planRepository) Delete(ctx context.Context, accountID string, planID int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM workout_plans WHERE id = $1 AND account_id = $2`,
		planID, accountID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete workout plan: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
