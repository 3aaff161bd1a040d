package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"elitefit-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type fitnessProfileRepository struct {
	db *pgxpool.Pool
}

func NewFitnessProfileRepository(db *pgxpool.Pool) domain.FitnessProfileRepository {
	return &fitnessProfileRepository{db: db}
}

func (r *fitnessProfileRepository) Save(ctx context.Context, profile *domain.FitnessProfile) error {
	now := time.Now()
	query := `
		INSERT INTO fitness_profiles (account_id, experience, age, weight_kg, height_text, gender, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (account_id) DO UPDATE SET
			experience = EXCLUDED.experience,
			age = EXCLUDED.age,
			weight_kg = EXCLUDED.weight_kg,
			height_text = EXCLUDED.height_text,
			gender = EXCLUDED.gender,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		profile.AccountID, profile.Experience, profile.Age,
		profile.WeightKg, profile.Height, profile.Gender, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save fitness profile: %w", err)
	}
	return nil
}

func (r *fitnessProfileRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.FitnessProfile, error) {
	query := `
		SELECT account_id, experience, age, weight_kg, height_text, gender, created_at, updated_at
		FROM fitness_profiles
		WHERE account_id = $1`

	var p domain.FitnessProfile
	err := r.db.QueryRow(ctx, query, accountID).Scan(
		&p.AccountID, &p.Experience, &p.Age, &p.WeightKg,
		&p.Height, &p.Gender, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get fitness profile: %w", err)
	}
	return &p, nil
}
