package repository

import (
	"context"
	"time"

	"github.com/appdotbuilder/gym-manager/internal/models"
)

type AvailabilityWindowInput struct {
	DayOfWeek   models.DayOfWeek
	Range       models.TimeRange
	IsAvailable bool
}

type AvailabilityRepository struct {
	db DBTX
}

func NewAvailabilityRepository(db DBTX) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ReplaceWeek swaps out every window for one user+week. Callers run it
// inside a transaction so a concurrent conflict check never observes a
// half-replaced template.
func (r *AvailabilityRepository) ReplaceWeek(
	ctx context.Context,
	userID int64,
	weekStart time.Time,
	windows []AvailabilityWindowInput,
) ([]models.AvailabilityWindow, error) {
	deleteQuery := `
		DELETE FROM weekly_availability
		WHERE user_id = $1 AND week_start_date = $2
	`
	if _, err := r.db.Exec(ctx, deleteQuery, userID, weekStart); err != nil {
		return nil, err
	}

	insertQuery := `
		INSERT INTO weekly_availability (user_id, day_of_week, start_min, end_min, is_available, week_start_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, day_of_week, start_min, end_min, is_available, week_start_date, created_at, updated_at
	`
	stored := make([]models.AvailabilityWindow, 0, len(windows))
	for _, window := range windows {
		var saved models.AvailabilityWindow
		err := r.db.QueryRow(ctx, insertQuery,
			userID,
			window.DayOfWeek,
			window.Range.StartMin,
			window.Range.EndMin,
			window.IsAvailable,
			weekStart,
		).Scan(
			&saved.ID,
			&saved.UserID,
			&saved.DayOfWeek,
			&saved.Range.StartMin,
			&saved.Range.EndMin,
			&saved.IsAvailable,
			&saved.WeekStartDate,
			&saved.CreatedAt,
			&saved.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		stored = append(stored, saved)
	}
	return stored, nil
}

// GetWindow returns the declared window for one user/day/week, or
// pgx.ErrNoRows when none was declared. Absence means not bookable.
func (r *AvailabilityRepository) GetWindow(
	ctx context.Context,
	userID int64,
	day models.DayOfWeek,
	weekStart time.Time,
) (*models.AvailabilityWindow, error) {
	query := `
		SELECT id, user_id, day_of_week, start_min, end_min, is_available, week_start_date, created_at, updated_at
		FROM weekly_availability
		WHERE user_id = $1 AND day_of_week = $2 AND week_start_date = $3
	`
	var window models.AvailabilityWindow
	err := r.db.QueryRow(ctx, query, userID, day, weekStart).Scan(
		&window.ID,
		&window.UserID,
		&window.DayOfWeek,
		&window.Range.StartMin,
		&window.Range.EndMin,
		&window.IsAvailable,
		&window.WeekStartDate,
		&window.CreatedAt,
		&window.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &window, nil
}

func (r *AvailabilityRepository) ListWeek(
	ctx context.Context,
	userID int64,
	weekStart time.Time,
) ([]models.AvailabilityWindow, error) {
	query := `
		SELECT id, user_id, day_of_week, start_min, end_min, is_available, week_start_date, created_at, updated_at
		FROM weekly_availability
		WHERE user_id = $1 AND week_start_date = $2
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query, userID, weekStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := make([]models.AvailabilityWindow, 0)
	for rows.Next() {
		var window models.AvailabilityWindow
		if err := rows.Scan(
			&window.ID,
			&window.UserID,
			&window.DayOfWeek,
			&window.Range.StartMin,
			&window.Range.EndMin,
			&window.IsAvailable,
			&window.WeekStartDate,
			&window.CreatedAt,
			&window.UpdatedAt,
		); err != nil {
			return nil, err
		}
		windows = append(windows, window)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return windows, nil
}
