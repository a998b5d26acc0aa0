package repository

import (
	"context"

	"github.com/appdotbuilder/gym-manager/internal/models"
)

type UpdateTrainerProfileInput struct {
	Specializations *[]string
	Certifications  *[]string
	YearsExperience *int
	Bio             *string
	HourlyRate      *float64
}

type TrainerProfileRepository struct {
	db DBTX
}

func NewTrainerProfileRepository(db DBTX) *TrainerProfileRepository {
	return &TrainerProfileRepository{db: db}
}

func (r *TrainerProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO trainer_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *TrainerProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.TrainerProfile, error) {
	query := `
		SELECT id, user_id, specializations, certifications, years_experience,
			   bio, hourly_rate, created_at, updated_at
		FROM trainer_profiles
		WHERE user_id = $1
	`
	var profile models.TrainerProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Specializations,
		&profile.Certifications,
		&profile.YearsExperience,
		&profile.Bio,
		&profile.HourlyRate,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *TrainerProfileRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateTrainerProfileInput) (*models.TrainerProfile, error) {
	query := `
		UPDATE trainer_profiles
		SET specializations = COALESCE($1, specializations),
			certifications = COALESCE($2, certifications),
			years_experience = COALESCE($3, years_experience),
			bio = COALESCE($4, bio),
			hourly_rate = COALESCE($5, hourly_rate),
			updated_at = NOW()
		WHERE user_id = $6
		RETURNING id, user_id, specializations, certifications, years_experience,
				  bio, hourly_rate, created_at, updated_at
	`
	var profile models.TrainerProfile
	err := r.db.QueryRow(ctx, query,
		req.Specializations,
		req.Certifications,
		req.YearsExperience,
		req.Bio,
		req.HourlyRate,
		userID,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Specializations,
		&profile.Certifications,
		&profile.YearsExperience,
		&profile.Bio,
		&profile.HourlyRate,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListAll returns every trainer profile ordered by user id; the
// trainer filter relies on this order being stable between calls.
func (r *TrainerProfileRepository) ListAll(ctx context.Context) ([]models.TrainerProfile, error) {
	query := `
		SELECT id, user_id, specializations, certifications, years_experience,
			   bio, hourly_rate, created_at, updated_at
		FROM trainer_profiles
		ORDER BY user_id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]models.TrainerProfile, 0)
	for rows.Next() {
		var profile models.TrainerProfile
		if err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.Specializations,
			&profile.Certifications,
			&profile.YearsExperience,
			&profile.Bio,
			&profile.HourlyRate,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}
