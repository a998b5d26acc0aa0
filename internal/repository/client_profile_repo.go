package repository

import (
	"context"

	"github.com/appdotbuilder/gym-manager/internal/models"
)

type UpdateClientProfileInput struct {
	FitnessGoals          *string
	SessionsPerWeek       *int
	SessionsPerDay        *int
	MedicalConditions     *string
	EmergencyContactName  *string
	EmergencyContactPhone *string
}

type ClientProfileRepository struct {
	db DBTX
}

func NewClientProfileRepository(db DBTX) *ClientProfileRepository {
	return &ClientProfileRepository{db: db}
}

func (r *ClientProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO client_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *ClientProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.ClientProfile, error) {
	query := `
		SELECT id, user_id, fitness_goals, sessions_per_week, sessions_per_day,
			   medical_conditions, emergency_contact_name, emergency_contact_phone,
			   created_at, updated_at
		FROM client_profiles
		WHERE user_id = $1
	`
	var profile models.ClientProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FitnessGoals,
		&profile.SessionsPerWeek,
		&profile.SessionsPerDay,
		&profile.MedicalConditions,
		&profile.EmergencyContactName,
		&profile.EmergencyContactPhone,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ClientProfileRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateClientProfileInput) (*models.ClientProfile, error) {
	query := `
		UPDATE client_profiles
		SET fitness_goals = COALESCE($1, fitness_goals),
			sessions_per_week = COALESCE($2, sessions_per_week),
			sessions_per_day = COALESCE($3, sessions_per_day),
			medical_conditions = COALESCE($4, medical_conditions),
			emergency_contact_name = COALESCE($5, emergency_contact_name),
			emergency_contact_phone = COALESCE($6, emergency_contact_phone),
			updated_at = NOW()
		WHERE user_id = $7
		RETURNING id, user_id, fitness_goals, sessions_per_week, sessions_per_day,
				  medical_conditions, emergency_contact_name, emergency_contact_phone,
				  created_at, updated_at
	`
	var profile models.ClientProfile
	err := r.db.QueryRow(ctx, query,
		req.FitnessGoals,
		req.SessionsPerWeek,
		req.SessionsPerDay,
		req.MedicalConditions,
		req.EmergencyContactName,
		req.EmergencyContactPhone,
		userID,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FitnessGoals,
		&profile.SessionsPerWeek,
		&profile.SessionsPerDay,
		&profile.MedicalConditions,
		&profile.EmergencyContactName,
		&profile.EmergencyContactPhone,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
