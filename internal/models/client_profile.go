package models

import "time"

type ClientProfile struct {
	ID                    int64     `json:"id"`
	UserID                int64     `json:"user_id"`
	FitnessGoals          *string   `json:"fitness_goals"`
	SessionsPerWeek       *int      `json:"sessions_per_week"`
	SessionsPerDay        *int      `json:"sessions_per_day"`
	MedicalConditions     *string   `json:"medical_conditions"`
	EmergencyContactName  *string   `json:"emergency_contact_name"`
	EmergencyContactPhone *string   `json:"emergency_contact_phone"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
