package models

import "time"

type TrainerProfile struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Specializations *[]string `json:"specializations"`
	Certifications  *[]string `json:"certifications"`
	YearsExperience *int      `json:"years_experience"`
	Bio             *string   `json:"bio"`
	HourlyRate      *float64  `json:"hourly_rate"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserWithProfile is the combined read model returned by the profile
// endpoint; exactly one of the profile fields is set depending on Role.
type UserWithProfile struct {
	User
	ClientProfile  *ClientProfile  `json:"client_profile,omitempty"`
	TrainerProfile *TrainerProfile `json:"trainer_profile,omitempty"`
}
