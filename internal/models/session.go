package models

import (
	"errors"
	"strings"
	"time"
)

type SessionStatus string

const (
	StatusScheduled SessionStatus = "scheduled"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
	StatusNoShow    SessionStatus = "no_show"
)

var ErrInvalidStatus = errors.New("invalid session status")

func ParseSessionStatus(value string) (SessionStatus, error) {
	switch SessionStatus(strings.ToLower(strings.TrimSpace(value))) {
	case StatusScheduled:
		return StatusScheduled, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusCancelled:
		return StatusCancelled, nil
	case StatusNoShow:
		return StatusNoShow, nil
	default:
		return "", ErrInvalidStatus
	}
}

// IsTerminal reports whether no further transition is allowed from s.
// scheduled is the only non-terminal status.
func (s SessionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

type WorkoutType string

const (
	WorkoutStrength         WorkoutType = "strength"
	WorkoutCardio           WorkoutType = "cardio"
	WorkoutYoga             WorkoutType = "yoga"
	WorkoutPilates          WorkoutType = "pilates"
	WorkoutCrossfit         WorkoutType = "crossfit"
	WorkoutPersonalTraining WorkoutType = "personal_training"
	WorkoutGroupFitness     WorkoutType = "group_fitness"
)

var ErrInvalidWorkoutType = errors.New("invalid workout type")

func ParseWorkoutType(value string) (WorkoutType, error) {
	switch WorkoutType(strings.ToLower(strings.TrimSpace(value))) {
	case WorkoutStrength:
		return WorkoutStrength, nil
	case WorkoutCardio:
		return WorkoutCardio, nil
	case WorkoutYoga:
		return WorkoutYoga, nil
	case WorkoutPilates:
		return WorkoutPilates, nil
	case WorkoutCrossfit:
		return WorkoutCrossfit, nil
	case WorkoutPersonalTraining:
		return WorkoutPersonalTraining, nil
	case WorkoutGroupFitness:
		return WorkoutGroupFitness, nil
	default:
		return "", ErrInvalidWorkoutType
	}
}

// Session is one booked training appointment. Range.Duration() equals
// DurationMinutes; cancellation is a status change, never a delete.
type Session struct {
	ID              int64         `json:"id"`
	TrainerID       int64         `json:"trainer_id"`
	ClientID        int64         `json:"client_id"`
	SessionDate     time.Time     `json:"session_date"`
	Range           TimeRange     `json:"range"`
	DurationMinutes int           `json:"duration_minutes"`
	WorkoutType     WorkoutType   `json:"workout_type"`
	Status          SessionStatus `json:"status"`
	Notes           *string       `json:"notes"`
	CreatedBy       int64         `json:"created_by"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
