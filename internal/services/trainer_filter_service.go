package services

import (
	"context"
	"strings"
	"time"

	"github.com/appdotbuilder/gym-manager/internal/models"
)

type trainerRoster interface {
	ListAll(ctx context.Context) ([]models.TrainerProfile, error)
}

type trainerAvailabilityChecker interface {
	CheckTrainerAvailability(ctx context.Context, trainerID int64, date time.Time, rng models.TimeRange) (bool, error)
}

type TrainerFilterService struct {
	roster  trainerRoster
	checker trainerAvailabilityChecker
}

func NewTrainerFilterService(roster trainerRoster, checker trainerAvailabilityChecker) *TrainerFilterService {
	return &TrainerFilterService{roster: roster, checker: checker}
}

// FilterAvailableTrainers narrows the roster to trainers free for the
// requested slot, optionally matching a workout-type specialization.
// Output keeps the roster's order; no ranking is applied.
func (s *TrainerFilterService) FilterAvailableTrainers(
	ctx context.Context,
	date time.Time,
	startMin int,
	durationMin int,
	workoutType *models.WorkoutType,
) ([]int64, error) {
	rng, err := models.TimeRangeFrom(startMin, durationMin)
	if err != nil {
		return nil, err
	}

	profiles, err := s.roster.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]int64, 0, len(profiles))
	for _, profile := range profiles {
		if workoutType != nil && !specializesIn(&profile, *workoutType) {
			continue
		}
		free, err := s.checker.CheckTrainerAvailability(ctx, profile.UserID, date, rng)
		if err != nil {
			return nil, err
		}
		if free {
			available = append(available, profile.UserID)
		}
	}
	return available, nil
}

func specializesIn(profile *models.TrainerProfile, workoutType models.WorkoutType) bool {
	if profile.Specializations == nil {
		return false
	}
	want := normalizeSpecialization(string(workoutType))
	for _, spec := range *profile.Specializations {
		if normalizeSpecialization(spec) == want {
			return true
		}
	}
	return false
}

func normalizeSpecialization(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	value = strings.ReplaceAll(value, " ", "_")
	value = strings.ReplaceAll(value, "-", "_")
	return value
}
