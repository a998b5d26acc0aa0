package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/appdotbuilder/gym-manager/internal/models"
	"github.com/appdotbuilder/gym-manager/internal/repository"
)

type clientProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.ClientProfile, error)
	UpdatePartial(ctx context.Context, userID int64, req repository.UpdateClientProfileInput) (*models.ClientProfile, error)
}

type trainerProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.TrainerProfile, error)
	UpdatePartial(ctx context.Context, userID int64, req repository.UpdateTrainerProfileInput) (*models.TrainerProfile, error)
}

type ProfileService struct {
	userRepo           userReader
	clientProfileRepo  clientProfileStore
	trainerProfileRepo trainerProfileStore
}

func NewProfileService(
	userRepo userReader,
	clientProfileRepo clientProfileStore,
	trainerProfileRepo trainerProfileStore,
) *ProfileService {
	return &ProfileService{
		userRepo:           userRepo,
		clientProfileRepo:  clientProfileRepo,
		trainerProfileRepo: trainerProfileRepo,
	}
}

// GetUserProfile returns the user plus whichever role profile applies.
// A missing profile row is not an error; admins have neither.
func (s *ProfileService) GetUserProfile(ctx context.Context, userID int64) (*models.UserWithProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	combined := &models.UserWithProfile{User: *user}
	switch user.Role {
	case models.RoleClient:
		profile, err := s.clientProfileRepo.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		combined.ClientProfile = profile
	case models.RoleTrainer:
		profile, err := s.trainerProfileRepo.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		combined.TrainerProfile = profile
	}
	return combined, nil
}

func (s *ProfileService) UpdateClientProfile(ctx context.Context, userID int64, req repository.UpdateClientProfileInput) (*models.ClientProfile, error) {
	return s.clientProfileRepo.UpdatePartial(ctx, userID, req)
}

func (s *ProfileService) UpdateTrainerProfile(ctx context.Context, userID int64, req repository.UpdateTrainerProfileInput) (*models.TrainerProfile, error) {
	return s.trainerProfileRepo.UpdatePartial(ctx, userID, req)
}
