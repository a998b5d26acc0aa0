package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/appdotbuilder/gym-manager/internal/models"
)

type rosterUserStore interface {
	CountByRole(ctx context.Context, role models.Role) (int, error)
	ListByRolePage(ctx context.Context, role models.Role, limit, offset int) ([]models.User, error)
}

// RosterService serves the paginated trainer and client listings.
type RosterService struct {
	users              rosterUserStore
	clientProfileRepo  clientProfileStore
	trainerProfileRepo trainerProfileStore
}

func NewRosterService(
	users rosterUserStore,
	clientProfileRepo clientProfileStore,
	trainerProfileRepo trainerProfileStore,
) *RosterService {
	return &RosterService{
		users:              users,
		clientProfileRepo:  clientProfileRepo,
		trainerProfileRepo: trainerProfileRepo,
	}
}

func (s *RosterService) ListTrainers(ctx context.Context, page, limit int) ([]models.UserWithProfile, int, error) {
	return s.listRole(ctx, models.RoleTrainer, page, limit)
}

func (s *RosterService) ListClients(ctx context.Context, page, limit int) ([]models.UserWithProfile, int, error) {
	return s.listRole(ctx, models.RoleClient, page, limit)
}

func (s *RosterService) listRole(ctx context.Context, role models.Role, page, limit int) ([]models.UserWithProfile, int, error) {
	total, err := s.users.CountByRole(ctx, role)
	if err != nil {
		return nil, 0, err
	}

	users, err := s.users.ListByRolePage(ctx, role, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	combined := make([]models.UserWithProfile, 0, len(users))
	for _, user := range users {
		entry := models.UserWithProfile{User: user}
		switch role {
		case models.RoleClient:
			profile, err := s.clientProfileRepo.GetByUserID(ctx, user.ID)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return nil, 0, err
			}
			entry.ClientProfile = profile
		case models.RoleTrainer:
			profile, err := s.trainerProfileRepo.GetByUserID(ctx, user.ID)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return nil, 0, err
			}
			entry.TrainerProfile = profile
		}
		combined = append(combined, entry)
	}
	return combined, total, nil
}
