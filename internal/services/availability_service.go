package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appdotbuilder/gym-manager/internal/models"
	"github.com/appdotbuilder/gym-manager/internal/repository"
)

type AvailabilityService struct {
	db               *pgxpool.Pool
	availabilityRepo *repository.AvailabilityRepository
}

func NewAvailabilityService(db *pgxpool.Pool, availabilityRepo *repository.AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{db: db, availabilityRepo: availabilityRepo}
}

// UpsertWeek replaces the user's whole template for one ISO week in a
// single transaction. At most one window per weekday is accepted;
// windows with IsAvailable=false are stored rather than dropped so an
// explicit "unavailable" overrides whatever stood before.
func (s *AvailabilityService) UpsertWeek(
	ctx context.Context,
	userID int64,
	weekStart time.Time,
	windows []repository.AvailabilityWindowInput,
) ([]models.AvailabilityWindow, error) {
	if userID <= 0 || len(windows) == 0 {
		return nil, ErrInvalidInput
	}

	seen := make(map[models.DayOfWeek]struct{}, len(windows))
	for _, window := range windows {
		if _, dup := seen[window.DayOfWeek]; dup {
			return nil, ErrDuplicateDay
		}
		seen[window.DayOfWeek] = struct{}{}
		if _, err := models.NewTimeRange(window.Range.StartMin, window.Range.EndMin); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txRepo := repository.NewAvailabilityRepository(tx)
	stored, err := txRepo.ReplaceWeek(ctx, userID, models.WeekStart(dateOnly(weekStart)), windows)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *AvailabilityService) GetWeek(
	ctx context.Context,
	userID int64,
	weekStart time.Time,
) ([]models.AvailabilityWindow, error) {
	return s.availabilityRepo.ListWeek(ctx, userID, models.WeekStart(dateOnly(weekStart)))
}
