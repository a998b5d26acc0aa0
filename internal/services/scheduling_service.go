package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appdotbuilder/gym-manager/internal/models"
	"github.com/appdotbuilder/gym-manager/internal/repository"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateDay       = errors.New("duplicate day of week")
	ErrSchedulingConflict = errors.New("scheduling conflict")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrTrainerNotFound    = errors.New("trainer not found")
	ErrClientNotFound     = errors.New("client not found")
)

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type windowReader interface {
	GetWindow(ctx context.Context, userID int64, day models.DayOfWeek, weekStart time.Time) (*models.AvailabilityWindow, error)
}

type overlapChecker interface {
	HasTrainerOverlap(ctx context.Context, trainerID int64, date time.Time, rng models.TimeRange) (bool, error)
	HasClientOverlap(ctx context.Context, clientID int64, date time.Time, rng models.TimeRange) (bool, error)
}

type SchedulingService struct {
	db               *pgxpool.Pool
	sessionRepo      *repository.SessionRepository
	availabilityRepo *repository.AvailabilityRepository
	userRepo         userReader
}

func NewSchedulingService(
	db *pgxpool.Pool,
	sessionRepo *repository.SessionRepository,
	availabilityRepo *repository.AvailabilityRepository,
	userRepo userReader,
) *SchedulingService {
	return &SchedulingService{
		db:               db,
		sessionRepo:      sessionRepo,
		availabilityRepo: availabilityRepo,
		userRepo:         userRepo,
	}
}

type CreateSessionInput struct {
	TrainerID   int64
	ClientID    int64
	SessionDate time.Time
	StartMin    int
	DurationMin int
	WorkoutType models.WorkoutType
	Notes       *string
}

// trainerIsFree is the conflict predicate: the trainer's declared
// window for that day/week must exist, be marked available, and fully
// contain the range, and no non-cancelled session may overlap it. An
// undeclared day counts as busy.
func trainerIsFree(
	ctx context.Context,
	windows windowReader,
	sessions overlapChecker,
	trainerID int64,
	date time.Time,
	rng models.TimeRange,
) (bool, error) {
	window, err := windows.GetWindow(ctx, trainerID, models.DayOfWeekOf(date), models.WeekStart(date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if !window.IsAvailable || !window.Range.Contains(rng) {
		return false, nil
	}

	hasOverlap, err := sessions.HasTrainerOverlap(ctx, trainerID, date, rng)
	if err != nil {
		return false, err
	}
	return !hasOverlap, nil
}

func (s *SchedulingService) CheckTrainerAvailability(
	ctx context.Context,
	trainerID int64,
	date time.Time,
	rng models.TimeRange,
) (bool, error) {
	return trainerIsFree(ctx, s.availabilityRepo, s.sessionRepo, trainerID, dateOnly(date), rng)
}

// CreateSession books a session for createdBy (admin, the trainer, or
// the client). The availability and overlap checks and the insert run
// as one unit under per-person advisory locks scoped to the session
// date, so concurrent requests for the same trainer or client on the
// same day serialize instead of racing the check-then-insert.
func (s *SchedulingService) CreateSession(
	ctx context.Context,
	createdBy int64,
	input CreateSessionInput,
) (*models.Session, error) {
	if input.TrainerID <= 0 || input.ClientID <= 0 || createdBy <= 0 {
		return nil, ErrInvalidInput
	}
	if input.TrainerID == input.ClientID {
		return nil, ErrInvalidInput
	}

	rng, err := models.TimeRangeFrom(input.StartMin, input.DurationMin)
	if err != nil {
		return nil, err
	}
	date := dateOnly(input.SessionDate)

	trainer, err := s.userRepo.GetByID(ctx, input.TrainerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if trainer.Role != models.RoleTrainer || !trainer.IsActive {
		return nil, ErrInvalidInput
	}

	client, err := s.userRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if client.Role != models.RoleClient || !client.IsActive {
		return nil, ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)
	txAvailabilityRepo := repository.NewAvailabilityRepository(tx)

	// Lock the (person, date) partitions in ascending key order so two
	// bookings touching the same pair cannot deadlock.
	dateKey := dayKey(date)
	first, second := lockKey(input.TrainerID), lockKey(input.ClientID)
	if second < first {
		first, second = second, first
	}
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1::int4, $2::int4)", first, dateKey); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1::int4, $2::int4)", second, dateKey); err != nil {
		return nil, err
	}

	free, err := trainerIsFree(ctx, txAvailabilityRepo, txSessionRepo, input.TrainerID, date, rng)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrSchedulingConflict
	}

	clientBusy, err := txSessionRepo.HasClientOverlap(ctx, input.ClientID, date, rng)
	if err != nil {
		return nil, err
	}
	if clientBusy {
		return nil, ErrSchedulingConflict
	}

	session, err := txSessionRepo.Create(ctx, repository.CreateSessionInput{
		TrainerID:   input.TrainerID,
		ClientID:    input.ClientID,
		SessionDate: date,
		Range:       rng,
		WorkoutType: input.WorkoutType,
		Notes:       input.Notes,
		CreatedBy:   createdBy,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateStatus moves a session out of scheduled. completed, cancelled
// and no_show are terminal; the compare-and-set update catches a
// concurrent transition that got there first.
func (s *SchedulingService) UpdateStatus(
	ctx context.Context,
	sessionID int64,
	nextStatus models.SessionStatus,
	notes *string,
) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := validateTransition(session.Status, nextStatus); err != nil {
		return nil, err
	}

	updated, err := s.sessionRepo.UpdateStatusIfCurrent(ctx, sessionID, session.Status, nextStatus, notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	return updated, nil
}

func (s *SchedulingService) GetSession(ctx context.Context, sessionID int64) (*models.Session, error) {
	return s.sessionRepo.GetByID(ctx, sessionID)
}

func (s *SchedulingService) ListSessions(
	ctx context.Context,
	userID int64,
	role models.Role,
	filter repository.SessionListFilter,
) ([]models.Session, error) {
	if role != models.RoleClient && role != models.RoleTrainer {
		return nil, ErrInvalidInput
	}
	filter.UserID = userID
	filter.Role = role
	return s.sessionRepo.List(ctx, filter)
}

func validateTransition(current, next models.SessionStatus) error {
	if current.IsTerminal() {
		return ErrInvalidTransition
	}
	if next == models.StatusScheduled {
		return ErrInvalidTransition
	}
	return nil
}

func dateOnly(date time.Time) time.Time {
	year, month, day := date.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// dayKey folds the session date into the second advisory-lock key.
func dayKey(date time.Time) int32 {
	return int32(date.Unix() / 86400)
}

// lockKey folds a user id into the 31 bits an int4 advisory-lock key
// holds. Ids past that range wrap onto earlier keys, which only widens
// the serialized partition.
func lockKey(id int64) int32 {
	return int32(id % (1 << 31))
}
