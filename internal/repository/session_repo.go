package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/appdotbuilder/gym-manager/internal/models"
)

type CreateSessionInput struct {
	TrainerID   int64
	ClientID    int64
	SessionDate time.Time
	Range       models.TimeRange
	WorkoutType models.WorkoutType
	Notes       *string
	CreatedBy   int64
}

type SessionListFilter struct {
	UserID int64
	Role   models.Role
	Status string
	Date   *time.Time
}

const sessionColumns = `id, trainer_id, client_id, session_date, start_min, end_min, duration_min, workout_type, status, notes, created_by, created_at, updated_at`

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func scanSession(row interface{ Scan(dest ...any) error }) (*models.Session, error) {
	var session models.Session
	err := row.Scan(
		&session.ID,
		&session.TrainerID,
		&session.ClientID,
		&session.SessionDate,
		&session.Range.StartMin,
		&session.Range.EndMin,
		&session.DurationMinutes,
		&session.WorkoutType,
		&session.Status,
		&session.Notes,
		&session.CreatedBy,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Create(
	ctx context.Context,
	input CreateSessionInput,
) (*models.Session, error) {
	query := fmt.Sprintf(`
		INSERT INTO sessions (trainer_id, client_id, session_date, start_min, end_min, duration_min, workout_type, status, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'scheduled', $8, $9)
		RETURNING %s
	`, sessionColumns)

	return scanSession(r.db.QueryRow(
		ctx,
		query,
		input.TrainerID,
		input.ClientID,
		input.SessionDate,
		input.Range.StartMin,
		input.Range.EndMin,
		input.Range.Duration(),
		input.WorkoutType,
		input.Notes,
		input.CreatedBy,
	))
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID int64) (*models.Session, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM sessions
		WHERE id = $1
	`, sessionColumns)
	return scanSession(r.db.QueryRow(ctx, query, sessionID))
}

func (r *SessionRepository) List(
	ctx context.Context,
	filter SessionListFilter,
) ([]models.Session, error) {
	actorColumn := "client_id"
	if filter.Role == models.RoleTrainer {
		actorColumn = "trainer_id"
	}

	args := []any{filter.UserID}
	whereParts := []string{fmt.Sprintf("%s = $1", actorColumn)}

	if status := strings.TrimSpace(filter.Status); status != "" {
		args = append(args, status)
		whereParts = append(whereParts, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		whereParts = append(whereParts, fmt.Sprintf("session_date = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM sessions
		WHERE %s
		ORDER BY session_date ASC, start_min ASC, id ASC
	`, sessionColumns, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// UpdateStatusIfCurrent is a compare-and-set transition; pgx.ErrNoRows
// means either the session is gone or another caller moved it first.
func (r *SessionRepository) UpdateStatusIfCurrent(
	ctx context.Context,
	sessionID int64,
	currentStatus models.SessionStatus,
	nextStatus models.SessionStatus,
	notes *string,
) (*models.Session, error) {
	query := fmt.Sprintf(`
		UPDATE sessions
		SET status = $3, notes = COALESCE($4, notes), updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING %s
	`, sessionColumns)
	return scanSession(r.db.QueryRow(ctx, query, sessionID, currentStatus, nextStatus, notes))
}

// HasTrainerOverlap reports whether any non-cancelled session for the
// trainer on that date intersects the half-open minute range.
func (r *SessionRepository) HasTrainerOverlap(
	ctx context.Context,
	trainerID int64,
	date time.Time,
	rng models.TimeRange,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM sessions
			WHERE trainer_id = $1
			  AND session_date = $2
			  AND status <> 'cancelled'
			  AND start_min < $4
			  AND end_min > $3
		)
	`
	var hasOverlap bool
	if err := r.db.QueryRow(ctx, query, trainerID, date, rng.StartMin, rng.EndMin).Scan(&hasOverlap); err != nil {
		return false, err
	}
	return hasOverlap, nil
}

// HasClientOverlap is the client-side counterpart; clients carry no
// availability template but must not be double-booked either.
func (r *SessionRepository) HasClientOverlap(
	ctx context.Context,
	clientID int64,
	date time.Time,
	rng models.TimeRange,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM sessions
			WHERE client_id = $1
			  AND session_date = $2
			  AND status <> 'cancelled'
			  AND start_min < $4
			  AND end_min > $3
		)
	`
	var hasOverlap bool
	if err := r.db.QueryRow(ctx, query, clientID, date, rng.StartMin, rng.EndMin).Scan(&hasOverlap); err != nil {
		return false, err
	}
	return hasOverlap, nil
}
