package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/appdotbuilder/gym-manager/internal/models"
	"github.com/appdotbuilder/gym-manager/internal/repository"
	"github.com/appdotbuilder/gym-manager/internal/services"
)

const sessionDateLayout = "2006-01-02"

type schedulingApplicationService interface {
	CreateSession(ctx context.Context, createdBy int64, input services.CreateSessionInput) (*models.Session, error)
	GetSession(ctx context.Context, sessionID int64) (*models.Session, error)
	ListSessions(ctx context.Context, userID int64, role models.Role, filter repository.SessionListFilter) ([]models.Session, error)
	UpdateStatus(ctx context.Context, sessionID int64, nextStatus models.SessionStatus, notes *string) (*models.Session, error)
}

type SessionHandler struct {
	service schedulingApplicationService
}

func NewSessionHandler(service *services.SchedulingService) *SessionHandler {
	return &SessionHandler{service: service}
}

type createSessionRequest struct {
	TrainerID       int64   `json:"trainer_id"`
	ClientID        int64   `json:"client_id"`
	SessionDate     string  `json:"session_date"`
	StartTime       string  `json:"start_time"`
	DurationMinutes int     `json:"duration_minutes"`
	WorkoutType     string  `json:"workout_type"`
	Notes           *string `json:"notes"`
}

type updateSessionStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// CreateSession books a training session. Admins may book any pair;
// trainers and clients only sessions they take part in themselves.
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	role, ok := actorRole(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	actorID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	switch role {
	case models.RoleTrainer:
		if req.TrainerID != actorID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		}
	case models.RoleClient:
		if req.ClientID != actorID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		}
	}

	sessionDate, err := time.Parse(sessionDateLayout, strings.TrimSpace(req.SessionDate))
	if err != nil {
		return badRequest(c, "invalid_input", "session_date must be a valid YYYY-MM-DD date")
	}
	startMin, err := models.ParseClock(strings.TrimSpace(req.StartTime))
	if err != nil {
		return badRequest(c, "invalid_range", "start_time must be a valid HH:MM time")
	}
	workoutType, err := models.ParseWorkoutType(req.WorkoutType)
	if err != nil {
		return badRequest(c, "invalid_input", "workout_type is not recognized")
	}
	if req.Notes != nil && strings.TrimSpace(*req.Notes) == "" {
		return badRequest(c, "invalid_input", "notes must not be empty")
	}

	session, err := h.service.CreateSession(c.Context(), actorID, services.CreateSessionInput{
		TrainerID:   req.TrainerID,
		ClientID:    req.ClientID,
		SessionDate: sessionDate,
		StartMin:    startMin,
		DurationMin: req.DurationMinutes,
		WorkoutType: workoutType,
		Notes:       req.Notes,
	})
	if err != nil {
		return mapSchedulingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	role, ok := actorRole(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	actorID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	targetID := actorID
	targetRole := role
	if role == models.RoleAdmin {
		// Admins list on behalf of any user, but must name one.
		targetID, err = strconv.ParseInt(c.Query("user_id"), 10, 64)
		if err != nil || targetID <= 0 {
			return badRequest(c, "invalid_input", "user_id is required for admin queries")
		}
		targetRole, err = models.ParseRole(c.Query("role"))
		if err != nil || targetRole == models.RoleAdmin {
			return badRequest(c, "invalid_input", "role must be client or trainer")
		}
	}

	filter := repository.SessionListFilter{}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		parsed, err := models.ParseSessionStatus(status)
		if err != nil {
			return badRequest(c, "invalid_input", "status is not recognized")
		}
		filter.Status = string(parsed)
	}
	if rawDate := strings.TrimSpace(c.Query("date")); rawDate != "" {
		date, err := time.Parse(sessionDateLayout, rawDate)
		if err != nil {
			return badRequest(c, "invalid_input", "date must be a valid YYYY-MM-DD date")
		}
		filter.Date = &date
	}

	sessions, err := h.service.ListSessions(c.Context(), targetID, targetRole, filter)
	if err != nil {
		return mapSchedulingError(c, err)
	}
	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	role, ok := actorRole(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	actorID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessionID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || sessionID <= 0 {
		return badRequest(c, "invalid_input", "Invalid session id")
	}

	session, err := h.service.GetSession(c.Context(), sessionID)
	if err != nil {
		return mapSchedulingError(c, err)
	}
	if !canAccessSession(role, actorID, session) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) UpdateStatus(c *fiber.Ctx) error {
	role, ok := actorRole(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	actorID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessionID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || sessionID <= 0 {
		return badRequest(c, "invalid_input", "Invalid session id")
	}

	var req updateSessionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	nextStatus, err := models.ParseSessionStatus(req.Status)
	if err != nil {
		return badRequest(c, "invalid_input", "status is not recognized")
	}

	session, err := h.service.GetSession(c.Context(), sessionID)
	if err != nil {
		return mapSchedulingError(c, err)
	}
	if !canAccessSession(role, actorID, session) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	updated, err := h.service.UpdateStatus(c.Context(), sessionID, nextStatus, req.Notes)
	if err != nil {
		return mapSchedulingError(c, err)
	}
	return c.JSON(fiber.Map{"session": updated})
}

func canAccessSession(role models.Role, actorID int64, session *models.Session) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleTrainer:
		return session.TrainerID == actorID
	case models.RoleClient:
		return session.ClientID == actorID
	default:
		return false
	}
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message, "code": code})
}

// mapSchedulingError translates service sentinels into status codes
// plus stable machine-readable codes.
func mapSchedulingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidRange):
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": err.Error(), "code": "invalid_range"})
	case errors.Is(err, services.ErrDuplicateDay):
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": err.Error(), "code": "duplicate_day_of_week"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": err.Error(), "code": "invalid_input"})
	case errors.Is(err, services.ErrSchedulingConflict):
		return c.Status(fiber.StatusConflict).
			JSON(fiber.Map{"error": "Requested time conflicts with availability or another session", "code": "scheduling_conflict"})
	case errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"error": err.Error(), "code": "invalid_transition"})
	case errors.Is(err, services.ErrTrainerNotFound):
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"error": "Trainer not found", "code": "not_found"})
	case errors.Is(err, services.ErrClientNotFound):
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"error": "Client not found", "code": "not_found"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"error": "Session not found", "code": "not_found"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process scheduling request"})
	}
}
