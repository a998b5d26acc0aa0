package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/appdotbuilder/gym-manager/internal/models"
	"github.com/appdotbuilder/gym-manager/internal/services"
)

type rosterApplicationService interface {
	ListTrainers(ctx context.Context, page, limit int) ([]models.UserWithProfile, int, error)
	ListClients(ctx context.Context, page, limit int) ([]models.UserWithProfile, int, error)
}

type trainerFilterApplicationService interface {
	FilterAvailableTrainers(ctx context.Context, date time.Time, startMin, durationMin int, workoutType *models.WorkoutType) ([]int64, error)
}

type TrainerHandler struct {
	roster rosterApplicationService
	filter trainerFilterApplicationService
}

func NewTrainerHandler(roster *services.RosterService, filter *services.TrainerFilterService) *TrainerHandler {
	return &TrainerHandler{roster: roster, filter: filter}
}

// ListTrainers returns the active trainer roster with profiles. Open to
// any authenticated user so clients can browse before booking.
func (h *TrainerHandler) ListTrainers(c *fiber.Ctx) error {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	trainers, total, err := h.roster.ListTrainers(c.Context(), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list trainers"})
	}

	return c.JSON(fiber.Map{
		"data":       trainers,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

// ListClients returns the active client roster. Admin only; trainers
// see clients through their own sessions instead.
func (h *TrainerHandler) ListClients(c *fiber.Ctx) error {
	role, ok := actorRole(c)
	if !ok || role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	clients, total, err := h.roster.ListClients(c.Context(), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list clients"})
	}

	return c.JSON(fiber.Map{
		"data":       clients,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

// ListAvailableTrainers narrows the roster to trainers free for the
// requested slot. Availability is evaluated against each trainer's
// declared window for that date and their non-cancelled sessions.
func (h *TrainerHandler) ListAvailableTrainers(c *fiber.Ctx) error {
	date, err := time.Parse(sessionDateLayout, strings.TrimSpace(c.Query("session_date")))
	if err != nil {
		return badRequest(c, "invalid_input", "session_date must be a valid YYYY-MM-DD date")
	}

	startMin, err := models.ParseClock(strings.TrimSpace(c.Query("start_time")))
	if err != nil {
		return badRequest(c, "invalid_input", "start_time must be HH:MM")
	}

	durationMin := parsePositiveInt(c.Query("duration_minutes"), 0)
	if durationMin <= 0 {
		return badRequest(c, "invalid_input", "duration_minutes must be a positive integer")
	}

	var workoutType *models.WorkoutType
	if raw := strings.TrimSpace(c.Query("workout_type")); raw != "" {
		parsed, err := models.ParseWorkoutType(raw)
		if err != nil {
			return badRequest(c, "invalid_input", "unknown workout_type")
		}
		workoutType = &parsed
	}

	trainerIDs, err := h.filter.FilterAvailableTrainers(c.Context(), date, startMin, durationMin, workoutType)
	if err != nil {
		if errors.Is(err, models.ErrInvalidRange) {
			return badRequest(c, "invalid_range", "requested slot must start and end within a single day")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check trainer availability"})
	}

	return c.JSON(fiber.Map{"trainer_ids": trainerIDs})
}
