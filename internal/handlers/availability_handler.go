package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/appdotbuilder/gym-manager/internal/models"
	"github.com/appdotbuilder/gym-manager/internal/repository"
	"github.com/appdotbuilder/gym-manager/internal/services"
)

type availabilityApplicationService interface {
	UpsertWeek(ctx context.Context, userID int64, weekStart time.Time, windows []repository.AvailabilityWindowInput) ([]models.AvailabilityWindow, error)
	GetWeek(ctx context.Context, userID int64, weekStart time.Time) ([]models.AvailabilityWindow, error)
}

type AvailabilityHandler struct {
	service availabilityApplicationService
}

func NewAvailabilityHandler(service *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

type availabilityWindowRequest struct {
	DayOfWeek   string `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type upsertWeekRequest struct {
	UserID        int64                       `json:"user_id"`
	WeekStartDate string                      `json:"week_start_date"`
	Availability  []availabilityWindowRequest `json:"availability"`
}

type availabilityWindowResponse struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"user_id"`
	DayOfWeek     string `json:"day_of_week"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	IsAvailable   bool   `json:"is_available"`
	WeekStartDate string `json:"week_start_date"`
}

// UpsertWeek replaces the caller's weekly template. Admins may submit
// on behalf of another user via user_id; everyone else only for
// themselves.
func (h *AvailabilityHandler) UpsertWeek(c *fiber.Ctx) error {
	role, ok := actorRole(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	actorID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req upsertWeekRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	targetID := actorID
	if req.UserID != 0 && req.UserID != actorID {
		if role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		}
		targetID = req.UserID
	}

	weekStart, err := time.Parse(sessionDateLayout, strings.TrimSpace(req.WeekStartDate))
	if err != nil {
		return badRequest(c, "invalid_input", "week_start_date must be a valid YYYY-MM-DD date")
	}
	if len(req.Availability) == 0 {
		return badRequest(c, "invalid_input", "availability must contain at least one window")
	}

	windows := make([]repository.AvailabilityWindowInput, 0, len(req.Availability))
	for _, window := range req.Availability {
		day, err := models.ParseDayOfWeek(window.DayOfWeek)
		if err != nil {
			return badRequest(c, "invalid_input", "day_of_week is not recognized")
		}
		startMin, err := models.ParseClock(strings.TrimSpace(window.StartTime))
		if err != nil {
			return badRequest(c, "invalid_range", "start_time must be a valid HH:MM time")
		}
		endMin, err := models.ParseClock(strings.TrimSpace(window.EndTime))
		if err != nil {
			return badRequest(c, "invalid_range", "end_time must be a valid HH:MM time")
		}
		rng, err := models.NewTimeRange(startMin, endMin)
		if err != nil {
			return badRequest(c, "invalid_range", "end_time must be after start_time")
		}
		windows = append(windows, repository.AvailabilityWindowInput{
			DayOfWeek:   day,
			Range:       rng,
			IsAvailable: window.IsAvailable,
		})
	}

	stored, err := h.service.UpsertWeek(c.Context(), targetID, weekStart, windows)
	if err != nil {
		return mapSchedulingError(c, err)
	}
	return c.JSON(fiber.Map{"availability": toWindowResponses(stored)})
}

func (h *AvailabilityHandler) GetUserWeek(c *fiber.Ctx) error {
	if _, ok := actorRole(c); !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || userID <= 0 {
		return badRequest(c, "invalid_input", "Invalid user id")
	}
	weekStart, err := time.Parse(sessionDateLayout, strings.TrimSpace(c.Query("week_start_date")))
	if err != nil {
		return badRequest(c, "invalid_input", "week_start_date must be a valid YYYY-MM-DD date")
	}

	windows, err := h.service.GetWeek(c.Context(), userID, weekStart)
	if err != nil {
		return mapSchedulingError(c, err)
	}
	return c.JSON(fiber.Map{"availability": toWindowResponses(windows)})
}

func toWindowResponses(windows []models.AvailabilityWindow) []availabilityWindowResponse {
	responses := make([]availabilityWindowResponse, 0, len(windows))
	for _, window := range windows {
		responses = append(responses, availabilityWindowResponse{
			ID:            window.ID,
			UserID:        window.UserID,
			DayOfWeek:     string(window.DayOfWeek),
			StartTime:     window.Range.Start(),
			EndTime:       window.Range.End(),
			IsAvailable:   window.IsAvailable,
			WeekStartDate: window.WeekStartDate.Format(sessionDateLayout),
		})
	}
	return responses
}
