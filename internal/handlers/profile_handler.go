package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/appdotbuilder/gym-manager/internal/models"
	"github.com/appdotbuilder/gym-manager/internal/repository"
	"github.com/appdotbuilder/gym-manager/internal/services"
)

type profileApplicationService interface {
	GetUserProfile(ctx context.Context, userID int64) (*models.UserWithProfile, error)
	UpdateClientProfile(ctx context.Context, userID int64, req repository.UpdateClientProfileInput) (*models.ClientProfile, error)
	UpdateTrainerProfile(ctx context.Context, userID int64, req repository.UpdateTrainerProfileInput) (*models.TrainerProfile, error)
}

type ProfileHandler struct {
	service profileApplicationService
}

func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type updateClientProfileRequest struct {
	FitnessGoals          *string `json:"fitness_goals"`
	SessionsPerWeek       *int    `json:"sessions_per_week"`
	SessionsPerDay        *int    `json:"sessions_per_day"`
	MedicalConditions     *string `json:"medical_conditions"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
}

type updateTrainerProfileRequest struct {
	Specializations *[]string `json:"specializations"`
	Certifications  *[]string `json:"certifications"`
	YearsExperience *int      `json:"years_experience"`
	Bio             *string   `json:"bio"`
	HourlyRate      *float64  `json:"hourly_rate"`
}

// GetOwnProfile returns the authenticated user with their role profile.
func (h *ProfileHandler) GetOwnProfile(c *fiber.Ctx) error {
	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	return h.respondWithProfile(c, userID)
}

// GetUserProfile returns any user's profile by id. Admin only.
func (h *ProfileHandler) GetUserProfile(c *fiber.Ctx) error {
	role, ok := actorRole(c)
	if !ok || role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || userID <= 0 {
		return badRequest(c, "invalid_input", "user id must be a positive integer")
	}
	return h.respondWithProfile(c, userID)
}

func (h *ProfileHandler) respondWithProfile(c *fiber.Ctx, userID int64) error {
	profile, err := h.service.GetUserProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"code":  "not_found",
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}
	return c.JSON(profile)
}

// UpdateClientProfile applies a partial update to the caller's client
// profile. Only fields present in the body change.
func (h *ProfileHandler) UpdateClientProfile(c *fiber.Ctx) error {
	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	role, ok := actorRole(c)
	if !ok || role != models.RoleClient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	var req updateClientProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.SessionsPerWeek != nil && *req.SessionsPerWeek <= 0 {
		return badRequest(c, "invalid_input", "sessions_per_week must be positive")
	}
	if req.SessionsPerDay != nil && *req.SessionsPerDay <= 0 {
		return badRequest(c, "invalid_input", "sessions_per_day must be positive")
	}

	profile, err := h.service.UpdateClientProfile(c.Context(), userID, repository.UpdateClientProfileInput{
		FitnessGoals:          req.FitnessGoals,
		SessionsPerWeek:       req.SessionsPerWeek,
		SessionsPerDay:        req.SessionsPerDay,
		MedicalConditions:     req.MedicalConditions,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"code":  "not_found",
				"error": "Profile not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}
	return c.JSON(profile)
}

// UpdateTrainerProfile applies a partial update to the caller's trainer
// profile.
func (h *ProfileHandler) UpdateTrainerProfile(c *fiber.Ctx) error {
	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	role, ok := actorRole(c)
	if !ok || role != models.RoleTrainer {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	var req updateTrainerProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.YearsExperience != nil && *req.YearsExperience < 0 {
		return badRequest(c, "invalid_input", "years_experience must not be negative")
	}
	if req.HourlyRate != nil && *req.HourlyRate < 0 {
		return badRequest(c, "invalid_input", "hourly_rate must not be negative")
	}
	if req.Specializations != nil {
		for _, spec := range *req.Specializations {
			if strings.TrimSpace(spec) == "" {
				return badRequest(c, "invalid_input", "specializations must not contain blank entries")
			}
		}
	}

	profile, err := h.service.UpdateTrainerProfile(c.Context(), userID, repository.UpdateTrainerProfileInput{
		Specializations: req.Specializations,
		Certifications:  req.Certifications,
		YearsExperience: req.YearsExperience,
		Bio:             req.Bio,
		HourlyRate:      req.HourlyRate,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"code":  "not_found",
				"error": "Profile not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}
	return c.JSON(profile)
}
