package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/appdotbuilder/gym-manager/internal/models"
)

type stubRosterService struct {
	trainers  []models.UserWithProfile
	clients   []models.UserWithProfile
	total     int
	err       error
	lastPage  int
	lastLimit int
}

func (s *stubRosterService) ListTrainers(_ context.Context, page, limit int) ([]models.UserWithProfile, int, error) {
	s.lastPage = page
	s.lastLimit = limit
	return s.trainers, s.total, s.err
}

func (s *stubRosterService) ListClients(_ context.Context, page, limit int) ([]models.UserWithProfile, int, error) {
	s.lastPage = page
	s.lastLimit = limit
	return s.clients, s.total, s.err
}

type stubTrainerFilter struct {
	result          []int64
	err             error
	lastDate        time.Time
	lastStartMin    int
	lastDuration    int
	lastWorkoutType *models.WorkoutType
}

func (s *stubTrainerFilter) FilterAvailableTrainers(_ context.Context, date time.Time, startMin, durationMin int, workoutType *models.WorkoutType) ([]int64, error) {
	s.lastDate = date
	s.lastStartMin = startMin
	s.lastDuration = durationMin
	s.lastWorkoutType = workoutType
	return s.result, s.err
}

func newTrainerTestApp(roster *stubRosterService, filter *stubTrainerFilter, role, userID string) *fiber.App {
	handler := &TrainerHandler{roster: roster, filter: filter}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", userID)
		return c.Next()
	})
	app.Get("/api/v1/trainers", handler.ListTrainers)
	app.Get("/api/v1/trainers/available", handler.ListAvailableTrainers)
	app.Get("/api/v1/clients", handler.ListClients)
	return app
}

func TestListTrainersPaginates(t *testing.T) {
	roster := &stubRosterService{
		trainers: []models.UserWithProfile{
			{User: models.User{ID: 7, Role: models.RoleTrainer, FirstName: "Dana"}},
		},
		total: 35,
	}
	app := newTrainerTestApp(roster, &stubTrainerFilter{}, "client", "42")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trainers?page=2&limit=10", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if roster.lastPage != 2 || roster.lastLimit != 10 {
		t.Fatalf("expected page 2 limit 10, got %d/%d", roster.lastPage, roster.lastLimit)
	}

	var body struct {
		Pagination models.PaginationMeta `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Pagination.Total != 35 || body.Pagination.TotalPages != 4 {
		t.Fatalf("unexpected pagination %+v", body.Pagination)
	}
}

func TestListClientsAdminOnly(t *testing.T) {
	roster := &stubRosterService{}
	app := newTrainerTestApp(roster, &stubTrainerFilter{}, "trainer", "7")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestListAvailableTrainersParsesSlot(t *testing.T) {
	filter := &stubTrainerFilter{result: []int64{7, 11}}
	app := newTrainerTestApp(&stubRosterService{}, filter, "client", "42")

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/trainers/available?session_date=2026-03-16&start_time=10:00&duration_minutes=60&workout_type=yoga", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if filter.lastStartMin != 600 || filter.lastDuration != 60 {
		t.Fatalf("expected slot 600/60, got %d/%d", filter.lastStartMin, filter.lastDuration)
	}
	if filter.lastWorkoutType == nil || *filter.lastWorkoutType != models.WorkoutYoga {
		t.Fatalf("expected yoga filter, got %v", filter.lastWorkoutType)
	}
	if !filter.lastDate.Equal(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", filter.lastDate)
	}

	var body struct {
		TrainerIDs []int64 `json:"trainer_ids"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.TrainerIDs) != 2 || body.TrainerIDs[0] != 7 {
		t.Fatalf("unexpected trainer ids %v", body.TrainerIDs)
	}
}

func TestListAvailableTrainersRejectsMissingSlot(t *testing.T) {
	app := newTrainerTestApp(&stubRosterService{}, &stubTrainerFilter{}, "client", "42")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trainers/available?start_time=10:00", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
