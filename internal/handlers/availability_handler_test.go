package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/appdotbuilder/gym-manager/internal/models"
	"github.com/appdotbuilder/gym-manager/internal/repository"
	"github.com/appdotbuilder/gym-manager/internal/services"
)

type stubAvailabilityService struct {
	upsertResult  []models.AvailabilityWindow
	upsertErr     error
	getResult     []models.AvailabilityWindow
	getErr        error
	lastUserID    int64
	lastWeekStart time.Time
	lastWindows   []repository.AvailabilityWindowInput
}

func (s *stubAvailabilityService) UpsertWeek(_ context.Context, userID int64, weekStart time.Time, windows []repository.AvailabilityWindowInput) ([]models.AvailabilityWindow, error) {
	s.lastUserID = userID
	s.lastWeekStart = weekStart
	s.lastWindows = windows
	return s.upsertResult, s.upsertErr
}

func (s *stubAvailabilityService) GetWeek(_ context.Context, userID int64, weekStart time.Time) ([]models.AvailabilityWindow, error) {
	s.lastUserID = userID
	s.lastWeekStart = weekStart
	return s.getResult, s.getErr
}

func newAvailabilityTestApp(service *stubAvailabilityService, role, userID string) *fiber.App {
	handler := &AvailabilityHandler{service: service}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", userID)
		return c.Next()
	})
	app.Put("/api/v1/availability/week", handler.UpsertWeek)
	app.Get("/api/v1/availability/users/:id", handler.GetUserWeek)
	return app
}

func TestUpsertWeekStoresParsedWindows(t *testing.T) {
	service := &stubAvailabilityService{upsertResult: []models.AvailabilityWindow{}}
	app := newAvailabilityTestApp(service, "trainer", "7")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/availability/week", strings.NewReader(`{
		"week_start_date": "2026-03-16",
		"availability": [
			{"day_of_week": "monday", "start_time": "09:00", "end_time": "17:00", "is_available": true},
			{"day_of_week": "tuesday", "start_time": "10:30", "end_time": "15:00", "is_available": false}
		]
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastUserID != 7 {
		t.Fatalf("expected target user 7, got %d", service.lastUserID)
	}
	if len(service.lastWindows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(service.lastWindows))
	}
	first := service.lastWindows[0]
	if first.DayOfWeek != models.Monday || first.Range.StartMin != 540 || first.Range.EndMin != 1020 {
		t.Fatalf("unexpected first window %+v", first)
	}
	second := service.lastWindows[1]
	if second.Range.StartMin != 630 || second.IsAvailable {
		t.Fatalf("unexpected second window %+v", second)
	}
}

func TestUpsertWeekForOtherUserRequiresAdmin(t *testing.T) {
	service := &stubAvailabilityService{}
	app := newAvailabilityTestApp(service, "trainer", "7")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/availability/week", strings.NewReader(`{
		"user_id": 9,
		"week_start_date": "2026-03-16",
		"availability": [
			{"day_of_week": "monday", "start_time": "09:00", "end_time": "17:00", "is_available": true}
		]
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestUpsertWeekRejectsInvertedWindow(t *testing.T) {
	service := &stubAvailabilityService{}
	app := newAvailabilityTestApp(service, "trainer", "7")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/availability/week", strings.NewReader(`{
		"week_start_date": "2026-03-16",
		"availability": [
			{"day_of_week": "monday", "start_time": "17:00", "end_time": "09:00", "is_available": true}
		]
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if code := decodeErrorCode(t, resp); code != "invalid_range" {
		t.Fatalf("expected code invalid_range, got %q", code)
	}
}

func TestUpsertWeekDuplicateDayMapsToBadRequest(t *testing.T) {
	service := &stubAvailabilityService{upsertErr: services.ErrDuplicateDay}
	app := newAvailabilityTestApp(service, "trainer", "7")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/availability/week", strings.NewReader(`{
		"week_start_date": "2026-03-16",
		"availability": [
			{"day_of_week": "monday", "start_time": "09:00", "end_time": "12:00", "is_available": true},
			{"day_of_week": "monday", "start_time": "13:00", "end_time": "17:00", "is_available": true}
		]
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if code := decodeErrorCode(t, resp); code != "duplicate_day_of_week" {
		t.Fatalf("expected code duplicate_day_of_week, got %q", code)
	}
}

func TestGetUserWeekRendersClockStrings(t *testing.T) {
	weekStart := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	service := &stubAvailabilityService{
		getResult: []models.AvailabilityWindow{
			{
				ID:            3,
				UserID:        7,
				DayOfWeek:     models.Monday,
				Range:         models.TimeRange{StartMin: 540, EndMin: 1020},
				IsAvailable:   true,
				WeekStartDate: weekStart,
			},
		},
	}
	app := newAvailabilityTestApp(service, "client", "42")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability/users/7?week_start_date=2026-03-16", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Availability []availabilityWindowResponse `json:"availability"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Availability) != 1 {
		t.Fatalf("expected 1 window, got %d", len(body.Availability))
	}
	window := body.Availability[0]
	if window.StartTime != "09:00" || window.EndTime != "17:00" {
		t.Fatalf("unexpected clock strings %s-%s", window.StartTime, window.EndTime)
	}
	if window.WeekStartDate != "2026-03-16" {
		t.Fatalf("unexpected week start %s", window.WeekStartDate)
	}
}
