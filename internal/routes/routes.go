package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appdotbuilder/gym-manager/internal/config"
	"github.com/appdotbuilder/gym-manager/internal/handlers"
	"github.com/appdotbuilder/gym-manager/internal/middleware"
	"github.com/appdotbuilder/gym-manager/internal/repository"
	"github.com/appdotbuilder/gym-manager/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	clientProfileRepo := repository.NewClientProfileRepository(db)
	trainerProfileRepo := repository.NewTrainerProfileRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	schedulingService := services.NewSchedulingService(db, sessionRepo, availabilityRepo, userRepo)
	availabilityService := services.NewAvailabilityService(db, availabilityRepo)
	profileService := services.NewProfileService(userRepo, clientProfileRepo, trainerProfileRepo)
	rosterService := services.NewRosterService(userRepo, clientProfileRepo, trainerProfileRepo)
	trainerFilterService := services.NewTrainerFilterService(trainerProfileRepo, schedulingService)

	authHandler := handlers.NewAuthHandler(
		db,
		userRepo,
		clientProfileRepo,
		trainerProfileRepo,
		cfg.JWTSecret,
	)
	profileHandler := handlers.NewProfileHandler(profileService)
	trainerHandler := handlers.NewTrainerHandler(rosterService, trainerFilterService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	sessionHandler := handlers.NewSessionHandler(schedulingService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	v1 := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	users := v1.Group("/users")
	users.Get("/profile", profileHandler.GetOwnProfile)
	users.Get("/:id/profile", profileHandler.GetUserProfile)

	clients := v1.Group("/clients")
	clients.Get("", trainerHandler.ListClients)
	clients.Put("/profile", profileHandler.UpdateClientProfile)

	trainers := v1.Group("/trainers")
	trainers.Get("", trainerHandler.ListTrainers)
	trainers.Get("/available", trainerHandler.ListAvailableTrainers)
	trainers.Put("/profile", profileHandler.UpdateTrainerProfile)

	availability := v1.Group("/availability")
	availability.Put("/week", availabilityHandler.UpsertWeek)
	availability.Get("/users/:id", availabilityHandler.GetUserWeek)

	sessions := v1.Group("/sessions")
	sessions.Post("", sessionHandler.CreateSession)
	sessions.Get("", sessionHandler.ListSessions)
	sessions.Get("/:id", sessionHandler.GetSession)
	sessions.Put("/:id/status", sessionHandler.UpdateStatus)
}
