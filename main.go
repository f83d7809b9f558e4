package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"moviedb/internal/config"
	"moviedb/internal/database"
	"moviedb/internal/handlers"
	"moviedb/internal/middleware"
	"moviedb/internal/repositories"
	"moviedb/internal/services"
	"moviedb/pkg/rabbitmq"
)

// NewApp wires repositories, services and handlers over db and returns
// the Fiber app. events may be nil, in which case no events are published.
func NewApp(cfg config.Config, db *gorm.DB, events services.EventPublisher) *fiber.App {
	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	genreRepo := repositories.NewGORMGenreRepository(db)
	movieRepo := repositories.NewGORMMovieRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.SessionTTL, cfg.BcryptCost)
	genreService := services.NewGenreService(genreRepo)
	reviewService := services.NewReviewService(reviewRepo, events)
	// MovieService reads reviews through ReviewService for enrichment and the delete policy
	movieService := services.NewMovieService(movieRepo, reviewService, events)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService, cfg.SessionTTL)
	genreHandler := handlers.NewGenreHandler(genreService)
	movieHandler := handlers.NewMovieHandler(movieService, reviewService, genreService, authService)

	app := fiber.New()

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New()) // Request logger

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": events != nil,
		})
	})

	// --- API Routes ---
	// Every /api route sees the session, if any; handlers decide what needs one.
	api := app.Group("/api", middleware.LoadSession(authService))
	authHandler.RegisterRoutes(api)
	genreHandler.RegisterRoutes(api)
	movieHandler.RegisterRoutes(api)

	return app
}

func main() {
	// --- Configuration ---
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}
	cfg, err := config.Load(viper.New())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.SeedGenres(context.Background(), repositories.NewGORMGenreRepository(db), cfg.SeedGenres); err != nil {
		log.Fatalf("Failed to seed genres: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient

		log.Println("Starting RabbitMQ consumer for catalog events...")
		if err := mqClient.ConsumeEvents(rabbitmq.LogEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	} else {
		log.Println("RABBITMQ_URL not set, catalog events disabled")
	}

	app := NewApp(cfg, db, events)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server gracefully stopped")
}
