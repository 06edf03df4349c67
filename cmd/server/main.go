package main // Entry point package

import (
	"context" // Context for startup deadlines
	"log"     // Logging library
	"time"    // Durations for startup timeouts

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/eventease/eventease/internal/blob"       // Object storage for uploaded images
	"github.com/eventease/eventease/internal/config"     // Internal config loader
	"github.com/eventease/eventease/internal/database"   // MySQL pool and migrations
	"github.com/eventease/eventease/internal/handler"    // HTTP handlers
	"github.com/eventease/eventease/internal/middleware" // Response cache middleware
	"github.com/eventease/eventease/internal/repository" // Data access layer
	"github.com/eventease/eventease/internal/router"     // Route registration
	"github.com/eventease/eventease/internal/service"    // Business logic layer
)

func main() {
	_ = godotenv.Load() // Load .env when present; real deployments set env vars directly

	cfg := config.Load() // Load environment config

	// Open the MySQL pool and bring the schema up to date before serving.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.RunMigrations(db, cfg.DBName); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	// Seed reference data and the demo catalog; both are no-ops on a
	// populated database.
	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repository.Seed(seedCtx, db); err != nil {
		log.Fatalf("seed: %v", err)
	}

	// Dial the object store and make sure the image bucket exists.
	blobs, err := blob.New(seedCtx, blob.Config{
		Endpoint:  cfg.BlobEndpoint,
		AccessKey: cfg.BlobAccessKey,
		SecretKey: cfg.BlobSecretKey,
		Bucket:    cfg.BlobBucket,
		UseSSL:    cfg.BlobUseSSL,
	})
	if err != nil {
		log.Fatalf("blob storage: %v", err)
	}

	// Repositories over the shared pool.
	venueRepo := repository.NewVenueRepo(db)
	typeRepo := repository.NewEventTypeRepo(db)
	eventRepo := repository.NewEventRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	// Services wire repositories to the blob store and the publisher.
	venueSvc := service.NewVenueService(venueRepo, blobs)
	eventSvc := service.NewEventService(eventRepo, typeRepo, venueRepo, blobs)
	bookingSvc := service.NewBookingService(bookingRepo, eventRepo, venueRepo)

	// Redis is optional; a nil client degrades the cache to pass-through.
	rdb := config.NewRedisClient()
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e, router.Handlers{
		Venues:   handler.NewVenueHandler(venueSvc),
		Events:   handler.NewEventHandler(eventSvc),
		Bookings: handler.NewBookingHandler(bookingSvc),
		Images:   handler.NewImageHandler(blobs, time.Duration(cfg.SignedURLTTLMin)*time.Minute),
	}, cache)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
