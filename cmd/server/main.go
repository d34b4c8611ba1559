package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/rvillanueva/resort-backoffice/internal/config"
	"github.com/rvillanueva/resort-backoffice/internal/database"
	"github.com/rvillanueva/resort-backoffice/internal/handler"
	"github.com/rvillanueva/resort-backoffice/internal/middleware"
	"github.com/rvillanueva/resort-backoffice/internal/queue"
	"github.com/rvillanueva/resort-backoffice/internal/repository"
	"github.com/rvillanueva/resort-backoffice/internal/router"
	"github.com/rvillanueva/resort-backoffice/internal/storage"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(database.Options{
		User: cfg.DBUser, Pass: cfg.DBPass,
		Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpen,
		MaxIdleConns:    cfg.DBMaxIdle,
		ConnMaxLifetime: time.Duration(cfg.DBConnTTLMin) * time.Minute,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Resolve which optional users columns exist once, at startup, instead
	// of probing the schema on every dashboard search.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	userCols, err := repository.DetectUserColumns(ctx, db)
	cancel()
	if err != nil {
		log.Printf("users schema detection failed, assuming full schema: %v", err)
		userCols = repository.DefaultUserColumns()
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	accommodations := repository.NewAccommodationRepo(db)
	amenities := repository.NewAmenityRepo(db)
	logs := repository.NewLogRepo(db)

	files := storage.NewLocalStore(cfg.StorageRoot, cfg.StorageBaseURL)

	// Consume activity events into the log table in the background; the
	// consumer reconnects on its own if the broker goes away.
	go func() {
		if err := queue.StartActivityConsumer(logs); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	rdb := config.NewRedisClient() // nil when Redis is unreachable

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	e.Static(cfg.StorageBaseURL, cfg.StorageRoot)

	router.RegisterPublic(e,
		handler.NewPublicHandler(accommodations, amenities, users),
		config.LoadCacheConfig(), rdb)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterAdmin(e,
		handler.NewAccommodationHandler(accommodations, files),
		handler.NewAmenityHandler(amenities, files),
		handler.NewUserHandler(cfg, users, userCols, files),
		cfg.JWTSecret)
	router.RegisterLogs(e, handler.NewLogHandler(logs), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
