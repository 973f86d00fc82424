package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nutricoach/backend/config"
	"github.com/nutricoach/backend/internal/api"
	"github.com/nutricoach/backend/internal/database"
	"github.com/nutricoach/backend/internal/middleware"
	"github.com/nutricoach/backend/internal/router"
	"github.com/nutricoach/backend/internal/server"
	"github.com/nutricoach/backend/internal/service"
	"github.com/nutricoach/backend/internal/store"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	ctx := context.Background()
	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		// Image storage is optional; the rest of the API works without it.
		log.Printf("Object storage unavailable, image routes disabled: %v", err)
		s3Config = nil
	}

	records := store.NewRecordStore(db)
	llm := service.NewLLMService(cfg)
	planner := service.NewPlannerService(records, llm)
	chat := service.NewChatService(records, llm, cfg.ChatStopOnModelReply)
	vision := service.NewVisionService(llm, redisClient)
	export := service.NewExportService(cfg)
	limiter := middleware.NewGenerationRateLimiter(redisClient)

	handlers := router.Handlers{
		Profile: api.NewProfileHandler(records),
		Planner: api.NewPlannerHandler(planner, export, records, limiter),
		Chat:    api.NewChatHandler(chat, limiter),
		Calorie: api.NewCalorieHandler(records),
		Vision:  api.NewVisionHandler(vision, limiter),
	}
	if s3Config != nil {
		handlers.Media = api.NewMediaHandler(service.NewMediaService(s3Config))
	}

	srv := server.NewServer(router.SetupRouter(cfg, handlers))

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start(net.JoinHostPort(cfg.ServerHost, cfg.ServerPort))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
