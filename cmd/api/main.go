package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"nail-llm/internal/config"
	"nail-llm/internal/db"
	apihttp "nail-llm/internal/http"
	"nail-llm/internal/llm"
	"nail-llm/internal/repository"
	"nail-llm/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var resultRepo repository.ResultRepository
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		resultRepo = repository.NewPgResultRepository(pool)
	} else {
		logger.Warn("database not configured, results will not be archived")
	}

	sessionStore := service.NewMemorySessionStore(0)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory sessions", zap.Error(err))
		} else {
			sessionStore = service.NewRedisSessionStore(redisClient, 0)
		}
		cancel()
	}

	// Barrido periodico de sesiones vencidas (no-op para redis).
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			sessionStore.Sweep()
		}
	}()

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)
	imageClient := llm.NewHTTPImageClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.ImageModel, logger)

	freeSpecSvc := service.NewFreeSpecService(llmClient, logger)
	candidateSvc := service.NewCandidateService(llmClient, logger)
	elicitSvc := service.NewElicitationService(freeSpecSvc, candidateSvc, sessionStore, imageClient, resultRepo, logger)

	makeupHandler := apihttp.NewMakeupHandler(logger, elicitSvc)
	router := apihttp.NewRouter(logger, cfg.AllowedOrigins, makeupHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
