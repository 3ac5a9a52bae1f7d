package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"venue-scout/internal/assistant"
	"venue-scout/internal/config"
	"venue-scout/internal/db"
	apihttp "venue-scout/internal/http"
	"venue-scout/internal/repository"
	"venue-scout/internal/service"
	"venue-scout/internal/synthesis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	assistantClient := assistant.NewHTTPClient(cfg.AssistantBaseURL, cfg.AssistantTimeout, logger)

	results := service.NewMemoryVenueResultStore(cfg.ResultTTL)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using memory result store", zap.Error(err))
		} else {
			results = service.NewRedisVenueResultStore(redisClient, cfg.ResultTTL)
		}
		cancel()
	}

	var saved repository.SavedVenueRepository = assistant.NewSavedVenuesClient(cfg.SavedVenuesBaseURL, cfg.AssistantTimeout, logger)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.Ping(ctxPing, pool)
		cancel()
		if err != nil {
			logger.Fatal("db ping", zap.Error(err))
		}
		pgRepo := repository.NewPgSavedVenueRepository(pool)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			logger.Fatal("ensure saved venues schema", zap.Error(err))
		}
		saved = pgRepo
	}

	var verifier *service.TokenVerifier
	if cfg.JWTSecret != "" {
		verifier = service.NewTokenVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	} else {
		logger.Warn("jwt secret not configured, saved venues are public")
	}

	decorator := service.NewVenueDecorator(synthesis.SourceFor(cfg.SynthDeterministic))
	venueSvc := service.NewVenueService(assistantClient, saved, results, decorator, logger)
	registry := service.NewSessionRegistry(assistantClient, results, service.NewNoticeBoard(0), cfg.ResultTTL, logger)
	go registry.RunSweeper(ctx, time.Minute)

	router := apihttp.NewRouter(
		logger,
		cfg.CORSOrigins,
		verifier,
		apihttp.NewSessionHandler(logger, registry, venueSvc),
		apihttp.NewVenueHandler(logger, venueSvc),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.Bool("deterministic_synthesis", cfg.SynthDeterministic))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}
