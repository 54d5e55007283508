// ==============================================================================
// NETTING SERVICE MAIN - cmd/netting/main.go
// ==============================================================================
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"kyd-netting/internal/currency"
	"kyd-netting/internal/handler"
	"kyd-netting/internal/middleware"
	"kyd-netting/internal/netting"
	"kyd-netting/internal/painfile"
	"kyd-netting/pkg/config"
	"kyd-netting/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New("netting-service")

	log.Info("Starting netting service", map[string]interface{}{
		"port": cfg.Server.Port,
	})

	skeletonBytes, err := os.ReadFile(cfg.Netting.SkeletonPath)
	if err != nil {
		log.Fatal("Failed to read pain.001 skeleton", map[string]interface{}{
			"error": err.Error(),
			"path":  cfg.Netting.SkeletonPath,
		})
	}

	skeleton, err := painfile.ParseSkeleton(skeletonBytes)
	if err != nil {
		log.Fatal("Skeleton failed sanity parsing", map[string]interface{}{
			"error": err.Error(),
		})
	}

	registry := currency.DefaultRegistry()
	validator := netting.NewValidator(registry)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.URL,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redisClient.Close()

	log.Info("Redis connected", nil)

	nettingHandler := handler.NewNettingHandler(validator, skeleton, log)

	r := mux.NewRouter()

	r.Use(middleware.CORS)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recovery)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.NewLoggingMiddleware(log).Log)
	r.Use(middleware.NewRateLimiter(redisClient, cfg.Netting.RateLimitPerMin, time.Minute).Limit)

	idempotency := middleware.NewIdempotencyMiddleware(redisClient, cfg.Netting.IdempotencyTTL)

	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	api := r.PathPrefix("/v1").Subrouter()
	api.Use(idempotency.Require)
	nettingHandler.RegisterRoutes(api)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Netting service started", map[string]interface{}{
			"address": srv.Addr,
		})

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down netting service...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Netting service forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("Netting service stopped gracefully", nil)
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"netting"}`))
}
