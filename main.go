package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"debt-agent/config"
	httpLayer "debt-agent/http"
	"debt-agent/repository"
	"debt-agent/service"
)

func main() {
	cfg := config.Load()

	scenarioRepo := repository.NewScenarioRepositoryMemory()

	var cache repository.CacheRepository
	if cfg.RedisAddr != "" {
		cache = repository.NewRedisCache(cfg.RedisAddr)
	} else {
		cache = repository.NewMockCache()
	}

	scenarioService := service.NewScenarioService(scenarioRepo, cache, cfg.Calculation)
	consolidationService := service.NewConsolidationService(scenarioService)
	settlementService := service.NewSettlementService(scenarioService)
	whatIfService := service.NewWhatIfService(scenarioService)
	comparisonService := service.NewComparisonService(scenarioService)

	scenarioHandler := httpLayer.NewScenarioHandler(scenarioService, consolidationService, settlementService, whatIfService)
	recommendationHandler := httpLayer.NewStrategyRecommendationHandler(comparisonService)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle(
		"/scenario/simulate",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(scenarioHandler.Simulate),
		),
	)

	mux.Handle(
		"/scenario/consolidation",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(scenarioHandler.SimulateConsolidation),
		),
	)

	mux.Handle(
		"/scenario/settlement",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(scenarioHandler.SimulateSettlement),
		),
	)

	mux.Handle(
		"/scenario/balance-transfer",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(scenarioHandler.SimulateBalanceTransfer),
		),
	)

	mux.Handle(
		"/scenario/rate-change",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(scenarioHandler.SimulateRateChange),
		),
	)

	mux.Handle(
		"/scenario/timelines",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(scenarioHandler.GenerateTimelines),
		),
	)

	mux.Handle(
		"/scenario/recommend-strategy",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(recommendationHandler.RecommendStrategy),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("🚀 API corriendo en http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
