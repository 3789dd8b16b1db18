// File: citaflow/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"citaflow/config"
	"citaflow/handlers"
	"citaflow/middleware"
	"citaflow/routes"
	"citaflow/services/availability"
	"citaflow/services/booking"
	"citaflow/services/scheduling"
	"citaflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Slot cache: in-process by default, Redis-backed when configured.
	var slotCache availability.SlotCache
	var redisClient *redis.Client
	if config.AppConfig.SlotCacheBackend == "redis" {
		utils.InitSlotCacheClient()
		redisClient = utils.GetSlotCacheClient()
		ttl := time.Duration(config.AppConfig.SlotCacheTTLSec) * time.Second
		slotCache = availability.NewRedisSlotCache(redisClient, ttl, logger)
		logger.Sugar().Infof("main: slot cache backend redis (ttl=%s)", ttl)
	} else {
		slotCache = availability.NewMemorySlotCache()
		logger.Sugar().Info("main: slot cache backend memory")
	}
	utils.StartHealthMonitor(redisClient)

	// Scheduling API client and the availability engine.
	schedulingClient := scheduling.NewHTTPClient(
		config.AppConfig.SchedulingAPIURL,
		time.Duration(config.AppConfig.SchedulingAPITimeoutSec)*time.Second,
	)
	schedulingClient.CityID = config.AppConfig.SchedulingCityID
	fetcher := availability.NewSlotFetcher(schedulingClient, slotCache)
	pipeline := availability.NewPipeline(schedulingClient, fetcher)

	debounce := time.Duration(config.AppConfig.ValidationDebounceMs) * time.Millisecond
	panelService := booking.NewPanelService(pipeline, debounce, availability.NewRealScheduler())
	panelHandler := handlers.NewPanelHandler(panelService)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, panelHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
