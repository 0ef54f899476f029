// File: timerange/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timerange/config"
	"timerange/database"
	"timerange/database/repository"
	"timerange/handlers"
	"timerange/middleware"
	"timerange/routes"
	"timerange/services/timerange"
	"timerange/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	utils.InitCache()

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))

	// repositories.
	blockedRepo := repository.NewMongoBlockedRepo(database.Database())
	indexCtx, cancelIndex := context.WithTimeout(bgCtx, 10*time.Second)
	if err := blockedRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure blocked interval indexes: %v", err)
	}
	cancelIndex()

	// services.
	blockedService := &timerange.DefaultBlockedService{
		Repo:   blockedRepo,
		Cache:  timerange.NewRedisBlockedCache(utils.GetCacheClient(), config.AppConfig.BlockedCacheTTL),
		Logger: logger.Named("blocked"),
	}
	sessionService := timerange.NewSessionService(blockedService, timerange.Defaults{
		Step:        config.AppConfig.Step(),
		TicksNumber: config.AppConfig.TimelineTicksNumber,
		Location:    config.AppConfig.Location(),
		MaxSessions: config.AppConfig.MaxSessions,
	}, logger.Named("sessions"))
	sessionService.StartSweeper(bgCtx, time.Minute, config.AppConfig.SessionIdleTimeout)

	utils.StartHealthMonitor(bgCtx, utils.GetCacheClient(), database.MongoClient, sessionService.Count)

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewSessionHandler(sessionService),
		handlers.NewBlockedHandler(blockedService),
		handlers.HealthHandler,
	)

	// Register routes; session creation and drag events are rate limited per client.
	routes.RegisterRoutes(router, handlerBundle,
		middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin, config.AppConfig.RateLimitBurst))

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
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
