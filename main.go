// File: clearcare/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clearcare/config"
	"clearcare/cron"
	"clearcare/database"
	analyticsRepo "clearcare/database/repository/analytics"
	"clearcare/handlers"
	"clearcare/models"
	"clearcare/routes"
	"clearcare/services/estimate"
	ai "clearcare/services/intelligence"
	"clearcare/services/session"
	"clearcare/services/tasks"
	"clearcare/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Warnf("main: cloudinary unavailable, card archiving disabled: %v", err)
		cloudinaryStorageService = nil
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Session store: Redis when reachable, in-memory otherwise.
	var sessions session.Store
	if redisClient := utils.GetSessionCacheClient(); redisClient != nil {
		sessions = session.NewRedisStore(redisClient, config.SessionTTL())
	} else {
		logger.Warn("main: redis unavailable, session context will not survive restarts")
		sessions = session.NewMemoryStore()
	}

	// Analytics sink behind the task queue.
	queryLogRepo := analyticsRepo.NewMongoQueryLogRepo()
	cron.InitAnalyticsWorker(queryLogRepo)
	taskClient := tasks.NewClient()

	// Capability clients.
	gemini := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	npi := ai.NewNPIClient(config.AppConfig.NPIRegistryURL)
	tavily := ai.NewTavilyClient(config.AppConfig.TavilyAPIKey)
	var synth ai.Synthesizer
	if config.AppConfig.TTSServiceURL != "" {
		synth = ai.NewTTSClient(config.AppConfig.TTSServiceURL)
	}

	// Pipeline.
	estimator := estimate.NewService(estimate.Deps{
		Sessions:     sessions,
		Severity:     estimate.NewSeverityAssessor(gemini),
		Locator:      estimate.NewHospitalLocator(npi),
		Classifier:   estimate.NewNetworkClassifier(tavily),
		Estimator:    estimate.NewCostEstimator(),
		Alternatives: estimate.NewAlternativeFinder(config.AppConfig.AltMinSavings),
		Generator:    estimate.NewAnswerGenerator(gemini),
		Scorer:       estimate.NewCritiqueScorer(gemini),
		RecordQuery: func(record models.QueryRecord) {
			tasks.EnqueueQueryRecord(taskClient, record)
		},
	}, estimate.OptionsFromConfig())

	handlerBundle := handlers.NewHandlerBundle(estimator, gemini, gemini, synth, cloudinaryStorageService)

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetSessionCacheClient(), database.MongoClient)

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
	_ = taskClient.Close()

	logger.Sugar().Info("main: server stopped gracefully")
}
