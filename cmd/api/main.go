package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"courseload/db"
	"courseload/internal/estimate"
	"courseload/internal/handler"
	"courseload/internal/orchestrator"
	"courseload/internal/repository"
	"courseload/pkg/lms"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	settingsRepo := repository.NewSettingsRepository(db.DB)
	if err := settingsRepo.EnsureSchema(); err != nil {
		log.Fatalf("error ensuring settings schema: %v", err)
	}
	snapshotRepo := repository.NewSnapshotRepository(db.Redis)

	engine := estimate.NewEngine(settingsRepo)
	pipeline := orchestrator.New(lms.NewClient(), engine, snapshotRepo, settingsRepo)

	assignmentsHandler := handler.NewAssignmentsHandler(pipeline, snapshotRepo)
	estimateHandler := handler.NewEstimateHandler(pipeline)
	settingsHandler := handler.NewSettingsHandler(settingsRepo)

	r := gin.Default()

	// The extension talks to this API from its own origin.
	allowedOrigins := []string{"http://localhost:3000"}
	if origin := os.Getenv("EXTENSION_ORIGIN"); origin != "" {
		allowedOrigins = append(allowedOrigins, origin)
	}

	slog.Info("AllowOrigins:", "origins", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/assignments", assignmentsHandler.GetAssignments)
	r.POST("/assignments/refresh", assignmentsHandler.Refresh)
	r.GET("/assignments/cached", assignmentsHandler.GetCached)
	r.GET("/assignments/upcoming", assignmentsHandler.GetUpcoming)
	r.POST("/estimate", estimateHandler.EstimateSingle)
	r.GET("/connection/test", assignmentsHandler.TestConnection)
	r.GET("/notifications/latest", assignmentsHandler.GetLatestNotification)
	r.GET("/settings", settingsHandler.GetSettings)
	r.PUT("/settings", settingsHandler.UpdateSettings)
	r.GET("/health", assignmentsHandler.GetHealth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err = r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
