package main

import (
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"courseload/db"
	"courseload/internal/estimate"
	"courseload/internal/model"
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

	for {
		_, err := pipeline.RefreshPass()
		if err != nil {
			// Missing credentials just means the user has not finished
			// setup; the prior cache stays as-is either way.
			if errors.Is(err, orchestrator.ErrSetupRequired) {
				slog.Info("refresh skipped, setup not complete")
			} else {
				slog.Error("refresh pass failed", "error", err)
			}
		}

		time.Sleep(refreshInterval(settingsRepo))
	}
}

// refreshInterval re-reads the configured interval each cycle so a changed
// setting applies without restarting the process.
func refreshInterval(settingsRepo *repository.SettingsRepository) time.Duration {
	settings, err := settingsRepo.LoadSettings()
	if err != nil {
		slog.Error("error loading settings for interval", "error", err)
		return model.DefaultRefreshMinutes * time.Minute
	}
	return time.Duration(settings.RefreshMinutes) * time.Minute
}
