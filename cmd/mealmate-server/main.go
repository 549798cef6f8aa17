package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"mealmate/internal/api"
	"mealmate/internal/auth"
	"mealmate/internal/config"
	"mealmate/internal/devicestore"
	"mealmate/internal/docstore"
	"mealmate/internal/mealplan"
	"mealmate/internal/metrics"
	"mealmate/internal/profile"
	"mealmate/internal/recipes"
	"mealmate/internal/shopping"
	"mealmate/pkg/logger"
)

const (
	sessionTTL = 30 * 24 * time.Hour

	// Generation metrics older than this are pruned.
	metricsRetentionDays = 90
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel)
	l.Info("Starting mealmate server...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Document store
	var docs docstore.Store
	if cfg.FirebaseProjectID != "" {
		firestoreStore, err := docstore.NewFirestore(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
		if err != nil {
			l.Fatalf("Failed to connect to Firestore: %v", err)
		}
		defer firestoreStore.Close()
		docs = firestoreStore
	} else {
		l.Warn("FIREBASE_PROJECT_ID not set, using in-memory document store")
		docs = docstore.NewMemory()
	}

	// Device database
	device, err := devicestore.Open(cfg.DeviceDBPath)
	if err != nil {
		l.Fatalf("Failed to open device database: %v", err)
	}
	defer device.Close()

	// Services
	searcher := recipes.NewClient(cfg)
	metricsStore := metrics.NewStore(device.SQL())
	server := api.NewServer(
		docs,
		shopping.NewManager(docs, l),
		mealplan.NewStore(docs, l),
		mealplan.NewGenerator(searcher, l),
		profile.NewStore(docs, l),
		metricsStore,
		device,
		auth.NewService(cfg.SessionSigningKey, sessionTTL),
		l,
	)

	// Prune old generation metrics once a day.
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := metricsStore.Cleanup(ctx, metricsRetentionDays)
				if err != nil {
					l.WithError(err).Warn("Failed to prune generation metrics")
					continue
				}
				if removed > 0 {
					l.Infof("Pruned %d old generation metrics", removed)
				}
			}
		}
	}()

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.Handler(),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("Received shutdown signal...")
		cancel()
	}()

	go func() {
		l.Infof("HTTP server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Errorf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()

	l.Info("Shutting down HTTP server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		l.Errorf("HTTP server shutdown error: %v", err)
	}

	l.Info("mealmate server stopped")
}
