package main

import (
	"context"
	"database/sql"
	"delivery-zone-service/internal/adapters/cache"
	"delivery-zone-service/internal/adapters/repositories"
	"delivery-zone-service/internal/api"
	"delivery-zone-service/internal/api/handlers"
	"delivery-zone-service/internal/config"
	"delivery-zone-service/internal/platform/db"
	"delivery-zone-service/internal/platform/metrics"
	"delivery-zone-service/internal/ports"
	"delivery-zone-service/internal/services"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or in-memory seeds, optional Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]handlers.HealthCheck{}

	repo, closeRepo, err := openRepository(ctx, cfg, checks)
	if err != nil {
		log.Fatal(err)
	}
	defer closeRepo()

	if cfg.RedisURL != "" {
		client, err := cache.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()

		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		repo = cache.NewRedisSnapshotCache(client, repo, cfg.ZoneCacheTTL)
		log.Printf("Zone snapshot cache enabled ttl=%s", cfg.ZoneCacheTTL)
	}

	collector, err := metrics.NewCollector(nil)
	if err != nil {
		log.Fatal(err)
	}

	var validator services.DeliveryValidator = services.NewZoneValidator(repo, repo)
	validator = &services.LoggingValidator{Next: validator}
	validator = &services.InstrumentedValidator{Next: validator, Metrics: collector}

	router := api.NewRouter(validator, collector, checks)

	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

// Use Postgres when DATABASE_URL is set, otherwise an in-memory repository loaded from the seed files.
func openRepository(
	ctx context.Context,
	cfg config.Config,
	checks map[string]handlers.HealthCheck,
) (ports.DeliverySnapshotRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		repo, err := loadMemoryRepository(cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Using in-memory repository restaurants=%s zones=%s", cfg.RestaurantSeedPath, cfg.ZoneSeedPath)
		return repo, func() {}, nil
	}

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	checks["postgres"] = conn.PingContext

	return repositories.NewPostgresDeliveryRepository(conn), func() { closeDB(conn) }, nil
}

func loadMemoryRepository(cfg config.Config) (*repositories.MemoryDeliveryRepository, error) {
	restaurants, err := repositories.LoadRestaurantSeeds(cfg.RestaurantSeedPath)
	if err != nil {
		return nil, fmt.Errorf("load memory repository: %w", err)
	}
	zones, err := repositories.LoadZoneSeeds(cfg.ZoneSeedPath)
	if err != nil {
		return nil, fmt.Errorf("load memory repository: %w", err)
	}

	repo := repositories.NewMemoryDeliveryRepository()
	repositories.SeedMemory(repo, restaurants, zones)
	return repo, nil
}

func closeDB(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		log.Printf("close database: %v", err)
	}
}
