package main

import (
	"context"
	"database/sql"
	"delivery-zone-service/internal/adapters/cache"
	"delivery-zone-service/internal/adapters/repositories"
	"delivery-zone-service/internal/config"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/platform/db"
	"fmt"
	"log"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	restaurants, err := repositories.LoadRestaurantSeeds(cfg.RestaurantSeedPath)
	if err != nil {
		log.Fatal(err)
	}
	zones, err := repositories.LoadZoneSeeds(cfg.ZoneSeedPath)
	if err != nil {
		log.Fatal(err)
	}

	if err := initAndSeed(ctx, conn, restaurants, zones); err != nil {
		log.Fatal(err)
	}

	if cfg.RedisURL != "" {
		if err := invalidateSnapshots(ctx, cfg, restaurants); err != nil {
			log.Fatal(err)
		}
	}
}

func initAndSeed(
	ctx context.Context,
	conn *sql.DB,
	restaurants []domain.RestaurantDeliveryProfile,
	zones []domain.DeliveryZone,
) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding database restaurants=%d zones=%d...", len(restaurants), len(zones))
	if err := repositories.SeedDatabase(ctx, conn, restaurants, zones); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}

// Drop cached snapshots so servers read the freshly seeded zones.
func invalidateSnapshots(ctx context.Context, cfg config.Config, restaurants []domain.RestaurantDeliveryProfile) error {
	client, err := cache.OpenRedis(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer client.Close()

	c := cache.NewRedisSnapshotCache(client, nil, cfg.ZoneCacheTTL)
	for _, r := range restaurants {
		if err := c.Invalidate(ctx, r.RestaurantID); err != nil {
			return err
		}
	}
	log.Printf("Invalidated cached snapshots restaurants=%d", len(restaurants))

	return nil
}
