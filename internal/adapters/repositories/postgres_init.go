package repositories

import (
	"context"
	"database/sql"
	"delivery-zone-service/internal/adapters/codec"
	"delivery-zone-service/internal/domain"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for restaurants and delivery zones.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRestaurantsQuery := `
	CREATE TABLE IF NOT EXISTS restaurants (
		id TEXT PRIMARY KEY,
		origin_lat DOUBLE PRECISION NULL,
		origin_lng DOUBLE PRECISION NULL,
		default_delivery_fee DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`

	createZonesQuery := `
	CREATE TABLE IF NOT EXISTS delivery_zones (
		id TEXT PRIMARY KEY,
		restaurant_id TEXT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		geometry JSONB NOT NULL,
		radius_km DOUBLE PRECISION NULL,
		fee_rule JSONB NOT NULL,
		min_order_amount DOUBLE PRECISION NULL,
		max_delivery_time_minutes INTEGER NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		priority INTEGER NOT NULL DEFAULT 0
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_delivery_zones_restaurant_priority
	ON delivery_zones(restaurant_id, priority) WHERE is_active;
	`

	statements := []string{
		createRestaurantsQuery,
		createZonesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Upsert restaurants and zones in one transaction.
func SeedDatabase(
	ctx context.Context,
	db *sql.DB,
	restaurants []domain.RestaurantDeliveryProfile,
	zones []domain.DeliveryZone,
) error {
	if db == nil {
		return errors.New("seed database: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed database: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	restaurantStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO restaurants (id, origin_lat, origin_lng, default_delivery_fee)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE
	SET origin_lat = EXCLUDED.origin_lat,
		origin_lng = EXCLUDED.origin_lng,
		default_delivery_fee = EXCLUDED.default_delivery_fee;
	`)
	if err != nil {
		return fmt.Errorf("seed database: prepare restaurant insert: %w", err)
	}
	defer restaurantStmt.Close()

	for _, r := range restaurants {
		var lat, lng sql.NullFloat64
		if r.Origin != nil {
			lat = sql.NullFloat64{Float64: r.Origin.Lat, Valid: true}
			lng = sql.NullFloat64{Float64: r.Origin.Lng, Valid: true}
		}
		if _, err := restaurantStmt.ExecContext(ctx, r.RestaurantID, lat, lng, r.DefaultDeliveryFee); err != nil {
			return fmt.Errorf("seed database: insert restaurant id=%q: %w", r.RestaurantID, err)
		}
	}

	zoneStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO delivery_zones (
		id, restaurant_id, name, geometry, radius_km, fee_rule,
		min_order_amount, max_delivery_time_minutes, is_active, priority
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (id) DO UPDATE
	SET restaurant_id = EXCLUDED.restaurant_id,
		name = EXCLUDED.name,
		geometry = EXCLUDED.geometry,
		radius_km = EXCLUDED.radius_km,
		fee_rule = EXCLUDED.fee_rule,
		min_order_amount = EXCLUDED.min_order_amount,
		max_delivery_time_minutes = EXCLUDED.max_delivery_time_minutes,
		is_active = EXCLUDED.is_active,
		priority = EXCLUDED.priority;
	`)
	if err != nil {
		return fmt.Errorf("seed database: prepare zone insert: %w", err)
	}
	defer zoneStmt.Close()

	for _, z := range zones {
		geometry, radius, err := codec.EncodeGeometry(z.Geometry)
		if err != nil {
			return fmt.Errorf("seed database: zone id=%q: %w", z.ID, err)
		}
		fee, err := codec.EncodeFeeRule(z.FeeRule)
		if err != nil {
			return fmt.Errorf("seed database: zone id=%q: %w", z.ID, err)
		}

		var minOrder sql.NullFloat64
		if z.MinOrderAmount != nil {
			minOrder = sql.NullFloat64{Float64: *z.MinOrderAmount, Valid: true}
		}
		var maxMinutes sql.NullInt64
		if z.MaxDeliveryTimeMinutes != nil {
			maxMinutes = sql.NullInt64{Int64: int64(*z.MaxDeliveryTimeMinutes), Valid: true}
		}
		var radiusKm sql.NullFloat64
		if radius != nil {
			radiusKm = sql.NullFloat64{Float64: *radius, Valid: true}
		}

		if _, err := zoneStmt.ExecContext(ctx,
			z.ID, z.RestaurantID, z.Name, string(geometry), radiusKm, string(fee),
			minOrder, maxMinutes, z.IsActive, z.Priority,
		); err != nil {
			return fmt.Errorf("seed database: insert zone id=%q: %w", z.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed database: commit tx: %w", err)
	}

	return nil
}
