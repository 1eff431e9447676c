package repositories

import (
	"context"
	"database/sql"
	"delivery-zone-service/internal/adapters/codec"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/platform/obs"
	"delivery-zone-service/internal/ports"
	"errors"
	"fmt"
	"log"
)

// Postgres-backed implementation of the restaurant and zone ports.
type PostgresDeliveryRepository struct{ DB *sql.DB }

func NewPostgresDeliveryRepository(db *sql.DB) *PostgresDeliveryRepository {
	return &PostgresDeliveryRepository{DB: db}
}

// Return the delivery profile of one restaurant.
func (p *PostgresDeliveryRepository) GetDeliveryProfile(
	ctx context.Context,
	restaurantID string,
) (_ domain.RestaurantDeliveryProfile, err error) {
	defer obs.Time(ctx, "restaurants.GetDeliveryProfile")(&err)

	if p.DB == nil {
		return domain.RestaurantDeliveryProfile{}, errors.New("postgres delivery repository: DB is nil")
	}

	return getProfile(ctx, p.DB, restaurantID)
}

// Return the active zones of one restaurant ordered by priority.
func (p *PostgresDeliveryRepository) ListActiveZones(
	ctx context.Context,
	restaurantID string,
) (_ []domain.DeliveryZone, err error) {
	defer obs.Time(ctx, "zones.ListActiveZones")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres delivery repository: DB is nil")
	}

	return listActiveZones(ctx, p.DB, restaurantID)
}

// Read profile and zones inside one read-only repeatable-read transaction so
// both come from the same database snapshot.
func (p *PostgresDeliveryRepository) GetDeliverySnapshot(
	ctx context.Context,
	restaurantID string,
) (_ ports.DeliverySnapshot, err error) {
	defer obs.Time(ctx, "delivery.GetDeliverySnapshot")(&err)

	if p.DB == nil {
		return ports.DeliverySnapshot{}, errors.New("postgres delivery repository: DB is nil")
	}

	tx, err := p.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return ports.DeliverySnapshot{}, fmt.Errorf("get delivery snapshot: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	profile, err := getProfile(ctx, tx, restaurantID)
	if err != nil {
		return ports.DeliverySnapshot{}, err
	}

	var zones []domain.DeliveryZone
	if profile.Origin != nil {
		zones, err = listActiveZones(ctx, tx, restaurantID)
		if err != nil {
			return ports.DeliverySnapshot{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return ports.DeliverySnapshot{}, fmt.Errorf("get delivery snapshot: commit tx: %w", err)
	}

	return ports.DeliverySnapshot{Profile: profile, Zones: zones}, nil
}

// Shared by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getProfile(ctx context.Context, q querier, restaurantID string) (domain.RestaurantDeliveryProfile, error) {
	query := `
	SELECT
		origin_lat,
		origin_lng,
		default_delivery_fee
	FROM restaurants
	WHERE id = $1;
	`

	var lat, lng sql.NullFloat64
	var fee float64
	err := q.QueryRowContext(ctx, query, restaurantID).Scan(&lat, &lng, &fee)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RestaurantDeliveryProfile{}, fmt.Errorf("get delivery profile %q: %w", restaurantID, domain.ErrRestaurantNotFound)
	}
	if err != nil {
		return domain.RestaurantDeliveryProfile{}, fmt.Errorf("get delivery profile: query restaurants table: %w", err)
	}

	profile := domain.RestaurantDeliveryProfile{RestaurantID: restaurantID, DefaultDeliveryFee: fee}
	if lat.Valid && lng.Valid {
		profile.Origin = &domain.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
	}

	return profile, nil
}

func listActiveZones(ctx context.Context, q querier, restaurantID string) ([]domain.DeliveryZone, error) {
	query := `
	SELECT
		id,
		name,
		geometry,
		radius_km,
		fee_rule,
		min_order_amount,
		max_delivery_time_minutes,
		priority
	FROM delivery_zones
	WHERE restaurant_id = $1
		AND is_active
	ORDER BY priority, id;
	`

	rows, err := q.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list active zones: query delivery_zones table: %w", err)
	}
	defer rows.Close()

	zones := make([]domain.DeliveryZone, 0, 8)
	for rows.Next() {
		var (
			id, name            string
			geometryRaw, feeRaw []byte
			radius, minOrder    sql.NullFloat64
			maxMinutes          sql.NullInt64
			priority            int
		)
		if err := rows.Scan(&id, &name, &geometryRaw, &radius, &feeRaw, &minOrder, &maxMinutes, &priority); err != nil {
			return nil, fmt.Errorf("list active zones: scan row: %w", err)
		}

		z, err := zoneFromRow(id, name, geometryRaw, radius, feeRaw, minOrder, maxMinutes, priority)
		if err != nil {
			// One broken zone must not fail the whole read.
			log.Printf("zone skipped: restaurant=%s zone=%s err=%v", restaurantID, id, err)
			continue
		}
		z.RestaurantID = restaurantID
		zones = append(zones, z)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active zones: row iteration: %w", err)
	}

	return zones, nil
}

func zoneFromRow(
	id, name string,
	geometryRaw []byte,
	radius sql.NullFloat64,
	feeRaw []byte,
	minOrder sql.NullFloat64,
	maxMinutes sql.NullInt64,
	priority int,
) (domain.DeliveryZone, error) {
	var radiusKm *float64
	if radius.Valid {
		radiusKm = &radius.Float64
	}

	geometry, err := codec.DecodeGeometry(geometryRaw, radiusKm)
	if err != nil {
		return domain.DeliveryZone{}, err
	}
	fee, err := codec.DecodeFeeRule(feeRaw)
	if err != nil {
		return domain.DeliveryZone{}, err
	}

	z := domain.DeliveryZone{
		ID:       id,
		Name:     name,
		Geometry: geometry,
		FeeRule:  fee,
		IsActive: true,
		Priority: priority,
	}
	if minOrder.Valid {
		v := minOrder.Float64
		z.MinOrderAmount = &v
	}
	if maxMinutes.Valid {
		v := int(maxMinutes.Int64)
		z.MaxDeliveryTimeMinutes = &v
	}

	if err := z.Validate(); err != nil {
		return domain.DeliveryZone{}, err
	}

	return z, nil
}
