package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Runtime settings shared by cmd/server and cmd/dbtool.
type Config struct {
	Port               string
	DatabaseURL        string
	RedisURL           string
	ZoneCacheTTL       time.Duration
	RestaurantSeedPath string
	ZoneSeedPath       string
}

// Read the configuration from environment variables.
// Call godotenv.Load first so a local .env file is picked up.
func Load() (Config, error) {
	ttl, err := GetDuration("ZONE_CACHE_TTL", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("config: ZONE_CACHE_TTL must be positive, got %s", ttl)
	}

	port, err := GetInt("PORT", 8080)
	if err != nil {
		return Config{}, err
	}
	if port < 1 || port > 65535 {
		return Config{}, fmt.Errorf("config: PORT must be between 1 and 65535, got %d", port)
	}

	return Config{
		Port:               strconv.Itoa(port),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:           strings.TrimSpace(os.Getenv("REDIS_URL")),
		ZoneCacheTTL:       ttl,
		RestaurantSeedPath: Get("RESTAURANT_SEED_PATH", "data/seeds/restaurants.yaml"),
		ZoneSeedPath:       Get("ZONE_SEED_PATH", "data/seeds/zones.geojson"),
	}, nil
}

// Return the value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}

// Parse a Go duration such as "30s" or "5m".
func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration: %w", key, err)
	}
	return d, nil
}
