package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all process-wide settings. Everything comes from environment
// variables at startup; nothing reads the environment after Load returns.
type Config struct {
	Port          string
	DatabasePath  string
	JWTSecret     string
	BcryptCost    int
	GeoEndpoint   string
	PublicBaseURL string

	// Optional bootstrap credentials for an initial super_admin account.
	SeedAdminEmail    string
	SeedAdminPassword string
}

const (
	defaultPort        = "8080"
	defaultDBPath      = "campushub.db"
	defaultBcryptCost  = 12
	defaultGeoEndpoint = "http://ip-api.com/json"
)

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              envOrDefault("PORT", defaultPort),
		DatabasePath:      envOrDefault("DATABASE_PATH", defaultDBPath),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		BcryptCost:        defaultBcryptCost,
		GeoEndpoint:       envOrDefault("GEOIP_ENDPOINT", defaultGeoEndpoint),
		PublicBaseURL:     os.Getenv("PUBLIC_BASE_URL"),
		SeedAdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST %q: %w", v, err)
		}
		if cost < 4 || cost > 14 {
			return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cost)
		}
		cfg.BcryptCost = cost
	}

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
