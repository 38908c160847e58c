package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Tracking TrackingConfig
	Firebase FirebaseConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type TrackingConfig struct {
	// CurrentLocationTTL bounds how long a current-position record stays
	// readable without a fresh report.
	CurrentLocationTTL time.Duration
	// NearbyConcurrency bounds concurrent per-candidate location fetches
	// inside a nearby query.
	NearbyConcurrency int
	// NearbyStrictFetch fails the whole nearby query on a store error instead
	// of dropping the affected candidate.
	NearbyStrictFetch      bool
	DefaultHistoryLimit    int
	DefaultMaxHistoryItems int
}

type FirebaseConfig struct {
	ServiceAccountPath string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getenv("PORT", "8088"),
			Env:          getenv("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getenv("MYSQL_DSN", "fixly:fixly@tcp(localhost:3306)/fixly?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       getenvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			AccessSecret:  getenv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: getenv("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "fixly",
		},
		Tracking: TrackingConfig{
			CurrentLocationTTL:     time.Duration(getenvInt("LOCATION_TTL_SEC", 3600)) * time.Second,
			NearbyConcurrency:      getenvInt("NEARBY_CONCURRENCY", 8),
			NearbyStrictFetch:      getenv("NEARBY_STRICT_FETCH", "") == "true",
			DefaultHistoryLimit:    20,
			DefaultMaxHistoryItems: 100,
		},
		Firebase: FirebaseConfig{
			ServiceAccountPath: getenv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
