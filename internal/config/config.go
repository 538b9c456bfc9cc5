// Package config loads service settings from the environment, an optional
// .env file and an optional YAML file.
//
// Precedence, highest first: environment, YAML file, built-in defaults.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port          string         `yaml:"port"`
	AllowedOrigin string         `yaml:"allowed_origin"`
	Database      DatabaseConfig `yaml:"database"`
	Redis         RedisConfig    `yaml:"redis"`
	ORS           ORSConfig      `yaml:"ors"`
	Trip          TripConfig     `yaml:"trip"`
}

// DatabaseConfig selects the geocode cache store. A non-empty URL means
// Postgres; otherwise SqlitePath is used.
type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	SqlitePath      string        `yaml:"sqlite_path"`
	GeocodeCacheTTL time.Duration `yaml:"geocode_cache_ttl"`
}

type RedisConfig struct {
	Addr        string        `yaml:"addr"`
	LegCacheTTL time.Duration `yaml:"leg_cache_ttl"`
}

type ORSConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Profile string `yaml:"profile"`
}

type TripConfig struct {
	AverageSpeedMPH   float64 `yaml:"average_speed_mph"`
	FuelIntervalMiles float64 `yaml:"fuel_interval_miles"`
}

// Load reads .env (if present), the YAML file named by CONFIG_PATH (if set)
// and then applies environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	var data []byte
	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		data = b
	}

	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse unmarshals YAML bytes into a validated Config with defaults applied.
// The environment is not consulted.
func Parse(data []byte) (*Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte) (*Config, error) {
	var cfg Config
	if len(data) == 0 {
		return &cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	return &cfg, nil
}

// applyEnv overrides fields from non-empty environment variables.
func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str("PORT", &c.Port)
	str("ALLOWED_ORIGIN", &c.AllowedOrigin)
	str("DATABASE_URL", &c.Database.URL)
	str("SQLITE_PATH", &c.Database.SqlitePath)
	str("REDIS_ADDR", &c.Redis.Addr)
	str("ORS_API_KEY", &c.ORS.APIKey)
	str("ORS_BASE_URL", &c.ORS.BaseURL)
	str("ORS_PROFILE", &c.ORS.Profile)

	var errs []string
	num := func(key string, dst *float64) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
			return
		}
		*dst = f
	}
	dur := func(key string, dst *time.Duration) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
			return
		}
		*dst = d
	}
	num("AVERAGE_SPEED_MPH", &c.Trip.AverageSpeedMPH)
	num("FUEL_INTERVAL_MILES", &c.Trip.FuelIntervalMiles)
	dur("LEG_CACHE_TTL", &c.Redis.LegCacheTTL)
	dur("GEOCODE_CACHE_TTL", &c.Database.GeocodeCacheTTL)

	if len(errs) > 0 {
		return fmt.Errorf("config: environment: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.AllowedOrigin == "" {
		c.AllowedOrigin = "*"
	}
	if c.Database.URL == "" && c.Database.SqlitePath == "" {
		c.Database.SqlitePath = "data/app.db"
	}
	if c.Redis.LegCacheTTL == 0 {
		c.Redis.LegCacheTTL = 24 * time.Hour
	}
	if c.ORS.BaseURL == "" {
		c.ORS.BaseURL = "https://api.openrouteservice.org"
	}
	if c.ORS.Profile == "" {
		c.ORS.Profile = "driving-hgv"
	}
	if c.Trip.AverageSpeedMPH == 0 {
		c.Trip.AverageSpeedMPH = 60
	}
	if c.Trip.FuelIntervalMiles == 0 {
		c.Trip.FuelIntervalMiles = 1000
	}
}

func (c *Config) validate() error {
	var errs []string
	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("port %q is not a number", c.Port))
	}
	if c.Trip.AverageSpeedMPH <= 0 {
		errs = append(errs, "trip.average_speed_mph must be positive")
	}
	if c.Trip.FuelIntervalMiles <= 0 {
		errs = append(errs, "trip.fuel_interval_miles must be positive")
	}
	if c.Redis.LegCacheTTL < 0 {
		errs = append(errs, "redis.leg_cache_ttl must not be negative")
	}
	if c.Database.GeocodeCacheTTL < 0 {
		errs = append(errs, "database.geocode_cache_ttl must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
