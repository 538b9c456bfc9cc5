package main

import (
	"context"
	"database/sql"
	"eld-log-service/internal/adapters/cache"
	"eld-log-service/internal/adapters/routing"
	"eld-log-service/internal/api"
	"eld-log-service/internal/config"
	"eld-log-service/internal/platform/db"
	"eld-log-service/internal/ports"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or SQLite, Redis, ORS) behind ports and
// starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, geocodeCache, err := openGeocodeCache(ctx, cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	var legCache ports.LegCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable, leg cache disabled: addr=%s err=%v", cfg.Redis.Addr, err)
		} else {
			legCache = cache.NewRedisLegCache(rdb, cfg.Redis.LegCacheTTL)
			log.Printf("leg cache enabled: addr=%s ttl=%s", cfg.Redis.Addr, cfg.Redis.LegCacheTTL)
		}
	}

	// Without an ORS key only coordinate literals geocode and every leg
	// falls back to great-circle distance.
	var geocoder ports.Geocoder
	var router ports.LegRouter
	if cfg.ORS.APIKey != "" {
		ors, err := routing.NewORSClient(cfg.ORS.APIKey, cfg.ORS.BaseURL, cfg.ORS.Profile, geocodeCache)
		if err != nil {
			log.Fatal(err)
		}
		geocoder, router = ors, ors
	} else {
		log.Println("ORS_API_KEY not set: geocoding limited to coordinate literals")
	}

	provider := routing.NewTripRouteProvider(geocoder, router, routing.ProviderOptions{
		LegCache:          legCache,
		AverageSpeedMPH:   cfg.Trip.AverageSpeedMPH,
		FuelIntervalMiles: cfg.Trip.FuelIntervalMiles,
	})

	handler := api.NewRouter(provider, api.RouterOptions{AllowedOrigin: cfg.AllowedOrigin})

	// Timeouts are tuned for cold-cache route planning (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
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

	log.Printf("Server listening addr=:%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

// openGeocodeCache picks Postgres when a DATABASE_URL is configured and a
// local SQLite file otherwise. The SQLite schema is created on startup;
// Postgres schema is owned by dbtool.
func openGeocodeCache(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, ports.GeocodeCache, error) {
	if cfg.URL != "" {
		pg, err := db.Open(cfg.URL)
		if err != nil {
			return nil, nil, err
		}
		log.Println("geocode cache: postgres")
		return pg, cache.NewSQLGeocodeCache(pg, cfg.GeocodeCacheTTL), nil
	}

	lite, err := db.OpenSqlite(cfg.SqlitePath)
	if err != nil {
		return nil, nil, err
	}
	if err := cache.InitSchema(ctx, lite, cache.Sqlite); err != nil {
		_ = lite.Close()
		return nil, nil, err
	}
	log.Printf("geocode cache: sqlite path=%s", cfg.SqlitePath)
	return lite, cache.NewSqliteGeocodeCache(lite, cfg.GeocodeCacheTTL), nil
}
