package cache

import (
	"context"
	"database/sql"
	"eld-log-service/internal/domain"
	"eld-log-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLGeocodeCache is a Postgres-backed cache mapping normalized addresses to
// coordinates. Rows older than MaxAge are treated as misses.
type SQLGeocodeCache struct {
	DB     *sql.DB
	MaxAge time.Duration
	now    func() time.Time
}

func NewSQLGeocodeCache(db *sql.DB, maxAge time.Duration) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db, MaxAge: maxAge, now: time.Now}
}

// Fetch cached coordinates for the given addresses.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	q := `
	SELECT address, lon, lat
	FROM geocode_cache
	WHERE address = ANY($1::text[])
		AND updated_at >= $2;
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq, s.cutoff())
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	found, err := scanCoordinates(rows, len(uniq))
	if err != nil {
		return nil, err
	}

	return byRequested(addresses, found), nil
}

// Store address -> coordinate mappings, refreshing existing rows.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO geocode_cache (address, lon, lat, updated_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (address) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		updated_at = EXCLUDED.updated_at;
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	now := s.now().UTC()
	for addr, c := range results {
		key := cacheKey(addr)
		if key == "" {
			return fmt.Errorf("insert geocode cache: empty address key")
		}

		if _, err := stmt.ExecContext(ctx, key, c.Lon, c.Lat, now); err != nil {
			return fmt.Errorf("insert geocode cache address=%q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}

func (s *SQLGeocodeCache) cutoff() time.Time {
	if s.MaxAge <= 0 {
		return time.Time{}
	}
	return s.now().UTC().Add(-s.MaxAge)
}

// cacheKey folds case and whitespace so equivalent addresses share a row.
func cacheKey(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

// uniqueKeys returns the distinct non-empty cache keys of addresses.
func uniqueKeys(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	uniq := make([]string, 0, len(addresses))
	for _, a := range addresses {
		k := cacheKey(a)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}
	return uniq
}

// byRequested re-keys found (keyed by cache key) by the caller's addresses.
func byRequested(addresses []string, found map[string]domain.Coordinates) map[string]domain.Coordinates {
	out := make(map[string]domain.Coordinates, len(found))
	for _, a := range addresses {
		if c, ok := found[cacheKey(a)]; ok {
			out[a] = c
		}
	}
	return out
}

func scanCoordinates(rows *sql.Rows, size int) (map[string]domain.Coordinates, error) {
	out := make(map[string]domain.Coordinates, size)
	for rows.Next() {
		var addr string
		var lon, lat float64
		if err := rows.Scan(&addr, &lon, &lat); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[addr] = domain.Coordinates{Lon: lon, Lat: lat}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}
	return out, nil
}
