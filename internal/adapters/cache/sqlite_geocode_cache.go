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

// SQLite backed geocode cache for single-node deployments.
// updated_at is stored as unix seconds.
type SqliteGeocodeCache struct {
	DB     *sql.DB
	MaxAge time.Duration
	now    func() time.Time
}

func NewSqliteGeocodeCache(db *sql.DB, maxAge time.Duration) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db, MaxAge: maxAge, now: time.Now}
}

// Fetch cached coordinates for the given addresses.
func (s *SqliteGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.sqlite.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	ph := make([]string, 0, len(uniq))
	args := make([]any, 0, len(uniq)+1)
	for _, a := range uniq {
		ph = append(ph, "?")
		args = append(args, a)
	}
	args = append(args, s.cutoff())

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
		address,
		lon,
		lat
	FROM geocode_cache
	WHERE address IN (%s)
		AND updated_at >= ?;
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
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

// Store address -> coordinate mappings in the cache.
func (s *SqliteGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
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
	INSERT OR REPLACE INTO geocode_cache (
		address,
		lon,
		lat,
		updated_at
	)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	now := s.now().Unix()
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

func (s *SqliteGeocodeCache) cutoff() int64 {
	if s.MaxAge <= 0 {
		return 0
	}
	return s.now().Add(-s.MaxAge).Unix()
}
