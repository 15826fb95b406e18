// Package store provides a SQLite-backed cache of finished forecast
// responses, keyed by a fingerprint of the request content. Because the key
// is a content hash, any change to the input set produces a different key,
// so a stale row can never be served for a since-changed request.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/LucasAust/forecaster/internal/model"

	"golang.org/x/sync/singleflight"
	_ "modernc.org/sqlite" // register sqlite driver
)

// ComputeFunc produces a fresh response on a cache miss.
type ComputeFunc func(ctx context.Context) (*model.Response, error)

// Cache is a fingerprint-keyed forecast result cache.
type Cache struct {
	db    *sql.DB
	ttl   time.Duration
	group singleflight.Group
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string, ttl time.Duration) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Fingerprint returns the cache key for a request: the hex SHA-256 of its
// canonical JSON encoding.
func Fingerprint(req model.Request) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:]), nil
}

// GetOrCompute returns the cached response for the request, computing and
// storing it on a miss. Concurrent callers with the same fingerprint share a
// single computation. The second return reports whether the response came
// from the cache.
//
// A request without a pinned seed or as-of date is not cacheable (its result
// depends on the clock); compute runs directly in that case.
func (c *Cache) GetOrCompute(ctx context.Context, req model.Request, compute ComputeFunc) (*model.Response, bool, error) {
	if req.Seed == 0 || req.AsOf == "" {
		resp, err := compute(ctx)
		return resp, false, err
	}

	key, err := Fingerprint(req)
	if err != nil {
		return nil, false, err
	}

	if resp, err := c.lookup(ctx, key); err != nil {
		return nil, false, err
	} else if resp != nil {
		return resp, true, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have stored the row while we waited on the group.
		if resp, err := c.lookup(ctx, key); err != nil {
			return nil, err
		} else if resp != nil {
			return resp, nil
		}

		resp, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.put(ctx, key, req, resp); err != nil {
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*model.Response), false, nil
}

// lookup returns the unexpired cached response for key, or nil on a miss.
func (c *Cache) lookup(ctx context.Context, key string) (*model.Response, error) {
	var body string
	var computedAt int64
	err := c.db.QueryRowContext(ctx,
		"SELECT response, computed_at FROM forecasts WHERE fingerprint = ?", key,
	).Scan(&body, &computedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying cache: %w", err)
	}

	if c.ttl > 0 && time.Since(time.Unix(0, computedAt)) > c.ttl {
		return nil, nil
	}

	var resp model.Response
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("decoding cached response: %w", err)
	}
	return &resp, nil
}

func (c *Cache) put(ctx context.Context, key string, req model.Request, resp *model.Response) error {
	body, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO forecasts (fingerprint, response, method_used, horizon_days, computed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET
			response = excluded.response,
			method_used = excluded.method_used,
			horizon_days = excluded.horizon_days,
			computed_at = excluded.computed_at`,
		key, string(body), resp.Summary.MethodUsed, req.HorizonDays,
		time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("storing response: %w", err)
	}
	return nil
}

// Prune deletes rows older than the TTL. A no-op when the TTL is unset.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	cutoff := time.Now().Add(-c.ttl).UnixNano()
	res, err := c.db.ExecContext(ctx, "DELETE FROM forecasts WHERE computed_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return res.RowsAffected()
}
