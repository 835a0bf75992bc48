package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joeblew999/plat-webfonts/pkg/log"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

// SQLiteStore persists values in the cache table so they survive between CLI runs.
type SQLiteStore struct {
	conn sqlx.SqlConn
	now  func() time.Time
}

type cacheRow struct {
	Value     string `db:"value"`
	ExpiresAt int64  `db:"expires_at"`
}

// NewSQLiteStore creates a store on a connection whose schema was migrated by db.Open.
func NewSQLiteStore(conn sqlx.SqlConn) *SQLiteStore {
	return &SQLiteStore{conn: conn, now: time.Now}
}

// Remember implements Store. Expired rows count as misses and are replaced.
func (s *SQLiteStore) Remember(ctx context.Context, key string, ttl time.Duration, producer Producer) ([]byte, error) {
	var row cacheRow
	err := s.conn.QueryRowCtx(ctx, &row, "SELECT value, expires_at FROM cache WHERE key = ?", key)
	switch {
	case err == nil && row.ExpiresAt > s.now().Unix():
		return []byte(row.Value), nil
	case err != nil && !errors.Is(err, sqlx.ErrNotFound):
		log.Warn("Cache read failed, recomputing", "key", key, "error", err)
	}

	data, err := producer(ctx)
	if err != nil {
		return nil, err
	}

	if ttl <= 0 {
		ttl = defaultExpiry
	}
	expiresAt := s.now().Add(ttl).Unix()
	_, err = s.conn.ExecCtx(ctx, `
		INSERT INTO cache (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, string(data), expiresAt)
	if err != nil {
		return nil, fmt.Errorf("store cache entry %s: %w", key, err)
	}

	return data, nil
}

// Forget implements Store.
func (s *SQLiteStore) Forget(ctx context.Context, key string) error {
	if _, err := s.conn.ExecCtx(ctx, "DELETE FROM cache WHERE key = ?", key); err != nil {
		return fmt.Errorf("forget cache entry %s: %w", key, err)
	}
	return nil
}

// Close implements Store. The connection belongs to the caller.
func (s *SQLiteStore) Close() error {
	return nil
}
