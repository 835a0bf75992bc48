// Package cache provides the remember/forget store used to keep the remote font
// catalog between invocations.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

// Drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Producer computes a value on a cache miss. A producer error is returned to the
// caller as-is and nothing is stored.
type Producer func(ctx context.Context) ([]byte, error)

// Store remembers produced values for a time-to-live and forgets them on demand.
type Store interface {
	// Remember returns the cached value for key, or runs producer and stores its
	// result for ttl.
	Remember(ctx context.Context, key string, ttl time.Duration, producer Producer) ([]byte, error)
	// Forget drops key. Forgetting a missing key is not an error.
	Forget(ctx context.Context, key string) error
	Close() error
}

// Config selects and configures a Store implementation.
type Config struct {
	Driver string
	Redis  RedisConfig
}

// Open creates the store named by cfg.Driver. conn is only used by the sqlite driver.
func Open(cfg Config, conn sqlx.SqlConn) (Store, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemoryStore("webfonts")
	case DriverSQLite:
		if conn == nil {
			return nil, fmt.Errorf("sqlite cache requires a database connection")
		}
		return NewSQLiteStore(conn), nil
	case DriverRedis:
		return NewRedisStore(cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}
