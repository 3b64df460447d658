package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/lib/pq"
	"golang.org/x/sync/singleflight"
)

// Gateway owns the process-wide store connection. The connection is
// established lazily on the first Connect call and memoized for the life of
// the process. Concurrent first callers share a single in-flight attempt; a
// failed attempt is cleared so the next call retries.
type Gateway struct {
	dsn  string
	open func(dsn string) (*sql.DB, error)

	mu sync.Mutex
	db *sql.DB
	sf singleflight.Group
}

// NewGateway returns a Gateway for the given connection address. No
// connection is made until Connect is called.
func NewGateway(dsn string) *Gateway {
	return &Gateway{
		dsn: dsn,
		open: func(dsn string) (*sql.DB, error) {
			return sql.Open("postgres", dsn)
		},
	}
}

// Connect returns the memoized connection handle, establishing it on first
// use. Safe to call concurrently and repeatedly.
func (g *Gateway) Connect(ctx context.Context) (*sql.DB, error) {
	g.mu.Lock()
	if g.db != nil {
		db := g.db
		g.mu.Unlock()
		return db, nil
	}
	g.mu.Unlock()

	v, err, _ := g.sf.Do("connect", func() (any, error) {
		// A caller that lost the fast-path race may arrive here after the
		// winning attempt already stored the handle.
		g.mu.Lock()
		if g.db != nil {
			db := g.db
			g.mu.Unlock()
			return db, nil
		}
		g.mu.Unlock()

		db, err := g.open(g.dsn)
		if err != nil {
			return nil, fmt.Errorf("open store connection: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping store: %w", err)
		}
		g.mu.Lock()
		g.db = db
		g.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.DB), nil
}

// Close tears down the cached connection. Intended for tests and shutdown;
// a subsequent Connect establishes a fresh connection.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.db == nil {
		return nil
	}
	err := g.db.Close()
	g.db = nil
	return err
}
