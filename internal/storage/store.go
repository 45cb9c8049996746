package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"hot-product-trends/internal/config"
)

// ErrNotConfigured indicates no database DSN was provided.
var ErrNotConfigured = errors.New("storage: database not configured")

// Store holds the PostgreSQL document store handle. The pool is established
// lazily on first use and reused for the process lifetime.
type Store struct {
	cfg config.DatabaseConfig

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// NewStore prepares a Store without connecting.
func NewStore(cfg config.DatabaseConfig) *Store {
	return &Store{cfg: cfg}
}

// Close releases the underlying pool resources, if any were established.
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}

func (s *Store) getPool(ctx context.Context) (*pgxpool.Pool, error) {
	if s == nil || s.cfg.DSN == "" {
		return nil, ErrNotConfigured
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		return s.pool, nil
	}

	poolConfig, err := pgxpool.ParseConfig(s.cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database dsn: %w", err)
	}

	if s.cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = int32(s.cfg.MaxOpenConns)
	}
	if s.cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(s.cfg.MaxIdleConns)
	}
	if s.cfg.ConnMaxLifetime > 0 {
		poolConfig.MaxConnLifetime = s.cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	s.pool = pool
	return s.pool, nil
}
