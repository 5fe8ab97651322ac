// Package postgres opens and health-checks the PostgreSQL connection pool.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL and verifies the connection before returning.
// Returns nil if the DSN is empty (Postgres not configured; callers fall back
// to in-memory stores).
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, nil
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return db, nil
}

// HealthProbe adapts the pool to the router's health check surface.
type HealthProbe struct {
	db *sql.DB
}

// Probe wraps the pool for liveness reporting.
func Probe(db *sql.DB) HealthProbe {
	return HealthProbe{db: db}
}

// Health pings the database.
func (p HealthProbe) Health(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
