package telemetry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSink stores events in a PostgreSQL table for the analytics
// backend to consume. Schema:
//
//	CREATE TABLE telemetry_events (
//	    id         UUID PRIMARY KEY,
//	    kind       TEXT NOT NULL,
//	    payload    JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresSink struct {
	pool *pgxpool.Pool
}

// NewPostgresSink establishes a connection pool to the database
func NewPostgresSink(ctx context.Context, databaseURL string) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresSink{pool: pool}, nil
}

// Emit inserts one event with its flattened JSON payload.
func (s *PostgresSink) Emit(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal telemetry event: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO telemetry_events (id, kind, payload)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO NOTHING`,
		event.ID, string(event.Kind), payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save telemetry event %s: %w", event.Kind, err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresSink) Close(context.Context) error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
