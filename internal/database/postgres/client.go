// Package postgres implements the PostgreSQL storage backend over a pgx
// connection pool. Schema lives under migrations/.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorhub/tutorhub-api/pkg/logger"
	"github.com/tutorhub/tutorhub-api/pkg/metrics"
)

// Client wraps a pgx connection pool with observability
type Client struct {
	pool *pgxpool.Pool
}

// NewClient wraps an already-configured connection pool (see pkg/db.NewPool).
func NewClient(pool *pgxpool.Pool) *Client {
	return &Client{pool: pool}
}

// Close closes the connection pool
func (c *Client) Close() {
	if c.pool != nil {
		c.pool.Close()
		logger.Info("PostgreSQL connection pool closed")
	}
}

// Pool returns the underlying connection pool for advanced usage
func (c *Client) Pool() *pgxpool.Pool {
	return c.pool
}

// Ping checks if the database connection is alive
func (c *Client) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

// recordMetrics records database operation metrics on the shared storage series
func recordMetrics(store, operation, status string, duration float64) {
	metrics.StorageOpDuration.WithLabelValues(store, operation, status).Observe(duration)
	metrics.StorageOpTotal.WithLabelValues(store, operation, status).Inc()
}
