package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"client_portal/internal/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

// Pool names used in health and stats reports.
const (
	PoolPrimary = "primary"
	PoolReplica = "replica"
)

// Cluster holds two independently bounded connection pools: the primary
// takes write traffic, the replica takes read traffic. With a single
// connection string both pools point at the same node, so the portal
// degrades to single-node operation without any code change.
type Cluster struct {
	primary        *sql.DB
	replica        *sql.DB
	acquireTimeout time.Duration
}

// PoolHealth is the result of probing one pool. A probe failure is data,
// not an error: one dead pool must never hide the other's result.
type PoolHealth struct {
	Pool      string  `json:"pool"`
	Healthy   bool    `json:"healthy"`
	LatencyMs float64 `json:"latency_ms"`
	Error     *string `json:"error"`
}

// PoolStats is a point-in-time snapshot of one pool's saturation.
type PoolStats struct {
	Pool           string `json:"pool"`
	Open           int    `json:"open"`
	InUse          int    `json:"in_use"`
	Idle           int    `json:"idle"`
	WaitCount      int64  `json:"wait_count"`
	WaitDurationMs int64  `json:"wait_duration_ms"`
	MaxOpen        int    `json:"max_open"`
}

// Connect opens both pools and verifies each with a bounded ping.
func Connect(cfg *config.Config) (*Cluster, error) {
	primary, err := openPool(cfg, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("database.Connect primary: %w", err)
	}

	replica := primary
	if cfg.DatabaseReplicaURL != cfg.DatabaseURL {
		replica, err = openPool(cfg, cfg.DatabaseReplicaURL)
		if err != nil {
			primary.Close()
			return nil, fmt.Errorf("database.Connect replica: %w", err)
		}
	}

	return &Cluster{
		primary:        primary,
		replica:        replica,
		acquireTimeout: cfg.DBAcquireTimeout,
	}, nil
}

func openPool(cfg *config.Config, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.DBConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBAcquireTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Writer returns the pool for mutating statements.
func (c *Cluster) Writer() *sql.DB { return c.primary }

// Reader returns the pool for read-only statements.
func (c *Cluster) Reader() *sql.DB { return c.replica }

// Health probes each pool with SELECT 1 and reports round-trip latency.
// Each probe is bounded by the acquire timeout and failures are captured
// per pool, never returned.
func (c *Cluster) Health(ctx context.Context) []PoolHealth {
	return []PoolHealth{
		c.probe(ctx, PoolPrimary, c.primary),
		c.probe(ctx, PoolReplica, c.replica),
	}
}

func (c *Cluster) probe(ctx context.Context, name string, db *sql.DB) PoolHealth {
	probeCtx, cancel := context.WithTimeout(ctx, c.acquireTimeout)
	defer cancel()

	start := time.Now()
	var one int
	err := db.QueryRowContext(probeCtx, "SELECT 1").Scan(&one)
	latency := float64(time.Since(start).Microseconds()) / 1000.0

	result := PoolHealth{Pool: name, Healthy: err == nil, LatencyMs: latency}
	if err != nil {
		msg := err.Error()
		result.Error = &msg
	}
	return result
}

// Stats snapshots both pools' connection counters at the moment of the call.
func (c *Cluster) Stats() []PoolStats {
	return []PoolStats{
		snapshot(PoolPrimary, c.primary),
		snapshot(PoolReplica, c.replica),
	}
}

func snapshot(name string, db *sql.DB) PoolStats {
	s := db.Stats()
	return PoolStats{
		Pool:           name,
		Open:           s.OpenConnections,
		InUse:          s.InUse,
		Idle:           s.Idle,
		WaitCount:      s.WaitCount,
		WaitDurationMs: s.WaitDuration.Milliseconds(),
		MaxOpen:        s.MaxOpenConnections,
	}
}

// Close drains both pools. Close errors are logged and swallowed so the
// shutdown path never hangs or crashes on a broken connection.
func (c *Cluster) Close() {
	if err := c.primary.Close(); err != nil {
		log.Printf("error closing primary pool: %v", err)
	}
	if c.replica != c.primary {
		if err := c.replica.Close(); err != nil {
			log.Printf("error closing replica pool: %v", err)
		}
	}
	log.Println("Database pools closed.")
}
