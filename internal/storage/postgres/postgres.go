// Package postgres persists the decision audit trail in PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/gigaverse-labs/advisor/internal/config"
)

// ApplicationName tags every audit connection in pg_stat_activity.
const ApplicationName = "gigaverse-advisor-audit"

// auditStatementTimeout bounds every statement on an audit connection.
const auditStatementTimeout = "2s"

// ErrSchemaMissing is returned by EnsureSchema when the decisions table has not been migrated.
var ErrSchemaMissing = errors.New("decision audit schema missing")

// Pool is the audit trail's connection pool.
type Pool struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPool opens the audit pool described by cfg.
//
// Precondition: cfg.Enabled; logger must not be nil.
// Postcondition: Returns a pinged Pool whose sessions carry ApplicationName and
// the audit statement timeout, or a non-nil error.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.ConnConfig.RuntimeParams["application_name"] = ApplicationName
	poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = auditStatementTimeout
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		logger.Debug("audit connection opened",
			zap.Uint32("backend_pid", conn.PgConn().PID()),
			zap.String("database", cfg.Name),
		)
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Pool{pool: pool, logger: logger}, nil
}

// EnsureSchema checks that the decisions table exists.
//
// Postcondition: Returns nil, or an error wrapping ErrSchemaMissing when migrations have not run.
func (p *Pool) EnsureSchema(ctx context.Context) error {
	var exists bool
	if err := p.pool.QueryRow(ctx, `SELECT to_regclass('decisions') IS NOT NULL`).Scan(&exists); err != nil {
		return fmt.Errorf("checking decision audit schema: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: run cmd/migrate first", ErrSchemaMissing)
	}
	return nil
}

// Health checks that the database is reachable within the given timeout.
//
// Precondition: The pool must not be closed.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := p.pool.Ping(ctx); err != nil {
		return err
	}
	stat := p.pool.Stat()
	p.logger.Debug("audit pool healthy",
		zap.Int32("total_conns", stat.TotalConns()),
		zap.Int32("idle_conns", stat.IdleConns()),
	)
	return nil
}

// Close releases all pool resources.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool for use by repositories.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}
