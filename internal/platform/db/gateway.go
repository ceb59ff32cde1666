// Package db is the transactional gateway between the employee domain and the
// relational store. Two implementations exist: Postgres through pgxpool and
// SQLite through database/sql, selected by configuration.
package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/config"
)

// Rows is the subset of a result set the domain reads from.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Querier runs single statements. SQL uses `?` placeholders for every dialect.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

type Gateway interface {
	Querier
	// InTx runs fn on one connection inside one transaction. The transaction
	// commits only when fn returns nil; the connection is released on every path.
	InTx(ctx context.Context, fn func(tx Querier) error) error
	Ping(ctx context.Context) error
	Close()
	Dialect() string
}

// Statement is one parameterised write in a transactional sequence.
type Statement struct {
	SQL  string
	Args []any
}

// ExecAll runs statements in order and stops at the first failure.
func ExecAll(ctx context.Context, q Querier, stmts []Statement) error {
	for _, stmt := range stmts {
		if _, err := q.Exec(ctx, stmt.SQL, stmt.Args...); err != nil {
			return err
		}
	}
	return nil
}

// ExecTx runs statements as one atomic unit.
func ExecTx(ctx context.Context, g Gateway, stmts []Statement) error {
	if len(stmts) == 0 {
		return nil
	}
	return g.InTx(ctx, func(tx Querier) error {
		return ExecAll(ctx, tx, stmts)
	})
}

// Open connects to the configured store.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (Gateway, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg, logger)
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}
