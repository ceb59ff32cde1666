package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/config"
)

type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func OpenPostgres(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse database url")
	}
	poolCfg.MaxConnLifetime = cfg.DBMaxConnLifetime
	poolCfg.MaxConns = cfg.DBMaxConns
	poolCfg.MinConns = cfg.DBMinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.Wrap(err, "create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	logger.Info("postgres pool ready",
		zap.Int32("maxConns", poolCfg.MaxConns),
		zap.Int32("minConns", poolCfg.MinConns),
	)
	return &Postgres{pool: pool, logger: logger}, nil
}

func (p *Postgres) Dialect() string {
	return config.DriverPostgres
}

func (p *Postgres) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return pgExec(ctx, p.pool, sql, args)
}

func (p *Postgres) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return pgQuery(ctx, p.pool, sql, args)
}

func (p *Postgres) InTx(ctx context.Context, fn func(tx Querier) error) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return classify(err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			p.logger.Warn("rollback failed", zap.Error(err))
		}
	}()

	if err := fn(pgTx{tx: tx}); err != nil {
		return err
	}
	return classify(tx.Commit(ctx))
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close() {
	p.pool.Close()
}

type pgTx struct {
	tx pgx.Tx
}

func (t pgTx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return pgExec(ctx, t.tx, sql, args)
}

func (t pgTx) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return pgQuery(ctx, t.tx, sql, args)
}

// pgExecer is satisfied by both *pgxpool.Pool and pgx.Tx.
type pgExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func pgExec(ctx context.Context, q pgExecer, sql string, args []any) (int64, error) {
	tag, err := q.Exec(ctx, rebind(sql), args...)
	if err != nil {
		return 0, classify(err)
	}
	return tag.RowsAffected(), nil
}

func pgQuery(ctx context.Context, q pgExecer, sql string, args []any) (Rows, error) {
	rows, err := q.Query(ctx, rebind(sql), args...)
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

// rebind rewrites `?` placeholders to Postgres' positional `$n` form. Every
// `?` is a placeholder, including inside literals and comments, so literal
// question marks must be passed as arguments.
func rebind(query string) string {
	return sqlx.Rebind(sqlx.DOLLAR, query)
}
