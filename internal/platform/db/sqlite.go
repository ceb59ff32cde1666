package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/config"
)

// SQLite backs local runs and tests. Foreign keys are enforced on every
// connection through the driver's _pragma DSN parameter.
type SQLite struct {
	db     *sql.DB
	logger *zap.Logger
}

func OpenSQLite(ctx context.Context, cfg config.Config, logger *zap.Logger) (*SQLite, error) {
	dsn := sqliteDSN(cfg.DatabaseURL)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	if isMemoryDSN(dsn) {
		// every connection to :memory: is its own database
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		conn.SetConnMaxLifetime(0)
	} else {
		if cfg.DBMaxConns > 0 {
			conn.SetMaxOpenConns(int(cfg.DBMaxConns))
		}
		conn.SetConnMaxLifetime(cfg.DBMaxConnLifetime)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "ping sqlite")
	}
	logger.Info("sqlite store ready", zap.String("dsn", dsn))
	return &SQLite{db: conn, logger: logger}, nil
}

// sqliteDSN enforces foreign keys everywhere. File databases also get a busy
// timeout and IMMEDIATE transactions so concurrent writers queue on the write
// lock instead of failing with SQLITE_BUSY on the upgrade from a read.
func sqliteDSN(url string) string {
	url = strings.TrimPrefix(url, "sqlite://")
	params := [][2]string{{"foreign_keys", "_pragma=foreign_keys(1)"}}
	if !isMemoryDSN(url) {
		params = append(params,
			[2]string{"busy_timeout", "_pragma=busy_timeout(5000)"},
			[2]string{"_txlock", "_txlock=immediate"},
		)
	}
	for _, p := range params {
		if strings.Contains(url, p[0]) {
			continue
		}
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		url += sep + p[1]
	}
	return url
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

func (s *SQLite) Dialect() string {
	return config.DriverSQLite
}

func (s *SQLite) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return sqlExec(ctx, s.db, query, args)
}

func (s *SQLite) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return sqlQuery(ctx, s.db, query, args)
}

func (s *SQLite) InTx(ctx context.Context, fn func(tx Querier) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.logger.Warn("rollback failed", zap.Error(err))
		}
	}()

	if err := fn(sqlTx{tx: tx}); err != nil {
		return err
	}
	return classify(tx.Commit())
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() {
	if err := s.db.Close(); err != nil {
		s.logger.Warn("close sqlite", zap.Error(err))
	}
}

type sqlTx struct {
	tx *sql.Tx
}

func (t sqlTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return sqlExec(ctx, t.tx, query, args)
}

func (t sqlTx) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return sqlQuery(ctx, t.tx, query, args)
}

// sqlExecer is satisfied by both *sql.DB and *sql.Tx.
type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func sqlExec(ctx context.Context, q sqlExecer, query string, args []any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return n, nil
}

func sqlQuery(ctx context.Context, q sqlExecer, query string, args []any) (Rows, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	return sqlRows{Rows: rows}, nil
}

type sqlRows struct {
	*sql.Rows
}

func (r sqlRows) Close() {
	_ = r.Rows.Close()
}
