package db

import (
	"context"
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

//go:embed migrations
var migrations embed.FS

// Migrate applies pending migrations for the gateway's dialect, each in its own
// transaction, and returns the versions it applied.
func Migrate(ctx context.Context, g Gateway) ([]string, error) {
	if err := ensureMigrationsTable(ctx, g); err != nil {
		return nil, err
	}

	dir := path.Join("migrations", g.Dialect())
	entries, err := fs.ReadDir(migrations, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read migrations for %s", g.Dialect())
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	var applied []string
	for _, file := range files {
		version := strings.TrimSuffix(file, ".sql")
		done, err := migrationApplied(ctx, g, version)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}

		body, err := fs.ReadFile(migrations, path.Join(dir, file))
		if err != nil {
			return applied, errors.WithStack(err)
		}

		err = g.InTx(ctx, func(tx Querier) error {
			if _, err := tx.Exec(ctx, string(body)); err != nil {
				return errors.Wrapf(err, "migration %s failed", version)
			}
			_, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version)
			return err
		})
		if err != nil {
			return applied, err
		}
		applied = append(applied, version)
	}

	return applied, nil
}

func ensureMigrationsTable(ctx context.Context, g Gateway) error {
	_, err := g.Exec(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)")
	return err
}

func migrationApplied(ctx context.Context, g Gateway, version string) (bool, error) {
	rows, err := g.Query(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = ?", version)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return false, errors.WithStack(err)
		}
	}
	return count > 0, errors.WithStack(rows.Err())
}
