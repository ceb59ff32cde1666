package employee

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/db"
)

func insertSQL(s *Spec) string {
	cols := s.Columns
	if s != Root {
		cols = append([]string{keyColumn}, s.Columns...)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.Table, strings.Join(cols, ", "), placeholders(len(cols)))
}

// updateSQL rewrites every non-key column of one keyed row.
func updateSQL(s *Spec) string {
	sets := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		if col == keyColumn {
			continue
		}
		sets = append(sets, col+" = ?")
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", s.Table, strings.Join(sets, ", "), keyColumn)
}

func deleteSQL(s *Spec) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = ?", s.Table, keyColumn)
}

func selectSQL(s *Spec) string {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
		strings.Join(s.selectColumns(), ", "), s.Table, keyColumn)
	if s.Cardinality == List {
		query += " ORDER BY id"
	}
	return query
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func exists(ctx context.Context, q db.Querier, s *Spec, key string) (bool, error) {
	rows, err := q.Query(ctx, fmt.Sprintf("SELECT COUNT(1) FROM %s WHERE %s = ?", s.Table, keyColumn), key)
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

// load reads every row of one table for key into a slice of s.Type.
func load(ctx context.Context, q db.Querier, s *Spec, key string) (reflect.Value, error) {
	out := reflect.MakeSlice(reflect.SliceOf(s.Type), 0, 4)
	rows, err := q.Query(ctx, selectSQL(s), key)
	if err != nil {
		return out, errors.Wrapf(err, "load %s", s.Name)
	}
	defer rows.Close()

	cols := s.selectColumns()
	for rows.Next() {
		out = reflect.Append(out, reflect.Zero(s.Type))
		row := out.Index(out.Len() - 1)
		if err := rows.Scan(s.scanTargets(row, cols)...); err != nil {
			return out, errors.Wrapf(err, "scan %s", s.Name)
		}
	}
	if err := rows.Err(); err != nil {
		return out, errors.Wrapf(err, "load %s", s.Name)
	}
	return out, nil
}
