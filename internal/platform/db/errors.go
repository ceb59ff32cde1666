package db

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type ConstraintKind int

const (
	UniqueViolation ConstraintKind = iota + 1
	ForeignKeyViolation
	NotNullViolation
)

func (k ConstraintKind) String() string {
	switch k {
	case UniqueViolation:
		return "unique"
	case ForeignKeyViolation:
		return "foreign key"
	case NotNullViolation:
		return "not null"
	default:
		return "unknown"
	}
}

// ConstraintError is an integrity violation reported by the store.
type ConstraintError struct {
	Kind    ConstraintKind
	Message string
	Err     error
}

func (e *ConstraintError) Error() string {
	return e.Message
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// classify turns driver errors into ConstraintError where possible and
// attaches a stack to everything else.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind := pgKind(pgErr.Code)
		if kind == 0 {
			return errors.WithStack(err)
		}
		msg := pgErr.Message
		if pgErr.Detail != "" {
			msg = fmt.Sprintf("%s: %s", msg, pgErr.Detail)
		}
		return errors.WithStack(&ConstraintError{Kind: kind, Message: msg, Err: err})
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		kind := sqliteKind(liteErr.Code(), liteErr.Error())
		if kind == 0 {
			return errors.WithStack(err)
		}
		return errors.WithStack(&ConstraintError{Kind: kind, Message: sqliteMessage(liteErr.Error()), Err: err})
	}

	return errors.WithStack(err)
}

func pgKind(code string) ConstraintKind {
	switch code {
	case pgUniqueViolation:
		return UniqueViolation
	case pgForeignKeyViolation:
		return ForeignKeyViolation
	case pgNotNullViolation:
		return NotNullViolation
	default:
		return 0
	}
}

func sqliteKind(code int, text string) ConstraintKind {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return UniqueViolation
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ForeignKeyViolation
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return NotNullViolation
	}
	// older builds report the primary code only
	switch {
	case strings.Contains(text, "UNIQUE constraint failed"):
		return UniqueViolation
	case strings.Contains(text, "FOREIGN KEY constraint failed"):
		return ForeignKeyViolation
	case strings.Contains(text, "NOT NULL constraint failed"):
		return NotNullViolation
	default:
		return 0
	}
}

var sqliteConstraintText = regexp.MustCompile(`((?:UNIQUE|FOREIGN KEY|NOT NULL) constraint failed(?:: [\w.]+(?:, [\w.]+)*)?)`)

func sqliteMessage(text string) string {
	if m := sqliteConstraintText.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return text
}

var storeMessagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^ERROR:\s*(.+?)\s*\(SQLSTATE \w+\)$`),
	sqliteConstraintText,
	regexp.MustCompile(`^SQL logic error:\s*(.+?)(?:\s*\(\d+\))?$`),
}

// Message extracts the human-readable part of a store error. ok is false when
// the text matches none of the known driver formats.
func Message(err error) (msg string, ok bool) {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Message, true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Message, true
	}
	text := err.Error()
	for _, re := range storeMessagePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}
