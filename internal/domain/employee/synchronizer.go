package employee

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/db"
	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/metrics"
)

type Intent string

const (
	IntentCreate Intent = "create"
	IntentUpdate Intent = "update"
	IntentDelete Intent = "delete"
)

// Synchronizer turns a profile and an intent into one ordered statement
// sequence and runs it as a single transaction.
type Synchronizer struct {
	db          db.Gateway
	logger      *zap.Logger
	metrics     *metrics.Collector
	strictDates bool
}

func NewSynchronizer(g db.Gateway, logger *zap.Logger, m *metrics.Collector, strictDates bool) *Synchronizer {
	return &Synchronizer{db: g, logger: logger, metrics: m, strictDates: strictDates}
}

// Synchronize dispatches on intent and returns the aggregate key.
func (s *Synchronizer) Synchronize(ctx context.Context, intent Intent, key string, in *ProfileInput) (string, error) {
	switch intent {
	case IntentCreate:
		return s.Create(ctx, in)
	case IntentUpdate:
		return key, s.Update(ctx, key, in)
	case IntentDelete:
		return key, s.Delete(ctx, key)
	default:
		return "", errors.Errorf("unknown intent %q", intent)
	}
}

func (s *Synchronizer) Create(ctx context.Context, in *ProfileInput) (key string, err error) {
	defer func() { s.observe(IntentCreate, key, err) }()

	if err := Validate(in, true); err != nil {
		return "", err
	}
	key = strings.TrimSpace(in.PersonalDetails.Value.PersonalEmail)
	p, err := s.plan(key, in)
	if err != nil {
		return key, err
	}

	stmts := []db.Statement{{SQL: insertSQL(Root), Args: p.root}}
	for _, c := range p.children {
		for _, args := range c.rows {
			stmts = append(stmts, db.Statement{SQL: insertSQL(c.spec), Args: args})
		}
	}
	if err := db.ExecTx(ctx, s.db, stmts); err != nil {
		return key, err
	}
	return key, nil
}

func (s *Synchronizer) Update(ctx context.Context, key string, in *ProfileInput) (err error) {
	defer func() { s.observe(IntentUpdate, key, err) }()

	if err := Validate(in, false); err != nil {
		return err
	}
	p, err := s.plan(key, in)
	if err != nil {
		return err
	}

	return s.db.InTx(ctx, func(tx db.Querier) error {
		found, err := exists(ctx, tx, Root, key)
		if err != nil {
			return err
		}
		if !found {
			return errors.WithStack(ErrNotFound)
		}

		var stmts []db.Statement
		if p.root != nil {
			stmts = append(stmts, db.Statement{SQL: updateSQL(Root), Args: append(p.root[1:], key)})
		}
		for _, c := range p.children {
			next, err := s.replace(ctx, tx, key, c)
			if err != nil {
				return err
			}
			stmts = append(stmts, next...)
		}
		return db.ExecAll(ctx, tx, stmts)
	})
}

// Delete removes every child table, then the root.
func (s *Synchronizer) Delete(ctx context.Context, key string) (err error) {
	defer func() { s.observe(IntentDelete, key, err) }()

	return s.db.InTx(ctx, func(tx db.Querier) error {
		found, err := exists(ctx, tx, Root, key)
		if err != nil {
			return err
		}
		if !found {
			return errors.WithStack(ErrNotFound)
		}

		stmts := make([]db.Statement, 0, len(Children)+1)
		for _, spec := range Children {
			stmts = append(stmts, db.Statement{SQL: deleteSQL(spec), Args: []any{key}})
		}
		stmts = append(stmts, db.Statement{SQL: deleteSQL(Root), Args: []any{key}})
		return db.ExecAll(ctx, tx, stmts)
	})
}

// replace emits the statements that bring one supplied child section to its
// new state. Lists are deleted and reinserted; singletons are inserted,
// updated or deleted depending on what is stored.
func (s *Synchronizer) replace(ctx context.Context, tx db.Querier, key string, c childPlan) ([]db.Statement, error) {
	if c.spec.Cardinality == List {
		stmts := []db.Statement{{SQL: deleteSQL(c.spec), Args: []any{key}}}
		for _, args := range c.rows {
			stmts = append(stmts, db.Statement{SQL: insertSQL(c.spec), Args: args})
		}
		return stmts, nil
	}

	found, err := exists(ctx, tx, c.spec, key)
	if err != nil {
		return nil, err
	}
	switch {
	case c.clear && found:
		return []db.Statement{{SQL: deleteSQL(c.spec), Args: []any{key}}}, nil
	case c.clear:
		return nil, nil
	case found:
		return []db.Statement{{SQL: updateSQL(c.spec), Args: append(c.rows[0][1:], key)}}, nil
	default:
		return []db.Statement{{SQL: insertSQL(c.spec), Args: c.rows[0]}}, nil
	}
}

type childPlan struct {
	spec  *Spec
	clear bool
	// rows hold insert arguments: the key followed by spec.Columns.
	rows [][]any
}

type plan struct {
	// root holds spec.Columns values for the root, nil when untouched.
	root     []any
	children []childPlan
}

// plan coerces every supplied section into statement arguments. It touches no
// storage, so date errors in strict mode surface before a transaction starts.
func (s *Synchronizer) plan(key string, in *ProfileInput) (plan, error) {
	var (
		p   plan
		bad []string
	)
	if in.PersonalDetails.Valid {
		root := in.PersonalDetails.Value
		root.PersonalEmail = key
		args, invalidDates := s.arguments(Root, reflect.ValueOf(root), "")
		p.root = args
		bad = append(bad, invalidDates...)
	}

	for _, spec := range Children {
		sec := in.section(spec.Name)
		if !sec.present() {
			continue
		}
		c := childPlan{spec: spec, clear: sec.null()}
		if !c.clear {
			for i, row := range spec.rows(sec.value()) {
				label := spec.Name + "."
				if spec.Cardinality == List {
					label = fmt.Sprintf("%s[%d].", spec.Name, i)
				}
				args, invalidDates := s.arguments(spec, row, label)
				c.rows = append(c.rows, append([]any{key}, args...))
				bad = append(bad, invalidDates...)
			}
		}
		p.children = append(p.children, c)
	}

	if len(bad) > 0 {
		return plan{}, errors.WithStack(&ValidationError{
			Fields:  bad,
			Message: "Invalid date fields (expected YYYY-MM-DD): " + strings.Join(bad, ", "),
		})
	}
	return p, nil
}

// arguments returns the values of s.Columns for row with date columns
// converted to time.Time. Unparseable dates become null, or are reported back
// when strict dates are on.
func (s *Synchronizer) arguments(spec *Spec, row reflect.Value, label string) ([]any, []string) {
	args := make([]any, len(spec.Columns))
	var bad []string
	for i, col := range spec.Columns {
		v := spec.field(row, col)
		if !spec.IsDate(col) {
			args[i] = v
			continue
		}
		raw, _ := v.(*string)
		if raw == nil || strings.TrimSpace(*raw) == "" {
			args[i] = nil
			continue
		}
		t, err := ParseDate(*raw)
		if err == nil {
			args[i] = t
			continue
		}
		if s.strictDates {
			bad = append(bad, label+col)
			continue
		}
		s.logger.Warn("unparseable date stored as null",
			zap.String("child", spec.Name),
			zap.String("field", label+col),
			zap.String("value", *raw),
		)
		s.metrics.DateCoerced(spec.Name)
		args[i] = nil
	}
	return args, bad
}

func (s *Synchronizer) observe(intent Intent, key string, err error) {
	outcome := outcomeOf(err)
	s.metrics.Operation(string(intent), outcome)
	switch outcome {
	case "ok":
		s.logger.Info("profile synchronized", zap.String("intent", string(intent)), zap.String("key", key))
	case "error":
		s.logger.Error("profile synchronization failed",
			zap.String("intent", string(intent)), zap.String("key", key), zap.Error(err))
	}
}

func outcomeOf(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
