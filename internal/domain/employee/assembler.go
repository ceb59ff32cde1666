package employee

import (
	"context"
	"reflect"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/db"
)

// Assembler rebuilds a Profile from one root query and one query per child.
// The child queries run outside a transaction, so a read racing a write can
// see some child tables before the write and some after it.
type Assembler struct {
	db          db.Gateway
	concurrency int
}

func NewAssembler(g db.Gateway, concurrency int) *Assembler {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Assembler{db: g, concurrency: concurrency}
}

func (a *Assembler) Assemble(ctx context.Context, key string) (*Profile, error) {
	root, err := load(ctx, a.db, Root, key)
	if err != nil {
		return nil, err
	}
	if root.Len() == 0 {
		return nil, errors.WithStack(ErrNotFound)
	}

	results := make([]reflect.Value, len(Children))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, spec := range Children {
		g.Go(func() error {
			rows, err := load(gctx, a.db, spec, key)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profile := &Profile{}
	profile.attach(Root, root)
	for i, spec := range Children {
		profile.attach(spec, results[i])
	}
	return profile, nil
}
