package employee

import (
	"context"

	"go.uber.org/zap"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/db"
	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/metrics"
)

type Options struct {
	StrictDates         bool
	AssembleConcurrency int
}

type Service struct {
	sync      *Synchronizer
	assembler *Assembler
	directory *Directory
	metrics   *metrics.Collector
}

func NewService(g db.Gateway, opts Options, logger *zap.Logger, m *metrics.Collector) *Service {
	return &Service{
		sync:      NewSynchronizer(g, logger.Named("synchronizer"), m, opts.StrictDates),
		assembler: NewAssembler(g, opts.AssembleConcurrency),
		directory: NewDirectory(g),
		metrics:   m,
	}
}

func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.directory.List(ctx)
}

func (s *Service) Search(ctx context.Context, term string) ([]Summary, error) {
	return s.directory.Search(ctx, term)
}

func (s *Service) Get(ctx context.Context, key string) (*Profile, error) {
	profile, err := s.assembler.Assemble(ctx, key)
	s.metrics.Operation("read", outcomeOf(err))
	return profile, err
}

func (s *Service) Create(ctx context.Context, in *ProfileInput) (string, error) {
	return s.sync.Create(ctx, in)
}

func (s *Service) Update(ctx context.Context, key string, in *ProfileInput) error {
	return s.sync.Update(ctx, key, in)
}

func (s *Service) Delete(ctx context.Context, key string) error {
	return s.sync.Delete(ctx, key)
}
