package dashboard

import (
	"context"
	"sync"
	"time"

	"sentinel-dca-go/internal/actionable"
	"sentinel-dca-go/internal/aggregator"
	"sentinel-dca-go/internal/dataset"
	"sentinel-dca-go/internal/logger"
	"sentinel-dca-go/internal/types"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_loader.go -package=mocks

// CaseLoader is satisfied by *dataset.Loader.
type CaseLoader interface {
	Load(ctx context.Context) ([]types.Case, error)
	Location() string
}

// Service owns the loaded case list. Views are recomputed from it on every
// call; the list is replaced wholesale on reload and never mutated.
type Service struct {
	loader CaseLoader
	now    func() time.Time

	mu      sync.RWMutex
	cases   []types.Case
	summary dataset.Summary
}

func NewService(loader CaseLoader) *Service {
	return &Service{
		loader:  loader,
		now:     time.Now,
		cases:   []types.Case{},
		summary: dataset.Summary{Source: loader.Location()},
	}
}

// Reload loads the dataset and swaps it in. On failure the previous list is
// kept and the error is recorded in the dataset status.
func (s *Service) Reload(ctx context.Context) (int, error) {
	log := logger.Component("dashboard").WithField("source", s.loader.Location())

	cases, err := s.loader.Load(ctx)
	if err != nil {
		s.mu.Lock()
		s.summary.LastError = err.Error()
		s.mu.Unlock()
		log.WithError(err).Warn("reload failed, keeping previous dataset")
		return 0, err
	}

	summary := dataset.Summarize(s.loader.Location(), cases, s.now())
	s.mu.Lock()
	s.cases = cases
	s.summary = summary
	s.mu.Unlock()

	log.WithFields(map[string]interface{}{
		"records":  summary.Records,
		"agencies": summary.Agencies,
		"open":     summary.Open,
		"closed":   summary.Closed,
	}).Info("dataset reloaded")
	return len(cases), nil
}

func (s *Service) snapshot() []types.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cases
}

// Cases returns a copy of the loaded list.
func (s *Service) Cases() []types.Case {
	cur := s.snapshot()
	out := make([]types.Case, len(cur))
	copy(out, cur)
	return out
}

func (s *Service) DatasetStatus() dataset.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

func (s *Service) Dashboard() types.Dashboard {
	return aggregator.Build(s.snapshot())
}

func (s *Service) Metrics() types.Metrics {
	return aggregator.SummaryMetrics(s.snapshot())
}

func (s *Service) Priority() []types.NameValue {
	return aggregator.PriorityDistribution(s.snapshot())
}

func (s *Service) Ageing() []types.NameValue {
	return aggregator.DebtAgeingBuckets(s.snapshot())
}

func (s *Service) AgencyRecovery() []types.AgencyRecovery {
	return aggregator.RecoveryRateByAgency(s.snapshot())
}

func (s *Service) AgencyBreaches() []types.AgencyBreaches {
	return aggregator.SLABreachesByAgency(s.snapshot())
}

func (s *Service) StatusDistribution() []types.NameValue {
	return aggregator.CaseStatusDistribution(s.snapshot())
}

func (s *Service) Escalations() []types.NameValue {
	return aggregator.EscalationReasons(s.snapshot())
}

func (s *Service) Actions() []actionable.ActionCard {
	return actionable.Generate(s.Dashboard())
}
