// Package ledger is the application layer over the storage package: the
// error-tolerant aggregates and summaries the front-end renders, kept free
// of any presentation concerns.
package ledger

import (
	"context"
	"log/slog"

	"github.com/J-mazz/URTledger/internal/storage"
)

// Service exposes store operations to the front-end layer. It is safe for
// concurrent use; all serialization happens inside the store.
type Service struct {
	store *storage.Store
	log   *slog.Logger
}

func NewService(store *storage.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, log: logger}
}

// Store exposes the underlying repository operations.
func (s *Service) Store() *storage.Store {
	return s.store
}

// AggregateStage is the dashboard-facing variant of the store aggregate: a
// query failure is logged and rendered as zero totals, so one bad read
// cannot take down the summary view.
func (s *Service) AggregateStage(ctx context.Context, stageID int64) storage.StageTotals {
	totals, err := s.store.AggregateStage(ctx, stageID)
	if err != nil {
		s.log.Error("aggregate stage failed", "stage_id", stageID, "error", err)
		return storage.StageTotals{}
	}
	return totals
}

// StageSummary pairs a stage with its aggregate totals.
type StageSummary struct {
	Stage  storage.ClassificationItem
	Totals storage.StageTotals
}

// Summaries computes the per-stage dashboard tiles for every known stage,
// in stage id order.
func (s *Service) Summaries(ctx context.Context) ([]StageSummary, error) {
	stages, err := s.store.ListStages(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StageSummary, 0, len(stages))
	for _, stage := range stages {
		out = append(out, StageSummary{
			Stage:  stage,
			Totals: s.AggregateStage(ctx, stage.ID),
		})
	}
	return out, nil
}
