package ledger

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/J-mazz/URTledger/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAggregateStagePassesThroughTotals(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Store().InsertBatch(ctx, &storage.Batch{Name: "lot", StageID: 3, Weight: 4.0, Price: 2.0})
	require.NoError(t, err)

	totals := svc.AggregateStage(ctx, 3)
	require.InDelta(t, 4.0, totals.TotalWeight, 1e-9)
	require.Equal(t, int64(1), totals.Count)
}

func TestAggregateStageSwallowsQueryErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)

	// Closing the store makes every statement fail; the dashboard variant
	// must degrade to zero totals instead of propagating.
	require.NoError(t, svc.Store().Close())

	totals := svc.AggregateStage(ctx, 1)
	require.Zero(t, totals.TotalWeight)
	require.Zero(t, totals.Count)
}

func TestSummariesComputesPerStageTotals(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)
	require.NoError(t, svc.Store().SeedDefaults(ctx))

	_, err := svc.Store().InsertBatch(ctx, &storage.Batch{Name: "a", StageID: 1, Weight: 2.0, Price: 1.0})
	require.NoError(t, err)
	_, err = svc.Store().InsertBatch(ctx, &storage.Batch{Name: "b", StageID: 1, Weight: 3.0, Price: 1.0})
	require.NoError(t, err)
	_, err = svc.Store().InsertBatch(ctx, &storage.Batch{Name: "c", StageID: 2, Weight: 7.5, Price: 1.0})
	require.NoError(t, err)

	summaries, err := svc.Summaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 4)

	require.Equal(t, "Unbucked", summaries[0].Stage.Name)
	require.InDelta(t, 5.0, summaries[0].Totals.TotalWeight, 1e-9)
	require.Equal(t, int64(2), summaries[0].Totals.Count)

	require.Equal(t, "Bucked", summaries[1].Stage.Name)
	require.InDelta(t, 7.5, summaries[1].Totals.TotalWeight, 1e-9)
	require.Equal(t, int64(1), summaries[1].Totals.Count)

	require.Zero(t, summaries[2].Totals.Count)
	require.Zero(t, summaries[3].Totals.Count)
}
