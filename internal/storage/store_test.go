package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	store, err := Open("")
	require.Nil(t, store)
	require.ErrorIs(t, err, ErrStorageInit)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "ledger.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.Equal(t, path, store.Path())
}

func TestOpenAppliesPragmas(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	var journalMode string
	require.NoError(t, store.DB().QueryRow(`PRAGMA journal_mode`).Scan(&journalMode))
	require.Equal(t, "wal", journalMode)

	var foreignKeys int
	require.NoError(t, store.DB().QueryRow(`PRAGMA foreign_keys`).Scan(&foreignKeys))
	require.Equal(t, 1, foreignKeys)
}

func TestReopenExistingFileKeepsData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := Open(path)
	require.NoError(t, err)
	id, err := store.InsertStage(ctx, "Drying")
	require.NoError(t, err)
	require.Positive(t, id)
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	stages, err := reopened.ListStages(ctx)
	require.NoError(t, err)
	require.Len(t, stages, 1)
	require.Equal(t, "Drying", stages[0].Name)
}

func TestConcurrentCallersAreSerialized(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	const (
		workers          = 8
		batchesPerWorker = 5
	)

	var wg sync.WaitGroup
	errs := make(chan error, workers*batchesPerWorker*2)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < batchesPerWorker; i++ {
				batch := &Batch{
					Name:    fmt.Sprintf("lot-%d-%d", w, i),
					StageID: 5,
					Weight:  1.0,
					Price:   2.0,
					Specs:   map[string]float64{"Moisture": 9.5},
				}
				if _, err := store.InsertBatch(ctx, batch); err != nil {
					errs <- err
				}
				// Reads race the writes; the store must serialize them.
				if _, err := store.AggregateStage(ctx, 5); err != nil {
					errs <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	totals, err := store.AggregateStage(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, int64(workers*batchesPerWorker), totals.Count)
	require.InDelta(t, float64(workers*batchesPerWorker), totals.TotalWeight, 1e-9)
}
