package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertStageAssignsIncreasingIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	first, err := store.InsertStage(ctx, "Curing")
	require.NoError(t, err)
	second, err := store.InsertStage(ctx, "Drying")
	require.NoError(t, err)
	require.Greater(t, second, first)
}

func TestInsertStageDuplicateIsNoOp(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SeedDefaults(ctx))

	id, err := store.InsertStage(ctx, "Bucked")
	require.NoError(t, err)
	require.Zero(t, id)

	stages, err := store.ListStages(ctx)
	require.NoError(t, err)
	require.Len(t, stages, 4)
}

func TestInsertGradeDuplicateIsNoOp(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	id, err := store.InsertGrade(ctx, "A")
	require.NoError(t, err)
	require.Positive(t, id)

	again, err := store.InsertGrade(ctx, "A")
	require.NoError(t, err)
	require.Zero(t, again)

	grades, err := store.ListGrades(ctx)
	require.NoError(t, err)
	require.Len(t, grades, 1)
}

func TestListStagesOrderedByIDNotName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		_, err := store.InsertStage(ctx, name)
		require.NoError(t, err)
	}

	stages, err := store.ListStages(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Zeta", "Alpha", "Mid"}, classificationNames(stages))
	for i := 1; i < len(stages); i++ {
		require.Greater(t, stages[i].ID, stages[i-1].ID)
	}
}

func TestListGradesEmptyTable(t *testing.T) {
	t.Parallel()

	grades, err := newTestStore(t).ListGrades(context.Background())
	require.NoError(t, err)
	require.Empty(t, grades)
}
