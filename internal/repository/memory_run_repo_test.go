package repository_test

import (
	"context"
	"fmt"
	"testing"

	"group-sync-service/internal/domain"
	"group-sync-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRunRepository_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRunRepository(10)

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Create(ctx, &domain.SyncRun{ID: fmt.Sprintf("run-%d", i), Status: domain.RunStatusApplied}))
	}

	runs, err := repo.ListRecent(ctx, 2)

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-3", runs[0].ID)
	assert.Equal(t, "run-2", runs[1].ID)
}

func TestMemoryRunRepository_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRunRepository(2)

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Create(ctx, &domain.SyncRun{ID: fmt.Sprintf("run-%d", i)}))
	}

	runs, err := repo.ListRecent(ctx, 10)

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-3", runs[0].ID)
	assert.Equal(t, "run-2", runs[1].ID)
}

func TestMemoryRunRepository_StoresCopies(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRunRepository(0)

	run := &domain.SyncRun{ID: "run-1", Status: domain.RunStatusApplied}
	require.NoError(t, repo.Create(ctx, run))
	run.Status = domain.RunStatusFailed

	runs, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusApplied, runs[0].Status)

	runs[0].Status = domain.RunStatusAborted
	again, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusApplied, again[0].Status)
}

func TestMemoryRunRepository_NonPositiveLimit(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRunRepository(5)
	require.NoError(t, repo.Create(ctx, &domain.SyncRun{ID: "run-1"}))

	runs, err := repo.ListRecent(ctx, 0)

	require.NoError(t, err)
	assert.Empty(t, runs)
}
