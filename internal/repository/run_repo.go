package repository

import (
	"context"
	"fmt"

	"group-sync-service/internal/database"
	"group-sync-service/internal/domain"

	"github.com/google/uuid"
)

// RunRepository реализует хранение истории синхронизаций в PostgreSQL.
type RunRepository struct {
	queries *database.Queries
}

// NewRunRepository создает новый экземпляр RunRepository.
func NewRunRepository(queries *database.Queries) domain.RunRepository {
	return &RunRepository{
		queries: queries,
	}
}

// Create сохраняет запись о проходе синхронизации.
func (r *RunRepository) Create(ctx context.Context, run *domain.SyncRun) error {
	runID, err := uuid.Parse(run.ID)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", run.ID, err)
	}

	err = r.queries.CreateSyncRun(ctx, database.CreateSyncRunParams{
		RunID:              runID,
		StartedAt:          run.StartedAt,
		FinishedAt:         run.FinishedAt,
		Status:             string(run.Status),
		Reason:             run.Reason,
		GroupsCreated:      int32(run.GroupsCreated),
		GroupsDeleted:      int32(run.GroupsDeleted),
		MembershipsAdded:   int32(run.MembershipsAdded),
		MembershipsRemoved: int32(run.MembershipsRemoved),
		UnmatchedUsers:     int32(run.UnmatchedUsers),
		Error:              run.Error,
	})
	if err != nil {
		return fmt.Errorf("failed to create sync run: %w", err)
	}

	return nil
}

// ListRecent возвращает последние проходы, новые первыми.
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]*domain.SyncRun, error) {
	rows, err := r.queries.ListRecentSyncRuns(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}

	result := make([]*domain.SyncRun, len(rows))
	for i, row := range rows {
		result[i] = &domain.SyncRun{
			ID:                 row.RunID.String(),
			StartedAt:          row.StartedAt,
			FinishedAt:         row.FinishedAt,
			Status:             domain.RunStatus(row.Status),
			Reason:             row.Reason,
			GroupsCreated:      int(row.GroupsCreated),
			GroupsDeleted:      int(row.GroupsDeleted),
			MembershipsAdded:   int(row.MembershipsAdded),
			MembershipsRemoved: int(row.MembershipsRemoved),
			UnmatchedUsers:     int(row.UnmatchedUsers),
			Error:              row.Error,
		}
	}

	return result, nil
}
