package repository

import (
	"context"
	"sync"

	"group-sync-service/internal/domain"
)

// MemoryRunRepository хранит ограниченную историю синхронизаций в памяти.
// Используется, когда PostgreSQL не настроен.
type MemoryRunRepository struct {
	mu       sync.Mutex
	runs     []*domain.SyncRun
	capacity int
}

// NewMemoryRunRepository создает новый экземпляр MemoryRunRepository.
func NewMemoryRunRepository(capacity int) domain.RunRepository {
	if capacity <= 0 {
		capacity = 100
	}
	return &MemoryRunRepository{capacity: capacity}
}

// Create сохраняет копию записи, вытесняя самую старую при переполнении.
func (r *MemoryRunRepository) Create(_ context.Context, run *domain.SyncRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *run
	r.runs = append(r.runs, &stored)
	if len(r.runs) > r.capacity {
		r.runs = r.runs[len(r.runs)-r.capacity:]
	}
	return nil
}

// ListRecent возвращает последние проходы, новые первыми.
func (r *MemoryRunRepository) ListRecent(_ context.Context, limit int) ([]*domain.SyncRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		return []*domain.SyncRun{}, nil
	}

	result := make([]*domain.SyncRun, 0, limit)
	for i := len(r.runs) - 1; i >= 0 && len(result) < limit; i-- {
		run := *r.runs[i]
		result = append(result, &run)
	}
	return result, nil
}
