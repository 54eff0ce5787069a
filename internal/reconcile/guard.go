package reconcile

import (
	"group-sync-service/internal/domain"
)

// Validate не дает принять пустой, но "успешный" ответ провайдера за команду
// удалить все группы.
func Validate(snapshot domain.SourceSnapshot) error {
	if snapshot.IsEmpty() {
		return domain.ErrEmptySourceSnapshot
	}
	if snapshot.GroupNames().Len() == 0 {
		return domain.ErrEmptySourceGroupSet
	}
	return nil
}

// ShouldRun возвращает false, если новый снимок структурно совпадает с последним
// успешно обработанным.
func ShouldRun(next domain.SourceSnapshot, last *domain.SourceSnapshot) bool {
	if last == nil {
		return true
	}
	return !next.Equal(*last)
}
