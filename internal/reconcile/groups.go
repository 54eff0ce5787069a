package reconcile

import (
	"group-sync-service/internal/domain"

	"k8s.io/apimachinery/pkg/util/sets"
)

// GroupPlan содержит группы, которые нужно создать и удалить в Outline.
// Множества не пересекаются по построению.
type GroupPlan struct {
	ToCreate sets.Set[string]
	ToDelete sets.Set[string]
}

// ReconcileGroups сравнивает множества имен групп источника и цели.
func ReconcileGroups(source, target sets.Set[string]) GroupPlan {
	return GroupPlan{
		ToCreate: source.Difference(target),
		ToDelete: target.Difference(source),
	}
}

// IsEmpty сообщает, что изменений групп не требуется.
func (p GroupPlan) IsEmpty() bool {
	return p.ToCreate.Len() == 0 && p.ToDelete.Len() == 0
}

// Actions возвращает действия: сначала создание, затем удаление, по алфавиту.
func (p GroupPlan) Actions() []domain.Action {
	actions := make([]domain.Action, 0, p.ToCreate.Len()+p.ToDelete.Len())
	for _, name := range sets.List(p.ToCreate) {
		actions = append(actions, domain.Action{Kind: domain.ActionCreateGroup, Group: name})
	}
	for _, name := range sets.List(p.ToDelete) {
		actions = append(actions, domain.Action{Kind: domain.ActionDeleteGroup, Group: name})
	}
	return actions
}
