package domain

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

// SourceUser представляет пользователя провайдера идентификации (Pocket ID).
// Пустой Email означает, что адрес отсутствует: такой пользователь никогда не сопоставляется.
type SourceUser struct {
	ID       string
	Username string
	Email    string
	Groups   sets.Set[string]
	Claims   map[string]string
}

// SourceSnapshot представляет неизменяемый снимок пользователей Pocket ID.
type SourceSnapshot struct {
	Users []SourceUser
}

// GroupNames возвращает множество групп, на которые ссылаются пользователи снимка.
func (s SourceSnapshot) GroupNames() sets.Set[string] {
	names := sets.New[string]()
	for _, u := range s.Users {
		names = names.Union(u.Groups)
	}
	return names
}

// IsEmpty сообщает, что в снимке нет ни одного пользователя.
func (s SourceSnapshot) IsEmpty() bool {
	return len(s.Users) == 0
}

// Equal сравнивает снимки структурно: порядок пользователей и групп не важен,
// custom claims не участвуют в сравнении.
func (s SourceSnapshot) Equal(other SourceSnapshot) bool {
	if len(s.Users) != len(other.Users) {
		return false
	}

	byID := make(map[string]SourceUser, len(other.Users))
	for _, u := range other.Users {
		byID[u.ID] = u
	}
	if len(byID) != len(other.Users) {
		return false
	}

	// повтор ID в s при равных длинах означает, что часть other не покрыта
	seen := make(map[string]struct{}, len(s.Users))
	for _, u := range s.Users {
		if _, dup := seen[u.ID]; dup {
			return false
		}
		seen[u.ID] = struct{}{}

		o, ok := byID[u.ID]
		if !ok {
			return false
		}
		if u.Username != o.Username || u.Email != o.Email {
			return false
		}
		if !groupsOf(u.Groups).Equal(groupsOf(o.Groups)) {
			return false
		}
	}

	return true
}

// TargetUser представляет пользователя Outline с его текущими группами.
type TargetUser struct {
	ID     string
	Name   string
	Email  string
	Groups sets.Set[string]
}

// TargetGroup представляет группу Outline.
type TargetGroup struct {
	ID   string
	Name string
}

// TargetSnapshot представляет неизменяемый снимок групп и членства в Outline.
type TargetSnapshot struct {
	Users  []TargetUser
	Groups []TargetGroup
}

// GroupNames возвращает имена существующих в Outline групп.
func (s TargetSnapshot) GroupNames() sets.Set[string] {
	names := sets.New[string]()
	for _, g := range s.Groups {
		names.Insert(g.Name)
	}
	return names
}

// WithoutGroups возвращает копию снимка, из которой исключены указанные группы.
// Исходный снимок не изменяется.
func (s TargetSnapshot) WithoutGroups(removed sets.Set[string]) TargetSnapshot {
	if removed.Len() == 0 {
		return s
	}

	out := TargetSnapshot{
		Users:  make([]TargetUser, 0, len(s.Users)),
		Groups: make([]TargetGroup, 0, len(s.Groups)),
	}
	for _, g := range s.Groups {
		if !removed.Has(g.Name) {
			out.Groups = append(out.Groups, g)
		}
	}
	for _, u := range s.Users {
		u.Groups = groupsOf(u.Groups).Difference(removed)
		out.Users = append(out.Users, u)
	}
	return out
}

func groupsOf(s sets.Set[string]) sets.Set[string] {
	if s == nil {
		return sets.New[string]()
	}
	return s
}

// ActionKind определяет тип изменения в Outline.
type ActionKind string

const (
	ActionCreateGroup      ActionKind = "create_group"
	ActionDeleteGroup      ActionKind = "delete_group"
	ActionAddMembership    ActionKind = "add_membership"
	ActionRemoveMembership ActionKind = "remove_membership"
)

// Action описывает одну мутацию целевой системы.
// Для действий с группами UserID и Email пусты.
type Action struct {
	Kind   ActionKind
	Group  string
	UserID string
	Email  string
}

// ApplyReport содержит счетчики примененных действий за проход.
type ApplyReport struct {
	GroupsCreated      int
	GroupsDeleted      int
	MembershipsAdded   int
	MembershipsRemoved int
	Skipped            int
}

// Merge складывает счетчики двух отчетов.
func (r ApplyReport) Merge(other ApplyReport) ApplyReport {
	return ApplyReport{
		GroupsCreated:      r.GroupsCreated + other.GroupsCreated,
		GroupsDeleted:      r.GroupsDeleted + other.GroupsDeleted,
		MembershipsAdded:   r.MembershipsAdded + other.MembershipsAdded,
		MembershipsRemoved: r.MembershipsRemoved + other.MembershipsRemoved,
		Skipped:            r.Skipped + other.Skipped,
	}
}

// Total возвращает число выполненных мутаций без учета пропущенных.
func (r ApplyReport) Total() int {
	return r.GroupsCreated + r.GroupsDeleted + r.MembershipsAdded + r.MembershipsRemoved
}
