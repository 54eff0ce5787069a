package reconcile

import (
	"sort"

	"group-sync-service/internal/domain"

	"k8s.io/apimachinery/pkg/util/sets"
)

// MembershipPlan содержит действия с членством и пользователей, для которых
// действия не формировались.
type MembershipPlan struct {
	Actions   []domain.Action
	Unmatched []domain.TargetUser
	Ambiguous []domain.TargetUser
}

// ReconcileMemberships сопоставляет пользователей Outline с пользователями
// Pocket ID по email и вычисляет добавления и удаления членства.
//
// Email используется только как ключ поиска. Пользователь без email, без пары
// или с несколькими кандидатами пропускается целиком.
func ReconcileMemberships(source []domain.SourceUser, target []domain.TargetUser) MembershipPlan {
	byEmail := make(map[string][]int, len(source))
	for i, s := range source {
		if s.Email == "" {
			continue
		}
		byEmail[s.Email] = append(byEmail[s.Email], i)
	}

	ordered := make([]domain.TargetUser, len(target))
	copy(ordered, target)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	var plan MembershipPlan
	for _, t := range ordered {
		candidates := byEmail[t.Email]
		if t.Email == "" || len(candidates) == 0 {
			plan.Unmatched = append(plan.Unmatched, t)
			continue
		}
		if len(candidates) > 1 {
			plan.Ambiguous = append(plan.Ambiguous, t)
			continue
		}

		s := source[candidates[0]]
		have := t.Groups
		if have == nil {
			have = sets.New[string]()
		}
		want := s.Groups
		if want == nil {
			want = sets.New[string]()
		}

		for _, name := range sets.List(want.Difference(have)) {
			plan.Actions = append(plan.Actions, domain.Action{
				Kind:   domain.ActionAddMembership,
				Group:  name,
				UserID: t.ID,
				Email:  t.Email,
			})
		}
		for _, name := range sets.List(have.Difference(want)) {
			plan.Actions = append(plan.Actions, domain.Action{
				Kind:   domain.ActionRemoveMembership,
				Group:  name,
				UserID: t.ID,
				Email:  t.Email,
			})
		}
	}

	return plan
}
