package reconcile_test

import (
	"testing"

	"group-sync-service/internal/domain"
	"group-sync-service/internal/reconcile"

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/util/sets"
)

func TestReconcileGroups_CreateAndDelete(t *testing.T) {
	plan := reconcile.ReconcileGroups(sets.New("eng", "ops"), sets.New("eng", "sales"))

	assert.Equal(t, sets.New("ops"), plan.ToCreate)
	assert.Equal(t, sets.New("sales"), plan.ToDelete)
	assert.False(t, plan.IsEmpty())
}

func TestReconcileGroups_SetProperties(t *testing.T) {
	testCases := []struct {
		name   string
		source sets.Set[string]
		target sets.Set[string]
	}{
		{name: "Equal sets", source: sets.New("eng", "ops"), target: sets.New("ops", "eng")},
		{name: "Empty target", source: sets.New("eng"), target: sets.New[string]()},
		{name: "Empty source", source: sets.New[string](), target: sets.New("legacy")},
		{name: "Disjoint", source: sets.New("a", "b"), target: sets.New("c", "d")},
		{name: "Overlap", source: sets.New("a", "b", "c"), target: sets.New("b", "c", "d")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			plan := reconcile.ReconcileGroups(tc.source, tc.target)

			assert.Equal(t, tc.source.Difference(tc.target), plan.ToCreate)
			assert.Equal(t, tc.target.Difference(tc.source), plan.ToDelete)
			assert.Zero(t, plan.ToCreate.Intersection(plan.ToDelete).Len())

			// применение плана к цели дает множество источника
			result := tc.target.Union(plan.ToCreate).Difference(plan.ToDelete)
			assert.True(t, result.Equal(tc.source))
		})
	}
}

func TestGroupPlan_Actions_Order(t *testing.T) {
	plan := reconcile.ReconcileGroups(sets.New("b", "a", "keep"), sets.New("keep", "z", "y"))

	expected := []domain.Action{
		{Kind: domain.ActionCreateGroup, Group: "a"},
		{Kind: domain.ActionCreateGroup, Group: "b"},
		{Kind: domain.ActionDeleteGroup, Group: "y"},
		{Kind: domain.ActionDeleteGroup, Group: "z"},
	}
	assert.Equal(t, expected, plan.Actions())
}

func TestGroupPlan_Empty(t *testing.T) {
	plan := reconcile.ReconcileGroups(sets.New("eng"), sets.New("eng"))

	assert.True(t, plan.IsEmpty())
	assert.Empty(t, plan.Actions())
}
