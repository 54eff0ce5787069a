package reconcile_test

import (
	"testing"

	"group-sync-service/internal/domain"
	"group-sync-service/internal/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/sets"
)

func TestReconcileMemberships_AddMissingGroup(t *testing.T) {
	source := []domain.SourceUser{
		{ID: "p1", Username: "alice", Email: "alice@x", Groups: sets.New("eng")},
		{ID: "p2", Username: "bob", Email: "bob@x", Groups: sets.New("eng", "ops")},
	}
	target := []domain.TargetUser{
		{ID: "o1", Email: "alice@x", Groups: sets.New("eng")},
		{ID: "o2", Email: "bob@x", Groups: sets.New("eng")},
	}

	plan := reconcile.ReconcileMemberships(source, target)

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, domain.Action{
		Kind:   domain.ActionAddMembership,
		Group:  "ops",
		UserID: "o2",
		Email:  "bob@x",
	}, plan.Actions[0])
	assert.Empty(t, plan.Unmatched)
	assert.Empty(t, plan.Ambiguous)
}

func TestReconcileMemberships_AddsBeforeRemoves(t *testing.T) {
	source := []domain.SourceUser{
		{ID: "p1", Email: "alice@x", Groups: sets.New("ops", "eng")},
	}
	target := []domain.TargetUser{
		{ID: "o1", Email: "alice@x", Groups: sets.New("sales", "legacy")},
	}

	plan := reconcile.ReconcileMemberships(source, target)

	expected := []domain.Action{
		{Kind: domain.ActionAddMembership, Group: "eng", UserID: "o1", Email: "alice@x"},
		{Kind: domain.ActionAddMembership, Group: "ops", UserID: "o1", Email: "alice@x"},
		{Kind: domain.ActionRemoveMembership, Group: "legacy", UserID: "o1", Email: "alice@x"},
		{Kind: domain.ActionRemoveMembership, Group: "sales", UserID: "o1", Email: "alice@x"},
	}
	assert.Equal(t, expected, plan.Actions)
}

func TestReconcileMemberships_UnmatchedUserIsLeftAlone(t *testing.T) {
	source := []domain.SourceUser{
		{ID: "p1", Email: "alice@x", Groups: sets.New("eng")},
	}
	target := []domain.TargetUser{
		{ID: "o1", Email: "alice@x", Groups: sets.New("eng")},
		{ID: "o9", Email: "carol@x", Groups: sets.New("eng", "ops")},
	}

	plan := reconcile.ReconcileMemberships(source, target)

	assert.Empty(t, plan.Actions)
	require.Len(t, plan.Unmatched, 1)
	assert.Equal(t, "o9", plan.Unmatched[0].ID)
}

func TestReconcileMemberships_EmptyEmailNeverMatches(t *testing.T) {
	source := []domain.SourceUser{
		{ID: "p1", Email: "", Groups: sets.New("eng")},
	}
	target := []domain.TargetUser{
		{ID: "o1", Email: "", Groups: sets.New("ops")},
	}

	plan := reconcile.ReconcileMemberships(source, target)

	assert.Empty(t, plan.Actions)
	require.Len(t, plan.Unmatched, 1)
	assert.Equal(t, "o1", plan.Unmatched[0].ID)
}

func TestReconcileMemberships_AmbiguousEmailIsSkipped(t *testing.T) {
	source := []domain.SourceUser{
		{ID: "p1", Email: "shared@x", Groups: sets.New("eng")},
		{ID: "p2", Email: "shared@x", Groups: sets.New("ops")},
	}
	target := []domain.TargetUser{
		{ID: "o1", Email: "shared@x", Groups: sets.New[string]()},
	}

	plan := reconcile.ReconcileMemberships(source, target)

	assert.Empty(t, plan.Actions)
	assert.Empty(t, plan.Unmatched)
	require.Len(t, plan.Ambiguous, 1)
	assert.Equal(t, "o1", plan.Ambiguous[0].ID)
}

func TestReconcileMemberships_NilGroups(t *testing.T) {
	source := []domain.SourceUser{
		{ID: "p1", Email: "alice@x"},
	}
	target := []domain.TargetUser{
		{ID: "o1", Email: "alice@x", Groups: sets.New("eng")},
	}

	plan := reconcile.ReconcileMemberships(source, target)

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, domain.ActionRemoveMembership, plan.Actions[0].Kind)
	assert.Equal(t, "eng", plan.Actions[0].Group)
}

func TestReconcileMemberships_DeterministicOrder(t *testing.T) {
	source := []domain.SourceUser{
		{ID: "p1", Email: "a@x", Groups: sets.New("eng")},
		{ID: "p2", Email: "b@x", Groups: sets.New("eng")},
	}
	target := []domain.TargetUser{
		{ID: "o2", Email: "b@x"},
		{ID: "o1", Email: "a@x"},
	}

	plan := reconcile.ReconcileMemberships(source, target)

	require.Len(t, plan.Actions, 2)
	assert.Equal(t, "o1", plan.Actions[0].UserID)
	assert.Equal(t, "o2", plan.Actions[1].UserID)
}
