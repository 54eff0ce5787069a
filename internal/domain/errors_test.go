package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"group-sync-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPError(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		code   string
		mapped bool
	}{
		{name: "Empty snapshot", err: fmt.Errorf("guard: %w", domain.ErrEmptySourceSnapshot), code: "SOURCE_EMPTY", mapped: true},
		{name: "No groups", err: domain.ErrEmptySourceGroupSet, code: "SOURCE_EMPTY", mapped: true},
		{
			name:   "Apply error",
			err:    &domain.ApplyError{Action: domain.Action{Kind: domain.ActionCreateGroup, Group: "ops"}, Err: errors.New("forbidden")},
			code:   "APPLY_FAILED",
			mapped: true,
		},
		{
			name:   "Transport error",
			err:    fmt.Errorf("list users: %w", &domain.TransportError{System: "pocketid", Op: "/api/users", StatusCode: 500}),
			code:   "UPSTREAM_ERROR",
			mapped: true,
		},
		{name: "Invalid key is answered by the handler", err: domain.ErrInvalidPublicKey, mapped: false},
		{name: "Unknown", err: errors.New("boom"), mapped: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			httpErr, ok := domain.ToHTTPError(tc.err)
			assert.Equal(t, tc.mapped, ok)
			assert.Equal(t, tc.code, httpErr.Code)
		})
	}
}

func TestApplyError_Unwrap(t *testing.T) {
	err := &domain.ApplyError{
		Action: domain.Action{Kind: domain.ActionAddMembership, Group: "ops", UserID: "o2"},
		Err:    &domain.TransportError{System: "outline", Op: "/groups.add_user", StatusCode: 404, Err: domain.ErrNotFound},
	}

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), `apply add_membership "ops" for user o2`)
	assert.False(t, domain.IsAbort(err))
}
