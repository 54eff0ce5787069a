package usecase_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"

	"group-sync-service/internal/domain"
	"group-sync-service/internal/mocks"
	"group-sync-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func generateAuthorizedKey(t *testing.T) string {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	sshPub, err := ssh.NewPublicKey(pub)
	require.NoError(t, err)
	return strings.TrimSpace(string(ssh.MarshalAuthorizedKey(sshPub)))
}

func TestAuthorizedKeyUseCase_LookupKey(t *testing.T) {
	ctx := context.Background()
	aliceKey := generateAuthorizedKey(t)
	bobKey := generateAuthorizedKey(t)
	strangerKey := generateAuthorizedKey(t)

	accounts := []domain.SourceAccount{
		{
			ID: "p1", Username: "alice", Email: "alice@x", Groups: []string{"ssh-users"},
			Claims: map[string]string{"ssh-pubkey": aliceKey + " alice@laptop\n"},
		},
		{
			ID: "p2", Username: "bob", Email: "bob@x", Groups: []string{"eng"},
			Claims: map[string]string{"ssh-pubkey": bobKey},
		},
		{
			ID: "p3", Username: "mallory", Email: "mallory@x", Groups: []string{"ssh-users"},
			Claims: map[string]string{"ssh-pubkey": "not a key"},
		},
		{
			ID: "p4", Username: "dave", Email: "dave@x", Disabled: true, Groups: []string{"ssh-users"},
			Claims: map[string]string{"ssh-pubkey": strangerKey},
		},
	}

	testCases := []struct {
		name      string
		key       string
		wantKey   string
		wantFound bool
	}{
		{name: "Member of allowed group", key: aliceKey, wantKey: aliceKey + " alice@laptop", wantFound: true},
		{name: "Key with comment", key: aliceKey + " other-comment", wantKey: aliceKey + " alice@laptop", wantFound: true},
		{name: "User outside allowed group", key: bobKey, wantFound: false},
		{name: "Disabled user", key: strangerKey, wantFound: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &mocks.IdentityProvider{}
			provider.On("ListUsers", ctx).Return(accounts, nil)
			uc := usecase.NewAuthorizedKeyUseCase(provider, "ssh-users", "ssh-pubkey", newTestLogger())

			key, found, err := uc.LookupKey(ctx, tc.key)

			require.NoError(t, err)
			assert.Equal(t, tc.wantFound, found)
			assert.Equal(t, tc.wantKey, key)
		})
	}
}

func TestAuthorizedKeyUseCase_InvalidKey(t *testing.T) {
	ctx := context.Background()
	provider := &mocks.IdentityProvider{}
	uc := usecase.NewAuthorizedKeyUseCase(provider, "ssh-users", "ssh-pubkey", newTestLogger())

	for _, raw := range []string{"", "garbage", "ssh-ed25519 !!!notbase64"} {
		_, found, err := uc.LookupKey(ctx, raw)

		assert.ErrorIs(t, err, domain.ErrInvalidPublicKey)
		assert.False(t, found)
	}
	provider.AssertNotCalled(t, "ListUsers", mock.Anything)
}

func TestAuthorizedKeyUseCase_Disabled(t *testing.T) {
	ctx := context.Background()
	provider := &mocks.IdentityProvider{}
	uc := usecase.NewAuthorizedKeyUseCase(provider, "", "ssh-pubkey", newTestLogger())

	_, _, err := uc.LookupKey(ctx, generateAuthorizedKey(t))

	assert.ErrorIs(t, err, domain.ErrSSHLookupDisabled)
	provider.AssertNotCalled(t, "ListUsers", mock.Anything)
}

func TestAuthorizedKeyUseCase_EmptySource(t *testing.T) {
	ctx := context.Background()
	provider := &mocks.IdentityProvider{}
	provider.On("ListUsers", ctx).Return([]domain.SourceAccount{}, nil)
	uc := usecase.NewAuthorizedKeyUseCase(provider, "ssh-users", "ssh-pubkey", newTestLogger())

	key, found, err := uc.LookupKey(ctx, generateAuthorizedKey(t))

	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, key)
}

func TestAuthorizedKeyUseCase_ProviderError(t *testing.T) {
	ctx := context.Background()
	provider := &mocks.IdentityProvider{}
	outage := &domain.TransportError{System: "pocketid", Op: "GET /api/users", StatusCode: 503}
	provider.On("ListUsers", ctx).Return(nil, outage)
	uc := usecase.NewAuthorizedKeyUseCase(provider, "ssh-users", "ssh-pubkey", newTestLogger())

	_, found, err := uc.LookupKey(ctx, generateAuthorizedKey(t))

	var transportErr *domain.TransportError
	assert.ErrorAs(t, err, &transportErr)
	assert.False(t, found)
}
