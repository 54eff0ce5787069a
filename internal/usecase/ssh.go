package usecase

import (
	"bytes"
	"context"
	"strings"

	"group-sync-service/internal/domain"
	"group-sync-service/internal/reconcile"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

var allowedKeyTypes = map[string]bool{
	ssh.KeyAlgoRSA:      true,
	ssh.KeyAlgoED25519:  true,
	ssh.KeyAlgoECDSA256: true,
	ssh.KeyAlgoECDSA384: true,
	ssh.KeyAlgoECDSA521: true,
}

// AuthorizedKeyUseCase проверяет, принадлежит ли SSH ключ пользователю из разрешенной группы.
type AuthorizedKeyUseCase struct {
	source       *reconcile.SourceBuilder
	allowedGroup string
	claim        string
	logger       logrus.FieldLogger
}

// NewAuthorizedKeyUseCase создает новый экземпляр AuthorizedKeyUseCase.
func NewAuthorizedKeyUseCase(provider domain.IdentityProvider, allowedGroup, claim string, logger logrus.FieldLogger) domain.AuthorizedKeyUseCase {
	return &AuthorizedKeyUseCase{
		source:       reconcile.NewSourceBuilder(provider),
		allowedGroup: allowedGroup,
		claim:        claim,
		logger:       logger,
	}
}

// LookupKey возвращает ключ из custom claim пользователя, если он совпадает с запрошенным.
func (uc *AuthorizedKeyUseCase) LookupKey(ctx context.Context, pubkey string) (string, bool, error) {
	if uc.allowedGroup == "" {
		return "", false, domain.ErrSSHLookupDisabled
	}

	requested, err := parseKey(pubkey)
	if err != nil {
		return "", false, err
	}

	snapshot, err := uc.source.Build(ctx)
	if err != nil {
		return "", false, err
	}
	if snapshot.IsEmpty() {
		uc.logger.Warn("Unable to fetch users for key lookup")
		return "", false, nil
	}

	for _, u := range snapshot.Users {
		if !u.Groups.Has(uc.allowedGroup) {
			continue
		}
		value, ok := u.Claims[uc.claim]
		if !ok {
			continue
		}
		stored, err := parseKey(value)
		if err != nil {
			uc.logger.WithField("username", u.Username).Warn("User has malformed public key claim")
			continue
		}
		if bytes.Equal(stored.Marshal(), requested.Marshal()) {
			uc.logger.WithFields(logrus.Fields{
				"username":    u.Username,
				"fingerprint": ssh.FingerprintSHA256(requested),
			}).Info("Authorizing login")
			return strings.TrimSpace(value), true, nil
		}
	}

	return "", false, nil
}

func parseKey(raw string) (ssh.PublicKey, error) {
	key, _, _, rest, err := ssh.ParseAuthorizedKey([]byte(strings.TrimSpace(raw)))
	if err != nil || len(bytes.TrimSpace(rest)) > 0 {
		return nil, domain.ErrInvalidPublicKey
	}
	if !allowedKeyTypes[key.Type()] {
		return nil, domain.ErrInvalidPublicKey
	}
	return key, nil
}
