package handler

import (
	"errors"
	"net/http"

	"group-sync-service/api"
	"group-sync-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// SSHHandler обрабатывает проверку SSH ключей для авторизации входа
type SSHHandler struct {
	*BaseHandler
	keyUseCase domain.AuthorizedKeyUseCase
}

// NewSSHHandler создает новый экземпляр SSHHandler
func NewSSHHandler(keyUseCase domain.AuthorizedKeyUseCase, logger *logrus.Logger) *SSHHandler {
	return &SSHHandler{
		BaseHandler: NewBaseHandler(logger),
		keyUseCase:  keyUseCase,
	}
}

// GetSshAuthorizedKeys возвращает ключ, если он принадлежит пользователю разрешенной группы.
// Для неизвестного или некорректного ключа отвечает 204 без тела.
func (h *SSHHandler) GetSshAuthorizedKeys(c echo.Context, params api.GetSshAuthorizedKeysParams) error {
	logEntry := h.logRequest(c, "ssh_authorized_keys")

	key, found, err := h.keyUseCase.LookupKey(c.Request().Context(), params.Key)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPublicKey) {
			logEntry.WithField("key", params.Key).Warn("Invalid public key format")
			return c.NoContent(http.StatusNoContent)
		}
		logEntry.WithError(err).Error("Failed to look up public key")
		status, body := errorResponse(err)
		return c.JSON(status, body)
	}

	if !found {
		logEntry.WithFields(logrus.Fields{"key": params.Key}).Warn("No matching public key found")
		return c.NoContent(http.StatusNoContent)
	}

	return c.String(http.StatusOK, key+"\n")
}
