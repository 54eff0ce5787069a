package domain

import (
	"errors"
	"fmt"
)

// Domain errors (для бизнес-логики)
var (
	// Guard errors: проход прерывается до любых изменений
	ErrEmptySourceSnapshot = errors.New("source snapshot is empty")
	ErrEmptySourceGroupSet = errors.New("source snapshot has no groups")

	// Target errors
	ErrNotFound      = errors.New("not found")
	ErrGroupNotFound = errors.New("group not found")

	// SSH errors
	ErrInvalidPublicKey  = errors.New("invalid public key")
	ErrSSHLookupDisabled = errors.New("ssh key lookup is disabled")
)

// TransportError описывает сбой обращения к внешней системе (таймаут, не-2xx ответ).
type TransportError struct {
	System     string
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d", e.System, e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.System, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ApplyError описывает действие, на котором прервалось применение изменений.
type ApplyError struct {
	Action Action
	Err    error
}

func (e *ApplyError) Error() string {
	if e.Action.UserID != "" {
		return fmt.Sprintf("apply %s %q for user %s: %v", e.Action.Kind, e.Action.Group, e.Action.UserID, e.Err)
	}
	return fmt.Sprintf("apply %s %q: %v", e.Action.Kind, e.Action.Group, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// IsAbort сообщает, что проход прерван защитой от пустого снимка.
func IsAbort(err error) bool {
	return errors.Is(err, ErrEmptySourceSnapshot) || errors.Is(err, ErrEmptySourceGroupSet)
}

// HTTPError для соответствия OpenAPI
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

// Маппинг domain ошибок в HTTP ошибки
var ErrorMapping = map[error]HTTPError{
	ErrEmptySourceSnapshot: {Code: "SOURCE_EMPTY", Message: "identity provider returned no users"},
	ErrEmptySourceGroupSet: {Code: "SOURCE_EMPTY", Message: "identity provider returned no groups"},
	ErrGroupNotFound:       {Code: "APPLY_FAILED", Message: "group disappeared before membership could be added"},
	ErrSSHLookupDisabled:   {Code: "NOT_FOUND", Message: "ssh key lookup is not configured"},
}

// ToHTTPError преобразует domain ошибку в HTTP ошибку
func ToHTTPError(err error) (HTTPError, bool) {
	for target, httpErr := range ErrorMapping {
		if errors.Is(err, target) {
			return httpErr, true
		}
	}

	var applyErr *ApplyError
	if errors.As(err, &applyErr) {
		return HTTPError{Code: "APPLY_FAILED", Message: applyErr.Error()}, true
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return HTTPError{Code: "UPSTREAM_ERROR", Message: transportErr.Error()}, true
	}

	return HTTPError{}, false
}
