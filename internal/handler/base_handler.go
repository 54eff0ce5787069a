package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type BaseHandler struct {
	logger *logrus.Logger
}

func NewBaseHandler(logger *logrus.Logger) *BaseHandler {
	return &BaseHandler{
		logger: logger,
	}
}

// logRequest возвращает запись лога с полями запроса, включая request id из middleware.RequestID.
func (h *BaseHandler) logRequest(c echo.Context, operation string) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"operation":  operation,
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		"path":       c.Request().URL.Path,
		"ip":         c.RealIP(),
	})
}
