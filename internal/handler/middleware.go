package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// APIKeyHeader содержит имя заголовка с ключом доступа к триггеру синхронизации.
const APIKeyHeader = "X-API-Key"

// LoggingMiddleware добавляет структурированное логирование
func LoggingMiddleware(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Выполняем запрос
			err := next(c)

			// Логируем детали запроса
			latency := time.Since(start)
			status := c.Response().Status

			entry := logger.WithFields(logrus.Fields{
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"method":     c.Request().Method,
				"uri":        c.Request().URL.Path,
				"status":     status,
				"latency":    latency,
				"user_agent": c.Request().UserAgent(),
				"ip":         c.RealIP(),
			})

			if err != nil {
				entry = entry.WithField("error", err.Error())
			}

			if status >= 500 {
				entry.Error("Server error")
			} else if status >= 400 {
				entry.Warn("Client error")
			} else {
				entry.Info("Request processed")
			}

			return err
		}
	}
}

// APIKeyMiddleware проверяет заголовок X-API-Key. Служебные пути (health, version, metrics)
// доступны без ключа. Неверный или отсутствующий ключ дает 403.
// Незарегистрированные маршруты пропускаются, чтобы echo ответил 404/405.
func APIKeyMiddleware(apiKey string, logger *logrus.Logger, publicPaths ...string) echo.MiddlewareFunc {
	public := make(map[string]bool, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = true
	}

	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup: "header:" + APIKeyHeader,
		Skipper: func(c echo.Context) bool {
			return public[c.Path()] || !isRegisteredRoute(c)
		},
		Validator: func(key string, c echo.Context) (bool, error) {
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
				return true, nil
			}
			logger.WithField("ip", c.RealIP()).Warn("Invalid API key")
			return false, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return c.JSON(http.StatusForbidden, toErrorResponse("FORBIDDEN", "invalid or missing api key"))
		},
	})
}

func isRegisteredRoute(c echo.Context) bool {
	path := c.Path()
	if path == "" {
		return false
	}
	for _, r := range c.Echo().Routes() {
		if r.Path == path && r.Method == c.Request().Method {
			return true
		}
	}
	return false
}
