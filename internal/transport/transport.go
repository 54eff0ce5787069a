// Package transport содержит общий HTTP-клиент для Pocket ID и Outline.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"group-sync-service/internal/domain"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

// Options задает параметры клиента.
type Options struct {
	System   string
	BaseURL  string
	Headers  map[string]string
	Timeout  time.Duration
	RetryMax int
	Logger   logrus.FieldLogger
}

// Client выполняет JSON-запросы к внешней системе с повторами на уровне транспорта.
type Client struct {
	system  string
	baseURL string
	headers map[string]string
	http    *retryablehttp.Client
}

// New создает новый экземпляр Client.
func New(opts Options) *Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = opts.Timeout
	rc.RetryMax = opts.RetryMax
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = time.Second
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = nil
	if opts.Logger != nil {
		rc.Logger = NewLeveledLogger(opts.Logger.WithField("system", opts.System))
	}

	return &Client{
		system:  opts.System,
		baseURL: opts.BaseURL,
		headers: opts.Headers,
		http:    rc,
	}
}

// Do отправляет запрос и декодирует JSON-ответ в out (если out не nil).
// Ответ 404 возвращается как TransportError, оборачивающий domain.ErrNotFound.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", path, err)
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, raw)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.TransportError{System: c.system, Op: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &domain.TransportError{System: c.system, Op: path, StatusCode: resp.StatusCode, Err: domain.ErrNotFound}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &domain.TransportError{System: c.system, Op: path, StatusCode: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.TransportError{System: c.system, Op: path, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}

// LeveledLogger адаптирует logrus к интерфейсу retryablehttp.LeveledLogger.
type LeveledLogger struct {
	logger logrus.FieldLogger
}

// NewLeveledLogger создает новый экземпляр LeveledLogger.
func NewLeveledLogger(logger logrus.FieldLogger) *LeveledLogger {
	return &LeveledLogger{logger: logger}
}

func (l *LeveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(toFields(keysAndValues)).Error(msg)
}

func (l *LeveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(toFields(keysAndValues)).Info(msg)
}

func (l *LeveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(toFields(keysAndValues)).Debug(msg)
}

func (l *LeveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(toFields(keysAndValues)).Warn(msg)
}

func toFields(keysAndValues []interface{}) logrus.Fields {
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		// retryablehttp передает *http.Request и *http.Response целиком
		switch v := keysAndValues[i+1].(type) {
		case *http.Request:
			fields[key] = v.URL.Path
		case *http.Response:
			fields[key] = v.StatusCode
		default:
			fields[key] = v
		}
	}
	return fields
}
