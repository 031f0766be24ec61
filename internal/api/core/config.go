// Package core содержит транспортный слой клиента yayayum: неизменяемую
// конфигурацию, отменяемый запрос Call и исполнитель декларативных запросов.
package core

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/yayayum/internal/lib/sl"
)

// TokenFunc возвращает bearer-токен для запроса. Пустая строка означает "без токена".
type TokenFunc func(ctx context.Context) (string, error)

// HeadersFunc возвращает дополнительные заголовки для запроса.
type HeadersFunc func(ctx context.Context) (map[string]string, error)

// Recorder принимает результат каждого запроса. Реализуется пакетом metrics.
// status равен 0, если ответ не был получен.
type Recorder interface {
	ObserveRequest(operation, method string, status int, duration time.Duration)
}

// Config транспортные настройки клиента. Создаётся один раз через NewConfig
// и после этого не меняется, поэтому безопасен для конкурентного чтения.
type Config struct {
	baseURL    string
	token      TokenFunc
	username   string
	password   string
	headers    HeadersFunc
	httpClient *http.Client
	timeout    time.Duration
	log        *slog.Logger
	recorder   Recorder
	limiter    *rate.Limiter
}

// Option настраивает Config при создании.
type Option func(*Config)

// ErrEmptyBaseURL возвращается NewConfig для пустого адреса API.
var ErrEmptyBaseURL = errors.New("base url is empty")

// NewConfig создаёт конфигурацию для API по адресу baseURL.
func NewConfig(baseURL string, opts ...Option) (*Config, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	cfg := &Config{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.timeout > 0 {
		client := *cfg.httpClient
		client.Timeout = cfg.timeout
		cfg.httpClient = &client
	}
	cfg.log = sl.OrDiscard(cfg.log)
	return cfg, nil
}

// WithToken задаёт источник bearer-токена.
func WithToken(fn TokenFunc) Option {
	return func(c *Config) {
		c.token = fn
	}
}

// WithStaticToken задаёт постоянный bearer-токен.
func WithStaticToken(token string) Option {
	return WithToken(func(context.Context) (string, error) {
		return token, nil
	})
}

// WithBasicAuth включает basic-авторизацию. Bearer-токен имеет приоритет.
func WithBasicAuth(username, password string) Option {
	return func(c *Config) {
		c.username = username
		c.password = password
	}
}

// WithHeaders задаёт источник дополнительных заголовков.
func WithHeaders(fn HeadersFunc) Option {
	return func(c *Config) {
		c.headers = fn
	}
}

// WithHTTPClient подменяет http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout задаёт таймаут http.Client. По умолчанию таймаута нет.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.timeout = d
	}
}

// WithLogger задаёт логгер запросов.
func WithLogger(log *slog.Logger) Option {
	return func(c *Config) {
		c.log = log
	}
}

// WithRecorder задаёт приёмник метрик.
func WithRecorder(r Recorder) Option {
	return func(c *Config) {
		c.recorder = r
	}
}

// WithRateLimit ограничивает частоту исходящих запросов. rps <= 0 отключает ограничение.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Config) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// BaseURL возвращает адрес API без завершающего слэша.
func (c *Config) BaseURL() string {
	return c.baseURL
}

// Logger возвращает логгер конфигурации.
func (c *Config) Logger() *slog.Logger {
	return c.log
}
