package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/magabrotheeeer/yayayum/internal/lib/sl"
)

// RequestIDHeader заголовок с идентификатором исходящего запроса.
const RequestIDHeader = "X-Request-ID"

// NoContent тип результата операций без тела ответа.
type NoContent struct{}

// Request выполняет операцию d и возвращает отменяемый Call. Ответ 2xx
// декодируется в T; 204 или пустое тело дают нулевое значение T.
// Неверные параметры пути отклоняются до отправки.
func Request[T any](ctx context.Context, cfg *Config, d Descriptor) *Call[T] {
	target, err := cfg.buildURL(d)
	if err != nil {
		cfg.log.Warn("request rejected before dispatch",
			sl.Op("core.Request"),
			slog.String("operation", d.Operation),
			sl.Err(err),
		)
		return Fail[T](err)
	}

	return Start(ctx, func(ctx context.Context) (T, error) {
		var out T
		body, err := cfg.send(ctx, d, target)
		if err != nil {
			return out, err
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return out, nil
		}
		if _, ok := any(&out).(*NoContent); ok {
			return out, nil
		}
		if err := json.Unmarshal(body, &out); err != nil {
			return out, fmt.Errorf("core.Request: %s: decode response: %w", d.Operation, err)
		}
		return out, nil
	})
}

// send отправляет запрос и возвращает тело успешного ответа.
func (c *Config) send(ctx context.Context, d Descriptor, target string) ([]byte, error) {
	const op = "core.send"

	requestID := uuid.NewString()
	log := c.log.With(
		sl.Op(op),
		slog.String("operation", d.Operation),
		slog.String("method", d.Method),
		slog.String("url", target),
		slog.String("request_id", requestID),
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			log.Warn("rate limiter wait aborted", sl.Err(err))
			return nil, &TransportError{Operation: d.Operation, Method: d.Method, URL: target, Err: err}
		}
	}

	req, err := c.newRequest(ctx, d, target)
	if err != nil {
		return nil, err
	}
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(d, 0, time.Since(start))
		if ctx.Err() != nil {
			log.Debug("request aborted", sl.Err(err))
		} else {
			log.Error("request failed", sl.Err(err))
		}
		return nil, &TransportError{Operation: d.Operation, Method: d.Method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.observe(d, resp.StatusCode, time.Since(start))
	if err != nil {
		log.Error("failed to read response body", sl.Err(err))
		return nil, &TransportError{Operation: d.Operation, Method: d.Method, URL: target, Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Debug("request completed", slog.Int("status", resp.StatusCode))
		return body, nil
	}

	apiErr := &APIError{
		Operation:  d.Operation,
		Method:     d.Method,
		URL:        target,
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Body:       body,
	}
	if msg, ok := d.Errors[resp.StatusCode]; ok {
		apiErr.Mapped = true
		apiErr.Message = msg
	} else {
		apiErr.Message = errorMessage(body, apiErr.StatusText)
	}
	log.Warn("request returned error status",
		slog.Int("status", resp.StatusCode),
		slog.Bool("mapped", apiErr.Mapped),
		slog.String("message", apiErr.Message),
	)
	return nil, apiErr
}

func (c *Config) newRequest(ctx context.Context, d Descriptor, target string) (*http.Request, error) {
	const op = "core.newRequest"

	bodyReader, mediaType, err := encodeBody(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, d.Method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidRequest, err)
	}
	req.Header.Set("Accept", MediaTypeJSON)
	if mediaType != "" {
		req.Header.Set("Content-Type", mediaType)
	}

	if c.headers != nil {
		headers, err := c.headers(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: resolve headers: %w", op, err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
	}

	token := ""
	if c.token != nil {
		token, err = c.token(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: resolve token: %w", op, err)
		}
	}
	switch {
	case token != "":
		req.Header.Set("Authorization", "Bearer "+token)
	case c.username != "" || c.password != "":
		req.SetBasicAuth(c.username, c.password)
	}
	return req, nil
}

func encodeBody(d Descriptor) (io.Reader, string, error) {
	if d.Body == nil {
		return nil, "", nil
	}
	mediaType := d.MediaType
	if mediaType == "" {
		mediaType = MediaTypeJSON
	}

	switch b := d.Body.(type) {
	case []byte:
		return bytes.NewReader(b), mediaType, nil
	case string:
		return strings.NewReader(b), mediaType, nil
	}

	if !strings.Contains(mediaType, "json") {
		return nil, "", fmt.Errorf("cannot encode %T as %s", d.Body, mediaType)
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(d.Body); err != nil {
		return nil, "", err
	}
	return &buf, mediaType, nil
}

// errorMessage достаёт текст ошибки из JSON-тела, если он там есть.
func errorMessage(body []byte, fallback string) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error", "message", "detail"} {
			if v := gjson.GetBytes(body, path); v.Exists() && v.Type == gjson.String && v.String() != "" {
				return v.String()
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 256 && !gjson.ValidBytes(body) {
		return text
	}
	return fallback
}

func (c *Config) observe(d Descriptor, status int, duration time.Duration) {
	if c.recorder == nil {
		return
	}
	c.recorder.ObserveRequest(d.Operation, d.Method, status, duration)
}
