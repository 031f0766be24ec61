// Package metrics собирает метрики исходящих запросов клиента в Prometheus.
package metrics

import (
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// StatusTransportError значение метки status, если ответ не получен.
const StatusTransportError = "transport_error"

// Client реализует core.Recorder.
type Client struct {
	gatherer prometheus.Gatherer
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New регистрирует метрики в собственном реестре.
func New() *Client {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry регистрирует метрики в reg; gatherer используется для Dump.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Client {
	c := &Client{
		gatherer: gatherer,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yayayum",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Number of API requests by operation, method and status.",
		}, []string{"operation", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "yayayum",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "method"}),
	}
	reg.MustRegister(c.requests, c.duration)
	return c
}

// ObserveRequest учитывает один запрос.
func (c *Client) ObserveRequest(operation, method string, status int, duration time.Duration) {
	label := StatusTransportError
	if status > 0 {
		label = strconv.Itoa(status)
	}
	c.requests.WithLabelValues(operation, method, label).Inc()
	c.duration.WithLabelValues(operation, method).Observe(duration.Seconds())
}

// Requests возвращает счётчик запросов, удобно для тестов.
func (c *Client) Requests() *prometheus.CounterVec {
	return c.requests
}

// Dump пишет все метрики реестра в текстовом формате Prometheus.
func (c *Client) Dump(w io.Writer) error {
	families, err := c.gatherer.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
