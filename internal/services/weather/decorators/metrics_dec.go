package decorators

import (
	"context"
	"time"

	"github.com/Nazarious-ucu/weather-cli/internal/models"
)

const (
	fetchOperation = "fetch"

	resultSuccess = "success"
	resultFailure = "failure"
)

type weatherFetcher interface {
	Fetch(ctx context.Context, city, countryCode string) (models.WeatherRecord, error)
}

type metricsCollector interface {
	ObserveLatency(operation string, duration time.Duration)
	IncrementCounter(metric string, labels ...string)
}

// MetricsClient records latency and outcome of every fetch.
type MetricsClient struct {
	next      weatherFetcher
	collector metricsCollector
}

func NewMetricsClient(next weatherFetcher, collector metricsCollector) *MetricsClient {
	return &MetricsClient{next: next, collector: collector}
}

func (m *MetricsClient) Fetch(ctx context.Context, city, countryCode string) (models.WeatherRecord, error) {
	start := time.Now()
	data, err := m.next.Fetch(ctx, city, countryCode)
	m.collector.ObserveLatency(fetchOperation, time.Since(start))
	if err != nil {
		m.collector.IncrementCounter(fetchOperation, resultFailure)
		return models.WeatherRecord{}, err
	}
	m.collector.IncrementCounter(fetchOperation, resultSuccess)
	return data, nil
}
