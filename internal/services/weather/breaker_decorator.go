package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Nazarious-ucu/weather-cli/internal/models"
)

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

// BreakerClient stops calling the wrapped client after RepeatNumber
// consecutive failures until TimeTimeOut has passed. Errors from the wrapped
// client pass through unchanged.
type BreakerClient struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped client
}

func NewBreakerClient(name string, cfg BreakerConfig, wrapped client) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
		IsSuccessful: providerHealthy,
	}
	return &BreakerClient{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

func (b *BreakerClient) Fetch(ctx context.Context, city, countryCode string) (models.WeatherRecord, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.wrapped.Fetch(ctx, city, countryCode)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return models.WeatherRecord{}, fetchFailed(fmt.Errorf("%s unavailable: %w", b.name, err))
		}
		if !errors.Is(err, ErrFetchFailed) {
			err = fetchFailed(err)
		}
		return models.WeatherRecord{}, err
	}
	res, ok := result.(models.WeatherRecord)
	if !ok {
		return models.WeatherRecord{},
			fetchFailed(fmt.Errorf("%s returned unexpected result", b.name))
	}
	return res, nil
}

// providerHealthy treats 4xx answers (unknown city, bad key) as healthy:
// they say nothing about whether the provider is reachable.
func providerHealthy(err error) bool {
	if err == nil {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.Code < http.StatusInternalServerError
}

// State reports the breaker state, mostly for logging.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}
