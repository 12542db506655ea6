package weather

import (
	"context"
	"errors"
	"net/http"
	"path"
	"reflect"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-cli/internal/models"
)

var errNoClients = errors.New("no weather clients configured")

type client interface {
	Fetch(ctx context.Context, city, countryCode string) (models.WeatherRecord, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ServiceProvider asks each client in turn and returns the first answer.
type ServiceProvider struct {
	logger  zerolog.Logger
	clients []client
}

func NewService(logger zerolog.Logger, clients ...client) *ServiceProvider {
	return &ServiceProvider{clients: clients, logger: logger}
}

func getFuncName(fn interface{}) string {
	pc := reflect.ValueOf(fn).Pointer()
	return path.Base(runtime.FuncForPC(pc).Name())
}

// GetByLocation returns the weather for city in countryCode. When every
// client fails the last error is returned; it always wraps ErrFetchFailed.
func (s *ServiceProvider) GetByLocation(
	ctx context.Context,
	city, countryCode string,
) (models.WeatherRecord, error) {
	lastErr := fetchFailed(errNoClients)

	for _, cl := range s.clients {
		s.logger.Debug().
			Ctx(ctx).
			Str("client", getFuncName(cl.Fetch)).
			Str("city", city).
			Str("country", countryCode).
			Msg("calling Fetch")

		data, err := cl.Fetch(ctx, city, countryCode)
		if err != nil {
			s.logger.Error().
				Ctx(ctx).
				Str("client", getFuncName(cl.Fetch)).
				Err(err).
				Msg("fetch failed")
			if !errors.Is(err, ErrFetchFailed) {
				err = fetchFailed(err)
			}
			lastErr = err
			continue
		}

		s.logger.Debug().
			Ctx(ctx).
			Str("client", getFuncName(cl.Fetch)).
			Msg("fetch succeeded")
		return data, nil
	}

	return models.WeatherRecord{}, lastErr
}
