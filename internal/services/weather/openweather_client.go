package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-cli/internal/models"
	"github.com/Nazarious-ucu/weather-cli/internal/services/logger"
)

const (
	// APIKeyParam is the query parameter carrying the API key.
	APIKeyParam = "appid"
	metricUnits = "metric"
)

// ErrFetchFailed is returned for every failed weather lookup, whatever the cause.
var ErrFetchFailed = errors.New("fetch failed")

type apiResponse struct {
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
		Pressure *float64 `json:"pressure"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Name *string `json:"name"`
}

type apiError struct {
	Message string `json:"message"`
}

func (r apiResponse) record() (models.WeatherRecord, error) {
	switch {
	case len(r.Weather) == 0 || r.Weather[0].Description == nil:
		return models.WeatherRecord{}, missingField("weather[0].description")
	case r.Main == nil:
		return models.WeatherRecord{}, missingField("main")
	case r.Main.Temp == nil:
		return models.WeatherRecord{}, missingField("main.temp")
	case r.Main.Humidity == nil:
		return models.WeatherRecord{}, missingField("main.humidity")
	case r.Main.Pressure == nil:
		return models.WeatherRecord{}, missingField("main.pressure")
	case r.Wind == nil || r.Wind.Speed == nil:
		return models.WeatherRecord{}, missingField("wind.speed")
	case r.Name == nil:
		return models.WeatherRecord{}, missingField("name")
	}

	return models.WeatherRecord{
		Description:  *r.Weather[0].Description,
		Temperature:  *r.Main.Temp,
		Humidity:     *r.Main.Humidity,
		Pressure:     *r.Main.Pressure,
		WindSpeed:    *r.Wind.Speed,
		LocationName: *r.Name,
	}, nil
}

func missingField(name string) error {
	return fmt.Errorf("response is missing %q", name)
}

// fetchError carries the cause of a failed lookup and matches ErrFetchFailed.
type fetchError struct {
	cause error
}

func (e *fetchError) Error() string {
	return ErrFetchFailed.Error() + ": " + e.cause.Error()
}

func (e *fetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

func (e *fetchError) Unwrap() error {
	return e.cause
}

func fetchFailed(err error) error {
	return &fetchError{cause: err}
}

// ClientOpenWeatherMap fetches current conditions from the OpenWeatherMap API.
type ClientOpenWeatherMap struct {
	APIKey string
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

// NewClientOpenWeatherMap constructs a new OpenWeatherMap client.
func NewClientOpenWeatherMap(apiKey, apiURL string,
	httpClient HTTPClient, logger zerolog.Logger,
) *ClientOpenWeatherMap {
	return &ClientOpenWeatherMap{APIKey: apiKey, apiURL: apiURL, client: httpClient, logger: logger}
}

// Fetch performs a single request for city and countryCode. Any failure is
// wrapped in ErrFetchFailed.
func (s *ClientOpenWeatherMap) Fetch(ctx context.Context, city, countryCode string) (models.WeatherRecord, error) {
	start := time.Now()

	reqURL, err := s.buildURL(city, countryCode)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("endpoint", s.apiURL).
			Msg("invalid OpenWeatherMap endpoint")
		return models.WeatherRecord{}, fetchFailed(err)
	}

	s.logger.Debug().
		Str("city", city).
		Str("country", countryCode).
		Str("url", logger.RedactURL(reqURL, APIKeyParam)).
		Msg("starting OpenWeatherMap request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("city", city).
			Msg("failed to create HTTP request")
		return models.WeatherRecord{}, fetchFailed(err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		err = redactURLError(err)
		s.logger.Error().
			Err(err).
			Str("city", city).
			Str("country", countryCode).
			Msg("error sending HTTP request to OpenWeatherMap")
		return models.WeatherRecord{}, fetchFailed(err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Error().
				Err(cerr).
				Str("city", city).
				Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("city", city).
			Msg("failed to read OpenWeatherMap response")
		return models.WeatherRecord{}, fetchFailed(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		s.logger.Error().
			Str("city", city).
			Str("country", countryCode).
			Str("status", resp.Status).
			Msg("OpenWeatherMap API returned non-2xx status")
		return models.WeatherRecord{}, fetchFailed(statusError(resp, body))
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		s.logger.Error().
			Err(err).
			Str("city", city).
			Msg("failed to decode OpenWeatherMap response")
		return models.WeatherRecord{}, fetchFailed(err)
	}

	data, err := raw.record()
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("city", city).
			Msg("OpenWeatherMap response does not match the expected schema")
		return models.WeatherRecord{}, fetchFailed(err)
	}

	s.logger.Info().
		Str("city", city).
		Str("country", countryCode).
		Str("location", data.LocationName).
		Dur("duration_ms", time.Since(start)).
		Msg("successfully fetched weather data")

	return data, nil
}

func (s *ClientOpenWeatherMap) buildURL(city, countryCode string) (*url.URL, error) {
	u, err := url.Parse(s.apiURL)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("q", city+","+countryCode)
	q.Set(APIKeyParam, s.APIKey)
	q.Set("units", metricUnits)
	u.RawQuery = q.Encode()

	return u, nil
}

// StatusError is a non-2xx answer from the provider.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("OpenWeatherMap error: status %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("OpenWeatherMap error: status %s", e.Status)
}

// statusError keeps the provider's own message when the body carries one,
// e.g. {"cod":"404","message":"city not found"}.
func statusError(resp *http.Response, body []byte) error {
	se := &StatusError{Code: resp.StatusCode, Status: resp.Status}
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil {
		se.Message = apiErr.Message
	}
	return se
}

// redactURLError strips the API key from the URL that net/http embeds in
// transport errors, since the message ends up on the user's terminal.
func redactURLError(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	if u, perr := url.Parse(uerr.URL); perr == nil {
		uerr.URL = logger.RedactURL(u, APIKeyParam)
	}
	return err
}
