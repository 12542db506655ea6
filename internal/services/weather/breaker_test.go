package weather_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-cli/internal/models"
	"github.com/Nazarious-ucu/weather-cli/internal/services/weather"
)

var breakerCfg = weather.BreakerConfig{
	TimeInterval: 30 * time.Second,
	TimeTimeOut:  15 * time.Second,
	RepeatNumber: 5,
}

type mockWrapped struct {
	mock.Mock
}

func (m *mockWrapped) Fetch(ctx context.Context, city, countryCode string) (models.WeatherRecord, error) {
	args := m.Called(ctx, city, countryCode)
	data, ok := args.Get(0).(models.WeatherRecord)
	if !ok {
		return models.WeatherRecord{}, args.Error(1)
	}
	return data, args.Error(1)
}

const (
	breakerName = "TestAPI"
	city        = "Lviv"
	country     = "UA"
)

func TestBreakerClient_Success(t *testing.T) {
	wrapped := new(mockWrapped)
	expected := models.WeatherRecord{LocationName: city, Temperature: 20, Description: "clear sky"}

	wrapped.
		On("Fetch", mock.Anything, city, country).
		Return(expected, nil).
		Once()

	bc := weather.NewBreakerClient(breakerName, breakerCfg, wrapped)

	data, err := bc.Fetch(context.Background(), city, country)
	assert.NoError(t, err)
	assert.Equal(t, expected, data)

	wrapped.AssertExpectations(t)
	wrapped.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestBreakerClient_UnderlyingErrorBeforeTrip(t *testing.T) {
	wrapped := new(mockWrapped)
	underlyingErr := errors.New("service down")

	wrapped.
		On("Fetch", mock.Anything, city, country).
		Return(models.WeatherRecord{}, underlyingErr).
		Once()

	bc := weather.NewBreakerClient(breakerName, breakerCfg, wrapped)

	data, err := bc.Fetch(context.Background(), city, country)
	require.Error(t, err)
	assert.Empty(t, data)
	assert.ErrorIs(t, err, weather.ErrFetchFailed)
	assert.ErrorIs(t, err, underlyingErr)
	assert.Equal(t, "fetch failed: "+underlyingErr.Error(), err.Error())
	assert.Equal(t, gobreaker.StateClosed, bc.State())

	wrapped.AssertExpectations(t)
	wrapped.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestBreakerClient_TripCircuitAfterFiveFailures(t *testing.T) {
	wrapped := new(mockWrapped)
	underlyingErr := errors.New("timeout")

	wrapped.
		On("Fetch", mock.Anything, city, country).
		Return(models.WeatherRecord{}, underlyingErr).
		Times(5)

	bc := weather.NewBreakerClient(breakerName, breakerCfg, wrapped)

	for i := 1; i <= 5; i++ {
		_, err := bc.Fetch(context.Background(), city, country)
		assert.Error(t, err, "call #%d should error before trip", i)
		assert.Equal(t, "fetch failed: "+underlyingErr.Error(), err.Error())
	}

	_, err := bc.Fetch(context.Background(), city, country)
	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, "fetch failed: "+breakerName+" unavailable: "+gobreaker.ErrOpenState.Error(), err.Error())
	assert.ErrorIs(t, err, weather.ErrFetchFailed)
	assert.Equal(t, gobreaker.StateOpen, bc.State())

	wrapped.AssertExpectations(t)
	wrapped.AssertNumberOfCalls(t, "Fetch", 5)
}

func TestBreakerClient_ClientErrorsDoNotTrip(t *testing.T) {
	wrapped := new(mockWrapped)
	notFound := &weather.StatusError{Code: 404, Status: "404 Not Found", Message: "city not found"}

	wrapped.
		On("Fetch", mock.Anything, city, country).
		Return(models.WeatherRecord{}, notFound).
		Times(7)

	bc := weather.NewBreakerClient(breakerName, breakerCfg, wrapped)

	for i := 0; i < 7; i++ {
		_, err := bc.Fetch(context.Background(), city, country)
		require.Error(t, err)
		assert.ErrorIs(t, err, weather.ErrFetchFailed)
		assert.NotContains(t, err.Error(), "unavailable")
		assert.Contains(t, err.Error(), "city not found")
	}

	assert.Equal(t, gobreaker.StateClosed, bc.State())
	wrapped.AssertNumberOfCalls(t, "Fetch", 7)
}

func TestBreakerClient_PassesFetchErrorsThrough(t *testing.T) {
	wrapped := new(mockWrapped)
	notFound := &weather.StatusError{Code: 404, Status: "404 Not Found", Message: "city not found"}

	wrapped.
		On("Fetch", mock.Anything, city, country).
		Return(models.WeatherRecord{}, weather.WrapFetchError(notFound)).
		Once()

	bc := weather.NewBreakerClient(breakerName, breakerCfg, wrapped)

	_, err := bc.Fetch(context.Background(), city, country)
	require.Error(t, err)
	assert.Equal(t, "fetch failed: OpenWeatherMap error: status 404 Not Found: city not found", err.Error())
}
