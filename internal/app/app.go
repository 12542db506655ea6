package app

import (
	"context"
	"io"
	"net/http"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"github.com/Nazarious-ucu/weather-cli/internal/config"
	"github.com/Nazarious-ucu/weather-cli/internal/models"
	"github.com/Nazarious-ucu/weather-cli/internal/presenter"
	"github.com/Nazarious-ucu/weather-cli/internal/services/logger"
	"github.com/Nazarious-ucu/weather-cli/internal/services/metrics"
	serviceWeather "github.com/Nazarious-ucu/weather-cli/internal/services/weather"
	"github.com/Nazarious-ucu/weather-cli/internal/services/weather/decorators"
	fLogger "github.com/Nazarious-ucu/weather-cli/pkg/logger"
)

const providerName = "OpenWeatherMap"

type fetcher interface {
	Fetch(ctx context.Context, city, countryCode string) (models.WeatherRecord, error)
}

// ServiceContainer holds the initialised dependencies of one run.
type ServiceContainer struct {
	WeatherService *serviceWeather.ServiceProvider
	Presenter      *presenter.Presenter
	Metrics        *metrics.PromCollector

	fileLogger *zap.Logger
}

// App ties together config, logger and console streams.
type App struct {
	cfg config.Config
	l   zerolog.Logger

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func New(cfg config.Config, logger zerolog.Logger, in io.Reader, out, errOut io.Writer) *App {
	return &App{
		cfg:    cfg,
		l:      logger,
		in:     in,
		out:    out,
		errOut: errOut,
	}
}

// Init builds the fetcher chain: metrics, optional circuit breaker,
// OpenWeatherMap client over a logging HTTP transport.
func (a *App) Init() (ServiceContainer, error) {
	a.l.Info().
		Str("endpoint", a.cfg.OpenWeatherMapURL).
		Bool("breaker", a.cfg.Breaker.Enabled()).
		Uint32("breaker_repeat_num", a.cfg.Breaker.RepeatNumber).
		Msg("initializing weather cli")

	fileLogger, err := fLogger.NewFileLogger(a.cfg.Log.HTTPPath)
	if err != nil {
		a.l.Error().Err(err).Str("path", a.cfg.Log.HTTPPath).Msg("failed to create HTTP file logger")
		return ServiceContainer{}, err
	}

	httpLogClient := &http.Client{
		Transport: logger.NewRoundTripper(fileLogger, serviceWeather.APIKeyParam),
	}

	var client fetcher = serviceWeather.NewClientOpenWeatherMap(
		a.cfg.OpenWeatherMapAPIKey,
		a.cfg.OpenWeatherMapURL,
		httpLogClient,
		a.l,
	)

	if a.cfg.Breaker.Enabled() {
		client = serviceWeather.NewBreakerClient(providerName, serviceWeather.BreakerConfig{
			TimeInterval: a.cfg.Breaker.Interval(),
			TimeTimeOut:  a.cfg.Breaker.Timeout(),
			RepeatNumber: a.cfg.Breaker.RepeatNumber,
		}, client)
	}

	collector := metrics.NewPromCollector()

	return ServiceContainer{
		WeatherService: serviceWeather.NewService(a.l, decorators.NewMetricsClient(client, collector)),
		Presenter:      presenter.New(a.colorEnabled()),
		Metrics:        collector,
		fileLogger:     fileLogger,
	}, nil
}

// colorEnabled is true only when colour is not disabled and stdout is a terminal.
func (a *App) colorEnabled() bool {
	if a.cfg.NoColor {
		return false
	}
	f, ok := a.out.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Start runs the interactive loop until the user leaves.
func (a *App) Start(ctx context.Context, srvContainer ServiceContainer) error {
	loop := NewLoop(srvContainer.WeatherService, srvContainer.Presenter, a.in, a.out, a.errOut, a.l)

	if err := loop.Run(ctx); err != nil {
		a.l.Error().Err(err).Msg("interactive loop stopped")
		return err
	}
	return nil
}

// Stop flushes the HTTP log and writes the metrics text file when configured.
func (a *App) Stop(srvContainer ServiceContainer) error {
	a.l.Debug().Msg("stopping weather cli")

	if srvContainer.fileLogger != nil {
		if err := srvContainer.fileLogger.Sync(); err != nil {
			a.l.Warn().Err(err).Msg("failed to sync file logger")
		}
	}

	if a.cfg.MetricsTextfile != "" && srvContainer.Metrics != nil {
		if err := srvContainer.Metrics.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
			a.l.Error().Err(err).Str("path", a.cfg.MetricsTextfile).Msg("failed to write metrics")
			return err
		}
		a.l.Info().Str("path", a.cfg.MetricsTextfile).Msg("metrics written")
	}

	return nil
}
