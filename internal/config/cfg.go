package config

import (
	"errors"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Breaker is off unless RepeatNumber is set.
type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"0"`
}

func (b Breaker) Enabled() bool {
	return b.RepeatNumber > 0
}

func (b Breaker) Interval() time.Duration {
	return time.Duration(b.TimeInterval) * time.Second
}

func (b Breaker) Timeout() time.Duration {
	return time.Duration(b.TimeTimeOut) * time.Second
}

type Log struct {
	Path     string `envconfig:"LOGS_PATH" default:"./log/weather-cli.log"`
	Level    string `envconfig:"LOG_LEVEL" default:"info"`
	Console  bool   `envconfig:"LOG_CONSOLE" default:"false"`
	HTTPPath string `envconfig:"HTTP_LOGS_PATH"`
}

type Config struct {
	OpenWeatherMapAPIKey string `envconfig:"OPEN_WEATHER_MAP_API_KEY" required:"true"`
	OpenWeatherMapURL    string `envconfig:"OPEN_WEATHER_MAP_URL" default:"http://api.openweathermap.org/data/2.5/weather"`

	Breaker Breaker
	Log     Log

	MetricsTextfile string `envconfig:"METRICS_TEXTFILE"`
	NoColor         bool   `envconfig:"WEATHER_CLI_NO_COLOR" default:"false"`
}

var errEmptyAPIKey = errors.New("OPEN_WEATHER_MAP_API_KEY must not be empty")

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.OpenWeatherMapAPIKey) == "" {
		return nil, errEmptyAPIKey
	}
	return &cfg, nil
}
