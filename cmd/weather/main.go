package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Nazarious-ucu/weather-cli/internal/app"
	"github.com/Nazarious-ucu/weather-cli/internal/config"
	"github.com/Nazarious-ucu/weather-cli/pkg/logger"
)

const serviceName = "weather-cli"

func main() {
	os.Exit(run())
}

func run() int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err)
		return 1
	}

	opts := logger.Options{
		FilePath:    cfg.Log.Path,
		ServiceName: serviceName,
		Level:       cfg.Log.Level,
	}
	if cfg.Log.Console {
		opts.Console = os.Stderr
	}

	l, err := logger.NewLogger(opts)
	if err != nil {
		log.Printf("failed to create logger: %v", err)
		return 1
	}

	application := app.New(*cfg, l, os.Stdin, os.Stdout, os.Stderr)

	container, err := application.Init()
	if err != nil {
		log.Printf("failed to initialize application: %v", err)
		return 1
	}

	code := 0
	if err := application.Start(context.Background(), container); err != nil {
		log.Printf("weather cli stopped: %v", err)
		code = 1
	}

	if err := application.Stop(container); err != nil {
		log.Printf("failed to shutdown application: %v", err)
	}

	return code
}
