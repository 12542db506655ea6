package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSize = 10
	maxBack = 5
	maxAge  = 30
)

// Options selects where the diagnostic log goes. An empty FilePath disables
// the rotating file; a nil Console disables console output.
type Options struct {
	FilePath    string
	ServiceName string
	Level       string
	Console     io.Writer
}

func NewLogger(opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), err
		}
		level = parsed
	}

	var writers []io.Writer

	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        opts.Console,
			TimeFormat: time.RFC3339,
			NoColor:    false,
		})
	}

	if opts.FilePath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.FilePath, // log file location
			MaxSize:    maxSize,       // megabytes before rotation
			MaxBackups: maxBack,       // number of old files to retain
			MaxAge:     maxAge,        // days to retain rotated files
			Compress:   true,          // gzip old log files
		})
	}

	if len(writers) == 0 {
		return zerolog.Nop(), nil
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(multiWriter).With().
		Timestamp().
		Caller().
		Str("service", opts.ServiceName).
		Logger().
		Level(level)

	logger.Debug().
		Str("logsFilePath", opts.FilePath).
		Str("serviceName", opts.ServiceName).
		Msg("Logger initialized with file rotation")

	return logger, nil
}
