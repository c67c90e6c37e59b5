package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogger writes human-readable output to stdout and, when configured,
// JSON lines to a rotating file.
func SetupLogger(cfg LoggingConfig) zerolog.Logger {
	return newLogger(cfg, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

func newLogger(cfg LoggingConfig, console io.Writer) zerolog.Logger {
	writers := []io.Writer{console}
	if cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}

	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
