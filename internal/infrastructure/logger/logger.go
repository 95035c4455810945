package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"user-api/internal/config"
)

var (
	globalLogger zerolog.Logger
	once         sync.Once
)

// GetLogger returns the global logger instance
func GetLogger() zerolog.Logger {
	once.Do(func() {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		globalLogger = zerolog.New(consoleWriter).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	})
	return globalLogger
}

// New constructs the process logger from configuration. Console output is
// always enabled at LOG_LEVEL_CONSOLE; when LOG_FILE is set a JSON file sink
// is added at LOG_LEVEL_FILE. Each sink filters independently.
func New(cfg *config.Config) (zerolog.Logger, error) {
	consoleLevel, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevelConsole))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse LOG_LEVEL_CONSOLE: %w", err)
	}

	writers := []io.Writer{
		leveledWriter{
			w: zerolog.ConsoleWriter{
				Out:        os.Stdout,
				TimeFormat: time.RFC3339,
			},
			level: consoleLevel,
		},
	}

	minLevel := consoleLevel
	if cfg.LogFile != "" {
		fileLevel, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevelFile))
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("parse LOG_LEVEL_FILE: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, leveledWriter{w: f, level: fileLevel})
		if fileLevel < minLevel {
			minLevel = fileLevel
		}
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Logger().
		Level(minLevel)

	globalLogger = log
	return log, nil
}

// leveledWriter drops events below its own threshold so console and file
// sinks can run at different verbosities.
type leveledWriter struct {
	w     io.Writer
	level zerolog.Level
}

func (lw leveledWriter) Write(p []byte) (int, error) {
	return lw.w.Write(p)
}

func (lw leveledWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < lw.level {
		return len(p), nil
	}
	return lw.w.Write(p)
}
