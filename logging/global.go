// Package logging wires slog for the service: console output, a weekly
// rotating JSON file and package-level helpers
package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/giygas/kits-report-api/config"
)

type LoggingService struct {
	Logger *slog.Logger
	file   *WeeklyFile
}

var DefaultLoggingService *LoggingService

// Options controls InitLoggerWithOptions
type Options struct {
	Dir            string
	Env            config.Environment
	Level          string
	Verbose        bool
	RetentionWeeks int
	MaxFileSize    int64
}

// InitLogger initializes the global logger with default options.
// An empty logDir logs to the console only.
func InitLogger(logDir string) {
	InitLoggerWithOptions(Options{Dir: logDir, Env: config.EnvDevelopment, RetentionWeeks: 4, MaxFileSize: 100 * 1024 * 1024})
}

// InitLoggerWithOptions initializes the global logger and sets it as slog default
func InitLoggerWithOptions(opts Options) {
	consoleLevel := GetConsoleLogLevel(opts.Env, opts.Level, opts.Verbose)
	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: consoleLevel}),
	}

	service := &LoggingService{}
	if opts.Dir != "" {
		wf, err := NewWeeklyFile(opts.Dir, opts.RetentionWeeks, opts.MaxFileSize)
		if err != nil {
			slog.New(handlers[0]).Error("Failed to initialize log file, logging to console only", "error", err)
		} else {
			service.file = wf
			// The file keeps info and above even when the console is quieter
			handlers = append(handlers, slog.NewJSONHandler(wf, &slog.HandlerOptions{
				Level: min(parseLogLevel(opts.Level), slog.LevelInfo),
			}))
		}
	}

	if len(handlers) == 1 {
		service.Logger = slog.New(handlers[0])
	} else {
		service.Logger = slog.New(&multiHandler{handlers: handlers})
	}

	if DefaultLoggingService != nil {
		_ = DefaultLoggingService.Close()
	}
	DefaultLoggingService = service
	slog.SetDefault(service.Logger)
}

// Close releases the log file, if any
func (s *LoggingService) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// Close closes the global logging service
func Close() error {
	return DefaultLoggingService.Close()
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetConsoleLogLevel picks the console level. An explicit level wins except
// in tests, which stay quiet unless verbose.
func GetConsoleLogLevel(env config.Environment, level string, verbose bool) slog.Level {
	if env == config.EnvTest {
		if verbose {
			return slog.LevelInfo
		}
		return slog.LevelError
	}

	if strings.TrimSpace(level) != "" {
		return parseLogLevel(level)
	}

	switch env {
	case config.EnvProduction, config.EnvStaging:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Logger returns the process logger, or a stderr fallback before InitLogger
func Logger() *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return DefaultLoggingService.Logger
}

func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}
