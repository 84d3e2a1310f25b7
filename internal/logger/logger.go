package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"medialit/internal/config"
)

var (
	mu     sync.RWMutex
	global *slog.Logger
)

// Options controls how the global logger is built.
type Options struct {
	Level     string
	Format    string // "text" or "json"
	Component string
	Output    io.Writer
}

// InitFromConfig builds the global logger from the application config.
func InitFromConfig(c *config.Config, component string) *slog.Logger {
	return Init(Options{
		Level:     c.LogLevel,
		Format:    c.LogFormat,
		Component: component,
	})
}

// Init replaces the global logger and slog's default. Safe to call more than once.
func Init(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	l := slog.New(handler)
	if opts.Component != "" {
		l = l.With("component", opts.Component)
	}

	mu.Lock()
	global = l
	mu.Unlock()
	slog.SetDefault(l)
	return l
}

// L returns the global logger, falling back to slog's default before Init.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if global == nil {
		return slog.Default()
	}
	return global
}

// With returns a child of the global logger.
func With(args ...any) *slog.Logger { return L().With(args...) }

// Discard is a logger that drops everything, handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
