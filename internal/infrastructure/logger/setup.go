package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/config"
	"github.com/lmittmann/tint"
)

// Setup builds the process logger from log_config and installs it as the slog default.
// log_format "json" switches to the JSON handler for log shipping.
func Setup(cfg config.LogConfig) *slog.Logger {
	level := ParseLevel(cfg.LogLevel)
	out := output(cfg.LogOutput)

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(out, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
			AddSource:  level == slog.LevelDebug,
		})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func output(name string) io.Writer {
	if strings.EqualFold(name, "stderr") {
		return os.Stderr
	}
	return os.Stdout
}
