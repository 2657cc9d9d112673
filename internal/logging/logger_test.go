package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLoggerNotNil(t *testing.T) {
	if NewLogger(Config{}) == nil {
		t.Fatal("expected logger to be non-nil")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	logger := NewLogger(Config{Format: "text", Level: "info"})

	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("expected info level to be enabled")
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug level to be disabled")
	}
}

func TestNewLoggerDebug(t *testing.T) {
	logger := NewLogger(Config{Level: "debug"})
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug level to be enabled")
	}
}

func TestHelpersTolerateNilLogger(t *testing.T) {
	Info(nil, "ignored")
	Warn(nil, "ignored")
	Error(nil, "ignored", nil)
}
