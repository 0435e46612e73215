// Package logger provides the engine's ambient structured logger, a thin
// wrapper around zap shared by every other package.
package logger

import (
	"os"

	"go.uber.org/zap"
)

var global *zap.Logger

// Init builds the global logger. logLevel may be nil, in which case "info"
// is used. GO_ENV=production selects the production (JSON) encoder config.
func Init(logLevel *string) error {
	env := os.Getenv("GO_ENV")
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	level := "info"
	if logLevel != nil {
		level = *logLevel
	}

	switch level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	built, err := config.Build()
	if err != nil {
		return err
	}
	global = built
	return nil
}

// Get returns the global logger, falling back to a development logger if
// Init was never called (useful in tests).
func Get() *zap.Logger {
	if global == nil {
		global, _ = zap.NewDevelopment()
	}
	return global
}

// Sync flushes any buffered log entries.
func Sync() error {
	if global != nil {
		return global.Sync()
	}
	return nil
}

// WithContext returns a logger enriched with the given fields.
func WithContext(fields ...zap.Field) *zap.Logger {
	return Get().With(fields...)
}

// WithGameContext returns a logger tagged with the owning game and,
// optionally, the acting player.
func WithGameContext(gameID string, playerIndex int) *zap.Logger {
	fields := []zap.Field{zap.String("game_id", gameID)}
	if playerIndex >= 0 {
		fields = append(fields, zap.Int("player_index", playerIndex))
	}
	return Get().With(fields...)
}
