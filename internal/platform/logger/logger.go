package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New construye el logger zap del servicio.
// json=true para salida estructurada, debug=true baja el nivel a debug.
func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}
	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l, nil
}

// NewFromEnv crea el logger desde env:
// - LOG_FORMAT=text|json (default text)
// - LOG_LEVEL=info|debug (default info)
func NewFromEnv() (*zap.Logger, error) {
	json := strings.EqualFold(strings.TrimSpace(os.Getenv("LOG_FORMAT")), "json")
	debug := strings.EqualFold(strings.TrimSpace(os.Getenv("LOG_LEVEL")), "debug")
	return New(json, debug)
}
