package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger writing to stderr so command output on stdout
// stays clean. The returned AtomicLevel lets the CLI adjust verbosity
// after parsing flags without rebuilding the logger. Default level is
// warn: a CLI should be quiet unless something is wrong or debugging
// is asked for.
func New(level string) (*zap.Logger, zap.AtomicLevel, error) {
	lvl := zap.NewAtomicLevelAt(ParseLevel(level))
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	log, err := cfg.Build()
	if err != nil {
		return nil, lvl, err
	}
	return log, lvl, nil
}

// ParseLevel maps a level name onto a zap level. Unknown names mean
// error: a misconfigured CLI should stay quiet, not turn noisy.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	default:
		return zap.ErrorLevel
	}
}
