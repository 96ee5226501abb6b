package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var zapLogger *zap.Logger

// Log is the process-wide sugared logger. Nil until InitLogger is called;
// components that accept a logger fall back to a no-op when given nil.
var Log *zap.SugaredLogger

// InitLogger builds the shared JSON logger. Safe to call more than once;
// subsequent calls return the logger built by the first.
func InitLogger() (*zap.SugaredLogger, error) {
	if zapLogger != nil {
		Log = zapLogger.Sugar()
		return Log, nil
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.LevelKey = "level"
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(os.Stdout),
		LevelFromEnv(),
	)

	zapLogger = zap.New(core)
	Log = zapLogger.Sugar()
	return Log, nil
}

// LevelFromEnv reads LOOPKIT_LOG_LEVEL, defaulting to info.
func LevelFromEnv() zapcore.Level {
	switch strings.ToLower(os.Getenv("LOOPKIT_LOG_LEVEL")) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// SyncLogger flushes buffered log entries.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
