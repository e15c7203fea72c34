package config

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogWriter is the writer used for application and database logs.
var LogWriter io.Writer = os.Stdout

// Log is the process-wide logger. It discards everything until InitLogging runs.
var Log = zap.NewNop()

// InitLogging opens the log file and builds the logger that writes to stdout
// and the file. A file that cannot be opened is reported and skipped.
func InitLogging(settings *Settings) (*os.File, *zap.Logger) {
	var logFile *os.File
	var fileErr error

	LogWriter = os.Stdout
	if settings.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(settings.LogFile), os.ModePerm); err != nil {
			fileErr = err
		} else if f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err != nil {
			fileErr = err
		} else {
			logFile = f
			LogWriter = io.MultiWriter(os.Stdout, logFile)
		}
	}

	Log = newLogger(settings, LogWriter)
	if fileErr != nil {
		Log.Warn("failed to open log file, logging to stdout only",
			zap.String("path", settings.LogFile), zap.Error(fileErr))
	}
	return logFile, Log
}

func newLogger(settings *Settings, w io.Writer) *zap.Logger {
	level := zap.DebugLevel
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	if settings.IsProduction() {
		level = zap.InfoLevel
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller())
}
