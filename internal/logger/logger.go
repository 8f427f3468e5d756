package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appName = "cmtwidth"

var (
	debugEnabled bool
	logger       = zap.NewNop().Sugar()
	syncLogger   = func() error { return nil }
)

// Init initializes the logger with the specified debug flag
// Creates log directory and file if they don't exist
// Overwrites existing log file on each start
func Init(debug bool) error {
	logPath := GetLogPath()
	if logPath == "" {
		return fmt.Errorf("failed to get home directory")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := os.WriteFile(logPath, nil, 0644); err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{logPath}
	cfg.ErrorOutputPaths = []string{logPath}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	cfg.Sampling = nil
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	base, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	debugEnabled = debug
	logger = base.Sugar()
	syncLogger = base.Sync

	Info("%s started", appName)
	if debugEnabled {
		Info("Debug mode enabled")
	}
	return nil
}

// Close flushes buffered entries. Logging after Close is a no-op.
func Close() error {
	Info("%s shutting down", appName)
	err := syncLogger()
	logger = zap.NewNop().Sugar()
	syncLogger = func() error { return nil }
	debugEnabled = false
	if err != nil && !strings.Contains(err.Error(), "bad file descriptor") {
		return err
	}
	return nil
}

// Info logs an info message
func Info(format string, v ...any) {
	logger.Infof(format, v...)
}

// Debug logs a debug message (only if debug is enabled)
func Debug(format string, v ...any) {
	if debugEnabled {
		logger.Debugf(format, v...)
	}
}

// Error logs an error message
func Error(format string, v ...any) {
	logger.Errorf(format, v...)
}

// Fatal logs a fatal message and exits
func Fatal(format string, v ...any) {
	logger.Errorf(format, v...)
	_ = syncLogger()
	os.Exit(1)
}

// GetLogPath returns the path to the log file
func GetLogPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share", appName, appName+".log")
}
