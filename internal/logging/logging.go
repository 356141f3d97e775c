package logging

import (
	"bytes"
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// AppName is used for the log prefix and the debug log location.
const AppName = "rshackmcp"

type AppLogger struct {
	logger *log.Logger
	debug  bool
}

var (
	defaultMu     sync.Mutex
	defaultLogger *AppLogger
)

// GetDefault returns the process-wide logger, creating one on first use
// unless SetDefault installed one already.
func GetDefault() *AppLogger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewAppLogger()
	}
	return defaultLogger
}

// SetDefault makes al the logger behind the package-level functions. main
// calls it before anything logs so only one debug log file is opened.
func SetDefault(al *AppLogger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = al
}

// Package-level convenience functions for packages without an injected logger
func Info(msg string, keyvals ...interface{}) {
	l := GetDefault()
	l.logger.Helper()
	l.Info(msg, keyvals...)
}

func Debug(msg string, keyvals ...interface{}) {
	l := GetDefault()
	l.logger.Helper()
	l.Debug(msg, keyvals...)
}

// DebugLogPath returns where the debug log is written when DEBUG is set.
func DebugLogPath() string {
	return filepath.Join(xdg.StateHome, AppName, AppName+".log")
}

// NewAppLogger never writes to stdout: stdout carries the MCP JSON-RPC stream.
func NewAppLogger() *AppLogger {
	debug := os.Getenv("DEBUG") != ""

	var logger *log.Logger

	if debug {
		// Development: Log to file, clear on each run
		logPath := DebugLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			panic(fmt.Sprintf("Failed to create debug log directory: %v", err))
		}

		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			panic(fmt.Sprintf("Failed to create debug log file: %v", err))
		}

		logger = log.NewWithOptions(logFile, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          "RsHackMCP",
		})
		logger.SetLevel(log.DebugLevel)

		logger.Info("Debug logging enabled", "log_file", logPath)

	} else {
		// Production: Log warnings and errors to stderr only
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "RsHackMCP",
		})
		logger.SetLevel(log.WarnLevel)
	}
	logger.SetStyles(levelStyles())

	return &AppLogger{
		logger: logger,
		debug:  debug,
	}
}

// levelStyles widens the level badges so tool names line up in stderr output.
func levelStyles() *log.Styles {
	styles := log.DefaultStyles()
	for level, label := range map[log.Level]string{
		log.DebugLevel: "DEBUG",
		log.InfoLevel:  "INFO",
		log.WarnLevel:  "WARN",
		log.ErrorLevel: "ERROR",
	} {
		styles.Levels[level] = styles.Levels[level].SetString(label).MaxWidth(5).Width(5)
	}
	styles.Keys["tool"] = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	return styles
}

// SetLevel changes the minimum level; an empty string keeps the current one.
func (al *AppLogger) SetLevel(level string) error {
	if strings.TrimSpace(level) == "" {
		return nil
	}
	parsed, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	al.logger.SetLevel(parsed)
	if parsed <= log.DebugLevel {
		al.debug = true
	}
	return nil
}

// Log application events
func (al *AppLogger) Info(msg string, keyvals ...interface{}) {
	al.logger.Helper()
	al.logger.Info(msg, keyvals...)
}

func (al *AppLogger) Warn(msg string, keyvals ...interface{}) {
	al.logger.Helper()
	al.logger.Warn(msg, keyvals...)
}

func (al *AppLogger) Error(msg string, keyvals ...interface{}) {
	al.logger.Helper()
	al.logger.Error(msg, keyvals...)
}

func (al *AppLogger) Debug(msg string, keyvals ...interface{}) {
	if al.debug {
		al.logger.Helper()
		al.logger.Debug(msg, keyvals...)
	}
}

// LogToolCall records an incoming MCP tool call (debug only)
func (al *AppLogger) LogToolCall(tool string, arguments any) {
	if !al.debug {
		return
	}

	al.logger.Helper()
	al.logger.Debug("Tool call received",
		"tool", tool,
		"arguments", fmt.Sprintf("%+v", arguments),
	)
}

// Log performance metrics
func (al *AppLogger) LogPerformance(operation string, start time.Time) {
	if al.debug {
		al.logger.Helper()
		duration := time.Since(start)
		al.logger.Debug("Performance",
			"operation", operation,
			"duration", duration,
		)
	}
}

// StandardLog adapts the logger for libraries that expect a *log.Logger.
// Everything they print is logged at error level.
func (al *AppLogger) StandardLog() *stdlog.Logger {
	return al.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})
}

// Testing Helper - NewTestLogger creates a logger that writes to a buffer for testing
func NewTestLogger() (*AppLogger, *bytes.Buffer) {
	var buf bytes.Buffer

	logger := log.NewWithOptions(&buf, log.Options{
		ReportTimestamp: false, // Easier to test without timestamps
		ReportCaller:    false,
		Prefix:          "Test",
	})
	logger.SetLevel(log.DebugLevel)

	return &AppLogger{
		logger: logger,
		debug:  true,
	}, &buf
}
