// Package logger provides the levelled logger used across dotlaunch.
// It wraps the standard `log` package and filters messages by level.
// Console banners are written by the console package; this logger only carries diagnostics.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// LogLevel is a type representing the logging level.
type LogLevel int

const (
	// LevelDebug is used for detailed diagnostics (parsed lines, resolved commands).
	LevelDebug LogLevel = iota
	// LevelInfo is used for general progress messages.
	LevelInfo
	// LevelWarn is used for recoverable problems such as a missing .env file.
	LevelWarn
	// LevelError is used for failures that abort a launch.
	LevelError
	// LevelFatal terminates the program after logging.
	LevelFatal
	// LevelSilent disables all output except Fatalf.
	LevelSilent
)

var (
	mu       sync.RWMutex
	logLevel = LevelWarn
	std      = log.New(os.Stderr, "dotlaunch ", log.LstdFlags)
)

// ParseLevel converts a level name into a LogLevel.
// Valid names are "DEBUG", "INFO", "WARN", "ERROR", "FATAL" and "SILENT" (case-insensitive).
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG", "TRACE":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "FATAL":
		return LevelFatal, nil
	case "SILENT", "OFF":
		return LevelSilent, nil
	default:
		return LevelWarn, fmt.Errorf("unknown log level %q", level)
	}
}

// SetLogLevel sets the global log level.
// An unknown name falls back to WARN and reports the problem on the current output.
func SetLogLevel(level string) {
	lvl, err := ParseLevel(level)
	mu.Lock()
	logLevel = lvl
	mu.Unlock()
	if err != nil {
		Warnf("%v, defaulting to WARN", err)
	}
}

// SetLevel sets the global log level directly.
func SetLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	logLevel = level
}

// GetLogLevel returns the current global log level.
func GetLogLevel() LogLevel {
	mu.RLock()
	defer mu.RUnlock()
	return logLevel
}

// SetOutput redirects log output. Tests use it to capture messages.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	std.SetOutput(w)
}

func enabled(level LogLevel) bool {
	mu.RLock()
	defer mu.RUnlock()
	return logLevel <= level
}

// Debugf formats and outputs a DEBUG level log message.
func Debugf(format string, v ...interface{}) {
	if enabled(LevelDebug) {
		std.Printf("[DEBUG] "+format, v...)
	}
}

// Infof formats and outputs an INFO level log message.
func Infof(format string, v ...interface{}) {
	if enabled(LevelInfo) {
		std.Printf("[INFO] "+format, v...)
	}
}

// Warnf formats and outputs a WARN level log message.
func Warnf(format string, v ...interface{}) {
	if enabled(LevelWarn) {
		std.Printf("[WARN] "+format, v...)
	}
}

// Errorf formats and outputs an ERROR level log message.
func Errorf(format string, v ...interface{}) {
	if enabled(LevelError) {
		std.Printf("[ERROR] "+format, v...)
	}
}

// Fatalf outputs a FATAL level log message and terminates the program with os.Exit(1).
func Fatalf(format string, v ...interface{}) {
	std.Fatalf("[FATAL] "+format, v...)
}
