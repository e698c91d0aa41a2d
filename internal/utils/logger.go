package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Log levels
const (
	INFO  = "INFO"
	WARN  = "WARN"
	ERROR = "ERROR"
	DEBUG = "DEBUG"
)

var (
	instance *Logger
	once     sync.Once
)

// Logger struct
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
}

// LogFilePath returns dir/playbook.log, creating dir. An empty dir means
// ~/.playbook.
func LogFilePath(dir string) (string, error) {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".playbook")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	return filepath.Join(dir, "playbook.log"), nil
}

// NewLogger creates the logger singleton. Messages go to the log file and to
// stdout; debug messages reach stdout only in debug mode. If the log file
// cannot be opened the logger falls back to stdout alone.
func NewLogger(logFilePath string, debugMode bool) *Logger {
	once.Do(func() {
		instance = buildLogger(logFilePath, debugMode)
	})
	return instance
}

func buildLogger(logFilePath string, debugMode bool) *Logger {
	var file io.Writer = io.Discard
	if logFilePath == "" {
		if p, err := LogFilePath(""); err == nil {
			logFilePath = p
		}
	}
	if logFilePath != "" {
		f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("Failed to open log file, logging to stdout only: %v", err)
		} else {
			file = f
		}
	}
	return newLogger(file, os.Stdout, debugMode)
}

func newLogger(file, console io.Writer, debugMode bool) *Logger {
	multiWriter := io.MultiWriter(file, console)

	debugWriter := file
	if debugMode {
		debugWriter = multiWriter
	}

	return &Logger{
		infoLogger:  log.New(multiWriter, "[INFO] ", log.Ldate|log.Ltime),
		warnLogger:  log.New(multiWriter, "[WARN] ", log.Ldate|log.Ltime),
		errorLogger: log.New(multiWriter, "[ERROR] ", log.Ldate|log.Ltime),
		debugLogger: log.New(debugWriter, "[DEBUG] ", log.Ldate|log.Ltime),
	}
}

// GetLogger retrieves the singleton logger instance. Packages used without
// NewLogger (tests, the client) get a stdout-only logger.
func GetLogger() *Logger {
	once.Do(func() {
		instance = newLogger(io.Discard, os.Stdout, false)
	})
	return instance
}

// Logging methods
func (l *Logger) Info(message string) {
	l.infoLogger.Println(message)
}

func (l *Logger) Warn(message string) {
	l.warnLogger.Println(message)
}

func (l *Logger) Error(message string) {
	l.errorLogger.Println(message)
}

func (l *Logger) Debug(message string) {
	l.debugLogger.Println(message)
}

func (l *Logger) Infof(format string, args ...any) {
	l.infoLogger.Printf(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.warnLogger.Printf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.errorLogger.Printf(format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.debugLogger.Printf(format, args...)
}
