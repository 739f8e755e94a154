// Package logger provides leveled logging with support for debug, info, warn, and error levels.
// It wraps the standard log package; the "text" format prefixes each line with its level and
// caller, the "json" format writes one JSON object per line.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level represents a logging level
type Level int

const (
	// DebugLevel logs are typically voluminous, and are usually disabled in production.
	DebugLevel Level = iota
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info, but don't need individual human review.
	WarnLevel
	// ErrorLevel logs are high-priority. If an application is running smoothly, it shouldn't generate any error-level logs.
	ErrorLevel
	// FatalLevel logs are written just before the process exits.
	FatalLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// ParseLevel maps a config string to a Level; unknown strings mean InfoLevel.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger provides leveled logging
type Logger struct {
	level  Level
	json   bool
	logger *log.Logger

	mu  sync.Mutex // serializes JSON lines
	out io.Writer
}

var (
	// Global logger instance
	defaultLogger *Logger
)

// Init initializes the default logger with the specified level and format
func Init(level string, format string) {
	InitWithWriter(level, format, os.Stderr)
}

// InitWithWriter is Init with an explicit destination.
func InitWithWriter(level string, format string, w io.Writer) {
	defaultLogger = New(level, format, w)
}

// New builds a standalone Logger.
func New(level string, format string, w io.Writer) *Logger {
	l := &Logger{
		level: ParseLevel(level),
		out:   w,
	}
	if strings.ToLower(format) == "json" {
		l.json = true
		return l
	}
	l.logger = log.New(w, "", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return l
}

// Enabled reports whether messages at lvl are written.
func (l *Logger) Enabled(lvl Level) bool {
	return l != nil && l.level <= lvl
}

type jsonLine struct {
	Time   string `json:"time"`
	Level  string `json:"level"`
	Caller string `json:"caller,omitempty"`
	Msg    string `json:"msg"`
}

// output writes msg; depth counts frames above the exported caller.
func (l *Logger) output(depth int, lvl Level, msg string) {
	if !l.json {
		_ = l.logger.Output(depth+1, "["+lvl.String()+"] "+msg)
		return
	}

	line := jsonLine{
		Time:  time.Now().UTC().Format(time.RFC3339Nano),
		Level: strings.ToLower(lvl.String()),
		Msg:   msg,
	}
	if _, file, lineNo, ok := runtime.Caller(depth); ok {
		line.Caller = fmt.Sprintf("%s:%d", filepath.Base(file), lineNo)
	}
	b, err := json.Marshal(line)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(append(b, '\n'))
}

func logf(lvl Level, format string, args ...interface{}) {
	if !defaultLogger.Enabled(lvl) {
		return
	}
	// logf <- Debug/Info/... <- caller
	defaultLogger.output(3, lvl, fmt.Sprintf(format, args...))
}

// Debug logs a message at DebugLevel
func Debug(format string, args ...interface{}) {
	logf(DebugLevel, format, args...)
}

// Info logs a message at InfoLevel
func Info(format string, args ...interface{}) {
	logf(InfoLevel, format, args...)
}

// Warn logs a message at WarnLevel
func Warn(format string, args ...interface{}) {
	logf(WarnLevel, format, args...)
}

// Error logs a message at ErrorLevel
func Error(format string, args ...interface{}) {
	logf(ErrorLevel, format, args...)
}

// Fatal logs a message at FatalLevel and exits
func Fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if defaultLogger != nil {
		defaultLogger.output(2, FatalLevel, msg)
	} else {
		log.Print("[FATAL] " + msg)
	}
	os.Exit(1)
}
