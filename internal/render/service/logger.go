package service

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/GoSim-25-26J-441/manim-render-service/internal/api/http/middleware"
)

const (
	levelDebug int32 = iota
	levelInfo
	levelWarn
	levelError
)

var minLevel atomic.Int32

func init() {
	minLevel.Store(levelInfo)
}

// SetLogLevel sets the lowest level written by render loggers: debug, info,
// warn or error. Unknown values fall back to info.
func SetLogLevel(level string) {
	switch level {
	case "debug":
		minLevel.Store(levelDebug)
	case "warn":
		minLevel.Store(levelWarn)
	case "error":
		minLevel.Store(levelError)
	default:
		minLevel.Store(levelInfo)
	}
}

// Logger writes render job lines tagged with the request ID
type Logger struct {
	requestID string
}

// NewLogger creates a logger carrying the request ID set by middleware
func NewLogger(ctx context.Context) *Logger {
	requestID := middleware.GetRequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{requestID: requestID}
}

func (l *Logger) printf(level int32, tag, operation, format string, args ...any) {
	if level < minLevel.Load() {
		return
	}
	log.Printf("["+tag+"] request_id=%s operation=%s "+format, append([]any{l.requestID, operation}, args...)...)
}

func (l *Logger) LogError(operation string, err error) {
	l.printf(levelError, "error", operation, "error=%v", err)
}

func (l *Logger) LogInfof(operation, format string, args ...any) {
	l.printf(levelInfo, "info", operation, format, args...)
}

func (l *Logger) LogWarnf(operation, format string, args ...any) {
	l.printf(levelWarn, "warn", operation, format, args...)
}
