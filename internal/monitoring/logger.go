package monitoring

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Logger provides structured logging helpers over slog
type Logger struct {
	*slog.Logger
}

// NewLoggerWithWriter creates a JSON logger on w at the given level
func NewLoggerWithWriter(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// RequestLogger logs HTTP request details
func (l *Logger) RequestLogger(method, path, ip, userAgent string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"user_agent", userAgent,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// AssessmentLogger logs one scored assessment. Degraded context fields are
// logged at warn level.
func (l *Logger) AssessmentLogger(assessmentID, archetype, confidence, modelVersion string, degraded []string, duration time.Duration) {
	attrs := []any{
		"assessment_id", assessmentID,
		"archetype", archetype,
		"confidence", confidence,
		"model_version", modelVersion,
		"duration_us", duration.Microseconds(),
	}
	if len(degraded) > 0 {
		l.Warn("Assessment scored with defaulted context", append(attrs, "degraded", degraded)...)
		return
	}
	l.Info("Assessment scored", attrs...)
}

// APIErrorLogger logs API errors with context
func (l *Logger) APIErrorLogger(err error, method, path, ip string, statusCode int) {
	l.Error("API Error",
		"error", err.Error(),
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
	)
}

// ExternalAPILogger logs calls to third parties (Stripe)
func (l *Logger) ExternalAPILogger(apiName, operation string, duration time.Duration, err error) {
	if err != nil {
		l.Log(context.Background(), slog.LevelWarn, "External API Call",
			"api_name", apiName,
			"operation", operation,
			"duration_ms", duration.Milliseconds(),
			"success", false,
			"error", err.Error(),
		)
		return
	}

	l.Info("External API Call",
		"api_name", apiName,
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
		"success", true,
	)
}

// SystemLogger logs system-level events
func (l *Logger) SystemLogger(event, details string) {
	l.Info("System Event",
		"event", event,
		"details", details,
		"uptime", time.Since(startTime).String(),
	)
}

var startTime = time.Now()
