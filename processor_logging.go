package jsondoc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// logError logs an error with structured logging
func (p *Processor) logError(ctx context.Context, operation, path string, err error) {
	kind := errorType(err)
	if p.metrics != nil {
		p.metrics.RecordError(kind)
	}
	if p.logger == nil {
		return
	}

	p.logger.ErrorContext(ctx, "JSON operation failed",
		slog.String("operation", operation),
		slog.String("path", sanitizePath(path)),
		slog.String("error", sanitizeError(err)),
		slog.String("error_type", kind),
		slog.String("processor_id", p.getProcessorID()),
	)
}

// logOperation logs a completed operation, at warn level when it was slow
func (p *Processor) logOperation(ctx context.Context, operation, path string, duration time.Duration) {
	if p.logger == nil {
		return
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("path", sanitizePath(path)),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.String("processor_id", p.getProcessorID()),
	}
	if duration > SlowOperationThreshold {
		attrs = append(attrs, slog.Int64("threshold_ms", SlowOperationThreshold.Milliseconds()))
		p.logger.LogAttrs(ctx, slog.LevelWarn, "Slow JSON operation detected", attrs...)
		return
	}
	p.logger.LogAttrs(ctx, slog.LevelDebug, "JSON operation completed", attrs...)
}

// sanitizePath removes potentially sensitive information from paths
func sanitizePath(path string) string {
	if len(path) > 100 {
		return truncateString(path, 100)
	}
	lowerPath := strings.ToLower(path)
	sensitivePatterns := []string{
		"password", "passwd", "pwd",
		"token", "bearer",
		"apikey", "api_key", "api-key",
		"secret", "credential",
		"authorization", "cookie",
	}
	for _, pattern := range sensitivePatterns {
		if strings.Contains(lowerPath, pattern) {
			return "[REDACTED_PATH]"
		}
	}
	return path
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return truncateString(err.Error(), 200)
}

// truncateString truncates s to maxLen bytes, ending in an ellipsis
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// getProcessorID returns a unique identifier for this processor instance
func (p *Processor) getProcessorID() string {
	return fmt.Sprintf("proc_%p", p)
}
