package internal

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// MetricsCollector counts document and handle lifecycle events of one
// processor. All counters are updated atomically.
type MetricsCollector struct {
	documentsCreated  int64
	documentsReleased int64
	handlesOpened     int64
	handlesClosed     int64
	parses            int64
	parseErrors       int64
	bytesRead         int64
	totalParseTime    int64
	maxParseTime      int64
	errorsByType      sync.Map
	startTime         time.Time
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{startTime: time.Now()}
}

// RecordDocument records the creation of a document.
func (mc *MetricsCollector) RecordDocument() {
	atomic.AddInt64(&mc.documentsCreated, 1)
}

// RecordRelease records that the last reference to a document went away.
func (mc *MetricsCollector) RecordRelease() {
	atomic.AddInt64(&mc.documentsReleased, 1)
}

// RecordHandleOpen records a handle being issued.
func (mc *MetricsCollector) RecordHandleOpen() {
	atomic.AddInt64(&mc.handlesOpened, 1)
}

// RecordHandleClose records a handle being destroyed.
func (mc *MetricsCollector) RecordHandleClose() {
	atomic.AddInt64(&mc.handlesClosed, 1)
}

// RecordParse records a completed parse of n input bytes.
func (mc *MetricsCollector) RecordParse(duration time.Duration, success bool, n int) {
	atomic.AddInt64(&mc.parses, 1)
	if !success {
		atomic.AddInt64(&mc.parseErrors, 1)
		return
	}
	atomic.AddInt64(&mc.bytesRead, int64(n))
	if ns := duration.Nanoseconds(); ns > 0 {
		atomic.AddInt64(&mc.totalParseTime, ns)
		updateMax(&mc.maxParseTime, ns)
	}
}

// RecordError records an error by type
func (mc *MetricsCollector) RecordError(errorType string) {
	actual, _ := mc.errorsByType.LoadOrStore(errorType, new(int64))
	atomic.AddInt64(actual.(*int64), 1)
}

// GetMetrics returns a snapshot of the counters.
func (mc *MetricsCollector) GetMetrics() Metrics {
	parses := atomic.LoadInt64(&mc.parses)
	failed := atomic.LoadInt64(&mc.parseErrors)
	totalTime := atomic.LoadInt64(&mc.totalParseTime)

	var avg time.Duration
	if ok := parses - failed; ok > 0 {
		avg = time.Duration(totalTime / ok)
	}

	errorsByType := make(map[string]int64)
	mc.errorsByType.Range(func(key, value any) bool {
		errorsByType[key.(string)] = atomic.LoadInt64(value.(*int64))
		return true
	})

	created := atomic.LoadInt64(&mc.documentsCreated)
	released := atomic.LoadInt64(&mc.documentsReleased)
	opened := atomic.LoadInt64(&mc.handlesOpened)
	closed := atomic.LoadInt64(&mc.handlesClosed)

	return Metrics{
		DocumentsCreated:  created,
		DocumentsReleased: released,
		LiveDocuments:     created - released,
		HandlesOpened:     opened,
		HandlesClosed:     closed,
		OpenHandles:       opened - closed,
		Parses:            parses,
		ParseErrors:       failed,
		BytesRead:         atomic.LoadInt64(&mc.bytesRead),
		AvgParseTime:      avg,
		MaxParseTime:      time.Duration(atomic.LoadInt64(&mc.maxParseTime)),
		Uptime:            time.Since(mc.startTime),
		ErrorsByType:      errorsByType,
	}
}

// GetSummary returns a formatted summary of metrics
func (mc *MetricsCollector) GetSummary() string {
	m := mc.GetMetrics()
	return fmt.Sprintf(`Metrics Summary:
  Documents: %d created, %d released, %d live
  Handles: %d opened, %d closed, %d open
  Parses: %d total (%d failed), %d bytes, avg %v, max %v
  Uptime: %v`,
		m.DocumentsCreated, m.DocumentsReleased, m.LiveDocuments,
		m.HandlesOpened, m.HandlesClosed, m.OpenHandles,
		m.Parses, m.ParseErrors, m.BytesRead, m.AvgParseTime, m.MaxParseTime,
		m.Uptime,
	)
}

// Metrics is a point-in-time copy of a MetricsCollector.
type Metrics struct {
	DocumentsCreated  int64 `json:"documents_created"`
	DocumentsReleased int64 `json:"documents_released"`
	LiveDocuments     int64 `json:"live_documents"`

	HandlesOpened int64 `json:"handles_opened"`
	HandlesClosed int64 `json:"handles_closed"`
	OpenHandles   int64 `json:"open_handles"`

	Parses       int64         `json:"parses"`
	ParseErrors  int64         `json:"parse_errors"`
	BytesRead    int64         `json:"bytes_read"`
	AvgParseTime time.Duration `json:"avg_parse_time"`
	MaxParseTime time.Duration `json:"max_parse_time"`

	Uptime       time.Duration    `json:"uptime"`
	ErrorsByType map[string]int64 `json:"errors_by_type"`
}

// updateMax atomically updates target to value if value is greater
func updateMax(target *int64, value int64) {
	for {
		current := atomic.LoadInt64(target)
		if value <= current || atomic.CompareAndSwapInt64(target, current, value) {
			return
		}
	}
}
