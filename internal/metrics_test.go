package internal

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMetricsCollector(t *testing.T) {
	t.Run("Creation", func(t *testing.T) {
		mc := NewMetricsCollector()
		if mc == nil {
			t.Fatal("NewMetricsCollector returned nil")
		}
		if mc.startTime.IsZero() {
			t.Error("Start time should be set")
		}
	})

	t.Run("DocumentLifecycle", func(t *testing.T) {
		mc := NewMetricsCollector()
		mc.RecordDocument()
		mc.RecordDocument()
		mc.RecordRelease()

		m := mc.GetMetrics()
		if m.DocumentsCreated != 2 || m.DocumentsReleased != 1 || m.LiveDocuments != 1 {
			t.Errorf("unexpected document counters: %+v", m)
		}
	})

	t.Run("HandleLifecycle", func(t *testing.T) {
		mc := NewMetricsCollector()
		mc.RecordHandleOpen()
		mc.RecordHandleOpen()
		mc.RecordHandleClose()

		m := mc.GetMetrics()
		if m.OpenHandles != 1 {
			t.Errorf("Expected 1 open handle, got %d", m.OpenHandles)
		}
	})

	t.Run("ParseTiming", func(t *testing.T) {
		mc := NewMetricsCollector()
		mc.RecordParse(100*time.Millisecond, true, 10)
		mc.RecordParse(300*time.Millisecond, true, 20)
		mc.RecordParse(time.Millisecond, false, 5)

		m := mc.GetMetrics()
		if m.Parses != 3 || m.ParseErrors != 1 {
			t.Errorf("Expected 3 parses with 1 failure, got %d/%d", m.Parses, m.ParseErrors)
		}
		if m.BytesRead != 30 {
			t.Errorf("Expected 30 bytes read, got %d", m.BytesRead)
		}
		if m.AvgParseTime != 200*time.Millisecond {
			t.Errorf("Expected avg 200ms, got %v", m.AvgParseTime)
		}
		if m.MaxParseTime != 300*time.Millisecond {
			t.Errorf("Expected max 300ms, got %v", m.MaxParseTime)
		}
	})

	t.Run("ErrorsByType", func(t *testing.T) {
		mc := NewMetricsCollector()
		mc.RecordError("type mismatch")
		mc.RecordError("type mismatch")
		mc.RecordError("index out of range")

		m := mc.GetMetrics()
		if m.ErrorsByType["type mismatch"] != 2 {
			t.Errorf("Expected 2 type mismatch errors, got %d", m.ErrorsByType["type mismatch"])
		}
		if m.ErrorsByType["index out of range"] != 1 {
			t.Errorf("Expected 1 index error, got %d", m.ErrorsByType["index out of range"])
		}
	})

	t.Run("Summary", func(t *testing.T) {
		mc := NewMetricsCollector()
		mc.RecordDocument()
		if s := mc.GetSummary(); !strings.Contains(s, "1 created") {
			t.Errorf("summary missing document count: %s", s)
		}
	})
}

func TestMetricsCollectorConcurrent(t *testing.T) {
	mc := NewMetricsCollector()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				mc.RecordDocument()
				mc.RecordRelease()
				mc.RecordError("e")
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt64(&mc.documentsCreated); got != 1600 {
		t.Errorf("Expected 1600 documents, got %d", got)
	}
	m := mc.GetMetrics()
	if m.LiveDocuments != 0 {
		t.Errorf("Expected no live documents, got %d", m.LiveDocuments)
	}
	if m.ErrorsByType["e"] != 1600 {
		t.Errorf("Expected 1600 errors, got %d", m.ErrorsByType["e"])
	}
}
