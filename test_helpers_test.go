package jsondoc

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"
)

// TestHelper provides utilities for testing JSON operations
type TestHelper struct {
	t *testing.T
}

// NewTestHelper creates a new test helper
func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

func message(def string, msgAndArgs []any) string {
	if len(msgAndArgs) > 0 {
		return fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...)
	}
	return def
}

// AssertEqual checks if two values are equal
func (h *TestHelper) AssertEqual(expected, actual any, msgAndArgs ...any) {
	h.t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		h.t.Errorf("%s\nExpected: %v (%T)\nActual: %v (%T)",
			message("Values are not equal", msgAndArgs), expected, expected, actual, actual)
	}
}

// AssertDeepEqual reports a structural diff of two Go values.
func (h *TestHelper) AssertDeepEqual(expected, actual any, msgAndArgs ...any) {
	h.t.Helper()
	if diff := cmp.Diff(expected, actual); diff != "" {
		h.t.Errorf("%s (-want +got):\n%s", message("Values differ", msgAndArgs), diff)
	}
}

// AssertNoError checks that error is nil
func (h *TestHelper) AssertNoError(err error, msgAndArgs ...any) {
	h.t.Helper()
	if err != nil {
		h.t.Errorf("%s, but got: %v", message("Expected no error", msgAndArgs), err)
	}
}

// AssertError checks that error is not nil
func (h *TestHelper) AssertError(err error, msgAndArgs ...any) {
	h.t.Helper()
	if err == nil {
		h.t.Error(message("Expected an error", msgAndArgs) + ", but got nil")
	}
}

// AssertErrorIs checks that err matches target with errors.Is
func (h *TestHelper) AssertErrorIs(err, target error, msgAndArgs ...any) {
	h.t.Helper()
	if !errors.Is(err, target) {
		h.t.Errorf("%s: want %v, got %v", message("Unexpected error", msgAndArgs), target, err)
	}
}

// AssertErrorContains checks that error contains specific text
func (h *TestHelper) AssertErrorContains(err error, contains string, msgAndArgs ...any) {
	h.t.Helper()
	if err == nil {
		h.t.Error(message("Expected an error", msgAndArgs) + ", but got nil")
		return
	}
	if !strings.Contains(err.Error(), contains) {
		h.t.Errorf("%s, but got: %v", message(fmt.Sprintf("Expected error to contain '%s'", contains), msgAndArgs), err)
	}
}

// AssertTrue checks that condition is true
func (h *TestHelper) AssertTrue(condition bool, msgAndArgs ...any) {
	h.t.Helper()
	if !condition {
		h.t.Error(message("Expected condition to be true", msgAndArgs))
	}
}

// AssertFalse checks that condition is false
func (h *TestHelper) AssertFalse(condition bool, msgAndArgs ...any) {
	h.t.Helper()
	if condition {
		h.t.Error(message("Expected condition to be false", msgAndArgs))
	}
}

// AssertPanic checks that function panics
func (h *TestHelper) AssertPanic(fn func(), msgAndArgs ...any) {
	h.t.Helper()
	defer func() {
		if r := recover(); r == nil {
			h.t.Error(message("Expected function to panic", msgAndArgs) + ", but it didn't")
		}
	}()
	fn()
}

// AssertJSON checks the compact serialization of v.
func (h *TestHelper) AssertJSON(expected string, v *Value, msgAndArgs ...any) {
	h.t.Helper()
	got, err := v.ToString()
	if err != nil {
		h.t.Errorf("%s: cannot serialize: %v", message("Unexpected JSON", msgAndArgs), err)
		return
	}
	if got != expected {
		h.t.Errorf("%s\nExpected: %s\nActual:   %s", message("Unexpected JSON", msgAndArgs), expected, got)
	}
}

// mustParse parses s and registers the value for closing.
func mustParse(t *testing.T, p *Processor, s string, mutable bool) *Value {
	t.Helper()
	v, err := p.Parse(s, &ParseOptions{Mutable: mutable})
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	t.Cleanup(func() { v.Close() })
	return v
}

func nan() float64 { return math.NaN() }

// newTestProcessor returns a processor closed at the end of the test.
func newTestProcessor(t *testing.T, cfg ...*Config) *Processor {
	t.Helper()
	p := New(cfg...)
	t.Cleanup(func() { p.Close() })
	return p
}

// TestDataGenerator generates seeded random documents
type TestDataGenerator struct {
	fake *gofakeit.Faker
}

// NewTestDataGenerator creates a generator; equal seeds give equal output
func NewTestDataGenerator(seed int64) *TestDataGenerator {
	return &TestDataGenerator{fake: gofakeit.New(seed)}
}

// Document returns a random Go value made of maps, slices and scalars that
// encodes to JSON, nested at most depth levels.
func (g *TestDataGenerator) Document(depth int) map[string]any {
	doc := make(map[string]any)
	n := g.fake.Number(1, 5)
	for i := 0; i < n; i++ {
		doc[fmt.Sprintf("%s_%d", g.fake.Word(), i)] = g.value(depth)
	}
	return doc
}

func (g *TestDataGenerator) value(depth int) any {
	choice := g.fake.Number(0, 6)
	if depth <= 0 && choice >= 5 {
		choice = g.fake.Number(0, 4)
	}
	switch choice {
	case 0:
		return nil
	case 1:
		return g.fake.Bool()
	case 2:
		return int64(g.fake.Number(-1000000, 1000000))
	case 3:
		return g.fake.Email()
	case 4:
		return g.fake.Name()
	case 5:
		arr := make([]any, g.fake.Number(0, 4))
		for i := range arr {
			arr[i] = g.value(depth - 1)
		}
		return arr
	default:
		return g.Document(depth - 1)
	}
}

// GenerateInvalidJSON returns inputs every strict parse must reject
func (g *TestDataGenerator) GenerateInvalidJSON() []string {
	return []string{
		`{invalid json}`,
		`{"unclosed": "string}`,
		`{"trailing": "comma",}`,
		`{unquoted: "key"}`,
		`{"number": 123.45.67}`,
		`{"array": [1, 2, 3,]}`,
		`{"nested": {"unclosed": }`,
		``,
		`null extra content`,
		`{"a":}`,
	}
}

// ConcurrencyTester helps test concurrent operations
type ConcurrencyTester struct {
	t           *testing.T
	concurrency int
	iterations  int
}

// NewConcurrencyTester creates a new concurrency tester
func NewConcurrencyTester(t *testing.T, concurrency, iterations int) *ConcurrencyTester {
	return &ConcurrencyTester{t: t, concurrency: concurrency, iterations: iterations}
}

// Run runs concurrent test operations
func (ct *ConcurrencyTester) Run(operation func(workerID, iteration int) error) {
	ct.t.Helper()

	done := make(chan error, ct.concurrency)
	for i := 0; i < ct.concurrency; i++ {
		go func(workerID int) {
			for j := 0; j < ct.iterations; j++ {
				if err := operation(workerID, j); err != nil {
					done <- fmt.Errorf("worker %d, iteration %d: %w", workerID, j, err)
					return
				}
			}
			done <- nil
		}(i)
	}
	for i := 0; i < ct.concurrency; i++ {
		if err := <-done; err != nil {
			ct.t.Errorf("Concurrent operation failed: %v", err)
		}
	}
}
