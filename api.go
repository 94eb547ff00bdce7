package jsondoc

import "context"

// Parse reads a JSON document with the global processor.
func Parse(s string, opts ...*ParseOptions) (*Value, error) {
	return getDefaultProcessor().Parse(s, opts...)
}

// ParseBytes reads a JSON document from b with the global processor.
func ParseBytes(b []byte, opts ...*ParseOptions) (*Value, error) {
	return getDefaultProcessor().ParseBytes(b, opts...)
}

// ParseFile reads and parses a file with the global processor.
func ParseFile(name string, opts ...*ParseOptions) (*Value, error) {
	return getDefaultProcessor().ParseFile(name, opts...)
}

// ParseFiles parses several files in parallel with the global processor.
func ParseFiles(ctx context.Context, names []string, opts ...*ParseOptions) ([]*Value, error) {
	return getDefaultProcessor().ParseFiles(ctx, names, opts...)
}

// NewObject creates an empty mutable object document.
func NewObject() (*Value, error) { return getDefaultProcessor().NewObject() }

// NewArray creates an empty mutable array document.
func NewArray() (*Value, error) { return getDefaultProcessor().NewArray() }

// NewBool, NewInt, NewInt64, NewUint64, NewInt64String, NewFloat, NewString
// and NewNull create single-scalar mutable documents.
func NewBool(b bool) (*Value, error)          { return getDefaultProcessor().NewBool(b) }
func NewInt(n int) (*Value, error)            { return getDefaultProcessor().NewInt(n) }
func NewInt64(n int64) (*Value, error)        { return getDefaultProcessor().NewInt64(n) }
func NewUint64(n uint64) (*Value, error)      { return getDefaultProcessor().NewUint64(n) }
func NewInt64String(s string) (*Value, error) { return getDefaultProcessor().NewInt64String(s) }
func NewFloat(f float64) (*Value, error)      { return getDefaultProcessor().NewFloat(f) }
func NewString(s string) (*Value, error)      { return getDefaultProcessor().NewString(s) }
func NewNull() (*Value, error)                { return getDefaultProcessor().NewNull() }

// Pack builds a document from a format string; see Processor.Pack.
func Pack(format string, args ...any) (*Value, error) {
	return getDefaultProcessor().Pack(format, args...)
}

// FromAny converts a Go value into a mutable document.
func FromAny(x any) (*Value, error) {
	return getDefaultProcessor().FromAny(x)
}

// FromYAML converts a YAML document into a mutable document.
func FromYAML(data []byte) (*Value, error) {
	return getDefaultProcessor().FromYAML(data)
}

// Valid reports whether s is a well-formed JSON document under the global
// processor's read flags.
func Valid(s string) bool {
	v, err := getDefaultProcessor().Parse(s)
	if err != nil {
		return false
	}
	v.Close()
	return true
}
