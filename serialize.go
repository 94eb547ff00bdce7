package jsondoc

import (
	"context"
	"io"

	"github.com/cybergodev/jsondoc/internal"
)

// writeFlags merges explicit flags, falling back to the processor default
// when none are given.
func (v *Value) writeFlags(flags []WriteFlag) WriteFlag {
	if len(flags) == 0 {
		return v.doc.proc.config.WriteFlags
	}
	var f WriteFlag
	for _, fl := range flags {
		f |= fl
	}
	return f
}

// ToBytes serializes the value. Without flags the processor's default write
// flags apply.
func (v *Value) ToBytes(flags ...WriteFlag) ([]byte, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	out, werr := internal.Write(v.node, v.writeFlags(flags))
	if werr != nil {
		return nil, &WriteError{Code: werr.Code, Message: werr.Msg}
	}
	return out, nil
}

// ToString serializes the value to a string.
func (v *Value) ToString(flags ...WriteFlag) (string, error) {
	out, err := v.ToBytes(flags...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// SerializedSize is the size of a buffer able to hold ToString's output
// plus a terminating NUL.
func (v *Value) SerializedSize(flags ...WriteFlag) (int, error) {
	out, err := v.ToBytes(flags...)
	if err != nil {
		return 0, err
	}
	return len(out) + 1, nil
}

// String returns the compact serialization, or an empty string when the
// value cannot be written.
func (v *Value) String() string {
	if v.check() != nil {
		return ""
	}
	s, err := v.ToString(WriteNoFlag | WriteAllowInfAndNaN)
	if err != nil {
		return ""
	}
	return s
}

// WriteTo writes the serialized value to w with the processor's default
// flags.
func (v *Value) WriteTo(w io.Writer) (int64, error) {
	out, err := v.ToBytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(out)
	return int64(n), err
}

// ToFile serializes the value into the named file, resolved through the
// processor's path rules.
func (v *Value) ToFile(name string, flags ...WriteFlag) error {
	if err := v.check(); err != nil {
		return err
	}
	return v.doc.proc.writeFile(context.Background(), name, v, v.writeFlags(flags))
}
