package jsondoc

import (
	"math"
	"strconv"

	"github.com/cybergodev/jsondoc/internal"
)

// Typed reads never coerce: a getter invoked on a value of another type
// fails with a TypeMismatchError naming both types.

func nodeBool(op string, n internal.Node) (bool, error) {
	if n.Kind() != internal.KindBool {
		return false, typeMismatch(op, "boolean", n)
	}
	return n.Bool(), nil
}

func nodeInt64(op string, n internal.Node) (int64, error) {
	if !internal.IsInt(n) {
		return 0, typeMismatch(op, "integer", n)
	}
	i, ok := internal.NumberAsInt64(n)
	if !ok {
		return 0, newOperationError(op, strconv.FormatUint(n.Uint(), 10)+" does not fit in int64", ErrNumberOverflow)
	}
	return i, nil
}

func nodeInt(op string, n internal.Node) (int, error) {
	i, err := nodeInt64(op, n)
	if err != nil {
		return 0, err
	}
	if int64(int(i)) != i {
		return 0, newOperationError(op, strconv.FormatInt(i, 10)+" does not fit in int", ErrNumberOverflow)
	}
	return int(i), nil
}

func nodeUint64(op string, n internal.Node) (uint64, error) {
	if !internal.IsInt(n) {
		return 0, typeMismatch(op, "integer", n)
	}
	if n.Subtype() == internal.SubSint {
		if n.Sint() < 0 {
			return 0, newOperationError(op, strconv.FormatInt(n.Sint(), 10)+" is negative", ErrNumberOverflow)
		}
		return uint64(n.Sint()), nil
	}
	return n.Uint(), nil
}

func nodeInt64String(op string, n internal.Node) (string, error) {
	if !internal.IsInt(n) {
		return "", typeMismatch(op, "integer", n)
	}
	return internal.FormatInteger(n), nil
}

func nodeFloat(op string, n internal.Node) (float64, error) {
	if n.Kind() != internal.KindNumber {
		return 0, typeMismatch(op, "number", n)
	}
	return internal.NumberAsFloat(n), nil
}

func nodeString(op string, n internal.Node) (string, error) {
	if n.Kind() != internal.KindString {
		return "", typeMismatch(op, "string", n)
	}
	return n.Str(), nil
}

func (v *Value) read() (internal.Node, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	return v.node, nil
}

// Bool returns the value of a boolean.
func (v *Value) Bool() (bool, error) {
	n, err := v.read()
	if err != nil {
		return false, err
	}
	return nodeBool("get_bool", n)
}

// Int returns an integer value. Floats are rejected.
func (v *Value) Int() (int, error) {
	n, err := v.read()
	if err != nil {
		return 0, err
	}
	return nodeInt("get_int", n)
}

// Int64 returns an integer value; unsigned values above math.MaxInt64 fail
// with ErrNumberOverflow.
func (v *Value) Int64() (int64, error) {
	n, err := v.read()
	if err != nil {
		return 0, err
	}
	return nodeInt64("get_int64", n)
}

// Uint64 returns a non-negative integer value.
func (v *Value) Uint64() (uint64, error) {
	n, err := v.read()
	if err != nil {
		return 0, err
	}
	return nodeUint64("get_uint64", n)
}

// Int64String returns an integer as decimal text. It covers the full uint64
// and int64 ranges.
func (v *Value) Int64String() (string, error) {
	n, err := v.read()
	if err != nil {
		return "", err
	}
	return nodeInt64String("get_int64", n)
}

// Float returns any number as float64.
func (v *Value) Float() (float64, error) {
	n, err := v.read()
	if err != nil {
		return 0, err
	}
	return nodeFloat("get_float", n)
}

// Str returns the text of a string value.
func (v *Value) Str() (string, error) {
	n, err := v.read()
	if err != nil {
		return "", err
	}
	return nodeString("get_string", n)
}

// builder creates a detached node inside a mutable document. Typed setters
// validate their input before producing a builder, so building never fails.
type builder func(d *internal.MutDoc) *internal.MutVal

func boolNode(b bool) builder {
	return func(d *internal.MutDoc) *internal.MutVal { return d.NewBool(b) }
}

func intNode(i int64) builder {
	return func(d *internal.MutDoc) *internal.MutVal { return d.NewSint(i) }
}

func uintNode(u uint64) builder {
	return func(d *internal.MutDoc) *internal.MutVal { return d.NewUint(u) }
}

func floatNode(f float64) builder {
	return func(d *internal.MutDoc) *internal.MutVal { return d.NewReal(f) }
}

func stringNode(s string) builder {
	return func(d *internal.MutDoc) *internal.MutVal { return d.NewStr(s) }
}

func nullNode() builder {
	return func(d *internal.MutDoc) *internal.MutVal { return d.NewNull() }
}

func objectNode() builder {
	return func(d *internal.MutDoc) *internal.MutVal { return d.NewObj() }
}

func arrayNode() builder {
	return func(d *internal.MutDoc) *internal.MutVal { return d.NewArr() }
}

// int64StringNode parses decimal integer text. Negative values become sint,
// the rest uint, so the full range of both 64-bit types is representable.
func int64StringNode(op, s string) (builder, error) {
	sub, bits, err := internal.ParseInteger(s)
	if err != nil {
		return nil, newOperationError(op, "invalid integer text "+strconv.Quote(truncateString(s, 40)), ErrInvalidNumber)
	}
	return func(d *internal.MutDoc) *internal.MutVal { return d.NewInteger(sub, bits) }, nil
}

// checkFloat rejects values the writer could not serialize with default
// flags. NaN and infinities are only stored when the processor is configured
// to write them.
func (p *Processor) checkFloat(op string, f float64) error {
	if (math.IsNaN(f) || math.IsInf(f, 0)) &&
		p.config.WriteFlags&(WriteAllowInfAndNaN|WriteInfAndNaNAsNull) == 0 {
		return newOperationError(op, "NaN and infinity are not valid JSON numbers", ErrInvalidNumber)
	}
	return nil
}
