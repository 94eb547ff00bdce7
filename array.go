package jsondoc

import (
	"github.com/cybergodev/jsondoc/internal"
)

func (v *Value) array(op string) (internal.Node, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	if v.node.Kind() != internal.KindArray {
		return nil, typeMismatch(op, "array", v.node)
	}
	return v.node, nil
}

func (v *Value) mutArray(op string) (*internal.MutVal, error) {
	m, err := v.mutable(op)
	if err != nil {
		return nil, err
	}
	if m.Kind() != internal.KindArray {
		return nil, typeMismatch(op, "array", m)
	}
	return m, nil
}

func (v *Value) elem(op string, i int) (internal.Node, error) {
	arr, err := v.array(op)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= arr.Len() {
		return nil, &IndexError{Index: i, Size: arr.Len()}
	}
	return arr.Index(i), nil
}

// adopt prepares src for attachment under target. A detached node of the
// same document is attached as is; anything else (nodes of other or
// immutable documents, nodes that already have a parent, document roots and
// nodes that would end up inside themselves) is deep-copied first.
func (v *Value) adopt(target *internal.MutVal, src *Value) (*internal.MutVal, error) {
	if err := src.check(); err != nil {
		return nil, err
	}
	if m, ok := src.node.(*internal.MutVal); ok && src.doc == v.doc && !m.Attached() && !m.Contains(target) {
		return m, nil
	}
	return internal.CopyInto(v.doc.mut, src.node), nil
}

// Len returns the number of elements of an array or pairs of an object, and
// zero for every other type.
func (v *Value) Len() int {
	if v.check() != nil || !v.node.Kind().IsContainer() {
		return 0
	}
	return v.node.Len()
}

// At returns a view of the i-th array element.
func (v *Value) At(i int) (*Value, error) {
	n, err := v.elem("array_get", i)
	if err != nil {
		return nil, err
	}
	return v.view(n), nil
}

// First returns a view of the first array element.
func (v *Value) First() (*Value, error) {
	return v.At(0)
}

// Last returns a view of the last array element.
func (v *Value) Last() (*Value, error) {
	arr, err := v.array("array_get_last")
	if err != nil {
		return nil, err
	}
	if arr.Len() == 0 {
		return nil, &IndexError{Index: -1, Size: 0}
	}
	return v.view(arr.Index(arr.Len() - 1)), nil
}

// BoolAt returns element i as a bool.
func (v *Value) BoolAt(i int) (bool, error) {
	n, err := v.elem("array_get_bool", i)
	if err != nil {
		return false, err
	}
	return nodeBool("array_get_bool", n)
}

// IntAt returns element i as an int.
func (v *Value) IntAt(i int) (int, error) {
	n, err := v.elem("array_get_int", i)
	if err != nil {
		return 0, err
	}
	return nodeInt("array_get_int", n)
}

// Int64At returns element i as an int64.
func (v *Value) Int64At(i int) (int64, error) {
	n, err := v.elem("array_get_int64", i)
	if err != nil {
		return 0, err
	}
	return nodeInt64("array_get_int64", n)
}

// Uint64At returns element i as a uint64.
func (v *Value) Uint64At(i int) (uint64, error) {
	n, err := v.elem("array_get_uint64", i)
	if err != nil {
		return 0, err
	}
	return nodeUint64("array_get_uint64", n)
}

// Int64StringAt returns element i as decimal integer text.
func (v *Value) Int64StringAt(i int) (string, error) {
	n, err := v.elem("array_get_int64", i)
	if err != nil {
		return "", err
	}
	return nodeInt64String("array_get_int64", n)
}

// FloatAt returns element i as a float64.
func (v *Value) FloatAt(i int) (float64, error) {
	n, err := v.elem("array_get_float", i)
	if err != nil {
		return 0, err
	}
	return nodeFloat("array_get_float", n)
}

// StringAt returns element i as a string.
func (v *Value) StringAt(i int) (string, error) {
	n, err := v.elem("array_get_string", i)
	if err != nil {
		return "", err
	}
	return nodeString("array_get_string", n)
}

// IsNullAt reports whether the i-th element is null.
func (v *Value) IsNullAt(i int) (bool, error) {
	n, err := v.elem("array_is_null", i)
	if err != nil {
		return false, err
	}
	return n.Kind() == internal.KindNull, nil
}

// replaceAt swaps element i for a new node. Bounds are checked before the
// node is produced so a failure leaves the array untouched.
func (v *Value) replaceAt(op string, i int, produce func(arr *internal.MutVal) (*internal.MutVal, error)) error {
	arr, err := v.mutArray(op)
	if err != nil {
		return err
	}
	if i < 0 || i >= arr.Len() {
		return &IndexError{Index: i, Size: arr.Len()}
	}
	child, err := produce(arr)
	if err != nil {
		return err
	}
	arr.Replace(i, child)
	return nil
}

func (v *Value) buildAt(op string, i int, b builder) error {
	return v.replaceAt(op, i, func(*internal.MutVal) (*internal.MutVal, error) {
		return b(v.doc.mut), nil
	})
}

// SetAt replaces the i-th element with val, copying val when it is already
// attached elsewhere.
func (v *Value) SetAt(i int, val *Value) error {
	return v.replaceAt("array_replace", i, func(arr *internal.MutVal) (*internal.MutVal, error) {
		return v.adopt(arr, val)
	})
}

// SetBoolAt replaces element i with a boolean.
func (v *Value) SetBoolAt(i int, b bool) error {
	return v.buildAt("array_replace_bool", i, boolNode(b))
}

// SetIntAt replaces element i with an int.
func (v *Value) SetIntAt(i int, n int) error {
	return v.buildAt("array_replace_int", i, intNode(int64(n)))
}

// SetInt64At replaces element i with an int64.
func (v *Value) SetInt64At(i int, n int64) error {
	return v.buildAt("array_replace_int64", i, intNode(n))
}

// SetUint64At replaces element i with a uint64.
func (v *Value) SetUint64At(i int, n uint64) error {
	return v.buildAt("array_replace_uint64", i, uintNode(n))
}

// SetInt64StringAt replaces element i with an integer given as decimal text.
func (v *Value) SetInt64StringAt(i int, s string) error {
	b, err := int64StringNode("array_replace_int64", s)
	if err != nil {
		return err
	}
	return v.buildAt("array_replace_int64", i, b)
}

// SetFloatAt replaces element i with a real.
func (v *Value) SetFloatAt(i int, f float64) error {
	if err := v.check(); err != nil {
		return err
	}
	if err := v.doc.proc.checkFloat("array_replace_float", f); err != nil {
		return err
	}
	return v.buildAt("array_replace_float", i, floatNode(f))
}

// SetStringAt replaces element i with a string.
func (v *Value) SetStringAt(i int, s string) error {
	return v.buildAt("array_replace_string", i, stringNode(s))
}

// SetNullAt replaces element i with null.
func (v *Value) SetNullAt(i int) error {
	return v.buildAt("array_replace_null", i, nullNode())
}

func (v *Value) appendNode(op string, produce func(arr *internal.MutVal) (*internal.MutVal, error)) error {
	arr, err := v.mutArray(op)
	if err != nil {
		return err
	}
	child, err := produce(arr)
	if err != nil {
		return err
	}
	arr.Append(child)
	return nil
}

func (v *Value) appendBuilt(op string, b builder) error {
	return v.appendNode(op, func(*internal.MutVal) (*internal.MutVal, error) {
		return b(v.doc.mut), nil
	})
}

// Append adds val at the end of the array, copying val when it is already
// attached elsewhere.
func (v *Value) Append(val *Value) error {
	return v.appendNode("array_append", func(arr *internal.MutVal) (*internal.MutVal, error) {
		return v.adopt(arr, val)
	})
}

// AppendBool appends a boolean.
func (v *Value) AppendBool(b bool) error {
	return v.appendBuilt("array_append_bool", boolNode(b))
}

// AppendInt appends an int.
func (v *Value) AppendInt(n int) error {
	return v.appendBuilt("array_append_int", intNode(int64(n)))
}

// AppendInt64 appends an int64.
func (v *Value) AppendInt64(n int64) error {
	return v.appendBuilt("array_append_int64", intNode(n))
}

// AppendUint64 appends a uint64.
func (v *Value) AppendUint64(n uint64) error {
	return v.appendBuilt("array_append_uint64", uintNode(n))
}

// AppendInt64String appends an integer given as decimal text.
func (v *Value) AppendInt64String(s string) error {
	b, err := int64StringNode("array_append_int64", s)
	if err != nil {
		return err
	}
	return v.appendBuilt("array_append_int64", b)
}

// AppendFloat appends a real.
func (v *Value) AppendFloat(f float64) error {
	if err := v.check(); err != nil {
		return err
	}
	if err := v.doc.proc.checkFloat("array_append_float", f); err != nil {
		return err
	}
	return v.appendBuilt("array_append_float", floatNode(f))
}

// AppendString appends a string.
func (v *Value) AppendString(s string) error {
	return v.appendBuilt("array_append_string", stringNode(s))
}

// AppendNull appends null.
func (v *Value) AppendNull() error {
	return v.appendBuilt("array_append_null", nullNode())
}

// InsertAt places val before position i; i == Len appends.
func (v *Value) InsertAt(i int, val *Value) error {
	arr, err := v.mutArray("array_insert")
	if err != nil {
		return err
	}
	if i < 0 || i > arr.Len() {
		return &IndexError{Index: i, Size: arr.Len()}
	}
	child, err := v.adopt(arr, val)
	if err != nil {
		return err
	}
	arr.Insert(i, child)
	return nil
}

// RemoveAt deletes the i-th element. Views of the removed element stay
// usable; they address a detached node of the same document.
func (v *Value) RemoveAt(i int) error {
	arr, err := v.mutArray("array_remove")
	if err != nil {
		return err
	}
	if i < 0 || i >= arr.Len() {
		return &IndexError{Index: i, Size: arr.Len()}
	}
	arr.RemoveRange(i, i+1)
	return nil
}

// RemoveFirst removes the first element.
func (v *Value) RemoveFirst() error {
	return v.RemoveAt(0)
}

// RemoveLast removes the last element.
func (v *Value) RemoveLast() error {
	arr, err := v.mutArray("array_remove_last")
	if err != nil {
		return err
	}
	if arr.Len() == 0 {
		return &IndexError{Index: -1, Size: 0}
	}
	arr.RemoveRange(arr.Len()-1, arr.Len())
	return nil
}

// RemoveRange deletes elements [start, end). It requires
// 0 <= start <= end <= Len.
func (v *Value) RemoveRange(start, end int) error {
	arr, err := v.mutArray("array_remove_range")
	if err != nil {
		return err
	}
	if start < 0 || start > end || end > arr.Len() {
		return &RangeError{Start: start, End: end, Size: arr.Len()}
	}
	arr.RemoveRange(start, end)
	return nil
}

// Clear removes every element of an array or every pair of an object.
func (v *Value) Clear() error {
	m, err := v.mutable("clear")
	if err != nil {
		return err
	}
	if !m.Kind().IsContainer() {
		return typeMismatch("clear", "array or object", m)
	}
	m.Clear()
	return nil
}
