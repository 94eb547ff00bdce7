package jsondoc

import (
	"github.com/cybergodev/jsondoc/internal"
)

// indexOf returns the index of the first element accepted by match, -1 if
// none is. Elements of other types are skipped, not reported.
func (v *Value) indexOf(op string, match func(n internal.Node) bool) (int, error) {
	arr, err := v.array(op)
	if err != nil {
		return -1, err
	}
	found := -1
	arr.Range(func(i int, _ string, n internal.Node) bool {
		if match(n) {
			found = i
			return false
		}
		return true
	})
	return found, nil
}

// IndexOfBool returns the index of the first matching element, -1 if none.
func (v *Value) IndexOfBool(b bool) (int, error) {
	return v.indexOf("array_index_of_bool", func(n internal.Node) bool {
		return n.Kind() == internal.KindBool && n.Bool() == b
	})
}

// IndexOfInt returns the index of the first matching element, -1 if none.
func (v *Value) IndexOfInt(x int) (int, error) {
	return v.IndexOfInt64(int64(x))
}

// IndexOfInt64 matches integer elements by value regardless of whether they
// are stored signed or unsigned. Floats never match.
func (v *Value) IndexOfInt64(x int64) (int, error) {
	return v.indexOf("array_index_of_int64", func(n internal.Node) bool {
		if !internal.IsInt(n) {
			return false
		}
		if n.Subtype() == internal.SubSint {
			return n.Sint() == x
		}
		return x >= 0 && n.Uint() == uint64(x)
	})
}

// IndexOfUint64 returns the index of the first matching element, -1 if none.
func (v *Value) IndexOfUint64(x uint64) (int, error) {
	return v.indexOf("array_index_of_uint64", func(n internal.Node) bool {
		if !internal.IsInt(n) {
			return false
		}
		if n.Subtype() == internal.SubSint {
			return n.Sint() >= 0 && uint64(n.Sint()) == x
		}
		return n.Uint() == x
	})
}

// IndexOfFloat matches float elements within FloatRelEpsilon relative or
// FloatAbsEpsilon absolute difference. NaN matches nothing; infinities match
// infinities of the same sign.
func (v *Value) IndexOfFloat(x float64) (int, error) {
	return v.indexOf("array_index_of_float", func(n internal.Node) bool {
		return internal.IsReal(n) && internal.FloatEquals(n.Real(), x, FloatRelEpsilon, FloatAbsEpsilon)
	})
}

// IndexOfString returns the index of the first matching element, -1 if none.
func (v *Value) IndexOfString(s string) (int, error) {
	return v.indexOf("array_index_of_string", func(n internal.Node) bool {
		return n.Kind() == internal.KindString && n.Str() == s
	})
}
