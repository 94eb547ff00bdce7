package internal

import (
	"cmp"
	"math"
	"strings"
)

// Equal reports structural equality of two trees of either representation.
// Integers compare by value across uint/sint; an integer never equals a real.
// Object pairs are compared positionally when both key sequences match, and
// by key lookup otherwise.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNull:
		return true
	case KindBool:
		return a.Bool() == b.Bool()
	case KindNumber:
		return numbersEqual(a, b)
	case KindString:
		return a.Str() == b.Str()
	case KindArray:
		if a.Len() != b.Len() {
			return false
		}
		eq := true
		var bi Node
		a.Range(func(i int, _ string, av Node) bool {
			bi = b.Index(i)
			eq = Equal(av, bi)
			return eq
		})
		return eq
	case KindObject:
		if a.Len() != b.Len() {
			return false
		}
		eq := true
		a.Range(func(i int, key string, av Node) bool {
			var bv Node
			if b.KeyAt(i) == key {
				bv = b.ValueAt(i)
			} else {
				var ok bool
				if bv, ok = b.Get(key); !ok {
					eq = false
					return false
				}
			}
			eq = Equal(av, bv)
			return eq
		})
		return eq
	}
	return false
}

func numbersEqual(a, b Node) bool {
	ra, rb := a.Subtype() == SubReal, b.Subtype() == SubReal
	switch {
	case ra && rb:
		return a.Real() == b.Real()
	case ra || rb:
		return false
	}
	return compareInts(a, b) == 0
}

// compareInts orders two integer nodes without going through float64.
func compareInts(a, b Node) int {
	sa, sb := a.Subtype() == SubSint, b.Subtype() == SubSint
	switch {
	case sa && sb:
		return cmp.Compare(a.Sint(), b.Sint())
	case !sa && !sb:
		return cmp.Compare(a.Uint(), b.Uint())
	case sa:
		if a.Sint() < 0 {
			return -1
		}
		return cmp.Compare(uint64(a.Sint()), b.Uint())
	default:
		if b.Sint() < 0 {
			return 1
		}
		return cmp.Compare(a.Uint(), uint64(b.Sint()))
	}
}

// Compare is the sort ordering: type tag first, then the value within a tag.
// Strings compare byte-wise, numbers numerically (integers exactly, anything
// involving a real as float64), false before true. Containers of the same
// kind compare equal so a stable sort keeps their order.
func Compare(a, b Node) int {
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}
	switch a.Kind() {
	case KindBool:
		return compareBools(a.Bool(), b.Bool())
	case KindNumber:
		if a.Subtype() != SubReal && b.Subtype() != SubReal {
			return compareInts(a, b)
		}
		return cmp.Compare(NumberAsFloat(a), NumberAsFloat(b))
	case KindString:
		return strings.Compare(a.Str(), b.Str())
	}
	return 0
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// FloatEquals compares two floats with a relative epsilon combined with an
// absolute one. NaN equals nothing; infinities equal only infinities of the
// same sign.
func FloatEquals(a, b, relEpsilon, absEpsilon float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return math.IsInf(a, 0) && math.IsInf(b, 0) && (a > 0) == (b > 0)
	}
	diff := math.Abs(a - b)
	if diff <= absEpsilon {
		return true
	}
	return diff <= math.Max(math.Abs(a), math.Abs(b))*relEpsilon
}

// Validate checks value against a schema document: a null schema accepts
// anything, otherwise kinds must match; object schemas require each schema
// key to exist with a valid value; array schemas validate every element
// against the schema's first element.
func Validate(schema, value Node) bool {
	if schema == nil || value == nil {
		return false
	}
	if schema.Kind() == KindNull {
		return true
	}
	if schema.Kind() != value.Kind() {
		return false
	}
	switch schema.Kind() {
	case KindArray:
		if schema.Len() == 0 {
			return true
		}
		tmpl := schema.Index(0)
		ok := true
		value.Range(func(_ int, _ string, v Node) bool {
			ok = Validate(tmpl, v)
			return ok
		})
		return ok
	case KindObject:
		if schema.Len() == 0 {
			return true
		}
		if value.Len() < schema.Len() {
			return false
		}
		ok := true
		schema.Range(func(_ int, key string, s Node) bool {
			v, found := value.Get(key)
			ok = found && Validate(s, v)
			return ok
		})
		return ok
	}
	return true
}
