package internal

import "math"

// Node is the read contract shared by mutable and immutable values. Every
// accessor that does not change the tree is written once against Node; only
// mutation needs to know which representation it is talking to.
type Node interface {
	Kind() Kind
	Subtype() Subtype

	// Scalar payloads. Callers check Kind/Subtype first; a mismatched read
	// returns the zero value.
	Bool() bool
	Uint() uint64
	Sint() int64
	Real() float64
	Str() string

	// Len is the element count of a container, the byte length of a string
	// and zero otherwise.
	Len() int

	// Index returns the i-th array element.
	Index(i int) Node
	// KeyAt and ValueAt address the i-th object pair.
	KeyAt(i int) string
	ValueAt(i int) Node
	// Get returns the value of the first pair whose key equals key.
	Get(key string) (Node, bool)
	// Range visits children in order. For arrays key is empty. Returning
	// false stops the walk.
	Range(fn func(i int, key string, v Node) bool)

	Mutable() bool
}

// IsInt reports whether n is an integer number (uint or sint).
func IsInt(n Node) bool {
	return n.Kind() == KindNumber && n.Subtype() != SubReal
}

// IsReal reports whether n is a floating point number.
func IsReal(n Node) bool {
	return n.Kind() == KindNumber && n.Subtype() == SubReal
}

// NumberAsFloat converts any number node to float64.
func NumberAsFloat(n Node) float64 {
	switch n.Subtype() {
	case SubSint:
		return float64(n.Sint())
	case SubReal:
		return n.Real()
	default:
		return float64(n.Uint())
	}
}

// NumberAsInt64 converts an integer node to int64, reporting overflow for
// unsigned values above math.MaxInt64.
func NumberAsInt64(n Node) (int64, bool) {
	switch n.Subtype() {
	case SubSint:
		return n.Sint(), true
	case SubUint:
		u := n.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}

// NameOf returns the type name of n, "none" for a nil node.
func NameOf(n Node) string {
	if n == nil {
		return KindNone.String()
	}
	return TypeName(n.Kind(), n.Subtype())
}

// ParentOf finds the container holding target by walking down from root. It is
// the fallback for representations that do not store parent links.
func ParentOf(root, target Node, same func(a, b Node) bool) (Node, bool) {
	if root == nil || !root.Kind().IsContainer() {
		return nil, false
	}
	var found Node
	root.Range(func(_ int, _ string, child Node) bool {
		if same(child, target) {
			found = root
			return false
		}
		if child.Kind().IsContainer() {
			if p, ok := ParentOf(child, target, same); ok {
				found = p
				return false
			}
		}
		return true
	})
	return found, found != nil
}
