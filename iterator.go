package jsondoc

import (
	"github.com/cybergodev/jsondoc/internal"
)

// cursor is the per-Value enumeration state. It starts lazily on the first
// Next call and rewinds itself after reporting the end, so a loop over
// NextPair can simply be run again.
type cursor struct {
	active bool
	pos    int
	// imm is the next child of an immutable container; stepping through the
	// arena this way keeps a full enumeration linear.
	imm internal.ImmNode
}

func (v *Value) step(kind internal.Kind) (int, string, internal.Node, bool) {
	if v.check() != nil || v.node.Kind() != kind {
		return -1, "", nil, false
	}
	if !v.iter.active {
		v.iter = cursor{active: true}
		if n, ok := v.node.(internal.ImmNode); ok {
			v.iter.imm = n.FirstChild()
		}
	}
	if v.iter.pos >= v.node.Len() {
		v.iter = cursor{}
		return -1, "", nil, false
	}

	i := v.iter.pos
	v.iter.pos++
	isObject := kind == internal.KindObject
	if _, ok := v.node.(internal.ImmNode); ok {
		child := v.iter.imm
		key := ""
		if isObject {
			key = child.KeyBefore()
		}
		v.iter.imm = child.Next(isObject)
		return i, key, child, true
	}
	if isObject {
		return i, v.node.KeyAt(i), v.node.ValueAt(i), true
	}
	return i, "", v.node.Index(i), true
}

// NextPair advances the object cursor and returns the next key with a view
// of its value. It returns false at the end (and rewinds) or when v is not
// an object. Each returned Value must be closed by the caller.
//
//	for key, val, ok := obj.NextPair(); ok; key, val, ok = obj.NextPair() {
//		...
//		val.Close()
//	}
func (v *Value) NextPair() (string, *Value, bool) {
	_, key, n, ok := v.step(internal.KindObject)
	if !ok {
		return "", nil, false
	}
	return key, v.view(n), true
}

// NextKey advances the object cursor and returns only the key.
func (v *Value) NextKey() (string, bool) {
	_, key, _, ok := v.step(internal.KindObject)
	return key, ok
}

// NextElement advances the array cursor and returns the index with a view of
// the element.
func (v *Value) NextElement() (int, *Value, bool) {
	i, _, n, ok := v.step(internal.KindArray)
	if !ok {
		return -1, nil, false
	}
	return i, v.view(n), true
}

// NextIndex advances the array cursor and returns only the index.
func (v *Value) NextIndex() (int, bool) {
	i, _, _, ok := v.step(internal.KindArray)
	return i, ok
}

// ResetIterator rewinds the cursor to the first child.
func (v *Value) ResetIterator() {
	if v != nil {
		v.iter = cursor{}
	}
}
