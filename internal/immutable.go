package internal

import "math"

// immSlot is one entry of an immutable arena. Containers are followed by their
// children in document order; object children alternate key slot and value
// subtree. span counts the slots of the subtree rooted here (self included),
// so a sibling is always reachable in one step.
type immSlot struct {
	kind Kind
	sub  Subtype
	num  uint64
	str  string
	span int
	n    int
}

// ImmDoc is a read-only document: every node lives in one flat slice that is
// filled once by the parser (or by Freeze) and never modified afterwards.
type ImmDoc struct {
	slots    []immSlot
	readSize int
}

// Root returns the root node, nil for an empty document.
func (d *ImmDoc) Root() Node {
	if d == nil || len(d.slots) == 0 {
		return nil
	}
	return ImmNode{doc: d, i: 0}
}

// ReadSize is the number of input bytes consumed by the parse that produced d.
func (d *ImmDoc) ReadSize() int {
	if d == nil {
		return 0
	}
	return d.readSize
}

// ValueCount is the number of values held by the document, object keys
// included.
func (d *ImmDoc) ValueCount() int {
	if d == nil {
		return 0
	}
	return len(d.slots)
}

func (d *ImmDoc) push(s immSlot) int {
	s.span = 1
	d.slots = append(d.slots, s)
	return len(d.slots) - 1
}

// close finalizes the container opened at idx once all its children have been
// appended.
func (d *ImmDoc) close(idx, count int) {
	d.slots[idx].span = len(d.slots) - idx
	d.slots[idx].n = count
}

// ImmNode addresses one slot of an immutable document.
type ImmNode struct {
	doc *ImmDoc
	i   int
}

// Doc returns the arena n belongs to.
func (n ImmNode) Doc() *ImmDoc { return n.doc }

// Offset is the slot index of n inside its arena.
func (n ImmNode) Offset() int { return n.i }

func (n ImmNode) slot() *immSlot { return &n.doc.slots[n.i] }

func (n ImmNode) Kind() Kind       { return n.slot().kind }
func (n ImmNode) Subtype() Subtype { return n.slot().sub }
func (n ImmNode) Mutable() bool    { return false }

func (n ImmNode) Bool() bool {
	s := n.slot()
	return s.kind == KindBool && s.sub == SubTrue
}

func (n ImmNode) Uint() uint64 {
	s := n.slot()
	if s.kind != KindNumber || s.sub != SubUint {
		return 0
	}
	return s.num
}

func (n ImmNode) Sint() int64 {
	s := n.slot()
	if s.kind != KindNumber || s.sub != SubSint {
		return 0
	}
	return int64(s.num)
}

func (n ImmNode) Real() float64 {
	s := n.slot()
	if s.kind != KindNumber || s.sub != SubReal {
		return 0
	}
	return math.Float64frombits(s.num)
}

func (n ImmNode) Str() string {
	s := n.slot()
	if s.kind != KindString {
		return ""
	}
	return s.str
}

func (n ImmNode) Len() int {
	s := n.slot()
	switch s.kind {
	case KindArray, KindObject:
		return s.n
	case KindString:
		return len(s.str)
	}
	return 0
}

func (n ImmNode) Index(i int) Node {
	s := n.slot()
	if s.kind != KindArray || i < 0 || i >= s.n {
		return nil
	}
	j := n.i + 1
	for k := 0; k < i; k++ {
		j += n.doc.slots[j].span
	}
	return ImmNode{doc: n.doc, i: j}
}

// pairAt returns the slot index of the key of the i-th pair.
func (n ImmNode) pairAt(i int) int {
	j := n.i + 1
	for k := 0; k < i; k++ {
		j += 1 + n.doc.slots[j+1].span
	}
	return j
}

func (n ImmNode) KeyAt(i int) string {
	s := n.slot()
	if s.kind != KindObject || i < 0 || i >= s.n {
		return ""
	}
	return n.doc.slots[n.pairAt(i)].str
}

func (n ImmNode) ValueAt(i int) Node {
	s := n.slot()
	if s.kind != KindObject || i < 0 || i >= s.n {
		return nil
	}
	return ImmNode{doc: n.doc, i: n.pairAt(i) + 1}
}

func (n ImmNode) Get(key string) (Node, bool) {
	s := n.slot()
	if s.kind != KindObject {
		return nil, false
	}
	j := n.i + 1
	for k := 0; k < s.n; k++ {
		if n.doc.slots[j].str == key {
			return ImmNode{doc: n.doc, i: j + 1}, true
		}
		j += 1 + n.doc.slots[j+1].span
	}
	return nil, false
}

func (n ImmNode) Range(fn func(i int, key string, v Node) bool) {
	s := n.slot()
	j := n.i + 1
	switch s.kind {
	case KindArray:
		for k := 0; k < s.n; k++ {
			if !fn(k, "", ImmNode{doc: n.doc, i: j}) {
				return
			}
			j += n.doc.slots[j].span
		}
	case KindObject:
		for k := 0; k < s.n; k++ {
			key := n.doc.slots[j].str
			if !fn(k, key, ImmNode{doc: n.doc, i: j + 1}) {
				return
			}
			j += 1 + n.doc.slots[j+1].span
		}
	}
}

// Next returns the sibling that follows n inside its container. It is the
// constant-time step used by iteration cursors; callers bound it by the
// container's Len.
func (n ImmNode) Next(inObject bool) ImmNode {
	j := n.i + n.slot().span
	if inObject {
		j++
	}
	return ImmNode{doc: n.doc, i: j}
}

// FirstChild returns the first element of an array or the first value of an
// object.
func (n ImmNode) FirstChild() ImmNode {
	if n.slot().kind == KindObject {
		return ImmNode{doc: n.doc, i: n.i + 2}
	}
	return ImmNode{doc: n.doc, i: n.i + 1}
}

// KeyBefore returns the key of the object pair whose value is n.
func (n ImmNode) KeyBefore() string {
	return n.doc.slots[n.i-1].str
}

// SameImm reports whether two nodes address the same slot of the same arena.
func SameImm(a, b Node) bool {
	x, ok1 := a.(ImmNode)
	y, ok2 := b.(ImmNode)
	return ok1 && ok2 && x.doc == y.doc && x.i == y.i
}
