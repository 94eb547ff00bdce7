package internal

import "math"

// MutDoc is an editable document. Values created through its constructors are
// owned by it and may be attached anywhere inside its tree; values owned by a
// different document must be copied in first (see CopyInto).
type MutDoc struct {
	root *MutVal
}

// NewMutDoc creates an empty mutable document with no root.
func NewMutDoc() *MutDoc {
	return &MutDoc{}
}

// Root returns the root value, nil when none has been set.
func (d *MutDoc) Root() *MutVal { return d.root }

// SetRoot makes v the document root. v must be owned by d and detached.
func (d *MutDoc) SetRoot(v *MutVal) {
	if d.root != nil && d.root != v {
		d.root.parent = nil
	}
	d.root = v
}

// MutPair is one key/value entry of a mutable object.
type MutPair struct {
	Key string
	Val *MutVal
}

// MutVal is one node of a mutable document.
type MutVal struct {
	kind   Kind
	sub    Subtype
	num    uint64
	str    string
	arr    []*MutVal
	obj    []MutPair
	parent *MutVal
	doc    *MutDoc
}

func (d *MutDoc) alloc(k Kind, s Subtype) *MutVal {
	return &MutVal{kind: k, sub: s, doc: d}
}

func (d *MutDoc) NewNull() *MutVal { return d.alloc(KindNull, SubNone) }

func (d *MutDoc) NewBool(b bool) *MutVal {
	if b {
		return d.alloc(KindBool, SubTrue)
	}
	return d.alloc(KindBool, SubFalse)
}

func (d *MutDoc) NewUint(u uint64) *MutVal {
	v := d.alloc(KindNumber, SubUint)
	v.num = u
	return v
}

func (d *MutDoc) NewSint(i int64) *MutVal {
	v := d.alloc(KindNumber, SubSint)
	v.num = uint64(i)
	return v
}

func (d *MutDoc) NewReal(f float64) *MutVal {
	v := d.alloc(KindNumber, SubReal)
	v.num = math.Float64bits(f)
	return v
}

func (d *MutDoc) NewStr(s string) *MutVal {
	v := d.alloc(KindString, SubNone)
	v.str = s
	return v
}

// NewInteger creates a number from a subtype and its raw 64-bit payload, as
// returned by ParseInteger.
func (d *MutDoc) NewInteger(sub Subtype, bits uint64) *MutVal {
	v := d.alloc(KindNumber, sub)
	v.num = bits
	return v
}

func (d *MutDoc) NewArr() *MutVal { return d.alloc(KindArray, SubNone) }
func (d *MutDoc) NewObj() *MutVal { return d.alloc(KindObject, SubNone) }

// Doc returns the owning document.
func (v *MutVal) Doc() *MutDoc { return v.doc }

// Parent returns the container holding v, nil for roots and detached values.
func (v *MutVal) Parent() *MutVal { return v.parent }

// Attached reports whether v is reachable from some container or is the root
// of its document.
func (v *MutVal) Attached() bool {
	return v.parent != nil || (v.doc != nil && v.doc.root == v)
}

// Contains reports whether target is v or lies inside v's subtree.
func (v *MutVal) Contains(target *MutVal) bool {
	for n := target; n != nil; n = n.parent {
		if n == v {
			return true
		}
	}
	return false
}

func (v *MutVal) Kind() Kind       { return v.kind }
func (v *MutVal) Subtype() Subtype { return v.sub }
func (v *MutVal) Mutable() bool    { return true }

func (v *MutVal) Bool() bool { return v.kind == KindBool && v.sub == SubTrue }

func (v *MutVal) Uint() uint64 {
	if v.kind != KindNumber || v.sub != SubUint {
		return 0
	}
	return v.num
}

func (v *MutVal) Sint() int64 {
	if v.kind != KindNumber || v.sub != SubSint {
		return 0
	}
	return int64(v.num)
}

func (v *MutVal) Real() float64 {
	if v.kind != KindNumber || v.sub != SubReal {
		return 0
	}
	return math.Float64frombits(v.num)
}

func (v *MutVal) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.str
}

func (v *MutVal) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	case KindString:
		return len(v.str)
	}
	return 0
}

// Elem is the typed form of Index.
func (v *MutVal) Elem(i int) *MutVal {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return nil
	}
	return v.arr[i]
}

func (v *MutVal) Index(i int) Node {
	if e := v.Elem(i); e != nil {
		return e
	}
	return nil
}

func (v *MutVal) KeyAt(i int) string {
	if v.kind != KindObject || i < 0 || i >= len(v.obj) {
		return ""
	}
	return v.obj[i].Key
}

// Pair returns the typed value of the i-th object pair.
func (v *MutVal) Pair(i int) *MutVal {
	if v.kind != KindObject || i < 0 || i >= len(v.obj) {
		return nil
	}
	return v.obj[i].Val
}

func (v *MutVal) ValueAt(i int) Node {
	if p := v.Pair(i); p != nil {
		return p
	}
	return nil
}

// Lookup is the typed form of Get.
func (v *MutVal) Lookup(key string) (*MutVal, int) {
	if v.kind != KindObject {
		return nil, -1
	}
	for i := range v.obj {
		if v.obj[i].Key == key {
			return v.obj[i].Val, i
		}
	}
	return nil, -1
}

func (v *MutVal) Get(key string) (Node, bool) {
	if m, _ := v.Lookup(key); m != nil {
		return m, true
	}
	return nil, false
}

func (v *MutVal) Range(fn func(i int, key string, v Node) bool) {
	switch v.kind {
	case KindArray:
		for i, e := range v.arr {
			if !fn(i, "", e) {
				return
			}
		}
	case KindObject:
		for i, p := range v.obj {
			if !fn(i, p.Key, p.Val) {
				return
			}
		}
	}
}

func (v *MutVal) adopt(child *MutVal) *MutVal {
	child.parent = v
	return child
}

func detach(v *MutVal) *MutVal {
	if v != nil {
		v.parent = nil
	}
	return v
}

// Append adds child at the end of array v.
func (v *MutVal) Append(child *MutVal) {
	v.arr = append(v.arr, v.adopt(child))
}

// Insert places child before position i (0 <= i <= Len) of array v.
func (v *MutVal) Insert(i int, child *MutVal) {
	v.arr = append(v.arr, nil)
	copy(v.arr[i+1:], v.arr[i:])
	v.arr[i] = v.adopt(child)
}

// Replace swaps the i-th array element and returns the detached old value.
func (v *MutVal) Replace(i int, child *MutVal) *MutVal {
	old := v.arr[i]
	v.arr[i] = v.adopt(child)
	return detach(old)
}

// RemoveRange deletes elements [start, end) of array v.
func (v *MutVal) RemoveRange(start, end int) {
	for _, e := range v.arr[start:end] {
		detach(e)
	}
	n := copy(v.arr[start:], v.arr[end:])
	for i := start + n; i < len(v.arr); i++ {
		v.arr[i] = nil
	}
	v.arr = v.arr[:start+n]
}

// Put sets key to child in object v, replacing the first existing pair with
// that key or appending a new one. The replaced value, if any, is returned
// detached.
func (v *MutVal) Put(key string, child *MutVal) *MutVal {
	for i := range v.obj {
		if v.obj[i].Key == key {
			old := v.obj[i].Val
			v.obj[i].Val = v.adopt(child)
			return detach(old)
		}
	}
	v.obj = append(v.obj, MutPair{Key: key, Val: v.adopt(child)})
	return nil
}

// AddPair appends a pair without looking for an existing key; the parser
// uses it to keep duplicate keys exactly as they appear in the input.
func (v *MutVal) AddPair(key string, child *MutVal) {
	v.obj = append(v.obj, MutPair{Key: key, Val: v.adopt(child)})
}

// RemoveKey deletes every pair whose key equals key and reports how many were
// removed.
func (v *MutVal) RemoveKey(key string) int {
	kept := v.obj[:0]
	removed := 0
	for _, p := range v.obj {
		if p.Key == key {
			detach(p.Val)
			removed++
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(v.obj); i++ {
		v.obj[i] = MutPair{}
	}
	v.obj = kept
	return removed
}

// RemovePair deletes the i-th pair of object v.
func (v *MutVal) RemovePair(i int) {
	detach(v.obj[i].Val)
	copy(v.obj[i:], v.obj[i+1:])
	v.obj[len(v.obj)-1] = MutPair{}
	v.obj = v.obj[:len(v.obj)-1]
}

// RenameKey changes the key of pair i.
func (v *MutVal) RenameKey(i int, key string) {
	v.obj[i].Key = key
}

// Clear removes every child of container v.
func (v *MutVal) Clear() {
	switch v.kind {
	case KindArray:
		for _, e := range v.arr {
			detach(e)
		}
		v.arr = nil
	case KindObject:
		for _, p := range v.obj {
			detach(p.Val)
		}
		v.obj = nil
	}
}

// Elems exposes the backing element slice of an array for in-place
// reordering. Callers must keep every element; only the order may change.
func (v *MutVal) Elems() []*MutVal { return v.arr }

// Pairs exposes the backing pair slice of an object for in-place reordering.
func (v *MutVal) Pairs() []MutPair { return v.obj }
