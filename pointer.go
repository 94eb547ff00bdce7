package jsondoc

import (
	"fmt"

	"github.com/cybergodev/jsondoc/internal"
)

// Pointer operations take RFC 6901 paths ("/a/b/0") relative to the
// addressed value; the empty path addresses the value itself. Failures are
// reported as *PointerError with the byte offset of the failing segment.

func resolveFailure(toks []internal.PtrToken, i int) error {
	return &PointerError{
		Code:    PointerResolve,
		Message: fmt.Sprintf("cannot resolve segment %q", toks[i].Key),
		Pos:     toks[i].Pos,
	}
}

func (v *Value) resolve(path string) (internal.Node, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	toks, fault := internal.ParsePointer(path)
	if fault != nil {
		return nil, newPointerError(fault)
	}
	n, failed := internal.Resolve(v.node, toks)
	if failed >= 0 {
		return nil, resolveFailure(toks, failed)
	}
	return n, nil
}

// PtrGet returns a view of the value at path.
func (v *Value) PtrGet(path string) (*Value, error) {
	n, err := v.resolve(path)
	if err != nil {
		return nil, err
	}
	return v.view(n), nil
}

// PtrGetBool returns the value at path as a bool.
func (v *Value) PtrGetBool(path string) (bool, error) {
	n, err := v.resolve(path)
	if err != nil {
		return false, err
	}
	return nodeBool("ptr_get_bool", n)
}

// PtrGetInt returns the value at path as an int.
func (v *Value) PtrGetInt(path string) (int, error) {
	n, err := v.resolve(path)
	if err != nil {
		return 0, err
	}
	return nodeInt("ptr_get_int", n)
}

// PtrGetInt64 returns the value at path as an int64.
func (v *Value) PtrGetInt64(path string) (int64, error) {
	n, err := v.resolve(path)
	if err != nil {
		return 0, err
	}
	return nodeInt64("ptr_get_int64", n)
}

// PtrGetUint64 returns the value at path as a uint64.
func (v *Value) PtrGetUint64(path string) (uint64, error) {
	n, err := v.resolve(path)
	if err != nil {
		return 0, err
	}
	return nodeUint64("ptr_get_uint64", n)
}

// PtrGetInt64String returns the value at path as decimal integer text.
func (v *Value) PtrGetInt64String(path string) (string, error) {
	n, err := v.resolve(path)
	if err != nil {
		return "", err
	}
	return nodeInt64String("ptr_get_int64", n)
}

// PtrGetFloat returns the value at path as a float64.
func (v *Value) PtrGetFloat(path string) (float64, error) {
	n, err := v.resolve(path)
	if err != nil {
		return 0, err
	}
	return nodeFloat("ptr_get_float", n)
}

// PtrGetString returns the value at path as a string.
func (v *Value) PtrGetString(path string) (string, error) {
	n, err := v.resolve(path)
	if err != nil {
		return "", err
	}
	return nodeString("ptr_get_string", n)
}

// PtrIsNull reports whether the value at path is null.
func (v *Value) PtrIsNull(path string) (bool, error) {
	n, err := v.resolve(path)
	if err != nil {
		return false, err
	}
	return n.Kind() == internal.KindNull, nil
}

// PtrGetLength returns the buffer size needed to hold the string at path:
// its byte length plus one for a terminating NUL.
func (v *Value) PtrGetLength(path string) (int, error) {
	n, err := v.resolve(path)
	if err != nil {
		return 0, err
	}
	if n.Kind() != internal.KindString {
		return 0, typeMismatch("ptr_get_length", "string", n)
	}
	return n.Len() + 1, nil
}

// PtrTryGet is PtrGet without an error: ok is false when the path does not
// resolve.
func (v *Value) PtrTryGet(path string) (*Value, bool) {
	val, err := v.PtrGet(path)
	return val, err == nil
}

// PtrTryGetBool is PtrGetBool with the error reduced to a found flag.
func (v *Value) PtrTryGetBool(path string) (bool, bool) {
	b, err := v.PtrGetBool(path)
	return b, err == nil
}

// PtrTryGetInt is PtrGetInt with the error reduced to a found flag.
func (v *Value) PtrTryGetInt(path string) (int, bool) {
	i, err := v.PtrGetInt(path)
	return i, err == nil
}

// PtrTryGetInt64 is PtrGetInt64 with the error reduced to a found flag.
func (v *Value) PtrTryGetInt64(path string) (int64, bool) {
	i, err := v.PtrGetInt64(path)
	return i, err == nil
}

// PtrTryGetInt64String is PtrGetInt64String with the error reduced to a found flag.
func (v *Value) PtrTryGetInt64String(path string) (string, bool) {
	s, err := v.PtrGetInt64String(path)
	return s, err == nil
}

// PtrTryGetFloat is PtrGetFloat with the error reduced to a found flag.
func (v *Value) PtrTryGetFloat(path string) (float64, bool) {
	f, err := v.PtrGetFloat(path)
	return f, err == nil
}

// PtrTryGetString is PtrGetString with the error reduced to a found flag.
func (v *Value) PtrTryGetString(path string) (string, bool) {
	s, err := v.PtrGetString(path)
	return s, err == nil
}

func isIndexToken(tok internal.PtrToken) bool {
	return tok.End || tok.Index >= 0
}

// mutChild resolves one token against a mutable container.
func mutChild(cur *internal.MutVal, tok internal.PtrToken) *internal.MutVal {
	switch cur.Kind() {
	case internal.KindObject:
		m, _ := cur.Lookup(tok.Key)
		return m
	case internal.KindArray:
		return cur.Elem(tok.Index)
	}
	return nil
}

// ptrWrite implements set (insert=false) and add (insert=true). The whole
// path is validated before anything is created, so a failing write leaves
// the document unchanged.
func (v *Value) ptrWrite(op, path string, insert bool, opts *PointerOptions,
	produce func(target *internal.MutVal) (*internal.MutVal, error)) error {
	root, err := v.mutable(op)
	if err != nil {
		return err
	}
	toks, fault := internal.ParsePointer(path)
	if fault != nil {
		return newPointerError(fault)
	}
	if len(toks) == 0 {
		return &PointerError{Code: PointerSetRoot, Message: "cannot replace the addressed value itself", Pos: 0}
	}
	last := len(toks) - 1

	cur := root
	i := 0
	for ; i < last; i++ {
		next := mutChild(cur, toks[i])
		if next == nil {
			break
		}
		cur = next
	}

	if i < last {
		// toks[i:last] name containers that do not exist yet.
		if !opts.CreateParents {
			return resolveFailure(toks, i)
		}
		switch cur.Kind() {
		case internal.KindObject:
		case internal.KindArray:
			if !toks[i].End && toks[i].Index != cur.Len() {
				return resolveFailure(toks, i)
			}
		default:
			return resolveFailure(toks, i)
		}
		// Every later token lands in a freshly created, empty container.
		for j := i + 1; j <= last; j++ {
			if isIndexToken(toks[j]) && !toks[j].End && toks[j].Index != 0 {
				return resolveFailure(toks, j)
			}
		}
	} else {
		switch cur.Kind() {
		case internal.KindObject:
		case internal.KindArray:
			tok := toks[last]
			if !tok.End && (tok.Index < 0 || tok.Index > cur.Len()) {
				return resolveFailure(toks, last)
			}
		default:
			return resolveFailure(toks, last)
		}
	}

	child, err := produce(cur)
	if err != nil {
		return err
	}

	for ; i < last; i++ {
		var c *internal.MutVal
		if isIndexToken(toks[i+1]) {
			c = v.doc.mut.NewArr()
		} else {
			c = v.doc.mut.NewObj()
		}
		if cur.Kind() == internal.KindObject {
			cur.Put(toks[i].Key, c)
		} else {
			cur.Append(c)
		}
		cur = c
	}

	tok := toks[last]
	if cur.Kind() == internal.KindObject {
		cur.Put(tok.Key, child)
		return nil
	}
	switch {
	case tok.End || tok.Index == cur.Len():
		cur.Append(child)
	case insert:
		cur.Insert(tok.Index, child)
	default:
		cur.Replace(tok.Index, child)
	}
	return nil
}

func (v *Value) ptrWriteValue(op, path string, insert bool, val *Value, opts []*PointerOptions) error {
	return v.ptrWrite(op, path, insert, pointerOptions(opts), func(target *internal.MutVal) (*internal.MutVal, error) {
		return v.adopt(target, val)
	})
}

func (v *Value) ptrWriteBuilt(op, path string, insert bool, b builder, opts []*PointerOptions) error {
	return v.ptrWrite(op, path, insert, pointerOptions(opts), func(*internal.MutVal) (*internal.MutVal, error) {
		return b(v.doc.mut), nil
	})
}

// PtrSet stores val at path, replacing an existing value. Missing parents
// are created unless opts disable it. val is copied when it is already
// attached elsewhere.
func (v *Value) PtrSet(path string, val *Value, opts ...*PointerOptions) error {
	return v.ptrWriteValue("ptr_set", path, false, val, opts)
}

// PtrSetBool stores a boolean at path.
func (v *Value) PtrSetBool(path string, b bool, opts ...*PointerOptions) error {
	return v.ptrWriteBuilt("ptr_set_bool", path, false, boolNode(b), opts)
}

// PtrSetInt stores an int at path.
func (v *Value) PtrSetInt(path string, n int, opts ...*PointerOptions) error {
	return v.ptrWriteBuilt("ptr_set_int", path, false, intNode(int64(n)), opts)
}

// PtrSetInt64 stores an int64 at path.
func (v *Value) PtrSetInt64(path string, n int64, opts ...*PointerOptions) error {
	return v.ptrWriteBuilt("ptr_set_int64", path, false, intNode(n), opts)
}

// PtrSetInt64String stores an integer given as decimal text at path.
func (v *Value) PtrSetInt64String(path string, s string, opts ...*PointerOptions) error {
	b, err := int64StringNode("ptr_set_int64", s)
	if err != nil {
		return err
	}
	return v.ptrWriteBuilt("ptr_set_int64", path, false, b, opts)
}

// PtrSetFloat stores a real at path.
func (v *Value) PtrSetFloat(path string, f float64, opts ...*PointerOptions) error {
	if err := v.check(); err != nil {
		return err
	}
	if err := v.doc.proc.checkFloat("ptr_set_float", f); err != nil {
		return err
	}
	return v.ptrWriteBuilt("ptr_set_float", path, false, floatNode(f), opts)
}

// PtrSetString stores a string at path.
func (v *Value) PtrSetString(path string, s string, opts ...*PointerOptions) error {
	return v.ptrWriteBuilt("ptr_set_string", path, false, stringNode(s), opts)
}

// PtrSetNull stores null at path.
func (v *Value) PtrSetNull(path string, opts ...*PointerOptions) error {
	return v.ptrWriteBuilt("ptr_set_null", path, false, nullNode(), opts)
}

// PtrAdd follows RFC 6902 "add": objects get the key inserted or replaced,
// arrays get val inserted before the index, or appended for "-".
func (v *Value) PtrAdd(path string, val *Value, opts ...*PointerOptions) error {
	return v.ptrWriteValue("ptr_add", path, true, val, opts)
}

// PtrAddBool adds a boolean at path.
func (v *Value) PtrAddBool(path string, b bool, opts ...*PointerOptions) error {
	return v.ptrWriteBuilt("ptr_add_bool", path, true, boolNode(b), opts)
}

// PtrAddInt adds an int at path.
func (v *Value) PtrAddInt(path string, n int, opts ...*PointerOptions) error {
	return v.ptrWriteBuilt("ptr_add_int", path, true, intNode(int64(n)), opts)
}

// PtrAddInt64 adds an int64 at path.
func (v *Value) PtrAddInt64(path string, n int64, opts ...*PointerOptions) error {
	return v.ptrWriteBuilt("ptr_add_int64", path, true, intNode(n), opts)
}

// PtrAddInt64String adds an integer given as decimal text at path.
func (v *Value) PtrAddInt64String(path string, s string, opts ...*PointerOptions) error {
	b, err := int64StringNode("ptr_add_int64", s)
	if err != nil {
		return err
	}
	return v.ptrWriteBuilt("ptr_add_int64", path, true, b, opts)
}

// PtrAddFloat adds a real at path.
func (v *Value) PtrAddFloat(path string, f float64, opts ...*PointerOptions) error {
	if err := v.check(); err != nil {
		return err
	}
	if err := v.doc.proc.checkFloat("ptr_add_float", f); err != nil {
		return err
	}
	return v.ptrWriteBuilt("ptr_add_float", path, true, floatNode(f), opts)
}

// PtrAddString adds a string at path.
func (v *Value) PtrAddString(path string, s string, opts ...*PointerOptions) error {
	return v.ptrWriteBuilt("ptr_add_string", path, true, stringNode(s), opts)
}

// PtrAddNull adds null at path.
func (v *Value) PtrAddNull(path string, opts ...*PointerOptions) error {
	return v.ptrWriteBuilt("ptr_add_null", path, true, nullNode(), opts)
}

// PtrRemove deletes the value at path. For objects only the first pair with
// the key is removed.
func (v *Value) PtrRemove(path string) error {
	root, err := v.mutable("ptr_remove")
	if err != nil {
		return err
	}
	toks, fault := internal.ParsePointer(path)
	if fault != nil {
		return newPointerError(fault)
	}
	if len(toks) == 0 {
		return &PointerError{Code: PointerSetRoot, Message: "cannot remove the addressed value itself", Pos: 0}
	}
	last := len(toks) - 1
	cur := root
	for i := 0; i < last; i++ {
		next := mutChild(cur, toks[i])
		if next == nil {
			return resolveFailure(toks, i)
		}
		cur = next
	}
	tok := toks[last]
	switch cur.Kind() {
	case internal.KindObject:
		if _, idx := cur.Lookup(tok.Key); idx >= 0 {
			cur.RemovePair(idx)
			return nil
		}
	case internal.KindArray:
		if tok.Index >= 0 && tok.Index < cur.Len() {
			cur.RemoveRange(tok.Index, tok.Index+1)
			return nil
		}
	}
	return resolveFailure(toks, last)
}
