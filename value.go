package jsondoc

import (
	"errors"

	"github.com/cybergodev/jsondoc/internal"
)

// Value addresses one node of a Document. Values are cheap views: getting a
// child, indexing an array or iterating creates a new Value that shares the
// same Document, and edits made through one view are visible through every
// other view of that document.
//
// Every Value must be closed. The Document stays alive until the last Value
// sharing it is closed; nodes themselves are never owned by a Value.
type Value struct {
	doc      *Document
	node     internal.Node
	iter     cursor
	readSize int
	handle   Handle
	owner    *Identity
	closed   bool
}

func newValue(doc *Document, node internal.Node) *Value {
	doc.retain()
	return &Value{doc: doc, node: node}
}

// view derives a Value sharing v's document.
func (v *Value) view(n internal.Node) *Value {
	return newValue(v.doc, n)
}

// Close releases the Value. If it is bound to a handle, the handle is
// destroyed as well. Closing twice is a no-op.
func (v *Value) Close() error {
	if v == nil || v.closed {
		return nil
	}
	if h := v.handle; h != InvalidHandle {
		// a handle the table refused to destroy still points at v
		if err := v.doc.proc.CloseHandle(h); err != nil && !handleGone(err) {
			return err
		}
	}
	v.release()
	return nil
}

// handleGone reports whether err says the handle no longer names any slot.
func handleGone(err error) bool {
	var he *HandleError
	if !errors.As(err, &he) {
		return false
	}
	switch he.Code {
	case HandleFreed, HandleChanged, HandleBadIndex:
		return true
	}
	return false
}

func (v *Value) release() {
	if v.closed {
		return
	}
	v.closed = true
	v.handle = InvalidHandle
	v.owner = nil
	v.iter = cursor{}
	v.node = nil
	doc := v.doc
	v.doc = nil
	doc.release()
}

// Closed reports whether Close has been called.
func (v *Value) Closed() bool {
	return v == nil || v.closed
}

func (v *Value) check() error {
	if v == nil || v.closed {
		return ErrValueClosed
	}
	return nil
}

// mutable returns the addressed node for an edit, rejecting values of
// immutable documents.
func (v *Value) mutable(op string) (*internal.MutVal, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	if !v.doc.Mutable() {
		return nil, immutableError(op)
	}
	return v.node.(*internal.MutVal), nil
}

// Document returns the document v addresses, nil once v is closed.
func (v *Value) Document() *Document {
	if v == nil {
		return nil
	}
	return v.doc
}

// Handle returns the handle bound to v, InvalidHandle if none.
func (v *Value) Handle() Handle {
	if v == nil {
		return InvalidHandle
	}
	return v.handle
}

// Type returns the type tag of the value, TypeNone once closed.
func (v *Value) Type() Type {
	if v.check() != nil {
		return TypeNone
	}
	return v.node.Kind()
}

// Subtype returns the subtype of booleans and numbers.
func (v *Value) Subtype() Subtype {
	if v.check() != nil {
		return SubtypeNone
	}
	return v.node.Subtype()
}

// TypeName returns the name used in type mismatch messages: "object",
// "true", "sint", ...
func (v *Value) TypeName() string {
	if v.check() != nil {
		return TypeNone.String()
	}
	return internal.NameOf(v.node)
}

func (v *Value) is(t Type) bool { return v.Type() == t }

// IsNull reports whether v is null.
func (v *Value) IsNull() bool { return v.is(TypeNull) }

// IsBool reports whether v is a boolean.
func (v *Value) IsBool() bool { return v.is(TypeBool) }

// IsTrue reports whether v is true.
func (v *Value) IsTrue() bool { return v.is(TypeBool) && v.node.Subtype() == SubtypeTrue }

// IsFalse reports whether v is false.
func (v *Value) IsFalse() bool { return v.is(TypeBool) && v.node.Subtype() == SubtypeFalse }

// IsNumber reports whether v is a number.
func (v *Value) IsNumber() bool { return v.is(TypeNumber) }

// IsInt reports whether v is an integer of either sign.
func (v *Value) IsInt() bool { return v.is(TypeNumber) && v.node.Subtype() != SubtypeReal }

// IsUint reports whether v is an unsigned integer.
func (v *Value) IsUint() bool { return v.is(TypeNumber) && v.node.Subtype() == SubtypeUint }

// IsSint reports whether v is a signed integer.
func (v *Value) IsSint() bool { return v.is(TypeNumber) && v.node.Subtype() == SubtypeSint }

// IsFloat reports whether v is a real.
func (v *Value) IsFloat() bool { return v.is(TypeNumber) && v.node.Subtype() == SubtypeReal }

// IsString reports whether v is a string.
func (v *Value) IsString() bool { return v.is(TypeString) }

// IsArray reports whether v is an array.
func (v *Value) IsArray() bool { return v.is(TypeArray) }

// IsObject reports whether v is an object.
func (v *Value) IsObject() bool { return v.is(TypeObject) }

// IsContainer reports whether the value is an array or an object.
func (v *Value) IsContainer() bool { return v.Type().IsContainer() }

// IsMutable reports whether the value belongs to an editable document.
func (v *Value) IsMutable() bool { return v.check() == nil && v.doc.Mutable() }

// IsImmutable reports whether the value belongs to a read-only document.
func (v *Value) IsImmutable() bool { return v.check() == nil && !v.doc.Mutable() }

// ReadSize is the number of input bytes consumed by the parse that created
// the value, zero for values that were not produced by a parse.
func (v *Value) ReadSize() int {
	if v == nil {
		return 0
	}
	return v.readSize
}

// Parent returns a view of the container holding v. It fails with
// ErrNoParent for document roots and detached values.
func (v *Value) Parent() (*Value, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	if m, ok := v.node.(*internal.MutVal); ok {
		if p := m.Parent(); p != nil {
			return v.view(p), nil
		}
		return nil, newOperationError("parent", "value is a root or detached", ErrNoParent)
	}
	if p, ok := internal.ParentOf(v.doc.imm.Root(), v.node, internal.SameImm); ok {
		return v.view(p), nil
	}
	return nil, newOperationError("parent", "value is the document root", ErrNoParent)
}

// ToMutable copies the value into a new mutable document. Values that are
// already mutable are copied as well, so the result never aliases v.
func (v *Value) ToMutable() (*Value, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	doc := v.doc.proc.newDocument(internal.CopyDoc(v.node), nil)
	return newValue(doc, doc.mut.Root()), nil
}

// ToImmutable freezes a copy of the value into a new read-only document.
func (v *Value) ToImmutable() (*Value, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	doc := v.doc.proc.newDocument(nil, internal.Freeze(v.node))
	return newValue(doc, doc.imm.Root()), nil
}

// Clone copies the value into a new document of the same kind.
func (v *Value) Clone() (*Value, error) {
	if v.IsImmutable() {
		return v.ToImmutable()
	}
	return v.ToMutable()
}

// DeepCopy copies source into v's document and returns a Value addressing
// the copy. The copy is detached: it becomes part of the tree once it is
// appended or set somewhere, which then happens without a second copy.
func (v *Value) DeepCopy(source *Value) (*Value, error) {
	if _, err := v.mutable("deep_copy"); err != nil {
		return nil, err
	}
	if err := source.check(); err != nil {
		return nil, err
	}
	return v.view(internal.CopyInto(v.doc.mut, source.node)), nil
}

// Equal reports deep structural equality. Values of mutable and immutable
// documents compare by content; integers compare by numeric value, and an
// integer never equals a float.
func (v *Value) Equal(other *Value) bool {
	if v.check() != nil || other.check() != nil {
		return false
	}
	return internal.Equal(v.node, other.node)
}

// Validate checks v against a schema value: null in the schema matches
// anything, other types must match; every key of an object schema must be
// present with a valid value; every element of an array must match the
// first element of an array schema.
func (v *Value) Validate(schema *Value) (bool, error) {
	if err := v.check(); err != nil {
		return false, err
	}
	if err := schema.check(); err != nil {
		return false, err
	}
	return internal.Validate(schema.node, v.node), nil
}

// Lookup resolves a dot-notation path such as "users[0].name" or "items.-1"
// below v. Negative indices count from the end of an array.
func (v *Value) Lookup(path string) (*Value, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	if len(path) > internal.MaxDotPathLength {
		return nil, newPathError("lookup", truncateString(path, 100), "path too long", ErrSizeLimit)
	}
	segments, err := internal.ParsePath(path)
	if err != nil {
		return nil, newPathError("lookup", path, err.Error(), ErrOperationFailed)
	}
	n, failed := internal.WalkPath(v.node, segments)
	if failed >= 0 {
		return nil, newPathError("lookup", path, "segment "+segments[failed].String()+" not found", ErrKeyNotFound)
	}
	return v.view(n), nil
}
