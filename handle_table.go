package jsondoc

import (
	"fmt"
	"sync"
)

// Handle is an opaque token standing for one live Value. The zero Handle is
// never issued.
type Handle uint32

// InvalidHandle is the zero handle.
const InvalidHandle Handle = 0

// HandleType distinguishes the kinds of objects stored in a handle table.
type HandleType uint32

// HandleCode is the reason a handle table rejected a request.
type HandleCode int

// Handle table result codes, numbered as the host's HandleError values.
const (
	HandleOK           HandleCode = iota // no error
	HandleChanged                        // the slot was freed and reused
	HandleBadType                        // the handle is of another type
	HandleFreed                          // the handle was destroyed
	HandleBadIndex                       // no slot has this index
	HandleAccessDenied                   // the caller may not read the handle
	HandleLimit                          // the table is full
	HandleBadIdentity                    // the identity did not register the type
	HandleBadOwner                       // the owner does not match
	HandleBadVersion                     // the caller's version is unsupported
	HandleBadParameter                   // a required argument is missing
	HandleNoType                         // the handle type is not registered
)

// String returns a short description of the code.
func (c HandleCode) String() string {
	switch c {
	case HandleOK:
		return "ok"
	case HandleChanged:
		return "handle was replaced"
	case HandleBadType:
		return "wrong handle type"
	case HandleFreed:
		return "handle was freed"
	case HandleBadIndex:
		return "invalid handle index"
	case HandleAccessDenied:
		return "access denied"
	case HandleLimit:
		return "handle limit reached"
	case HandleBadIdentity:
		return "identity mismatch"
	case HandleBadOwner:
		return "owner mismatch"
	case HandleBadVersion:
		return "unsupported version"
	case HandleBadParameter:
		return "invalid parameter"
	case HandleNoType:
		return "no such handle type"
	default:
		return "unknown handle error"
	}
}

// Identity is an unforgeable token naming a party that owns handles or
// handle types. Identities compare by pointer.
type Identity struct {
	name string
}

// NewIdentity creates a fresh identity. Two calls with the same name yield
// distinct identities.
func NewIdentity(name string) *Identity {
	return &Identity{name: name}
}

func (id *Identity) String() string {
	if id == nil {
		return "<nil identity>"
	}
	return id.name
}

// Security carries the caller's identities into a handle table request.
// Owner is the party the handle is created for; Identity is the party that
// registered the handle type.
type Security struct {
	Owner    *Identity
	Identity *Identity
}

// Finalizer is invoked once for every object whose handle is destroyed,
// including handles swept when their type is removed.
type Finalizer func(t HandleType, object any)

// HandleSystem is the contract of a host handle table: typed, access
// controlled handles with a per-type finalizer.
type HandleSystem interface {
	CreateType(name string, finalize Finalizer, ident *Identity) (HandleType, error)
	RemoveType(t HandleType, ident *Identity) error
	Create(t HandleType, object any, sec Security) (Handle, error)
	Read(h Handle, t HandleType, sec Security) (any, error)
	Destroy(h Handle, sec Security) error
}

type handleSlot struct {
	used   bool
	serial uint16
	typ    HandleType
	object any
	owner  *Identity
}

type handleTypeEntry struct {
	name     string
	finalize Finalizer
	ident    *Identity
}

// HandleTable is an in-process HandleSystem. A handle packs a 16-bit serial
// number above a 16-bit slot index, so a stale handle whose slot has been
// reused is detected instead of silently resolving to the new object.
type HandleTable struct {
	mu       sync.Mutex
	slots    []handleSlot
	free     []int
	serial   uint16
	types    map[HandleType]*handleTypeEntry
	nextType HandleType
	max      int
}

// NewHandleTable creates a table holding at most max live handles.
func NewHandleTable(max int) *HandleTable {
	if max <= 0 || max > MaxHandles {
		max = MaxHandles
	}
	return &HandleTable{
		slots: make([]handleSlot, 1, 64),
		types: make(map[HandleType]*handleTypeEntry),
		max:   max,
	}
}

func handleError(h Handle, code HandleCode) error {
	return &HandleError{Handle: h, Code: code}
}

// CreateType registers a handle type owned by ident.
func (ht *HandleTable) CreateType(name string, finalize Finalizer, ident *Identity) (HandleType, error) {
	if name == "" || ident == nil {
		return 0, handleError(InvalidHandle, HandleBadParameter)
	}
	ht.mu.Lock()
	defer ht.mu.Unlock()
	for _, t := range ht.types {
		if t.name == name {
			return 0, newOperationError("create_handle_type", fmt.Sprintf("handle type %q already exists", name), ErrDuplicateKey)
		}
	}
	ht.nextType++
	ht.types[ht.nextType] = &handleTypeEntry{name: name, finalize: finalize, ident: ident}
	return ht.nextType, nil
}

// RemoveType unregisters a type and destroys every handle still open for it.
func (ht *HandleTable) RemoveType(t HandleType, ident *Identity) error {
	ht.mu.Lock()
	entry, ok := ht.types[t]
	if !ok {
		ht.mu.Unlock()
		return handleError(InvalidHandle, HandleNoType)
	}
	if entry.ident != ident {
		ht.mu.Unlock()
		return handleError(InvalidHandle, HandleBadIdentity)
	}
	var swept []any
	for i := 1; i < len(ht.slots); i++ {
		s := &ht.slots[i]
		if s.used && s.typ == t {
			swept = append(swept, s.object)
			ht.release(i)
		}
	}
	delete(ht.types, t)
	ht.mu.Unlock()

	if entry.finalize != nil {
		for _, obj := range swept {
			entry.finalize(t, obj)
		}
	}
	return nil
}

// Create stores object under a new handle of type t.
func (ht *HandleTable) Create(t HandleType, object any, sec Security) (Handle, error) {
	if object == nil {
		return InvalidHandle, handleError(InvalidHandle, HandleBadParameter)
	}
	ht.mu.Lock()
	defer ht.mu.Unlock()

	entry, ok := ht.types[t]
	if !ok {
		return InvalidHandle, handleError(InvalidHandle, HandleNoType)
	}
	if entry.ident != sec.Identity {
		return InvalidHandle, handleError(InvalidHandle, HandleBadIdentity)
	}

	var idx int
	switch {
	case len(ht.free) > 0:
		idx = ht.free[len(ht.free)-1]
		ht.free = ht.free[:len(ht.free)-1]
	case len(ht.slots)-1 < ht.max:
		ht.slots = append(ht.slots, handleSlot{})
		idx = len(ht.slots) - 1
	default:
		return InvalidHandle, handleError(InvalidHandle, HandleLimit)
	}

	ht.serial++
	if ht.serial == 0 {
		ht.serial = 1
	}
	ht.slots[idx] = handleSlot{used: true, serial: ht.serial, typ: t, object: object, owner: sec.Owner}
	return Handle(uint32(ht.serial)<<16 | uint32(idx)), nil
}

// lookup validates h and returns its slot index. Callers hold mu.
func (ht *HandleTable) lookup(h Handle) (int, error) {
	idx := int(h & 0xFFFF)
	serial := uint16(h >> 16)
	if idx == 0 || idx >= len(ht.slots) {
		return 0, handleError(h, HandleBadIndex)
	}
	s := &ht.slots[idx]
	if !s.used {
		return 0, handleError(h, HandleFreed)
	}
	if s.serial != serial {
		return 0, handleError(h, HandleChanged)
	}
	return idx, nil
}

// Read returns the object behind h. Only the identity that registered the
// handle type may read its handles.
func (ht *HandleTable) Read(h Handle, t HandleType, sec Security) (any, error) {
	ht.mu.Lock()
	defer ht.mu.Unlock()

	idx, err := ht.lookup(h)
	if err != nil {
		return nil, err
	}
	s := &ht.slots[idx]
	if s.typ != t {
		return nil, handleError(h, HandleBadType)
	}
	if entry := ht.types[t]; entry == nil || entry.ident != sec.Identity {
		return nil, handleError(h, HandleAccessDenied)
	}
	return s.object, nil
}

// Destroy frees h and runs its type's finalizer. Any caller may destroy a
// handle.
func (ht *HandleTable) Destroy(h Handle, sec Security) error {
	ht.mu.Lock()
	idx, err := ht.lookup(h)
	if err != nil {
		ht.mu.Unlock()
		return err
	}
	s := ht.slots[idx]
	ht.release(idx)
	entry := ht.types[s.typ]
	ht.mu.Unlock()

	if entry != nil && entry.finalize != nil {
		entry.finalize(s.typ, s.object)
	}
	return nil
}

// Owner reports the identity a handle was created for.
func (ht *HandleTable) Owner(h Handle) (*Identity, error) {
	ht.mu.Lock()
	defer ht.mu.Unlock()
	idx, err := ht.lookup(h)
	if err != nil {
		return nil, err
	}
	return ht.slots[idx].owner, nil
}

// Len is the number of live handles.
func (ht *HandleTable) Len() int {
	ht.mu.Lock()
	defer ht.mu.Unlock()
	return len(ht.slots) - 1 - len(ht.free)
}

func (ht *HandleTable) release(idx int) {
	serial := ht.slots[idx].serial
	ht.slots[idx] = handleSlot{serial: serial}
	ht.free = append(ht.free, idx)
}
