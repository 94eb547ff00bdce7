package jsondoc

import (
	"github.com/cybergodev/jsondoc/internal"
)

func (v *Value) object(op string) (internal.Node, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	if v.node.Kind() != internal.KindObject {
		return nil, typeMismatch(op, "object", v.node)
	}
	return v.node, nil
}

func (v *Value) mutObject(op string) (*internal.MutVal, error) {
	m, err := v.mutable(op)
	if err != nil {
		return nil, err
	}
	if m.Kind() != internal.KindObject {
		return nil, typeMismatch(op, "object", m)
	}
	return m, nil
}

func (v *Value) member(op, key string) (internal.Node, error) {
	obj, err := v.object(op)
	if err != nil {
		return nil, err
	}
	n, ok := obj.Get(key)
	if !ok {
		return nil, &KeyError{Key: key, Err: ErrKeyNotFound}
	}
	return n, nil
}

// Get returns a view of the value stored under key. With duplicate keys the
// first pair wins.
func (v *Value) Get(key string) (*Value, error) {
	n, err := v.member("object_get", key)
	if err != nil {
		return nil, err
	}
	return v.view(n), nil
}

// GetBool returns the value of key as a bool.
func (v *Value) GetBool(key string) (bool, error) {
	n, err := v.member("object_get_bool", key)
	if err != nil {
		return false, err
	}
	return nodeBool("object_get_bool", n)
}

// GetInt returns the value of key as an int.
func (v *Value) GetInt(key string) (int, error) {
	n, err := v.member("object_get_int", key)
	if err != nil {
		return 0, err
	}
	return nodeInt("object_get_int", n)
}

// GetInt64 returns the value of key as an int64.
func (v *Value) GetInt64(key string) (int64, error) {
	n, err := v.member("object_get_int64", key)
	if err != nil {
		return 0, err
	}
	return nodeInt64("object_get_int64", n)
}

// GetUint64 returns the value of key as a uint64.
func (v *Value) GetUint64(key string) (uint64, error) {
	n, err := v.member("object_get_uint64", key)
	if err != nil {
		return 0, err
	}
	return nodeUint64("object_get_uint64", n)
}

// GetInt64String returns the value of key as decimal integer text.
func (v *Value) GetInt64String(key string) (string, error) {
	n, err := v.member("object_get_int64", key)
	if err != nil {
		return "", err
	}
	return nodeInt64String("object_get_int64", n)
}

// GetFloat returns the value of key as a float64.
func (v *Value) GetFloat(key string) (float64, error) {
	n, err := v.member("object_get_float", key)
	if err != nil {
		return 0, err
	}
	return nodeFloat("object_get_float", n)
}

// GetString returns the value of key as a string.
func (v *Value) GetString(key string) (string, error) {
	n, err := v.member("object_get_string", key)
	if err != nil {
		return "", err
	}
	return nodeString("object_get_string", n)
}

// IsNullKey reports whether the value stored under key is null.
func (v *Value) IsNullKey(key string) (bool, error) {
	n, err := v.member("object_is_null", key)
	if err != nil {
		return false, err
	}
	return n.Kind() == internal.KindNull, nil
}

// KeyAt returns the key of the i-th pair.
func (v *Value) KeyAt(i int) (string, error) {
	obj, err := v.object("object_get_key")
	if err != nil {
		return "", err
	}
	if i < 0 || i >= obj.Len() {
		return "", &IndexError{Index: i, Size: obj.Len()}
	}
	return obj.KeyAt(i), nil
}

// ValueAt returns a view of the value of the i-th pair.
func (v *Value) ValueAt(i int) (*Value, error) {
	obj, err := v.object("object_get_value_at")
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= obj.Len() {
		return nil, &IndexError{Index: i, Size: obj.Len()}
	}
	return v.view(obj.ValueAt(i)), nil
}

// HasKey reports whether the object has a pair with the given key.
func (v *Value) HasKey(key string) (bool, error) {
	obj, err := v.object("object_has_key")
	if err != nil {
		return false, err
	}
	_, ok := obj.Get(key)
	return ok, nil
}

// HasKeyOfType reports whether key exists and holds a value of type t.
func (v *Value) HasKeyOfType(key string, t Type) (bool, error) {
	obj, err := v.object("object_has_key")
	if err != nil {
		return false, err
	}
	n, ok := obj.Get(key)
	return ok && n.Kind() == t, nil
}

// RenameKey changes the key of the first pair named oldKey. Unless
// allowDuplicate is set, renaming onto a key that already exists fails with
// ErrDuplicateKey.
func (v *Value) RenameKey(oldKey, newKey string, allowDuplicate bool) error {
	obj, err := v.mutObject("object_rename_key")
	if err != nil {
		return err
	}
	_, idx := obj.Lookup(oldKey)
	if idx < 0 {
		return &KeyError{Key: oldKey, Err: ErrKeyNotFound}
	}
	if oldKey == newKey {
		return nil
	}
	if !allowDuplicate {
		if _, dup := obj.Lookup(newKey); dup >= 0 {
			return &KeyError{Key: newKey, Err: ErrDuplicateKey}
		}
	}
	obj.RenameKey(idx, newKey)
	return nil
}

func (v *Value) putNode(op, key string, produce func(obj *internal.MutVal) (*internal.MutVal, error)) error {
	obj, err := v.mutObject(op)
	if err != nil {
		return err
	}
	child, err := produce(obj)
	if err != nil {
		return err
	}
	obj.Put(key, child)
	return nil
}

func (v *Value) putBuilt(op, key string, b builder) error {
	return v.putNode(op, key, func(*internal.MutVal) (*internal.MutVal, error) {
		return b(v.doc.mut), nil
	})
}

// Set stores val under key, replacing the first pair with that key or
// appending a new pair. val is copied when it is already attached elsewhere.
func (v *Value) Set(key string, val *Value) error {
	return v.putNode("object_set", key, func(obj *internal.MutVal) (*internal.MutVal, error) {
		return v.adopt(obj, val)
	})
}

// SetBool sets key to a boolean.
func (v *Value) SetBool(key string, b bool) error {
	return v.putBuilt("object_set_bool", key, boolNode(b))
}

// SetInt sets key to an int.
func (v *Value) SetInt(key string, n int) error {
	return v.putBuilt("object_set_int", key, intNode(int64(n)))
}

// SetInt64 sets key to an int64.
func (v *Value) SetInt64(key string, n int64) error {
	return v.putBuilt("object_set_int64", key, intNode(n))
}

// SetUint64 sets key to a uint64.
func (v *Value) SetUint64(key string, n uint64) error {
	return v.putBuilt("object_set_uint64", key, uintNode(n))
}

// SetInt64String sets key to an integer given as decimal text.
func (v *Value) SetInt64String(key string, s string) error {
	b, err := int64StringNode("object_set_int64", s)
	if err != nil {
		return err
	}
	return v.putBuilt("object_set_int64", key, b)
}

// SetFloat sets key to a real.
func (v *Value) SetFloat(key string, f float64) error {
	if err := v.check(); err != nil {
		return err
	}
	if err := v.doc.proc.checkFloat("object_set_float", f); err != nil {
		return err
	}
	return v.putBuilt("object_set_float", key, floatNode(f))
}

// SetString sets key to a string.
func (v *Value) SetString(key string, s string) error {
	return v.putBuilt("object_set_string", key, stringNode(s))
}

// SetNull sets key to null.
func (v *Value) SetNull(key string) error {
	return v.putBuilt("object_set_null", key, nullNode())
}

// Remove deletes every pair named key.
func (v *Value) Remove(key string) error {
	obj, err := v.mutObject("object_remove")
	if err != nil {
		return err
	}
	if obj.RemoveKey(key) == 0 {
		return &KeyError{Key: key, Err: ErrKeyNotFound}
	}
	return nil
}
