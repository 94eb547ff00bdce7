package internal

import "math"

// CopyInto deep-copies src (of either representation) into dst. The result is
// owned by dst and detached; attaching it is up to the caller.
func CopyInto(dst *MutDoc, src Node) *MutVal {
	switch src.Kind() {
	case KindNull:
		return dst.NewNull()
	case KindBool:
		return dst.NewBool(src.Bool())
	case KindNumber:
		switch src.Subtype() {
		case SubSint:
			return dst.NewSint(src.Sint())
		case SubReal:
			return dst.NewReal(src.Real())
		default:
			return dst.NewUint(src.Uint())
		}
	case KindString:
		return dst.NewStr(src.Str())
	case KindArray:
		arr := dst.NewArr()
		arr.arr = make([]*MutVal, 0, src.Len())
		src.Range(func(_ int, _ string, v Node) bool {
			arr.Append(CopyInto(dst, v))
			return true
		})
		return arr
	case KindObject:
		obj := dst.NewObj()
		obj.obj = make([]MutPair, 0, src.Len())
		src.Range(func(_ int, key string, v Node) bool {
			obj.AddPair(key, CopyInto(dst, v))
			return true
		})
		return obj
	}
	return dst.NewNull()
}

// CopyDoc builds a new mutable document whose root is a copy of src.
func CopyDoc(src Node) *MutDoc {
	doc := NewMutDoc()
	if src != nil {
		doc.SetRoot(CopyInto(doc, src))
	}
	return doc
}

// Freeze flattens src into a new immutable arena.
func Freeze(src Node) *ImmDoc {
	doc := &ImmDoc{slots: make([]immSlot, 0, 16)}
	if src != nil {
		freeze(doc, src)
	}
	return doc
}

func freeze(doc *ImmDoc, n Node) {
	switch n.Kind() {
	case KindArray:
		idx := doc.push(immSlot{kind: KindArray})
		n.Range(func(_ int, _ string, v Node) bool {
			freeze(doc, v)
			return true
		})
		doc.close(idx, n.Len())
	case KindObject:
		idx := doc.push(immSlot{kind: KindObject})
		n.Range(func(_ int, key string, v Node) bool {
			doc.push(immSlot{kind: KindString, str: key})
			freeze(doc, v)
			return true
		})
		doc.close(idx, n.Len())
	case KindNumber:
		s := immSlot{kind: KindNumber, sub: n.Subtype()}
		switch n.Subtype() {
		case SubSint:
			s.num = uint64(n.Sint())
		case SubReal:
			s.num = math.Float64bits(n.Real())
		default:
			s.num = n.Uint()
		}
		doc.push(s)
	case KindString:
		doc.push(immSlot{kind: KindString, str: n.Str()})
	default:
		doc.push(immSlot{kind: n.Kind(), sub: n.Subtype()})
	}
}
