package internal

// Kind is the type tag of a JSON value. Numbering follows yyjson so that the
// values reported to host scripts stay stable across versions.
type Kind uint8

const (
	KindNone   Kind = 0
	KindNull   Kind = 2
	KindBool   Kind = 3
	KindNumber Kind = 4
	KindString Kind = 5
	KindArray  Kind = 6
	KindObject Kind = 7
)

// Subtype refines a Kind: true/false for booleans, uint/sint/real for numbers.
type Subtype uint8

const (
	SubNone  Subtype = 0
	SubFalse Subtype = 0
	SubTrue  Subtype = 1 << 3
	SubUint  Subtype = 0
	SubSint  Subtype = 1 << 3
	SubReal  Subtype = 2 << 3
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "none"
	}
}

// IsContainer reports whether values of kind k hold children.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject
}

// TypeName returns the human-readable name of a kind/subtype pair, as used in
// type mismatch messages ("uint", "real", "true", ...).
func TypeName(k Kind, s Subtype) string {
	switch k {
	case KindBool:
		if s == SubTrue {
			return "true"
		}
		return "false"
	case KindNumber:
		switch s {
		case SubSint:
			return "sint"
		case SubReal:
			return "real"
		default:
			return "uint"
		}
	default:
		return k.String()
	}
}
