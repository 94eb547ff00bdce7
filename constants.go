package jsondoc

import (
	"time"

	"github.com/cybergodev/jsondoc/internal"
)

const (
	// Operation Limits
	DefaultMaxJSONSize     = 10 * 1024 * 1024
	DefaultMaxNestingDepth = internal.DefaultMaxDepth
	DefaultMaxHandles      = 16384
	MaxHandles             = 1<<16 - 1
	DefaultWorkers         = 4
	DefaultFilePerm        = 0o644
	DefaultDirPerm         = 0o755

	// Path Validation
	MaxPathLength = internal.MaxPathLength

	// Epsilons used by IndexOfFloat.
	FloatRelEpsilon = 1e-6
	FloatAbsEpsilon = 1e-15

	SlowOperationThreshold = 100 * time.Millisecond
)

// Type is the type tag of a JSON value.
type Type = internal.Kind

const (
	TypeNone   Type = internal.KindNone
	TypeNull   Type = internal.KindNull
	TypeBool   Type = internal.KindBool
	TypeNumber Type = internal.KindNumber
	TypeString Type = internal.KindString
	TypeArray  Type = internal.KindArray
	TypeObject Type = internal.KindObject
)

// Subtype refines a Type: false/true for booleans, uint/sint/real for numbers.
type Subtype = internal.Subtype

const (
	SubtypeNone  Subtype = internal.SubNone
	SubtypeFalse Subtype = internal.SubFalse
	SubtypeTrue  Subtype = internal.SubTrue
	SubtypeUint  Subtype = internal.SubUint
	SubtypeSint  Subtype = internal.SubSint
	SubtypeReal  Subtype = internal.SubReal
)

// ReadFlag controls parser leniency.
type ReadFlag = internal.ReadFlag

const (
	ReadNoFlag              ReadFlag = internal.ReadNoFlag
	ReadStopWhenDone        ReadFlag = internal.ReadStopWhenDone
	ReadAllowTrailingCommas ReadFlag = internal.ReadAllowTrailingCommas
	ReadAllowComments       ReadFlag = internal.ReadAllowComments
	ReadAllowInfAndNaN      ReadFlag = internal.ReadAllowInfAndNaN
	ReadAllowInvalidUnicode ReadFlag = internal.ReadAllowInvalidUnicode
	// ReadJSON5 is the lenient combination used for hand-written files.
	ReadJSON5 ReadFlag = ReadAllowTrailingCommas | ReadAllowComments | ReadAllowInfAndNaN
)

// WriteFlag controls serialization.
type WriteFlag = internal.WriteFlag

const (
	WriteNoFlag              WriteFlag = internal.WriteNoFlag
	WritePretty              WriteFlag = internal.WritePretty
	WriteEscapeUnicode       WriteFlag = internal.WriteEscapeUnicode
	WriteEscapeSlashes       WriteFlag = internal.WriteEscapeSlashes
	WriteAllowInfAndNaN      WriteFlag = internal.WriteAllowInfAndNaN
	WriteInfAndNaNAsNull     WriteFlag = internal.WriteInfAndNaNAsNull
	WriteAllowInvalidUnicode WriteFlag = internal.WriteAllowInvalidUnicode
	WritePrettyTwoSpaces     WriteFlag = internal.WritePrettyTwoSpaces
	WriteNewlineAtEnd        WriteFlag = internal.WriteNewlineAtEnd
)

// ReadCode classifies parse failures.
type ReadCode = internal.ReadCode

const (
	ReadOK                  ReadCode = internal.ReadOK
	ReadInvalidParameter    ReadCode = internal.ReadInvalidParameter
	ReadEmptyContent        ReadCode = internal.ReadEmptyContent
	ReadUnexpectedContent   ReadCode = internal.ReadUnexpectedContent
	ReadUnexpectedEnd       ReadCode = internal.ReadUnexpectedEnd
	ReadUnexpectedCharacter ReadCode = internal.ReadUnexpectedCharacter
	ReadJSONStructure       ReadCode = internal.ReadJSONStructure
	ReadInvalidComment      ReadCode = internal.ReadInvalidComment
	ReadInvalidNumber       ReadCode = internal.ReadInvalidNumber
	ReadInvalidString       ReadCode = internal.ReadInvalidString
	ReadLiteral             ReadCode = internal.ReadLiteral
	ReadFileOpen            ReadCode = internal.ReadFileOpen
	ReadFileRead            ReadCode = internal.ReadFileRead
)

// WriteCode classifies serialization failures.
type WriteCode = internal.WriteCode

const (
	WriteOK               WriteCode = internal.WriteOK
	WriteInvalidParameter WriteCode = internal.WriteInvalidParameter
	WriteInvalidValueType WriteCode = internal.WriteInvalidValueType
	WriteNaNOrInf         WriteCode = internal.WriteNaNOrInf
	WriteFileOpen         WriteCode = internal.WriteFileOpen
	WriteFileWrite        WriteCode = internal.WriteFileWrite
	WriteInvalidString    WriteCode = internal.WriteInvalidString
)

// PointerCode classifies JSON Pointer failures.
type PointerCode = internal.PtrCode

const (
	PointerOK        PointerCode = internal.PtrOK
	PointerParameter PointerCode = internal.PtrParameter
	PointerSyntax    PointerCode = internal.PtrSyntax
	PointerResolve   PointerCode = internal.PtrResolve
	PointerNullRoot  PointerCode = internal.PtrNullRoot
	PointerSetRoot   PointerCode = internal.PtrSetRoot
)

// SortMode selects the order produced by SortArray and SortObject.
type SortMode int

const (
	SortAscending SortMode = iota
	SortDescending
	SortRandom
)

func (m SortMode) String() string {
	switch m {
	case SortAscending:
		return "ascending"
	case SortDescending:
		return "descending"
	case SortRandom:
		return "random"
	default:
		return "unknown"
	}
}
