package internal

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

// WriteFlag controls serialization. Bit values follow yyjson.
type WriteFlag uint32

const (
	WriteNoFlag              WriteFlag = 0
	WritePretty              WriteFlag = 1 << 0
	WriteEscapeUnicode       WriteFlag = 1 << 1
	WriteEscapeSlashes       WriteFlag = 1 << 2
	WriteAllowInfAndNaN      WriteFlag = 1 << 3
	WriteInfAndNaNAsNull     WriteFlag = 1 << 4
	WriteAllowInvalidUnicode WriteFlag = 1 << 5
	WritePrettyTwoSpaces     WriteFlag = 1 << 6
	WriteNewlineAtEnd        WriteFlag = 1 << 7
)

// WriteCode classifies serialization failures. Values follow
// yyjson_write_code.
type WriteCode int

const (
	WriteOK               WriteCode = 0
	WriteInvalidParameter WriteCode = 1
	WriteInvalidValueType WriteCode = 3
	WriteNaNOrInf         WriteCode = 4
	WriteFileOpen         WriteCode = 5
	WriteFileWrite        WriteCode = 6
	WriteInvalidString    WriteCode = 7
)

// EncodeError is a serialization failure.
type EncodeError struct {
	Code WriteCode
	Msg  string
}

func (e *EncodeError) Error() string { return e.Msg }

const hexDigits = "0123456789abcdef"

type writer struct {
	buf    []byte
	flags  WriteFlag
	indent int
}

// Write serializes n according to flags.
func Write(n Node, flags WriteFlag) ([]byte, *EncodeError) {
	return AppendNode(make([]byte, 0, 256), n, flags)
}

// AppendNode serializes n onto dst.
func AppendNode(dst []byte, n Node, flags WriteFlag) ([]byte, *EncodeError) {
	if n == nil {
		return dst, &EncodeError{Code: WriteInvalidParameter, Msg: "no value to write"}
	}
	w := &writer{buf: dst, flags: flags}
	switch {
	case flags&WritePrettyTwoSpaces != 0:
		w.indent = 2
	case flags&WritePretty != 0:
		w.indent = 4
	}
	if err := w.value(n, 0); err != nil {
		return dst, err
	}
	if flags&WriteNewlineAtEnd != 0 {
		w.buf = append(w.buf, '\n')
	}
	return w.buf, nil
}

func (w *writer) newline(level int) {
	if w.indent == 0 {
		return
	}
	w.buf = append(w.buf, '\n')
	for i := 0; i < level*w.indent; i++ {
		w.buf = append(w.buf, ' ')
	}
}

func (w *writer) value(n Node, level int) *EncodeError {
	switch n.Kind() {
	case KindNull:
		w.buf = append(w.buf, "null"...)
	case KindBool:
		w.buf = strconv.AppendBool(w.buf, n.Bool())
	case KindNumber:
		return w.number(n)
	case KindString:
		return w.str(n.Str())
	case KindArray:
		if n.Len() == 0 {
			w.buf = append(w.buf, "[]"...)
			return nil
		}
		w.buf = append(w.buf, '[')
		var err *EncodeError
		n.Range(func(i int, _ string, child Node) bool {
			if i > 0 {
				w.buf = append(w.buf, ',')
			}
			w.newline(level + 1)
			err = w.value(child, level+1)
			return err == nil
		})
		if err != nil {
			return err
		}
		w.newline(level)
		w.buf = append(w.buf, ']')
	case KindObject:
		if n.Len() == 0 {
			w.buf = append(w.buf, "{}"...)
			return nil
		}
		w.buf = append(w.buf, '{')
		var err *EncodeError
		n.Range(func(i int, key string, child Node) bool {
			if i > 0 {
				w.buf = append(w.buf, ',')
			}
			w.newline(level + 1)
			if err = w.str(key); err != nil {
				return false
			}
			w.buf = append(w.buf, ':')
			if w.indent > 0 {
				w.buf = append(w.buf, ' ')
			}
			err = w.value(child, level+1)
			return err == nil
		})
		if err != nil {
			return err
		}
		w.newline(level)
		w.buf = append(w.buf, '}')
	default:
		return &EncodeError{Code: WriteInvalidValueType, Msg: "invalid JSON value type"}
	}
	return nil
}

func (w *writer) number(n Node) *EncodeError {
	switch n.Subtype() {
	case SubUint:
		w.buf = strconv.AppendUint(w.buf, n.Uint(), 10)
	case SubSint:
		w.buf = strconv.AppendInt(w.buf, n.Sint(), 10)
	default:
		w.buf = AppendReal(w.buf, n.Real(), w.flags)
		if f := n.Real(); (math.IsNaN(f) || math.IsInf(f, 0)) && w.flags&(WriteAllowInfAndNaN|WriteInfAndNaNAsNull) == 0 {
			return &EncodeError{Code: WriteNaNOrInf, Msg: "nan or inf number is not allowed"}
		}
	}
	return nil
}

// AppendReal formats f so that it reads back as a real: integral values keep
// a ".0" suffix and exponents are used only for very large or small
// magnitudes.
func AppendReal(dst []byte, f float64, flags WriteFlag) []byte {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		if flags&WriteInfAndNaNAsNull != 0 {
			return append(dst, "null"...)
		}
		switch {
		case math.IsNaN(f):
			return append(dst, "NaN"...)
		case f > 0:
			return append(dst, "Infinity"...)
		default:
			return append(dst, "-Infinity"...)
		}
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, format, -1, 64)
	out := dst[start:]
	if format == 'e' {
		// clean up e-09 to e-9
		if n := len(out); n >= 4 && out[n-4] == 'e' && out[n-3] == '-' && out[n-2] == '0' {
			out[n-2] = out[n-1]
			dst = dst[:len(dst)-1]
		}
		return dst
	}
	for _, c := range out {
		if c == '.' {
			return dst
		}
	}
	return append(dst, ".0"...)
}

func (w *writer) str(s string) *EncodeError {
	w.buf = append(w.buf, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				w.buf = append(w.buf, '\\', c)
			case c == '/' && w.flags&WriteEscapeSlashes != 0:
				w.buf = append(w.buf, '\\', '/')
			case c == '\n':
				w.buf = append(w.buf, '\\', 'n')
			case c == '\r':
				w.buf = append(w.buf, '\\', 'r')
			case c == '\t':
				w.buf = append(w.buf, '\\', 't')
			case c == '\b':
				w.buf = append(w.buf, '\\', 'b')
			case c == '\f':
				w.buf = append(w.buf, '\\', 'f')
			case c < 0x20:
				w.buf = append(w.buf, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
			default:
				w.buf = append(w.buf, c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			if w.flags&WriteAllowInvalidUnicode == 0 {
				return &EncodeError{Code: WriteInvalidString, Msg: fmt.Sprintf("invalid UTF-8 in string at byte %d", i)}
			}
			w.buf = append(w.buf, c)
			i++
			continue
		}
		if w.flags&WriteEscapeUnicode != 0 {
			if r > 0xFFFF {
				r -= 0x10000
				w.unicode(0xD800 + (r>>10)&0x3FF)
				w.unicode(0xDC00 + r&0x3FF)
			} else {
				w.unicode(r)
			}
		} else {
			w.buf = append(w.buf, s[i:i+size]...)
		}
		i += size
	}
	w.buf = append(w.buf, '"')
	return nil
}

func (w *writer) unicode(r rune) {
	w.buf = append(w.buf, '\\', 'u',
		hexDigits[(r>>12)&0xF], hexDigits[(r>>8)&0xF], hexDigits[(r>>4)&0xF], hexDigits[r&0xF])
}
