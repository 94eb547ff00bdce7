package internal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// ReadFlag controls parser leniency. Bit values follow yyjson.
type ReadFlag uint32

const (
	ReadNoFlag              ReadFlag = 0
	ReadStopWhenDone        ReadFlag = 1 << 1
	ReadAllowTrailingCommas ReadFlag = 1 << 2
	ReadAllowComments       ReadFlag = 1 << 3
	ReadAllowInfAndNaN      ReadFlag = 1 << 4
	ReadAllowInvalidUnicode ReadFlag = 1 << 6
)

// ReadCode classifies parse failures. Values follow yyjson_read_code.
type ReadCode int

const (
	ReadOK                  ReadCode = 0
	ReadInvalidParameter    ReadCode = 1
	ReadEmptyContent        ReadCode = 3
	ReadUnexpectedContent   ReadCode = 4
	ReadUnexpectedEnd       ReadCode = 5
	ReadUnexpectedCharacter ReadCode = 6
	ReadJSONStructure       ReadCode = 7
	ReadInvalidComment      ReadCode = 8
	ReadInvalidNumber       ReadCode = 9
	ReadInvalidString       ReadCode = 10
	ReadLiteral             ReadCode = 11
	ReadFileOpen            ReadCode = 12
	ReadFileRead            ReadCode = 13
)

// SyntaxError is the primitive's parse failure: a code, a message and the
// byte offset in the input where parsing stopped.
type SyntaxError struct {
	Code ReadCode
	Msg  string
	Pos  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
}

// DefaultMaxDepth bounds container nesting when the caller passes no limit.
const DefaultMaxDepth = 512

type parser struct {
	s        string
	i        int
	flags    ReadFlag
	maxDepth int
	doc      *ImmDoc
}

// Parse reads one JSON document from s into a fresh immutable arena. On
// failure no document is returned; the partially filled arena is dropped.
func Parse(s string, flags ReadFlag, maxDepth int) (*ImmDoc, *SyntaxError) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	p := &parser{
		s:        s,
		flags:    flags,
		maxDepth: maxDepth,
		doc:      &ImmDoc{slots: make([]immSlot, 0, estimateSlots(s))},
	}
	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	if p.i >= len(p.s) {
		return nil, p.fail(ReadEmptyContent, "input data is empty")
	}
	if err := p.value(0); err != nil {
		return nil, err
	}
	if flags&ReadStopWhenDone == 0 {
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		if p.i < len(p.s) {
			return nil, p.fail(ReadUnexpectedContent, "unexpected content after document")
		}
	}
	p.doc.readSize = p.i
	return p.doc, nil
}

// estimateSlots gives the arena a starting capacity without scanning twice.
func estimateSlots(s string) int {
	n := len(s) / 8
	if n < 4 {
		return 4
	}
	if n > 1<<16 {
		return 1 << 16
	}
	return n
}

func (p *parser) fail(code ReadCode, msg string) *SyntaxError {
	return &SyntaxError{Code: code, Msg: msg, Pos: p.i}
}

func (p *parser) skipSpace() *SyntaxError {
	for p.i < len(p.s) {
		switch p.s[p.i] {
		case ' ', '\t', '\n', '\r':
			p.i++
		case '/':
			if p.flags&ReadAllowComments == 0 {
				return nil
			}
			if err := p.skipComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (p *parser) skipComment() *SyntaxError {
	if p.i+1 >= len(p.s) {
		return p.fail(ReadInvalidComment, "unclosed comment")
	}
	switch p.s[p.i+1] {
	case '/':
		end := strings.IndexByte(p.s[p.i:], '\n')
		if end < 0 {
			p.i = len(p.s)
		} else {
			p.i += end + 1
		}
		return nil
	case '*':
		end := strings.Index(p.s[p.i+2:], "*/")
		if end < 0 {
			return p.fail(ReadInvalidComment, "unclosed multiline comment")
		}
		p.i += end + 4
		return nil
	}
	return p.fail(ReadInvalidComment, "invalid comment")
}

func (p *parser) value(depth int) *SyntaxError {
	if p.i >= len(p.s) {
		return p.fail(ReadUnexpectedEnd, "unexpected end of data")
	}
	switch c := p.s[p.i]; {
	case c == '{':
		return p.object(depth + 1)
	case c == '[':
		return p.array(depth + 1)
	case c == '"':
		str, err := p.str()
		if err != nil {
			return err
		}
		p.doc.push(immSlot{kind: KindString, str: str})
		return nil
	case c == 't':
		return p.literal("true", immSlot{kind: KindBool, sub: SubTrue})
	case c == 'f':
		return p.literal("false", immSlot{kind: KindBool, sub: SubFalse})
	case c == 'n':
		return p.literal("null", immSlot{kind: KindNull})
	case c == '-' || (c >= '0' && c <= '9'):
		return p.number()
	case c == 'N' || c == 'I':
		return p.nonFinite(false)
	default:
		return p.fail(ReadUnexpectedCharacter, "unexpected character")
	}
}

func (p *parser) object(depth int) *SyntaxError {
	if depth > p.maxDepth {
		return p.fail(ReadJSONStructure, "nesting depth exceeds limit")
	}
	idx := p.doc.push(immSlot{kind: KindObject})
	p.i++
	if err := p.skipSpace(); err != nil {
		return err
	}
	count := 0
	if p.i < len(p.s) && p.s[p.i] == '}' {
		p.i++
		p.doc.close(idx, count)
		return nil
	}
	for {
		if p.i >= len(p.s) {
			return p.fail(ReadUnexpectedEnd, "unexpected end of data inside object")
		}
		if p.s[p.i] != '"' {
			return p.fail(ReadUnexpectedCharacter, "unexpected character, expected a string for object key")
		}
		key, err := p.str()
		if err != nil {
			return err
		}
		p.doc.push(immSlot{kind: KindString, str: key})
		if err := p.skipSpace(); err != nil {
			return err
		}
		if p.i >= len(p.s) {
			return p.fail(ReadUnexpectedEnd, "unexpected end of data inside object")
		}
		if p.s[p.i] != ':' {
			return p.fail(ReadUnexpectedCharacter, "unexpected character, expected a colon after object key")
		}
		p.i++
		if err := p.skipSpace(); err != nil {
			return err
		}
		if err := p.value(depth); err != nil {
			return err
		}
		count++
		if err := p.skipSpace(); err != nil {
			return err
		}
		if p.i >= len(p.s) {
			return p.fail(ReadUnexpectedEnd, "unexpected end of data inside object")
		}
		switch p.s[p.i] {
		case '}':
			p.i++
			p.doc.close(idx, count)
			return nil
		case ',':
			p.i++
			if err := p.skipSpace(); err != nil {
				return err
			}
			if p.flags&ReadAllowTrailingCommas != 0 && p.i < len(p.s) && p.s[p.i] == '}' {
				p.i++
				p.doc.close(idx, count)
				return nil
			}
		default:
			return p.fail(ReadUnexpectedCharacter, "unexpected character, expected a comma or a closing brace")
		}
	}
}

func (p *parser) array(depth int) *SyntaxError {
	if depth > p.maxDepth {
		return p.fail(ReadJSONStructure, "nesting depth exceeds limit")
	}
	idx := p.doc.push(immSlot{kind: KindArray})
	p.i++
	if err := p.skipSpace(); err != nil {
		return err
	}
	count := 0
	if p.i < len(p.s) && p.s[p.i] == ']' {
		p.i++
		p.doc.close(idx, count)
		return nil
	}
	for {
		if err := p.value(depth); err != nil {
			return err
		}
		count++
		if err := p.skipSpace(); err != nil {
			return err
		}
		if p.i >= len(p.s) {
			return p.fail(ReadUnexpectedEnd, "unexpected end of data inside array")
		}
		switch p.s[p.i] {
		case ']':
			p.i++
			p.doc.close(idx, count)
			return nil
		case ',':
			p.i++
			if err := p.skipSpace(); err != nil {
				return err
			}
			if p.flags&ReadAllowTrailingCommas != 0 && p.i < len(p.s) && p.s[p.i] == ']' {
				p.i++
				p.doc.close(idx, count)
				return nil
			}
		default:
			return p.fail(ReadUnexpectedCharacter, "unexpected character, expected a comma or a closing bracket")
		}
	}
}

func (p *parser) literal(word string, slot immSlot) *SyntaxError {
	if !strings.HasPrefix(p.s[p.i:], word) {
		return p.fail(ReadLiteral, "invalid literal, expected "+word)
	}
	p.i += len(word)
	p.doc.push(slot)
	return nil
}

func (p *parser) nonFinite(neg bool) *SyntaxError {
	if p.flags&ReadAllowInfAndNaN == 0 {
		return p.fail(ReadUnexpectedCharacter, "unexpected character, inf and nan are not allowed")
	}
	rest := p.s[p.i:]
	var f float64
	switch {
	case strings.HasPrefix(rest, "NaN"):
		f = math.NaN()
		p.i += 3
	case strings.HasPrefix(rest, "Infinity"):
		f = math.Inf(1)
		if neg {
			f = math.Inf(-1)
		}
		p.i += 8
	default:
		return p.fail(ReadLiteral, "invalid literal, expected NaN or Infinity")
	}
	p.doc.push(immSlot{kind: KindNumber, sub: SubReal, num: math.Float64bits(f)})
	return nil
}

func (p *parser) number() *SyntaxError {
	start := p.i
	neg := false
	if p.s[p.i] == '-' {
		neg = true
		p.i++
		if p.i < len(p.s) && p.s[p.i] == 'I' {
			return p.nonFinite(true)
		}
	}
	if p.i >= len(p.s) || !isDigit(p.s[p.i]) {
		return p.fail(ReadInvalidNumber, "no digit after minus sign")
	}
	if p.s[p.i] == '0' && p.i+1 < len(p.s) && isDigit(p.s[p.i+1]) {
		return p.fail(ReadInvalidNumber, "number with leading zero is not allowed")
	}
	for p.i < len(p.s) && isDigit(p.s[p.i]) {
		p.i++
	}
	isReal := false
	if p.i < len(p.s) && p.s[p.i] == '.' {
		isReal = true
		p.i++
		if p.i >= len(p.s) || !isDigit(p.s[p.i]) {
			return p.fail(ReadInvalidNumber, "no digit after decimal point")
		}
		for p.i < len(p.s) && isDigit(p.s[p.i]) {
			p.i++
		}
	}
	if p.i < len(p.s) && (p.s[p.i] == 'e' || p.s[p.i] == 'E') {
		isReal = true
		p.i++
		if p.i < len(p.s) && (p.s[p.i] == '+' || p.s[p.i] == '-') {
			p.i++
		}
		if p.i >= len(p.s) || !isDigit(p.s[p.i]) {
			return p.fail(ReadInvalidNumber, "no digit after exponent sign")
		}
		for p.i < len(p.s) && isDigit(p.s[p.i]) {
			p.i++
		}
	}
	text := p.s[start:p.i]
	if !isReal {
		if neg {
			// -0 has no integer form and stays a negative zero real
			if n, err := strconv.ParseInt(text, 10, 64); err == nil && n != 0 {
				p.doc.push(immSlot{kind: KindNumber, sub: SubSint, num: uint64(n)})
				return nil
			}
		} else if u, err := strconv.ParseUint(text, 10, 64); err == nil {
			p.doc.push(immSlot{kind: KindNumber, sub: SubUint, num: u})
			return nil
		}
		// integers beyond 64 bits degrade to real, as yyjson does
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && (math.IsInf(f, 0) && p.flags&ReadAllowInfAndNaN == 0) {
		p.i = start
		return p.fail(ReadInvalidNumber, "number is infinity when parsed as double")
	}
	p.doc.push(immSlot{kind: KindNumber, sub: SubReal, num: math.Float64bits(f)})
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// str parses a quoted string starting at p.i and leaves p.i after the closing
// quote.
func (p *parser) str() (string, *SyntaxError) {
	start := p.i
	p.i++
	// fast path: no escapes and plain UTF-8
	for j := p.i; j < len(p.s); j++ {
		c := p.s[j]
		if c == '"' {
			raw := p.s[p.i:j]
			if p.flags&ReadAllowInvalidUnicode == 0 && !utf8.ValidString(raw) {
				break
			}
			p.i = j + 1
			return raw, nil
		}
		if c == '\\' || c < 0x20 {
			break
		}
	}
	var sb strings.Builder
	for p.i < len(p.s) {
		c := p.s[p.i]
		switch {
		case c == '"':
			p.i++
			return sb.String(), nil
		case c == '\\':
			if err := p.escape(&sb); err != nil {
				return "", err
			}
		case c < 0x20:
			return "", p.fail(ReadInvalidString, "unexpected control character in string")
		case c < utf8.RuneSelf:
			sb.WriteByte(c)
			p.i++
		default:
			r, size := utf8.DecodeRuneInString(p.s[p.i:])
			if r == utf8.RuneError && size == 1 && p.flags&ReadAllowInvalidUnicode == 0 {
				return "", p.fail(ReadInvalidString, "invalid UTF-8 encoding in string")
			}
			sb.WriteString(p.s[p.i : p.i+size])
			p.i += size
		}
	}
	p.i = start
	return "", &SyntaxError{Code: ReadUnexpectedEnd, Msg: "unexpected end of data inside string", Pos: len(p.s)}
}

func (p *parser) escape(sb *strings.Builder) *SyntaxError {
	if p.i+1 >= len(p.s) {
		p.i = len(p.s)
		return p.fail(ReadUnexpectedEnd, "unexpected end of data inside string")
	}
	c := p.s[p.i+1]
	p.i += 2
	switch c {
	case '"', '\\', '/':
		sb.WriteByte(c)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		r, err := p.hex4()
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) {
			lo := rune(-1)
			next := p.i
			if strings.HasPrefix(p.s[p.i:], `\u`) {
				p.i += 2
				if lo, err = p.hex4(); err != nil {
					return err
				}
			}
			if dec := utf16.DecodeRune(r, lo); dec != utf8.RuneError {
				r = dec
			} else if p.flags&ReadAllowInvalidUnicode == 0 {
				return p.fail(ReadInvalidString, "invalid high surrogate in string")
			} else {
				// only the lone surrogate is replaced; a following
				// escape is read again on its own
				r = utf8.RuneError
				p.i = next
			}
		}
		sb.WriteRune(r)
	default:
		p.i -= 2
		return p.fail(ReadInvalidString, "invalid escaped sequence in string")
	}
	return nil
}

func (p *parser) hex4() (rune, *SyntaxError) {
	if p.i+4 > len(p.s) {
		return 0, p.fail(ReadUnexpectedEnd, "unexpected end of data inside escape")
	}
	v, err := strconv.ParseUint(p.s[p.i:p.i+4], 16, 32)
	if err != nil {
		return 0, p.fail(ReadInvalidString, "invalid escaped unicode in string")
	}
	p.i += 4
	return rune(v), nil
}
