package internal

import "strings"

// PtrCode classifies JSON Pointer failures. Values follow yyjson_ptr_code.
type PtrCode int

const (
	PtrOK        PtrCode = 0
	PtrParameter PtrCode = 1
	PtrSyntax    PtrCode = 2
	PtrResolve   PtrCode = 3
	PtrNullRoot  PtrCode = 4
	PtrSetRoot   PtrCode = 5
)

// PtrFault describes a pointer failure at byte offset Pos of the pointer text.
type PtrFault struct {
	Code PtrCode
	Msg  string
	Pos  int
}

func (f *PtrFault) Error() string { return f.Msg }

// PtrToken is one reference token of an RFC 6901 pointer.
type PtrToken struct {
	Key string
	// Pos is the offset of the '/' that introduces the token.
	Pos int
	// Index is the array index the token denotes, -1 if it is not a valid
	// array index.
	Index int
	// End marks the "-" token, which addresses the slot past the last element.
	End bool
}

const maxPtrIndex = 1<<31 - 1

// ParsePointer splits path into reference tokens. The empty pointer addresses
// the root and yields no tokens.
func ParsePointer(path string) ([]PtrToken, *PtrFault) {
	if path == "" {
		return nil, nil
	}
	if path[0] != '/' {
		return nil, &PtrFault{Code: PtrSyntax, Msg: "no prefix '/'", Pos: 0}
	}
	toks := make([]PtrToken, 0, strings.Count(path, "/"))
	pos := 0
	for pos < len(path) {
		end := strings.IndexByte(path[pos+1:], '/')
		if end < 0 {
			end = len(path)
		} else {
			end += pos + 1
		}
		raw := path[pos+1 : end]
		key, bad := unescapeToken(raw)
		if bad >= 0 {
			return nil, &PtrFault{Code: PtrSyntax, Msg: "invalid escaped character", Pos: pos + 1 + bad}
		}
		toks = append(toks, PtrToken{Key: key, Pos: pos, Index: tokenIndex(key), End: key == "-"})
		pos = end
	}
	return toks, nil
}

// unescapeToken decodes ~0 and ~1, returning the offset of the first invalid
// escape or -1.
func unescapeToken(raw string) (string, int) {
	i := strings.IndexByte(raw, '~')
	if i < 0 {
		return raw, -1
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	sb.WriteString(raw[:i])
	for ; i < len(raw); i++ {
		c := raw[i]
		if c != '~' {
			sb.WriteByte(c)
			continue
		}
		if i+1 >= len(raw) {
			return "", i
		}
		switch raw[i+1] {
		case '0':
			sb.WriteByte('~')
		case '1':
			sb.WriteByte('/')
		default:
			return "", i
		}
		i++
	}
	return sb.String(), -1
}

func tokenIndex(s string) int {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return -1
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int(c-'0')
		if n > maxPtrIndex {
			return -1
		}
	}
	return n
}

// EscapeToken encodes a key for use as a pointer reference token.
func EscapeToken(key string) string {
	if !strings.ContainsAny(key, "~/") {
		return key
	}
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(key)
}

// Child resolves one token against container n.
func Child(n Node, tok PtrToken) (Node, bool) {
	switch n.Kind() {
	case KindObject:
		return n.Get(tok.Key)
	case KindArray:
		if tok.Index < 0 || tok.Index >= n.Len() {
			return nil, false
		}
		return n.Index(tok.Index), true
	}
	return nil, false
}

// Resolve walks toks from root. On failure it returns the index of the token
// that could not be resolved.
func Resolve(root Node, toks []PtrToken) (Node, int) {
	cur := root
	for i, tok := range toks {
		next, ok := Child(cur, tok)
		if !ok {
			return nil, i
		}
		cur = next
	}
	return cur, -1
}
