package internal

import (
	"math"
	"testing"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		sub   Subtype
	}{
		{`null`, KindNull, SubNone},
		{`true`, KindBool, SubTrue},
		{`false`, KindBool, SubFalse},
		{`0`, KindNumber, SubUint},
		{`18446744073709551615`, KindNumber, SubUint},
		{`-9223372036854775808`, KindNumber, SubSint},
		{`1.5e3`, KindNumber, SubReal},
		{`-0`, KindNumber, SubReal},
		{`18446744073709551616`, KindNumber, SubReal},
		{`"text"`, KindString, SubNone},
		{` [ ] `, KindArray, SubNone},
		{"\t{}\n", KindObject, SubNone},
	}
	for _, tt := range tests {
		doc, err := Parse(tt.input, ReadNoFlag, 0)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.input, err)
			continue
		}
		root := doc.Root()
		if root.Kind() != tt.kind || root.Subtype() != tt.sub {
			t.Errorf("%q: got %s/%d, want %s/%d", tt.input, root.Kind(), root.Subtype(), tt.kind, tt.sub)
		}
		if doc.ReadSize() != len(tt.input) {
			t.Errorf("%q: read size %d, want %d", tt.input, doc.ReadSize(), len(tt.input))
		}
	}
}

func TestParseStrings(t *testing.T) {
	tests := map[string]string{
		`"plain"`:                   "plain",
		`"a\"b\\c\/d"`:              `a"b\c/d`,
		`"\n\t\r\b\f"`:              "\n\t\r\b\f",
		`"\u00e9"`:                  "\u00e9",
		`"\ud83d\ude00"`:            "\U0001F600",
		`"mixed \u00e9 and \u0041"`: "mixed \u00e9 and A",
	}
	for input, want := range tests {
		doc, err := Parse(input, ReadNoFlag, 0)
		if err != nil {
			t.Errorf("%s: %v", input, err)
			continue
		}
		if got := doc.Root().Str(); got != want {
			t.Errorf("%s: got %q, want %q", input, got, want)
		}
	}
}

func TestParseContainers(t *testing.T) {
	doc, err := Parse(`{"a":[1,-2,{"b":null}],"c":"d","a":true}`, ReadNoFlag, 0)
	if err != nil {
		t.Fatal(err)
	}
	root := doc.Root()
	if root.Len() != 3 {
		t.Fatalf("object length %d, want 3", root.Len())
	}
	if root.KeyAt(2) != "a" || root.ValueAt(2).Kind() != KindBool {
		t.Error("duplicate key should be kept as its own pair")
	}
	a, ok := root.Get("a")
	if !ok || a.Kind() != KindArray || a.Len() != 3 {
		t.Fatal("first pair named a should win")
	}
	if a.Index(1).Sint() != -2 {
		t.Errorf("a[1] = %d", a.Index(1).Sint())
	}
	if b, ok := a.Index(2).Get("b"); !ok || b.Kind() != KindNull {
		t.Error("a[2].b should be null")
	}
	// keys count as values in the arena
	if doc.ValueCount() != 12 {
		t.Errorf("value count %d, want 12", doc.ValueCount())
	}

	var keys []string
	root.Range(func(i int, key string, _ Node) bool {
		keys = append(keys, key)
		return true
	})
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "c" || keys[2] != "a" {
		t.Errorf("range keys %v", keys)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		code  ReadCode
		pos   int
	}{
		{``, ReadEmptyContent, 0},
		{`   `, ReadEmptyContent, 3},
		{`{"a":}`, ReadUnexpectedCharacter, 5},
		{`[1,2`, ReadUnexpectedEnd, 4},
		{`[1 2]`, ReadUnexpectedCharacter, 3},
		{`{"a" 1}`, ReadUnexpectedCharacter, 5},
		{`{1:2}`, ReadUnexpectedCharacter, 1},
		{`nul`, ReadLiteral, 0},
		{`01`, ReadInvalidNumber, 0},
		{`-`, ReadInvalidNumber, 1},
		{`1.`, ReadInvalidNumber, 2},
		{`1e+`, ReadInvalidNumber, 3},
		{`1e400`, ReadInvalidNumber, 0},
		{`"abc`, ReadUnexpectedEnd, 4},
		{"\"a\x01\"", ReadInvalidString, 2},
		{`"\x"`, ReadInvalidString, 1},
		{`1 2`, ReadUnexpectedContent, 2},
		{`NaN`, ReadUnexpectedCharacter, 0},
		{`[1,]`, ReadUnexpectedCharacter, 3},
		{`// c` + "\n1", ReadUnexpectedCharacter, 0},
	}
	for _, tt := range tests {
		doc, err := Parse(tt.input, ReadNoFlag, 0)
		if doc != nil {
			t.Errorf("%q: failed parse returned a document", tt.input)
		}
		if err == nil {
			t.Errorf("%q: expected error", tt.input)
			continue
		}
		if err.Code != tt.code {
			t.Errorf("%q: code %d, want %d (%v)", tt.input, err.Code, tt.code, err)
		}
		if err.Pos != tt.pos {
			t.Errorf("%q: pos %d, want %d (%v)", tt.input, err.Pos, tt.pos, err)
		}
	}
}

func TestParseFlags(t *testing.T) {
	t.Run("TrailingCommas", func(t *testing.T) {
		doc, err := Parse(`{"a":[1,2,],}`, ReadAllowTrailingCommas, 0)
		if err != nil {
			t.Fatal(err)
		}
		a, _ := doc.Root().Get("a")
		if a.Len() != 2 {
			t.Errorf("array length %d", a.Len())
		}
	})

	t.Run("Comments", func(t *testing.T) {
		input := "// lead\n[1, /* inline */ 2] // tail"
		doc, err := Parse(input, ReadAllowComments, 0)
		if err != nil {
			t.Fatal(err)
		}
		if doc.Root().Len() != 2 {
			t.Errorf("array length %d", doc.Root().Len())
		}
		if _, err := Parse("[1 /* open", ReadAllowComments, 0); err == nil || err.Code != ReadInvalidComment {
			t.Errorf("unclosed comment: %v", err)
		}
	})

	t.Run("InfAndNaN", func(t *testing.T) {
		doc, err := Parse(`[NaN,Infinity,-Infinity,1e400]`, ReadAllowInfAndNaN, 0)
		if err != nil {
			t.Fatal(err)
		}
		root := doc.Root()
		if !math.IsNaN(root.Index(0).Real()) {
			t.Error("NaN expected")
		}
		if !math.IsInf(root.Index(1).Real(), 1) || !math.IsInf(root.Index(2).Real(), -1) || !math.IsInf(root.Index(3).Real(), 1) {
			t.Error("infinities expected")
		}
	})

	t.Run("StopWhenDone", func(t *testing.T) {
		doc, err := Parse(`{"a":1} trailing`, ReadStopWhenDone, 0)
		if err != nil {
			t.Fatal(err)
		}
		if doc.ReadSize() != 7 {
			t.Errorf("read size %d, want 7", doc.ReadSize())
		}
	})

	t.Run("InvalidUnicode", func(t *testing.T) {
		input := "\"a\xffb\""
		if _, err := Parse(input, ReadNoFlag, 0); err == nil || err.Code != ReadInvalidString {
			t.Errorf("invalid UTF-8 should fail: %v", err)
		}
		doc, err := Parse(input, ReadAllowInvalidUnicode, 0)
		if err != nil {
			t.Fatal(err)
		}
		if doc.Root().Str() != "a\xffb" {
			t.Errorf("got %q", doc.Root().Str())
		}
	})

	t.Run("LoneSurrogate", func(t *testing.T) {
		tests := map[string]string{
			`"\ud800\u0041"`:       "\ufffdA",
			`"\ud800\ud83d\ude00"`: "\ufffd\U0001F600",
			`"\udc00x"`:            "\ufffdx",
			`"x\ud800"`:            "x\ufffd",
		}
		for input, want := range tests {
			if _, err := Parse(input, ReadNoFlag, 0); err == nil || err.Code != ReadInvalidString {
				t.Errorf("%s: lone surrogate should fail: %v", input, err)
			}
			doc, err := Parse(input, ReadAllowInvalidUnicode, 0)
			if err != nil {
				t.Errorf("%s: %v", input, err)
				continue
			}
			if got := doc.Root().Str(); got != want {
				t.Errorf("%s: got %q, want %q", input, got, want)
			}
		}
	})
}

func TestParseDepth(t *testing.T) {
	if _, err := Parse(`[[[]]]`, ReadNoFlag, 3); err != nil {
		t.Errorf("depth 3 within limit: %v", err)
	}
	_, err := Parse(`[[[[]]]]`, ReadNoFlag, 3)
	if err == nil || err.Code != ReadJSONStructure {
		t.Errorf("depth 4 should exceed limit 3: %v", err)
	}
}

func TestParseNegativeZero(t *testing.T) {
	doc, err := Parse(`[-0,0,-0.0]`, ReadNoFlag, 0)
	if err != nil {
		t.Fatal(err)
	}
	root := doc.Root()
	if n := root.Index(0); n.Subtype() != SubReal || !math.Signbit(n.Real()) {
		t.Errorf("-0 should be a negative zero real, got subtype %d", n.Subtype())
	}
	if root.Index(1).Subtype() != SubUint {
		t.Errorf("0 should stay uint")
	}
	out, werr := Write(root, WriteNoFlag)
	if werr != nil {
		t.Fatal(werr)
	}
	if string(out) != "[-0.0,0,-0.0]" {
		t.Errorf("got %s", out)
	}
}
