package jsondoc

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestSerialize(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	v := mustParse(t, p, `{ "a" : [ 1 , {"b":null} ], "s":"é/x" }`, false)

	tests := []struct {
		name  string
		flags WriteFlag
		want  string
	}{
		{"Compact", WriteNoFlag, `{"a":[1,{"b":null}],"s":"é/x"}`},
		{"Pretty", WritePretty, "{\n    \"a\": [\n        1,\n        {\n            \"b\": null\n        }\n    ],\n    \"s\": \"é/x\"\n}"},
		{"TwoSpaces", WritePrettyTwoSpaces, "{\n  \"a\": [\n    1,\n    {\n      \"b\": null\n    }\n  ],\n  \"s\": \"é/x\"\n}"},
		{"EscapeUnicode", WriteEscapeUnicode, `{"a":[1,{"b":null}],"s":"\u00e9/x"}`},
		{"EscapeSlashes", WriteEscapeSlashes, `{"a":[1,{"b":null}],"s":"é\/x"}`},
		{"NewlineAtEnd", WriteNewlineAtEnd, "{\"a\":[1,{\"b\":null}],\"s\":\"é/x\"}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ToString(tt.flags)
			helper.AssertNoError(err)
			helper.AssertEqual(tt.want, got)
		})
	}

	t.Run("Subtree", func(t *testing.T) {
		a, err := v.Get("a")
		helper.AssertNoError(err)
		defer a.Close()
		helper.AssertEqual(`[1,{"b":null}]`, a.String())
	})

	t.Run("SerializedSize", func(t *testing.T) {
		n, err := mustParse(t, p, `[1, 2]`, false).SerializedSize()
		helper.AssertNoError(err)
		helper.AssertEqual(len(`[1,2]`)+1, n)
	})

	t.Run("WriteTo", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := v.WriteTo(&buf)
		helper.AssertNoError(err)
		helper.AssertEqual(int64(buf.Len()), n)
		helper.AssertEqual(v.String(), buf.String())
	})

	t.Run("RealsStayReal", func(t *testing.T) {
		helper.AssertJSON(`[1.0,-0.5,1e+21,1e-7]`, mustParse(t, p, `[1.0,-0.5,1e21,1e-7]`, false))
	})

	t.Run("ProcessorDefaultFlags", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.WriteFlags = WritePrettyTwoSpaces
		q := newTestProcessor(t, cfg)
		got, err := mustParse(t, q, `[1]`, false).ToString()
		helper.AssertNoError(err)
		helper.AssertEqual("[\n  1\n]", got)
	})
}

func TestSerializeNonFinite(t *testing.T) {
	helper := NewTestHelper(t)
	cfg := DefaultConfig()
	cfg.WriteFlags = WriteAllowInfAndNaN
	p := newTestProcessor(t, cfg)

	arr := mustParse(t, p, `[]`, true)
	helper.AssertNoError(arr.AppendFloat(math.Inf(1)))
	helper.AssertNoError(arr.AppendFloat(nan()))

	got, err := arr.ToString()
	helper.AssertNoError(err)
	helper.AssertEqual(`[Infinity,NaN]`, got)

	got, err = arr.ToString(WriteInfAndNaNAsNull)
	helper.AssertNoError(err)
	helper.AssertEqual(`[null,null]`, got)

	_, err = arr.ToString(WriteNoFlag)
	var we *WriteError
	helper.AssertTrue(errors.As(err, &we))
	helper.AssertEqual(WriteNaNOrInf, we.Code)
	helper.AssertErrorIs(err, ErrWrite)
}
