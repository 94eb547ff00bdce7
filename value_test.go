package jsondoc

import (
	"errors"
	"math"
	"testing"
)

func TestValueTypes(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	tests := []struct {
		name    string
		input   string
		typ     Type
		sub     Subtype
		typName string
	}{
		{"null", `null`, TypeNull, SubtypeNone, "null"},
		{"true", `true`, TypeBool, SubtypeTrue, "true"},
		{"false", `false`, TypeBool, SubtypeFalse, "false"},
		{"uint", `42`, TypeNumber, SubtypeUint, "uint"},
		{"sint", `-42`, TypeNumber, SubtypeSint, "sint"},
		{"real", `1.5`, TypeNumber, SubtypeReal, "real"},
		{"string", `"x"`, TypeString, SubtypeNone, "string"},
		{"array", `[]`, TypeArray, SubtypeNone, "array"},
		{"object", `{}`, TypeObject, SubtypeNone, "object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustParse(t, p, tt.input, false)
			helper.AssertEqual(tt.typ, v.Type())
			helper.AssertEqual(tt.sub, v.Subtype())
			helper.AssertEqual(tt.typName, v.TypeName())
		})
	}

	t.Run("Predicates", func(t *testing.T) {
		v := mustParse(t, p, `-3`, false)
		helper.AssertTrue(v.IsNumber())
		helper.AssertTrue(v.IsInt())
		helper.AssertTrue(v.IsSint())
		helper.AssertFalse(v.IsUint())
		helper.AssertFalse(v.IsFloat())
		helper.AssertTrue(v.IsImmutable())
		helper.AssertFalse(v.IsMutable())
		helper.AssertFalse(v.IsContainer())
	})
}

func TestValueGetters(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	t.Run("Bool", func(t *testing.T) {
		b, err := mustParse(t, p, `true`, false).Bool()
		helper.AssertNoError(err)
		helper.AssertTrue(b)
	})

	t.Run("IntRejectsFloat", func(t *testing.T) {
		_, err := mustParse(t, p, `1.5`, false).Int()
		helper.AssertErrorIs(err, ErrTypeMismatch)
		var tm *TypeMismatchError
		helper.AssertTrue(errors.As(err, &tm))
		helper.AssertEqual("real", tm.Actual)
	})

	t.Run("FloatAcceptsIntegers", func(t *testing.T) {
		f, err := mustParse(t, p, `7`, false).Float()
		helper.AssertNoError(err)
		helper.AssertEqual(7.0, f)
	})

	t.Run("Int64Overflow", func(t *testing.T) {
		v := mustParse(t, p, `18446744073709551615`, false)
		_, err := v.Int64()
		helper.AssertErrorIs(err, ErrNumberOverflow)
		u, err := v.Uint64()
		helper.AssertNoError(err)
		helper.AssertEqual(uint64(math.MaxUint64), u)
	})

	t.Run("Int64String", func(t *testing.T) {
		s, err := mustParse(t, p, `-9223372036854775808`, false).Int64String()
		helper.AssertNoError(err)
		helper.AssertEqual("-9223372036854775808", s)
		s, err = mustParse(t, p, `18446744073709551615`, false).Int64String()
		helper.AssertNoError(err)
		helper.AssertEqual("18446744073709551615", s)
	})

	t.Run("StringTypeMismatch", func(t *testing.T) {
		_, err := mustParse(t, p, `{}`, false).Str()
		helper.AssertErrorIs(err, ErrTypeMismatch)
	})
}

func TestValueOwnership(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	t.Run("ChildOutlivesParentHandle", func(t *testing.T) {
		root, err := p.Parse(`{"a":{"b":1}}`, &ParseOptions{Mutable: true})
		helper.AssertNoError(err)
		doc := root.Document()

		child, err := root.Get("a")
		helper.AssertNoError(err)
		helper.AssertEqual(2, doc.Refs())

		helper.AssertNoError(root.Close())
		helper.AssertFalse(doc.Released())

		helper.AssertNoError(child.SetInt("c", 2))
		helper.AssertJSON(`{"b":1,"c":2}`, child)

		helper.AssertNoError(child.Close())
		helper.AssertTrue(doc.Released())
	})

	t.Run("EditsVisibleThroughEveryView", func(t *testing.T) {
		root := mustParse(t, p, `{"list":[1]}`, true)
		list, err := root.Get("list")
		helper.AssertNoError(err)
		defer list.Close()

		helper.AssertNoError(list.AppendInt(2))
		helper.AssertJSON(`{"list":[1,2]}`, root)
	})

	t.Run("ClosedValue", func(t *testing.T) {
		v, err := p.Parse(`[1]`)
		helper.AssertNoError(err)
		helper.AssertNoError(v.Close())
		helper.AssertNoError(v.Close())
		helper.AssertTrue(v.Closed())
		_, err = v.At(0)
		helper.AssertErrorIs(err, ErrValueClosed)
		helper.AssertEqual(TypeNone, v.Type())
		helper.AssertEqual("", v.String())
	})

	t.Run("ReleaseCounters", func(t *testing.T) {
		q := newTestProcessor(t)
		v, err := q.Parse(`[1,2,3]`)
		helper.AssertNoError(err)
		e, err := v.At(1)
		helper.AssertNoError(err)
		v.Close()
		helper.AssertEqual(int64(1), q.Stats().LiveDocuments)
		e.Close()
		helper.AssertEqual(int64(0), q.Stats().LiveDocuments)
		helper.AssertEqual(int64(1), q.Stats().DocumentsReleased)
	})
}

func TestValueParent(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	for _, mutable := range []bool{false, true} {
		root := mustParse(t, p, `{"a":[10,{"b":true}]}`, mutable)
		b, err := root.PtrGet("/a/1/b")
		helper.AssertNoError(err)
		defer b.Close()

		obj, err := b.Parent()
		helper.AssertNoError(err)
		defer obj.Close()
		helper.AssertJSON(`{"b":true}`, obj)

		arr, err := obj.Parent()
		helper.AssertNoError(err)
		defer arr.Close()
		helper.AssertEqual(2, arr.Len())

		top, err := arr.Parent()
		helper.AssertNoError(err)
		defer top.Close()
		helper.AssertTrue(top.Equal(root))

		_, err = top.Parent()
		helper.AssertErrorIs(err, ErrNoParent, "mutable=%v", mutable)
	}
}

func TestValueConversions(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	imm := mustParse(t, p, `{"k":[1,"two",null]}`, false)

	mut, err := imm.ToMutable()
	helper.AssertNoError(err)
	defer mut.Close()
	helper.AssertTrue(mut.IsMutable())
	helper.AssertTrue(mut.Equal(imm))
	helper.AssertTrue(mut.Document() != imm.Document())

	helper.AssertNoError(mut.SetBool("extra", true))
	helper.AssertFalse(mut.Equal(imm))

	frozen, err := mut.ToImmutable()
	helper.AssertNoError(err)
	defer frozen.Close()
	helper.AssertTrue(frozen.IsImmutable())
	helper.AssertTrue(frozen.Equal(mut))
	helper.AssertErrorIs(frozen.SetBool("x", true), ErrImmutable)

	clone, err := frozen.Clone()
	helper.AssertNoError(err)
	defer clone.Close()
	helper.AssertTrue(clone.IsImmutable())
}

func TestValueEqual(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	tests := []struct {
		a, b  string
		equal bool
	}{
		{`{"a":1,"b":2}`, `{"b":2,"a":1}`, true},
		{`[1,2]`, `[2,1]`, false},
		{`1`, `1.0`, false},
		{`-1`, `-1`, true},
		{`{"a":null}`, `{"a":false}`, false},
		{`"x"`, `"x"`, true},
	}
	for _, tt := range tests {
		a := mustParse(t, p, tt.a, false)
		b := mustParse(t, p, tt.b, true)
		helper.AssertEqual(tt.equal, a.Equal(b), "%s vs %s", tt.a, tt.b)
	}
}

func TestValueValidate(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	schema := mustParse(t, p, `{"name":"","age":0,"tags":[""],"meta":null}`, false)
	tests := []struct {
		doc   string
		valid bool
	}{
		{`{"name":"a","age":3,"tags":["x","y"],"meta":{}}`, true},
		{`{"name":"a","age":3,"tags":[],"meta":1,"more":true}`, true},
		{`{"name":"a","age":"3","tags":[],"meta":1}`, false},
		{`{"name":"a","tags":[],"meta":1}`, false},
		{`{"name":"a","age":3,"tags":[1],"meta":1}`, false},
		{`[]`, false},
	}
	for _, tt := range tests {
		ok, err := mustParse(t, p, tt.doc, false).Validate(schema)
		helper.AssertNoError(err)
		helper.AssertEqual(tt.valid, ok, tt.doc)
	}
}

func TestValueLookup(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)
	root := mustParse(t, p, `{"users":[{"name":"Ann"},{"name":"Bob"}],"n":{"x":{"y":5}}}`, false)

	v, err := root.Lookup("users[1].name")
	helper.AssertNoError(err)
	defer v.Close()
	s, _ := v.Str()
	helper.AssertEqual("Bob", s)

	v2, err := root.Lookup("n.x.y")
	helper.AssertNoError(err)
	defer v2.Close()
	n, _ := v2.Int()
	helper.AssertEqual(5, n)

	v3, err := root.Lookup("users[-1].name")
	helper.AssertNoError(err)
	defer v3.Close()
	s, _ = v3.Str()
	helper.AssertEqual("Bob", s)

	_, err = root.Lookup("users[5]")
	helper.AssertErrorIs(err, ErrKeyNotFound)
}

func TestValueDeepCopy(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	target := mustParse(t, p, `{}`, true)
	source := mustParse(t, p, `{"x":[1,2]}`, false)

	cp, err := target.DeepCopy(source)
	helper.AssertNoError(err)
	defer cp.Close()
	helper.AssertTrue(cp.Document() == target.Document())

	helper.AssertNoError(target.Set("copy", cp))
	helper.AssertJSON(`{"copy":{"x":[1,2]}}`, target)

	// the detached copy was attached as is, so edits through it show up
	helper.AssertNoError(cp.SetBool("y", false))
	helper.AssertJSON(`{"copy":{"x":[1,2],"y":false}}`, target)

	_, err = source.DeepCopy(target)
	helper.AssertErrorIs(err, ErrImmutable)
}
