package jsondoc

import (
	"testing"
)

func TestApplyPatch(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	src := mustParse(t, p, `{"a":1,"list":[1,2],"obj":{"k":"v"}}`, false)
	out, err := src.ApplyPatch([]byte(`[
		{"op":"add","path":"/b","value":2},
		{"op":"remove","path":"/a"},
		{"op":"add","path":"/list/1","value":9},
		{"op":"replace","path":"/obj/k","value":"w"}
	]`))
	helper.AssertNoError(err)
	defer out.Close()
	helper.AssertTrue(out.IsMutable())
	helper.AssertTrue(out.Document() != src.Document())
	helper.AssertTrue(out.Equal(mustParse(t, p, `{"b":2,"list":[1,9,2],"obj":{"k":"w"}}`, false)))
	helper.AssertJSON(`{"a":1,"list":[1,2],"obj":{"k":"v"}}`, src)

	t.Run("FailedTest", func(t *testing.T) {
		_, err := src.ApplyPatch([]byte(`[{"op":"test","path":"/a","value":2}]`))
		helper.AssertError(err)
	})

	t.Run("InvalidPatch", func(t *testing.T) {
		_, err := src.ApplyPatch([]byte(`{"op":"add"}`))
		helper.AssertError(err)
	})
}

func TestMergePatch(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	src := mustParse(t, p, `{"a":1,"b":{"c":2,"e":4}}`, true)
	out, err := src.MergePatch([]byte(`{"b":{"c":null,"d":3}}`))
	helper.AssertNoError(err)
	defer out.Close()
	helper.AssertTrue(out.Equal(mustParse(t, p, `{"a":1,"b":{"e":4,"d":3}}`, false)))

	from := mustParse(t, p, `{"a":1,"b":2}`, false)
	to := mustParse(t, p, `{"a":1,"c":[3]}`, false)
	patch, err := p.CreateMergePatch(from, to)
	helper.AssertNoError(err)
	defer patch.Close()
	helper.AssertTrue(patch.Equal(mustParse(t, p, `{"b":null,"c":[3]}`, false)))

	text, err := patch.ToBytes()
	helper.AssertNoError(err)
	applied, err := from.MergePatch(text)
	helper.AssertNoError(err)
	defer applied.Close()
	helper.AssertTrue(applied.Equal(to))
}
