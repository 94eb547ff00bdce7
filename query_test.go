package jsondoc

import (
	"testing"
)

func TestMatcher(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	t.Run("FilterArray", func(t *testing.T) {
		arr := mustParse(t, p, `[5,12,30,7,11.5]`, false)
		m, err := CompileMatcher(`value > 10`)
		helper.AssertNoError(err)
		helper.AssertEqual(`value > 10`, m.String())

		out, err := arr.FilterArray(m)
		helper.AssertNoError(err)
		defer out.Close()
		helper.AssertTrue(out.IsMutable())
		helper.AssertJSON(`[12,30,11.5]`, out)

		idx, err := arr.IndexWhere(m)
		helper.AssertNoError(err)
		helper.AssertEqual(1, idx)

		last, _ := CompileMatcher(`index == 3`)
		idx, err = arr.IndexWhere(last)
		helper.AssertNoError(err)
		helper.AssertEqual(3, idx)

		none, _ := CompileMatcher(`value < 0`)
		idx, err = arr.IndexWhere(none)
		helper.AssertNoError(err)
		helper.AssertEqual(-1, idx)
	})

	t.Run("FieldAccess", func(t *testing.T) {
		users := mustParse(t, p, `[{"name":"a","status":"active"},{"name":"b","status":"gone"}]`, false)
		m, err := CompileMatcher(`value.status == "active"`)
		helper.AssertNoError(err)
		out, err := users.FilterArray(m)
		helper.AssertNoError(err)
		defer out.Close()
		helper.AssertJSON(`[{"name":"a","status":"active"}]`, out)
	})

	t.Run("FilterObject", func(t *testing.T) {
		headers := mustParse(t, p, `{"x-a":1,"b":2,"x-c":3}`, true)
		m, err := CompileMatcher(`key startsWith "x-"`)
		helper.AssertNoError(err)
		out, err := headers.FilterObject(m)
		helper.AssertNoError(err)
		defer out.Close()
		helper.AssertJSON(`{"x-a":1,"x-c":3}`, out)
		helper.AssertEqual(3, headers.Len())

		_, err = headers.FilterArray(m)
		helper.AssertErrorIs(err, ErrTypeMismatch)
	})

	t.Run("Match", func(t *testing.T) {
		m, err := CompileMatcher(`value == "x"`)
		helper.AssertNoError(err)
		ok, err := m.Match(mustParse(t, p, `"x"`, false))
		helper.AssertNoError(err)
		helper.AssertTrue(ok)
	})

	t.Run("CompileErrors", func(t *testing.T) {
		_, err := CompileMatcher(`value +`)
		helper.AssertError(err)
		_, err = CompileMatcher(`index + 1`)
		helper.AssertError(err)
	})
}
