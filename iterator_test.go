package jsondoc

import (
	"testing"
)

func TestIteratorObject(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	for _, mutable := range []bool{false, true} {
		obj := mustParse(t, p, `{"a":1,"b":[2,3],"c":{"d":4}}`, mutable)

		var keys []string
		var types []Type
		for key, val, ok := obj.NextPair(); ok; key, val, ok = obj.NextPair() {
			keys = append(keys, key)
			types = append(types, val.Type())
			val.Close()
		}
		helper.AssertDeepEqual([]string{"a", "b", "c"}, keys)
		helper.AssertDeepEqual([]Type{TypeNumber, TypeArray, TypeObject}, types)

		// the cursor rewinds after reporting the end
		key, ok := obj.NextKey()
		helper.AssertTrue(ok)
		helper.AssertEqual("a", key)
		obj.ResetIterator()
		key, _ = obj.NextKey()
		helper.AssertEqual("a", key)
		obj.ResetIterator()

		_, _, ok = obj.NextElement()
		helper.AssertFalse(ok, "object has no elements")
	}
}

func TestIteratorArray(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	for _, mutable := range []bool{false, true} {
		arr := mustParse(t, p, `[[1,[2]],"x",{"y":null},4]`, mutable)

		var idx []int
		var texts []string
		for i, val, ok := arr.NextElement(); ok; i, val, ok = arr.NextElement() {
			idx = append(idx, i)
			texts = append(texts, val.String())
			val.Close()
		}
		helper.AssertDeepEqual([]int{0, 1, 2, 3}, idx)
		helper.AssertDeepEqual([]string{`[1,[2]]`, `"x"`, `{"y":null}`, `4`}, texts)

		count := 0
		for _, ok := arr.NextIndex(); ok; _, ok = arr.NextIndex() {
			count++
		}
		helper.AssertEqual(4, count)
	}

	t.Run("Empty", func(t *testing.T) {
		_, _, ok := mustParse(t, p, `[]`, false).NextElement()
		helper.AssertFalse(ok)
		_, ok = mustParse(t, p, `{}`, true).NextKey()
		helper.AssertFalse(ok)
	})

	t.Run("Scalar", func(t *testing.T) {
		_, ok := mustParse(t, p, `1`, false).NextIndex()
		helper.AssertFalse(ok)
	})
}
