package jsondoc

import (
	"errors"
	"testing"
)

func TestPointerReads(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	const doc = `{"a":{"b":[10,20,{"c":"deep"}]},"m~n":1,"x/y":2,"":"empty","t":true,"f":1.25,"z":null}`
	for _, mutable := range []bool{false, true} {
		root := mustParse(t, p, doc, mutable)

		n, err := root.PtrGetInt("/a/b/1")
		helper.AssertNoError(err)
		helper.AssertEqual(20, n)

		s, err := root.PtrGetString("/a/b/2/c")
		helper.AssertNoError(err)
		helper.AssertEqual("deep", s)

		n, err = root.PtrGetInt("/m~0n")
		helper.AssertNoError(err)
		helper.AssertEqual(1, n)

		n, err = root.PtrGetInt("/x~1y")
		helper.AssertNoError(err)
		helper.AssertEqual(2, n)

		s, err = root.PtrGetString("/")
		helper.AssertNoError(err)
		helper.AssertEqual("empty", s)

		b, err := root.PtrGetBool("/t")
		helper.AssertNoError(err)
		helper.AssertTrue(b)

		f, err := root.PtrGetFloat("/f")
		helper.AssertNoError(err)
		helper.AssertEqual(1.25, f)

		isNull, err := root.PtrIsNull("/z")
		helper.AssertNoError(err)
		helper.AssertTrue(isNull)

		length, err := root.PtrGetLength("/a/b/2/c")
		helper.AssertNoError(err)
		helper.AssertEqual(5, length)

		self, err := root.PtrGet("")
		helper.AssertNoError(err)
		helper.AssertTrue(self.Equal(root))
		self.Close()

		// relative to the addressed value
		a, err := root.PtrGet("/a")
		helper.AssertNoError(err)
		n, err = a.PtrGetInt("/b/0")
		helper.AssertNoError(err)
		helper.AssertEqual(10, n)
		a.Close()
	}
}

func TestPointerReadErrors(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)
	root := mustParse(t, p, `{"a":{"b":[1]}}`, false)

	tests := []struct {
		path string
		code PointerCode
		pos  int
	}{
		{"a", PointerSyntax, 0},
		{"/a/~2", PointerSyntax, 3},
		{"/a/missing", PointerResolve, 2},
		{"/a/b/5", PointerResolve, 4},
		{"/a/b/01", PointerResolve, 4},
		{"/a/b/-", PointerResolve, 4},
	}
	for _, tt := range tests {
		_, err := root.PtrGet(tt.path)
		var pe *PointerError
		if !errors.As(err, &pe) {
			t.Errorf("%s: expected *PointerError, got %v", tt.path, err)
			continue
		}
		helper.AssertEqual(tt.code, pe.Code, tt.path)
		helper.AssertEqual(tt.pos, pe.Pos, tt.path)
		helper.AssertErrorIs(err, ErrPointer)
	}

	t.Run("TryGet", func(t *testing.T) {
		_, ok := root.PtrTryGetInt("/a/b/0")
		helper.AssertTrue(ok)
		_, ok = root.PtrTryGetString("/a/b/0")
		helper.AssertFalse(ok)
		_, ok = root.PtrTryGet("/nope")
		helper.AssertFalse(ok)
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		_, err := root.PtrGetString("/a")
		helper.AssertErrorIs(err, ErrTypeMismatch)
		_, err = root.PtrGetLength("/a/b/0")
		helper.AssertErrorIs(err, ErrTypeMismatch)
	})
}

func TestPointerWrites(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	t.Run("SetCreatesParents", func(t *testing.T) {
		root := mustParse(t, p, `{}`, true)
		helper.AssertNoError(root.PtrSetInt("/a/b/c", 1))
		helper.AssertNoError(root.PtrSetString("/list/0/name", "x"))
		helper.AssertNoError(root.PtrSetBool("/list/-", true))
		helper.AssertJSON(`{"a":{"b":{"c":1}},"list":[{"name":"x"},true]}`, root)
	})

	t.Run("SetWithoutParents", func(t *testing.T) {
		root := mustParse(t, p, `{}`, true)
		err := root.PtrSetInt("/a/b", 1, &PointerOptions{CreateParents: false})
		var pe *PointerError
		helper.AssertTrue(errors.As(err, &pe))
		helper.AssertEqual(PointerResolve, pe.Code)
		helper.AssertJSON(`{}`, root)
	})

	t.Run("SetReplacesArrayElement", func(t *testing.T) {
		root := mustParse(t, p, `[1,2,3]`, true)
		helper.AssertNoError(root.PtrSetNull("/1"))
		helper.AssertNoError(root.PtrSetFloat("/3", 4.5))
		helper.AssertJSON(`[1,null,3,4.5]`, root)
		helper.AssertError(root.PtrSetInt("/9", 0))
	})

	t.Run("AddInsertsBefore", func(t *testing.T) {
		root := mustParse(t, p, `{"arr":[1,3]}`, true)
		helper.AssertNoError(root.PtrAddInt("/arr/1", 2))
		helper.AssertNoError(root.PtrAddInt64("/arr/-", 4))
		helper.AssertNoError(root.PtrAddString("/name", "n"))
		helper.AssertJSON(`{"arr":[1,2,3,4],"name":"n"}`, root)
	})

	t.Run("FailedWriteLeavesDocumentUnchanged", func(t *testing.T) {
		root := mustParse(t, p, `{"a":[]}`, true)
		helper.AssertError(root.PtrSetInt("/b/c/5/d", 1))
		helper.AssertError(root.PtrSetInt("/a/3/x", 1))
		helper.AssertJSON(`{"a":[]}`, root)
	})

	t.Run("RootIsRejected", func(t *testing.T) {
		root := mustParse(t, p, `{}`, true)
		err := root.PtrSetInt("", 1)
		var pe *PointerError
		helper.AssertTrue(errors.As(err, &pe))
		helper.AssertEqual(PointerSetRoot, pe.Code)
	})

	t.Run("SetValueIsCopiedWhenAttached", func(t *testing.T) {
		root := mustParse(t, p, `{"src":[1]}`, true)
		src, err := root.PtrGet("/src")
		helper.AssertNoError(err)
		defer src.Close()
		helper.AssertNoError(root.PtrSet("/dst/copy", src))
		helper.AssertNoError(src.AppendInt(2))
		helper.AssertJSON(`{"src":[1,2],"dst":{"copy":[1]}}`, root)
	})

	t.Run("Remove", func(t *testing.T) {
		root := mustParse(t, p, `{"k":1,"k":2,"arr":[1,2,3]}`, true)
		helper.AssertNoError(root.PtrRemove("/k"))
		helper.AssertNoError(root.PtrRemove("/arr/0"))
		helper.AssertJSON(`{"k":2,"arr":[2,3]}`, root)
		helper.AssertErrorIs(root.PtrRemove("/arr/5"), ErrPointer)
		helper.AssertErrorIs(root.PtrRemove("/nope/x"), ErrPointer)
	})

	t.Run("Immutable", func(t *testing.T) {
		root := mustParse(t, p, `{}`, false)
		helper.AssertErrorIs(root.PtrSetInt("/a", 1), ErrImmutable)
		helper.AssertErrorIs(root.PtrRemove("/a"), ErrImmutable)
	})
}
