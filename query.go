package jsondoc

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/cybergodev/jsondoc/internal"
)

// matchEnv is the environment a Matcher expression sees. value is the
// element converted as by Interface; index is its position; key is the
// member name when matching object members, empty for arrays.
type matchEnv struct {
	Value any    `expr:"value"`
	Index int    `expr:"index"`
	Key   string `expr:"key"`
}

// Matcher is a compiled boolean predicate over container elements, written
// in the expr language:
//
//	value > 10 && index % 2 == 0
//	value.status == "active"
//	key startsWith "x-"
type Matcher struct {
	src  string
	prog *vm.Program
}

// CompileMatcher compiles src. The expression must yield a bool.
func CompileMatcher(src string) (*Matcher, error) {
	prog, err := expr.Compile(src, expr.Env(matchEnv{}), expr.AsBool())
	if err != nil {
		return nil, newOperationError("compile_matcher", "invalid expression", err)
	}
	return &Matcher{src: src, prog: prog}, nil
}

// String returns the source expression.
func (m *Matcher) String() string { return m.src }

func (m *Matcher) match(i int, key string, n internal.Node) (bool, error) {
	out, err := expr.Run(m.prog, matchEnv{Value: nodeInterface(n), Index: i, Key: key})
	if err != nil {
		return false, newOperationError("match", "expression failed", err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Match evaluates the predicate against v alone, with index 0 and no key.
func (m *Matcher) Match(v *Value) (bool, error) {
	n, err := v.read()
	if err != nil {
		return false, err
	}
	return m.match(0, "", n)
}

// IndexWhere returns the index of the first element of an array accepted
// by m, -1 when none is.
func (v *Value) IndexWhere(m *Matcher) (int, error) {
	arr, err := v.array("array_index_where")
	if err != nil {
		return -1, err
	}
	found := -1
	var matchErr error
	arr.Range(func(i int, _ string, n internal.Node) bool {
		ok, err := m.match(i, "", n)
		if err != nil {
			matchErr = err
			return false
		}
		if ok {
			found = i
			return false
		}
		return true
	})
	if matchErr != nil {
		return -1, matchErr
	}
	return found, nil
}

// FilterArray copies the elements of an array accepted by m into a new
// mutable array document.
func (v *Value) FilterArray(m *Matcher) (*Value, error) {
	arr, err := v.array("array_filter")
	if err != nil {
		return nil, err
	}
	return v.filter(arr, m, internal.KindArray)
}

// FilterObject copies the members of an object accepted by m into a new
// mutable object document, keeping their order.
func (v *Value) FilterObject(m *Matcher) (*Value, error) {
	obj, err := v.object("object_filter")
	if err != nil {
		return nil, err
	}
	return v.filter(obj, m, internal.KindObject)
}

func (v *Value) filter(src internal.Node, m *Matcher, kind internal.Kind) (*Value, error) {
	if err := v.doc.proc.checkClosed(); err != nil {
		return nil, err
	}
	doc := internal.NewMutDoc()
	var root *internal.MutVal
	if kind == internal.KindObject {
		root = doc.NewObj()
	} else {
		root = doc.NewArr()
	}
	var matchErr error
	src.Range(func(i int, key string, n internal.Node) bool {
		ok, err := m.match(i, key, n)
		if err != nil {
			matchErr = err
			return false
		}
		if !ok {
			return true
		}
		if kind == internal.KindObject {
			root.AddPair(key, internal.CopyInto(doc, n))
		} else {
			root.Append(internal.CopyInto(doc, n))
		}
		return true
	})
	if matchErr != nil {
		return nil, matchErr
	}
	doc.SetRoot(root)
	return newValue(v.doc.proc.newDocument(doc, nil), root), nil
}
