package jsondoc

import (
	"fmt"

	"github.com/cybergodev/jsondoc/internal"
)

// Pack builds a mutable document from a format string and arguments.
//
// Directives:
//
//	{ }  begin and end an object; inside, keys are given with s
//	[ ]  begin and end an array
//	s    string argument
//	i    integer argument (any Go integer type)
//	f    float argument (float32 or float64)
//	b    bool argument
//	n    null, consumes no argument
//
// Whitespace, ':' and ',' are ignored, so `{s:i, s:[s,s]}` reads naturally.
// The format must describe exactly one value and consume every argument.
func (p *Processor) Pack(format string, args ...any) (*Value, error) {
	if err := p.checkClosed(); err != nil {
		return nil, err
	}
	k := &packer{p: p, format: format, args: args, doc: internal.NewMutDoc()}
	c, ok := k.next()
	if !ok {
		return nil, &PackError{Pos: 0, Message: "empty format"}
	}
	root, err := k.value(c, 0)
	if err != nil {
		return nil, err
	}
	if _, ok := k.next(); ok {
		return nil, &PackError{Pos: k.pos - 1, Message: "trailing directives after the value"}
	}
	if k.argi < len(args) {
		return nil, &PackError{Pos: len(format), Message: fmt.Sprintf("%d unused arguments", len(args)-k.argi)}
	}

	doc := p.newDocument(k.doc, nil)
	k.doc.SetRoot(root)
	return newValue(doc, root), nil
}

type packer struct {
	p      *Processor
	format string
	pos    int
	args   []any
	argi   int
	doc    *internal.MutDoc
}

// next returns the next directive, skipping separators.
func (k *packer) next() (byte, bool) {
	for k.pos < len(k.format) {
		c := k.format[k.pos]
		k.pos++
		switch c {
		case ' ', '\t', '\n', '\r', ':', ',':
			continue
		}
		return c, true
	}
	return 0, false
}

func (k *packer) fail(msg string) error {
	return &PackError{Pos: k.pos - 1, Message: msg}
}

func (k *packer) arg(directive byte) (any, error) {
	if k.argi >= len(k.args) {
		return nil, k.fail(fmt.Sprintf("missing argument for '%c'", directive))
	}
	a := k.args[k.argi]
	k.argi++
	return a, nil
}

func (k *packer) value(c byte, depth int) (*internal.MutVal, error) {
	if depth >= k.p.config.MaxNestingDepth {
		return nil, k.fail("nesting too deep")
	}
	switch c {
	case '{':
		obj := k.doc.NewObj()
		for {
			d, ok := k.next()
			if !ok {
				return nil, k.fail("unterminated object")
			}
			if d == '}' {
				return obj, nil
			}
			if d != 's' {
				return nil, k.fail(fmt.Sprintf("object key must be 's', got '%c'", d))
			}
			key, err := k.str()
			if err != nil {
				return nil, err
			}
			d, ok = k.next()
			if !ok || d == '}' {
				return nil, k.fail(fmt.Sprintf("missing value for key %q", key))
			}
			val, err := k.value(d, depth+1)
			if err != nil {
				return nil, err
			}
			obj.AddPair(key, val)
		}
	case '[':
		arr := k.doc.NewArr()
		for {
			d, ok := k.next()
			if !ok {
				return nil, k.fail("unterminated array")
			}
			if d == ']' {
				return arr, nil
			}
			val, err := k.value(d, depth+1)
			if err != nil {
				return nil, err
			}
			arr.Append(val)
		}
	case 's':
		s, err := k.str()
		if err != nil {
			return nil, err
		}
		return k.doc.NewStr(s), nil
	case 'i':
		return k.integer()
	case 'f':
		a, err := k.arg(c)
		if err != nil {
			return nil, err
		}
		var f float64
		switch x := a.(type) {
		case float64:
			f = x
		case float32:
			f = float64(x)
		default:
			return nil, k.fail(fmt.Sprintf("'f' expects a float, got %T", a))
		}
		if err := k.p.checkFloat("pack", f); err != nil {
			return nil, err
		}
		return k.doc.NewReal(f), nil
	case 'b':
		a, err := k.arg(c)
		if err != nil {
			return nil, err
		}
		b, ok := a.(bool)
		if !ok {
			return nil, k.fail(fmt.Sprintf("'b' expects a bool, got %T", a))
		}
		return k.doc.NewBool(b), nil
	case 'n':
		return k.doc.NewNull(), nil
	case '}', ']':
		return nil, k.fail(fmt.Sprintf("unexpected '%c'", c))
	default:
		return nil, k.fail(fmt.Sprintf("unknown directive '%c'", c))
	}
}

func (k *packer) str() (string, error) {
	a, err := k.arg('s')
	if err != nil {
		return "", err
	}
	s, ok := a.(string)
	if !ok {
		return "", k.fail(fmt.Sprintf("'s' expects a string, got %T", a))
	}
	return s, nil
}

func (k *packer) integer() (*internal.MutVal, error) {
	a, err := k.arg('i')
	if err != nil {
		return nil, err
	}
	switch x := a.(type) {
	case int:
		return k.doc.NewSint(int64(x)), nil
	case int8:
		return k.doc.NewSint(int64(x)), nil
	case int16:
		return k.doc.NewSint(int64(x)), nil
	case int32:
		return k.doc.NewSint(int64(x)), nil
	case int64:
		return k.doc.NewSint(x), nil
	case uint:
		return k.doc.NewUint(uint64(x)), nil
	case uint8:
		return k.doc.NewUint(uint64(x)), nil
	case uint16:
		return k.doc.NewUint(uint64(x)), nil
	case uint32:
		return k.doc.NewUint(uint64(x)), nil
	case uint64:
		return k.doc.NewUint(x), nil
	default:
		return nil, k.fail(fmt.Sprintf("'i' expects an integer, got %T", a))
	}
}
