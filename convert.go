package jsondoc

import (
	"context"
	"fmt"
	"slices"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/cybergodev/jsondoc/internal"
)

// FromAny encodes a Go value and parses the result into a new mutable
// document.
func (p *Processor) FromAny(x any) (*Value, error) {
	if err := p.checkClosed(); err != nil {
		return nil, err
	}
	b, err := gojson.Marshal(x)
	if err != nil {
		return nil, newOperationError("from_any", "cannot encode value", err)
	}
	return p.parse(context.Background(), "from_any", "", string(b), &ParseOptions{Mutable: true})
}

// Decode stores the value into target, which must be a pointer, following
// encoding/json's mapping rules.
func (v *Value) Decode(target any) error {
	b, err := v.ToBytes(WriteNoFlag)
	if err != nil {
		return err
	}
	if err := gojson.Unmarshal(b, target); err != nil {
		return newOperationError("decode", "cannot decode value", err)
	}
	return nil
}

// Interface returns the value as plain Go data: nil, bool, uint64, int64,
// float64, string, []any and map[string]any. Of duplicate object keys the
// last one wins.
func (v *Value) Interface() (any, error) {
	n, err := v.read()
	if err != nil {
		return nil, err
	}
	return nodeInterface(n), nil
}

func nodeInterface(n internal.Node) any {
	switch n.Kind() {
	case internal.KindBool:
		return n.Bool()
	case internal.KindNumber:
		switch n.Subtype() {
		case internal.SubSint:
			return n.Sint()
		case internal.SubReal:
			return n.Real()
		default:
			return n.Uint()
		}
	case internal.KindString:
		return n.Str()
	case internal.KindArray:
		out := make([]any, 0, n.Len())
		n.Range(func(_ int, _ string, e internal.Node) bool {
			out = append(out, nodeInterface(e))
			return true
		})
		return out
	case internal.KindObject:
		out := make(map[string]any, n.Len())
		n.Range(func(_ int, key string, e internal.Node) bool {
			out[key] = nodeInterface(e)
			return true
		})
		return out
	}
	return nil
}

// ToYAML renders the value as YAML, keeping object keys in document order.
func (v *Value) ToYAML() ([]byte, error) {
	n, err := v.read()
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(yamlNode(n))
	if err != nil {
		return nil, newOperationError("to_yaml", "cannot encode YAML", err)
	}
	return out, nil
}

func yamlNode(n internal.Node) any {
	switch n.Kind() {
	case internal.KindArray:
		out := make([]any, 0, n.Len())
		n.Range(func(_ int, _ string, e internal.Node) bool {
			out = append(out, yamlNode(e))
			return true
		})
		return out
	case internal.KindObject:
		out := make(yaml.MapSlice, 0, n.Len())
		n.Range(func(_ int, key string, e internal.Node) bool {
			out = append(out, yaml.MapItem{Key: key, Value: yamlNode(e)})
			return true
		})
		return out
	}
	return nodeInterface(n)
}

// FromYAML parses a YAML document into a new mutable document. Mapping
// order is kept; non-string keys are converted to their text form and
// timestamps to RFC 3339 strings.
func (p *Processor) FromYAML(data []byte) (*Value, error) {
	if err := p.checkClosed(); err != nil {
		return nil, err
	}
	if int64(len(data)) > p.config.MaxJSONSize {
		err := newSizeLimitError("from_yaml", int64(len(data)), p.config.MaxJSONSize)
		p.logError(context.Background(), "from_yaml", "", err)
		return nil, err
	}
	var x any
	if err := yaml.UnmarshalWithOptions(data, &x, yaml.UseOrderedMap()); err != nil {
		err = newOperationError("from_yaml", "cannot decode YAML", err)
		p.logError(context.Background(), "from_yaml", "", err)
		return nil, err
	}

	doc := internal.NewMutDoc()
	root, err := p.fromGo(doc, x, 0)
	if err != nil {
		return nil, err
	}
	doc.SetRoot(root)
	return newValue(p.newDocument(doc, nil), root), nil
}

func (p *Processor) fromGo(d *internal.MutDoc, x any, depth int) (*internal.MutVal, error) {
	if depth >= p.config.MaxNestingDepth {
		return nil, newOperationError("from_yaml", "nesting too deep", ErrDepthLimit)
	}
	switch t := x.(type) {
	case nil:
		return d.NewNull(), nil
	case bool:
		return d.NewBool(t), nil
	case string:
		return d.NewStr(t), nil
	case int:
		return d.NewSint(int64(t)), nil
	case int64:
		return d.NewSint(t), nil
	case uint64:
		return d.NewUint(t), nil
	case uint:
		return d.NewUint(uint64(t)), nil
	case float64:
		if err := p.checkFloat("from_yaml", t); err != nil {
			return nil, err
		}
		return d.NewReal(t), nil
	case float32:
		return p.fromGo(d, float64(t), depth)
	case time.Time:
		return d.NewStr(t.Format(time.RFC3339Nano)), nil
	case []any:
		arr := d.NewArr()
		for _, e := range t {
			child, err := p.fromGo(d, e, depth+1)
			if err != nil {
				return nil, err
			}
			arr.Append(child)
		}
		return arr, nil
	case yaml.MapSlice:
		obj := d.NewObj()
		for _, item := range t {
			child, err := p.fromGo(d, item.Value, depth+1)
			if err != nil {
				return nil, err
			}
			obj.AddPair(yamlKey(item.Key), child)
		}
		return obj, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		obj := d.NewObj()
		for _, k := range keys {
			child, err := p.fromGo(d, t[k], depth+1)
			if err != nil {
				return nil, err
			}
			obj.AddPair(k, child)
		}
		return obj, nil
	}
	return nil, newOperationError("from_yaml", fmt.Sprintf("unsupported YAML value of type %T", x), ErrTypeMismatch)
}

func yamlKey(k any) string {
	switch t := k.(type) {
	case string:
		return t
	case nil:
		return "null"
	}
	return fmt.Sprint(k)
}
