package jsondoc

import (
	"context"

	jsonpatch "github.com/evanphx/json-patch"
)

// ApplyPatch applies an RFC 6902 patch document to a copy of v and returns
// the result as a new mutable document. v itself is not modified; on error
// nothing is created.
func (v *Value) ApplyPatch(patch []byte) (*Value, error) {
	src, err := v.ToBytes(WriteNoFlag)
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, newOperationError("apply_patch", "invalid patch document", err)
	}
	out, err := ops.Apply(src)
	if err != nil {
		return nil, newOperationError("apply_patch", "patch failed", err)
	}
	return v.doc.proc.parse(context.Background(), "apply_patch", "", string(out), &ParseOptions{Mutable: true})
}

// MergePatch applies an RFC 7386 merge patch to a copy of v.
func (v *Value) MergePatch(patch []byte) (*Value, error) {
	src, err := v.ToBytes(WriteNoFlag)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(src, patch)
	if err != nil {
		return nil, newOperationError("merge_patch", "merge failed", err)
	}
	return v.doc.proc.parse(context.Background(), "merge_patch", "", string(out), &ParseOptions{Mutable: true})
}

// CreateMergePatch returns the RFC 7386 merge patch turning from into to.
// Both must be objects.
func (p *Processor) CreateMergePatch(from, to *Value) (*Value, error) {
	a, err := from.ToBytes(WriteNoFlag)
	if err != nil {
		return nil, err
	}
	b, err := to.ToBytes(WriteNoFlag)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, newOperationError("create_merge_patch", "cannot diff documents", err)
	}
	return p.parse(context.Background(), "create_merge_patch", "", string(out), &ParseOptions{Mutable: true})
}
