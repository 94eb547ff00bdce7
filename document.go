package jsondoc

import (
	"sync/atomic"

	"github.com/cybergodev/jsondoc/internal"
)

// Document is one JSON tree, either mutable or immutable, shared by every
// Value that addresses a node inside it. The tree is dropped when the last
// of those Values is closed.
//
// Immutable documents may be read concurrently. Values sharing a mutable
// document must be used from one goroutine at a time.
type Document struct {
	mut  *internal.MutDoc
	imm  *internal.ImmDoc
	refs atomic.Int32
	proc *Processor
}

func (p *Processor) newDocument(mut *internal.MutDoc, imm *internal.ImmDoc) *Document {
	p.metrics.RecordDocument()
	return &Document{mut: mut, imm: imm, proc: p}
}

// Mutable reports whether the document accepts edits.
func (d *Document) Mutable() bool {
	return d.mut != nil
}

// Refs is the number of open Values sharing the document.
func (d *Document) Refs() int {
	return int(d.refs.Load())
}

// Released reports whether the last Value let go of the document.
func (d *Document) Released() bool {
	return d.mut == nil && d.imm == nil
}

// ValueCount is the number of nodes of an immutable document, object keys
// included; zero for mutable documents.
func (d *Document) ValueCount() int {
	return d.imm.ValueCount()
}

func (d *Document) retain() {
	d.refs.Add(1)
}

func (d *Document) release() {
	if d.refs.Add(-1) > 0 {
		return
	}
	d.mut, d.imm = nil, nil
	if d.proc != nil {
		d.proc.metrics.RecordRelease()
		d.proc.logger.Debug("document released", "processor_id", d.proc.getProcessorID())
	}
}
