package jsondoc

import (
	"context"
)

// registerHandleType registers the processor's JSON handle type. Destroying
// a handle of that type closes the Value it was bound to.
func (p *Processor) registerHandleType() error {
	t, err := p.handles.CreateType("JSON/"+p.getProcessorID(), p.finalize, p.identity)
	if err != nil {
		return err
	}
	p.handleType = t
	return nil
}

func (p *Processor) finalize(_ HandleType, object any) {
	v, ok := object.(*Value)
	if !ok {
		return
	}
	h := v.handle
	v.release()
	p.metrics.RecordHandleClose()
	p.logger.Debug("handle destroyed", "handle", uint32(h), "processor_id", p.getProcessorID())
}

// HandleType returns the handle type this processor registered.
func (p *Processor) HandleType() HandleType {
	return p.handleType
}

// Open binds v to a new handle created for owner. A Value carries at most
// one handle; destroying the handle closes the Value.
func (p *Processor) Open(v *Value, owner *Identity) (Handle, error) {
	if err := p.checkClosed(); err != nil {
		return InvalidHandle, err
	}
	if err := v.check(); err != nil {
		return InvalidHandle, err
	}
	if v.doc.proc != p {
		return InvalidHandle, newOperationError("open_handle", "value belongs to another processor", ErrInvalidHandle)
	}
	if v.handle != InvalidHandle {
		return InvalidHandle, &HandleError{Handle: v.handle, Code: HandleBadParameter}
	}

	h, err := p.handles.Create(p.handleType, v, Security{Owner: owner, Identity: p.identity})
	if err != nil {
		p.logError(context.Background(), "open_handle", "", err)
		return InvalidHandle, err
	}
	v.handle = h
	v.owner = owner
	p.metrics.RecordHandleOpen()
	p.logger.Debug("handle created", "handle", uint32(h), "processor_id", p.getProcessorID())
	return h, nil
}

// Resolve returns the Value bound to h on behalf of owner, the identity the
// handle was opened for. The Value is shared, not copied: closing it
// destroys the handle.
func (p *Processor) Resolve(h Handle, owner *Identity) (*Value, error) {
	obj, err := p.handles.Read(h, p.handleType, Security{Owner: owner, Identity: p.identity})
	if err != nil {
		return nil, err
	}
	v := obj.(*Value)
	if v.owner != owner {
		return nil, &HandleError{Handle: h, Code: HandleAccessDenied}
	}
	return v, nil
}

// CloseHandle destroys h, closing its Value. The Value's document is freed
// once no other Value shares it.
func (p *Processor) CloseHandle(h Handle) error {
	if err := p.handles.Destroy(h, Security{Identity: p.identity}); err != nil {
		p.logError(context.Background(), "close_handle", "", err)
		return err
	}
	return nil
}
