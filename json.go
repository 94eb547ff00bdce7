package jsondoc

import (
	"sync"
	"sync/atomic"
)

// shared holds the processor behind the package-level functions in api.go.
// It is built from DefaultConfig on first use, and again whenever the
// current one has been closed. Documents parsed through a closed processor
// stay readable; only its handles are gone.
var shared struct {
	mu sync.Mutex
	p  atomic.Pointer[Processor]
}

func getDefaultProcessor() *Processor {
	if p := shared.p.Load(); p != nil && !p.IsClosed() {
		return p
	}
	shared.mu.Lock()
	defer shared.mu.Unlock()
	p := shared.p.Load()
	if p == nil || p.IsClosed() {
		p = New()
		shared.p.Store(p)
	}
	return p
}

// DefaultProcessor returns the processor the package-level functions use.
func DefaultProcessor() *Processor {
	return getDefaultProcessor()
}

// SetDefaultProcessor routes the package-level functions to p and returns
// the processor it replaces, or nil. The previous processor is left open so
// that handles it issued keep resolving; closing it is up to the caller.
func SetDefaultProcessor(p *Processor) *Processor {
	if p == nil {
		return nil
	}
	shared.mu.Lock()
	defer shared.mu.Unlock()
	prev := shared.p.Swap(p)
	if prev == p {
		return nil
	}
	return prev
}

// CloseDefaultProcessor closes the current default processor, destroying
// every handle it issued. The next package-level call starts a fresh one.
func CloseDefaultProcessor() error {
	shared.mu.Lock()
	defer shared.mu.Unlock()
	if p := shared.p.Swap(nil); p != nil {
		return p.Close()
	}
	return nil
}
