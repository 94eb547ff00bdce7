package jsondoc

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cybergodev/jsondoc/internal"
)

// Processor is the session context documents are created in. It owns the
// configuration, the logger, the handle type registered with the handle
// table, and the random generator used by SortRandom. Values created by one
// processor keep a reference to it for the rest of their life.
type Processor struct {
	config      *Config
	state       int32 // 0=active, 1=closing, 2=closed
	cleanupOnce sync.Once
	logger      *slog.Logger
	metrics     *internal.MetricsCollector
	resolver    *PathResolver

	handles    HandleSystem
	handleType HandleType
	identity   *Identity

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates a new processor with the given configuration.
// If no configuration is provided, uses default configuration.
func New(config ...*Config) *Processor {
	var cfg *Config
	if len(config) > 0 && config[0] != nil {
		cfg = config[0].Clone()
	} else {
		cfg = DefaultConfig()
	}

	if err := ValidateConfig(cfg); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}
	resolver, err := NewPathResolver(cfg.FileRoot, cfg.ValidateFilePath)
	if err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}

	seed := uint64(cfg.RandomSeed)
	if cfg.RandomSeed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	p := &Processor{
		config:   cfg,
		logger:   cfg.Logger,
		metrics:  internal.NewMetricsCollector(),
		resolver: resolver,
		handles:  cfg.Handles,
		identity: NewIdentity("jsondoc"),
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	if p.logger == nil {
		p.logger = slog.Default().With("component", "jsondoc")
	}
	if p.handles == nil {
		p.handles = NewHandleTable(cfg.MaxHandles)
	}
	if err := p.registerHandleType(); err != nil {
		panic(fmt.Sprintf("cannot register handle type: %v", err))
	}
	return p
}

// Config returns a copy of the processor configuration.
func (p *Processor) Config() *Config {
	return p.config.Clone()
}

// Logger returns the processor's logger.
func (p *Processor) Logger() *slog.Logger {
	return p.logger
}

// Stats is a snapshot of a processor's lifecycle counters.
type Stats = internal.Metrics

// Stats returns the document, handle and parse counters of the processor.
func (p *Processor) Stats() Stats {
	return p.metrics.GetMetrics()
}

// Close destroys every handle still open for this processor's handle type,
// which closes the Values bound to them. Values without a handle stay usable
// until they are closed themselves.
func (p *Processor) Close() error {
	var err error
	p.cleanupOnce.Do(func() {
		atomic.StoreInt32(&p.state, 1)
		err = p.handles.RemoveType(p.handleType, p.identity)
		atomic.StoreInt32(&p.state, 2)
		if err != nil {
			p.logError(context.Background(), "close", "", err)
			return
		}
		p.logger.Debug("processor closed", "processor_id", p.getProcessorID())
	})
	return err
}

// IsClosed reports whether Close has been called.
func (p *Processor) IsClosed() bool {
	return atomic.LoadInt32(&p.state) != 0
}

func (p *Processor) checkClosed() error {
	if p.IsClosed() {
		return ErrProcessorClosed
	}
	return nil
}

func (p *Processor) shuffle(n int, swap func(i, j int)) {
	p.rngMu.Lock()
	defer p.rngMu.Unlock()
	p.rng.Shuffle(n, swap)
}

func parseOptions(p *Processor, opts []*ParseOptions) *ParseOptions {
	o := DefaultParseOptions()
	if len(opts) > 0 && opts[0] != nil {
		*o = *opts[0]
	}
	if o.Flags == ReadNoFlag {
		o.Flags = p.config.ReadFlags
	}
	return o
}

// parse reads s into a new document. On failure nothing is allocated that
// outlives the call.
func (p *Processor) parse(ctx context.Context, op, path, s string, o *ParseOptions) (*Value, error) {
	if err := p.checkClosed(); err != nil {
		return nil, err
	}
	if int64(len(s)) > p.config.MaxJSONSize {
		err := newSizeLimitError(op, int64(len(s)), p.config.MaxJSONSize)
		p.logError(ctx, op, path, err)
		return nil, err
	}

	start := time.Now()
	imm, serr := internal.Parse(s, o.Flags, p.config.MaxNestingDepth)
	elapsed := time.Since(start)
	p.metrics.RecordParse(elapsed, serr == nil, len(s))
	if serr != nil {
		err := newParseError(serr)
		p.logError(ctx, op, path, err)
		return nil, err
	}
	if elapsed > SlowOperationThreshold {
		p.logger.Warn("slow JSON parse",
			slog.String("operation", op),
			slog.Int("bytes", len(s)),
			slog.Int64("duration_ms", elapsed.Milliseconds()),
		)
	}

	var v *Value
	if o.Mutable {
		doc := p.newDocument(internal.CopyDoc(imm.Root()), nil)
		v = newValue(doc, doc.mut.Root())
	} else {
		doc := p.newDocument(nil, imm)
		v = newValue(doc, imm.Root())
	}
	v.readSize = imm.ReadSize()
	return v, nil
}

// Parse reads a JSON document from text. By default the result is
// immutable; ParseOptions.Mutable yields an editable copy.
func (p *Processor) Parse(s string, opts ...*ParseOptions) (*Value, error) {
	return p.parse(context.Background(), "parse", "", s, parseOptions(p, opts))
}

// ParseBytes is Parse for a byte slice.
func (p *Processor) ParseBytes(b []byte, opts ...*ParseOptions) (*Value, error) {
	return p.parse(context.Background(), "parse", "", string(b), parseOptions(p, opts))
}

// ParseFile reads and parses the named file, resolved through the
// processor's path rules.
func (p *Processor) ParseFile(name string, opts ...*ParseOptions) (*Value, error) {
	return p.parseFile(context.Background(), name, parseOptions(p, opts))
}

func (p *Processor) parseFile(ctx context.Context, name string, o *ParseOptions) (*Value, error) {
	if err := p.checkClosed(); err != nil {
		return nil, err
	}
	data, _, err := p.readFile(ctx, name)
	if err != nil {
		return nil, err
	}
	return p.parse(ctx, "parse_file", name, data, o)
}

// newMutable creates a mutable document whose root is produced by b.
func (p *Processor) newMutable(b builder) (*Value, error) {
	if err := p.checkClosed(); err != nil {
		return nil, err
	}
	doc := p.newDocument(internal.NewMutDoc(), nil)
	root := b(doc.mut)
	doc.mut.SetRoot(root)
	return newValue(doc, root), nil
}

// NewObject creates a mutable document holding an empty object.
func (p *Processor) NewObject() (*Value, error) { return p.newMutable(objectNode()) }

// NewArray creates a mutable document holding an empty array.
func (p *Processor) NewArray() (*Value, error) { return p.newMutable(arrayNode()) }

// NewBool, NewInt, NewInt64, NewUint64, NewString and NewNull create
// mutable documents holding a single scalar.
func (p *Processor) NewBool(b bool) (*Value, error)     { return p.newMutable(boolNode(b)) }
func (p *Processor) NewInt(n int) (*Value, error)       { return p.newMutable(intNode(int64(n))) }
func (p *Processor) NewInt64(n int64) (*Value, error)   { return p.newMutable(intNode(n)) }
func (p *Processor) NewUint64(n uint64) (*Value, error) { return p.newMutable(uintNode(n)) }
func (p *Processor) NewString(s string) (*Value, error) { return p.newMutable(stringNode(s)) }
func (p *Processor) NewNull() (*Value, error)           { return p.newMutable(nullNode()) }

// NewInt64String creates an integer from decimal text covering the int64
// and uint64 ranges.
func (p *Processor) NewInt64String(s string) (*Value, error) {
	b, err := int64StringNode("new_int64", s)
	if err != nil {
		return nil, err
	}
	return p.newMutable(b)
}

// NewFloat creates a float value.
func (p *Processor) NewFloat(f float64) (*Value, error) {
	if err := p.checkFloat("new_float", f); err != nil {
		return nil, err
	}
	return p.newMutable(floatNode(f))
}
