package jsondoc

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

// ParseFiles parses independent files in parallel on a pool of
// Config.Workers goroutines. Results are returned in the order of names.
// If any file fails, every document already parsed is closed and the joined
// errors are returned.
func (p *Processor) ParseFiles(ctx context.Context, names []string, opts ...*ParseOptions) ([]*Value, error) {
	if err := p.checkClosed(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}
	o := parseOptions(p, opts)

	workers := min(p.config.Workers, len(names))
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, newOperationError("parse_files", "cannot start worker pool", err)
	}
	defer pool.Release()

	start := time.Now()
	values := make([]*Value, len(names))
	errs := make([]error, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			break
		}
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			values[i], errs[i] = p.parseFile(ctx, name, o)
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = newPathError("parse_files", name, "cannot schedule parse", submitErr)
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		for _, v := range values {
			if v != nil {
				v.Close()
			}
		}
		return nil, fmt.Errorf("parse_files: %w", err)
	}
	p.logOperation(ctx, "parse_files", fmt.Sprintf("%d files", len(names)), time.Since(start))
	return values, nil
}
