package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/cybergodev/jsondoc"
)

func filter(cfg *FilterConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Filter.Parse(cc, args)
	if err != nil {
		cfg.Filter.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: filter requires an expression", cli.ErrUsage)
	}
	m, err := jsondoc.CompileMatcher(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	values, names, err := cfg.load(args[1:], false)
	if err != nil {
		return err
	}
	defer closeAll(values)
	for i, root := range values {
		target, err := root.PtrGet(cfg.Pointer)
		if err != nil {
			return fmt.Errorf("error resolving %q in %s: %w", cfg.Pointer, names[i], err)
		}
		var out *jsondoc.Value
		if target.IsObject() {
			out, err = target.FilterObject(m)
		} else {
			out, err = target.FilterArray(m)
		}
		target.Close()
		if err != nil {
			return fmt.Errorf("error filtering %s: %w", names[i], err)
		}
		err = cfg.emit(cc.Out, out)
		out.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
