package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/cybergodev/jsondoc"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a JSON pointer and a value", cli.ErrUsage)
	}
	ptr, raw := args[0], args[1]

	p := cfg.processor()
	var val *jsondoc.Value
	if cfg.String {
		val, err = p.NewString(raw)
	} else {
		val, err = p.Parse(raw)
	}
	if err != nil {
		return fmt.Errorf("error reading value %q: %w", raw, err)
	}
	defer val.Close()

	opts := &jsondoc.PointerOptions{CreateParents: !cfg.Strict}
	values, names, err := cfg.load(args[2:], true)
	if err != nil {
		return err
	}
	defer closeAll(values)
	for i, root := range values {
		if cfg.Add {
			err = root.PtrAdd(ptr, val, opts)
		} else {
			err = root.PtrSet(ptr, val, opts)
		}
		if err != nil {
			return fmt.Errorf("error setting %s in %s: %w", ptr, names[i], err)
		}
		if err := cfg.emit(cc.Out, root); err != nil {
			return err
		}
	}
	return nil
}

func remove(cfg *RemoveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Remove.Parse(cc, args)
	if err != nil {
		cfg.Remove.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: rm requires one argument, a JSON pointer", cli.ErrUsage)
	}
	ptr := args[0]
	values, names, err := cfg.load(args[1:], true)
	if err != nil {
		return err
	}
	defer closeAll(values)
	for i, root := range values {
		if err := root.PtrRemove(ptr); err != nil {
			return fmt.Errorf("error removing %s in %s: %w", ptr, names[i], err)
		}
		if err := cfg.emit(cc.Out, root); err != nil {
			return err
		}
	}
	return nil
}
