package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/cybergodev/jsondoc"
)

func sortDocs(cfg *SortConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Sort.Parse(cc, args)
	if err != nil {
		cfg.Sort.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	mode := jsondoc.SortAscending
	switch {
	case cfg.Shuffle && cfg.Reverse:
		return fmt.Errorf("%w: -shuffle and -r are exclusive", cli.ErrUsage)
	case cfg.Shuffle:
		mode = jsondoc.SortRandom
		cfg.seed = int64(cfg.Seed)
	case cfg.Reverse:
		mode = jsondoc.SortDescending
	}

	values, names, err := cfg.load(args, true)
	if err != nil {
		return err
	}
	defer closeAll(values)
	for i, root := range values {
		target, err := root.PtrGet(cfg.Pointer)
		if err != nil {
			return fmt.Errorf("error resolving %q in %s: %w", cfg.Pointer, names[i], err)
		}
		if target.IsObject() {
			err = target.SortObject(mode)
		} else {
			err = target.SortArray(mode)
		}
		target.Close()
		if err != nil {
			return fmt.Errorf("error sorting %s: %w", names[i], err)
		}
		if err := cfg.emit(cc.Out, root); err != nil {
			return err
		}
	}
	return nil
}
