package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file", cli.ErrUsage)
	}
	ops, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("error reading patch: %w", err)
	}
	values, names, err := cfg.load(args[1:], false)
	if err != nil {
		return err
	}
	defer closeAll(values)
	for i, root := range values {
		apply := root.ApplyPatch
		if cfg.Merge {
			apply = root.MergePatch
		}
		out, err := apply(ops)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", names[i], err)
		}
		err = cfg.emit(cc.Out, out)
		out.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
