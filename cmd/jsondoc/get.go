package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a JSON pointer", cli.ErrUsage)
	}
	ptr := args[0]
	values, names, err := cfg.load(args[1:], false)
	if err != nil {
		return err
	}
	defer closeAll(values)
	for i, root := range values {
		v, err := root.PtrGet(ptr)
		if err != nil {
			return fmt.Errorf("error resolving %s in %s: %w", ptr, names[i], err)
		}
		err = cfg.emit(cc.Out, v)
		v.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
