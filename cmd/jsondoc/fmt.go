package main

import (
	"github.com/scott-cotton/cli"
)

func format(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	values, _, err := cfg.load(args, false)
	if err != nil {
		return err
	}
	defer closeAll(values)
	for _, v := range values {
		if err := cfg.emit(cc.Out, v); err != nil {
			return err
		}
	}
	return nil
}
