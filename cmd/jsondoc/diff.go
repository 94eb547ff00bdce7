package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/cybergodev/jsondoc"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	values, _, err := cfg.load(args, false)
	if err != nil {
		return err
	}
	defer closeAll(values)

	lines, err := jsondoc.Diff(values[0], values[1])
	if err != nil {
		return err
	}
	if !jsondoc.Changed(lines) {
		return nil
	}
	if !cfg.Quiet {
		if err := printDiff(cc.Out, lines, cfg.colorize(cc.Out)); err != nil {
			return err
		}
	}
	return cli.ExitCodeErr(1)
}

func printDiff(w io.Writer, lines []jsondoc.DiffLine, colors bool) error {
	del := color.New(color.FgRed).SprintFunc()
	ins := color.New(color.FgGreen).SprintFunc()
	for _, l := range lines {
		s := l.String()
		if colors {
			switch l.Op {
			case jsondoc.DiffDelete:
				s = del(s)
			case jsondoc.DiffInsert:
				s = ins(s)
			}
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}
