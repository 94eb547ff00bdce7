package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/cybergodev/jsondoc"
)

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		cfg.Validate.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: validate requires at least one file", cli.ErrUsage)
	}
	p := cfg.processor()

	var schema *jsondoc.Value
	if cfg.Schema != "" {
		schema, err = p.ParseFile(cfg.Schema)
		if err != nil {
			return fmt.Errorf("error reading schema: %w", err)
		}
		defer schema.Close()
	}

	cfg.colorize(cc.Out)
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()
	failed := 0
	for _, name := range args {
		msg, valid := check(p, schema, name)
		if valid {
			fmt.Fprintf(cc.Out, "%s: %s\n", name, ok("ok"))
			continue
		}
		failed++
		fmt.Fprintf(cc.Out, "%s: %s\n", name, bad(msg))
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func check(p *jsondoc.Processor, schema *jsondoc.Value, name string) (string, bool) {
	v, err := p.ParseFile(name)
	if err != nil {
		var pe *jsondoc.ParseError
		if errors.As(err, &pe) {
			return fmt.Sprintf("%s at byte %d", pe.Message, pe.Pos), false
		}
		return err.Error(), false
	}
	defer v.Close()
	if schema == nil {
		return "", true
	}
	match, err := v.Validate(schema)
	if err != nil {
		return err.Error(), false
	}
	if !match {
		return "does not match schema", false
	}
	return "", true
}
