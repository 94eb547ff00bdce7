package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

func yamlConvert(cfg *YAMLConfig, cc *cli.Context, args []string) error {
	args, err := cfg.YAML.Parse(cc, args)
	if err != nil {
		cfg.YAML.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if !cfg.Reverse {
		values, _, err := cfg.load(args, false)
		if err != nil {
			return err
		}
		defer closeAll(values)
		for i, v := range values {
			out, err := v.ToYAML()
			if err != nil {
				return err
			}
			if i > 0 {
				io.WriteString(cc.Out, "---\n")
			}
			if _, err := cc.Out.Write(out); err != nil {
				return err
			}
		}
		return nil
	}

	if len(args) == 0 {
		args = []string{"-"}
	}
	p := cfg.processor()
	for _, name := range args {
		var data []byte
		if name == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return err
		}
		v, err := p.FromYAML(data)
		if err != nil {
			return fmt.Errorf("error converting %s: %w", name, err)
		}
		err = cfg.emit(cc.Out, v)
		v.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
