package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/cybergodev/jsondoc"
)

type MainConfig struct {
	JSON5   bool `cli:"name=json5 desc='accept comments, trailing commas, Infinity and NaN'"`
	Indent  int  `cli:"name=indent desc='spaces per nesting level: 0, 2 or 4'"`
	ASCII   bool `cli:"name=a aliases=ascii desc='escape non-ASCII characters'"`
	Slashes bool `cli:"name=slashes desc='escape forward slashes'"`
	Color   bool `cli:"name=color desc='colorize output'"`
	Verbose bool `cli:"name=verbose desc='log document activity to stderr'"`

	Out      string
	CloseOut func() error

	Main *cli.Command

	ctx  context.Context
	seed int64
	proc *jsondoc.Processor
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) processor() *jsondoc.Processor {
	if cfg.proc != nil {
		return cfg.proc
	}
	pc := jsondoc.DefaultConfig()
	pc.ValidateFilePath = false
	if cfg.JSON5 {
		pc.ReadFlags = jsondoc.ReadJSON5
	}
	pc.WriteFlags = cfg.writeFlags()
	pc.RandomSeed = cfg.seed
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	pc.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	cfg.proc = jsondoc.New(pc)
	return cfg.proc
}

func (cfg *MainConfig) writeFlags() jsondoc.WriteFlag {
	flags := jsondoc.WriteNewlineAtEnd
	switch cfg.Indent {
	case 0:
	case 2:
		flags |= jsondoc.WritePrettyTwoSpaces
	default:
		flags |= jsondoc.WritePretty
	}
	if cfg.ASCII {
		flags |= jsondoc.WriteEscapeUnicode
	}
	if cfg.Slashes {
		flags |= jsondoc.WriteEscapeSlashes
	}
	if cfg.JSON5 {
		flags |= jsondoc.WriteAllowInfAndNaN
	}
	return flags
}

// colorize decides whether output to w gets ANSI colors: always with -color,
// otherwise only when w is a terminal.
func (cfg *MainConfig) colorize(w io.Writer) bool {
	if cfg.Color {
		color.NoColor = false
		return true
	}
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		color.NoColor = true
		return false
	}
	color.NoColor = false
	return true
}

// load parses the named files, or standard input when there are none. Files
// are parsed in parallel.
func (cfg *MainConfig) load(args []string, mutable bool) ([]*jsondoc.Value, []string, error) {
	p := cfg.processor()
	opts := &jsondoc.ParseOptions{Mutable: mutable}
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, nil, err
		}
		v, err := p.ParseBytes(data, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("error parsing stdin: %w", err)
		}
		return []*jsondoc.Value{v}, []string{"-"}, nil
	}
	values, err := p.ParseFiles(cfg.ctx, args, opts)
	if err != nil {
		return nil, nil, err
	}
	return values, args, nil
}

func (cfg *MainConfig) emit(w io.Writer, v *jsondoc.Value) error {
	out, err := v.ToBytes()
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func closeAll(values []*jsondoc.Value) {
	for _, v := range values {
		v.Close()
	}
}

type FmtConfig struct {
	*MainConfig

	Fmt *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig
	Add    bool `cli:"name=add desc='insert into arrays instead of replacing'"`
	String bool `cli:"name=s desc='treat value as a string rather than JSON'"`
	Strict bool `cli:"name=strict desc='do not create missing parents'"`

	Set *cli.Command
}

type RemoveConfig struct {
	*MainConfig

	Remove *cli.Command
}

type SortConfig struct {
	*MainConfig
	Pointer string `cli:"name=p desc='pointer to the container to sort'"`
	Reverse bool   `cli:"name=r desc='sort in descending order'"`
	Shuffle bool   `cli:"name=shuffle desc='shuffle array elements'"`
	Seed    int    `cli:"name=seed desc='seed for -shuffle'"`

	Sort *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only report through the exit code'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge bool `cli:"name=merge desc='apply an RFC 7386 merge patch'"`

	Patch *cli.Command
}

type FilterConfig struct {
	*MainConfig
	Pointer string `cli:"name=p desc='pointer to the container to filter'"`

	Filter *cli.Command
}

type ValidateConfig struct {
	*MainConfig
	Schema string `cli:"name=schema desc='schema document the files must match'"`

	Validate *cli.Command
}

type YAMLConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='convert YAML to JSON'"`

	YAML *cli.Command
}
