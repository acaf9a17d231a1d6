// rdlgen generates register map artifacts from an elaborated register
// hierarchy.
//
// One invocation reads one hierarchy document and renders every requested
// output (BSV package, HTML page, AsciiDoc reference, JSON tree) from the same
// elaborated map. Outputs are only replaced once all of them rendered.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"strings"

	"github.com/retroenv/retrogolib/log"

	"google.com/regmap/build/rdl/config"
	"google.com/regmap/build/rdl/export"
	"google.com/regmap/build/rdl/node"
	"google.com/regmap/build/rdl/walker"
)

var _ flag.Value = (*RepeatedString)(nil)

type RepeatedString struct {
	values []string
}

func (s RepeatedString) Empty() bool {
	return len(s.values) == 0
}

func (s *RepeatedString) Set(v string) error {
	s.values = append(s.values, v)
	return nil
}

func (s *RepeatedString) String() string {
	return strings.Join(s.values, ",")
}

func parseFlags(fs *flag.FlagSet, args []string) (config.Options, error) {
	var (
		opts            config.Options
		inputs, outputs RepeatedString
	)
	fs.Var(&inputs, "input", "the register hierarchy document to read")
	fs.Var(&outputs, "output", "an output file; the extension selects the format (.bsv, .html, .adoc, .json)")
	fs.StringVar(&opts.OutDir, "out-dir", "", "the directory relative outputs are placed in")
	fs.StringVar(&opts.LinkDir, "link-dir", "", "if set, a symlink to every output is placed here")
	fs.StringVar(&opts.Name, "name", "", "overrides the map name used in the outputs")
	fs.BoolVar(&opts.Debug, "debug", false, "print the hierarchy and debug logs")
	fs.BoolVar(&opts.Quiet, "quiet", false, "only log errors")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.Inputs = inputs.values
	opts.Outputs = append(outputs.values, fs.Args()...)
	return opts, nil
}

func run(ctx context.Context, logger *log.Logger, opts config.Options, stdout io.Writer) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	// Bad output names are reported before any work is done.
	outputs, err := export.Resolve(opts.OutputPaths())
	if err != nil {
		return err
	}

	root, err := node.LoadFile(opts.Input())
	if err != nil {
		return fmt.Errorf("while loading: %v:\n\t\t%w", opts.Input(), err)
	}
	if opts.Debug {
		if err := node.Dump(stdout, root); err != nil {
			return fmt.Errorf("while dumping hierarchy: %w", err)
		}
	}

	m, err := walker.Walk(logger, root)
	if err != nil {
		return fmt.Errorf("while elaborating: %v:\n\t\t%w", opts.Input(), err)
	}
	logger.Debug("Register map elaborated",
		log.String("map", m.Name),
		log.Int("entries", len(m.Entries)),
		log.Bool("map_of_maps", m.MapOfMaps))

	return export.Export(ctx, logger, export.Request{
		Map:     m,
		Root:    root,
		Name:    opts.Name,
		Outputs: outputs,
		LinkDir: opts.LinkDir,
	})
}

func main() {
	p := path.Base(os.Args[0])

	fs := flag.NewFlagSet(p, flag.ExitOnError)
	opts, err := parseFlags(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", p, err)
		os.Exit(2)
	}
	logger := config.CreateLogger(opts.Debug, opts.Quiet)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, logger, opts, os.Stdout); err != nil {
		logger.Error("Generation failed", log.String("program", p), log.Err(err))
		stop()
		os.Exit(1)
	}
}
