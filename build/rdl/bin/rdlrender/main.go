// rdlrender renders a user supplied template against an elaborated register
// map, for outputs that the built-in renderers of rdlgen do not cover.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"

	"google.com/regmap/build/rdl/config"
	"google.com/regmap/build/rdl/export"
	"google.com/regmap/build/rdl/node"
	"google.com/regmap/build/rdl/walker"
)

type Args struct {
	Infile       string
	Outfile      string
	TemplateFile string
	// TemplateName selects a template defined in TemplateFile.
	TemplateName string
	// MapName overrides the map name seen by the template.
	MapName string
	Debug   bool
}

func run(ctx context.Context, logger *log.Logger, args Args) error {
	if args.Infile == "" {
		return fmt.Errorf("param --input is required")
	}
	if args.Outfile == "" {
		return fmt.Errorf("param --outfile is required")
	}
	if args.TemplateFile == "" {
		return fmt.Errorf("param --template is required")
	}

	root, err := node.LoadFile(args.Infile)
	if err != nil {
		return fmt.Errorf("could not load register hierarchy: %v:\n\t\t%w", args.Infile, err)
	}
	m, err := walker.Walk(logger, root)
	if err != nil {
		return fmt.Errorf("could not elaborate: %v:\n\t\t%w", args.Infile, err)
	}

	return export.RenderTemplate(ctx, logger, export.TemplateRequest{
		Map:          m,
		Name:         args.MapName,
		TemplateFile: args.TemplateFile,
		TemplateName: args.TemplateName,
		Outfile:      args.Outfile,
	})
}

func main() {
	var args Args
	flag.StringVar(&args.Infile, "input", "", "The register hierarchy document to read")
	flag.StringVar(&args.Outfile, "outfile", "", "The output file to generate")
	flag.StringVar(&args.TemplateFile, "template", "", "The template file to use for generation")
	flag.StringVar(&args.TemplateName, "name", "", "The template to execute, defaults to the template file name")
	flag.StringVar(&args.MapName, "map-name", "", "Overrides the map name")
	flag.BoolVar(&args.Debug, "debug", false, "Enables debug logging")

	flag.Parse()

	logger := config.CreateLogger(args.Debug, false)
	if err := run(context.Background(), logger, args); err != nil {
		logger.Error("Rendering failed", log.String("program", os.Args[0]), log.Err(err))
		os.Exit(1)
	}
}
