// Package export renders an elaborated register map into the requested
// output files.
//
// Every output of one invocation is rendered from the same *model.Map (and,
// for JSON, the hierarchy it was built from). Nothing is written until all
// outputs rendered successfully; the files are then published atomically.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/retroenv/retrogolib/log"

	"google.com/regmap/build/rdl/model"
	"google.com/regmap/build/rdl/node"
)

var (
	ErrUnknownExtension = errors.New("unrecognized output extension")
	ErrTooManyJSON      = errors.New("too many .json outputs")
)

// Format is an output renderer.
type Format string

const (
	FormatBSV      Format = "bsv"
	FormatHTML     Format = "html"
	FormatAsciiDoc Format = "adoc"
	FormatJSON     Format = "json"
)

var extensions = map[string]Format{
	".bsv":  FormatBSV,
	".html": FormatHTML,
	".adoc": FormatAsciiDoc,
	".json": FormatJSON,
}

// Output is one requested output file.
type Output struct {
	Path   string
	Format Format
}

// Resolve assigns a renderer to every output path by its extension. At most
// one JSON output may be requested.
func Resolve(paths []string) ([]Output, error) {
	var (
		outputs []Output
		jsons   []string
	)
	for _, p := range paths {
		format, ok := extensions[strings.ToLower(filepath.Ext(p))]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownExtension, p)
		}
		if format == FormatJSON {
			jsons = append(jsons, p)
		}
		outputs = append(outputs, Output{Path: p, Format: format})
	}
	if len(jsons) > 1 {
		return nil, fmt.Errorf("%w: %v", ErrTooManyJSON, strings.Join(jsons, ","))
	}
	return outputs, nil
}

// Binding is the data every template renders from.
type Binding struct {
	// MapName is the instance name of the top address map.
	MapName string
	// PackageName is the upper camel case package name derived from MapName.
	PackageName string
	// FlattenNames selects hierarchical names over block relative ones.
	FlattenNames bool
	Entries      []model.Entry
	Registers    []*model.Register
	Memories     []*model.Memory
}

// NewBinding builds the template binding for m. A non-empty name replaces the
// map name.
func NewBinding(m *model.Map, name string) *Binding {
	if name == "" {
		name = m.Name
	}
	return &Binding{
		MapName:      name,
		PackageName:  PackageName(name),
		FlattenNames: m.MapOfMaps,
		Entries:      m.Entries,
		Registers:    m.Registers(),
		Memories:     m.Memories(),
	}
}

// PackageName is the BSV package (and file stem) used for a map name.
func PackageName(name string) string {
	return strcase.ToCamel(strings.ToLower(name))
}

// Request describes one export invocation.
type Request struct {
	Map  *model.Map
	Root node.Node
	// Name overrides the map name in rendered outputs.
	Name    string
	Outputs []Output
	// LinkDir, when set, receives a symlink to every published output.
	LinkDir string
}

type rendered struct {
	path string
	data []byte
}

// Export renders all outputs of req and publishes them. On error no output
// of the request is left behind.
func Export(ctx context.Context, logger *log.Logger, req Request) error {
	binding := NewBinding(req.Map, req.Name)

	files := make([]rendered, 0, len(req.Outputs))
	for _, out := range req.Outputs {
		if err := ctx.Err(); err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := render(&buf, out.Format, binding, req); err != nil {
			return fmt.Errorf("while rendering: %v: %w", out.Path, err)
		}
		logger.Debug("Rendered output",
			log.String("path", out.Path),
			log.String("format", string(out.Format)),
			log.Int("bytes", buf.Len()))
		files = append(files, rendered{path: out.Path, data: buf.Bytes()})
	}

	return publish(ctx, logger, files, req.LinkDir)
}

func render(buf *bytes.Buffer, format Format, binding *Binding, req Request) error {
	switch format {
	case FormatBSV:
		return bsvTpl.Execute(buf, binding)
	case FormatHTML:
		return htmlTpl.Execute(buf, binding)
	case FormatAsciiDoc:
		return adocTpl.Execute(buf, binding)
	case FormatJSON:
		return WriteJSON(buf, req.Root, req.Map)
	default:
		return fmt.Errorf("%w: format %q", ErrUnknownExtension, format)
	}
}
