package export

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/retroenv/retrogolib/log"

	"google.com/regmap/build/rdl/model"
)

// TemplateRequest renders a user supplied template file.
type TemplateRequest struct {
	Map *model.Map
	// Name overrides the map name, as in Request.
	Name string
	// TemplateFile is parsed with the built-in template functions.
	TemplateFile string
	// TemplateName selects the template to execute, defaulting to the base
	// name of TemplateFile.
	TemplateName string
	Outfile      string
}

// RenderTemplate renders req.TemplateFile with the same binding the built-in
// renderers use and publishes the result to req.Outfile.
func RenderTemplate(ctx context.Context, logger *log.Logger, req TemplateRequest) error {
	tpl, err := LoadTemplate(req.TemplateFile)
	if err != nil {
		return fmt.Errorf("could not open or parse template file: %v:\n\t\t%w", req.TemplateFile, err)
	}
	name := req.TemplateName
	if name == "" {
		name = filepath.Base(req.TemplateFile)
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, name, NewBinding(req.Map, req.Name)); err != nil {
		return fmt.Errorf("could not render:\n\t%v:\n\t\t%w", req.Outfile, err)
	}
	return publish(ctx, logger, []rendered{{path: req.Outfile, data: buf.Bytes()}}, "")
}
