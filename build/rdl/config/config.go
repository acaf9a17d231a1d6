// Package config handles tool configuration and setup.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"

	"google.com/regmap/build/rdl/export"
)

// ErrUsage is returned for invalid command line configurations.
var ErrUsage = errors.New("usage")

// CreateLogger creates a logger with appropriate settings.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Options configure one register map generation.
type Options struct {
	// Inputs are the hierarchy documents. Exactly one is supported.
	Inputs []string
	// Outputs are the requested output files. Relative names are placed
	// under OutDir.
	Outputs []string
	OutDir  string
	// LinkDir, when set, receives symlinks to the outputs.
	LinkDir string
	// Name overrides the map name in the outputs.
	Name  string
	Debug bool
	Quiet bool
}

// Validate checks the option combination.
func (o Options) Validate() error {
	switch len(o.Inputs) {
	case 0:
		return fmt.Errorf("%w: at least one --input arg is required", ErrUsage)
	case 1:
	default:
		return fmt.Errorf("%w: exactly one input is supported, got %v", ErrUsage, strings.Join(o.Inputs, ","))
	}
	if o.Debug && o.Quiet {
		return fmt.Errorf("%w: --debug and --quiet are exclusive", ErrUsage)
	}
	return nil
}

// Input is the single hierarchy document.
func (o Options) Input() string {
	return o.Inputs[0]
}

// OutputPaths returns the output files to produce. Without explicit outputs
// the BSV package, the HTML page and the JSON tree named after the input stem
// are produced.
func (o Options) OutputPaths() []string {
	outputs := o.Outputs
	if len(outputs) == 0 {
		outputs = DefaultOutputs(o.Input())
	}

	paths := make([]string, 0, len(outputs))
	for _, p := range outputs {
		if o.OutDir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(o.OutDir, p)
		}
		paths = append(paths, p)
	}
	return paths
}

// DefaultOutputs names the default output set for an input file.
func DefaultOutputs(input string) []string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return []string{
		export.PackageName(stem) + ".bsv",
		stem + ".html",
		stem + ".json",
	}
}
