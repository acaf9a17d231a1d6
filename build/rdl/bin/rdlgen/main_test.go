package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"

	"google.com/regmap/build/rdl/config"
	"google.com/regmap/build/rdl/export"
	"google.com/regmap/build/rdl/model"
)

const spiDoc = `
kind: addrmap
name: spi
children:
  - kind: reg
    name: CTRL
    type: ctrl_t
    offset: 0x10
    size: 1
    fields:
      - {name: EN, high: 0, low: 0, reset: 0}
`

const overlapDoc = `
kind: addrmap
name: spi
children:
  - kind: reg
    name: CTRL
    size: 1
    fields:
      - {name: A, high: 3, low: 0}
      - {name: B, high: 4, low: 2}
`

func writeInput(t *testing.T, name, doc string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(p, []byte(doc), 0o644))
	return p
}

func TestParseFlags(t *testing.T) {
	fs := flag.NewFlagSet("rdlgen", flag.ContinueOnError)
	opts, err := parseFlags(fs, []string{
		"--input", "spi.yaml",
		"--output", "Spi.bsv",
		"--out-dir", "gen",
		"--link-dir", "links",
		"--name", "SPI",
		"--debug",
		"spi.html", "spi.json",
	})
	assert.NoError(t, err)
	assert.Equal(t, "spi.yaml", strings.Join(opts.Inputs, ","))
	assert.Equal(t, "Spi.bsv,spi.html,spi.json", strings.Join(opts.Outputs, ","))
	assert.Equal(t, "gen", opts.OutDir)
	assert.Equal(t, "links", opts.LinkDir)
	assert.Equal(t, "SPI", opts.Name)
	assert.True(t, opts.Debug)
	assert.False(t, opts.Quiet)
}

func TestRunDefaultOutputs(t *testing.T) {
	input := writeInput(t, "spi.yaml", spiDoc)
	out := t.TempDir()

	var stdout bytes.Buffer
	opts := config.Options{Inputs: []string{input}, OutDir: out, Debug: true}
	assert.NoError(t, run(context.Background(), log.NewTestLogger(t), opts, &stdout))

	for _, n := range []string{"Spi.bsv", "spi.html", "spi.json"} {
		_, err := os.Stat(filepath.Join(out, n))
		assert.NoError(t, err)
	}
	assert.Contains(t, stdout.String(), "CTRL")
}

func TestRunQuietHasNoDump(t *testing.T) {
	input := writeInput(t, "spi.yaml", spiDoc)
	out := t.TempDir()

	var stdout bytes.Buffer
	opts := config.Options{Inputs: []string{input}, Outputs: []string{"regs.adoc"}, OutDir: out, Quiet: true}
	assert.NoError(t, run(context.Background(), log.NewTestLogger(t), opts, &stdout))
	assert.Equal(t, "", stdout.String())

	data, err := os.ReadFile(filepath.Join(out, "regs.adoc"))
	assert.NoError(t, err)
	assert.Contains(t, string(data), "== CTRL (0x10)")
}

func TestRunRejectsOutputsFirst(t *testing.T) {
	out := t.TempDir()
	opts := config.Options{
		Inputs:  []string{filepath.Join(out, "missing.yaml")},
		Outputs: []string{"Spi.bsv", "spi.txt"},
		OutDir:  out,
	}
	err := run(context.Background(), log.NewTestLogger(t), opts, &bytes.Buffer{})
	assert.ErrorIs(t, err, export.ErrUnknownExtension)

	opts.Outputs = []string{"a.json", "b.json"}
	err = run(context.Background(), log.NewTestLogger(t), opts, &bytes.Buffer{})
	assert.ErrorIs(t, err, export.ErrTooManyJSON)

	entries, err := os.ReadDir(out)
	assert.NoError(t, err)
	assert.Len(t, entries, 0)
}

func TestRunOverlapWritesNothing(t *testing.T) {
	input := writeInput(t, "spi.yaml", overlapDoc)
	out := t.TempDir()

	opts := config.Options{Inputs: []string{input}, OutDir: out}
	err := run(context.Background(), log.NewTestLogger(t), opts, &bytes.Buffer{})
	assert.ErrorIs(t, err, model.ErrOverlap)
	assert.ErrorContains(t, err, "while elaborating")

	entries, err := os.ReadDir(out)
	assert.NoError(t, err)
	assert.Len(t, entries, 0)
}

func TestRunUsage(t *testing.T) {
	err := run(context.Background(), log.NewTestLogger(t), config.Options{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, config.ErrUsage)
}
