// genversion generates the BSV package carrying the build version and the
// short git SHA of the FPGA image.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/google/renameio/v2"
)

const defaultPackage = "FPGARev"

var (
	versionTmpl = template.Must(template.New("version").Parse(`
// Auto-generated as part of the FPGA build.
package {{.Package}};

Bit#(32) version = 'h{{printf "%x" .Version}};
Bit#(32) sha = 'h{{printf "%x" .SHA}};

function Bit#(8) byte_index(Bit#(32) value, Integer idx);
    return value[8*idx + 7:8*idx];
endfunction

endpackage
`))
)

type Bindings struct {
	Package string
	Version uint32
	SHA     uint32
}

type Args struct {
	Version string
	SHA     string
	Package string
	Outfile string
}

// bindings parses the version code (any Go integer literal) and the short
// SHA (hex).
func bindings(args Args) (Bindings, error) {
	if args.Version == "" {
		return Bindings{}, fmt.Errorf("param --version is required")
	}
	if args.SHA == "" {
		return Bindings{}, fmt.Errorf("param --sha is required")
	}
	version, err := strconv.ParseUint(args.Version, 0, 32)
	if err != nil {
		return Bindings{}, fmt.Errorf("invalid version code: %v: %w", args.Version, err)
	}
	sha, err := strconv.ParseUint(strings.TrimPrefix(args.SHA, "0x"), 16, 32)
	if err != nil {
		return Bindings{}, fmt.Errorf("invalid short sha: %v: %w", args.SHA, err)
	}

	b := Bindings{Package: args.Package, Version: uint32(version), SHA: uint32(sha)}
	if b.Package == "" && args.Outfile != "" {
		base := filepath.Base(args.Outfile)
		b.Package = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if b.Package == "" {
		b.Package = defaultPackage
	}
	return b, nil
}

func run(args Args, stdout io.Writer) error {
	b, err := bindings(args)
	if err != nil {
		return err
	}
	if args.Outfile == "" {
		return versionTmpl.Execute(stdout, b)
	}

	f, err := renameio.NewPendingFile(args.Outfile, renameio.WithStaticPermissions(0o644))
	if err != nil {
		return fmt.Errorf("could not create outfile: %v:\n\t\t%w", args.Outfile, err)
	}
	defer f.Cleanup()
	if err := versionTmpl.Execute(f, b); err != nil {
		return fmt.Errorf("could not write outfile:\n\t%v:\n\t\t%w", args.Outfile, err)
	}
	return f.CloseAtomicallyReplace()
}

func main() {
	log.SetPrefix(fmt.Sprintf("%v: ", path.Base(os.Args[0])))

	var args Args
	flag.StringVar(&args.Version, "version", "", "The integer version code")
	flag.StringVar(&args.SHA, "sha", "", "The short git SHA, in hex")
	flag.StringVar(&args.Package, "package", "", "The BSV package name, defaults to the outfile stem")
	flag.StringVar(&args.Outfile, "output", "", "The file to write, stdout if unset")
	flag.Parse()

	if err := run(args, os.Stdout); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}
