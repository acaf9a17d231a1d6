package node

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human readable outline of the hierarchy below n, one
// component per line with tab indentation.
func Dump(w io.Writer, n Node) error {
	d := dumper{w: w}
	d.walk(n, 0)
	return d.err
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) printf(indent int, format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("\t", indent), fmt.Sprintf(format, args...))
}

func (d *dumper) walk(n Node, indent int) {
	switch v := n.(type) {
	case *AddrMap:
		d.printf(indent, "%s @0x%x", v.Name, v.Offset)
		for _, c := range v.Children {
			d.walk(c, indent+1)
		}
	case *RegFile:
		d.printf(indent, "%s @0x%x", v.Name, v.Offset)
		for _, c := range v.Children {
			d.walk(c, indent+1)
		}
	case *Reg:
		d.printf(indent, "%s", v.Name)
		d.printf(indent+1, "Offset: %d", v.Offset)
		if v.Desc != "" {
			d.printf(indent+1, "%s", v.Desc)
		}
		for _, f := range v.Fields {
			d.walk(f, indent+1)
		}
	case *Field:
		d.printf(indent, "[%d:%d] %s sw=%s", v.High, v.Low, v.Name, v.SW)
	case *Mem:
		d.printf(indent, "%s", v.Name)
		d.printf(indent+1, "Offset: %d", v.Offset)
		d.printf(indent+1, "Entries: %d x %d bits", v.Entries, v.Width)
	default:
		if d.err == nil {
			d.err = fmt.Errorf("dump: unexpected node type %T", n)
		}
	}
}
