package node

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/set"
	"gopkg.in/yaml.v3"
)

// ErrDecode is returned for hierarchy documents that can not be turned into a
// node tree.
var ErrDecode = errors.New("invalid hierarchy document")

const (
	defaultRegWidth = 32
	defaultMemWidth = 32
)

// document is the YAML shape of a single node. All kinds share it; build
// checks which keys make sense for which kind.
type document struct {
	Kind        string       `yaml:"kind"`
	Name        string       `yaml:"name"`
	Offset      uint64       `yaml:"offset"`
	Array       bool         `yaml:"array"`
	Desc        string       `yaml:"desc"`
	Src         string       `yaml:"src"`
	Children    []*document  `yaml:"children"`
	Type        string       `yaml:"type"`
	OrigType    string       `yaml:"orig_type"`
	Size        int          `yaml:"size"`
	RegWidth    int          `yaml:"regwidth"`
	AccessWidth int          `yaml:"accesswidth"`
	Fields      []*document  `yaml:"fields"`
	High        *int         `yaml:"high"`
	Low         *int         `yaml:"low"`
	Reset       *uint64      `yaml:"reset"`
	SW          string       `yaml:"sw"`
	OnRead      string       `yaml:"onread"`
	OnWrite     string       `yaml:"onwrite"`
	Encode      []EnumMember `yaml:"encode"`
	MemEntries  uint64       `yaml:"mementries"`
	MemWidth    int          `yaml:"memwidth"`

	line int
}

var (
	knownKeys = newKeySet(
		"kind", "name", "offset", "array", "desc", "src", "children",
		"type", "orig_type", "size", "regwidth", "accesswidth", "fields",
		"high", "low", "reset", "sw", "onread", "onwrite", "encode",
		"mementries", "memwidth",
	)
	encodeKeys = newKeySet("name", "value")
)

func newKeySet(keys ...string) set.Set[string] {
	s := set.New[string]()
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// checkKeys rejects anything but a mapping made of known keys.
func checkKeys(value *yaml.Node, known set.Set[string], what string) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: %w: expected a %s mapping", value.Line, ErrDecode, what)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		if !known.Contains(key.Value) {
			return fmt.Errorf("line %d: %w: unknown %s key %q", key.Line, ErrDecode, what, key.Value)
		}
	}
	return nil
}

// decodeError marks yaml type errors as ErrDecode. Errors of nested
// documents already carry it.
func decodeError(value *yaml.Node, err error) error {
	if errors.Is(err, ErrDecode) {
		return err
	}
	return fmt.Errorf("line %d: %w: %v", value.Line, ErrDecode, err)
}

func (d *document) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, knownKeys, "node"); err != nil {
		return err
	}
	type plain document
	if err := value.Decode((*plain)(d)); err != nil {
		return decodeError(value, err)
	}
	d.line = value.Line
	return nil
}

// UnmarshalYAML requires both the name and the value of an encode entry.
func (e *EnumMember) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, encodeKeys, "encode"); err != nil {
		return err
	}
	var raw struct {
		Name  string  `yaml:"name"`
		Value *uint64 `yaml:"value"`
	}
	if err := value.Decode(&raw); err != nil {
		return decodeError(value, err)
	}
	if raw.Name == "" || raw.Value == nil {
		return fmt.Errorf("line %d: %w: encode entry needs name and value", value.Line, ErrDecode)
	}
	e.Name, e.Value = raw.Name, *raw.Value
	return nil
}

// Load decodes a hierarchy document. filename is only used for source
// references of nodes that do not carry their own.
func Load(r io.Reader, filename string) (Node, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%v: %w: empty document", filename, ErrDecode)
		}
		if !errors.Is(err, ErrDecode) {
			return nil, fmt.Errorf("%v: %w: %v", filename, ErrDecode, err)
		}
		return nil, fmt.Errorf("%v: %w", filename, err)
	}
	n, err := doc.build(filename, "")
	if err != nil {
		return nil, fmt.Errorf("%v: %w", filename, err)
	}
	if _, ok := n.(*AddrMap); !ok {
		return nil, fmt.Errorf("%v: %w: top node must be an addrmap, got %v", filename, ErrDecode, n.Kind())
	}
	return n, nil
}

// LoadFile reads and decodes the hierarchy document at path.
func LoadFile(path string) (Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open hierarchy: %w", err)
	}
	defer f.Close()
	return Load(f, path)
}

func (d *document) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %w: %s", d.line, ErrDecode, fmt.Sprintf(format, args...))
}

func (d *document) common(filename string) Common {
	src := d.Src
	if src == "" {
		src = fmt.Sprintf("%s:%d", filename, d.line)
	}
	return Common{
		Name:   d.Name,
		Offset: d.Offset,
		Array:  d.Array,
		Desc:   d.Desc,
		Src:    src,
	}
}

// build converts d into a typed node. defaultKind applies when the document
// omits its kind, which is allowed for register fields.
func (d *document) build(filename string, defaultKind Kind) (Node, error) {
	kind := Kind(d.Kind)
	if kind == "" {
		kind = defaultKind
	}
	if d.Name == "" {
		return nil, d.errorf("node without name")
	}
	if len(d.Children) > 0 && kind != KindAddrMap && kind != KindRegFile {
		return nil, d.errorf("%v %q can not have children", kind, d.Name)
	}
	if len(d.Fields) > 0 && kind != KindReg {
		return nil, d.errorf("%v %q can not have fields", kind, d.Name)
	}

	switch kind {
	case KindAddrMap:
		children, err := d.buildChildren(filename)
		if err != nil {
			return nil, err
		}
		return &AddrMap{Common: d.common(filename), Children: children}, nil

	case KindRegFile:
		children, err := d.buildChildren(filename)
		if err != nil {
			return nil, err
		}
		return &RegFile{Common: d.common(filename), Children: children}, nil

	case KindReg:
		return d.buildReg(filename)

	case KindField:
		return d.buildField(filename)

	case KindMem:
		if d.MemEntries == 0 {
			return nil, d.errorf("mem %q needs mementries", d.Name)
		}
		width := d.MemWidth
		if width == 0 {
			width = defaultMemWidth
		}
		return &Mem{
			Common:       d.common(filename),
			TypeName:     d.Type,
			OrigTypeName: d.OrigType,
			Entries:      d.MemEntries,
			Width:        width,
		}, nil

	case "":
		return nil, d.errorf("node %q without kind", d.Name)

	default:
		return nil, d.errorf("unknown kind %q", d.Kind)
	}
}

func (d *document) buildChildren(filename string) ([]Node, error) {
	children := make([]Node, 0, len(d.Children))
	for _, c := range d.Children {
		n, err := c.build(filename, "")
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	return children, nil
}

func (d *document) buildReg(filename string) (Node, error) {
	size, width := d.Size, d.RegWidth
	switch {
	case size == 0 && width == 0:
		width = defaultRegWidth
		size = width / 8
	case size == 0:
		size = width / 8
	case width == 0:
		width = size * 8
	}
	if width != size*8 {
		return nil, d.errorf("reg %q: regwidth %d does not match size %d", d.Name, width, size)
	}
	access := d.AccessWidth
	if access == 0 {
		access = width
	}

	r := &Reg{
		Common:       d.common(filename),
		TypeName:     d.Type,
		OrigTypeName: d.OrigType,
		Size:         size,
		RegWidth:     width,
		AccessWidth:  access,
	}
	for _, fd := range d.Fields {
		n, err := fd.build(filename, KindField)
		if err != nil {
			return nil, err
		}
		f, ok := n.(*Field)
		if !ok {
			return nil, fd.errorf("reg %q: only fields are allowed in fields, got %v", d.Name, n.Kind())
		}
		r.Fields = append(r.Fields, f)
	}
	return r, nil
}

func (d *document) buildField(filename string) (Node, error) {
	if d.High == nil || d.Low == nil {
		return nil, d.errorf("field %q needs high and low", d.Name)
	}
	sw := Access(d.SW)
	if sw == "" {
		sw = AccessRW
	}
	if !sw.Valid() {
		return nil, d.errorf("field %q: unknown sw access %q", d.Name, d.SW)
	}
	onRead, onWrite := ReadEffect(d.OnRead), WriteEffect(d.OnWrite)
	if !onRead.Valid() {
		return nil, d.errorf("field %q: unknown onread %q", d.Name, d.OnRead)
	}
	if !onWrite.Valid() {
		return nil, d.errorf("field %q: unknown onwrite %q", d.Name, d.OnWrite)
	}
	return &Field{
		Common:  d.common(filename),
		High:    *d.High,
		Low:     *d.Low,
		Reset:   d.Reset,
		SW:      sw,
		OnRead:  onRead,
		OnWrite: onWrite,
		Encode:  d.Encode,
	}, nil
}
