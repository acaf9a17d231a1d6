package model

import (
	"fmt"
	"strings"

	"google.com/regmap/build/rdl/node"
)

// minFieldNameChars leaves room for "zerosX" style padding fields in text
// templates.
const minFieldNameChars = 6

// Entry is an element of the register map, either a *Register or a *Memory.
type Entry interface {
	// PrefixedName is the name joined to its hierarchy prefix with "_".
	PrefixedName() string
	// DisplayName is PrefixedName when flatten is set. Otherwise it is the
	// name relative to the top map, which keeps register file segments.
	DisplayName(flatten bool) string
	// Address is the absolute address of the entry.
	Address() uint64
	IsMemory() bool
}

var (
	_ Entry = (*Register)(nil)
	_ Entry = (*Memory)(nil)
)

// Register is one addressable storage location.
type Register struct {
	Width        int
	AccessWidth  int
	Name         string
	TypeName     string
	Desc         string
	Offset       uint64
	Prefix       []string
	Fields       []*Field
	RepeatedType bool
	Node         *node.Reg

	maxFieldNameChars int
}

// NewRegister builds a register without fields for the hierarchy node n.
// Fields are appended by the caller and laid out by Elaborate.
func NewRegister(n *node.Reg, prefix []string, offset uint64, repeated bool) *Register {
	return &Register{
		Width:             n.Size * 8,
		AccessWidth:       n.AccessWidth,
		Name:              n.Name,
		TypeName:          n.TypeIdentity(),
		Desc:              n.Desc,
		Offset:            offset,
		Prefix:            append([]string(nil), prefix...),
		RepeatedType:      repeated,
		Node:              n,
		maxFieldNameChars: minFieldNameChars,
	}
}

func (r *Register) PrefixedName() string { return prefixedName(r.Prefix, r.Name) }

func (r *Register) DisplayName(flatten bool) string {
	return displayName(r.Prefix, r.Name, flatten)
}

func (r *Register) Address() uint64 { return r.Offset }

func (r *Register) IsMemory() bool { return false }

// PackedFields returns the declared fields, without reserved fillers.
func (r *Register) PackedFields() []*Field {
	var out []*Field
	for _, f := range r.Fields {
		if !f.IsReserved() {
			out = append(out, f)
		}
	}
	return out
}

// HasResetDefinition reports whether every declared field has a reset value.
func (r *Register) HasResetDefinition() bool {
	for _, f := range r.PackedFields() {
		if !f.HasReset() {
			return false
		}
	}
	return true
}

// ResetValue combines the reset values of all declared fields.
func (r *Register) ResetValue() uint64 {
	var v uint64
	for _, f := range r.PackedFields() {
		v |= (f.ResetValue() << f.Low) & f.MaskValue()
	}
	return v
}

// FormatFieldName pads name to the longest field name of the register so
// text outputs line up.
func (r *Register) FormatFieldName(name string) string {
	return fmt.Sprintf("%-*s", r.maxFieldNameChars, name)
}

// Memory is an addressable block of Entries words of Width bits.
type Memory struct {
	Name         string
	TypeName     string
	Desc         string
	Offset       uint64
	Prefix       []string
	Entries      uint64
	Width        int
	RepeatedType bool
	Node         *node.Mem
}

// NewMemory builds the memory for hierarchy node n.
func NewMemory(n *node.Mem, prefix []string, offset uint64, repeated bool) *Memory {
	return &Memory{
		Name:         n.Name,
		TypeName:     n.TypeIdentity(),
		Desc:         n.Desc,
		Offset:       offset,
		Prefix:       append([]string(nil), prefix...),
		Entries:      n.Entries,
		Width:        n.Width,
		RepeatedType: repeated,
		Node:         n,
	}
}

func (m *Memory) PrefixedName() string { return prefixedName(m.Prefix, m.Name) }

func (m *Memory) DisplayName(flatten bool) string {
	return displayName(m.Prefix, m.Name, flatten)
}

func (m *Memory) Address() uint64 { return m.Offset }

func (m *Memory) IsMemory() bool { return true }

// SizeBytes is the address space taken by the memory.
func (m *Memory) SizeBytes() uint64 {
	return m.Entries * uint64((m.Width+7)/8)
}

// displayName drops the top map segment unless flatten is set.
func displayName(prefix []string, name string, flatten bool) string {
	if !flatten && len(prefix) > 0 {
		prefix = prefix[1:]
	}
	return prefixedName(prefix, name)
}

func prefixedName(prefix []string, name string) string {
	if len(prefix) == 0 {
		return name
	}
	return strings.Join(prefix, "_") + "_" + name
}

// Map is the canonical register map handed to every exporter.
type Map struct {
	// Name is the instance name of the top address map.
	Name string
	// MapOfMaps is set when every child of the top map is an address map.
	MapOfMaps bool
	// Entries are the registers and memories in document order.
	Entries []Entry
}

// Registers returns the registers of m in document order.
func (m *Map) Registers() []*Register {
	var out []*Register
	for _, e := range m.Entries {
		if r, ok := e.(*Register); ok {
			out = append(out, r)
		}
	}
	return out
}

// Memories returns the memories of m in document order.
func (m *Map) Memories() []*Memory {
	var out []*Memory
	for _, e := range m.Entries {
		if mem, ok := e.(*Memory); ok {
			out = append(out, mem)
		}
	}
	return out
}
