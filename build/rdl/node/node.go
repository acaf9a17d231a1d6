// Package node describes the elaborated address-map hierarchy produced by the
// register description compiler.
//
// A hierarchy is a tree of *AddrMap, *RegFile, *Reg, *Field and *Mem values.
// Consumers switch over the concrete type; the set is closed.
package node

import "fmt"

// Kind names a node type the same way the JSON export does.
type Kind string

const (
	KindAddrMap Kind = "addrmap"
	KindRegFile Kind = "regfile"
	KindReg     Kind = "reg"
	KindField   Kind = "field"
	KindMem     Kind = "mem"
)

// Node is one element of the hierarchy.
type Node interface {
	Kind() Kind
	// InstName is the local path segment of the node.
	InstName() string
	// AddressOffset is the offset relative to the parent node.
	AddressOffset() uint64
	// IsArray reports whether the node was instantiated as an array.
	IsArray() bool
	// SrcRef is the source location, "file:line".
	SrcRef() string

	sealed()
}

// Common holds the properties every node kind carries.
type Common struct {
	Name   string
	Offset uint64
	Array  bool
	Desc   string
	Src    string
}

func (c *Common) InstName() string      { return c.Name }
func (c *Common) AddressOffset() uint64 { return c.Offset }
func (c *Common) IsArray() bool         { return c.Array }
func (c *Common) SrcRef() string        { return c.Src }
func (c *Common) sealed()               {}

// AddrMap is an address map, the top of every hierarchy.
type AddrMap struct {
	Common
	Children []Node
}

func (*AddrMap) Kind() Kind { return KindAddrMap }

// RegFile groups registers under a common name prefix.
type RegFile struct {
	Common
	Children []Node
}

func (*RegFile) Kind() Kind { return KindRegFile }

// Reg is a register and its declared fields, in declaration order.
type Reg struct {
	Common
	TypeName     string
	OrigTypeName string
	// Size is the register size in bytes.
	Size        int
	RegWidth    int
	AccessWidth int
	Fields      []*Field
}

func (*Reg) Kind() Kind { return KindReg }

// TypeIdentity is the structural type used to detect repeated instances.
// The un-renamed type wins over the effective one.
func (r *Reg) TypeIdentity() string {
	if r.OrigTypeName != "" {
		return r.OrigTypeName
	}
	return r.TypeName
}

// Field is a bit range of a register.
type Field struct {
	Common
	High    int
	Low     int
	Reset   *uint64
	SW      Access
	OnRead  ReadEffect
	OnWrite WriteEffect
	Encode  []EnumMember
}

func (*Field) Kind() Kind { return KindField }

// Mem is a memory block with Entries words of Width bits each.
type Mem struct {
	Common
	TypeName     string
	OrigTypeName string
	Entries      uint64
	Width        int
}

func (*Mem) Kind() Kind { return KindMem }

// TypeIdentity follows the same rule as Reg.TypeIdentity.
func (m *Mem) TypeIdentity() string {
	if m.OrigTypeName != "" {
		return m.OrigTypeName
	}
	return m.TypeName
}

// EnumMember is one entry of a field encoding.
type EnumMember struct {
	Name  string `yaml:"name" json:"name"`
	Value uint64 `yaml:"value" json:"value"`
}

// Children returns the immediate children of n. Register fields count as
// children of the register.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *AddrMap:
		return v.Children
	case *RegFile:
		return v.Children
	case *Reg:
		out := make([]Node, 0, len(v.Fields))
		for _, f := range v.Fields {
			out = append(out, f)
		}
		return out
	case *Field, *Mem:
		return nil
	default:
		panic(fmt.Sprintf("node: unexpected node type %T", n))
	}
}
