// Package model holds the elaborated register map: registers with fully
// tiled field lists, and memories.
package model

import (
	"fmt"

	"google.com/regmap/build/rdl/node"
)

const (
	reservedName = "-"
	reservedDesc = "Reserved"
)

// Field is a contiguous bit range of a register. Fields synthesized by
// elaboration to cover unassigned bits are reserved fields; they carry no
// reset, access or encoding metadata.
type Field struct {
	Name    string
	High    int
	Low     int
	Desc    string
	Reset   *uint64
	Access  node.Access
	OnRead  node.ReadEffect
	OnWrite node.WriteEffect
	Encode  []node.EnumMember
	// Node is the declaring hierarchy node, nil for reserved fields.
	Node    *node.Field

	reserved bool
}

// NewField builds a declared field from a hierarchy field node.
func NewField(n *node.Field) *Field {
	return &Field{
		Name:    n.Name,
		High:    n.High,
		Low:     n.Low,
		Desc:    n.Desc,
		Reset:   n.Reset,
		Access:  n.SW,
		OnRead:  n.OnRead,
		OnWrite: n.OnWrite,
		Encode:  n.Encode,
		Node:    n,
	}
}

// NewReservedField builds the filler for bits [high:low].
func NewReservedField(high, low int) *Field {
	return &Field{
		Name:     reservedName,
		High:     high,
		Low:      low,
		Desc:     reservedDesc,
		reserved: true,
	}
}

// IsReserved reports whether f was synthesized by elaboration.
func (f *Field) IsReserved() bool { return f.reserved }

// Width is the number of bits of the field.
func (f *Field) Width() int { return f.High - f.Low + 1 }

// MaskValue is the field mask within its register.
func (f *Field) MaskValue() uint64 {
	return ((uint64(1) << f.Width()) - 1) << f.Low
}

// Mask is MaskValue as lower case hex, at least two digits.
func (f *Field) Mask() string {
	return fmt.Sprintf("%02x", f.MaskValue())
}

// BitSlice is "high:low", or just the bit index for single bit fields.
func (f *Field) BitSlice() string {
	if f.High == f.Low {
		return fmt.Sprint(f.Low)
	}
	return fmt.Sprintf("%d:%d", f.High, f.Low)
}

// HasReset reports whether the field defines a reset value.
func (f *Field) HasReset() bool { return f.Reset != nil }

// ResetValue is the reset value, zero when undefined.
func (f *Field) ResetValue() uint64 {
	if f.Reset == nil {
		return 0
	}
	return *f.Reset
}

// HasEncode reports whether the field carries an enumeration.
func (f *Field) HasEncode() bool { return len(f.Encode) > 0 }
