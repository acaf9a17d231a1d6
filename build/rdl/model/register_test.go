package model

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"google.com/regmap/build/rdl/node"
)

func resetOf(v uint64) *uint64 { return &v }

func TestFieldDerived(t *testing.T) {
	f := field("MODE", 5, 4)
	assert.Equal(t, 2, f.Width())
	assert.Equal(t, "30", f.Mask())
	assert.Equal(t, "5:4", f.BitSlice())

	en := field("EN", 0, 0)
	assert.Equal(t, "01", en.Mask())
	assert.Equal(t, "0", en.BitSlice())

	all := field("DATA", 7, 0)
	assert.Equal(t, "ff", all.Mask())
}

func TestNewRegister(t *testing.T) {
	n := &node.Reg{
		Common:       node.Common{Name: "CTRL", Desc: "control"},
		TypeName:     "ctrl_t_1",
		OrigTypeName: "ctrl_t",
		Size:         1,
		RegWidth:     8,
		AccessWidth:  8,
	}
	prefix := []string{"spi", "regs"}
	r := NewRegister(n, prefix, 0x40, true)
	prefix[0] = "changed"

	assert.Equal(t, 8, r.Width)
	assert.Equal(t, "ctrl_t", r.TypeName)
	assert.Equal(t, uint64(0x40), r.Address())
	assert.Equal(t, "spi_regs_CTRL", r.PrefixedName())
	assert.Equal(t, "regs_CTRL", r.DisplayName(false))
	assert.Equal(t, "spi_regs_CTRL", r.DisplayName(true))
	assert.True(t, r.RepeatedType)
	assert.False(t, r.IsMemory())
}

func TestPrefixedNameWithoutPrefix(t *testing.T) {
	r := &Register{Name: "CTRL"}
	assert.Equal(t, "CTRL", r.PrefixedName())
	assert.Equal(t, "CTRL", r.DisplayName(false))
}

func TestDisplayNameKeepsRegisterFiles(t *testing.T) {
	tests := []struct {
		prefix  []string
		local   string
		flatten string
	}{
		{prefix: []string{"spi"}, local: "STS", flatten: "spi_STS"},
		{prefix: []string{"spi", "ch0"}, local: "ch0_STS", flatten: "spi_ch0_STS"},
		{prefix: []string{"spi", "ch1", "irq"}, local: "ch1_irq_STS", flatten: "spi_ch1_irq_STS"},
	}
	for _, tt := range tests {
		t.Run(tt.flatten, func(t *testing.T) {
			r := &Register{Name: "STS", Prefix: tt.prefix}
			assert.Equal(t, tt.local, r.DisplayName(false))
			assert.Equal(t, tt.flatten, r.DisplayName(true))

			m := &Memory{Name: "STS", Prefix: tt.prefix}
			assert.Equal(t, tt.local, m.DisplayName(false))
			assert.Equal(t, tt.flatten, m.DisplayName(true))
		})
	}
}

func TestResetDefinition(t *testing.T) {
	a := field("A", 7, 4)
	a.Reset = resetOf(0x5)
	b := field("B", 0, 0)
	b.Reset = resetOf(1)

	r := reg8(a, b)
	assert.NoError(t, r.Elaborate())
	assert.True(t, r.HasResetDefinition())
	assert.Equal(t, uint64(0x51), r.ResetValue())

	c := field("C", 2, 1)
	r = reg8(a, c)
	assert.NoError(t, r.Elaborate())
	assert.False(t, r.HasResetDefinition())
}

func TestFormatFieldName(t *testing.T) {
	r := reg8(field("EN", 0, 0))
	assert.NoError(t, r.Elaborate())
	assert.Equal(t, "EN    ", r.FormatFieldName("EN"))

	r = reg8(field("TRANSMIT", 0, 0))
	assert.NoError(t, r.Elaborate())
	assert.Equal(t, "-       ", r.FormatFieldName("-"))
}

func TestMapViews(t *testing.T) {
	r := &Register{Name: "R"}
	m := &Memory{Name: "M", Entries: 16, Width: 12}
	rm := &Map{Entries: []Entry{r, m}}

	assert.Len(t, rm.Registers(), 1)
	assert.Len(t, rm.Memories(), 1)
	assert.True(t, m.IsMemory())
	assert.Equal(t, uint64(32), m.SizeBytes())
}
