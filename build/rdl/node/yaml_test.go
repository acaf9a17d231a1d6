package node

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

const sampleDoc = `
kind: addrmap
name: spi_nor
children:
  - kind: reg
    name: CTRL
    type: ctrl_t
    offset: 0x10
    size: 1
    desc: Control register
    fields:
      - name: EN
        high: 0
        low: 0
        reset: 0
        onwrite: woclr
        encode:
          - {name: OFF, value: 0}
          - {name: ON, value: 1}
      - name: MODE
        high: 5
        low: 4
        sw: r
  - kind: regfile
    name: status
    offset: 0x20
    children:
      - kind: reg
        name: STS
        type: sts_t
        size: 1
  - kind: mem
    name: FIFO
    type: fifo_t
    offset: 0x100
    mementries: 16
    memwidth: 8
`

func TestLoad(t *testing.T) {
	n, err := Load(strings.NewReader(sampleDoc), "spi.yaml")
	assert.NoError(t, err)

	top, ok := n.(*AddrMap)
	assert.True(t, ok)
	assert.Equal(t, "spi_nor", top.Name)
	assert.Len(t, top.Children, 3)

	ctrl, ok := top.Children[0].(*Reg)
	assert.True(t, ok)
	assert.Equal(t, uint64(0x10), ctrl.Offset)
	assert.Equal(t, 8, ctrl.RegWidth)
	assert.Equal(t, 8, ctrl.AccessWidth)
	assert.Equal(t, "ctrl_t", ctrl.TypeIdentity())
	assert.Len(t, ctrl.Fields, 2)
	assert.Equal(t, "spi.yaml:5", ctrl.Src)

	en := ctrl.Fields[0]
	assert.Equal(t, AccessRW, en.SW)
	assert.Equal(t, WriteOneClear, en.OnWrite)
	assert.Equal(t, ReadEffect(""), en.OnRead)
	assert.NotNil(t, en.Reset)
	assert.Equal(t, uint64(0), *en.Reset)
	assert.Len(t, en.Encode, 2)
	assert.Equal(t, "ON", en.Encode[1].Name)

	mode := ctrl.Fields[1]
	assert.Equal(t, AccessR, mode.SW)
	assert.Nil(t, mode.Reset)

	rf, ok := top.Children[1].(*RegFile)
	assert.True(t, ok)
	sts, ok := rf.Children[0].(*Reg)
	assert.True(t, ok)
	assert.Len(t, sts.Fields, 0)

	mem, ok := top.Children[2].(*Mem)
	assert.True(t, ok)
	assert.Equal(t, uint64(16), mem.Entries)
	assert.Equal(t, 8, mem.Width)
}

func TestLoadDefaults(t *testing.T) {
	n, err := Load(strings.NewReader(`
kind: addrmap
name: top
children:
  - kind: reg
    name: WIDE
  - kind: mem
    name: RAM
    mementries: 4
`), "d.yaml")
	assert.NoError(t, err)

	top := n.(*AddrMap)
	wide := top.Children[0].(*Reg)
	assert.Equal(t, 32, wide.RegWidth)
	assert.Equal(t, 4, wide.Size)
	ram := top.Children[1].(*Mem)
	assert.Equal(t, 32, ram.Width)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		errText string
	}{
		{
			name:    "unknown key",
			doc:     "kind: addrmap\nname: top\ncolour: red\n",
			errText: `unknown node key "colour"`,
		},
		{
			name:    "unknown kind",
			doc:     "kind: signal\nname: top\n",
			errText: `unknown kind "signal"`,
		},
		{
			name:    "missing kind",
			doc:     "name: top\n",
			errText: "without kind",
		},
		{
			name:    "top is not a map",
			doc:     "kind: regfile\nname: top\n",
			errText: "top node must be an addrmap",
		},
		{
			name:    "field without bits",
			doc:     "kind: addrmap\nname: top\nchildren:\n  - kind: reg\n    name: R\n    size: 1\n    fields:\n      - name: F\n",
			errText: "needs high and low",
		},
		{
			name:    "bad access",
			doc:     "kind: addrmap\nname: top\nchildren:\n  - kind: reg\n    name: R\n    size: 1\n    fields:\n      - {name: F, high: 0, low: 0, sw: rwx}\n",
			errText: `unknown sw access "rwx"`,
		},
		{
			name:    "width mismatch",
			doc:     "kind: addrmap\nname: top\nchildren:\n  - {kind: reg, name: R, size: 1, regwidth: 16}\n",
			errText: "does not match size",
		},
		{
			name:    "children on a register",
			doc:     "kind: addrmap\nname: top\nchildren:\n  - kind: reg\n    name: R\n    children:\n      - {kind: reg, name: S}\n",
			errText: "can not have children",
		},
		{
			name:    "field bit not a number",
			doc:     "kind: addrmap\nname: top\nchildren:\n  - kind: reg\n    name: R\n    size: 1\n    fields:\n      - {name: F, high: x, low: 0}\n",
			errText: "line 8",
		},
		{
			name:    "negative reset",
			doc:     "kind: addrmap\nname: top\nchildren:\n  - kind: reg\n    name: R\n    size: 1\n    fields:\n      - {name: F, high: 0, low: 0, reset: -1}\n",
			errText: "line 8",
		},
		{
			name:    "size not a number",
			doc:     "kind: addrmap\nname: top\nchildren:\n  - {kind: reg, name: R, size: big}\n",
			errText: "line 4",
		},
		{
			name:    "misspelled encode key",
			doc:     "kind: addrmap\nname: top\nchildren:\n  - kind: reg\n    name: R\n    size: 1\n    fields:\n      - name: F\n        high: 0\n        low: 0\n        encode:\n          - {name: X, valu: 1}\n",
			errText: `unknown encode key "valu"`,
		},
		{
			name:    "encode without value",
			doc:     "kind: addrmap\nname: top\nchildren:\n  - kind: reg\n    name: R\n    size: 1\n    fields:\n      - name: F\n        high: 0\n        low: 0\n        encode:\n          - {name: X}\n",
			errText: "encode entry needs name and value",
		},
		{
			name:    "not yaml",
			doc:     "kind: [addrmap\n",
			errText: "bad.yaml",
		},
		{
			name:    "empty",
			doc:     "",
			errText: "empty document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc), "bad.yaml")
			assert.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)
			assert.ErrorContains(t, err, tt.errText)
		})
	}
}

func TestDump(t *testing.T) {
	n, err := Load(strings.NewReader(sampleDoc), "spi.yaml")
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, Dump(&buf, n))

	expected := "spi_nor @0x0\n" +
		"\tCTRL\n" +
		"\t\tOffset: 16\n" +
		"\t\tControl register\n" +
		"\t\t[0:0] EN sw=rw\n" +
		"\t\t[5:4] MODE sw=r\n" +
		"\tstatus @0x20\n" +
		"\t\tSTS\n" +
		"\t\t\tOffset: 0\n" +
		"\tFIFO\n" +
		"\t\tOffset: 256\n" +
		"\t\tEntries: 16 x 8 bits\n"
	assert.Equal(t, expected, buf.String())
}
