package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"google.com/regmap/build/rdl/model"
	"google.com/regmap/build/rdl/node"
)

// ErrArray is returned for arrayed nodes, which flat JSON can not describe.
var ErrArray = errors.New("JSON export does not support arrays")

type jsonField struct {
	Type      string            `json:"type"`
	InstName  string            `json:"inst_name"`
	LSB       int               `json:"lsb"`
	MSB       int               `json:"msb"`
	Reset     *uint64           `json:"reset"`
	SWAccess  *string           `json:"sw_access"`
	SEOnRead  *string           `json:"se_onread"`
	SEOnWrite *string           `json:"se_onwrite"`
	Desc      *string           `json:"desc"`
	Encode    []node.EnumMember `json:"encode,omitempty"`
}

type jsonReg struct {
	Type           string      `json:"type"`
	InstName       string      `json:"inst_name"`
	AddrOffset     uint64      `json:"addr_offset"`
	RegWidth       int         `json:"regwidth"`
	MinAccessWidth int         `json:"min_accesswidth"`
	Children       []jsonField `json:"children"`
}

type jsonMem struct {
	Type       string `json:"type"`
	InstName   string `json:"inst_name"`
	AddrOffset uint64 `json:"addr_offset"`
	MemWidth   int    `json:"memwidth"`
	MemEntries uint64 `json:"mementries"`
}

type jsonContainer struct {
	Type       string `json:"type"`
	InstName   string `json:"inst_name"`
	AddrOffset uint64 `json:"addr_offset"`
	Children   []any  `json:"children"`
}

// WriteJSON writes the hierarchy below root as a JSON tree. Tree shape and
// offsets come from the hierarchy; the field lists of registers come from
// their elaborated counterparts in m, reserved fields included, so the bit
// layout matches the other outputs.
func WriteJSON(w io.Writer, root node.Node, m *model.Map) error {
	conv := jsonConverter{regs: make(map[*node.Reg]*model.Register)}
	for _, r := range m.Registers() {
		conv.regs[r.Node] = r
	}

	obj, err := conv.convert(root)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(obj)
}

type jsonConverter struct {
	regs map[*node.Reg]*model.Register
}

func (c *jsonConverter) convert(n node.Node) (any, error) {
	if n.IsArray() {
		return nil, fmt.Errorf("%v: %w: %v", n.SrcRef(), ErrArray, n.InstName())
	}

	switch v := n.(type) {
	case *node.AddrMap:
		return c.container(string(v.Kind()), v.Common, v.Children)
	case *node.RegFile:
		return c.container(string(v.Kind()), v.Common, v.Children)
	case *node.Reg:
		return c.reg(v)
	case *node.Mem:
		return jsonMem{
			Type:       string(node.KindMem),
			InstName:   v.Name,
			AddrOffset: v.Offset,
			MemWidth:   v.Width,
			MemEntries: v.Entries,
		}, nil
	default:
		return nil, fmt.Errorf("%v: unknown child type %T seen during JSON generation", n.SrcRef(), n)
	}
}

func (c *jsonConverter) container(kind string, common node.Common, children []node.Node) (any, error) {
	obj := jsonContainer{
		Type:       kind,
		InstName:   common.Name,
		AddrOffset: common.Offset,
		Children:   make([]any, 0, len(children)),
	}
	for _, child := range children {
		j, err := c.convert(child)
		if err != nil {
			return nil, err
		}
		obj.Children = append(obj.Children, j)
	}
	return obj, nil
}

func (c *jsonConverter) reg(n *node.Reg) (any, error) {
	r, ok := c.regs[n]
	if !ok {
		return nil, fmt.Errorf("%v: register %v was not elaborated", n.Src, n.Name)
	}

	obj := jsonReg{
		Type:           string(node.KindReg),
		InstName:       n.Name,
		AddrOffset:     n.Offset,
		RegWidth:       n.RegWidth,
		MinAccessWidth: n.AccessWidth,
		Children:       make([]jsonField, 0, len(r.Fields)),
	}
	for _, f := range r.Fields {
		obj.Children = append(obj.Children, convertField(f))
	}
	return obj, nil
}

func convertField(f *model.Field) jsonField {
	j := jsonField{
		Type:     string(node.KindField),
		InstName: f.Name,
		LSB:      f.Low,
		MSB:      f.High,
		Reset:    f.Reset,
		Desc:     optional(f.Desc),
		Encode:   f.Encode,
	}
	if !f.IsReserved() {
		j.SWAccess = optional(string(f.Access))
		j.SEOnRead = optional(string(f.OnRead))
		j.SEOnWrite = optional(string(f.OnWrite))
	}
	return j
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
