// Package walker turns an elaborated address-map hierarchy into the flat,
// document ordered register map consumed by the exporters.
package walker

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"

	"google.com/regmap/build/rdl/model"
	"google.com/regmap/build/rdl/node"
)

// ErrMalformed is returned when the hierarchy breaks a structural invariant,
// such as a field outside of any register.
var ErrMalformed = errors.New("malformed hierarchy")

// IsMapOfMaps reports whether top is an address map whose immediate children
// are all address maps. Only that one level is inspected.
func IsMapOfMaps(top node.Node) bool {
	m, ok := top.(*node.AddrMap)
	if !ok || len(m.Children) == 0 {
		return false
	}
	for _, c := range m.Children {
		if _, ok := c.(*node.AddrMap); !ok {
			return false
		}
	}
	return true
}

// accumulator is the traversal state of a single Walk call.
type accumulator struct {
	logger    *log.Logger
	top       node.Node
	mapOfMaps bool

	prefix  []string
	seen    set.Set[string]
	cur     *model.Register
	entries []model.Entry
}

// Walk builds the register map for top. Every register is elaborated as it
// is closed; the first failure stops the walk.
func Walk(logger *log.Logger, top node.Node) (*model.Map, error) {
	acc := &accumulator{
		logger:    logger,
		top:       top,
		mapOfMaps: IsMapOfMaps(top),
		seen:      set.New[string](),
	}
	if err := acc.walk(top, 0); err != nil {
		return nil, err
	}

	logger.Debug("Register map built",
		log.String("map", top.InstName()),
		log.Int("entries", len(acc.entries)))

	return &model.Map{
		Name:      top.InstName(),
		MapOfMaps: acc.mapOfMaps,
		Entries:   acc.entries,
	}, nil
}

// walk visits n, whose parent starts at absolute address base.
func (a *accumulator) walk(n node.Node, base uint64) error {
	switch v := n.(type) {
	case *node.AddrMap:
		return a.container(v, v.Children, base)
	case *node.RegFile:
		return a.container(v, v.Children, base)
	case *node.Reg:
		return a.register(v, base)
	case *node.Field:
		return a.field(v)
	case *node.Mem:
		return a.memory(v, base)
	default:
		return fmt.Errorf("%w: unexpected node type %T", ErrMalformed, n)
	}
}

func (a *accumulator) container(n node.Node, children []node.Node, base uint64) error {
	if a.cur != nil {
		return fmt.Errorf("%v: %w: %v %q inside register %q",
			n.SrcRef(), ErrMalformed, n.Kind(), n.InstName(), a.cur.Name)
	}

	addr := base + n.AddressOffset()
	prefixed := !(a.mapOfMaps && n == a.top)
	if prefixed {
		a.prefix = append(a.prefix, n.InstName())
	}
	for _, c := range children {
		if err := a.walk(c, addr); err != nil {
			return err
		}
	}
	if prefixed {
		a.prefix = a.prefix[:len(a.prefix)-1]
	}
	return nil
}

func (a *accumulator) register(n *node.Reg, base uint64) error {
	if a.cur != nil {
		return fmt.Errorf("%v: %w: register %q opened inside register %q",
			n.Src, ErrMalformed, n.Name, a.cur.Name)
	}

	a.cur = model.NewRegister(n, a.prefix, base+n.Offset, a.repeated(n.TypeIdentity()))
	for _, f := range n.Fields {
		if err := a.walk(f, 0); err != nil {
			return err
		}
	}

	if err := a.cur.Elaborate(); err != nil {
		return fmt.Errorf("%v: %w", n.Src, err)
	}
	a.logger.Debug("Register elaborated",
		log.String("name", a.cur.PrefixedName()),
		log.Hex("address", a.cur.Offset),
		log.Int("fields", len(a.cur.Fields)))

	a.entries = append(a.entries, a.cur)
	a.cur = nil
	return nil
}

func (a *accumulator) field(n *node.Field) error {
	if a.cur == nil {
		return fmt.Errorf("%v: %w: field %q outside of a register", n.Src, ErrMalformed, n.Name)
	}
	a.cur.Fields = append(a.cur.Fields, model.NewField(n))
	return nil
}

func (a *accumulator) memory(n *node.Mem, base uint64) error {
	if a.cur != nil {
		return fmt.Errorf("%v: %w: memory %q inside register %q", n.Src, ErrMalformed, n.Name, a.cur.Name)
	}
	a.entries = append(a.entries, model.NewMemory(n, a.prefix, base+n.Offset, a.repeated(n.TypeIdentity())))
	return nil
}

// repeated records the type identity and reports whether it was seen before.
// Anonymous types never repeat.
func (a *accumulator) repeated(identity string) bool {
	if identity == "" {
		return false
	}
	if a.seen.Contains(identity) {
		return true
	}
	a.seen.Add(identity)
	return false
}
