// Package die assembles the flat DIE stream of .debug_info into a tree of
// nodes indexed by offset. It resolves no semantics: typing and variable
// collection live in internal/typegraph and internal/extract.
package die

import (
	"debug/dwarf"
	"encoding/binary"
)

// Node is a single DIE with resolved tree links.
type Node struct {
	Entry    *dwarf.Entry
	Parent   *Node
	Children []*Node
	Unit     *Unit
}

// Unit is one compile unit: its root node plus the address decoding
// parameters that apply to every DIE inside it.
type Unit struct {
	Root     *Node
	AddrSize int
	Order    binary.ByteOrder
}

// Index holds every DIE of a binary keyed by .debug_info offset.
type Index struct {
	units    []*Unit
	byOffset map[dwarf.Offset]*Node
}

// Build reads the complete DIE stream from d and assembles it into an Index.
// Any entry at nesting depth zero starts a new unit; a Tag 0 entry closes the
// innermost open children list.
func Build(d *dwarf.Data) (*Index, error) {
	r := d.Reader()

	var (
		units []*Unit
		cur   *Unit
		stack []*Node
		last  dwarf.Offset
	)
	for {
		entry, err := r.Next()
		if err != nil {
			return nil, &StructureError{Kind: StructureErrReader, Off: last, Err: err}
		}
		if entry == nil {
			break
		}
		last = entry.Offset

		if entry.Tag == 0 {
			if len(stack) == 0 {
				return nil, &StructureError{Kind: StructureErrTerminator, Off: entry.Offset}
			}
			stack = stack[:len(stack)-1]
			continue
		}

		node := &Node{Entry: entry}
		if len(stack) == 0 {
			cur = &Unit{Root: node, AddrSize: r.AddressSize(), Order: r.ByteOrder()}
			units = append(units, cur)
		} else {
			parent := stack[len(stack)-1]
			node.Parent = parent
			parent.Children = append(parent.Children, node)
		}
		node.Unit = cur

		if entry.Children {
			stack = append(stack, node)
		}
	}
	if len(stack) > 0 {
		return nil, &StructureError{Kind: StructureErrTerminator, Off: stack[len(stack)-1].Entry.Offset}
	}

	return NewIndex(units)
}

// NewIndex assembles prebuilt units into a queryable index. Offsets must be
// unique across all units.
func NewIndex(units []*Unit) (*Index, error) {
	idx := &Index{
		units:    units,
		byOffset: make(map[dwarf.Offset]*Node, 1024),
	}
	for _, u := range units {
		if u == nil || u.Root == nil {
			continue
		}
		if err := idx.register(u.Root); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

func (x *Index) register(n *Node) error {
	off := n.Entry.Offset
	if _, ok := x.byOffset[off]; ok {
		return &StructureError{Kind: StructureErrOffsetClash, Off: off}
	}
	x.byOffset[off] = n
	for _, c := range n.Children {
		if err := x.register(c); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the node at the given .debug_info offset.
func (x *Index) Lookup(off dwarf.Offset) (*Node, bool) {
	n, ok := x.byOffset[off]
	return n, ok
}

// Units returns the compile units in document order.
func (x *Index) Units() []*Unit {
	return x.units
}

// Len returns the number of indexed DIEs.
func (x *Index) Len() int {
	return len(x.byOffset)
}
