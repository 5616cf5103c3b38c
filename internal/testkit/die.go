// Package testkit builds synthetic DIE trees for tests. Entries carry real
// dwarf.Entry values, so everything above internal/die sees the same shapes
// it would get from a binary.
package testkit

import (
	"debug/dwarf"
	"encoding/binary"
	"testing"

	"github.com/forestaa/troll/internal/die"
)

// DIE accumulates attributes and children for one synthetic entry.
type DIE struct {
	entry *dwarf.Entry
	kids  []*DIE
}

// Entry starts a synthetic DIE with the given offset and tag.
func Entry(off dwarf.Offset, tag dwarf.Tag) *DIE {
	return &DIE{entry: &dwarf.Entry{Offset: off, Tag: tag}}
}

func (d *DIE) attr(a dwarf.Attr, val any, class dwarf.Class) *DIE {
	d.entry.Field = append(d.entry.Field, dwarf.Field{Attr: a, Val: val, Class: class})
	return d
}

// Name sets DW_AT_name.
func (d *DIE) Name(s string) *DIE { return d.attr(dwarf.AttrName, s, dwarf.ClassString) }

// Size sets DW_AT_byte_size.
func (d *DIE) Size(n int64) *DIE { return d.attr(dwarf.AttrByteSize, n, dwarf.ClassConstant) }

// TypeRef sets DW_AT_type.
func (d *DIE) TypeRef(off dwarf.Offset) *DIE {
	return d.attr(dwarf.AttrType, off, dwarf.ClassReference)
}

// Loc sets DW_AT_location to a DW_OP_addr expression for an 8-byte
// little-endian unit.
func (d *DIE) Loc(addr uint64) *DIE {
	expr := make([]byte, 9)
	expr[0] = 0x03
	binary.LittleEndian.PutUint64(expr[1:], addr)
	return d.attr(dwarf.AttrLocation, expr, dwarf.ClassExprLoc)
}

// LocExpr sets DW_AT_location to a raw expression.
func (d *DIE) LocExpr(expr []byte) *DIE {
	return d.attr(dwarf.AttrLocation, expr, dwarf.ClassExprLoc)
}

// MemberAt sets DW_AT_data_member_location as a plain constant.
func (d *DIE) MemberAt(off int64) *DIE {
	return d.attr(dwarf.AttrDataMemberLoc, off, dwarf.ClassConstant)
}

// MemberAtExpr sets DW_AT_data_member_location as a DW_OP_plus_uconst
// expression, the form older producers emit.
func (d *DIE) MemberAtExpr(off uint64) *DIE {
	expr := make([]byte, 1+binary.MaxVarintLen64)
	expr[0] = 0x23
	n := binary.PutUvarint(expr[1:], off)
	return d.attr(dwarf.AttrDataMemberLoc, expr[:1+n], dwarf.ClassExprLoc)
}

// Upper sets DW_AT_upper_bound.
func (d *DIE) Upper(n int64) *DIE { return d.attr(dwarf.AttrUpperBound, n, dwarf.ClassConstant) }

// CountAttr sets DW_AT_count.
func (d *DIE) CountAttr(n int64) *DIE { return d.attr(dwarf.AttrCount, n, dwarf.ClassConstant) }

// BitField sets DW_AT_bit_size and DW_AT_bit_offset.
func (d *DIE) BitField(size, offset int64) *DIE {
	d.attr(dwarf.AttrBitSize, size, dwarf.ClassConstant)
	return d.attr(dwarf.AttrBitOffset, offset, dwarf.ClassConstant)
}

// DataBitField sets DW_AT_bit_size with the DWARF 4 style offset attribute.
func (d *DIE) DataBitField(size, offset int64) *DIE {
	d.attr(dwarf.AttrBitSize, size, dwarf.ClassConstant)
	return d.attr(dwarf.AttrDataBitOffset, offset, dwarf.ClassConstant)
}

// ConstVal sets DW_AT_const_value.
func (d *DIE) ConstVal(n int64) *DIE {
	return d.attr(dwarf.AttrConstValue, n, dwarf.ClassConstant)
}

// Declaration sets the DW_AT_declaration flag.
func (d *DIE) Declaration() *DIE { return d.attr(dwarf.AttrDeclaration, true, dwarf.ClassFlag) }

// SpecRef sets DW_AT_specification.
func (d *DIE) SpecRef(off dwarf.Offset) *DIE {
	return d.attr(dwarf.AttrSpecification, off, dwarf.ClassReference)
}

// Child appends child DIEs.
func (d *DIE) Child(kids ...*DIE) *DIE {
	d.kids = append(d.kids, kids...)
	return d
}

// Unit wraps top-level DIEs into a synthetic compile unit rooted at offset 0,
// with 8-byte little-endian addresses.
func Unit(dies ...*DIE) *die.Unit {
	return UnitAt(0, dies...)
}

// UnitAt wraps top-level DIEs into a synthetic compile unit whose root DIE
// sits at the given offset.
func UnitAt(off dwarf.Offset, dies ...*DIE) *die.Unit {
	root := Entry(off, dwarf.TagCompileUnit).Child(dies...)
	u := &die.Unit{AddrSize: 8, Order: binary.LittleEndian}
	u.Root = buildNode(root, nil, u)
	return u
}

func buildNode(d *DIE, parent *die.Node, u *die.Unit) *die.Node {
	d.entry.Children = len(d.kids) > 0
	n := &die.Node{Entry: d.entry, Parent: parent, Unit: u}
	for _, kid := range d.kids {
		n.Children = append(n.Children, buildNode(kid, n, u))
	}
	return n
}

// Index assembles units into a die.Index, failing the test on any clash.
func Index(t *testing.T, units ...*die.Unit) *die.Index {
	t.Helper()
	idx, err := die.NewIndex(units)
	if err != nil {
		t.Fatalf("index DIEs: %v", err)
	}
	return idx
}
