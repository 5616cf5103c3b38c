package die

import (
	"debug/dwarf"
	"encoding/binary"

	"fortio.org/safecast"
)

// DWARF expression opcodes we decode directly.
const (
	opAddr       = 0x03 // DW_OP_addr
	opPlusUconst = 0x23 // DW_OP_plus_uconst
)

// Name returns DW_AT_name.
func (n *Node) Name() (string, bool) {
	s, ok := n.Entry.Val(dwarf.AttrName).(string)
	return s, ok
}

// ByteSize returns DW_AT_byte_size.
func (n *Node) ByteSize() (int64, bool) {
	return n.intAttr(dwarf.AttrByteSize)
}

// TypeRef returns the DW_AT_type reference.
func (n *Node) TypeRef() (dwarf.Offset, bool) {
	off, ok := n.Entry.Val(dwarf.AttrType).(dwarf.Offset)
	return off, ok
}

// Specification returns the DW_AT_specification reference.
func (n *Node) Specification() (dwarf.Offset, bool) {
	off, ok := n.Entry.Val(dwarf.AttrSpecification).(dwarf.Offset)
	return off, ok
}

// IsDeclaration reports whether the DW_AT_declaration flag is set.
func (n *Node) IsDeclaration() bool {
	flag, ok := n.Entry.Val(dwarf.AttrDeclaration).(bool)
	return ok && flag
}

// MemberOffset returns DW_AT_data_member_location. Producers emit either a
// plain constant or a DW_OP_plus_uconst expression prefix.
func (n *Node) MemberOffset() (int64, bool) {
	switch v := n.Entry.Val(dwarf.AttrDataMemberLoc).(type) {
	case int64:
		return v, true
	case []byte:
		if len(v) >= 2 && v[0] == opPlusUconst {
			off, sz := binary.Uvarint(v[1:])
			if sz <= 0 {
				return 0, false
			}
			iv, err := safecast.Conv[int64](off)
			if err != nil {
				return 0, false
			}
			return iv, true
		}
	}
	return 0, false
}

// UpperBound returns DW_AT_upper_bound of a subrange. Dynamic bounds
// (references to other DIEs) report false.
func (n *Node) UpperBound() (int64, bool) {
	return n.intAttr(dwarf.AttrUpperBound)
}

// CountAttr returns DW_AT_count of a subrange.
func (n *Node) CountAttr() (int64, bool) {
	return n.intAttr(dwarf.AttrCount)
}

// BitSize returns DW_AT_bit_size of a bit field member.
func (n *Node) BitSize() (int64, bool) {
	return n.intAttr(dwarf.AttrBitSize)
}

// BitOffset returns DW_AT_bit_offset of a bit field member.
func (n *Node) BitOffset() (int64, bool) {
	return n.intAttr(dwarf.AttrBitOffset)
}

// DataBitOffset returns DW_AT_data_bit_offset, the DWARF 4 replacement
// for bit_offset. Producers emit one or the other, never both.
func (n *Node) DataBitOffset() (int64, bool) {
	return n.intAttr(dwarf.AttrDataBitOffset)
}

// ConstValue returns DW_AT_const_value of an enumerator.
func (n *Node) ConstValue() (int64, bool) {
	return n.intAttr(dwarf.AttrConstValue)
}

// StaticAddress decodes DW_AT_location when it is a single DW_OP_addr
// expression. Register and composite locations report false.
func (n *Node) StaticAddress() (uint64, bool) {
	loc, ok := n.Entry.Val(dwarf.AttrLocation).([]byte)
	if !ok {
		return 0, false
	}
	u := n.Unit
	if u == nil || u.Order == nil || len(loc) != 1+u.AddrSize || loc[0] != opAddr {
		return 0, false
	}
	switch u.AddrSize {
	case 4:
		return uint64(u.Order.Uint32(loc[1:])), true
	case 8:
		return u.Order.Uint64(loc[1:]), true
	}
	return 0, false
}

// intAttr reads a constant-class attribute. debug/dwarf surfaces these as
// int64 for most forms and uint64 for DW_FORM_udata.
func (n *Node) intAttr(a dwarf.Attr) (int64, bool) {
	switch v := n.Entry.Val(a).(type) {
	case int64:
		return v, true
	case uint64:
		iv, err := safecast.Conv[int64](v)
		if err != nil {
			return 0, false
		}
		return iv, true
	default:
		return 0, false
	}
}
