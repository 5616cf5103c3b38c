package die_test

import (
	"debug/dwarf"
	"encoding/binary"
	"testing"

	"github.com/forestaa/troll/internal/die"
	"github.com/forestaa/troll/internal/testkit"
)

func lookup(t *testing.T, idx *die.Index, off dwarf.Offset) *die.Node {
	t.Helper()
	n, ok := idx.Lookup(off)
	if !ok {
		t.Fatalf("DIE at %#x not indexed", off)
	}
	return n
}

func TestBasicAttrs(t *testing.T) {
	idx := testkit.Index(t, testkit.Unit(
		testkit.Entry(0x10, dwarf.TagBaseType).Name("unsigned int").Size(4),
		testkit.Entry(0x20, dwarf.TagVariable).Name("c").TypeRef(0x10).Loc(0x2004),
		testkit.Entry(0x30, dwarf.TagVariable).Name("decl").TypeRef(0x10).Declaration(),
		testkit.Entry(0x40, dwarf.TagVariable).SpecRef(0x30).Loc(0x2008),
	))

	base := lookup(t, idx, 0x10)
	if name, ok := base.Name(); !ok || name != "unsigned int" {
		t.Fatalf("Name() = %q, %v", name, ok)
	}
	if size, ok := base.ByteSize(); !ok || size != 4 {
		t.Fatalf("ByteSize() = %d, %v", size, ok)
	}
	if _, ok := base.TypeRef(); ok {
		t.Fatalf("base type must not report a type reference")
	}

	v := lookup(t, idx, 0x20)
	if ref, ok := v.TypeRef(); !ok || ref != 0x10 {
		t.Fatalf("TypeRef() = %#x, %v", ref, ok)
	}
	if v.IsDeclaration() {
		t.Fatalf("definition entry must not report declaration flag")
	}

	decl := lookup(t, idx, 0x30)
	if !decl.IsDeclaration() {
		t.Fatalf("declaration flag not detected")
	}

	def := lookup(t, idx, 0x40)
	if spec, ok := def.Specification(); !ok || spec != 0x30 {
		t.Fatalf("Specification() = %#x, %v", spec, ok)
	}
}

func TestMemberOffsetForms(t *testing.T) {
	idx := testkit.Index(t, testkit.Unit(
		testkit.Entry(0x10, dwarf.TagMember).Name("plain").MemberAt(4),
		testkit.Entry(0x20, dwarf.TagMember).Name("expr").MemberAtExpr(12),
		testkit.Entry(0x30, dwarf.TagMember).Name("none"),
	))

	if off, ok := lookup(t, idx, 0x10).MemberOffset(); !ok || off != 4 {
		t.Fatalf("constant member offset = %d, %v", off, ok)
	}
	if off, ok := lookup(t, idx, 0x20).MemberOffset(); !ok || off != 12 {
		t.Fatalf("exprloc member offset = %d, %v", off, ok)
	}
	if _, ok := lookup(t, idx, 0x30).MemberOffset(); ok {
		t.Fatalf("missing attribute must report false")
	}
}

func TestMemberOffsetRejectsForeignOpcode(t *testing.T) {
	// DW_OP_addr вместо DW_OP_plus_uconst
	entry := testkit.Entry(0x10, dwarf.TagMember).Name("m")
	unit := testkit.Unit(entry)
	n, _ := testkit.Index(t, unit).Lookup(0x10)
	n.Entry.Field = append(n.Entry.Field, dwarf.Field{
		Attr:  dwarf.AttrDataMemberLoc,
		Val:   []byte{0x03, 0x04},
		Class: dwarf.ClassExprLoc,
	})
	if _, ok := n.MemberOffset(); ok {
		t.Fatalf("foreign opcode must not decode as member offset")
	}
}

func TestSubrangeAttrs(t *testing.T) {
	idx := testkit.Index(t, testkit.Unit(
		testkit.Entry(0x10, dwarf.TagSubrangeType).Upper(2),
		testkit.Entry(0x20, dwarf.TagSubrangeType).CountAttr(3),
		testkit.Entry(0x30, dwarf.TagSubrangeType),
	))

	if ub, ok := lookup(t, idx, 0x10).UpperBound(); !ok || ub != 2 {
		t.Fatalf("UpperBound() = %d, %v", ub, ok)
	}
	if cnt, ok := lookup(t, idx, 0x20).CountAttr(); !ok || cnt != 3 {
		t.Fatalf("CountAttr() = %d, %v", cnt, ok)
	}
	if _, ok := lookup(t, idx, 0x30).UpperBound(); ok {
		t.Fatalf("flexible subrange must report no upper bound")
	}
}

func TestBitFieldAttrs(t *testing.T) {
	idx := testkit.Index(t, testkit.Unit(
		testkit.Entry(0x10, dwarf.TagMember).Name("flag").MemberAt(0).BitField(1, 23),
	))

	m := lookup(t, idx, 0x10)
	if size, ok := m.BitSize(); !ok || size != 1 {
		t.Fatalf("BitSize() = %d, %v", size, ok)
	}
	if off, ok := m.BitOffset(); !ok || off != 23 {
		t.Fatalf("BitOffset() = %d, %v", off, ok)
	}
}

func TestStaticAddress(t *testing.T) {
	idx := testkit.Index(t, testkit.Unit(
		testkit.Entry(0x10, dwarf.TagVariable).Name("v").Loc(0x601040),
		testkit.Entry(0x20, dwarf.TagVariable).Name("reg").LocExpr([]byte{0x53}),
		testkit.Entry(0x30, dwarf.TagVariable).Name("short").LocExpr([]byte{0x03, 0x40, 0x10}),
		testkit.Entry(0x40, dwarf.TagVariable).Name("none"),
	))

	if addr, ok := lookup(t, idx, 0x10).StaticAddress(); !ok || addr != 0x601040 {
		t.Fatalf("StaticAddress() = %#x, %v", addr, ok)
	}
	if _, ok := lookup(t, idx, 0x20).StaticAddress(); ok {
		t.Fatalf("register location must not decode to an address")
	}
	if _, ok := lookup(t, idx, 0x30).StaticAddress(); ok {
		t.Fatalf("truncated DW_OP_addr must not decode to an address")
	}
	if _, ok := lookup(t, idx, 0x40).StaticAddress(); ok {
		t.Fatalf("missing location must not decode to an address")
	}
}

func TestStaticAddressFourByteBigEndian(t *testing.T) {
	unit := testkit.Unit(
		testkit.Entry(0x10, dwarf.TagVariable).Name("v").
			LocExpr([]byte{0x03, 0x00, 0x00, 0x40, 0x60}),
	)
	unit.AddrSize = 4
	unit.Order = binary.BigEndian

	idx := testkit.Index(t, unit)
	if addr, ok := lookup(t, idx, 0x10).StaticAddress(); !ok || addr != 0x4060 {
		t.Fatalf("StaticAddress() = %#x, %v, want 0x4060", addr, ok)
	}
}

func TestConstValue(t *testing.T) {
	idx := testkit.Index(t, testkit.Unit(
		testkit.Entry(0x10, dwarf.TagEnumerator).Name("A").ConstVal(0),
		testkit.Entry(0x20, dwarf.TagEnumerator).Name("B").ConstVal(1),
		testkit.Entry(0x30, dwarf.TagEnumerator).Name("bad"),
	))

	if v, ok := lookup(t, idx, 0x20).ConstValue(); !ok || v != 1 {
		t.Fatalf("ConstValue() = %d, %v", v, ok)
	}
	if _, ok := lookup(t, idx, 0x30).ConstValue(); ok {
		t.Fatalf("enumerator without value must report false")
	}
}
