package extract_test

import (
	"debug/dwarf"
	"testing"

	"github.com/forestaa/troll/internal/diag"
	"github.com/forestaa/troll/internal/die"
	"github.com/forestaa/troll/internal/extract"
	"github.com/forestaa/troll/internal/testkit"
	"github.com/forestaa/troll/internal/typegraph"
)

func newCollector(t *testing.T, units ...*die.Unit) (*extract.Collector, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(64)
	idx := testkit.Index(t, units...)
	res := typegraph.NewResolver(idx, "a.out", diag.BagReporter{Bag: bag}, nil)
	return extract.NewCollector(idx, res, "a.out", diag.BagReporter{Bag: bag}, nil), bag
}

func countCode(bag *diag.Bag, code diag.Code) int {
	var n int
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func TestCollectVariables(t *testing.T) {
	u := testkit.Unit(
		testkit.Entry(0x10, dwarf.TagBaseType).Name("int").Size(4),
		testkit.Entry(0x18, dwarf.TagBaseType).Name("char").Size(1),
		testkit.Entry(0x20, dwarf.TagVariable).Name("c").TypeRef(0x18).Loc(0x4060),
		testkit.Entry(0x30, dwarf.TagVariable).Name("count").TypeRef(0x10).Loc(0x4064),
	)
	c, bag := newCollector(t, u)

	vars := c.Collect()
	if len(vars) != 2 {
		t.Fatalf("got %d variables, want 2", len(vars))
	}
	if vars[0].Name != "c" || vars[0].Address != 0x4060 {
		t.Errorf("vars[0] = %s@%#x, want c@0x4060", vars[0].Name, vars[0].Address)
	}
	if got := vars[0].Type.Label(); got != "char" {
		t.Errorf("vars[0] type = %q, want %q", got, "char")
	}
	if vars[1].Name != "count" || vars[1].Address != 0x4064 {
		t.Errorf("vars[1] = %s@%#x, want count@0x4064", vars[1].Name, vars[1].Address)
	}
	if vars[0].Offset != 0x20 || vars[1].Offset != 0x30 {
		t.Errorf("offsets = %#x, %#x, want 0x20, 0x30", vars[0].Offset, vars[1].Offset)
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestCollectSkipsNonStatic(t *testing.T) {
	u := testkit.Unit(
		testkit.Entry(0x10, dwarf.TagBaseType).Name("int").Size(4),
		// без location вовсе
		testkit.Entry(0x20, dwarf.TagVariable).Name("missing").TypeRef(0x10),
		// регистровое расположение, DW_OP_reg0
		testkit.Entry(0x30, dwarf.TagVariable).Name("reg").TypeRef(0x10).LocExpr([]byte{0x50}),
		// extern-объявление
		testkit.Entry(0x40, dwarf.TagVariable).Name("decl").TypeRef(0x10).Declaration(),
		testkit.Entry(0x50, dwarf.TagVariable).Name("kept").TypeRef(0x10).Loc(0x4060),
	)
	c, bag := newCollector(t, u)

	vars := c.Collect()
	if len(vars) != 1 || vars[0].Name != "kept" {
		t.Fatalf("expected only the static definition, got %+v", vars)
	}
	if bag.Len() != 0 {
		t.Errorf("skipping non-static variables should be silent, got %v", bag.Items())
	}
}

func TestCollectExternSpecification(t *testing.T) {
	u := testkit.Unit(
		testkit.Entry(0x10, dwarf.TagBaseType).Name("int").Size(4),
		testkit.Entry(0x20, dwarf.TagVariable).Name("shared").TypeRef(0x10).Declaration(),
		testkit.Entry(0x30, dwarf.TagVariable).SpecRef(0x20).Loc(0x4070),
	)
	c, bag := newCollector(t, u)

	vars := c.Collect()
	if len(vars) != 1 {
		t.Fatalf("got %d variables, want 1", len(vars))
	}
	v := vars[0]
	if v.Name != "shared" || v.Address != 0x4070 {
		t.Errorf("got %s@%#x, want shared@0x4070", v.Name, v.Address)
	}
	if got := v.Type.Label(); got != "int" {
		t.Errorf("type = %q, want %q", got, "int")
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestCollectSpecificationMissing(t *testing.T) {
	u := testkit.Unit(
		testkit.Entry(0x10, dwarf.TagVariable).SpecRef(0x999).Loc(0x4070),
	)
	c, bag := newCollector(t, u)

	vars := c.Collect()
	if len(vars) != 0 {
		t.Fatalf("expected no variables, got %+v", vars)
	}
	if countCode(bag, diag.VarUnresolvedSpec) != 1 {
		t.Errorf("expected VarUnresolvedSpec diagnostic, got %v", bag.Items())
	}
	if countCode(bag, diag.VarNoName) != 1 {
		t.Errorf("expected VarNoName diagnostic, got %v", bag.Items())
	}
}

func TestCollectNamespaces(t *testing.T) {
	u := testkit.Unit(
		testkit.Entry(0x10, dwarf.TagBaseType).Name("int").Size(4),
		testkit.Entry(0x20, dwarf.TagNamespace).Name("outer").Child(
			testkit.Entry(0x28, dwarf.TagVariable).Name("a").TypeRef(0x10).Loc(0x4060),
			testkit.Entry(0x30, dwarf.TagNamespace).Name("inner").Child(
				testkit.Entry(0x38, dwarf.TagVariable).Name("b").TypeRef(0x10).Loc(0x4064),
			),
		),
	)
	c, _ := newCollector(t, u)

	vars := c.Collect()
	if len(vars) != 2 {
		t.Fatalf("got %d variables, want 2", len(vars))
	}
	if vars[0].Name != "outer::a" {
		t.Errorf("vars[0].Name = %q, want %q", vars[0].Name, "outer::a")
	}
	if vars[1].Name != "outer::inner::b" {
		t.Errorf("vars[1].Name = %q, want %q", vars[1].Name, "outer::inner::b")
	}
}

func TestCollectWarnsOnBrokenDefinitions(t *testing.T) {
	u := testkit.Unit(
		testkit.Entry(0x10, dwarf.TagBaseType).Name("int").Size(4),
		testkit.Entry(0x20, dwarf.TagVariable).TypeRef(0x10).Loc(0x4060),
		testkit.Entry(0x30, dwarf.TagVariable).Name("untyped").Loc(0x4064),
	)
	c, bag := newCollector(t, u)

	vars := c.Collect()
	if len(vars) != 0 {
		t.Fatalf("expected no variables, got %+v", vars)
	}
	if countCode(bag, diag.VarNoName) != 1 {
		t.Errorf("expected VarNoName diagnostic, got %v", bag.Items())
	}
	if countCode(bag, diag.VarNoType) != 1 {
		t.Errorf("expected VarNoType diagnostic, got %v", bag.Items())
	}
}

func TestCollectUnresolvedType(t *testing.T) {
	u := testkit.Unit(
		testkit.Entry(0x10, dwarf.TagVariable).Name("ghost").TypeRef(0xdead).Loc(0x4060),
	)
	c, bag := newCollector(t, u)

	vars := c.Collect()
	if len(vars) != 1 {
		t.Fatalf("a variable with a dangling type reference still gets a row, got %+v", vars)
	}
	if got := vars[0].Type.Kind; got != typegraph.KindUnknown {
		t.Errorf("type kind = %v, want unknown", got)
	}
	if countCode(bag, diag.TypeUnresolvedRef) != 1 {
		t.Errorf("expected TypeUnresolvedRef diagnostic, got %v", bag.Items())
	}
}

func TestCollectMultipleUnits(t *testing.T) {
	u1 := testkit.UnitAt(0,
		testkit.Entry(0x10, dwarf.TagBaseType).Name("int").Size(4),
		testkit.Entry(0x20, dwarf.TagVariable).Name("first").TypeRef(0x10).Loc(0x4060),
	)
	u2 := testkit.UnitAt(0x100,
		testkit.Entry(0x110, dwarf.TagBaseType).Name("char").Size(1),
		testkit.Entry(0x120, dwarf.TagVariable).Name("second").TypeRef(0x110).Loc(0x4068),
	)
	c, _ := newCollector(t, u1, u2)

	vars := c.Collect()
	if len(vars) != 2 {
		t.Fatalf("got %d variables, want 2", len(vars))
	}
	if vars[0].Name != "first" || vars[1].Name != "second" {
		t.Errorf("order = %s, %s, want first, second", vars[0].Name, vars[1].Name)
	}
}
