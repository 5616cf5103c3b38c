package diag

import (
	"testing"
)

func TestBagAddRespectsLimit(t *testing.T) {
	bag := NewBag(2)
	d := NewWarning(TypeUnresolvedRef, Loc{File: "a.out", Offset: 1}, "w")

	if !bag.Add(d) || !bag.Add(d) {
		t.Fatalf("first two adds must succeed")
	}
	if bag.Add(d) {
		t.Fatalf("third add must be rejected, cap is 2")
	}
	if bag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bag.Len())
	}
}

func TestBagSeverityQueries(t *testing.T) {
	bag := NewBag(8)
	if bag.HasErrors() || bag.HasWarnings() {
		t.Fatalf("empty bag must report no errors and no warnings")
	}

	bag.Add(New(SevInfo, VarInfo, Loc{}, "i"))
	if bag.HasWarnings() {
		t.Fatalf("info-only bag must not report warnings")
	}

	bag.Add(NewWarning(VarNoName, Loc{}, "w"))
	if !bag.HasWarnings() || bag.HasErrors() {
		t.Fatalf("bag with warning: HasWarnings=true HasErrors=false expected")
	}

	bag.Add(NewError(DwarfMalformed, Loc{}, "e"))
	if !bag.HasErrors() {
		t.Fatalf("bag with error must report HasErrors")
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewWarning(VarNoName, Loc{File: "a.out"}, "a"))

	b := NewBag(2)
	b.Add(NewWarning(VarNoName, Loc{File: "b.out"}, "b1"))
	b.Add(NewWarning(VarNoName, Loc{File: "b.out"}, "b2"))

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("merged Len() = %d, want 3", a.Len())
	}
	if a.Cap() < 3 {
		t.Fatalf("merge must grow cap to fit all items, got %d", a.Cap())
	}
}

func TestBagSortOrder(t *testing.T) {
	bag := NewBag(8)
	bag.Add(NewWarning(TypeUnresolvedRef, Loc{File: "b.out", Offset: 0x10}, "later file"))
	bag.Add(NewWarning(TypeUnsupportedTag, Loc{File: "a.out", Offset: 0x20}, "warn at 0x20"))
	bag.Add(NewError(DwarfMalformed, Loc{File: "a.out", Offset: 0x20}, "err at 0x20"))
	bag.Add(NewWarning(VarNoName, Loc{File: "a.out", Offset: 0x08}, "first offset"))

	bag.Sort()

	items := bag.Items()
	if items[0].Message != "first offset" {
		t.Fatalf("items[0] = %q, want lowest offset of first file", items[0].Message)
	}
	if items[1].Message != "err at 0x20" {
		t.Fatalf("items[1] = %q, want error before warning at same offset", items[1].Message)
	}
	if items[2].Message != "warn at 0x20" {
		t.Fatalf("items[2] = %q", items[2].Message)
	}
	if items[3].Primary.File != "b.out" {
		t.Fatalf("items[3].Primary.File = %q, want b.out last", items[3].Primary.File)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(8)
	loc := Loc{File: "a.out", Offset: 0x2a}
	bag.Add(NewWarning(TypeUnresolvedRef, loc, "dup"))
	bag.Add(NewWarning(TypeUnresolvedRef, loc, "dup"))
	bag.Add(NewWarning(TypeUnresolvedRef, Loc{File: "a.out", Offset: 0x2b}, "other"))

	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("Dedup left %d items, want 2", bag.Len())
	}
}

func TestDedupReporterSuppressesDuplicates(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag})

	loc := Loc{File: "a.out", Offset: 0x2a}
	r.Report(TypeUnresolvedRef, SevWarning, loc, "same", nil)
	r.Report(TypeUnresolvedRef, SevWarning, loc, "same", nil)
	r.Report(TypeUnresolvedRef, SevWarning, loc, "different", nil)

	if bag.Len() != 2 {
		t.Fatalf("bag has %d items, want 2", bag.Len())
	}
}

func TestBagReporterCarriesNotes(t *testing.T) {
	bag := NewBag(8)
	r := BagReporter{Bag: bag}

	r.Report(VarNoName, SevWarning, Loc{File: "a.out", Offset: 0x30}, "no name",
		[]Note{{Loc: Loc{File: "a.out", Offset: 0x10}, Msg: "unit starts here"}})

	if bag.Len() != 1 {
		t.Fatalf("bag has %d items, want 1", bag.Len())
	}
	got := bag.Items()[0]
	if len(got.Notes) != 1 || got.Notes[0].Msg != "unit starts here" {
		t.Fatalf("note not carried through reporter: %+v", got)
	}
	if got.Code.ID() != "VAR4001" {
		t.Fatalf("Code.ID() = %q, want VAR4001", got.Code.ID())
	}

	// Репортер без Bag молча глотает.
	BagReporter{}.Report(VarNoName, SevWarning, Loc{}, "dropped", nil)
}
