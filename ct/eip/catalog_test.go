package eip

import "testing"

func TestLookup_FindsKnownEIP(t *testing.T) {
	e, ok := Lookup(3855)
	if !ok {
		t.Fatal("expected EIP-3855 (PUSH0) to be in the catalog")
	}
	if e.Title == "" {
		t.Error("catalog entry should carry a non-empty title")
	}
	if len(e.OpcodesAdded) != 1 || e.OpcodesAdded[0] != 0x5F {
		t.Errorf("EIP-3855 should add opcode 0x5F, got %v", e.OpcodesAdded)
	}
}

func TestLookup_UnknownEIPReportsFalse(t *testing.T) {
	_, ok := Lookup(999999)
	if ok {
		t.Fatal("expected an unknown EIP number to report false")
	}
}

func TestCatalog_EveryEntryHasANumberAndTitle(t *testing.T) {
	for _, e := range Catalog {
		if e.Number == 0 {
			t.Error("catalog entry missing a number")
		}
		if e.Title == "" {
			t.Errorf("EIP-%d missing a title", e.Number)
		}
	}
}

func TestNumbers_AreAscendingAndCoverTheWholeCatalog(t *testing.T) {
	nums := Numbers()
	if len(nums) != len(Catalog) {
		t.Fatalf("Numbers returned %d entries, want %d", len(nums), len(Catalog))
	}
	for i := 1; i < len(nums); i++ {
		if nums[i-1] >= nums[i] {
			t.Fatalf("Numbers not strictly ascending at index %d: %d >= %d", i, nums[i-1], nums[i])
		}
	}
}
