package eip

import "testing"

func TestGenerate_SkipsStrategiesNotRequested(t *testing.T) {
	e, ok := Lookup(3855) // PUSH0
	if !ok {
		t.Fatal("EIP-3855 should be in the catalog")
	}

	cases := Generate(e, []Strategy{Boundary})
	if len(cases) == 0 {
		t.Fatal("expected at least one BOUNDARY case for PUSH0")
	}
	for _, c := range cases {
		if c.Strategy != Boundary {
			t.Errorf("got a %s case when only BOUNDARY was requested", c.Strategy)
		}
	}
}

func TestGenerate_AllStrategiesProducesEveryRequestedKind(t *testing.T) {
	e, ok := Lookup(145) // SHL/SHR/SAR
	if !ok {
		t.Fatal("EIP-145 should be in the catalog")
	}

	cases := Generate(e, AllStrategies())
	seen := map[Strategy]bool{}
	for _, c := range cases {
		seen[c.Strategy] = true
	}
	for _, s := range AllStrategies() {
		if !seen[s] {
			t.Errorf("strategy %s produced no cases for EIP-145, which adds 3 opcodes", s)
		}
	}
}

func TestGenerate_EIPWithNoOpcodesAddedYieldsNoOpcodeScopedCases(t *testing.T) {
	e, ok := Lookup(2929) // no OpcodesAdded
	if !ok {
		t.Fatal("EIP-2929 should be in the catalog")
	}

	cases := Generate(e, []Strategy{Boundary, OpcodeInteraction, CallContext})
	if len(cases) != 0 {
		t.Errorf("an EIP with no OpcodesAdded should yield no cases from opcode-scoped strategies, got %d", len(cases))
	}
}

func TestGenerate_ForkBoundarySetsRevisionOnBothHalves(t *testing.T) {
	e, ok := Lookup(3855)
	if !ok {
		t.Fatal("EIP-3855 should be in the catalog")
	}

	cases := Generate(e, []Strategy{ForkBoundary})
	if len(cases) != 2 {
		t.Fatalf("expected exactly 2 FORK_BOUNDARY cases (before/after), got %d", len(cases))
	}
	for _, c := range cases {
		if c.Revision == nil {
			t.Error("FORK_BOUNDARY cases must pin a Revision")
		}
	}
	if *cases[0].ExpectedSuccess == *cases[1].ExpectedSuccess {
		t.Error("the before/after FORK_BOUNDARY cases should have opposite expected outcomes")
	}
}
