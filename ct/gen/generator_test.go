package gen

import (
	"bytes"
	"testing"
)

func TestNew_SameSeedProducesSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 20; i++ {
		strategy := AllStrategiesForTest()[i%len(AllStrategiesForTest())]
		progA := a.Next(strategy)
		progB := b.Next(strategy)
		if !bytes.Equal(progA, progB) {
			t.Fatalf("strategy %s iteration %d: programs diverged for the same seed", strategy, i)
		}
	}
}

func TestNext_DifferentSeedsEventuallyDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	diverged := false
	for i := 0; i < 10; i++ {
		if !bytes.Equal(a.Next(Random), b.Next(Random)) {
			diverged = true
			break
		}
	}
	if !diverged {
		t.Fatal("expected two generators with different seeds to produce different random programs")
	}
}

func TestNext_EveryStrategyProducesNonEmptyCode(t *testing.T) {
	g := New(7)
	for _, s := range AllStrategiesForTest() {
		for i := 0; i < 5; i++ {
			code := g.Next(s)
			if len(code) == 0 {
				t.Errorf("strategy %s produced empty code on iteration %d", s, i)
			}
		}
	}
}

func TestRandom_LengthWithinSpecRange(t *testing.T) {
	g := New(3)
	for i := 0; i < 50; i++ {
		code := g.random()
		if len(code) < 1 || len(code) > 256 {
			t.Fatalf("random() length %d out of [1,256]", len(code))
		}
	}
}

// AllStrategiesForTest mirrors the five strategy constants; kept local to
// the test file so the generator package itself doesn't need to export an
// enumeration it has no production use for.
func AllStrategiesForTest() []Strategy {
	return []Strategy{Random, Grammar, Boundary, OpcodeFocused, Sequence}
}
