package diff

import (
	"strings"
	"testing"
)

func TestReport_ListsCategoriesInDeterministicOrder(t *testing.T) {
	a := Report()
	b := Report()
	if a != b {
		t.Fatal("Report should be deterministic across calls")
	}

	lastCategory := ""
	for _, line := range strings.Split(strings.TrimRight(a, "\n"), "\n") {
		category := strings.SplitN(line, ":", 2)[0]
		if category < lastCategory {
			t.Fatalf("categories out of order: %q came after %q", category, lastCategory)
		}
		lastCategory = category
	}
}
