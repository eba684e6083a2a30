package diff

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/evm-assure/evmcore/core"
)

// expectedEntry is one row of the expected-divergence table: a known,
// intentional semantic change between two forks, scoped to a category and
// optionally to a single opcode. Keeping this as data rather than as
// scattered conditionals in compare() is the point — every excused
// divergence has to earn a named, citable entry here instead of silently
// disappearing into an if-statement.
type expectedEntry struct {
	forkA, forkB core.Revision
	category     Category
	opcode       byte // 0 means "any opcode", since opcode 0x00 is STOP
	reason       string
}

// expectedTable lists every divergence this harness already knows about
// and does not want reported as a finding. Each entry is grounded in one
// of the two Open Questions this module resolved explicitly (see
// DESIGN.md) or in a gas-schedule change spec §4.4/§4.5 documents
// directly.
var expectedTable = []expectedEntry{
	{core.Frontier, core.Homestead, GasMismatch, byte(0x0A) /* EXP */, "EXP byte-cost rose from 10 to 50 per byte at Homestead"},
	{core.Frontier, core.Homestead, GasMismatch, byte(0xFF) /* SELFDESTRUCT */, "SELFDESTRUCT base cost rose at Homestead/EIP-150"},
	{core.Frontier, core.Homestead, SuccessMismatch, byte(0xF0) /* CREATE */, "CREATE with insufficient code-deposit gas fails outright from Homestead on, instead of silently waiving the deposit"},
	{core.Frontier, core.Homestead, GasMismatch, byte(0xF0), "CREATE with insufficient code-deposit gas fails outright from Homestead on, instead of silently waiving the deposit"},
	{core.Frontier, core.Shanghai, GasMismatch, byte(0x0A), "EXP byte-cost rose from 10 to 50 per byte at Homestead, carried into Shanghai"},
	{core.Frontier, core.Shanghai, GasMismatch, byte(0xFF), "SELFDESTRUCT base cost rose at Homestead/EIP-150, carried into Shanghai"},
	{core.Homestead, core.Shanghai, SuccessMismatch, byte(0x5F) /* PUSH0 */, "PUSH0 is only defined from Shanghai on"},
	{core.Homestead, core.Shanghai, GasMismatch, byte(0x5F), "PUSH0 is only defined from Shanghai on"},
}

// expected reports whether forkA/forkB disagreeing on category for a
// candidate containing opcode is already excused by expectedTable. Order
// of forkA/forkB is normalized so callers don't have to pass them in a
// canonical direction.
func expected(forkA, forkB core.Revision, category Category, code []byte) bool {
	lo, hi := forkA, forkB
	if lo > hi {
		lo, hi = hi, lo
	}
	for _, e := range expectedTable {
		if e.forkA != lo || e.forkB != hi || e.category != category {
			continue
		}
		if e.opcode == 0 || containsOpcode(code, e.opcode) {
			return true
		}
	}
	return false
}

// expectedByCategory groups expectedTable by the category it excuses,
// built once so Report can walk it deterministically.
var expectedByCategory = func() map[Category][]expectedEntry {
	idx := make(map[Category][]expectedEntry, len(expectedTable))
	for _, e := range expectedTable {
		idx[e.category] = append(idx[e.category], e)
	}
	return idx
}()

// Report renders every excused divergence, grouped by category in a
// fixed, deterministic order — maps.Keys plus a sort, the same idiom the
// teacher's ct/driver statistics reporting (stats.go's
// ruleStatistics.String) uses to turn a map into stable output instead of
// depending on Go's randomized map iteration order.
func Report() string {
	categories := maps.Keys(expectedByCategory)
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	var b strings.Builder
	for _, category := range categories {
		for _, e := range expectedByCategory[category] {
			fmt.Fprintf(&b, "%s: %s -> %s opcode=0x%02X: %s\n", category, e.forkA, e.forkB, e.opcode, e.reason)
		}
	}
	return b.String()
}

func containsOpcode(code []byte, op byte) bool {
	for i := 0; i < len(code); i++ {
		if code[i] == op {
			return true
		}
		if isPush(code[i]) {
			i += int(code[i]) - 0x60 + 1
		}
	}
	return false
}

func isPush(b byte) bool {
	return b >= 0x60 && b <= 0x7F
}
