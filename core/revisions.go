package core

import "fmt"

// Revision identifies one of the fork revisions modeled by this module,
// totally ordered chronologically.
type Revision int

const (
	Frontier Revision = iota
	Homestead
	Shanghai
)

func (r Revision) String() string {
	switch r {
	case Frontier:
		return "Frontier"
	case Homestead:
		return "Homestead"
	case Shanghai:
		return "Shanghai"
	default:
		return fmt.Sprintf("Revision(%d)", int(r))
	}
}

// IsAtLeast reports whether r is the same as or later than other.
func (r Revision) IsAtLeast(other Revision) bool {
	return r >= other
}

// AllRevisions enumerates every revision known to this module, oldest first.
func AllRevisions() []Revision {
	return []Revision{Frontier, Homestead, Shanghai}
}

func (r Revision) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Revision) UnmarshalText(data []byte) error {
	switch string(data) {
	case "Frontier":
		*r = Frontier
	case "Homestead":
		*r = Homestead
	case "Shanghai":
		*r = Shanghai
	default:
		return fmt.Errorf("unknown revision: %q", data)
	}
	return nil
}
