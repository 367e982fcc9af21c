package workunit

import (
	"slices"
	"strings"
)

// Compare orders units by group name, then by display name.
func Compare(a, b *Unit) int {
	if c := strings.Compare(a.Group, b.Group); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

// Sort orders units by Compare. The sort is stable, so units that compare
// equal keep their insertion order.
func Sort(units []*Unit) {
	slices.SortStableFunc(units, Compare)
}

// Conflict records a unit dropped because an earlier unit compares equal.
type Conflict struct {
	Kept    *Unit
	Dropped *Unit
}

// Dedupe removes adjacent units that compare equal from a sorted slice. The
// first unit of every tie run is kept. It returns the retained units and one
// Conflict per dropped unit.
func Dedupe(sorted []*Unit) ([]*Unit, []Conflict) {
	if len(sorted) == 0 {
		return sorted, nil
	}
	out := make([]*Unit, 0, len(sorted))
	var conflicts []Conflict
	for _, u := range sorted {
		if n := len(out); n > 0 && Compare(out[n-1], u) == 0 {
			conflicts = append(conflicts, Conflict{Kept: out[n-1], Dropped: u})
			continue
		}
		out = append(out, u)
	}
	return out, conflicts
}

// Ordered sorts a copy of units and removes duplicates.
func Ordered(units []*Unit) ([]*Unit, []Conflict) {
	cp := slices.Clone(units)
	Sort(cp)
	return Dedupe(cp)
}

// FilenameCollisions groups units that share a destination filename. Keys are
// the shared filenames; the map is empty when every filename is unique.
func FilenameCollisions(units []*Unit) map[string][]*Unit {
	seen := make(map[string][]*Unit, len(units))
	for _, u := range units {
		seen[u.Filename] = append(seen[u.Filename], u)
	}
	out := make(map[string][]*Unit)
	for name, us := range seen {
		if len(us) > 1 {
			out[name] = us
		}
	}
	return out
}
