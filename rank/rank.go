// Package rank orders merged dispatch results.
//
// Ranking is a pure function: it sorts by score descending into a new
// slice and never filters or mutates scores. Ties keep the relative
// order in which items arrive, which the engine fixes to registry
// enumeration order, so ranking is deterministic for deterministic
// plugin output.
package rank

import (
	"sort"

	"github.com/voltlaunchr/omnibar"
)

// Rank returns a new slice with the items sorted by score descending.
// Equal scores keep their input order. The input slice is not modified.
func Rank(items []omnibar.Result) []omnibar.Result {
	out := make([]omnibar.Result, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out
}
