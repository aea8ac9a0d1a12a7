package rank_test

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/voltlaunchr/omnibar"
	"github.com/voltlaunchr/omnibar/rank"
)

func item(resultID string, score float64) omnibar.Result {
	return omnibar.Result{ID: resultID, Title: resultID, Score: score}
}

func TestRank_SortsByScoreDescending(t *testing.T) {
	in := []omnibar.Result{
		item("low", 10),
		item("high", 90),
		item("mid", 50),
	}

	out := rank.Rank(in)

	want := []string{"high", "mid", "low"}
	for i, id := range want {
		if out[i].ID != id {
			t.Fatalf("out[%d].ID = %q, want %q (full: %v)", i, out[i].ID, id, out)
		}
	}
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	in := []omnibar.Result{
		item("first", 50),
		item("second", 50),
		item("third", 50),
	}

	out := rank.Rank(in)

	for i, id := range []string{"first", "second", "third"} {
		if out[i].ID != id {
			t.Fatalf("tie order broken: out[%d].ID = %q, want %q", i, out[i].ID, id)
		}
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := []omnibar.Result{
		item("a", 1),
		item("b", 99),
	}

	_ = rank.Rank(in)

	if in[0].ID != "a" || in[1].ID != "b" {
		t.Fatalf("input reordered: %v", in)
	}
}

func TestRank_EmptyAndSingle(t *testing.T) {
	if out := rank.Rank(nil); len(out) != 0 {
		t.Fatalf("Rank(nil) = %v, want empty", out)
	}
	out := rank.Rank([]omnibar.Result{item("only", 5)})
	if len(out) != 1 || out[0].ID != "only" {
		t.Fatalf("single item mangled: %v", out)
	}
}

// Property-based coverage of the ordering contract.

func TestRank_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 50).Draw(t, "n")
		in := make([]omnibar.Result, n)
		for i := range in {
			score := rapid.Float64Range(-100, 100).Draw(t, fmt.Sprintf("score%d", i))
			in[i] = item(fmt.Sprintf("r%d", i), score)
		}

		out := rank.Rank(in)

		if len(out) != len(in) {
			t.Fatalf("length changed: %d -> %d", len(in), len(out))
		}

		// Non-increasing scores.
		for i := 1; i < len(out); i++ {
			if out[i].Score > out[i-1].Score {
				t.Fatalf("not sorted at %d: %v > %v", i, out[i].Score, out[i-1].Score)
			}
		}

		// Stability: equal scores keep relative input order. Input IDs
		// encode their index, so compare positions for equal pairs.
		pos := make(map[string]int, len(in))
		for i, r := range in {
			pos[r.ID] = i
		}
		for i := 1; i < len(out); i++ {
			if out[i].Score == out[i-1].Score && pos[out[i-1].ID] > pos[out[i].ID] {
				t.Fatalf("unstable tie between %s and %s", out[i-1].ID, out[i].ID)
			}
		}

		// Permutation: same multiset of IDs.
		seen := make(map[string]int, len(out))
		for _, r := range out {
			seen[r.ID]++
		}
		for _, r := range in {
			seen[r.ID]--
		}
		for resultID, count := range seen {
			if count != 0 {
				t.Fatalf("output is not a permutation of input: %s off by %d", resultID, count)
			}
		}
	})
}
