package treesitter

import (
	"testing"

	"funcfold/internal/core/fold"
)

func fr(start, end int) fold.FunctionRange {
	return fold.FunctionRange{StartLine: start, EndLine: end}
}

func TestCompare(t *testing.T) {
	heur := []fold.FunctionRange{fr(0, 4), fr(6, 9), fr(12, 14)}
	ref := []fold.FunctionRange{fr(0, 4), fr(6, 8), fr(20, 22)}

	d := Compare(heur, ref)
	if d.Matched != 1 {
		t.Fatalf("matched=%d", d.Matched)
	}
	if len(d.Mismatched) != 1 || d.Mismatched[0].Heuristic != fr(6, 9) || d.Mismatched[0].Reference != fr(6, 8) {
		t.Fatalf("mismatched=%+v", d.Mismatched)
	}
	if len(d.Extra) != 1 || d.Extra[0] != fr(12, 14) {
		t.Fatalf("extra=%+v", d.Extra)
	}
	if len(d.Missing) != 1 || d.Missing[0] != fr(20, 22) {
		t.Fatalf("missing=%+v", d.Missing)
	}
	if d.Clean() {
		t.Fatal("expected unclean diff")
	}
}

func TestCompare_SameStartPrefersExactEnd(t *testing.T) {
	d := Compare([]fold.FunctionRange{fr(3, 5)}, []fold.FunctionRange{fr(3, 9), fr(3, 5)})
	if d.Matched != 1 || len(d.Missing) != 1 || d.Missing[0] != fr(3, 9) {
		t.Fatalf("diff=%+v", d)
	}
}

func TestCompare_Identical(t *testing.T) {
	rs := []fold.FunctionRange{fr(0, 2), fr(4, 6)}
	if d := Compare(rs, rs); !d.Clean() || d.Matched != 2 {
		t.Fatalf("diff=%+v", d)
	}
}
