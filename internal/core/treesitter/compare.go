package treesitter

import (
	"sort"

	"funcfold/internal/core/fold"
)

// Mismatch pairs a heuristic range with the reference range that starts on
// the same line but ends elsewhere.
type Mismatch struct {
	Heuristic fold.FunctionRange `json:"heuristic"`
	Reference fold.FunctionRange `json:"reference"`
}

type Diff struct {
	Matched    int                  `json:"matched"`
	Missing    []fold.FunctionRange `json:"missing,omitempty"`
	Extra      []fold.FunctionRange `json:"extra,omitempty"`
	Mismatched []Mismatch           `json:"mismatched,omitempty"`
}

func (d Diff) Clean() bool {
	return len(d.Missing) == 0 && len(d.Extra) == 0 && len(d.Mismatched) == 0
}

// Compare matches ranges by start line. Missing are reference ranges the
// heuristic did not report; Extra are heuristic ranges with no reference.
func Compare(heuristic, reference []fold.FunctionRange) Diff {
	byStart := make(map[int][]fold.FunctionRange, len(reference))
	for _, r := range reference {
		byStart[r.StartLine] = append(byStart[r.StartLine], r)
	}

	var d Diff
	for _, h := range heuristic {
		refs := byStart[h.StartLine]
		if len(refs) == 0 {
			d.Extra = append(d.Extra, h)
			continue
		}
		idx := 0
		for i, r := range refs {
			if r.EndLine == h.EndLine {
				idx = i
				break
			}
		}
		ref := refs[idx]
		byStart[h.StartLine] = append(refs[:idx:idx], refs[idx+1:]...)
		if ref.EndLine == h.EndLine {
			d.Matched++
		} else {
			d.Mismatched = append(d.Mismatched, Mismatch{Heuristic: h, Reference: ref})
		}
	}

	for _, refs := range byStart {
		d.Missing = append(d.Missing, refs...)
	}
	sort.Slice(d.Missing, func(i, j int) bool { return d.Missing[i].StartLine < d.Missing[j].StartLine })
	return d
}
