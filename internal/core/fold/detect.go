// Package fold finds function and method bodies in JavaScript, TypeScript
// and Python source using line patterns, brace counting and indentation.
// It is a heuristic scanner: there is no parser and no AST.
//
// Nested functions are reported as separate, overlapping ranges. Callers
// that need disjoint regions must filter them themselves.
package fold

import (
	"context"
	"fmt"
)

// FunctionRange is an inclusive, 0-indexed line interval holding one
// function. Kind and Name describe the signature line that opened it.
type FunctionRange struct {
	StartLine int         `json:"start_line"`
	EndLine   int         `json:"end_line"`
	Kind      PatternKind `json:"kind,omitempty"`
	Name      string      `json:"name,omitempty"`
}

// Detect scans text top to bottom and returns every function range whose
// end lies after its start, in document order.
//
// ctx is consulted before each line. Once it is done the scan stops and
// Detect returns nil: ranges found before cancellation are discarded.
func Detect(ctx context.Context, text string, family Family) []FunctionRange {
	if ctx == nil {
		ctx = context.Background()
	}
	if family != FamilyJSTS && family != FamilyPython {
		return nil
	}

	lines := Lines(text)
	var out []FunctionRange
	for i, line := range lines {
		if ctx.Err() != nil {
			return nil
		}
		if IsSkippable(family, line.Text) {
			continue
		}

		r, ok := detectAt(lines, i, family)
		if ok && r.EndLine > r.StartLine {
			out = append(out, r)
		}
	}
	return out
}

// DetectLanguage resolves a host language identifier and runs Detect.
func DetectLanguage(ctx context.Context, text string, languageID string) ([]FunctionRange, error) {
	family, ok := FamilyFor(languageID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, languageID)
	}
	return Detect(ctx, text, family), nil
}

func detectAt(lines []SourceLine, i int, family Family) (FunctionRange, bool) {
	switch family {
	case FamilyJSTS:
		p, name, ok := MatchJSTS(lines[i].Text)
		if !ok {
			return FunctionRange{}, false
		}
		r, ok := FindJSTSRange(lines, i)
		if !ok {
			return FunctionRange{}, false
		}
		r.Kind, r.Name = p.Kind, name
		return r, true
	case FamilyPython:
		p, name, ok := MatchPython(lines[i].Text)
		if !ok {
			return FunctionRange{}, false
		}
		r, ok := FindPythonRange(lines, i)
		if !ok {
			return FunctionRange{}, false
		}
		r.Kind, r.Name = p.Kind, name
		return r, true
	default:
		return FunctionRange{}, false
	}
}
