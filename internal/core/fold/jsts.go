package fold

import "strings"

// FindJSTSRange computes the extent of the function opening at line start by
// brace balance.
//
// Braces are counted wherever they appear. Braces inside string, template or
// regex literals and inside comments are counted too, so such code can yield
// a wrong end line. This is an accepted limitation of the line heuristic.
func FindJSTSRange(lines []SourceLine, start int) (FunctionRange, bool) {
	if start < 0 || start >= len(lines) {
		return FunctionRange{}, false
	}

	opening := lines[start].Text
	if strings.Contains(opening, "=>") && !strings.Contains(opening, "{") {
		// Concise arrow body: nothing to fold.
		return FunctionRange{StartLine: start, EndLine: start}, true
	}

	depth := 0
	entered := false
	for i := start; i < len(lines); i++ {
		for _, r := range lines[i].Text {
			switch r {
			case '{':
				depth++
				entered = true
			case '}':
				depth--
				if depth == 0 && entered {
					return FunctionRange{StartLine: start, EndLine: i}, true
				}
			}
		}
	}

	if !entered {
		return FunctionRange{}, false
	}
	// Unbalanced to the end of the document: best effort.
	return FunctionRange{StartLine: start, EndLine: len(lines) - 1}, true
}
