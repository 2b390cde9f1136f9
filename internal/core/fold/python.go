package fold

import "strings"

// FindPythonRange computes the extent of the def at line defLine. The start
// moves back over decorator lines (blank lines between them allowed); the
// end is the last line indented deeper than the def before the first
// non-blank, non-comment line that is not.
func FindPythonRange(lines []SourceLine, defLine int) (FunctionRange, bool) {
	if defLine < 0 || defLine >= len(lines) {
		return FunctionRange{}, false
	}

	defIndent := Indent(lines[defLine].Text)

	start := defLine
	for i := defLine - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i].Text)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "@") {
			start = i
			continue
		}
		break
	}

	end := defLine
	hasBody := false
	for i := defLine + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i].Text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if Indent(lines[i].Text) <= defIndent {
			break
		}
		hasBody = true
		end = i
	}

	if !hasBody {
		return FunctionRange{}, false
	}
	return FunctionRange{StartLine: start, EndLine: end}, true
}
