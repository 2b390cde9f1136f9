package fold

import (
	"regexp"
	"strings"
)

type PatternKind string

const (
	KindFunctionDeclaration PatternKind = "function-declaration"
	KindArrowFunction       PatternKind = "arrow-function"
	KindTypedArrowFunction  PatternKind = "typed-arrow-function"
	KindFunctionExpression  PatternKind = "function-expression"
	KindMethodShorthand     PatternKind = "method-shorthand"
	KindClassMethod         PatternKind = "class-method"
	KindPythonDef           PatternKind = "python-def"
	KindPythonAsyncDef      PatternKind = "python-async-def"
)

// Pattern tags one signature regex with the shape it recognises. Every
// expression captures the declared identifier as the "name" group.
type Pattern struct {
	Kind   PatternKind
	Family Family
	Expr   *regexp.Regexp

	// rejectKeywords drops matches whose name is a statement keyword, so
	// `if (x) {` is not taken for a method called "if".
	rejectKeywords bool
}

func (p Pattern) match(text string) (string, bool) {
	m := p.Expr.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	name := ""
	if idx := p.Expr.SubexpIndex("name"); idx >= 0 && idx < len(m) {
		name = m[idx]
	}
	if p.rejectKeywords {
		if _, ok := statementKeywords[name]; ok {
			return "", false
		}
	}
	return name, true
}

var statementKeywords = map[string]struct{}{
	"if":       {},
	"for":      {},
	"while":    {},
	"switch":   {},
	"catch":    {},
	"with":     {},
	"return":   {},
	"function": {},
	"do":       {},
	"else":     {},
	"await":    {},
	"typeof":   {},
	"new":      {},
	"yield":    {},
}

// The tables below are compiled once and never mutated. Order only decides
// which kind is reported when several shapes match the same line.
var jstsPatterns = []Pattern{
	{
		Kind:   KindFunctionDeclaration,
		Family: FamilyJSTS,
		Expr:   regexp.MustCompile(`^\s*(?:export\s+(?:default\s+)?)?(?:async\s+)?function\b\s*\*?\s*(?P<name>[\w$]+)\s*(?:<[^>]*>\s*)?\(`),
	},
	{
		Kind:   KindArrowFunction,
		Family: FamilyJSTS,
		Expr:   regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+(?P<name>[\w$]+)\s*=\s*(?:async\s+)?\(`),
	},
	{
		Kind:   KindTypedArrowFunction,
		Family: FamilyJSTS,
		Expr:   regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+(?P<name>[\w$]+)\s*:\s*[^=]+=\s*(?:async\s+)?\(`),
	},
	{
		Kind:   KindFunctionExpression,
		Family: FamilyJSTS,
		Expr:   regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+(?P<name>[\w$]+)\s*=\s*(?:async\s+)?function\b\s*\*?\s*(?:[\w$]+\s*)?\(`),
	},
	{
		Kind:           KindMethodShorthand,
		Family:         FamilyJSTS,
		Expr:           regexp.MustCompile(`^\s*(?:async\s+)?\*?\s*(?P<name>[\w$]+)\s*\([^)]*\)(?:\s*:\s*[^{=;]+)?\s*\{`),
		rejectKeywords: true,
	},
	{
		Kind:           KindClassMethod,
		Family:         FamilyJSTS,
		Expr:           regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|readonly|override|abstract)\s+)+(?:async\s+)?\*?\s*(?P<name>[\w$]+)\s*\([^)]*\)(?:\s*:\s*[^{=;]+)?\s*\{`),
		rejectKeywords: true,
	},
}

var pythonPatterns = []Pattern{
	{
		Kind:   KindPythonDef,
		Family: FamilyPython,
		Expr:   regexp.MustCompile(`^\s*def\s+(?P<name>[\p{L}_][\p{L}\p{N}_]*)\s*\(`),
	},
	{
		Kind:   KindPythonAsyncDef,
		Family: FamilyPython,
		Expr:   regexp.MustCompile(`^\s*async\s+def\s+(?P<name>[\p{L}_][\p{L}\p{N}_]*)\s*\(`),
	},
}

// Patterns returns a copy of the signature table for a family.
func Patterns(f Family) []Pattern {
	var src []Pattern
	switch f {
	case FamilyJSTS:
		src = jstsPatterns
	case FamilyPython:
		src = pythonPatterns
	}
	out := make([]Pattern, len(src))
	copy(out, src)
	return out
}

// IsSkippable reports lines that can never open a function: blank lines and
// whole-line comments.
func IsSkippable(f Family, text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	switch f {
	case FamilyJSTS:
		return strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*")
	case FamilyPython:
		return strings.HasPrefix(trimmed, "#")
	default:
		return false
	}
}

// MatchJSTS reports whether a line opens a JS/TS function and which shape
// matched first.
func MatchJSTS(text string) (Pattern, string, bool) {
	for _, p := range jstsPatterns {
		if name, ok := p.match(text); ok {
			return p, name, true
		}
	}
	return Pattern{}, "", false
}

// MatchPython requires both the `def `/`async def ` prefix and a valid
// identifier before the parenthesis. Decorator lines never match; they are
// folded into the range by FindPythonRange.
func MatchPython(text string) (Pattern, string, bool) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "@") {
		return Pattern{}, "", false
	}
	if !strings.HasPrefix(trimmed, "def ") && !strings.HasPrefix(trimmed, "async def ") {
		return Pattern{}, "", false
	}
	for _, p := range pythonPatterns {
		if name, ok := p.match(text); ok {
			return p, name, true
		}
	}
	return Pattern{}, "", false
}
