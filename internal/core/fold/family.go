package fold

import (
	"errors"
	"sort"
	"strings"
)

type Family int

const (
	FamilyJSTS Family = iota + 1
	FamilyPython
)

func (f Family) String() string {
	switch f {
	case FamilyJSTS:
		return "js_ts"
	case FamilyPython:
		return "python"
	default:
		return "unknown"
	}
}

var ErrUnsupportedLanguage = errors.New("unsupported language")

var languageFamilies = map[string]Family{
	"javascript":      FamilyJSTS,
	"typescript":      FamilyJSTS,
	"javascriptreact": FamilyJSTS,
	"typescriptreact": FamilyJSTS,
	"python":          FamilyPython,
}

// FamilyFor maps a host language identifier to its scanning family.
func FamilyFor(languageID string) (Family, bool) {
	f, ok := languageFamilies[strings.TrimSpace(languageID)]
	return f, ok
}

func Supported(languageID string) bool {
	_, ok := FamilyFor(languageID)
	return ok
}

func SupportedLanguages() []string {
	out := make([]string, 0, len(languageFamilies))
	for id := range languageFamilies {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
