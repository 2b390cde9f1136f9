package lang

import (
	"bytes"
	"path/filepath"
	"strings"

	"funcfold/internal/core/fold"
)

const (
	JavaScript      = "javascript"
	TypeScript      = "typescript"
	JavaScriptReact = "javascriptreact"
	TypeScriptReact = "typescriptreact"
	Python          = "python"
)

var extensionLanguages = map[string]string{
	".js":  JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".jsx": JavaScriptReact,
	".ts":  TypeScript,
	".mts": TypeScript,
	".cts": TypeScript,
	".tsx": TypeScriptReact,
	".py":  Python,
	".pyw": Python,
	".pyi": Python,
}

var aliases = map[string]string{
	"js":         JavaScript,
	"mjs":        JavaScript,
	"cjs":        JavaScript,
	"node":       JavaScript,
	"jsx":        JavaScriptReact,
	"ts":         TypeScript,
	"tsx":        TypeScriptReact,
	"py":         Python,
	"python3":    Python,
	"python2":    Python,
	"javascript": JavaScript,
	"typescript": TypeScript,
}

var shebangLanguages = []struct {
	key  string
	lang string
}{
	{"python", Python},
	{"pypy", Python},
	{"node", JavaScript},
	{"deno", JavaScript},
	{"bun", JavaScript},
}

// FromPath maps a file name to a host language identifier, or "" when the
// extension is not one the detector understands.
func FromPath(p string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(p)))
	if ext == "" {
		return ""
	}
	return extensionLanguages[ext]
}

// FromPathAndContent falls back to the shebang line for extensionless
// scripts.
func FromPathAndContent(p string, data []byte) string {
	if id := FromPath(p); id != "" {
		return id
	}
	return fromShebang(data)
}

func fromShebang(data []byte) string {
	if !bytes.HasPrefix(data, []byte("#!")) {
		return ""
	}
	end := bytes.IndexByte(data, '\n')
	if end == -1 {
		end = len(data)
	}
	line := strings.ToLower(string(data[:end]))
	for _, s := range shebangLanguages {
		if strings.Contains(line, s.key) {
			return s.lang
		}
	}
	return ""
}

// Normalize canonicalises user-supplied language names ("py", "tsx", ...).
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	if canon, ok := aliases[n]; ok {
		return canon
	}
	return n
}

func Supported(id string) bool {
	return fold.Supported(Normalize(id))
}

func Extensions() []string {
	return []string{".js", ".mjs", ".cjs", ".jsx", ".ts", ".mts", ".cts", ".tsx", ".py", ".pyw", ".pyi"}
}
