package walk

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"funcfold/internal/core/lang"
)

// Filter decides inclusion for a single root; the watcher uses it to judge
// paths reported by fsnotify without walking again.
type Filter struct {
	root string
	opts Options
	ig   *ignoreMatcher
}

func NewFilter(root string, opts Options) (*Filter, error) {
	ig, err := loadIgnoreMatcher(root, opts.ScanAll)
	if err != nil {
		return nil, err
	}
	return &Filter{
		root: root,
		opts: opts,
		ig:   ig,
	}, nil
}

func (f *Filter) ShouldInclude(rel string, isDir bool) bool {
	if f == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	name := path.Base(rel)

	if isDir {
		if !f.opts.ScanAll && (isHidden(name) || isDefaultSkippedDir(name)) {
			return false
		}
		return f.opts.ScanAll || !f.ig.isIgnored(rel, true)
	}

	if !f.opts.ScanAll && isHidden(name) {
		return false
	}
	if !f.opts.ScanAll && f.ig.isIgnored(rel, false) {
		return false
	}
	if len(f.opts.IncludeGlobs) > 0 && !anyGlobMatch(f.opts.IncludeGlobs, rel) {
		return false
	}
	if anyGlobMatch(f.opts.ExcludeGlobs, rel) {
		return false
	}
	if f.opts.SupportedOnly && !f.supported(rel) {
		return false
	}
	return true
}

// shebangPeek bounds how much of an extensionless file is read to find its
// interpreter line.
const shebangPeek = 256

func (f *Filter) supported(rel string) bool {
	if id := lang.FromPath(rel); id != "" || path.Ext(rel) != "" {
		return lang.Supported(id)
	}

	file, err := os.Open(filepath.Join(f.root, filepath.FromSlash(rel)))
	if err != nil {
		return false
	}
	defer file.Close()

	head := make([]byte, shebangPeek)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false
	}
	return lang.Supported(lang.FromPathAndContent(rel, head[:n]))
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func isDefaultSkippedDir(name string) bool {
	switch name {
	case ".git", "node_modules", "dist", "target", "__pycache__", ".venv", "venv":
		return true
	default:
		return false
	}
}

func anyGlobMatch(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if matchesGlob(pat, rel) {
			return true
		}
	}
	return false
}

func matchesGlob(pattern string, rel string) bool {
	pat := strings.TrimSpace(pattern)
	if pat == "" {
		return false
	}
	pat = strings.ReplaceAll(pat, "\\", "/")
	rel = filepath.ToSlash(rel)

	// -x "*.min.js,*.d.ts" arrives as one value.
	if strings.Contains(pat, ",") {
		for _, piece := range strings.Split(pat, ",") {
			if matchesGlob(strings.TrimSpace(piece), rel) {
				return true
			}
		}
		return false
	}

	// No separator: match the basename.
	if !strings.Contains(pat, "/") {
		ok, _ := path.Match(pat, path.Base(rel))
		return ok
	}

	ok, _ := path.Match(pat, rel)
	return ok
}
