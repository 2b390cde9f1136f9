// Package scan runs the function detector over every supported file under a
// root directory.
package scan

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"funcfold/internal/core/fold"
	"funcfold/internal/core/lang"
	"funcfold/internal/core/walk"
)

type Options struct {
	IncludeGlobs []string
	ExcludeGlobs []string
	ScanAll      bool
	// Language forces a language id for every file instead of resolving it
	// from the path.
	Language string
	Jobs     int
}

type FileResult struct {
	Path     string               `json:"path"`
	Language string               `json:"language"`
	Lines    int                  `json:"lines"`
	Bytes    int64                `json:"bytes"`
	Ranges   []fold.FunctionRange `json:"ranges"`
}

type Report struct {
	Root        string       `json:"root"`
	Files       []FileResult `json:"files"`
	TotalLines  int          `json:"total_lines"`
	TotalBytes  int64        `json:"total_bytes"`
	TotalRanges int          `json:"total_ranges"`
}

func (o Options) walkOptions() walk.Options {
	return walk.Options{
		IncludeGlobs:  o.IncludeGlobs,
		ExcludeGlobs:  o.ExcludeGlobs,
		ScanAll:       o.ScanAll,
		SupportedOnly: strings.TrimSpace(o.Language) == "",
	}
}

// Run lists files under root and detects ranges in each. Files are read and
// scanned in parallel; the report is sorted by path. A cancelled ctx aborts
// the whole scan with ctx.Err().
func Run(ctx context.Context, root string, opts Options) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	root = filepath.Clean(root)
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("root is required")
	}

	files, err := walk.ListFiles(root, opts.walkOptions())
	if err != nil {
		return nil, err
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = 1
	}

	results := make([]*FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := File(gctx, root, rel, opts.Language)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep := &Report{Root: root, Files: make([]FileResult, 0, len(results))}
	for _, res := range results {
		if res == nil {
			continue
		}
		rep.Files = append(rep.Files, *res)
		rep.TotalLines += res.Lines
		rep.TotalBytes += res.Bytes
		rep.TotalRanges += len(res.Ranges)
	}
	sort.Slice(rep.Files, func(i, j int) bool { return rep.Files[i].Path < rep.Files[j].Path })
	return rep, nil
}

// File scans one file relative to root. It returns (nil, nil) for binary
// files and files whose language is not supported.
func File(ctx context.Context, root, rel string, languageID string) (*FileResult, error) {
	full := filepath.Join(root, filepath.FromSlash(rel))
	b, err := os.ReadFile(full)
	if err != nil {
		return nil, err
	}
	if isBinary(b) {
		return nil, nil
	}

	id := lang.Normalize(languageID)
	if id == "" {
		id = lang.FromPathAndContent(rel, b)
	}
	if !lang.Supported(id) {
		return nil, nil
	}

	text := string(b)
	ranges, err := fold.DetectLanguage(ctx, text, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rel, err)
	}
	if ranges == nil {
		ranges = []fold.FunctionRange{}
	}
	return &FileResult{
		Path:     filepath.ToSlash(rel),
		Language: id,
		Lines:    countLines(text),
		Bytes:    int64(len(b)),
		Ranges:   ranges,
	}, nil
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}

func isBinary(b []byte) bool {
	return bytes.IndexByte(b, 0) >= 0
}
