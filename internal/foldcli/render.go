package foldcli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"funcfold/internal/core/fold"
	"funcfold/internal/core/scan"
)

// RangeRecord is one function range flattened for output. Lines are
// 0-based, as the detector reports them.
type RangeRecord struct {
	Path      string           `json:"path"`
	Language  string           `json:"language"`
	StartLine int              `json:"start_line"`
	EndLine   int              `json:"end_line"`
	Kind      fold.PatternKind `json:"kind,omitempty"`
	Name      string           `json:"name,omitempty"`
}

func Records(files []scan.FileResult) []RangeRecord {
	var out []RangeRecord
	for _, f := range files {
		for _, r := range f.Ranges {
			out = append(out, RangeRecord{
				Path:      f.Path,
				Language:  f.Language,
				StartLine: r.StartLine,
				EndLine:   r.EndLine,
				Kind:      r.Kind,
				Name:      r.Name,
			})
		}
	}
	return out
}

func WriteRecords(w io.Writer, format string, recs []RangeRecord) error {
	switch format {
	case "", "default":
		return writeDefault(w, recs)
	case "vim":
		return writeVim(w, recs)
	case "jsonl":
		return writeJSONL(w, recs)
	case "json":
		return writeJSON(w, recs)
	case "csv":
		return writeCSV(w, recs)
	case "markdown":
		return writeMarkdown(w, recs)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// writeDefault prints 1-based inclusive line spans.
func writeDefault(w io.Writer, recs []RangeRecord) error {
	for _, r := range recs {
		if _, err := fmt.Fprintf(w, "%s:%d-%d: %s\n", r.Path, r.StartLine+1, r.EndLine+1, describe(r)); err != nil {
			return err
		}
	}
	return nil
}

func writeVim(w io.Writer, recs []RangeRecord) error {
	for _, r := range recs {
		n := r.EndLine - r.StartLine + 1
		if _, err := fmt.Fprintf(w, "%s:%d:1: %s (%d lines)\n", r.Path, r.StartLine+1, describe(r), n); err != nil {
			return err
		}
	}
	return nil
}

func describe(r RangeRecord) string {
	if r.Name == "" {
		return string(r.Kind)
	}
	return string(r.Kind) + " " + r.Name
}

func writeJSONL(w io.Writer, recs []RangeRecord) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range recs {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var recordHeaders = []string{"path", "language", "start_line", "end_line", "kind", "name"}

func recordRow(r RangeRecord) []string {
	return []string{r.Path, r.Language, strconv.Itoa(r.StartLine), strconv.Itoa(r.EndLine), string(r.Kind), r.Name}
}

func writeCSV(w io.Writer, recs []RangeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recordHeaders); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write(recordRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeMarkdown(w io.Writer, recs []RangeRecord) error {
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(recordHeaders, " | ")); err != nil {
		return err
	}
	sep := make([]string, len(recordHeaders))
	for i := range sep {
		sep[i] = "---"
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, r := range recs {
		row := recordRow(r)
		for i := range row {
			row[i] = escapeMarkdownCell(row[i])
		}
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | ")); err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
