package foldcli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"funcfold/internal/core/fold"
	"funcfold/internal/core/treesitter"
)

var errDisagreement = errors.New("heuristic ranges disagree with the parser")

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Compare detected ranges with a tree-sitter parse",
		Long: "Compares the line heuristics with ranges derived from a tree-sitter parse.\n" +
			"Requires a binary built with -tags treesitter and cgo.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := mustOptions(cmd)
			if err != nil {
				return err
			}
			if !treesitter.Enabled {
				return fmt.Errorf("check: %w (rebuild with -tags treesitter)", treesitter.ErrDisabled)
			}

			p := treesitter.NewProvider()
			failed := 0
			for _, path := range args {
				res, err := detectFile(cmd.Context(), path, opts.Language)
				if err != nil {
					return err
				}
				src, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				ref, err := p.FunctionRanges(res.Language, src)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				d := treesitter.Compare(res.Ranges, ref)
				if opts.Format == "json" || opts.Format == "jsonl" {
					if err := writeJSON(cmd.OutOrStdout(), struct {
						Path string `json:"path"`
						treesitter.Diff
					}{path, d}); err != nil {
						return err
					}
				} else if err := writeDiff(cmd.OutOrStdout(), path, d); err != nil {
					return err
				}
				if !d.Clean() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files: %w", failed, len(args), errDisagreement)
			}
			return nil
		},
	}
}

func writeDiff(w io.Writer, path string, d treesitter.Diff) error {
	if _, err := fmt.Fprintf(w, "%s: %d matched\n", path, d.Matched); err != nil {
		return err
	}
	line := func(tag string, r fold.FunctionRange) error {
		_, err := fmt.Fprintf(w, "  %s %d-%d %s\n", tag, r.StartLine+1, r.EndLine+1, r.Name)
		return err
	}
	for _, r := range d.Missing {
		if err := line("missing", r); err != nil {
			return err
		}
	}
	for _, r := range d.Extra {
		if err := line("extra  ", r); err != nil {
			return err
		}
	}
	for _, m := range d.Mismatched {
		if _, err := fmt.Fprintf(w, "  end     %d: %d vs %d %s\n",
			m.Heuristic.StartLine+1, m.Heuristic.EndLine+1, m.Reference.EndLine+1, m.Heuristic.Name); err != nil {
			return err
		}
	}
	return nil
}
