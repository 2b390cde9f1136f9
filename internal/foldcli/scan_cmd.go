package foldcli

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"funcfold/internal/core/scan"
)

func newScanCommand() *cobra.Command {
	var summary bool
	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Detect function ranges in every supported file under dir",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := mustOptions(cmd)
			if err != nil {
				return err
			}

			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			root, err = filepath.Abs(root)
			if err != nil {
				return err
			}

			rep, err := scan.Run(cmd.Context(), root, opts.scanOptions())
			if err != nil {
				return err
			}
			opts.Logger().Debug("scan finished", "root", root, "files", len(rep.Files), "ranges", rep.TotalRanges)

			if summary {
				return writeSummary(cmd.OutOrStdout(), rep)
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), rep)
			}
			return WriteRecords(cmd.OutOrStdout(), opts.Format, Records(rep.Files))
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "print totals only")
	return cmd
}

func writeSummary(w io.Writer, rep *scan.Report) error {
	byLang := map[string]int{}
	var order []string
	for _, f := range rep.Files {
		if _, ok := byLang[f.Language]; !ok {
			order = append(order, f.Language)
		}
		byLang[f.Language] += len(f.Ranges)
	}
	sort.Strings(order)

	_, err := fmt.Fprintf(w, "%s files, %s lines (%s), %s functions\n",
		humanize.Comma(int64(len(rep.Files))),
		humanize.Comma(int64(rep.TotalLines)),
		humanize.IBytes(uint64(rep.TotalBytes)),
		humanize.Comma(int64(rep.TotalRanges)),
	)
	if err != nil {
		return err
	}
	for _, l := range order {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", l, humanize.Comma(int64(byLang[l]))); err != nil {
			return err
		}
	}
	return nil
}
