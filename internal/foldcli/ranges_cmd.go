package foldcli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"funcfold/internal/core/fold"
	"funcfold/internal/core/scan"
)

func newRangesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ranges <file>...",
		Short: "Print the function ranges of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := mustOptions(cmd)
			if err != nil {
				return err
			}

			var files []scan.FileResult
			for _, p := range args {
				res, err := detectFile(cmd.Context(), p, opts.Language)
				if err != nil {
					return err
				}
				files = append(files, *res)
			}

			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), files)
			}
			return WriteRecords(cmd.OutOrStdout(), opts.Format, Records(files))
		},
	}
}

// detectFile is scan.File for a path named on the command line, where an
// unsupported or binary file is an error rather than something to skip.
func detectFile(ctx context.Context, path, languageID string) (*scan.FileResult, error) {
	res, err := scan.File(ctx, "", path, languageID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("%s: %w", path, fold.ErrUnsupportedLanguage)
	}
	return res, nil
}
