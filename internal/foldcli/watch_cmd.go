package foldcli

import (
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"funcfold/internal/core/scan"
	"funcfold/internal/core/walk"
	"funcfold/internal/core/watch"
)

func newWatchCommand() *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Print function ranges of files as they change",
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
			if !cmd.Flags().Changed("debounce") && opts.Config() != nil {
				debounce = opts.Config().Watch.Debounce
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := opts.Logger()
			out := cmd.OutOrStdout()
			onChange := func(paths []string) {
				var files []scan.FileResult
				for _, rel := range paths {
					res, err := scan.File(ctx, root, rel, opts.Language)
					switch {
					case errors.Is(err, fs.ErrNotExist):
						logger.Info("file removed", "path", rel)
					case err != nil:
						logger.Warn("rescan failed", "path", rel, "error", err)
					case res != nil:
						files = append(files, *res)
					}
				}
				if err := WriteRecords(out, recordFormat(opts.Format), Records(files)); err != nil {
					logger.Warn("write ranges", "error", err)
				}
			}

			w, err := watch.NewWatcher(root, walk.Options{
				IncludeGlobs:  opts.IncludeGlobs,
				ExcludeGlobs:  opts.ExcludeGlobs,
				ScanAll:       opts.ScanAll,
				SupportedOnly: opts.Language == "",
			}, watch.Options{
				Debounce: debounce,
				OnChange: onChange,
				Logger:   logger,
			})
			if err != nil {
				return err
			}
			defer w.Close()

			logger.Info("watching", "root", root, "debounce", w.Debounce())
			return w.Run(ctx)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "quiet period before rescanning")
	return cmd
}

// recordFormat maps formats that need the whole result set onto their
// streaming counterpart.
func recordFormat(format string) string {
	if format == "json" {
		return "jsonl"
	}
	return format
}
