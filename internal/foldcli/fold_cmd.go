package foldcli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"funcfold/internal/core/editor"
	"funcfold/internal/core/lang"
)

func newFoldCommand() *cobra.Command {
	var unfold bool
	cmd := &cobra.Command{
		Use:   "fold <file>",
		Short: "Fold every function and print the folded view",
		Long: "Runs fold-all on the file in an in-memory editor. The message a user would\n" +
			"see goes to stderr; the folded text goes to stdout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := mustOptions(cmd)
			if err != nil {
				return err
			}

			path := args[0]
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			languageID := opts.Language
			if languageID == "" {
				languageID = lang.FromPathAndContent(path, b)
			}

			buf := editor.NewBuffer(editor.NewTextDocument(path, languageID, string(b)), nil)
			wb := editor.NewWorkbench()
			wb.Activate(buf)
			cmds := editor.NewCommands(wb, nil, opts.Logger())

			out := cmds.FoldAll(cmd.Context())
			if unfold && out.Level != editor.LevelError {
				out = cmds.UnfoldAll(cmd.Context())
			}
			for _, m := range wb.Messages() {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", m.Level, m.Text)
			}
			if out.Level == editor.LevelError {
				return fmt.Errorf("%s", out.Message)
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), buf.Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&unfold, "unfold", false, "run unfold-all after folding")
	return cmd
}
