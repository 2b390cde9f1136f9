package foldcli

import (
	"github.com/spf13/cobra"

	"funcfold/internal/version"
)

func newVersionCommand() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := mustOptions(cmd)
			if err != nil {
				return err
			}
			info := version.Get()
			if opts.Format == "json" || opts.Format == "jsonl" {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			return info.Write(cmd.OutOrStdout(), short)
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "print the version number only")
	return cmd
}
