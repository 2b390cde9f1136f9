package foldcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"funcfold/internal/version"
)

func NewRootCommand() *cobra.Command {
	opts := &Options{Format: "default"}
	cmd := &cobra.Command{
		Use:           "funcfold",
		Short:         "Find and fold function bodies in JavaScript, TypeScript and Python",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.Version = version.String()
	cmd.InitDefaultVersionFlag()
	if f := cmd.Flags().Lookup("version"); f != nil {
		f.Shorthand = "v"
	}

	withOptionsContext(cmd, opts)
	bindFlags(cmd, opts)

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		opts := optionsFrom(cmd)
		if opts == nil {
			return fmt.Errorf("options missing")
		}
		return opts.Prepare(cmd)
	}

	cmd.AddCommand(newRangesCommand())
	cmd.AddCommand(newFoldCommand())
	cmd.AddCommand(newScanCommand())
	cmd.AddCommand(newWatchCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newVersionCommand())
	return cmd
}

func mustOptions(cmd *cobra.Command) (*Options, error) {
	opts := optionsFrom(cmd)
	if opts == nil {
		return nil, fmt.Errorf("options missing")
	}
	return opts, nil
}
