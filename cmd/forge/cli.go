package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand(os.Args).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "forge error:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dir   string
	debug bool
}

func newRootCommand(args []string) *cobra.Command {
	opts := &rootOptions{}
	var showVersion bool
	root := &cobra.Command{
		Use:           "forge",
		Short:         "Terminal workspace for a Git repository and its project board",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				return runVersionCommand(cmd.OutOrStdout())
			}
			return runTUI(*opts)
		},
	}
	root.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "Start in this directory")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Write debug logs")
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "Print forge version and exit")

	root.AddCommand(
		newInitCommand(),
		newStatusCommand(opts),
		newVersionCommand(),
	)

	if len(args) > 1 {
		root.SetArgs(args[1:])
	}
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print forge version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersionCommand(cmd.OutOrStdout())
		},
	}
}

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print branch, changes and module progress without starting the UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.OutOrStdout(), opts.dir)
		},
	}
}

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or edit the forge configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.OutOrStdout())
		},
	}
}
