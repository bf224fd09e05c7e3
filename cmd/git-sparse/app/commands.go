// Package app provides the command-line interface of git-sparse.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scmkit/go-sparse/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:               "git-sparse",
	DisableAutoGenTag: true,
	Short:             "git-sparse manages sparse-checkout patterns for a git repository",
	Long: `git-sparse manages the sparse-checkout configuration of a git repository.

It maintains the pattern file under the git directory and the
core.sparseCheckout flag, and classifies paths as included in or excluded
from the sparse checkout. It never creates or removes working-tree files.

When installed on $PATH it is also available as a git subcommand:
git sparse <command>.`,
	Run: func(cmd *cobra.Command, _ []string) {
		// If no subcommand is provided, print help
		if err := cmd.Help(); err != nil {
			logger.Errorf("Error displaying help: %v", err)
		}
	},
}

// NewRootCmd creates a new root command for the git-sparse CLI.
func NewRootCmd() *cobra.Command {
	// Add persistent flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().String("repo", ".", "Path to the repository (the .git directory is discovered upward)")

	err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	if err != nil {
		logger.Errorf("Error binding debug flag: %v", err)
	}

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		// Re-initialize now that the debug flag has been parsed.
		logger.Initialize()
	}

	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(disableCmd)
	rootCmd.AddCommand(checkCmd)

	return rootCmd
}
