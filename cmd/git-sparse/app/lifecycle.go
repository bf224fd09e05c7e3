package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scmkit/go-sparse/pkg/sparse"
)

var initPatterns []string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Enable sparse checkout for the repository",
	Long: `Enable sparse checkout by setting core.sparseCheckout and creating the
pattern file when it does not exist yet. A fresh file is seeded with the
given --pattern flags, or with the defaults "/*" and "!/*/" (keep every
root-level entry, drop every subdirectory). An existing pattern file is
never overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		checkout, err := openCheckout(cmd)
		if err != nil {
			return err
		}
		return checkout.Init(&sparse.InitOptions{Patterns: initPatterns})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the sparse-checkout patterns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		checkout, err := openCheckout(cmd)
		if err != nil {
			return err
		}
		patterns, err := checkout.List()
		if err != nil {
			return err
		}
		for _, p := range patterns {
			fmt.Println(p)
		}
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set <pattern>...",
	Short: "Replace the sparse-checkout patterns",
	Long: `Replace the pattern file's contents with the given patterns, in order.
When sparse checkout is not enabled yet, it is enabled first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		checkout, err := openCheckout(cmd)
		if err != nil {
			return err
		}
		return checkout.Set(args)
	},
}

var addCmd = &cobra.Command{
	Use:   "add <pattern>...",
	Short: "Append sparse-checkout patterns",
	Long: `Append the given patterns after the existing ones, preserving order and
duplicates. When sparse checkout is not enabled, nothing is appended.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		checkout, err := openCheckout(cmd)
		if err != nil {
			return err
		}
		return checkout.Add(args)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable sparse checkout",
	Long: `Switch core.sparseCheckout off. The pattern file is kept as-is, and no
working-tree files are restored.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		checkout, err := openCheckout(cmd)
		if err != nil {
			return err
		}
		return checkout.Disable()
	},
}

func init() {
	initCmd.Flags().StringArrayVar(&initPatterns, "pattern", nil,
		"Seed pattern for a freshly created pattern file (repeatable)")
}
