package app

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <path>...",
	Short: "Classify paths against the sparse-checkout patterns",
	Long: `Classify each path as included in or excluded from the sparse checkout.
Paths may be repository-relative or absolute under the worktree; a trailing
separator marks a directory. When sparse checkout is disabled, every path
is included.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		checkout, err := openCheckout(cmd)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Options(
			tablewriter.WithHeader([]string{"Path", "Status"}),
			tablewriter.WithRendition(
				tw.Rendition{
					Borders: tw.Border{
						Left:   tw.State(1),
						Top:    tw.State(1),
						Right:  tw.State(1),
						Bottom: tw.State(1),
					},
				},
			),
			tablewriter.WithAlignment(tw.MakeAlign(2, tw.AlignLeft)),
		)

		for _, p := range args {
			decision, err := checkout.CheckPath(p)
			if err != nil {
				return err
			}
			if err := table.Append([]string{p, decision.String()}); err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
		return nil
	},
}
