package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replay queued writes against the remote store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.sync.Reconcile(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Applied %d, failed %d, skipped %d.\n",
			report.Applied, report.Failed, report.Skipped)
		return nil
	},
}
