package commands

import (
	"fmt"

	"github.com/dmitrijs2005/fieldshift/internal/client/services"
	"github.com/spf13/cobra"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Check out of the active shift",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.shift.CheckOut(ctx)
		if err != nil {
			return err
		}

		duration := "unknown"
		if res.DurationMinutes != nil {
			duration = fmt.Sprintf("%d min", *res.DurationMinutes)
		}
		if res.Outcome == services.OutcomeQueued {
			fmt.Printf("Checked out, duration %s (queued for sync).\n", duration)
		} else {
			fmt.Printf("Checked out, duration %s.\n", duration)
		}
		fmt.Println("Remember to write your visit note within 24 hours.")
		return nil
	},
}
