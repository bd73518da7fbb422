package commands

import (
	"fmt"

	"github.com/dmitrijs2005/fieldshift/internal/client/services"
	"github.com/spf13/cobra"
)

var attachCmd = &cobra.Command{
	Use:   "attach <session-id> <file>",
	Short: "Attach a photo or signature file to a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		outcome, err := a.attachments.Attach(ctx, args[0], args[1])
		if err != nil {
			return err
		}

		if outcome == services.OutcomeQueued {
			fmt.Println("Asset saved (queued for upload).")
		} else {
			fmt.Println("Asset uploaded.")
		}
		return nil
	},
}
