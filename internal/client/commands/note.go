package commands

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fieldshift/internal/client/services"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note <session-id> <text>...",
	Short: "Submit a visit note for a session",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.cfg.WorkerID == "" {
			return fmt.Errorf("worker id not configured (set FIELDSHIFT_WORKER_ID)")
		}

		body := strings.Join(args[1:], " ")
		outcome, err := a.notes.Submit(ctx, args[0], a.cfg.WorkerID, body)
		if err != nil {
			return err
		}

		if outcome == services.OutcomeQueued {
			fmt.Println("Note saved (queued for sync).")
		} else {
			fmt.Println("Note saved.")
		}
		return nil
	},
}
