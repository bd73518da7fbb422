package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var obligationsCmd = &cobra.Command{
	Use:   "obligations",
	Short: "List recent sessions still missing a visit note",
	Args:  cobra.NoArgs,
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

		pending, err := a.obligations.Pending(ctx, a.cfg.WorkerID)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			fmt.Println("No outstanding notes.")
			return nil
		}

		rows := make([][]string, 0, len(pending))
		for _, o := range pending {
			rows = append(rows, []string{
				o.SessionID,
				o.SubjectLabel,
				o.CheckOutTime.Local().Format("Mon 15:04"),
				o.Remaining.Round(time.Minute).String(),
			})
		}
		fmt.Println(renderTable(
			[]string{"Session", "Subject", "Checked out", "Time left"},
			rows,
		))
		return nil
	},
}
