package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active session and pending sync queue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		cur, err := a.repos.ActiveShift.Current(ctx)
		if err != nil {
			return err
		}
		if cur == nil {
			fmt.Println("No active session.")
		} else {
			elapsed := time.Since(cur.StartedAt).Round(time.Minute)
			fmt.Println(renderTable(
				[]string{"Session", "Subject", "Started", "Elapsed"},
				[][]string{{
					cur.SessionID,
					cur.SubjectLabel,
					cur.StartedAt.Local().Format("15:04"),
					elapsed.String(),
				}},
			))
		}

		count, err := a.repos.Outbox.Count(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Pending mutations: %d\n", count)
		return nil
	},
}
