package commands

import (
	"fmt"

	"github.com/dmitrijs2005/fieldshift/internal/client/services"
	"github.com/dmitrijs2005/fieldshift/internal/geo"
	"github.com/spf13/cobra"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin <shift-id>",
	Short: "Check in to a shift (geofence gated)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		shift, err := a.remote.GetShift(ctx, args[0])
		if err != nil {
			return fmt.Errorf("loading shift %s: %w", args[0], err)
		}

		req := services.CheckInRequest{
			SessionID:    shift.ID,
			SubjectLabel: shift.SubjectLabel,
		}
		if shift.TargetLat != nil && shift.TargetLon != nil {
			req.Target = &geo.Point{Lat: *shift.TargetLat, Lon: *shift.TargetLon}
		}

		res, err := a.shift.CheckIn(ctx, req)
		if err != nil {
			return err
		}

		switch res.Outcome {
		case services.OutcomeQueued:
			fmt.Printf("Checked in to %s, %dm from target (queued for sync).\n",
				shift.SubjectLabel, res.DistanceMeters)
		default:
			fmt.Printf("Checked in to %s, %dm from target.\n",
				shift.SubjectLabel, res.DistanceMeters)
		}
		return nil
	},
}
