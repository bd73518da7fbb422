package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/fieldshift/internal/client/services"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Probe connectivity and reconcile automatically until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Printf("Watching connectivity every %s. Ctrl-C to stop.\n", a.cfg.OnlineCheckInterval)
		watcher := services.NewWatcher(a.remote, a.sync, a.cfg.OnlineCheckInterval, a.log)
		watcher.Run(ctx)
		return nil
	},
}
