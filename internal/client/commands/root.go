// Package commands implements the fieldshift CLI.
package commands

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "fieldshift",
	Short: "Offline-first shift companion for field workers",
	Long: `fieldshift keeps a single active shift consistent across an unreliable
network: geofence-gated check-in and check-out, a durable outbox of
unacknowledged writes, and reconciliation once connectivity returns.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(obligationsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}
