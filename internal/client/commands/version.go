package commands

import (
	"os"

	"github.com/dmitrijs2005/fieldshift/internal/buildinfo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		buildinfo.PrintBuildData(os.Stdout)
	},
}
