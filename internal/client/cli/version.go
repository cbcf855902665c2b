package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at link time via -ldflags.
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of notedrive",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("notedrive version %s (built %s)\n", buildVersion, buildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
