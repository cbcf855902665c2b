package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Purge trashed notes past the retention window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := app.notes.PurgeExpiredTrash(cmd.Context(), app.owner())
		if err != nil {
			return err
		}
		fmt.Printf("Purged %d note(s)\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)
}
