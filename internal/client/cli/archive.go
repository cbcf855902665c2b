package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c, err := app.notes.Load(ctx, app.owner())
		if err != nil {
			return err
		}
		n, err := app.resolveNote(c, args[0])
		if err != nil {
			return err
		}
		if err := app.notes.Archive(ctx, app.owner(), n.Id); err != nil {
			return err
		}
		fmt.Printf("Archived note %s\n", shortID(n.Id))
		return nil
	},
}

var unarchiveCmd = &cobra.Command{
	Use:   "unarchive <id>",
	Short: "Move an archived note back to the active list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c, err := app.notes.Load(ctx, app.owner())
		if err != nil {
			return err
		}
		n, err := app.resolveNote(c, args[0])
		if err != nil {
			return err
		}
		if err := app.notes.Unarchive(ctx, app.owner(), n.Id); err != nil {
			return err
		}
		fmt.Printf("Unarchived note %s\n", shortID(n.Id))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(unarchiveCmd)
}
