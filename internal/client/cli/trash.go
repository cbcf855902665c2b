package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var trashCmd = &cobra.Command{
	Use:   "trash <id>",
	Short: "Move a note to the trash",
	Long: `Move an active or archived note to the trash. Trashed notes are kept
for 30 days and then purged.`,
	Args: cobra.ExactArgs(1),
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
		if err := app.notes.Trash(ctx, app.owner(), n.Id); err != nil {
			return err
		}
		fmt.Printf("Trashed note %s\n", shortID(n.Id))
		return nil
	},
}

var trashRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a note from the trash",
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
		if err := app.notes.Restore(ctx, app.owner(), n.Id); err != nil {
			return err
		}
		fmt.Printf("Restored note %s\n", shortID(n.Id))
		return nil
	},
}

var trashDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a trashed note permanently",
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
		if err := app.notes.Delete(ctx, app.owner(), n.Id); err != nil {
			return err
		}
		fmt.Printf("Deleted note %s\n", shortID(n.Id))
		return nil
	},
}

var trashEmptyCmd = &cobra.Command{
	Use:   "empty",
	Short: "Delete all trashed notes permanently",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := app.notes.EmptyTrash(cmd.Context(), app.owner())
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d note(s)\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trashCmd)
	trashCmd.AddCommand(trashRestoreCmd)
	trashCmd.AddCommand(trashDeleteCmd)
	trashCmd.AddCommand(trashEmptyCmd)
}
