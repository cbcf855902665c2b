package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Manage labels",
}

var labelCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.notes.CreateLabel(cmd.Context(), app.owner(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Created label %q\n", args[0])
		return nil
	},
}

var labelDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a label",
	Long:  `Delete a label from the collection and detach it from every note.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.notes.DeleteLabel(cmd.Context(), app.owner(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted label %q\n", args[0])
		return nil
	},
}

var labelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List labels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := app.notes.Load(cmd.Context(), app.owner())
		if err != nil {
			return err
		}
		if len(c.Labels) == 0 {
			fmt.Println("No labels.")
			return nil
		}
		for _, l := range c.Labels {
			fmt.Println(l)
		}
		return nil
	},
}

var labelToggleCmd = &cobra.Command{
	Use:   "toggle <note-id> <name>",
	Short: "Attach or detach a label on a note",
	Args:  cobra.ExactArgs(2),
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

		attached, err := app.notes.ToggleNoteLabel(ctx, app.owner(), n.Id, args[1])
		if err != nil {
			return err
		}
		if attached {
			fmt.Printf("Attached %q to note %s\n", args[1], shortID(n.Id))
		} else {
			fmt.Printf("Detached %q from note %s\n", args[1], shortID(n.Id))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(labelCmd)
	labelCmd.AddCommand(labelCreateCmd)
	labelCmd.AddCommand(labelDeleteCmd)
	labelCmd.AddCommand(labelListCmd)
	labelCmd.AddCommand(labelToggleCmd)
}
