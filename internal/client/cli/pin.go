package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin <id>",
	Short: "Toggle a note's pin",
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

		pinned, err := app.notes.TogglePin(ctx, app.owner(), n.Id)
		if err != nil {
			return err
		}
		if pinned {
			fmt.Printf("Pinned note %s\n", shortID(n.Id))
		} else {
			fmt.Printf("Unpinned note %s\n", shortID(n.Id))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pinCmd)
}
