package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	editTitle   string
	editContent string
	editColor   string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a note",
	Long:  `Change a note's title, content or color. Only the provided flags are applied.`,
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

		if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("content") && !cmd.Flags().Changed("color") {
			return fmt.Errorf("nothing to change, pass --title, --content or --color")
		}

		if cmd.Flags().Changed("title") || cmd.Flags().Changed("content") {
			title, content := n.Title, n.Content
			if cmd.Flags().Changed("title") {
				title = editTitle
			}
			if cmd.Flags().Changed("content") {
				content = editContent
			}
			if err := app.notes.Update(ctx, app.owner(), n.Id, title, content); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("color") {
			if err := app.notes.SetColor(ctx, app.owner(), n.Id, editColor); err != nil {
				return err
			}
		}

		fmt.Printf("Updated note %s\n", shortID(n.Id))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "new title")
	editCmd.Flags().StringVarP(&editContent, "content", "m", "", "new content")
	editCmd.Flags().StringVar(&editColor, "color", "", "new display color")
}
