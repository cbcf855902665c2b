package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/notedrive/internal/client/models"
)

var (
	addContent string
	addLabels  []string
	addColor   string
	addType    string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a note",
	Long: `Add a new note to the active partition. Content comes from the
--content flag, or from stdin when the flag is absent and stdin is piped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		content := addContent
		if content == "" {
			if fi, err := os.Stdin.Stat(); err == nil && fi.Mode()&os.ModeCharDevice == 0 {
				raw, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				content = strings.TrimRight(string(raw), "\n")
			}
		}

		n, err := app.notes.Add(ctx, app.owner(), args[0], content, addLabels)
		if err != nil {
			return err
		}
		if addColor != "" {
			if err := app.notes.SetColor(ctx, app.owner(), n.Id, addColor); err != nil {
				return err
			}
		}
		if addType != "" {
			if err := app.notes.SetType(ctx, app.owner(), n.Id, models.NoteType(addType)); err != nil {
				return err
			}
		}

		fmt.Printf("Added note %s\n", shortID(n.Id))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addContent, "content", "m", "", "note content")
	addCmd.Flags().StringArrayVarP(&addLabels, "label", "l", nil, "label to attach (repeatable)")
	addCmd.Flags().StringVar(&addColor, "color", "", "display color")
	addCmd.Flags().StringVar(&addType, "type", "", "note type: text, code or markdown")
}
