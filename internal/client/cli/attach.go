package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var attachAsDoc bool

var attachCmd = &cobra.Command{
	Use:   "attach <id> <file>",
	Short: "Attach a file to a note",
	Long: `Attach a file to a note as an image, or as a document with --doc.
The payload is stored locally and uploaded on the next sync.`,
	Args: cobra.ExactArgs(2),
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

		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[1], err)
		}
		name := filepath.Base(args[1])
		mimeType := mime.TypeByExtension(filepath.Ext(name))

		if err := app.notes.AttachFile(ctx, app.owner(), n.Id, name, mimeType, data, attachAsDoc); err != nil {
			return err
		}
		fmt.Printf("Attached %s to note %s\n", name, shortID(n.Id))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(attachCmd)
	attachCmd.Flags().BoolVar(&attachAsDoc, "doc", false, "attach as a document instead of an image")
}
