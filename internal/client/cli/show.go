package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := app.notes.Load(cmd.Context(), app.owner())
		if err != nil {
			return err
		}
		n, err := app.resolveNote(c, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Id:      %s\n", n.Id)
		fmt.Printf("Title:   %s\n", n.Title)
		if n.Pinned {
			fmt.Println("Pinned:  yes")
		}
		if n.Color != "" {
			fmt.Printf("Color:   %s\n", n.Color)
		}
		if len(n.Labels) > 0 {
			fmt.Printf("Labels:  %s\n", strings.Join(n.Labels, ", "))
		}
		fmt.Printf("Created: %s\n", n.CreatedAt.Local().Format(time.RFC1123))
		fmt.Printf("Updated: %s\n", n.UpdatedAt.Local().Format(time.RFC1123))
		if n.ArchivedAt != nil {
			fmt.Printf("Archived: %s\n", n.ArchivedAt.Local().Format(time.RFC1123))
		}
		if n.DeletedAt != nil {
			fmt.Printf("Deleted: %s\n", n.DeletedAt.Local().Format(time.RFC1123))
		}

		if n.Content != "" {
			fmt.Printf("\n%s\n", n.Content)
		}

		if len(n.Images) > 0 || len(n.Documents) > 0 {
			fmt.Println("\nAttachments:")
			for _, a := range n.Images {
				printAttachment(a.Name, a.DriveLink, a.HasInline())
			}
			for _, d := range n.Documents {
				printAttachment(d.Name, d.DriveLink, d.HasInline())
			}
		}
		return nil
	},
}

func printAttachment(name, link string, inline bool) {
	state := "remote"
	if inline {
		state = "local"
	}
	if link != "" {
		fmt.Printf("  %s (%s) %s\n", name, state, link)
		return
	}
	fmt.Printf("  %s (%s)\n", name, state)
}

func init() {
	rootCmd.AddCommand(showCmd)
}
