package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/notedrive/internal/client/models"
)

var (
	listArchive bool
	listTrash   bool
	listLabel   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long:  `List active notes, or the archive or trash partition. Pinned notes sort first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := app.notes.Load(cmd.Context(), app.owner())
		if err != nil {
			return err
		}

		var notes []*models.Note
		switch {
		case listArchive:
			notes = c.Archive
		case listTrash:
			notes = c.Trash
		default:
			notes = c.Notes
		}

		printed := 0
		for _, n := range sortPinnedFirst(notes) {
			if listLabel != "" && !n.HasLabel(listLabel) {
				continue
			}
			printNoteLine(n)
			printed++
		}
		if printed == 0 {
			fmt.Println("No notes.")
		}
		return nil
	},
}

func sortPinnedFirst(notes []*models.Note) []*models.Note {
	out := make([]*models.Note, 0, len(notes))
	for _, n := range notes {
		if n.Pinned {
			out = append(out, n)
		}
	}
	for _, n := range notes {
		if !n.Pinned {
			out = append(out, n)
		}
	}
	return out
}

func printNoteLine(n *models.Note) {
	marker := " "
	if n.Pinned {
		marker = "*"
	}
	title := n.Title
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("%s %s  %-30s", marker, shortID(n.Id), title)
	if len(n.Labels) > 0 {
		line += "  [" + strings.Join(n.Labels, ", ") + "]"
	}
	fmt.Println(line)
}

// shortID is the id prefix shown in listings; any unique prefix is accepted
// back by the other commands.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listArchive, "archive", false, "list archived notes")
	listCmd.Flags().BoolVar(&listTrash, "trash", false, "list trashed notes")
	listCmd.Flags().StringVarP(&listLabel, "label", "l", "", "only notes carrying this label")
}
