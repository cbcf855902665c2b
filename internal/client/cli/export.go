package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/notedrive/internal/client/services"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the collection",
	Long: `Export notes to stdout or a file. The json format is a full interchange
document that import accepts back; markdown renders active and archived
notes with YAML front matter.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := app.export.Export(cmd.Context(), app.owner(), exportFormat)
		if err != nil {
			return err
		}
		if exportOut == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", exportOut, err)
		}
		fmt.Printf("Exported to %s\n", exportOut)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import notes from a JSON export",
	Long: `Merge notes from a JSON export into the collection. Notes whose id
already exists locally are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		added, err := app.export.Import(cmd.Context(), app.owner(), data)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d note(s)\n", added)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", services.FormatJSON, "export format: json or markdown")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}
