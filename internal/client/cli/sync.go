package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/notedrive/internal/auth"
	"github.com/dmitrijs2005/notedrive/internal/client/services"
	"github.com/dmitrijs2005/notedrive/internal/sync"
)

var syncPasteToken bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize with the remote store",
	Long: `Run one full sync cycle: pull remote changes, push local ones and
update the shared descriptor. The first run triggers the authorization
flow; pass --paste-token to type an access token instead of using the
browser.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		switch {
		case syncPasteToken:
			app.auth = auth.NewManager(auth.PromptFlow{}, app.log)
		case app.cfg.Backend == "s3":
			// credentials live in the store config; the engine only needs
			// a non-empty token
			app.auth = auth.NewManager(auth.StaticFlow{AccessToken: "local"}, app.log)
		}

		store, err := app.remoteStore(ctx)
		if err != nil {
			return err
		}

		persister := services.NewSyncPersister(app.repos.Notes, app.repos.SyncState)
		engine := sync.NewEngine(store, app.auth, persister, app.log)

		// The collection is loaded under the authenticated owner, so
		// authorize before touching local data.
		if _, err := app.auth.Token(ctx); err != nil {
			return err
		}

		c, err := app.notes.Load(ctx, app.owner())
		if err != nil {
			return err
		}

		stats, err := engine.Run(ctx, c)
		if err != nil {
			return err
		}

		fmt.Printf("Sync finished: %d downloaded, %d uploaded\n", stats.Downloaded, stats.Uploaded)
		fmt.Printf("Last sync: %s\n", stats.LastSync.Local().Format(time.RFC1123))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().BoolVar(&syncPasteToken, "paste-token", false, "paste an access token instead of the browser flow")
}
