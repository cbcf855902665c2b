package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/notedrive/internal/auth"
	"github.com/dmitrijs2005/notedrive/internal/client/config"
	"github.com/dmitrijs2005/notedrive/internal/client/models"
	"github.com/dmitrijs2005/notedrive/internal/client/services"
	"github.com/dmitrijs2005/notedrive/internal/client/storage"
	"github.com/dmitrijs2005/notedrive/internal/common"
	"github.com/dmitrijs2005/notedrive/internal/logging"
	"github.com/dmitrijs2005/notedrive/internal/remote"
	"github.com/dmitrijs2005/notedrive/internal/remote/drive"
	"github.com/dmitrijs2005/notedrive/internal/remote/s3"
)

// App wires configuration, storage and services together for the command
// handlers. It is created once per invocation in the root command's
// PersistentPreRunE.
type App struct {
	cfg    *config.Config
	log    logging.Logger
	repos  *storage.Repositories
	notes  services.NoteService
	export services.ExportService
	auth   *auth.Manager
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.New(parseLevel(cfg.LogLevel), cfg.LogFile)

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	repos, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	notes := services.NewNoteService(repos.Notes, log)

	flow := auth.NewBrowserFlow(cfg.OAuthClientID, cfg.OAuthClientSecret, log)
	flow.Port = cfg.OAuthRedirectPort

	return &App{
		cfg:    cfg,
		log:    log,
		repos:  repos,
		notes:  notes,
		export: services.NewExportService(notes),
		auth:   auth.NewManager(flow, log),
	}, nil
}

func (a *App) Close() error {
	if a.repos != nil && a.repos.DB != nil {
		return a.repos.DB.Close()
	}
	return nil
}

// owner is the storage key for the current identity: the authenticated
// subject once a token is held, the anonymous context otherwise.
func (a *App) owner() string {
	return a.auth.Owner()
}

// remoteStore builds the configured backend.
func (a *App) remoteStore(ctx context.Context) (remote.Store, error) {
	switch a.cfg.Backend {
	case "drive":
		return drive.NewClient(a.auth), nil
	case "s3":
		return s3.NewStore(ctx, s3.Config{
			Region:       a.cfg.S3Region,
			BaseEndpoint: a.cfg.S3BaseEndpoint,
			AccessKey:    a.cfg.S3AccessKey,
			SecretKey:    a.cfg.S3SecretKey,
			Bucket:       a.cfg.S3Bucket,
		})
	default:
		return nil, fmt.Errorf("unknown backend %q", a.cfg.Backend)
	}
}

// resolveNote finds the single note whose id starts with prefix, searching
// all partitions. Ambiguous prefixes are an error.
func (a *App) resolveNote(c *models.Collection, prefix string) (*models.Note, error) {
	var found *models.Note
	for _, part := range [][]*models.Note{c.Notes, c.Archive, c.Trash} {
		for _, n := range part {
			if !strings.HasPrefix(n.Id, prefix) {
				continue
			}
			if found != nil && found.Id != n.Id {
				return nil, fmt.Errorf("note id %q is ambiguous", prefix)
			}
			found = n
		}
	}
	if found == nil {
		return nil, fmt.Errorf("note %q: %w", prefix, common.ErrorNotFound)
	}
	return found, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
