package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notedrive/internal/client/models"
	"github.com/dmitrijs2005/notedrive/internal/common"
	"github.com/dmitrijs2005/notedrive/internal/logging"
	"github.com/dmitrijs2005/notedrive/internal/remote"
)

// Metadata is the single shared descriptor object stored next to the notes
// and attachments folders.
type Metadata struct {
	Version  string    `json:"version"`
	LastSync time.Time `json:"lastSync"`
	UserId   string    `json:"userId"`
	Labels   []string  `json:"labels"`
	TrashIds []string  `json:"trashIds"`
}

// metadataReconciler merges the label set and trash snapshot against the
// shared descriptor: labels are unioned on read (remote never removes a
// local label), then the descriptor is overwritten with the local view.
type metadataReconciler struct {
	store    remote.Store
	folderID string // root folder
	log      logging.Logger
}

func (r *metadataReconciler) reconcile(ctx context.Context, c *models.Collection, owner string, now time.Time) error {
	existing, err := r.store.FindFile(ctx, common.MetadataFileName, r.folderID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("searching for descriptor: %w", err)
	}

	if existing != nil {
		data, err := r.store.Download(ctx, existing.Id)
		if err != nil {
			return fmt.Errorf("fetching descriptor: %w", err)
		}
		var fetched Metadata
		if err := json.Unmarshal(data, &fetched); err != nil {
			// Unreadable descriptor: overwrite it with the local view.
			r.log.Warn(ctx, "malformed metadata descriptor, overwriting", "error", err)
		} else {
			for _, label := range fetched.Labels {
				c.AddLabel(label)
			}
		}
	}

	local := Metadata{
		Version:  common.SchemaVersion,
		LastSync: now,
		UserId:   owner,
		Labels:   c.Labels,
		TrashIds: c.TrashIds(),
	}
	payload, err := json.MarshalIndent(local, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding descriptor: %w", err)
	}

	if existing != nil {
		if err := r.store.UpdateFile(ctx, existing.Id, "application/json", payload); err != nil {
			return fmt.Errorf("updating descriptor: %w", err)
		}
		return nil
	}
	if _, err := r.store.CreateFile(ctx, r.folderID, common.MetadataFileName, "application/json", payload); err != nil {
		return fmt.Errorf("creating descriptor: %w", err)
	}
	return nil
}
