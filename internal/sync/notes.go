package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notedrive/internal/client/models"
	"github.com/dmitrijs2005/notedrive/internal/common"
	"github.com/dmitrijs2005/notedrive/internal/logging"
	"github.com/dmitrijs2005/notedrive/internal/remote"
)

// noteTransfer serializes notes to and from remote objects named
// <noteId>.json inside the notes folder.
type noteTransfer struct {
	store       remote.Store
	folderID    string
	attachments *attachmentTransfer
	log         logging.Logger
}

// pull lists the remote notes and merges every entry that is strictly newer
// than the local copy (or has no local copy) into the collection. Per-entry
// failures are logged and skipped; authorization failures abort.
func (t *noteTransfer) pull(ctx context.Context, c *models.Collection) (int, error) {
	entries, err := t.store.ListFiles(ctx, t.folderID)
	if err != nil {
		return 0, fmt.Errorf("listing remote notes: %w", err)
	}

	downloaded := 0
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name, common.NoteFileSuffix) {
			continue
		}
		noteID := strings.TrimSuffix(entry.Name, common.NoteFileSuffix)
		local := c.FindNote(noteID)
		if local == nil {
			if local = findIn(c.Archive, noteID); local == nil {
				// A locally trashed note keeps its remote object until the
				// trash is purged; never resurrect it from there.
				if findIn(c.Trash, noteID) != nil {
					continue
				}
			}
		}

		// Fetch only when the remote copy is strictly newer, or new to us.
		if local != nil && !entry.ModifiedTime.After(local.ModTime()) {
			continue
		}

		if err := t.pullOne(ctx, c, local, entry); err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				return downloaded, err
			}
			t.log.Warn(ctx, "skipping remote note", "note", noteID, "error", err)
			continue
		}
		downloaded++
	}
	return downloaded, nil
}

func findIn(notes []*models.Note, id string) *models.Note {
	for _, n := range notes {
		if n.Id == id {
			return n
		}
	}
	return nil
}

func (t *noteTransfer) pullOne(ctx context.Context, c *models.Collection, local *models.Note, entry remote.ObjectInfo) error {
	data, err := t.store.Download(ctx, entry.Id)
	if err != nil {
		return fmt.Errorf("fetching note object: %w", err)
	}

	var fetched models.Note
	if err := json.Unmarshal(data, &fetched); err != nil {
		return fmt.Errorf("malformed remote note: %w", err)
	}

	// Backfill binary payloads before the merge counts as complete.
	if err := t.attachments.downloadNoteAttachments(ctx, &fetched); err != nil {
		return err
	}

	if local != nil {
		local.Merge(&fetched)
	} else {
		c.Add(&fetched)
	}
	return nil
}

// push walks the active notes: uploads their attachments, then creates the
// remote object when absent or updates it when the local copy is strictly
// newer. An exact timestamp tie favors the remote copy and writes nothing.
func (t *noteTransfer) push(ctx context.Context, c *models.Collection) (int, error) {
	uploaded := 0
	for _, n := range c.Notes {
		wrote, err := t.pushOne(ctx, n)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				return uploaded, err
			}
			t.log.Warn(ctx, "skipping local note", "note", n.Id, "error", err)
			continue
		}
		if wrote {
			uploaded++
		}
	}
	return uploaded, nil
}

func (t *noteTransfer) pushOne(ctx context.Context, n *models.Note) (bool, error) {
	if err := t.attachments.uploadNoteAttachments(ctx, n); err != nil {
		return false, err
	}

	clean, err := json.MarshalIndent(n.Clean(), "", "  ")
	if err != nil {
		return false, fmt.Errorf("encoding note: %w", err)
	}

	name := n.Id + common.NoteFileSuffix
	existing, err := t.store.FindFile(ctx, name, t.folderID)
	if errors.Is(err, common.ErrorNotFound) {
		if _, err := t.store.CreateFile(ctx, t.folderID, name, "application/json", clean); err != nil {
			return false, fmt.Errorf("creating note object: %w", err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("searching for note object: %w", err)
	}

	if !n.ModTime().After(existing.ModifiedTime) {
		return false, nil // remote is newer or tied, no downgrade
	}
	if err := t.store.UpdateFile(ctx, existing.Id, "application/json", clean); err != nil {
		return false, fmt.Errorf("updating note object: %w", err)
	}
	return true, nil
}
