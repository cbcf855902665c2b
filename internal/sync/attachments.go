package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notedrive/internal/client/models"
	"github.com/dmitrijs2005/notedrive/internal/common"
	"github.com/dmitrijs2005/notedrive/internal/logging"
	"github.com/dmitrijs2005/notedrive/internal/remote"
)

// attachmentTransfer moves binary payloads between the inline representation
// and their remote objects in the attachments folder.
type attachmentTransfer struct {
	store    remote.Store
	folderID string
	log      logging.Logger
}

// remoteName derives the deterministic object name for an attachment:
// <noteId>_<attachmentId>.<ext>. Uploads are idempotent by this name, not by
// content hash.
func remoteName(noteID string, a *models.Attachment, fallbackID string) string {
	id := a.Id
	if id == "" {
		id = fallbackID
	}
	return noteID + "_" + id + "." + a.Extension()
}

// uploadIfAbsent ensures the attachment's payload exists remotely and
// returns the object id. An object already stored under the derived name is
// reused without re-uploading.
func (t *attachmentTransfer) uploadIfAbsent(ctx context.Context, noteID string, a *models.Attachment, fallbackID string) (string, error) {
	name := remoteName(noteID, a, fallbackID)

	existing, err := t.store.FindFile(ctx, name, t.folderID)
	if err == nil {
		return existing.Id, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("searching for attachment %s: %w", name, err)
	}

	raw, err := a.Bytes()
	if err != nil {
		return "", err
	}

	mimeType := a.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	id, err := t.store.CreateFile(ctx, t.folderID, name, mimeType, raw)
	if err != nil {
		return "", fmt.Errorf("uploading attachment %s: %w", name, err)
	}
	return id, nil
}

// uploadNoteAttachments uploads every inline-only attachment of the note and
// backfills the remote references in place. Inline payloads are kept.
func (t *attachmentTransfer) uploadNoteAttachments(ctx context.Context, n *models.Note) error {
	for i, img := range n.Images {
		if !img.HasInline() || img.HasRemote() {
			continue
		}
		id, err := t.uploadIfAbsent(ctx, n.Id, img, fmt.Sprintf("img_%d", i))
		if err != nil {
			return err
		}
		img.DriveFileId = id
		img.DriveLink = remote.Link(t.store, id)
	}
	for i, doc := range n.Documents {
		if !doc.HasInline() || doc.HasRemote() {
			continue
		}
		id, err := t.uploadIfAbsent(ctx, n.Id, &doc.Attachment, fmt.Sprintf("doc_%d", i))
		if err != nil {
			return err
		}
		doc.DriveFileId = id
		doc.DriveLink = remote.Link(t.store, id)
	}
	return nil
}

// downloadIfMissing fetches the payload of a remoted attachment that has no
// inline bytes and re-encodes it in place.
func (t *attachmentTransfer) downloadIfMissing(ctx context.Context, a *models.Attachment) error {
	if !a.HasRemote() || a.HasInline() {
		return nil
	}
	raw, err := t.store.Download(ctx, a.DriveFileId)
	if err != nil {
		return fmt.Errorf("downloading attachment %s: %w", a.DriveFileId, err)
	}
	a.SetBytes(raw)
	return nil
}

// downloadNoteAttachments backfills inline payloads for every remoted
// attachment of the note. A single failed download is logged and skipped;
// the note proceeds without that payload and retries on a future cycle.
// Authorization failures are escalated to the caller.
func (t *attachmentTransfer) downloadNoteAttachments(ctx context.Context, n *models.Note) error {
	for _, img := range n.Images {
		if err := t.downloadIfMissing(ctx, img); err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				return err
			}
			t.log.Warn(ctx, "attachment download failed", "note", n.Id, "attachment", img.Id, "error", err)
		}
	}
	for _, doc := range n.Documents {
		if err := t.downloadIfMissing(ctx, &doc.Attachment); err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				return err
			}
			t.log.Warn(ctx, "attachment download failed", "note", n.Id, "attachment", doc.Id, "error", err)
		}
	}
	return nil
}
