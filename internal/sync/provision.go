package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notedrive/internal/common"
	"github.com/dmitrijs2005/notedrive/internal/remote"
)

// provisioner ensures the remote container hierarchy exists. Resolved ids
// are cached so each logical folder is looked up at most once per cycle.
//
// Two overlapping cycles from different processes can both observe "not
// found" and create duplicate folders; there is no distributed lock.
type provisioner struct {
	store remote.Store
	cache map[string]string
}

func newProvisioner(store remote.Store) *provisioner {
	return &provisioner{store: store, cache: map[string]string{}}
}

// ensureFolder returns the id of the named folder under parentID, creating
// it when absent.
func (p *provisioner) ensureFolder(ctx context.Context, name, parentID string) (string, error) {
	key := parentID + "/" + name
	if id, ok := p.cache[key]; ok {
		return id, nil
	}

	info, err := p.store.FindFolder(ctx, name, parentID)
	if err == nil {
		p.cache[key] = info.Id
		return info.Id, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("searching for folder %q: %w", name, err)
	}

	id, err := p.store.CreateFolder(ctx, name, parentID)
	if err != nil {
		return "", fmt.Errorf("creating folder %q: %w", name, err)
	}
	p.cache[key] = id
	return id, nil
}

// folders holds the resolved container ids for one cycle.
type folders struct {
	Root        string
	Notes       string
	Attachments string
}

// provision resolves the full hierarchy: root, notes and attachments.
func (p *provisioner) provision(ctx context.Context) (*folders, error) {
	root, err := p.ensureFolder(ctx, common.RootFolderName, "")
	if err != nil {
		return nil, err
	}
	notes, err := p.ensureFolder(ctx, common.NotesFolderName, root)
	if err != nil {
		return nil, err
	}
	attachments, err := p.ensureFolder(ctx, common.AttachmentsFolderName, root)
	if err != nil {
		return nil, err
	}
	return &folders{Root: root, Notes: notes, Attachments: attachments}, nil
}
