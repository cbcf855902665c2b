package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notedrive/internal/client/models"
	"github.com/dmitrijs2005/notedrive/internal/client/repositories/notes"
	"github.com/dmitrijs2005/notedrive/internal/client/repositories/syncstate"
)

// SyncPersister stores sync results: the reconciled collection and the
// last-success cursor. It backs the engine's persistence port.
type SyncPersister struct {
	notes notes.Repository
	state syncstate.Repository
}

func NewSyncPersister(n notes.Repository, s syncstate.Repository) *SyncPersister {
	return &SyncPersister{notes: n, state: s}
}

func (p *SyncPersister) SaveCollection(ctx context.Context, owner string, c *models.Collection) error {
	if err := p.notes.Save(ctx, owner, c); err != nil {
		return fmt.Errorf("saving synced collection: %w", err)
	}
	return nil
}

func (p *SyncPersister) SetLastSync(ctx context.Context, owner string, t time.Time) error {
	value := []byte(t.UTC().Format(time.RFC3339))
	if err := p.state.Set(ctx, owner, syncstate.LastSyncTimeKey, value); err != nil {
		return fmt.Errorf("storing last sync time: %w", err)
	}
	return nil
}

// LastSync returns the stored cursor, or the zero time when no cycle has
// succeeded yet.
func (p *SyncPersister) LastSync(ctx context.Context, owner string) (time.Time, error) {
	value, err := p.state.Get(ctx, owner, syncstate.LastSyncTimeKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("reading last sync time: %w", err)
	}
	if len(value) == 0 {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, string(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing last sync time: %w", err)
	}
	return t, nil
}
