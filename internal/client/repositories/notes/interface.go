// Package notes persists the note collection (all three partitions plus the
// label set) keyed by an owner context, so one user's data never mixes with
// another's or with the anonymous context.
package notes

import (
	"context"

	"github.com/dmitrijs2005/notedrive/internal/client/models"
)

type Repository interface {
	// Load reads the owner's full collection. A missing owner yields an
	// empty collection, not an error.
	Load(ctx context.Context, owner string) (*models.Collection, error)

	// Save atomically replaces the owner's stored collection.
	Save(ctx context.Context, owner string, c *models.Collection) error
}
