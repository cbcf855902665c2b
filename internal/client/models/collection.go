package models

import (
	"time"

	"github.com/dmitrijs2005/notedrive/internal/common"
)

// TrashRetention is how long trashed notes are kept before they are purged
// on load.
const TrashRetention = 30 * 24 * time.Hour

// Collection is the in-memory entity store: the three note partitions plus
// the label set, owned exclusively by the process while loaded. It performs
// no I/O; repositories persist it and the sync engine mutates it in place.
type Collection struct {
	Notes   []*Note
	Archive []*Note
	Trash   []*Note
	Labels  []string
}

// FindNote returns the active note with the given id, or nil.
func (c *Collection) FindNote(id string) *Note {
	for _, n := range c.Notes {
		if n.Id == id {
			return n
		}
	}
	return nil
}

// Add prepends a note to the active partition.
func (c *Collection) Add(n *Note) {
	c.Notes = append([]*Note{n}, c.Notes...)
}

// MoveToTrash moves an active note to the trash, stamping DeletedAt.
func (c *Collection) MoveToTrash(id string) error {
	n, rest, err := take(c.Notes, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	n.DeletedAt = &now
	n.ArchivedAt = nil
	c.Notes = rest
	c.Trash = append(c.Trash, n)
	return nil
}

// RestoreFromTrash moves a trashed note back to the active partition.
func (c *Collection) RestoreFromTrash(id string) error {
	n, rest, err := take(c.Trash, id)
	if err != nil {
		return err
	}
	n.DeletedAt = nil
	c.Trash = rest
	c.Notes = append([]*Note{n}, c.Notes...)
	return nil
}

// PermanentDelete removes a note from the trash for good.
func (c *Collection) PermanentDelete(id string) error {
	_, rest, err := take(c.Trash, id)
	if err != nil {
		return err
	}
	c.Trash = rest
	return nil
}

// EmptyTrash drops every trashed note.
func (c *Collection) EmptyTrash() {
	c.Trash = nil
}

// PurgeExpiredTrash removes trash entries older than the retention window.
// It returns the number of purged notes.
func (c *Collection) PurgeExpiredTrash(now time.Time) int {
	cutoff := now.Add(-TrashRetention)
	kept := c.Trash[:0]
	purged := 0
	for _, n := range c.Trash {
		if n.DeletedAt != nil && n.DeletedAt.Before(cutoff) {
			purged++
			continue
		}
		kept = append(kept, n)
	}
	c.Trash = kept
	return purged
}

// ArchiveNote moves an active note to the archive, stamping ArchivedAt.
func (c *Collection) ArchiveNote(id string) error {
	n, rest, err := take(c.Notes, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	n.ArchivedAt = &now
	n.DeletedAt = nil
	c.Notes = rest
	c.Archive = append(c.Archive, n)
	return nil
}

// UnarchiveNote moves an archived note back to the active partition.
func (c *Collection) UnarchiveNote(id string) error {
	n, rest, err := take(c.Archive, id)
	if err != nil {
		return err
	}
	n.ArchivedAt = nil
	c.Archive = rest
	c.Notes = append([]*Note{n}, c.Notes...)
	return nil
}

// ArchivedToTrash moves an archived note straight to the trash.
func (c *Collection) ArchivedToTrash(id string) error {
	n, rest, err := take(c.Archive, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	n.DeletedAt = &now
	n.ArchivedAt = nil
	c.Archive = rest
	c.Trash = append(c.Trash, n)
	return nil
}

// HasLabel reports whether the label exists in the collection's label set.
func (c *Collection) HasLabel(name string) bool {
	for _, l := range c.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// AddLabel adds a label to the set; duplicates are ignored.
func (c *Collection) AddLabel(name string) {
	if name == "" || c.HasLabel(name) {
		return
	}
	c.Labels = append(c.Labels, name)
}

// DeleteLabel removes a label from the set and from every note in every
// partition.
func (c *Collection) DeleteLabel(name string) {
	out := c.Labels[:0]
	for _, l := range c.Labels {
		if l != name {
			out = append(out, l)
		}
	}
	c.Labels = out

	for _, part := range [][]*Note{c.Notes, c.Archive, c.Trash} {
		for _, n := range part {
			n.RemoveLabel(name)
		}
	}
}

// Normalize moves every note to the partition its markers call for, after
// merged remote records changed markers in place. DeletedAt wins over
// ArchivedAt when both are set.
func (c *Collection) Normalize() {
	all := make([]*Note, 0, len(c.Notes)+len(c.Archive)+len(c.Trash))
	all = append(all, c.Notes...)
	all = append(all, c.Archive...)
	all = append(all, c.Trash...)

	c.Notes, c.Archive, c.Trash = nil, nil, nil
	for _, n := range all {
		switch {
		case n.DeletedAt != nil:
			c.Trash = append(c.Trash, n)
		case n.ArchivedAt != nil:
			c.Archive = append(c.Archive, n)
		default:
			c.Notes = append(c.Notes, n)
		}
	}
}

// TrashIds lists the ids of all trashed notes.
func (c *Collection) TrashIds() []string {
	ids := make([]string, 0, len(c.Trash))
	for _, n := range c.Trash {
		ids = append(ids, n.Id)
	}
	return ids
}

func take(notes []*Note, id string) (*Note, []*Note, error) {
	for i, n := range notes {
		if n.Id == id {
			rest := append(notes[:i:i], notes[i+1:]...)
			return n, rest, nil
		}
	}
	return nil, notes, common.ErrorNotFound
}
