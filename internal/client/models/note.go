// Package models holds the in-memory data model of the notes keeper: notes
// with attachments and labels, the collection they live in, and the
// interchange document used for export/import. The types here are pure data;
// persistence and sync live elsewhere.
package models

import (
	"time"

	"github.com/google/uuid"
)

// NoteType is a display-formatting hint. It does not affect storage or sync.
type NoteType string

const (
	NoteTypeText     NoteType = "text"
	NoteTypeCode     NoteType = "code"
	NoteTypeMarkdown NoteType = "markdown"
)

// Note is a user-authored record. JSON field names follow the interchange
// format shared with other clients.
//
// A note belongs to exactly one partition at a time: active, archived
// (ArchivedAt set) or trashed (DeletedAt set). Transitions stamp the new
// marker and clear the old one; Collection enforces this.
type Note struct {
	Id      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Color   string   `json:"color,omitempty"`
	Type    NoteType `json:"type,omitempty"`
	Pinned  bool     `json:"pinned,omitempty"`

	Images    []*Attachment `json:"images,omitempty"`
	Documents []*Document   `json:"documents,omitempty"`
	Labels    []string      `json:"labels,omitempty"`

	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Reminder   *time.Time `json:"reminder,omitempty"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`
}

// NewNote constructs an active note with a fresh id and creation stamps.
func NewNote(title, content string) *Note {
	now := time.Now().UTC()
	return &Note{
		Id:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Type:      NoteTypeText,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps UpdatedAt. Call after any content or metadata mutation.
func (n *Note) Touch() {
	n.UpdatedAt = time.Now().UTC()
}

// ModTime is the timestamp used in sync comparisons: UpdatedAt, falling back
// to CreatedAt for records that were never edited.
func (n *Note) ModTime() time.Time {
	if !n.UpdatedAt.IsZero() {
		return n.UpdatedAt
	}
	return n.CreatedAt
}

// HasLabel reports whether the note carries the given label.
func (n *Note) HasLabel(label string) bool {
	for _, l := range n.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// RemoveLabel drops the label from the note, if present. It does not bump
// UpdatedAt; callers decide whether the change counts as an edit.
func (n *Note) RemoveLabel(label string) {
	out := n.Labels[:0]
	for _, l := range n.Labels {
		if l != label {
			out = append(out, l)
		}
	}
	n.Labels = out
}

// Clean returns a copy of the note safe for remote serialization: every
// attachment and document loses its inline payload and keeps only metadata
// plus the remote reference.
func (n *Note) Clean() *Note {
	c := *n
	if len(n.Images) > 0 {
		c.Images = make([]*Attachment, len(n.Images))
		for i, a := range n.Images {
			c.Images[i] = a.Clean()
		}
	}
	if len(n.Documents) > 0 {
		c.Documents = make([]*Document, len(n.Documents))
		for i, d := range n.Documents {
			c.Documents[i] = d.Clean()
		}
	}
	return &c
}

// Merge overwrites this note's fields with the remote copy, preserving
// inline attachment payloads that are already resolved locally when the
// incoming copy carries only a remote reference for the same attachment.
func (n *Note) Merge(remote *Note) {
	inlineImages := map[string]string{}
	for _, a := range n.Images {
		if a.HasInline() {
			inlineImages[a.DriveFileId] = a.Data
		}
	}
	inlineDocs := map[string]string{}
	for _, d := range n.Documents {
		if d.HasInline() {
			inlineDocs[d.DriveFileId] = d.Data
		}
	}

	*n = *remote

	for _, a := range n.Images {
		if !a.HasInline() {
			if data, ok := inlineImages[a.DriveFileId]; ok && a.DriveFileId != "" {
				a.Data = data
			}
		}
	}
	for _, d := range n.Documents {
		if !d.HasInline() {
			if data, ok := inlineDocs[d.DriveFileId]; ok && d.DriveFileId != "" {
				d.Data = data
			}
		}
	}
}
