// Package remote defines the contract the sync engine has with a
// folder-based object store. Two backends implement it: the Google Drive
// REST API and any S3-compatible endpoint.
package remote

import (
	"context"
	"time"
)

// ObjectInfo describes a remote file as reported by a listing or lookup.
type ObjectInfo struct {
	Id           string
	Name         string
	ModifiedTime time.Time
}

// Store is a minimal folder/object interface. Lookups return
// common.ErrorNotFound when the name does not exist; authorization failures
// map to common.ErrorUnauthorized so callers can invalidate their token.
type Store interface {
	// FindFolder searches parentID (the backend root when empty) for a
	// non-trashed folder with the exact name.
	FindFolder(ctx context.Context, name, parentID string) (*ObjectInfo, error)

	// CreateFolder creates a folder under parentID and returns its id.
	CreateFolder(ctx context.Context, name, parentID string) (string, error)

	// FindFile searches a folder for a non-trashed file with the exact name.
	FindFile(ctx context.Context, name, parentID string) (*ObjectInfo, error)

	// ListFiles lists the non-trashed files directly inside a folder.
	ListFiles(ctx context.Context, parentID string) ([]ObjectInfo, error)

	// CreateFile uploads a new object into a folder and returns its id.
	CreateFile(ctx context.Context, parentID, name, mimeType string, data []byte) (string, error)

	// UpdateFile replaces the content of an existing object.
	UpdateFile(ctx context.Context, id, mimeType string, data []byte) error

	// Download fetches the raw content of an object.
	Download(ctx context.Context, id string) ([]byte, error)
}

// FileLink returns a human-viewable link for an object id, or "" when the
// backend has no such notion.
type FileLink interface {
	FileLink(id string) string
}

// Link resolves a view link via the optional FileLink interface.
func Link(s Store, id string) string {
	if l, ok := s.(FileLink); ok {
		return l.FileLink(id)
	}
	return ""
}
