package models

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Attachment is a binary blob (image) belonging to a note. Its payload is in
// one of two states: inline (Data holds base64-encoded bytes, authoritative
// locally) or remoted (DriveFileId references the remote object,
// authoritative remotely). Both may be present right after an upload; a
// record serialized for the remote store must never carry inline bytes.
type Attachment struct {
	Id       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	MimeType string `json:"type,omitempty"`

	// Data is the inline payload: base64, optionally with a data-URL prefix
	// ("data:image/png;base64,...").
	Data string `json:"data,omitempty"`

	DriveFileId string `json:"driveFileId,omitempty"`
	DriveLink   string `json:"driveLink,omitempty"`
}

// Document is an attachment that additionally carries its byte size.
type Document struct {
	Attachment
	Size int64 `json:"size,omitempty"`
}

// HasInline reports whether the attachment carries an inline payload.
func (a *Attachment) HasInline() bool { return a.Data != "" }

// HasRemote reports whether the attachment references a remote object.
func (a *Attachment) HasRemote() bool { return a.DriveFileId != "" }

// Bytes decodes the inline payload to raw bytes, stripping a data-URL
// prefix when present.
func (a *Attachment) Bytes() ([]byte, error) {
	if a.Data == "" {
		return nil, fmt.Errorf("attachment %s: no inline payload", a.Id)
	}
	payload := a.Data
	if i := strings.IndexByte(payload, ','); i >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("attachment %s: decoding payload: %w", a.Id, err)
	}
	return raw, nil
}

// SetBytes stores raw bytes as the inline payload, encoded as a data URL so
// the representation round-trips with other clients.
func (a *Attachment) SetBytes(raw []byte) {
	mime := a.MimeType
	if mime == "" {
		mime = "application/octet-stream"
	}
	a.Data = "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

// Extension returns the filename extension of the attachment name, without
// the dot, defaulting to "bin".
func (a *Attachment) Extension() string {
	if i := strings.LastIndexByte(a.Name, '.'); i >= 0 && i < len(a.Name)-1 {
		return a.Name[i+1:]
	}
	return "bin"
}

// Clean returns a copy safe for remote serialization: metadata and remote
// reference only, no inline payload.
func (a *Attachment) Clean() *Attachment {
	return &Attachment{
		Id:          a.Id,
		Name:        a.Name,
		MimeType:    a.MimeType,
		DriveFileId: a.DriveFileId,
		DriveLink:   a.DriveLink,
	}
}

// Clean returns a reference-only copy of the document.
func (d *Document) Clean() *Document {
	return &Document{Attachment: *d.Attachment.Clean(), Size: d.Size}
}
