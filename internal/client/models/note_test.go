package models

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachment_Bytes_StripsDataURLPrefix(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	a := &Attachment{
		Id:       "a1",
		MimeType: "image/png",
		Data:     "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw),
	}

	got, err := a.Bytes()
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestAttachment_Bytes_BarePayload(t *testing.T) {
	raw := []byte("hello")
	a := &Attachment{Id: "a1", Data: base64.StdEncoding.EncodeToString(raw)}

	got, err := a.Bytes()
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestAttachment_SetBytes_RoundTrip(t *testing.T) {
	a := &Attachment{Id: "a1", MimeType: "application/pdf"}
	raw := []byte{1, 2, 3, 4, 5}
	a.SetBytes(raw)

	require.True(t, a.HasInline())
	got, err := a.Bytes()
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestAttachment_Extension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.jpg", "jpg"},
		{"archive.tar.gz", "gz"},
		{"noextension", "bin"},
		{"", "bin"},
		{"trailingdot.", "bin"},
	}
	for _, tc := range tests {
		a := &Attachment{Name: tc.name}
		assert.Equal(t, tc.want, a.Extension(), "name %q", tc.name)
	}
}

func TestNote_Clean_DropsInlinePayloads(t *testing.T) {
	n := NewNote("t", "c")
	n.Images = []*Attachment{{Id: "i1", Name: "a.png", Data: "xxx", DriveFileId: "f1"}}
	n.Documents = []*Document{{Attachment: Attachment{Id: "d1", Name: "r.pdf", Data: "yyy"}, Size: 42}}

	c := n.Clean()

	assert.Empty(t, c.Images[0].Data)
	assert.Equal(t, "f1", c.Images[0].DriveFileId)
	assert.Empty(t, c.Documents[0].Data)
	assert.Equal(t, int64(42), c.Documents[0].Size)

	// originals keep their payloads
	assert.Equal(t, "xxx", n.Images[0].Data)
	assert.Equal(t, "yyy", n.Documents[0].Data)
}

func TestNote_Merge_PreservesResolvedInlinePayloads(t *testing.T) {
	local := NewNote("old title", "old content")
	local.Images = []*Attachment{{Id: "i1", DriveFileId: "f1", Data: "inline-bytes"}}

	remote := &Note{
		Id:      local.Id,
		Title:   "new title",
		Content: "new content",
		Images:  []*Attachment{{Id: "i1", DriveFileId: "f1"}},
	}

	local.Merge(remote)

	assert.Equal(t, "new title", local.Title)
	assert.Equal(t, "inline-bytes", local.Images[0].Data, "inline payload must survive the merge")
}

func TestNote_ModTime_FallsBackToCreatedAt(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := &Note{Id: "n1", CreatedAt: created}
	assert.Equal(t, created, n.ModTime())

	updated := created.Add(time.Hour)
	n.UpdatedAt = updated
	assert.Equal(t, updated, n.ModTime())
}
