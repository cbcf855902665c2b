package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/notedrive/internal/common"
)

func TestCollection_PartitionTransitions(t *testing.T) {
	c := &Collection{}
	n := NewNote("t", "c")
	c.Add(n)

	require.NoError(t, c.ArchiveNote(n.Id))
	assert.Empty(t, c.Notes)
	require.Len(t, c.Archive, 1)
	assert.NotNil(t, n.ArchivedAt)
	assert.Nil(t, n.DeletedAt)

	require.NoError(t, c.ArchivedToTrash(n.Id))
	assert.Empty(t, c.Archive)
	require.Len(t, c.Trash, 1)
	assert.Nil(t, n.ArchivedAt, "trash transition must clear the archive marker")
	assert.NotNil(t, n.DeletedAt)

	require.NoError(t, c.RestoreFromTrash(n.Id))
	assert.Empty(t, c.Trash)
	require.Len(t, c.Notes, 1)
	assert.Nil(t, n.DeletedAt)
}

func TestCollection_MoveToTrash_UnknownId(t *testing.T) {
	c := &Collection{}
	err := c.MoveToTrash("missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCollection_PurgeExpiredTrash(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	old := now.Add(-31 * 24 * time.Hour)
	recent := now.Add(-29 * 24 * time.Hour)

	c := &Collection{Trash: []*Note{
		{Id: "old", DeletedAt: &old},
		{Id: "recent", DeletedAt: &recent},
	}}

	purged := c.PurgeExpiredTrash(now)

	assert.Equal(t, 1, purged)
	require.Len(t, c.Trash, 1)
	assert.Equal(t, "recent", c.Trash[0].Id)
}

func TestCollection_DeleteLabel_CascadesAcrossPartitions(t *testing.T) {
	del := time.Now().UTC()
	c := &Collection{
		Labels:  []string{"work", "home"},
		Notes:   []*Note{{Id: "n1", Labels: []string{"work", "home"}}},
		Archive: []*Note{{Id: "n2", Labels: []string{"work"}}},
		Trash:   []*Note{{Id: "n3", Labels: []string{"work"}, DeletedAt: &del}},
	}

	c.DeleteLabel("work")

	assert.Equal(t, []string{"home"}, c.Labels)
	assert.Equal(t, []string{"home"}, c.Notes[0].Labels)
	assert.Empty(t, c.Archive[0].Labels)
	assert.Empty(t, c.Trash[0].Labels)
}

func TestCollection_AddLabel_Deduplicates(t *testing.T) {
	c := &Collection{}
	c.AddLabel("work")
	c.AddLabel("work")
	c.AddLabel("")
	assert.Equal(t, []string{"work"}, c.Labels)
}

func TestExport_RoundTrip(t *testing.T) {
	src := &Collection{Labels: []string{"work"}}
	n1 := NewNote("first", "alpha")
	n2 := NewNote("second", "beta")
	src.Add(n1)
	src.Add(n2)
	require.NoError(t, src.MoveToTrash(n2.Id))

	doc := NewExport(src)
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	parsed, err := ParseImport(data)
	require.NoError(t, err)

	dst := &Collection{}
	imported := parsed.ImportInto(dst)

	assert.Equal(t, 1, imported)
	require.Len(t, dst.Notes, 1)
	assert.Equal(t, n1.Id, dst.Notes[0].Id)
	assert.Equal(t, "first", dst.Notes[0].Title)
	assert.Equal(t, "alpha", dst.Notes[0].Content)
	assert.Contains(t, dst.Labels, "work")

	// importing twice must not duplicate
	assert.Equal(t, 0, parsed.ImportInto(dst))
	assert.Len(t, dst.Notes, 1)
}

func TestParseImport_BareArray(t *testing.T) {
	doc, err := ParseImport([]byte(`[{"id":"n1","title":"t","content":"c","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]`))
	require.NoError(t, err)
	require.Len(t, doc.Notes, 1)
	assert.Equal(t, "n1", doc.Notes[0].Id)
}

func TestParseImport_Garbage(t *testing.T) {
	_, err := ParseImport([]byte(`not json`))
	assert.ErrorIs(t, err, common.ErrorInvalidFormat)
}

func TestCollection_Normalize(t *testing.T) {
	now := time.Now().UTC()

	active := NewNote("active", "")
	archived := NewNote("archived", "")
	archived.ArchivedAt = &now
	trashed := NewNote("trashed", "")
	trashed.DeletedAt = &now
	both := NewNote("both markers", "")
	both.ArchivedAt = &now
	both.DeletedAt = &now

	// everything misplaced on purpose
	c := &Collection{
		Notes:   []*Note{archived, trashed},
		Archive: []*Note{active, both},
	}
	c.Normalize()

	require.Len(t, c.Notes, 1)
	assert.Equal(t, active.Id, c.Notes[0].Id)
	require.Len(t, c.Archive, 1)
	assert.Equal(t, archived.Id, c.Archive[0].Id)
	require.Len(t, c.Trash, 2)
}
