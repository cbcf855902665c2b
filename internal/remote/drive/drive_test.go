package drive

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/notedrive/internal/common"
)

type staticTokens string

func (s staticTokens) Token(ctx context.Context) (string, error) { return string(s), nil }

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(staticTokens("tok-123"),
		WithBaseURLs(srv.URL, srv.URL),
		WithHTTPClient(srv.Client()))
}

func TestClient_FindFolder_Found(t *testing.T) {
	var gotQuery, gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{"files":[{"id":"fold-1","name":"MyNotesKeep"}]}`)
	})

	info, err := c.FindFolder(context.Background(), "MyNotesKeep", "")
	require.NoError(t, err)

	assert.Equal(t, "fold-1", info.Id)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Contains(t, gotQuery, "name='MyNotesKeep'")
	assert.Contains(t, gotQuery, "mimeType='application/vnd.google-apps.folder'")
	assert.Contains(t, gotQuery, "trashed=false")
	assert.NotContains(t, gotQuery, "in parents")
}

func TestClient_FindFolder_WithParentAndMiss(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		io.WriteString(w, `{"files":[]}`)
	})

	_, err := c.FindFolder(context.Background(), "notes", "root-1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, gotQuery, "'root-1' in parents")
}

func TestClient_CreateFile_MultipartUpload(t *testing.T) {
	var gotContentType, gotBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		io.WriteString(w, `{"id":"file-9"}`)
	})

	id, err := c.CreateFile(context.Background(), "fold-1", "n1.json", "application/json", []byte(`{"id":"n1"}`))
	require.NoError(t, err)

	assert.Equal(t, "file-9", id)
	assert.Contains(t, gotContentType, "multipart/related")
	assert.Contains(t, gotBody, `"name":"n1.json"`)
	assert.Contains(t, gotBody, `"parents":["fold-1"]`)
	assert.Contains(t, gotBody, `{"id":"n1"}`)
}

func TestClient_ListFiles_ParsesModifiedTime(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"files":[{"id":"f1","name":"a.json","modifiedTime":"2024-01-02T00:00:00.000Z"},{"id":"f2","name":"b.json"}]}`)
	})

	files, err := c.ListFiles(context.Background(), "fold-1")
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "a.json", files[0].Name)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), files[0].ModifiedTime)
	assert.True(t, files[1].ModifiedTime.IsZero())
}

func TestClient_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"code":401,"message":"Invalid Credentials"}}`)
	})

	_, err := c.Download(context.Background(), "f1")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestClient_ErrorMessageSurfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error":{"code":403,"message":"rate limit exceeded"}}`)
	})

	_, err := c.ListFiles(context.Background(), "fold-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestClient_Download_ReturnsRawBytes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "media", r.URL.Query().Get("alt"))
		w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	})

	data, err := c.Download(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, data)
}

func TestEscapeQueryTerm(t *testing.T) {
	assert.Equal(t, `it\'s`, escapeQueryTerm("it's"))
	assert.Equal(t, `a\\b`, escapeQueryTerm(`a\b`))
}
