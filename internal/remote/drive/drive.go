// Package drive implements remote.Store against the Google Drive v3 REST
// API. Every call carries a bearer token obtained from the token source;
// a 401 response is surfaced as common.ErrorUnauthorized so the caller can
// invalidate its cached token.
package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/notedrive/internal/common"
	"github.com/dmitrijs2005/notedrive/internal/remote"
)

const (
	defaultAPIBase    = "https://www.googleapis.com/drive/v3"
	defaultUploadBase = "https://www.googleapis.com/upload/drive/v3"

	folderMimeType = "application/vnd.google-apps.folder"
)

// TokenSource yields a bearer access token for outbound calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Client struct {
	apiBase    string
	uploadBase string
	http       *http.Client
	tokens     TokenSource
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithBaseURLs points the client at alternative endpoints (tests).
func WithBaseURLs(api, upload string) Option {
	return func(c *Client) {
		c.apiBase = strings.TrimSuffix(api, "/")
		c.uploadBase = strings.TrimSuffix(upload, "/")
	}
}

func NewClient(tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		apiBase:    defaultAPIBase,
		uploadBase: defaultUploadBase,
		http:       &http.Client{Timeout: 60 * time.Second},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type fileResource struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	ModifiedTime string `json:"modifiedTime"`
}

type fileList struct {
	Files []fileResource `json:"files"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) FindFolder(ctx context.Context, name, parentID string) (*remote.ObjectInfo, error) {
	terms := []string{
		fmt.Sprintf("name='%s'", escapeQueryTerm(name)),
		fmt.Sprintf("mimeType='%s'", folderMimeType),
		"trashed=false",
	}
	if parentID != "" {
		terms = append(terms, fmt.Sprintf("'%s' in parents", parentID))
	}
	return c.findOne(ctx, strings.Join(terms, " and "))
}

func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (string, error) {
	body := map[string]any{
		"name":     name,
		"mimeType": folderMimeType,
	}
	if parentID != "" {
		body["parents"] = []string{parentID}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	var created fileResource
	err = c.do(ctx, http.MethodPost, c.apiBase+"/files", "application/json", payload, &created)
	if err != nil {
		return "", err
	}
	return created.Id, nil
}

func (c *Client) FindFile(ctx context.Context, name, parentID string) (*remote.ObjectInfo, error) {
	terms := []string{
		fmt.Sprintf("name='%s'", escapeQueryTerm(name)),
		fmt.Sprintf("'%s' in parents", parentID),
		"trashed=false",
	}
	return c.findOne(ctx, strings.Join(terms, " and "))
}

func (c *Client) ListFiles(ctx context.Context, parentID string) ([]remote.ObjectInfo, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", parentID)

	var list fileList
	if err := c.search(ctx, query, &list); err != nil {
		return nil, err
	}

	result := make([]remote.ObjectInfo, 0, len(list.Files))
	for _, f := range list.Files {
		result = append(result, toObjectInfo(f))
	}
	return result, nil
}

func (c *Client) CreateFile(ctx context.Context, parentID, name, mimeType string, data []byte) (string, error) {
	meta := map[string]any{
		"name":    name,
		"parents": []string{parentID},
	}
	if mimeType != "" {
		meta["mimeType"] = mimeType
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	metaPart, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"application/json; charset=UTF-8"},
	})
	if err != nil {
		return "", err
	}
	if _, err := metaPart.Write(metaJSON); err != nil {
		return "", err
	}

	mediaHeader := textproto.MIMEHeader{}
	if mimeType != "" {
		mediaHeader.Set("Content-Type", mimeType)
	}
	mediaPart, err := w.CreatePart(mediaHeader)
	if err != nil {
		return "", err
	}
	if _, err := mediaPart.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	contentType := "multipart/related; boundary=" + w.Boundary()
	var created fileResource
	err = c.do(ctx, http.MethodPost, c.uploadBase+"/files?uploadType=multipart", contentType, buf.Bytes(), &created)
	if err != nil {
		return "", err
	}
	return created.Id, nil
}

func (c *Client) UpdateFile(ctx context.Context, id, mimeType string, data []byte) error {
	u := fmt.Sprintf("%s/files/%s?uploadType=media", c.uploadBase, url.PathEscape(id))
	return c.do(ctx, http.MethodPatch, u, mimeType, data, nil)
}

func (c *Client) Download(ctx context.Context, id string) ([]byte, error) {
	u := fmt.Sprintf("%s/files/%s?alt=media", c.apiBase, url.PathEscape(id))

	resp, err := c.roundTrip(ctx, http.MethodGet, u, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

// FileLink implements remote.FileLink with the Drive web-view URL shape.
func (c *Client) FileLink(id string) string {
	return "https://drive.google.com/file/d/" + id + "/view"
}

func (c *Client) findOne(ctx context.Context, query string) (*remote.ObjectInfo, error) {
	var list fileList
	if err := c.search(ctx, query, &list); err != nil {
		return nil, err
	}
	if len(list.Files) == 0 {
		return nil, common.ErrorNotFound
	}
	info := toObjectInfo(list.Files[0])
	return &info, nil
}

func (c *Client) search(ctx context.Context, query string, out *fileList) error {
	v := url.Values{}
	v.Set("q", query)
	v.Set("fields", "files(id,name,modifiedTime)")
	return c.do(ctx, http.MethodGet, c.apiBase+"/files?"+v.Encode(), "", nil, out)
}

func (c *Client) do(ctx context.Context, method, u, contentType string, body []byte, out any) error {
	resp, err := c.roundTrip(ctx, method, u, contentType, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding drive response: %w", err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, u, contentType string, body []byte) (*http.Response, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("drive request failed: %w", err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, strings.TrimSpace(string(data)))
	}

	var ae apiError
	if err := json.Unmarshal(data, &ae); err == nil && ae.Error.Message != "" {
		return fmt.Errorf("drive: %s (status %d)", ae.Error.Message, resp.StatusCode)
	}
	return fmt.Errorf("drive: unexpected status %d", resp.StatusCode)
}

func toObjectInfo(f fileResource) remote.ObjectInfo {
	info := remote.ObjectInfo{Id: f.Id, Name: f.Name}
	if f.ModifiedTime != "" {
		if ts, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			info.ModifiedTime = ts
		}
	}
	return info
}

// escapeQueryTerm escapes single quotes and backslashes inside a Drive
// search term.
func escapeQueryTerm(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
