package sync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrijs2005/notedrive/internal/client/models"
	"github.com/dmitrijs2005/notedrive/internal/common"
	"github.com/dmitrijs2005/notedrive/internal/logging"
	"github.com/dmitrijs2005/notedrive/internal/remote"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeFolder struct {
	name   string
	parent string
}

type fakeFile struct {
	name     string
	parent   string
	mimeType string
	data     []byte
	modified time.Time
}

// fakeStore is an in-memory remote.Store that counts write calls and can
// inject failures per operation.
type fakeStore struct {
	mu      sync.Mutex
	nextID  int
	folders map[string]*fakeFolder
	files   map[string]*fakeFile

	clock func() time.Time

	// failures maps an operation name ("Download", "CreateFile", ...) to an
	// error returned by every call of that operation.
	failures map[string]error

	folderCreates int
	fileCreates   int
	fileUpdates   int
	downloads     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		folders:  map[string]*fakeFolder{},
		files:    map[string]*fakeFile{},
		failures: map[string]error{},
		clock:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *fakeStore) failOn(op string, err error) { s.failures[op] = err }

func (s *fakeStore) genID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *fakeStore) writes() int { return s.folderCreates + s.fileCreates + s.fileUpdates }

// seedFile places a file directly into the store with a fixed mtime.
func (s *fakeStore) seedFile(parent, name string, data []byte, modified time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.genID("file")
	s.files[id] = &fakeFile{name: name, parent: parent, data: data, modified: modified}
	return id
}

func (s *fakeStore) FindFolder(ctx context.Context, name, parentID string) (*remote.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["FindFolder"]; err != nil {
		return nil, err
	}
	for id, f := range s.folders {
		if f.name == name && f.parent == parentID {
			return &remote.ObjectInfo{Id: id, Name: name}, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (s *fakeStore) CreateFolder(ctx context.Context, name, parentID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["CreateFolder"]; err != nil {
		return "", err
	}
	s.folderCreates++
	id := s.genID("folder")
	s.folders[id] = &fakeFolder{name: name, parent: parentID}
	return id, nil
}

func (s *fakeStore) FindFile(ctx context.Context, name, parentID string) (*remote.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["FindFile"]; err != nil {
		return nil, err
	}
	for id, f := range s.files {
		if f.name == name && f.parent == parentID {
			return &remote.ObjectInfo{Id: id, Name: f.name, ModifiedTime: f.modified}, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (s *fakeStore) ListFiles(ctx context.Context, parentID string) ([]remote.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["ListFiles"]; err != nil {
		return nil, err
	}
	var result []remote.ObjectInfo
	for id, f := range s.files {
		if f.parent == parentID {
			result = append(result, remote.ObjectInfo{Id: id, Name: f.name, ModifiedTime: f.modified})
		}
	}
	return result, nil
}

func (s *fakeStore) CreateFile(ctx context.Context, parentID, name, mimeType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["CreateFile"]; err != nil {
		return "", err
	}
	s.fileCreates++
	id := s.genID("file")
	s.files[id] = &fakeFile{name: name, parent: parentID, mimeType: mimeType, data: data, modified: s.clock()}
	return id, nil
}

func (s *fakeStore) UpdateFile(ctx context.Context, id, mimeType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["UpdateFile"]; err != nil {
		return err
	}
	f, ok := s.files[id]
	if !ok {
		return common.ErrorNotFound
	}
	s.fileUpdates++
	f.data = data
	f.mimeType = mimeType
	f.modified = s.clock()
	return nil
}

func (s *fakeStore) Download(ctx context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["Download"]; err != nil {
		return nil, err
	}
	s.downloads++
	f, ok := s.files[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return f.data, nil
}

// findByName is a test helper for asserting on stored objects.
func (s *fakeStore) findByName(name string) *fakeFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.files {
		if f.name == name {
			return f
		}
	}
	return nil
}

type fakeAuth struct {
	token       string
	err         error
	owner       string
	invalidated int
}

func (a *fakeAuth) Token(ctx context.Context) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	return a.token, nil
}

func (a *fakeAuth) Invalidate() { a.invalidated++ }

func (a *fakeAuth) Owner() string {
	if a.owner == "" {
		return common.AnonymousOwner
	}
	return a.owner
}

type fakePersister struct {
	saves     int
	lastSync  time.Time
	saveErr   error
	stampErr  error
	lastOwner string
}

func (p *fakePersister) SaveCollection(ctx context.Context, owner string, c *models.Collection) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saves++
	p.lastOwner = owner
	return nil
}

func (p *fakePersister) SetLastSync(ctx context.Context, owner string, t time.Time) error {
	if p.stampErr != nil {
		return p.stampErr
	}
	p.lastSync = t
	return nil
}

func newTestEngine(store *fakeStore) (*Engine, *fakeAuth, *fakePersister) {
	auth := &fakeAuth{token: "tok"}
	persist := &fakePersister{}
	e := NewEngine(store, auth, persist, testLogger())
	return e, auth, persist
}
