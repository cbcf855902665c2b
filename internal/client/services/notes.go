package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/notedrive/internal/client/models"
	"github.com/dmitrijs2005/notedrive/internal/client/repositories/notes"
	"github.com/dmitrijs2005/notedrive/internal/common"
	"github.com/dmitrijs2005/notedrive/internal/logging"
)

// NoteService is the application-level API over the note collection. Every
// mutation loads the owner's collection, applies the change and writes the
// collection back, so the database is the single source of truth between
// invocations.
type NoteService interface {
	Load(ctx context.Context, owner string) (*models.Collection, error)
	Save(ctx context.Context, owner string, c *models.Collection) error

	Add(ctx context.Context, owner, title, content string, labels []string) (*models.Note, error)
	Update(ctx context.Context, owner, id, title, content string) error
	TogglePin(ctx context.Context, owner, id string) (bool, error)
	SetColor(ctx context.Context, owner, id, color string) error
	SetType(ctx context.Context, owner, id string, t models.NoteType) error

	AttachFile(ctx context.Context, owner, id, name, mimeType string, data []byte, asDocument bool) error

	Trash(ctx context.Context, owner, id string) error
	Restore(ctx context.Context, owner, id string) error
	Delete(ctx context.Context, owner, id string) error
	EmptyTrash(ctx context.Context, owner string) (int, error)
	PurgeExpiredTrash(ctx context.Context, owner string) (int, error)

	Archive(ctx context.Context, owner, id string) error
	Unarchive(ctx context.Context, owner, id string) error

	CreateLabel(ctx context.Context, owner, name string) error
	DeleteLabel(ctx context.Context, owner, name string) error
	ToggleNoteLabel(ctx context.Context, owner, noteID, label string) (bool, error)
}

type noteService struct {
	repo notes.Repository
	log  logging.Logger
	now  func() time.Time
}

func NewNoteService(repo notes.Repository, log logging.Logger) NoteService {
	return &noteService{repo: repo, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Load reads the owner's collection and silently drops trashed notes past
// the retention window. The purge is persisted immediately so expired notes
// cannot resurface through a later sync.
func (s *noteService) Load(ctx context.Context, owner string) (*models.Collection, error) {
	c, err := s.repo.Load(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("loading collection: %w", err)
	}
	if purged := c.PurgeExpiredTrash(s.now()); purged > 0 {
		s.log.Info(ctx, "purged expired trash", "count", purged)
		if err := s.repo.Save(ctx, owner, c); err != nil {
			return nil, fmt.Errorf("saving collection after purge: %w", err)
		}
	}
	return c, nil
}

func (s *noteService) Save(ctx context.Context, owner string, c *models.Collection) error {
	if err := s.repo.Save(ctx, owner, c); err != nil {
		return fmt.Errorf("saving collection: %w", err)
	}
	return nil
}

// mutate runs fn against the owner's collection and persists the result
// when fn succeeds.
func (s *noteService) mutate(ctx context.Context, owner string, fn func(c *models.Collection) error) error {
	c, err := s.Load(ctx, owner)
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return s.Save(ctx, owner, c)
}

func (s *noteService) Add(ctx context.Context, owner, title, content string, labels []string) (*models.Note, error) {
	n := models.NewNote(title, content)
	err := s.mutate(ctx, owner, func(c *models.Collection) error {
		for _, l := range labels {
			c.AddLabel(l)
			n.Labels = append(n.Labels, l)
		}
		c.Add(n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (s *noteService) Update(ctx context.Context, owner, id, title, content string) error {
	return s.mutate(ctx, owner, func(c *models.Collection) error {
		n := c.FindNote(id)
		if n == nil {
			return fmt.Errorf("note %s: %w", id, common.ErrorNotFound)
		}
		n.Title = title
		n.Content = content
		n.Touch()
		return nil
	})
}

func (s *noteService) TogglePin(ctx context.Context, owner, id string) (bool, error) {
	var pinned bool
	err := s.mutate(ctx, owner, func(c *models.Collection) error {
		n := c.FindNote(id)
		if n == nil {
			return fmt.Errorf("note %s: %w", id, common.ErrorNotFound)
		}
		n.Pinned = !n.Pinned
		n.Touch()
		pinned = n.Pinned
		return nil
	})
	return pinned, err
}

func (s *noteService) SetColor(ctx context.Context, owner, id, color string) error {
	return s.mutate(ctx, owner, func(c *models.Collection) error {
		n := c.FindNote(id)
		if n == nil {
			return fmt.Errorf("note %s: %w", id, common.ErrorNotFound)
		}
		n.Color = color
		n.Touch()
		return nil
	})
}

func (s *noteService) SetType(ctx context.Context, owner, id string, t models.NoteType) error {
	return s.mutate(ctx, owner, func(c *models.Collection) error {
		n := c.FindNote(id)
		if n == nil {
			return fmt.Errorf("note %s: %w", id, common.ErrorNotFound)
		}
		n.Type = t
		n.Touch()
		return nil
	})
}

// AttachFile stores a binary payload inline on the note, as an image or a
// document. The payload is uploaded on the next sync cycle.
func (s *noteService) AttachFile(ctx context.Context, owner, id, name, mimeType string, data []byte, asDocument bool) error {
	return s.mutate(ctx, owner, func(c *models.Collection) error {
		n := c.FindNote(id)
		if n == nil {
			return fmt.Errorf("note %s: %w", id, common.ErrorNotFound)
		}
		a := &models.Attachment{Id: uuid.NewString(), Name: name, MimeType: mimeType}
		a.SetBytes(data)
		if asDocument {
			n.Documents = append(n.Documents, &models.Document{Attachment: *a, Size: int64(len(data))})
		} else {
			n.Images = append(n.Images, a)
		}
		n.Touch()
		return nil
	})
}

func (s *noteService) Trash(ctx context.Context, owner, id string) error {
	return s.mutate(ctx, owner, func(c *models.Collection) error {
		if err := c.MoveToTrash(id); err != nil {
			return c.ArchivedToTrash(id)
		}
		return nil
	})
}

func (s *noteService) Restore(ctx context.Context, owner, id string) error {
	return s.mutate(ctx, owner, func(c *models.Collection) error {
		return c.RestoreFromTrash(id)
	})
}

func (s *noteService) Delete(ctx context.Context, owner, id string) error {
	return s.mutate(ctx, owner, func(c *models.Collection) error {
		return c.PermanentDelete(id)
	})
}

func (s *noteService) EmptyTrash(ctx context.Context, owner string) (int, error) {
	var count int
	err := s.mutate(ctx, owner, func(c *models.Collection) error {
		count = len(c.Trash)
		c.EmptyTrash()
		return nil
	})
	return count, err
}

func (s *noteService) PurgeExpiredTrash(ctx context.Context, owner string) (int, error) {
	var count int
	err := s.mutate(ctx, owner, func(c *models.Collection) error {
		count = c.PurgeExpiredTrash(s.now())
		return nil
	})
	return count, err
}

func (s *noteService) Archive(ctx context.Context, owner, id string) error {
	return s.mutate(ctx, owner, func(c *models.Collection) error {
		return c.ArchiveNote(id)
	})
}

func (s *noteService) Unarchive(ctx context.Context, owner, id string) error {
	return s.mutate(ctx, owner, func(c *models.Collection) error {
		return c.UnarchiveNote(id)
	})
}

func (s *noteService) CreateLabel(ctx context.Context, owner, name string) error {
	return s.mutate(ctx, owner, func(c *models.Collection) error {
		c.AddLabel(name)
		return nil
	})
}

func (s *noteService) DeleteLabel(ctx context.Context, owner, name string) error {
	return s.mutate(ctx, owner, func(c *models.Collection) error {
		c.DeleteLabel(name)
		return nil
	})
}

// ToggleNoteLabel attaches the label to the note, or detaches it when
// already present, and returns the resulting state. A label unknown to the
// collection is created on attach.
func (s *noteService) ToggleNoteLabel(ctx context.Context, owner, noteID, label string) (bool, error) {
	var attached bool
	err := s.mutate(ctx, owner, func(c *models.Collection) error {
		n := c.FindNote(noteID)
		if n == nil {
			return fmt.Errorf("note %s: %w", noteID, common.ErrorNotFound)
		}
		if n.HasLabel(label) {
			n.RemoveLabel(label)
		} else {
			c.AddLabel(label)
			n.Labels = append(n.Labels, label)
			attached = true
		}
		n.Touch()
		return nil
	})
	return attached, err
}
