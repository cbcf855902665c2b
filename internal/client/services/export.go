package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/notedrive/internal/client/models"
	"github.com/dmitrijs2005/notedrive/internal/common"
)

// Export formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ExportService turns a collection into an interchange document and back.
type ExportService interface {
	Export(ctx context.Context, owner, format string) ([]byte, error)
	Import(ctx context.Context, owner string, data []byte) (int, error)
}

type exportService struct {
	notes NoteService
}

func NewExportService(notes NoteService) ExportService {
	return &exportService{notes: notes}
}

func (s *exportService) Export(ctx context.Context, owner, format string) ([]byte, error) {
	c, err := s.notes.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON, "":
		return exportJSON(c)
	case FormatMarkdown:
		return exportMarkdown(c)
	default:
		return nil, fmt.Errorf("unknown export format %q: %w", format, common.ErrorInvalidFormat)
	}
}

// Import merges notes from a JSON interchange document into the owner's
// collection and returns how many notes were added. Notes whose id already
// exists are skipped rather than overwritten.
func (s *exportService) Import(ctx context.Context, owner string, data []byte) (int, error) {
	e, err := models.ParseImport(data)
	if err != nil {
		return 0, err
	}
	c, err := s.notes.Load(ctx, owner)
	if err != nil {
		return 0, err
	}
	added := e.ImportInto(c)
	if added > 0 {
		if err := s.notes.Save(ctx, owner, c); err != nil {
			return 0, err
		}
	}
	return added, nil
}

func exportJSON(c *models.Collection) ([]byte, error) {
	data, err := json.MarshalIndent(models.NewExport(c), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return data, nil
}

// frontMatter is the YAML header emitted before each note in the markdown
// export. Attachments are referenced by link only; binary payloads do not
// belong in a text export.
type frontMatter struct {
	Id          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Labels      []string   `yaml:"labels,omitempty"`
	Color       string     `yaml:"color,omitempty"`
	Pinned      bool       `yaml:"pinned,omitempty"`
	CreatedAt   time.Time  `yaml:"createdAt"`
	UpdatedAt   time.Time  `yaml:"updatedAt"`
	ArchivedAt  *time.Time `yaml:"archivedAt,omitempty"`
	Attachments []string   `yaml:"attachments,omitempty"`
}

// exportMarkdown renders active and archived notes as one markdown document,
// each note introduced by a YAML front matter block.
func exportMarkdown(c *models.Collection) ([]byte, error) {
	var buf bytes.Buffer
	for _, n := range append(append([]*models.Note{}, c.Notes...), c.Archive...) {
		fm := frontMatter{
			Id:         n.Id,
			Title:      n.Title,
			Labels:     n.Labels,
			Color:      n.Color,
			Pinned:     n.Pinned,
			CreatedAt:  n.CreatedAt,
			UpdatedAt:  n.UpdatedAt,
			ArchivedAt: n.ArchivedAt,
		}
		for _, a := range n.Images {
			if a.DriveLink != "" {
				fm.Attachments = append(fm.Attachments, a.DriveLink)
			}
		}
		for _, d := range n.Documents {
			if d.DriveLink != "" {
				fm.Attachments = append(fm.Attachments, d.DriveLink)
			}
		}

		header, err := yaml.Marshal(&fm)
		if err != nil {
			return nil, fmt.Errorf("encoding front matter for note %s: %w", n.Id, err)
		}
		buf.WriteString("---\n")
		buf.Write(header)
		buf.WriteString("---\n\n")
		if n.Title != "" {
			fmt.Fprintf(&buf, "# %s\n\n", n.Title)
		}
		buf.WriteString(n.Content)
		buf.WriteString("\n\n")
	}
	return buf.Bytes(), nil
}
