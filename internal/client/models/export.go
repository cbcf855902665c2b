package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notedrive/internal/common"
)

// Export is the interchange document produced by `notedrive export` and
// accepted by `notedrive import`.
type Export struct {
	Version    string    `json:"version"`
	ExportDate time.Time `json:"exportDate"`
	Notes      []*Note   `json:"notes"`
	Trash      []*Note   `json:"trash,omitempty"`
	Labels     []string  `json:"labels,omitempty"`
}

// NewExport snapshots the collection into an interchange document.
func NewExport(c *Collection) *Export {
	return &Export{
		Version:    common.SchemaVersion,
		ExportDate: time.Now().UTC(),
		Notes:      c.Notes,
		Trash:      c.Trash,
		Labels:     c.Labels,
	}
}

// ParseImport accepts either a full export document or a bare JSON array of
// notes (the legacy export shape).
func ParseImport(data []byte) (*Export, error) {
	var notes []*Note
	if err := json.Unmarshal(data, &notes); err == nil {
		return &Export{Notes: notes}, nil
	}

	var doc Export
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInvalidFormat, err)
	}
	return &doc, nil
}

// ImportInto merges the document into the collection: notes with unknown ids
// are prepended, existing ids are left untouched, labels are unioned. It
// returns the number of imported notes.
func (e *Export) ImportInto(c *Collection) int {
	existing := make(map[string]struct{}, len(c.Notes))
	for _, n := range c.Notes {
		existing[n.Id] = struct{}{}
	}

	var fresh []*Note
	for _, n := range e.Notes {
		if n == nil || n.Id == "" {
			continue
		}
		if _, ok := existing[n.Id]; ok {
			continue
		}
		existing[n.Id] = struct{}{}
		fresh = append(fresh, n)
	}

	c.Notes = append(fresh, c.Notes...)

	for _, l := range e.Labels {
		c.AddLabel(l)
	}
	return len(fresh)
}
