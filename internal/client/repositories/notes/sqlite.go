package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/notedrive/internal/client/models"
	"github.com/dmitrijs2005/notedrive/internal/dbx"
)

const (
	partitionActive  = "active"
	partitionArchive = "archive"
	partitionTrash   = "trash"
)

// SQLiteRepository implements Repository on top of the local SQLite
// database. Notes are stored as one JSON payload per row so the on-disk
// shape stays aligned with the interchange format.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context, owner string) (*models.Collection, error) {
	c := &models.Collection{}

	rows, err := r.db.QueryContext(ctx,
		`SELECT partition, payload FROM notes WHERE owner = ? ORDER BY partition, position`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var partition string
		var payload []byte
		if err := rows.Scan(&partition, &payload); err != nil {
			return nil, err
		}
		var n models.Note
		if err := json.Unmarshal(payload, &n); err != nil {
			return nil, fmt.Errorf("failed to decode note payload: %w", err)
		}
		switch partition {
		case partitionArchive:
			c.Archive = append(c.Archive, &n)
		case partitionTrash:
			c.Trash = append(c.Trash, &n)
		default:
			c.Notes = append(c.Notes, &n)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	labelRows, err := r.db.QueryContext(ctx,
		`SELECT name FROM labels WHERE owner = ? ORDER BY position`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select labels: %w", err)
	}
	defer labelRows.Close()

	for labelRows.Next() {
		var name string
		if err := labelRows.Scan(&name); err != nil {
			return nil, err
		}
		c.Labels = append(c.Labels, name)
	}
	if err := labelRows.Err(); err != nil {
		return nil, err
	}

	return c, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, owner string, c *models.Collection) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE owner = ?`, owner); err != nil {
			return fmt.Errorf("failed to clear notes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM labels WHERE owner = ?`, owner); err != nil {
			return fmt.Errorf("failed to clear labels: %w", err)
		}

		insert := func(partition string, list []*models.Note) error {
			for i, n := range list {
				payload, err := json.Marshal(n)
				if err != nil {
					return fmt.Errorf("failed to encode note %s: %w", n.Id, err)
				}
				_, err = tx.ExecContext(ctx,
					`INSERT INTO notes (owner, id, partition, position, payload) VALUES (?, ?, ?, ?, ?)`,
					owner, n.Id, partition, i, payload)
				if err != nil {
					return fmt.Errorf("failed to insert note %s: %w", n.Id, err)
				}
			}
			return nil
		}

		if err := insert(partitionActive, c.Notes); err != nil {
			return err
		}
		if err := insert(partitionArchive, c.Archive); err != nil {
			return err
		}
		if err := insert(partitionTrash, c.Trash); err != nil {
			return err
		}

		for i, name := range c.Labels {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO labels (owner, name, position) VALUES (?, ?, ?)`, owner, name, i)
			if err != nil {
				return fmt.Errorf("failed to insert label %q: %w", name, err)
			}
		}
		return nil
	})
}
