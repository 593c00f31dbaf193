package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/retrolex/internal/filemode"
)

// fileModeModel is a row of the file_modes table.
type fileModeModel struct {
	Path      string
	Mode      string
	UpdatedAt int64 // Unix timestamp
}

func toFileModeModel(c filemode.Choice) fileModeModel {
	updated := c.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	return fileModeModel{Path: c.Path, Mode: c.Mode, UpdatedAt: updated.Unix()}
}

func (m fileModeModel) toDomain() filemode.Choice {
	return filemode.Choice{Path: m.Path, Mode: m.Mode, UpdatedAt: time.Unix(m.UpdatedAt, 0)}
}

// fileModeRepository implements filemode.Repository using SQLite.
type fileModeRepository struct {
	db *sql.DB
}

func newFileModeRepository(db *sql.DB) *fileModeRepository {
	return &fileModeRepository{db: db}
}

var _ filemode.Repository = (*fileModeRepository)(nil)

// Save inserts or replaces the choice for c.Path.
func (r *fileModeRepository) Save(c filemode.Choice) error {
	if c.Path == "" {
		return errors.New("file mode path is empty")
	}
	m := toFileModeModel(c)
	_, err := r.db.Exec(
		`INSERT INTO file_modes (path, mode, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET mode = excluded.mode, updated_at = excluded.updated_at`,
		m.Path, m.Mode, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save file mode: %w", err)
	}
	return nil
}

// Find returns the choice for path or ErrFileModeNotFound.
func (r *fileModeRepository) Find(path string) (filemode.Choice, error) {
	var m fileModeModel
	err := r.db.QueryRow(
		`SELECT path, mode, updated_at FROM file_modes WHERE path = ?`, path,
	).Scan(&m.Path, &m.Mode, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return filemode.Choice{}, fmt.Errorf("%w: %s", filemode.ErrFileModeNotFound, path)
	}
	if err != nil {
		return filemode.Choice{}, fmt.Errorf("failed to find file mode: %w", err)
	}
	return m.toDomain(), nil
}

// Delete removes the choice for path or returns ErrFileModeNotFound.
func (r *fileModeRepository) Delete(path string) error {
	result, err := r.db.Exec(`DELETE FROM file_modes WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("failed to delete file mode: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", filemode.ErrFileModeNotFound, path)
	}
	return nil
}

// List returns every stored choice ordered by path.
func (r *fileModeRepository) List() ([]filemode.Choice, error) {
	rows, err := r.db.Query(`SELECT path, mode, updated_at FROM file_modes ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("failed to list file modes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []filemode.Choice
	for rows.Next() {
		var m fileModeModel
		if err := rows.Scan(&m.Path, &m.Mode, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan file mode: %w", err)
		}
		out = append(out, m.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate file modes: %w", err)
	}
	return out, nil
}
