// Package storage provides SQLite-based persistence for textures and
// captured frames. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/enginehost/internal/core"
)

// ErrNotFound is returned when a frame or texture does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database holding textures and frames.
type Store struct {
	db *sql.DB
}

// TextureEntry describes a stored texture without its pixel data.
type TextureEntry struct {
	Name      string
	Format    core.ImageFormat
	Width     uint32
	Height    uint32
	Size      int
	CreatedAt time.Time
}

// FrameEntry describes an archived viewport capture.
type FrameEntry struct {
	ID        int64
	Label     string
	Width     int
	Height    int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS textures (
			name TEXT PRIMARY KEY,
			format INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS frames (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL DEFAULT '',
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_frames_label ON frames(label);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// TextureKey normalizes a texture name so visually identical names
// resolve to the same row.
func TextureKey(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// PutTexture stores or replaces a texture under name.
func (s *Store) PutTexture(name string, desc core.ImageDescriptor) error {
	key := TextureKey(name)
	if key == "" {
		return fmt.Errorf("storage: empty texture name")
	}
	if !desc.Format.Valid() {
		return fmt.Errorf("storage: texture %q: invalid format %d", key, int32(desc.Format))
	}
	if desc.Empty() {
		return fmt.Errorf("storage: texture %q: no data", key)
	}

	_, err := s.db.Exec(
		`INSERT INTO textures (name, format, width, height, data) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   format = excluded.format, width = excluded.width,
		   height = excluded.height, data = excluded.data,
		   created_at = CURRENT_TIMESTAMP`,
		key, int32(desc.Format), desc.Width, desc.Height, desc.Data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save texture: %w", err)
	}
	return nil
}

// Texture returns the stored descriptor for name.
func (s *Store) Texture(name string) (core.ImageDescriptor, error) {
	var desc core.ImageDescriptor
	var format int32
	err := s.db.QueryRow(
		"SELECT format, width, height, data FROM textures WHERE name = ?",
		TextureKey(name),
	).Scan(&format, &desc.Width, &desc.Height, &desc.Data)

	if errors.Is(err, sql.ErrNoRows) {
		return core.ImageDescriptor{}, ErrNotFound
	}
	if err != nil {
		return core.ImageDescriptor{}, fmt.Errorf("storage: cannot query texture: %w", err)
	}
	desc.Format = core.ImageFormat(format)
	return desc, nil
}

// LoadImage implements the host image loader contract: a missing or
// unreadable texture reports absent.
func (s *Store) LoadImage(name string) (core.ImageDescriptor, bool) {
	desc, err := s.Texture(name)
	if err != nil {
		return core.ImageDescriptor{}, false
	}
	return desc, true
}

// DeleteTexture removes a texture. Deleting a missing texture is not an error.
func (s *Store) DeleteTexture(name string) error {
	_, err := s.db.Exec("DELETE FROM textures WHERE name = ?", TextureKey(name))
	if err != nil {
		return fmt.Errorf("storage: cannot delete texture: %w", err)
	}
	return nil
}

// Textures lists stored textures ordered by name.
func (s *Store) Textures() ([]TextureEntry, error) {
	rows, err := s.db.Query(
		`SELECT name, format, width, height, length(data), created_at
		 FROM textures
		 ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query textures: %w", err)
	}
	defer rows.Close()

	var entries []TextureEntry
	for rows.Next() {
		var e TextureEntry
		var format int32
		var createdAt any
		if err := rows.Scan(&e.Name, &format, &e.Width, &e.Height, &e.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Format = core.ImageFormat(format)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// SaveFrame archives a copy of frame under label.
// Returns the ID of the inserted record.
func (s *Store) SaveFrame(label string, frame *core.Frame) (int64, error) {
	if frame == nil || frame.Len() == 0 {
		return 0, fmt.Errorf("storage: empty frame")
	}

	result, err := s.db.Exec(
		"INSERT INTO frames (label, width, height, data) VALUES (?, ?, ?, ?)",
		label, frame.Width(), frame.Height(), frame.Pix(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save frame: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Frame loads an archived frame by ID.
func (s *Store) Frame(id int64) (FrameEntry, *core.Frame, error) {
	var e FrameEntry
	var data []byte
	var createdAt any

	err := s.db.QueryRow(
		"SELECT id, label, width, height, data, created_at FROM frames WHERE id = ?",
		id,
	).Scan(&e.ID, &e.Label, &e.Width, &e.Height, &data, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return FrameEntry{}, nil, ErrNotFound
	}
	if err != nil {
		return FrameEntry{}, nil, fmt.Errorf("storage: cannot query frame: %w", err)
	}
	if len(data) < e.Width*e.Height*core.BytesPerPixelRGB8 {
		return FrameEntry{}, nil, fmt.Errorf("storage: frame %d: truncated data", id)
	}

	e.CreatedAt = parseTime(createdAt)
	return e, core.FrameFromRGB(e.Width, e.Height, data), nil
}

// Frames lists the most recent archived frames, newest first.
// An empty label matches every frame.
func (s *Store) Frames(label string, limit int) ([]FrameEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, label, width, height, created_at
		 FROM frames
		 WHERE ? = '' OR label = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		label, label, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	var entries []FrameEntry
	for rows.Next() {
		var e FrameEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Label, &e.Width, &e.Height, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearFrames deletes archived frames with the given label, or all frames
// when label is empty.
func (s *Store) ClearFrames(label string) error {
	_, err := s.db.Exec("DELETE FROM frames WHERE ? = '' OR label = ?", label, label)
	if err != nil {
		return fmt.Errorf("storage: cannot clear frames: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
