// Package persistence provides SQLite-based storage for named parameter
// presets (noise config + palette). Map rasters are never stored here; they
// go to plain image files.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/mapforge/internal/heightmap"
	"github.com/talgya/mapforge/internal/terrain"
)

// ErrPresetNotFound is returned when loading or deleting a name with no row.
var ErrPresetNotFound = errors.New("preset not found")

// DB wraps a SQLite connection for preset storage.
type DB struct {
	conn *sqlx.DB
}

// Preset is one stored parameter set.
type Preset struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	NoiseJSON   string `db:"noise_json"`
	PaletteJSON string `db:"palette_json"`
	CreatedAt   string `db:"created_at"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS presets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		noise_json TEXT NOT NULL,
		palette_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_presets_name ON presets(name);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SavePreset stores cfg and palette under the given name, replacing any
// existing preset with that name. Returns the preset ID.
func (db *DB) SavePreset(name string, cfg heightmap.Config, palette terrain.Palette) (string, error) {
	noiseJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode noise config: %w", err)
	}
	paletteJSON, err := json.Marshal(palette)
	if err != nil {
		return "", fmt.Errorf("encode palette: %w", err)
	}

	id := uuid.NewString()
	_, err = db.conn.Exec(`INSERT INTO presets (id, name, noise_json, palette_json, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			noise_json = excluded.noise_json,
			palette_json = excluded.palette_json,
			created_at = excluded.created_at`,
		id, name, string(noiseJSON), string(paletteJSON), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("save preset %q: %w", name, err)
	}

	slog.Info("preset saved", "name", name)
	return id, nil
}

// LoadPreset returns the stored config and palette for name.
func (db *DB) LoadPreset(name string) (heightmap.Config, terrain.Palette, error) {
	var p Preset
	err := db.conn.Get(&p, "SELECT * FROM presets WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return heightmap.Config{}, nil, fmt.Errorf("preset %q: %w", name, ErrPresetNotFound)
	}
	if err != nil {
		return heightmap.Config{}, nil, fmt.Errorf("load preset %q: %w", name, err)
	}

	var cfg heightmap.Config
	if err := json.Unmarshal([]byte(p.NoiseJSON), &cfg); err != nil {
		return heightmap.Config{}, nil, fmt.Errorf("decode noise config for %q: %w", name, err)
	}
	var palette terrain.Palette
	if err := json.Unmarshal([]byte(p.PaletteJSON), &palette); err != nil {
		return heightmap.Config{}, nil, fmt.Errorf("decode palette for %q: %w", name, err)
	}

	return cfg, palette, nil
}

// ListPresets returns all presets ordered by name.
func (db *DB) ListPresets() ([]Preset, error) {
	var presets []Preset
	err := db.conn.Select(&presets, "SELECT * FROM presets ORDER BY name")
	return presets, err
}

// DeletePreset removes the preset with the given name.
func (db *DB) DeletePreset(name string) error {
	res, err := db.conn.Exec("DELETE FROM presets WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("preset %q: %w", name, ErrPresetNotFound)
	}
	return nil
}
