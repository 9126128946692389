package catalog

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "encore"
	dbFileName = "catalog.db"
)

// DB is a SQLite-backed catalog.
type DB struct {
	db *sql.DB
}

// Open opens the catalog database under the XDG data directory, creating the
// schema and seeding the fixture tracks on first use.
func Open() (*DB, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens a catalog database at the given path. Use ":memory:" for an
// ephemeral catalog.
func OpenPath(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := seedIfEmpty(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Tracks returns all tracks in insertion order.
func (d *DB) Tracks() ([]Track, error) {
	rows, err := d.db.Query(`
		SELECT id, title, artist, album, duration_ms, genre, mood
		FROM catalog_tracks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		var t Track
		var durationMs int64
		if err := rows.Scan(&t.ID, &t.Title, &t.Artist, &t.Album, &durationMs, &t.Genre, &t.Mood); err != nil {
			return nil, err
		}
		t.Duration = time.Duration(durationMs) * time.Millisecond
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS catalog_tracks (
			id          TEXT PRIMARY KEY,
			position    INTEGER NOT NULL,
			title       TEXT NOT NULL,
			artist      TEXT NOT NULL,
			album       TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			genre       TEXT NOT NULL DEFAULT '',
			mood        TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

func seedIfEmpty(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM catalog_tracks`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.Prepare(`
		INSERT INTO catalog_tracks (id, position, title, artist, album, duration_ms, genre, mood)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range Fixture() {
		if _, err := stmt.Exec(t.ID, i, t.Title, t.Artist, t.Album, t.Duration.Milliseconds(), t.Genre, t.Mood); err != nil {
			return err
		}
	}

	return tx.Commit()
}
