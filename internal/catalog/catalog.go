// Package catalog provides read-only access to the track collection backing
// playlist suggestions.
package catalog

import "time"

// Track is a single catalog entry.
type Track struct {
	ID       string
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
	Genre    string
	Mood     string
}

// Catalog is an ordered, read-only collection of tracks.
type Catalog interface {
	// Tracks returns all tracks in stable catalog order.
	Tracks() ([]Track, error)
}

// Memory is an in-memory catalog backed by a fixed slice.
type Memory struct {
	tracks []Track
}

// NewMemory creates a catalog over the given tracks. The slice is copied so
// later mutations by the caller do not affect catalog order.
func NewMemory(tracks []Track) *Memory {
	c := make([]Track, len(tracks))
	copy(c, tracks)
	return &Memory{tracks: c}
}

func (m *Memory) Tracks() ([]Track, error) {
	out := make([]Track, len(m.tracks))
	copy(out, m.tracks)
	return out, nil
}

// Verify implementations at compile time.
var (
	_ Catalog = (*Memory)(nil)
	_ Catalog = (*DB)(nil)
)
