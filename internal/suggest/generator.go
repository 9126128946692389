// Package suggest derives playlist suggestions from classification results
// against a catalog snapshot.
package suggest

import (
	"fmt"
	"strings"

	"github.com/lvasse/encore/internal/catalog"
)

// Config holds the suggestion sizing knobs.
type Config struct {
	ListSize     int // tracks per generated playlist
	AddBatchSize int // tracks added per "add more"
}

// DefaultConfig returns the standard sizing.
func DefaultConfig() Config {
	return Config{ListSize: 8, AddBatchSize: 4}
}

// Generator produces suggested playlists from an in-memory catalog snapshot.
// All operations are synchronous; no network calls.
type Generator struct {
	tracks []catalog.Track
	cfg    Config
}

// New creates a Generator over a catalog snapshot. Catalog order is
// preserved in all selections.
func New(tracks []catalog.Track, cfg Config) *Generator {
	if cfg.ListSize <= 0 {
		cfg.ListSize = DefaultConfig().ListSize
	}
	if cfg.AddBatchSize <= 0 {
		cfg.AddBatchSize = DefaultConfig().AddBatchSize
	}
	snapshot := make([]catalog.Track, len(tracks))
	copy(snapshot, tracks)
	return &Generator{tracks: snapshot, cfg: cfg}
}

// Playlist is one classification result's suggested track list. Track IDs
// are unique within the list at all times.
type Playlist struct {
	Name string

	genre string
	mood  string

	tracks  []catalog.Track
	present map[string]bool
}

// Generate builds a playlist for a (genre, mood) pair: up to ListSize tracks
// whose genre or mood matches, in catalog order, backfilled from the rest of
// the catalog when there are not enough matches.
func (g *Generator) Generate(genre, mood string) *Playlist {
	p := &Playlist{
		Name:    fmt.Sprintf("%s %s Mix", mood, genre),
		genre:   genre,
		mood:    mood,
		present: make(map[string]bool),
	}
	g.fill(p, g.cfg.ListSize)
	return p
}

// AddMore extends the playlist by up to AddBatchSize tracks not already
// present, matching-first then backfill. Returns the number of tracks added;
// zero means the catalog is exhausted.
func (g *Generator) AddMore(p *Playlist) int {
	return g.fill(p, g.cfg.AddBatchSize)
}

// Regenerate recomputes the playlist from scratch for its original
// (genre, mood) pair, discarding prior manual edits.
func (g *Generator) Regenerate(p *Playlist) {
	p.tracks = nil
	p.present = make(map[string]bool)
	g.fill(p, g.cfg.ListSize)
}

// Exhausted reports whether every catalog track is already in the playlist.
func (g *Generator) Exhausted(p *Playlist) bool {
	return len(p.tracks) >= len(g.tracks)
}

// fill adds up to n tracks to the playlist: matching tracks in catalog order
// first, then non-matching backfill in catalog order. Tracks already present
// are never added twice.
func (g *Generator) fill(p *Playlist, n int) int {
	added := 0

	for _, t := range g.tracks {
		if added >= n {
			break
		}
		if p.present[t.ID] || !matches(t, p.genre, p.mood) {
			continue
		}
		p.add(t)
		added++
	}

	for _, t := range g.tracks {
		if added >= n {
			break
		}
		if p.present[t.ID] {
			continue
		}
		p.add(t)
		added++
	}

	return added
}

func matches(t catalog.Track, genre, mood string) bool {
	return strings.EqualFold(t.Genre, genre) || strings.EqualFold(t.Mood, mood)
}

func (p *Playlist) add(t catalog.Track) {
	p.tracks = append(p.tracks, t)
	p.present[t.ID] = true
}

// Remove deletes one track by id. No replacement is added. Returns false if
// the id is not in the playlist.
func (p *Playlist) Remove(id string) bool {
	if !p.present[id] {
		return false
	}
	for i := range p.tracks {
		if p.tracks[i].ID == id {
			p.tracks = append(p.tracks[:i], p.tracks[i+1:]...)
			break
		}
	}
	delete(p.present, id)
	return true
}

// Tracks returns a copy of the playlist's tracks in order.
func (p *Playlist) Tracks() []catalog.Track {
	out := make([]catalog.Track, len(p.tracks))
	copy(out, p.tracks)
	return out
}

// Len returns the number of tracks in the playlist.
func (p *Playlist) Len() int {
	return len(p.tracks)
}
