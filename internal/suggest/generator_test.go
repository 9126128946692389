package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvasse/encore/internal/catalog"
)

// testCatalog builds a catalog with enough genre/mood variety for matching
// and backfill scenarios. IDs encode catalog order.
func testCatalog() []catalog.Track {
	return []catalog.Track{
		{ID: "1", Genre: "jazz", Mood: "relaxed"},
		{ID: "2", Genre: "rock", Mood: "energetic"},
		{ID: "3", Genre: "jazz", Mood: "dreamy"},
		{ID: "4", Genre: "pop", Mood: "relaxed"},
		{ID: "5", Genre: "metal", Mood: "intense"},
		{ID: "6", Genre: "jazz", Mood: "relaxed"},
		{ID: "7", Genre: "blues", Mood: "melancholic"},
		{ID: "8", Genre: "jazz", Mood: "groovy"},
		{ID: "9", Genre: "pop", Mood: "happy"},
		{ID: "10", Genre: "rock", Mood: "relaxed"},
		{ID: "11", Genre: "jazz", Mood: "relaxed"},
		{ID: "12", Genre: "disco", Mood: "groovy"},
	}
}

func ids(tracks []catalog.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.ID
	}
	return out
}

func TestGenerate_FullMatchesInCatalogOrder(t *testing.T) {
	g := New(testCatalog(), DefaultConfig())

	p := g.Generate("jazz", "relaxed")

	// Matches (genre=jazz OR mood=relaxed) in catalog order: 1,3,4,6,8,10,11 = 7
	// plus one backfill (2) to reach 8.
	require.Equal(t, 8, p.Len())
	assert.Equal(t, []string{"1", "3", "4", "6", "8", "10", "11", "2"}, ids(p.Tracks()))
	assert.Equal(t, "relaxed jazz Mix", p.Name)
}

func TestGenerate_ExactlyEightMatches(t *testing.T) {
	tracks := testCatalog()
	// Make id 12 a match too, bringing matches to 8.
	tracks[11].Mood = "relaxed"
	g := New(tracks, DefaultConfig())

	p := g.Generate("jazz", "relaxed")

	require.Equal(t, 8, p.Len())
	for _, tr := range p.Tracks() {
		matched := tr.Genre == "jazz" || tr.Mood == "relaxed"
		assert.True(t, matched, "track %s should match genre or mood", tr.ID)
	}
}

func TestGenerate_BackfillWithoutDuplicates(t *testing.T) {
	g := New(testCatalog(), DefaultConfig())

	p := g.Generate("country", "heartfelt") // no matches at all

	require.Equal(t, 8, p.Len())
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8"}, ids(p.Tracks()))

	seen := make(map[string]bool)
	for _, tr := range p.Tracks() {
		assert.False(t, seen[tr.ID], "duplicate track id %s", tr.ID)
		seen[tr.ID] = true
	}
}

func TestGenerate_SmallCatalogExhausts(t *testing.T) {
	g := New(testCatalog()[:5], DefaultConfig())

	p := g.Generate("jazz", "relaxed")

	assert.Equal(t, 5, p.Len())
	assert.True(t, g.Exhausted(p))
}

func TestGenerate_NameCapitalizationAsSupplied(t *testing.T) {
	g := New(testCatalog(), DefaultConfig())

	p := g.Generate("Jazz", "Relaxed")
	assert.Equal(t, "Relaxed Jazz Mix", p.Name)
}

func TestAddMore_MatchingFirstNoDuplicates(t *testing.T) {
	g := New(testCatalog(), DefaultConfig())
	p := g.Generate("jazz", "relaxed")

	added := g.AddMore(p)

	assert.Equal(t, 4, added)
	require.Equal(t, 12, p.Len())

	seen := make(map[string]bool)
	for _, tr := range p.Tracks() {
		assert.False(t, seen[tr.ID], "duplicate track id %s", tr.ID)
		seen[tr.ID] = true
	}
	assert.True(t, g.Exhausted(p))
}

func TestAddMore_ExhaustedReturnsZero(t *testing.T) {
	g := New(testCatalog(), DefaultConfig())
	p := g.Generate("jazz", "relaxed")
	g.AddMore(p)

	assert.Equal(t, 0, g.AddMore(p))
}

func TestRemove_DeletesWithoutReplacement(t *testing.T) {
	g := New(testCatalog(), DefaultConfig())
	p := g.Generate("jazz", "relaxed")

	assert.True(t, p.Remove("4"))
	assert.Equal(t, 7, p.Len())
	assert.NotContains(t, ids(p.Tracks()), "4")

	assert.False(t, p.Remove("4"), "second remove of same id should fail")
	assert.False(t, p.Remove("nope"))
}

func TestRemove_ThenAddMoreCanReintroduce(t *testing.T) {
	g := New(testCatalog(), DefaultConfig())
	p := g.Generate("jazz", "relaxed")

	require.True(t, p.Remove("1"))
	g.AddMore(p)

	// Removed track is eligible again; either way no duplicates.
	seen := make(map[string]bool)
	for _, tr := range p.Tracks() {
		assert.False(t, seen[tr.ID], "duplicate track id %s", tr.ID)
		seen[tr.ID] = true
	}
}

func TestRegenerate_DiscardsManualEdits(t *testing.T) {
	g := New(testCatalog(), DefaultConfig())
	p := g.Generate("jazz", "relaxed")
	original := ids(p.Tracks())

	p.Remove("1")
	p.Remove("3")
	g.AddMore(p)

	g.Regenerate(p)

	assert.Equal(t, original, ids(p.Tracks()))
	assert.Equal(t, "relaxed jazz Mix", p.Name)
}

func TestGenerate_MatchingIsCaseInsensitive(t *testing.T) {
	g := New(testCatalog(), DefaultConfig())

	p := g.Generate("JAZZ", "RELAXED")
	assert.Equal(t, []string{"1", "3", "4", "6", "8", "10", "11", "2"}, ids(p.Tracks()))
}
