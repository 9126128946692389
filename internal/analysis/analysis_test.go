package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive_JazzMapsToRelaxed(t *testing.T) {
	a := Derive("jazz", 0.91)

	assert.Equal(t, "jazz", a.Genre.Name)
	assert.InDelta(t, 0.91, a.Genre.Confidence, 1e-9)
	assert.Equal(t, "relaxed", a.Mood.Name)
	assert.Less(t, a.Mood.Confidence, a.Genre.Confidence, "derived mood confidence should be discounted")
}

func TestDerive_CaseInsensitiveGenre(t *testing.T) {
	a := Derive("Jazz", 0.5)
	assert.Equal(t, "relaxed", a.Mood.Name)
}

func TestDerive_UnknownGenreGetsDefaults(t *testing.T) {
	a := Derive("shoegaze", 0.7)

	assert.Equal(t, "shoegaze", a.Genre.Name)
	assert.Equal(t, "neutral", a.Mood.Name)
	assert.Equal(t, 100, a.Tempo)
	assert.InDelta(t, 0.5, a.Energy, 1e-9)
	assert.InDelta(t, 0.5, a.Valence, 1e-9)
}

func TestDerive_ClampsConfidence(t *testing.T) {
	high := Derive("rock", 1.4)
	assert.InDelta(t, 1.0, high.Genre.Confidence, 1e-9)

	low := Derive("rock", -0.3)
	assert.InDelta(t, 0.0, low.Genre.Confidence, 1e-9)
	assert.InDelta(t, 0.0, low.Mood.Confidence, 1e-9)
}

func TestMoodForGenre_CoversKnownLabelSet(t *testing.T) {
	for _, genre := range []string{
		"blues", "classical", "country", "disco", "hiphop",
		"jazz", "metal", "pop", "reggae", "rock",
	} {
		assert.NotEqual(t, "neutral", MoodForGenre(genre), "genre %s should have a dedicated mood", genre)
	}
}
