// Package analysis shapes raw classification output into the display-ready
// analysis result.
//
// The classification backend only predicts a genre. Mood, tempo, energy and
// valence are derived client-side from static per-genre tables; they are
// presentation placeholders, not measured signal.
package analysis

import "strings"

// Label pairs a prediction label with its confidence.
type Label struct {
	Name       string
	Confidence float64
}

// Analysis is the UI-facing result of one classification.
type Analysis struct {
	Genre Label
	Mood  Label

	// Placeholder features, looked up per genre.
	Tempo   int     // beats per minute
	Energy  float64 // 0..1
	Valence float64 // 0..1
}

// moodConfidenceScale discounts the mood confidence relative to the genre
// confidence, since the mood is a lookup rather than a prediction.
const moodConfidenceScale = 0.92

// features holds the placeholder feature row for a genre.
type features struct {
	mood    string
	tempo   int
	energy  float64
	valence float64
}

// genreFeatures maps the backend's predictable genres (GTZAN label set) to
// their derived mood and placeholder features.
var genreFeatures = map[string]features{
	"blues":     {mood: "melancholic", tempo: 84, energy: 0.45, valence: 0.35},
	"classical": {mood: "dreamy", tempo: 90, energy: 0.30, valence: 0.50},
	"country":   {mood: "heartfelt", tempo: 110, energy: 0.55, valence: 0.60},
	"disco":     {mood: "groovy", tempo: 120, energy: 0.80, valence: 0.85},
	"hiphop":    {mood: "confident", tempo: 95, energy: 0.75, valence: 0.55},
	"jazz":      {mood: "relaxed", tempo: 105, energy: 0.40, valence: 0.55},
	"metal":     {mood: "intense", tempo: 140, energy: 0.95, valence: 0.30},
	"pop":       {mood: "happy", tempo: 118, energy: 0.70, valence: 0.75},
	"reggae":    {mood: "peaceful", tempo: 80, energy: 0.50, valence: 0.70},
	"rock":      {mood: "energetic", tempo: 125, energy: 0.85, valence: 0.60},
}

// defaultFeatures is used for genres outside the known label set.
var defaultFeatures = features{mood: "neutral", tempo: 100, energy: 0.5, valence: 0.5}

// MoodForGenre returns the derived mood label for a genre.
func MoodForGenre(genre string) string {
	if f, ok := genreFeatures[strings.ToLower(genre)]; ok {
		return f.mood
	}
	return defaultFeatures.mood
}

// Derive builds the display analysis from a predicted genre and its
// confidence.
func Derive(genre string, confidence float64) Analysis {
	f, ok := genreFeatures[strings.ToLower(genre)]
	if !ok {
		f = defaultFeatures
	}

	return Analysis{
		Genre: Label{Name: genre, Confidence: clamp01(confidence)},
		Mood:  Label{Name: f.mood, Confidence: clamp01(confidence * moodConfidenceScale)},

		Tempo:   f.tempo,
		Energy:  f.energy,
		Valence: f.valence,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
