package classify

// Result is the classification response for a full track, mirroring the
// backend wire format.
type Result struct {
	OverallPrediction  OverallPrediction   `json:"overall_prediction"`
	TrackInfo          TrackInfo           `json:"track_info"`
	SegmentPredictions []SegmentPrediction `json:"segment_predictions"`
	GenreVotes         map[string]int      `json:"genre_votes"`
	FileInfo           FileInfo            `json:"file_info"`
}

// OverallPrediction is the majority-vote prediction across all segments.
type OverallPrediction struct {
	PredictedGenre    string             `json:"predicted_genre"`
	Confidence        float64            `json:"confidence"`
	GenreDistribution map[string]float64 `json:"genre_distribution"`
}

// TrackInfo describes how the track was segmented for analysis.
type TrackInfo struct {
	Duration            float64 `json:"duration"` // seconds
	NumSegmentsAnalyzed int     `json:"num_segments_analyzed"`
	SegmentDuration     int     `json:"segment_duration"` // seconds
}

// SegmentPrediction is the classification of a single segment.
type SegmentPrediction struct {
	PredictedGenre     string             `json:"predicted_genre"`
	Confidence         float64            `json:"confidence"`
	StartTime          float64            `json:"start_time"` // seconds
	Duration           float64            `json:"duration"`   // seconds
	GenreProbabilities map[string]float64 `json:"genre_probabilities"`
}

// FileInfo echoes back details of the submitted file.
type FileInfo struct {
	Filename string `json:"filename"`
	FileSize int64  `json:"file_size"`
	UserID   string `json:"user_id"`
}

// FormatsInfo lists what the backend accepts.
type FormatsInfo struct {
	SupportedFormats       []string `json:"supported_formats"`
	MaxFileSize            string   `json:"max_file_size"`
	MaxSegmentDuration     int      `json:"max_segment_duration"`
	DefaultSegmentDuration int      `json:"default_segment_duration"`
	Note                   string   `json:"note"`
}

// GenreInfo lists the labels the backend can predict.
type GenreInfo struct {
	Genres      []string `json:"genres"`
	TotalGenres int      `json:"total_genres"`
	ModelType   string   `json:"model_type"`
	Note        string   `json:"note"`
}
