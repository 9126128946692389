package capture

import "time"

// monitorBins is the number of frequency magnitude buckets sampled per
// reading.
const monitorBins = 32

// monitorLoop samples the stream's magnitude data at the configured cadence
// and publishes the normalized level until the session leaves Recording.
func (s *Session) monitorLoop(stream Stream, stopped <-chan struct{}) {
	ticker := time.NewTicker(s.cfg.LevelInterval)
	defer ticker.Stop()

	bins := make([]float64, monitorBins)
	for {
		select {
		case <-stopped:
			return
		case <-ticker.C:
			level := sampleLevel(stream, bins)
			s.mu.Lock()
			if s.state != Recording {
				s.mu.Unlock()
				return
			}
			s.level = level
			s.mu.Unlock()
		}
	}
}

// sampleLevel reads one magnitude snapshot and normalizes it: the mean of
// the byte-scale magnitudes divided by 128, clamped to [0,1]. An inactive
// stream yields zero.
func sampleLevel(stream Stream, bins []float64) float64 {
	n := stream.Magnitudes(bins)
	if n == 0 {
		return 0
	}
	var sum float64
	for _, m := range bins[:n] {
		sum += m
	}
	level := sum / float64(n) / 128
	if level > 1 {
		level = 1
	}
	if level < 0 {
		level = 0
	}
	return level
}
