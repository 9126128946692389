package capture

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// FileDevice replays an audio file as if it were a live input: bytes arrive
// in real-time paced chunks and the level monitor sees spectra computed from
// the decoded samples. It stands in for a microphone on machines without
// one and in manual testing.
type FileDevice struct {
	Path string
	// ChunkInterval is how often a chunk of file bytes is emitted.
	// Defaults to one second, matching typical recorder timeslices.
	ChunkInterval time.Duration
}

// Open decodes the file and starts the playback clock. It fails with
// ErrDeviceUnavailable when the file is missing or not a supported format.
func (d *FileDevice) Open(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(d.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDeviceUnavailable, err)
	}

	f, err := os.Open(d.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDeviceUnavailable, err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		mimeType string
	)
	switch strings.ToLower(filepath.Ext(d.Path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
		mimeType = "audio/wav"
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
		mimeType = "audio/mpeg"
	case ".flac":
		streamer, format, err = flac.Decode(f)
		mimeType = "audio/flac"
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
		mimeType = "audio/ogg"
	default:
		f.Close()
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrDeviceUnavailable, filepath.Ext(d.Path))
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: decode: %s", ErrDeviceUnavailable, err)
	}

	interval := d.ChunkInterval
	if interval <= 0 {
		interval = time.Second
	}

	fs := &fileStream{
		data:     data,
		mimeType: mimeType,
		streamer: streamer,
		format:   format,
		chunks:   make(chan []byte, 8),
		done:     make(chan struct{}),
	}

	// Bytes per interval, derived from the file's total play time so the
	// replay finishes when the audio would.
	total := format.SampleRate.D(streamer.Len())
	if total <= 0 {
		total = time.Second
	}
	fs.chunkSize = int(float64(len(data)) * float64(interval) / float64(total))
	if fs.chunkSize < 1 {
		fs.chunkSize = len(data)
	}

	go fs.run(interval)
	return fs, nil
}

type fileStream struct {
	data      []byte
	mimeType  string
	chunkSize int

	streamer beep.StreamSeekCloser
	format   beep.Format

	chunks chan []byte
	done   chan struct{}

	mu     sync.Mutex
	offset int
	closed bool
}

func (s *fileStream) MimeType() string      { return s.mimeType }
func (s *fileStream) Chunks() <-chan []byte { return s.chunks }

func (s *fileStream) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.offset < len(s.data)
}

func (s *fileStream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	close(s.done)
	return s.streamer.Close()
}

// run emits file bytes at the replay pace until drained or closed, then
// closes the chunk channel so collectors can finish.
func (s *fileStream) run(interval time.Duration) {
	defer close(s.chunks)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			// Flush whatever remains so a short recording still yields the
			// bytes captured up to the close.
			s.flush()
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.offset >= len(s.data) {
				s.mu.Unlock()
				return
			}
			end := s.offset + s.chunkSize
			if end > len(s.data) {
				end = len(s.data)
			}
			chunk := s.data[s.offset:end]
			s.offset = end
			s.mu.Unlock()

			select {
			case s.chunks <- chunk:
			case <-s.done:
				return
			}
		}
	}
}

func (s *fileStream) flush() {
	s.mu.Lock()
	tail := s.data[s.offset:]
	s.offset = len(s.data)
	s.mu.Unlock()

	// The collector drains until the chunk channel closes, so a blocking
	// send here cannot wedge even when the buffer is full.
	if len(tail) > 0 {
		s.chunks <- tail
	}
}

// magnitudeWindow is the number of decoded samples fed into each spectrum
// estimate.
const magnitudeWindow = 512

// Magnitudes fills bins with byte-scale magnitudes derived from the next
// window of decoded samples. A closed or drained stream reports no signal.
func (s *fileStream) Magnitudes(bins []float64) int {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	samples := make([][2]float64, magnitudeWindow)
	n, _ := s.streamer.Stream(samples)
	s.mu.Unlock()
	if n == 0 {
		return 0
	}

	mono := make([]float64, n)
	for i := 0; i < n; i++ {
		mono[i] = (samples[i][0] + samples[i][1]) / 2
	}
	return spectrum(mono, bins)
}

// spectrum computes a coarse DFT magnitude per bin, scaled to the byte
// range used by browser analyser nodes.
func spectrum(samples []float64, bins []float64) int {
	if len(samples) == 0 || len(bins) == 0 {
		return 0
	}
	n := len(samples)
	for b := range bins {
		// One representative frequency per bin, spread over the low half of
		// the spectrum where music energy concentrates.
		k := (b + 1) * n / (2 * len(bins))
		if k < 1 {
			k = 1
		}
		var re, im float64
		for t, v := range samples {
			angle := 2 * math.Pi * float64(k) * float64(t) / float64(n)
			re += v * math.Cos(angle)
			im -= v * math.Sin(angle)
		}
		mag := 255 * 2 * math.Sqrt(re*re+im*im) / float64(n)
		if mag > 255 {
			mag = 255
		}
		bins[b] = mag
	}
	return len(bins)
}
