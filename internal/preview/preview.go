// Package preview plays back a finalized recording so the user can check
// what was captured before submitting it for classification.
package preview

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/lvasse/encore/internal/capture"
)

type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// Interface defines the preview contract for dependency injection and testing.
type Interface interface {
	Play(asset capture.Asset) error
	Stop()
	Toggle()
	State() State
	Position() time.Duration
	Duration() time.Duration
	Done() <-chan struct{}
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)

// Player decodes an in-memory asset and plays it on the default output.
type Player struct {
	state    State
	ctrl     *beep.Ctrl
	streamer beep.StreamSeekCloser
	format   beep.Format
	duration time.Duration
	done     chan struct{}
}

var (
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

func New() *Player {
	return &Player{
		state: Stopped,
		done:  make(chan struct{}),
	}
}

// Play starts playback of the asset, stopping any preview in progress.
func (p *Player) Play(asset capture.Asset) error {
	p.Stop()

	if asset.Empty() {
		return fmt.Errorf("nothing recorded yet")
	}

	streamer, format, err := decode(asset)
	if err != nil {
		return fmt.Errorf("decode recording: %w", err)
	}

	if !speakerInitialized {
		speakerSampleRate = format.SampleRate
		if err := speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			return err
		}
		speakerInitialized = true
	}

	p.streamer = streamer
	p.format = format
	p.duration = format.SampleRate.D(streamer.Len())

	// Resample if the recording's sample rate differs from the speaker's
	var playStreamer beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		playStreamer = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}
	p.ctrl = &beep.Ctrl{Streamer: playStreamer, Paused: false}

	p.state = Playing
	p.done = make(chan struct{})
	done := p.done

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		close(done)
	})))

	return nil
}

// Stop halts playback and releases the decoder.
func (p *Player) Stop() {
	if p.state == Stopped {
		return
	}

	speaker.Clear()

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	p.ctrl = nil
	p.duration = 0
	p.state = Stopped
}

// Toggle pauses or resumes playback.
func (p *Player) Toggle() {
	if p.ctrl == nil {
		return
	}
	switch p.state {
	case Playing:
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
		p.state = Paused
	case Paused:
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
		p.state = Playing
	case Stopped:
		// Nothing to toggle when stopped
	}
}

func (p *Player) State() State { return p.state }

func (p *Player) Position() time.Duration {
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos
}

func (p *Player) Duration() time.Duration { return p.duration }

// Done is closed when the current preview reaches the end.
func (p *Player) Done() <-chan struct{} { return p.done }

type nopCloser struct {
	io.ReadSeeker
}

func (nopCloser) Close() error { return nil }

func decode(asset capture.Asset) (beep.StreamSeekCloser, beep.Format, error) {
	data := asset.Bytes
	r := nopCloser{bytes.NewReader(data)}

	switch normalizeMime(asset.MimeType) {
	case "audio/wav":
		return wav.Decode(nopCloser{bytes.NewReader(patchWAVSizes(data))})
	case "audio/mpeg":
		return mp3.Decode(r)
	case "audio/flac":
		return flac.Decode(r)
	case "audio/ogg":
		return vorbis.Decode(r)
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported recording type %q", asset.MimeType)
	}
}

func normalizeMime(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	switch mimeType {
	case "audio/wave", "audio/x-wav":
		return "audio/wav"
	}
	return mimeType
}
