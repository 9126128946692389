package preview

import (
	"time"

	"github.com/lvasse/encore/internal/capture"
)

// Mock is a test double for Player.
type Mock struct {
	state     State
	position  time.Duration
	duration  time.Duration
	playErr   error
	playCalls []capture.Asset
	done      chan struct{}
}

// NewMock creates a new mock preview player for testing.
func NewMock() *Mock {
	return &Mock{
		state: Stopped,
		done:  make(chan struct{}),
	}
}

func (m *Mock) Play(asset capture.Asset) error {
	m.playCalls = append(m.playCalls, asset)
	if m.playErr != nil {
		return m.playErr
	}
	m.state = Playing
	return nil
}

func (m *Mock) Stop() { m.state = Stopped }

func (m *Mock) Toggle() {
	switch m.state {
	case Playing:
		m.state = Paused
	case Paused:
		m.state = Playing
	case Stopped:
		// Nothing to toggle when stopped
	}
}

func (m *Mock) State() State { return m.state }

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) Duration() time.Duration { return m.duration }

func (m *Mock) Done() <-chan struct{} { return m.done }

// Test helpers

func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) PlayCalls() []capture.Asset { return m.playCalls }

func (m *Mock) SetPosition(d time.Duration) { m.position = d }

func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

// SimulateFinished simulates a preview reaching the end.
func (m *Mock) SimulateFinished() {
	m.state = Stopped
	close(m.done)
	m.done = make(chan struct{})
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
