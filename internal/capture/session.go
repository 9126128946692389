// Package capture owns the recording lifecycle: microphone acquisition,
// live level metering, minimum-duration gating and finalization of captured
// audio into a submittable asset.
package capture

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// State is the capture session lifecycle state.
type State int

const (
	Idle State = iota
	Acquiring
	Recording
	Finalizing
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Acquiring:
		return "acquiring"
	case Recording:
		return "recording"
	case Finalizing:
		return "finalizing"
	case Failed:
		return "error"
	}
	return "unknown"
}

// Session operation errors.
var (
	// ErrMinimumDuration is a policy rejection, not a failure: the session
	// keeps recording.
	ErrMinimumDuration = errors.New("minimum recording duration not reached")

	ErrNotIdle      = errors.New("capture session already in progress")
	ErrNotRecording = errors.New("capture session is not recording")

	// ErrCaptureBusy means another session holds the input device.
	ErrCaptureBusy = errors.New("another recording is in progress")
)

// recordingSlot enforces the process-wide single-active-recording rule. The
// input device is exclusively owned and must be released before a new
// session may acquire it.
var recordingSlot atomic.Bool

// Config holds the capture policy knobs.
type Config struct {
	// MinDuration is the shortest recording that may be stopped.
	MinDuration time.Duration
	// GracePeriod is the forced-completion delay used when the stream never
	// became active.
	GracePeriod time.Duration
	// LevelInterval is the level-monitor sampling cadence.
	LevelInterval time.Duration
}

// DefaultConfig returns the standard capture policy.
func DefaultConfig() Config {
	return Config{
		MinDuration:   30 * time.Second,
		GracePeriod:   100 * time.Millisecond,
		LevelInterval: 16 * time.Millisecond, // ~60 Hz
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinDuration <= 0 {
		c.MinDuration = d.MinDuration
	}
	if c.GracePeriod <= 0 {
		c.GracePeriod = d.GracePeriod
	}
	if c.LevelInterval <= 0 {
		c.LevelInterval = d.LevelInterval
	}
	return c
}

// Session is one recording attempt's state machine. All mutations go through
// the session mutex; getters are safe from any goroutine. UI layers poll the
// getters and receive completion and failure through the callbacks.
type Session struct {
	mu  sync.Mutex
	cfg Config

	device Device

	state   State
	elapsed int // whole seconds while Recording
	level   float64
	lastErr error

	stream  Stream
	chunks  [][]byte
	stop    chan struct{} // closed when leaving Recording
	drained chan struct{} // closed when the chunk collector exits
	release *sync.Once

	onComplete func(Asset)
	onError    func(error)
}

// NewSession creates a session over the given input device.
func NewSession(device Device, cfg Config) *Session {
	return &Session{
		device: device,
		cfg:    cfg.withDefaults(),
		state:  Idle,
	}
}

// OnComplete registers the completion callback, invoked with exactly one
// asset per accepted stop.
func (s *Session) OnComplete(fn func(Asset)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onComplete = fn
}

// OnError registers the failure callback. Acquisition errors are reported
// once and are not retried.
func (s *Session) OnError(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = fn
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Elapsed returns whole seconds recorded so far.
func (s *Session) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Level returns the latest normalized input level in [0,1]. Meaningful only
// while Recording.
func (s *Session) Level() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// LastError returns the most recent failure, if any.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// MinDuration returns the stop-gating threshold.
func (s *Session) MinDuration() time.Duration {
	return s.cfg.MinDuration
}

// CanStop reports whether a stop request would currently be honored.
func (s *Session) CanStop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == Recording && time.Duration(s.elapsed)*time.Second >= s.cfg.MinDuration
}

// Start acquires the input device and begins recording. It suspends until
// the device grants or denies access (cancellable via ctx) and returns the
// acquisition error, if any. Callers typically run it off the UI loop.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return ErrNotIdle
	}
	if !recordingSlot.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return ErrCaptureBusy
	}
	s.state = Acquiring
	s.lastErr = nil
	device := s.device
	s.mu.Unlock()

	stream, err := device.Open(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.stream = stream
	s.chunks = nil
	s.elapsed = 0
	s.level = 0
	s.lastErr = nil
	s.state = Recording
	s.stop = make(chan struct{})
	s.drained = make(chan struct{})
	s.release = new(sync.Once)
	stopped := s.stop
	drained := s.drained
	s.mu.Unlock()

	go s.collect(stream, drained)
	go s.tickLoop(stopped)
	go s.monitorLoop(stream, stopped)

	return nil
}

// RequestStop asks the session to finish recording. Below the minimum
// duration the request is rejected and the session keeps recording; above
// it, finalization begins and the completion callback will deliver exactly
// one asset.
func (s *Session) RequestStop() error {
	s.mu.Lock()
	if s.state != Recording {
		s.mu.Unlock()
		return ErrNotRecording
	}
	if time.Duration(s.elapsed)*time.Second < s.cfg.MinDuration {
		s.mu.Unlock()
		return ErrMinimumDuration
	}

	s.state = Finalizing
	close(s.stop)
	s.level = 0
	stream := s.stream
	drained := s.drained
	s.mu.Unlock()

	go s.finalize(stream, drained)
	return nil
}

// Acknowledge clears a failure and returns the session to Idle so it can be
// started again.
func (s *Session) Acknowledge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Failed {
		s.state = Idle
	}
}

// collect buffers chunks until the stream's channel closes.
func (s *Session) collect(stream Stream, drained chan struct{}) {
	defer close(drained)
	for chunk := range stream.Chunks() {
		s.mu.Lock()
		if s.state == Recording || s.state == Finalizing {
			s.chunks = append(s.chunks, chunk)
		}
		s.mu.Unlock()
	}
}

// tickLoop advances the elapsed counter once per second while Recording.
func (s *Session) tickLoop(stopped <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopped:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.state != Recording {
				s.mu.Unlock()
				return
			}
			s.elapsed++
			s.mu.Unlock()
		}
	}
}

// fail transitions to the Failed state and reports the error once.
func (s *Session) fail(err error) {
	s.mu.Lock()
	s.state = Failed
	s.lastErr = err
	cb := s.onError
	s.mu.Unlock()

	recordingSlot.Store(false)

	if cb != nil {
		cb(err)
	}
}
