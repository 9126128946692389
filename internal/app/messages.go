// Package app contains the root TUI model and its messages.
package app

import (
	"time"

	"github.com/lvasse/encore/internal/capture"
	"github.com/lvasse/encore/internal/classify"
)

// MeterTickMsg drives the elapsed counter and level meter redraw while a
// recording is in progress.
type MeterTickMsg time.Time

// CaptureStartedMsg is sent when the input device grants access and the
// session enters Recording.
type CaptureStartedMsg struct{}

// CaptureFailedMsg is sent when device acquisition or recording fails.
type CaptureFailedMsg struct {
	Err error
}

// CaptureDoneMsg carries the finalized recording, from a stopped session or
// a file loaded from disk.
type CaptureDoneMsg struct {
	Asset capture.Asset
}

// FileLoadFailedMsg is sent when reading an audio file from disk fails.
type FileLoadFailedMsg struct {
	Path string
	Err  error
}

// ClassifyDoneMsg carries a successful classification response.
type ClassifyDoneMsg struct {
	Result *classify.Result
}

// ClassifyFailedMsg is sent when the classification request fails.
type ClassifyFailedMsg struct {
	Err error
}

// NotifiedMsg carries the ID of a sent desktop notification so the next one
// can replace it.
type NotifiedMsg struct {
	ID uint32
}

// StderrMsg carries a line an audio backend wrote to the real stderr.
type StderrMsg struct {
	Line string
}
