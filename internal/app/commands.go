package app

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lvasse/encore/internal/capture"
	"github.com/lvasse/encore/internal/notify"
	"github.com/lvasse/encore/internal/stderr"
)

// meterRate matches the level monitor closely enough for a smooth bar
// without redrawing on every sample.
const meterRate = 100 * time.Millisecond

// MeterTickCmd returns a command that sends MeterTickMsg on the redraw cadence.
func MeterTickCmd() tea.Cmd {
	return tea.Tick(meterRate, func(t time.Time) tea.Msg {
		return MeterTickMsg(t)
	})
}

// StartCaptureCmd acquires the input device. It blocks until the device
// grants or denies access.
func (m Model) StartCaptureCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.session.Start(context.Background()); err != nil {
			return CaptureFailedMsg{Err: err}
		}
		return CaptureStartedMsg{}
	}
}

// WatchCaptureCmd waits for the session to deliver a finalized recording or
// a failure.
func (m Model) WatchCaptureCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case asset := <-m.assetCh:
			return CaptureDoneMsg{Asset: asset}
		case err := <-m.errCh:
			return CaptureFailedMsg{Err: err}
		}
	}
}

// ClassifyCmd submits the asset for full-track classification.
func (m Model) ClassifyCmd(asset capture.Asset) tea.Cmd {
	segmentDuration := m.cfg.GetBackendConfig().SegmentDuration
	return func() tea.Msg {
		result, err := m.classifier.ClassifyUpload(
			context.Background(),
			asset.SuggestedFilename,
			asset.Bytes,
			segmentDuration,
		)
		if err != nil {
			return ClassifyFailedMsg{Err: err}
		}
		return ClassifyDoneMsg{Result: result}
	}
}

// LoadFileCmd reads an audio file from disk as a submission asset.
func LoadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return FileLoadFailedMsg{Path: path, Err: err}
		}
		return CaptureDoneMsg{Asset: capture.Asset{
			Bytes:             data,
			MimeType:          mimeForExt(filepath.Ext(path)),
			SuggestedFilename: filepath.Base(path),
		}}
	}
}

// NotifyCmd sends a desktop notification, replacing the previous one.
func NotifyCmd(notifier notify.Notifier, title, body string, urgency notify.Urgency, replaces uint32) tea.Cmd {
	return func() tea.Msg {
		id, err := notifier.Notify(notify.Notification{
			Title:      title,
			Body:       body,
			Timeout:    5000,
			ReplacesID: replaces,
			Urgency:    urgency,
		})
		if err != nil {
			// Notifications are best effort
			return nil
		}
		return NotifiedMsg{ID: id}
	}
}

// WatchStderrCmd surfaces lines the audio backend writes to fd 2 so they do
// not corrupt the TUI.
func WatchStderrCmd() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-stderr.Messages
		if !ok {
			return nil
		}
		return StderrMsg{Line: line}
	}
}

func mimeForExt(ext string) string {
	switch ext {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".flac":
		return "audio/flac"
	case ".ogg":
		return "audio/ogg"
	case ".webm":
		return "audio/webm"
	case ".m4a", ".mp4":
		return "audio/mp4"
	default:
		return "application/octet-stream"
	}
}
