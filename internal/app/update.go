package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lvasse/encore/internal/analysis"
	"github.com/lvasse/encore/internal/capture"
	"github.com/lvasse/encore/internal/classify"
	"github.com/lvasse/encore/internal/errmsg"
	"github.com/lvasse/encore/internal/notify"
	"github.com/lvasse/encore/internal/preview"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case MeterTickMsg:
		if m.session.State() == capture.Recording || m.session.State() == capture.Finalizing {
			return m, MeterTickCmd()
		}
		return m, nil

	case CaptureStartedMsg:
		m.status = ""
		m.statusErr = false
		return m, tea.Batch(MeterTickCmd(), m.WatchCaptureCmd())

	case CaptureFailedMsg:
		m.session.Acknowledge()
		m.status = errmsg.Format(errmsg.OpCaptureStart, msg.Err)
		m.statusErr = true
		return m, m.errorNotifyCmd("Recording failed", m.status)

	case CaptureDoneMsg:
		m.asset = msg.Asset
		if msg.Asset.Empty() {
			m.status = "Recording finished but captured no audio"
			m.statusErr = true
			return m, nil
		}
		m.status = fmt.Sprintf("Recording ready: %s", msg.Asset.SuggestedFilename)
		m.statusErr = false
		return m, nil

	case FileLoadFailedMsg:
		m.status = errmsg.FormatWith(errmsg.OpFileLoad, msg.Path, msg.Err)
		m.statusErr = true
		return m, m.errorNotifyCmd("File load failed", m.status)

	case ClassifyDoneMsg:
		m.classifying = false
		m.result = msg.Result
		m.analysis = analysis.Derive(
			msg.Result.OverallPrediction.PredictedGenre,
			msg.Result.OverallPrediction.Confidence,
		)
		m.playlist = m.generator.Generate(m.analysis.Genre.Name, m.analysis.Mood.Name)
		m.cursor = 0
		m.screen = ScreenResults
		m.status = ""
		m.statusErr = false

		var notifyCmd tea.Cmd
		if m.cfg.NotificationsEnabled() {
			body := fmt.Sprintf("%s (%.0f%%), mood %s",
				m.analysis.Genre.Name,
				m.analysis.Genre.Confidence*100,
				m.analysis.Mood.Name,
			)
			notifyCmd = NotifyCmd(m.notifier, "Classification complete", body, notify.UrgencyNormal, m.notifID)
		}
		return m, notifyCmd

	case ClassifyFailedMsg:
		m.classifying = false
		m.status = classifyErrorMessage(msg.Err)
		m.statusErr = true
		return m, m.errorNotifyCmd("Classification failed", m.status)

	case NotifiedMsg:
		m.notifID = msg.ID
		return m, nil

	case StderrMsg:
		m.status = msg.Line
		m.statusErr = false
		return m, WatchStderrCmd()

	case spinner.TickMsg:
		if !m.classifying {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode {
		return m.updateFileInput(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.player.Stop()
		return m, tea.Quit
	}

	if m.screen == ScreenResults {
		return m.updateResultsKey(msg)
	}
	return m.updateCaptureKey(msg)
}

func (m Model) updateCaptureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		switch m.session.State() {
		case capture.Idle:
			m.asset = capture.Asset{}
			m.result = nil
			m.status = "Requesting input device..."
			m.statusErr = false
			return m, m.StartCaptureCmd()
		case capture.Recording:
			if err := m.session.RequestStop(); err != nil {
				if errors.Is(err, capture.ErrMinimumDuration) {
					m.status = fmt.Sprintf("Keep going, recordings need at least %.0f seconds",
						m.session.MinDuration().Seconds())
					m.statusErr = true
					return m, nil
				}
				m.status = errmsg.Format(errmsg.OpCaptureStop, err)
				m.statusErr = true
			}
			return m, nil
		case capture.Failed:
			m.session.Acknowledge()
			return m, nil
		case capture.Acquiring, capture.Finalizing:
			// In-flight transitions resolve on their own
		}
		return m, nil

	case "o":
		m.inputMode = true
		m.fileInput.SetValue("")
		return m, m.fileInput.Focus()

	case "p":
		if m.player.State() != preview.Stopped {
			m.player.Toggle()
			return m, nil
		}
		if m.asset.Empty() {
			m.status = "Nothing to preview yet"
			m.statusErr = true
			return m, nil
		}
		if err := m.player.Play(m.asset); err != nil {
			m.status = errmsg.Format(errmsg.OpPreviewPlay, err)
			m.statusErr = true
		}
		return m, nil

	case "s":
		m.player.Stop()
		return m, nil

	case "enter", "u":
		if m.classifying {
			return m, nil
		}
		if m.asset.Empty() {
			m.status = "Record or load something first"
			m.statusErr = true
			return m, nil
		}
		m.classifying = true
		m.status = ""
		m.statusErr = false
		return m, tea.Batch(m.spin.Tick, m.ClassifyCmd(m.asset))
	}

	return m, nil
}

func (m Model) updateResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.screen = ScreenCapture
		return m, nil

	case "j", "down":
		if m.playlist != nil && m.cursor < m.playlist.Len()-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "x", "delete":
		if m.playlist == nil || m.playlist.Len() == 0 {
			return m, nil
		}
		tracks := m.playlist.Tracks()
		m.playlist.Remove(tracks[m.cursor].ID)
		if m.cursor >= m.playlist.Len() && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "a":
		if m.playlist == nil {
			return m, nil
		}
		added := m.generator.AddMore(m.playlist)
		if added == 0 {
			m.status = "No more tracks to suggest"
			m.statusErr = true
		} else {
			m.status = fmt.Sprintf("Added %d tracks", added)
			m.statusErr = false
		}
		return m, nil

	case "g":
		if m.playlist == nil {
			return m, nil
		}
		m.generator.Regenerate(m.playlist)
		m.cursor = 0
		m.status = "Playlist regenerated"
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) updateFileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputMode = false
		m.fileInput.Blur()
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.fileInput.Value())
		m.inputMode = false
		m.fileInput.Blur()
		if path == "" {
			return m, nil
		}
		return m, LoadFileCmd(path)
	}

	var cmd tea.Cmd
	m.fileInput, cmd = m.fileInput.Update(msg)
	return m, cmd
}

// errorNotifyCmd mirrors a surfaced error as a critical desktop
// notification when notifications are enabled.
func (m Model) errorNotifyCmd(title, body string) tea.Cmd {
	if !m.cfg.NotificationsEnabled() {
		return nil
	}
	return NotifyCmd(m.notifier, title, body, notify.UrgencyCritical, m.notifID)
}

// classifyErrorMessage maps classification failures to actionable wording.
func classifyErrorMessage(err error) string {
	switch {
	case errors.Is(err, classify.ErrUnauthenticated):
		return "Sign-in required: add identity credentials to the config file"
	case errors.Is(err, classify.ErrEmptyAsset):
		return "The recording is empty, try again"
	case errors.Is(err, classify.ErrTimeout):
		return "The classification service took too long, try again"
	default:
		return errmsg.Format(errmsg.OpClassifyUpload, err)
	}
}
