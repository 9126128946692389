package app

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/lvasse/encore/internal/capture"
	"github.com/lvasse/encore/internal/keymap"
	"github.com/lvasse/encore/internal/preview"
	"github.com/lvasse/encore/internal/ui/levelbar"
	"github.com/lvasse/encore/internal/ui/styles"
)

const meterWidth = 40

// View implements tea.Model.
func (m Model) View() string {
	t := styles.T()
	var b strings.Builder

	title := styles.ApplyGradient("encore", t.Primary, t.Secondary)
	b.WriteString("  " + title + "  " + t.S().Muted.Render("record, classify, discover") + "\n\n")

	switch m.screen {
	case ScreenCapture:
		b.WriteString(m.captureView())
	case ScreenResults:
		b.WriteString(m.resultsView())
	}

	if m.status != "" {
		style := t.S().Muted
		if m.statusErr {
			style = t.S().Error
		}
		b.WriteString("\n  " + style.Render(m.status) + "\n")
	}

	b.WriteString("\n  " + t.S().Subtle.Render(m.helpLine()) + "\n")
	return b.String()
}

func (m Model) captureView() string {
	t := styles.T()
	var b strings.Builder

	switch m.session.State() {
	case capture.Idle:
		if m.asset.Empty() {
			b.WriteString("  " + t.S().Base.Render("Press r to start recording") + "\n")
		} else {
			b.WriteString("  " + t.S().Success.Render("● recording ready") + "\n")
			b.WriteString(fmt.Sprintf("  %s (%s)\n",
				t.S().Base.Render(m.asset.SuggestedFilename),
				t.S().Muted.Render(humanize.Bytes(uint64(len(m.asset.Bytes)))),
			))
			if m.player.State() != preview.Stopped {
				b.WriteString("  " + m.previewLine() + "\n")
			}
		}

	case capture.Acquiring:
		b.WriteString("  " + t.S().Warning.Render("waiting for input device...") + "\n")

	case capture.Recording:
		elapsed := m.session.Elapsed()
		b.WriteString(fmt.Sprintf("  %s %s\n",
			t.S().Recording.Render("● REC"),
			t.S().Title.Render(formatSeconds(elapsed)),
		))
		b.WriteString("  " + levelbar.Render(m.session.Level(), meterWidth) + "\n")
		if !m.session.CanStop() {
			remaining := int(m.session.MinDuration().Seconds()) - elapsed
			b.WriteString("  " + t.S().Muted.Render(
				fmt.Sprintf("stoppable in %ds", remaining)) + "\n")
		} else {
			b.WriteString("  " + t.S().Muted.Render("press r to stop") + "\n")
		}

	case capture.Finalizing:
		b.WriteString("  " + t.S().Warning.Render("finalizing recording...") + "\n")

	case capture.Failed:
		b.WriteString("  " + t.S().Error.Render("recording failed, press r to reset") + "\n")
	}

	if m.classifying {
		b.WriteString("\n  " + m.spin.View() + t.S().Base.Render(" classifying...") + "\n")
	}

	if m.inputMode {
		b.WriteString("\n  " + t.S().Base.Render("Load audio file:") + "\n")
		b.WriteString("  " + m.fileInput.View() + "\n")
	}

	return b.String()
}

func (m Model) resultsView() string {
	t := styles.T()
	var b strings.Builder

	if m.result == nil {
		return "  " + t.S().Muted.Render("no result yet") + "\n"
	}

	b.WriteString(fmt.Sprintf("  %s %s\n",
		t.S().Title.Render(capitalize(m.analysis.Genre.Name)),
		t.S().Muted.Render(fmt.Sprintf("%.0f%% confidence", m.analysis.Genre.Confidence*100)),
	))
	b.WriteString(fmt.Sprintf("  mood %s   tempo %d bpm   energy %.0f%%   valence %.0f%%\n",
		t.S().Accent.Render(m.analysis.Mood.Name),
		m.analysis.Tempo,
		m.analysis.Energy*100,
		m.analysis.Valence*100,
	))
	b.WriteString("  " + t.S().Subtle.Render(fmt.Sprintf(
		"%d segments analyzed over %s",
		m.result.TrackInfo.NumSegmentsAnalyzed,
		formatSeconds(int(m.result.TrackInfo.Duration)),
	)) + "\n\n")

	if m.playlist != nil {
		var list strings.Builder
		list.WriteString(t.S().Title.Render(m.playlist.Name) + "\n")
		for i, track := range m.playlist.Tracks() {
			line := fmt.Sprintf("%s - %s", track.Artist, track.Title)
			meta := fmt.Sprintf(" [%s/%s]", track.Genre, track.Mood)
			if i == m.cursor {
				list.WriteString(t.S().Cursor.Render("> "+line) + t.S().Subtle.Render(meta) + "\n")
			} else {
				list.WriteString("  " + t.S().Base.Render(line) + t.S().Subtle.Render(meta) + "\n")
			}
		}
		panel := styles.PanelStyle(true).Padding(0, 1).Render(strings.TrimRight(list.String(), "\n"))
		b.WriteString(panel + "\n")
	}

	return b.String()
}

func (m Model) previewLine() string {
	t := styles.T()
	status := "▶"
	if m.player.State() == preview.Paused {
		status = "⏸"
	}
	return fmt.Sprintf("%s %s / %s",
		status,
		t.S().Base.Render(formatSeconds(int(m.player.Position().Seconds()))),
		t.S().Muted.Render(formatSeconds(int(m.player.Duration().Seconds()))),
	)
}

func (m Model) helpLine() string {
	switch {
	case m.inputMode:
		return keymap.Line("input")
	case m.screen == ScreenResults:
		return keymap.Line("results")
	case m.session.State() == capture.Recording:
		return keymap.Line("recording")
	default:
		return keymap.Line("capture")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
