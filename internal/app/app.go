package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lvasse/encore/internal/analysis"
	"github.com/lvasse/encore/internal/capture"
	"github.com/lvasse/encore/internal/catalog"
	"github.com/lvasse/encore/internal/classify"
	"github.com/lvasse/encore/internal/config"
	"github.com/lvasse/encore/internal/notify"
	"github.com/lvasse/encore/internal/preview"
	"github.com/lvasse/encore/internal/suggest"
	"github.com/lvasse/encore/internal/ui/styles"
)

// Screen selects which main view is shown.
type Screen int

const (
	ScreenCapture Screen = iota
	ScreenResults
)

// Model is the root application model containing all state.
type Model struct {
	cfg        *config.Config
	session    *capture.Session
	classifier *classify.Client
	player     preview.Interface
	notifier   notify.Notifier
	generator  *suggest.Generator

	screen      Screen
	fileInput   textinput.Model
	inputMode   bool
	spin        spinner.Model
	classifying bool

	asset    capture.Asset
	result   *classify.Result
	analysis analysis.Analysis
	playlist *suggest.Playlist
	cursor   int

	status    string
	statusErr bool
	notifID   uint32

	// session callbacks forward completions here
	assetCh chan capture.Asset
	errCh   chan error

	width  int
	height int
}

// Deps are the services the model operates on. Interfaces are accepted so
// tests can substitute fakes.
type Deps struct {
	Config     *config.Config
	Device     capture.Device
	Classifier *classify.Client
	Player     preview.Interface
	Notifier   notify.Notifier
	Catalog    catalog.Catalog
}

// New creates the root model from its dependencies.
func New(deps Deps) (Model, error) {
	capCfg := deps.Config.GetCaptureConfig()
	session := capture.NewSession(deps.Device, capture.Config{
		MinDuration:   secondsToDuration(capCfg.MinDurationSeconds),
		GracePeriod:   msToDuration(capCfg.GracePeriodMS),
		LevelInterval: msToDuration(capCfg.LevelIntervalMS),
	})

	tracks, err := deps.Catalog.Tracks()
	if err != nil {
		return Model{}, err
	}
	sugCfg := deps.Config.GetSuggestConfig()
	generator := suggest.New(tracks, suggest.Config{
		ListSize:     sugCfg.ListSize,
		AddBatchSize: sugCfg.AddBatchSize,
	})

	input := textinput.New()
	input.Placeholder = "path to an audio file"
	input.Prompt = "> "

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.T().S().Accent

	m := Model{
		cfg:        deps.Config,
		session:    session,
		classifier: deps.Classifier,
		player:     deps.Player,
		notifier:   deps.Notifier,
		generator:  generator,
		fileInput:  input,
		spin:       spin,
		assetCh:    make(chan capture.Asset, 1),
		errCh:      make(chan error, 1),
	}

	session.OnComplete(func(a capture.Asset) {
		m.assetCh <- a
	})
	session.OnError(func(err error) {
		m.errCh <- err
	})

	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return WatchStderrCmd()
}

// Session exposes the capture session, mainly for tests.
func (m Model) Session() *capture.Session {
	return m.session
}

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
