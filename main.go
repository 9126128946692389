package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lvasse/encore/internal/app"
	"github.com/lvasse/encore/internal/capture"
	"github.com/lvasse/encore/internal/catalog"
	"github.com/lvasse/encore/internal/classify"
	"github.com/lvasse/encore/internal/config"
	"github.com/lvasse/encore/internal/errmsg"
	"github.com/lvasse/encore/internal/identity"
	"github.com/lvasse/encore/internal/notify"
	"github.com/lvasse/encore/internal/preview"
	"github.com/lvasse/encore/internal/stderr"
)

// unconfiguredDevice reports a usable error until an input source is set up.
type unconfiguredDevice struct{}

func (unconfiguredDevice) Open(_ context.Context) (capture.Stream, error) {
	return nil, fmt.Errorf("%w: set capture.input_file in the config file",
		capture.ErrDeviceUnavailable)
}

func initialModel() (app.Model, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return app.Model{}, nil, err
	}

	backend := cfg.GetBackendConfig()

	var provider identity.Provider
	if cfg.HasIdentityConfig() {
		tc := identity.NewTokenClient(cfg.Identity.APIKey, cfg.Identity.RefreshToken)
		if cfg.Identity.TokenURL != "" {
			tc.SetEndpoint(cfg.Identity.TokenURL)
		}
		provider = tc
	}

	classifier := classify.NewClient(backend.URL, provider)
	classifier.SetTimeouts(
		time.Duration(backend.UploadTimeoutSeconds)*time.Second,
		time.Duration(backend.SegmentTimeoutSeconds)*time.Second,
	)

	var device capture.Device = unconfiguredDevice{}
	if path := cfg.GetCaptureConfig().InputFile; path != "" {
		device = &capture.FileDevice{Path: path}
	}

	db, err := catalog.Open()
	if err != nil {
		return app.Model{}, nil, err
	}
	cleanup := func() { db.Close() }

	notifier, err := notify.New()
	if err != nil {
		db.Close()
		return app.Model{}, nil, err
	}

	m, err := app.New(app.Deps{
		Config:     cfg,
		Device:     device,
		Classifier: classifier,
		Player:     preview.New(),
		Notifier:   notifier,
		Catalog:    db,
	})
	if err != nil {
		db.Close()
		return app.Model{}, nil, err
	}

	return m, cleanup, nil
}

func main() {
	// Capture ALSA noise before any audio initialization happens.
	_ = stderr.Start()
	defer stderr.Stop()

	m, cleanup, err := initialModel()
	if err != nil {
		stderr.WriteOriginal(errmsg.Format(errmsg.OpInitialize, err) + "\n")
		os.Exit(1)
	}
	defer cleanup()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		stderr.WriteOriginal(fmt.Sprintf("Error running program: %v\n", err))
		os.Exit(1)
	}
}
