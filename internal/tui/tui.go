package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/mmed-hajnasr/do-me/internal/config"
	"github.com/mmed-hajnasr/do-me/internal/dispatch"
	"github.com/mmed-hajnasr/do-me/internal/keymap"
	"github.com/mmed-hajnasr/do-me/internal/store"
)

type Options struct {
	Store dispatch.Storage
	// DataDir holds tui_state.json. Empty disables state persistence.
	DataDir string
	Config  *config.Config
	Keymap  *keymap.Keymap
	Logger  *log.Logger
}

// Run starts the interactive UI and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("tui: no store")
	}
	applyColorProfilePreference()
	applyThemePreference()

	st, err := store.LoadTUIState(opts.DataDir)
	if err != nil {
		if opts.Logger != nil {
			opts.Logger.Warn("ignoring tui state", "err", err)
		}
		st = &store.TUIState{Version: 1}
	}

	m, err := newAppModel(ctx, appOptions{
		Storage: opts.Store,
		Config:  opts.Config,
		Keymap:  opts.Keymap,
		Logger:  opts.Logger,
		State:   st,
	})
	if err != nil {
		return err
	}

	_, runErr := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err := store.SaveTUIState(opts.DataDir, m.state()); err != nil && opts.Logger != nil {
		opts.Logger.Warn("saving tui state", "err", err)
	}
	if m.err != nil {
		return m.err
	}
	return runErr
}
