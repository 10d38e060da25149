package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/mmed-hajnasr/do-me/internal/action"
	"github.com/mmed-hajnasr/do-me/internal/config"
	"github.com/mmed-hajnasr/do-me/internal/dispatch"
	"github.com/mmed-hajnasr/do-me/internal/keymap"
	"github.com/mmed-hajnasr/do-me/internal/model"
	"github.com/mmed-hajnasr/do-me/internal/store"
)

type tickMsg struct{}

type frameMsg struct{}

func every(rate float64, msg tea.Msg) tea.Cmd {
	if rate <= 0 {
		return nil
	}
	return tea.Tick(time.Duration(float64(time.Second)/rate), func(time.Time) tea.Msg { return msg })
}

// appModel is the bubbletea model. It turns terminal messages into actions, drains
// the dispatcher after each one and draws the registered components.
type appModel struct {
	ctx context.Context
	d   *dispatch.Dispatcher
	log *log.Logger

	tickRate  float64
	frameRate float64

	workspaces *workspacesComponent
	tasks      *tasksComponent
	menu       *sortMenu
	status     *statusBar

	suspended bool
	err       error
}

type appOptions struct {
	Storage dispatch.Storage
	Config  *config.Config
	Keymap  *keymap.Keymap
	Logger  *log.Logger
	State   *store.TUIState
}

func newAppModel(ctx context.Context, opts appOptions) (*appModel, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	km := opts.Keymap
	if km == nil {
		km = keymap.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	st := opts.State
	if st == nil {
		st = &store.TUIState{Version: 1}
	}

	th := newTheme(cfg.Styles)
	m := &appModel{
		ctx:        ctx,
		log:        logger,
		tickRate:   cfg.TickRate,
		frameRate:  cfg.FrameRate,
		workspaces: newWorkspacesComponent(th),
		tasks:      newTasksComponent(th),
		menu:       newSortMenu(th),
		status:     newStatusBar(th, km),
	}
	focus := action.Workspaces
	if st.Focus == action.Tasks.String() {
		focus = action.Tasks
	}
	m.restore(st)

	m.d = dispatch.New(dispatch.Options{Keymap: km, Logger: logger, Focus: focus})
	m.d.Register(action.Workspaces, m.workspaces)
	m.d.Register(action.Tasks, m.tasks)
	m.d.Register(action.SortMenu, m.menu)
	m.d.Register(action.StatusBar, m.status)
	m.d.RegisterStorage(opts.Storage)

	if err := m.d.Init(); err != nil {
		return nil, err
	}
	if err := m.d.Drain(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// restore seeds the components from the state saved by the previous session.
func (m *appModel) restore(st *store.TUIState) {
	for _, k := range model.WorkspaceSortKeys {
		if string(k) == st.WorkspaceSort.Key {
			s := model.WorkspaceSorter{Key: k, Desc: st.WorkspaceSort.Desc}
			m.workspaces.sorter, m.menu.workspaces = s, s
		}
	}
	for _, k := range model.TaskSortKeys {
		if string(k) == st.TaskSort.Key {
			s := model.TaskSorter{Key: k, Desc: st.TaskSort.Desc}
			m.tasks.sorter, m.menu.tasks = s, s
		}
	}
	m.workspaces.restoreID = st.SelectedWorkspaceID

	rows := map[string]int{}
	for scope, i := range st.Selections {
		if scope == workspaceScope {
			m.workspaces.tracker.Restore(map[string]int{scope: i})
			continue
		}
		rows[scope] = i
	}
	m.tasks.tracker.Restore(rows)
}

// state captures what the next session restores. Task rows of deleted workspaces
// are dropped.
func (m *appModel) state() *store.TUIState {
	st := &store.TUIState{
		Version:             1,
		Focus:               action.Workspaces.String(),
		SelectedWorkspaceID: m.workspaces.selectedID,
		WorkspaceSort:       store.SortState{Key: string(m.menu.workspaces.Key), Desc: m.menu.workspaces.Desc},
		TaskSort:            store.SortState{Key: string(m.menu.tasks.Key), Desc: m.menu.tasks.Desc},
		Selections:          m.workspaces.tracker.Snapshot(),
	}
	if m.d.Focused() == action.Tasks {
		st.Focus = action.Tasks.String()
	}
	live := map[string]bool{}
	for _, w := range m.workspaces.items {
		live[w.ID] = true
	}
	for scope, i := range m.tasks.tracker.Snapshot() {
		if live[scope] {
			st.Selections[scope] = i
		}
	}
	return st
}

func (m *appModel) Init() tea.Cmd {
	return tea.Batch(every(m.tickRate, tickMsg{}), every(m.frameRate, frameMsg{}))
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.d.HandleKey(msg)
	case tea.WindowSizeMsg:
		m.d.Send(action.Resize{Width: msg.Width, Height: msg.Height})
	case tea.ResumeMsg:
		m.suspended = false
		m.d.Send(action.Resume{})
		m.d.Send(action.ClearScreen{})
	case tickMsg:
		m.d.Send(action.Tick{})
		cmds = append(cmds, every(m.tickRate, tickMsg{}))
	case frameMsg:
		m.d.Send(action.Render{})
		cmds = append(cmds, every(m.frameRate, frameMsg{}))
	}

	if err := m.d.Drain(m.ctx); err != nil {
		m.log.Error("dispatch failed", "err", err)
		m.err = err
		return m, tea.Quit
	}

	switch {
	case m.d.ShouldQuit():
		return m, tea.Quit
	case m.d.ShouldSuspend() && !m.suspended:
		m.suspended = true
		cmds = append(cmds, tea.Suspend)
	}
	if m.d.TakeClear() {
		cmds = append(cmds, tea.ClearScreen)
	}
	return m, tea.Batch(cmds...)
}

func (m *appModel) View() string {
	width, height := m.d.Size()
	if width <= 0 || height <= 0 {
		return ""
	}

	m.status.pending = m.d.PendingKeys()
	bar := m.status.View(width, height)
	paneH := height - lipgloss.Height(bar)
	if paneH < 3 {
		return bar
	}

	leftW := workspacePaneWidth
	if width < 3*workspacePaneWidth {
		leftW = width / 3
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.workspaces.View(leftW, paneH),
		m.tasks.View(width-leftW, paneH),
	)
	body = normalizePane(body, width, paneH)
	if m.d.Focused() == action.SortMenu {
		if popup := m.menu.View(width, paneH); popup != "" {
			body = overlayCenter(body, popup, width, paneH)
		}
	}
	return body + "\n" + bar
}
