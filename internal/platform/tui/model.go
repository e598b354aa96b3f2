package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-stealth/internal/game"
)

// Options controls how the app starts.
type Options struct {
	Width, Height int
	Start         int  // stage index to start from
	SkipMenu      bool // go straight into the game
}

type appView int

const (
	viewMenu appView = iota
	viewGame
	viewRecords
)

// liveSession tracks the session of the current game across model copies.
type liveSession struct {
	mu sync.Mutex
	s  *game.Session
}

func (l *liveSession) set(s *game.Session) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.s != nil && l.s != s {
		l.s.Close()
	}
	l.s = s
}

func (l *liveSession) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.s != nil {
		l.s.Close()
		l.s = nil
	}
}

// App is the top-level model: title menu, game and records screen.
type App struct {
	env     *Env
	opts    Options
	view    appView
	menu    MenuModel
	game    GameModel
	records RecordsModel
	live    *liveSession
	err     error
	done    bool
}

// NewApp creates the app model.
func NewApp(env *Env, opts Options) App {
	return App{
		env:  env,
		opts: opts,
		menu: newMenu(env, opts),
		live: &liveSession{},
	}
}

func newMenu(env *Env, opts Options) MenuModel {
	best := ""
	if d := env.bestCampaign(); d > 0 {
		best = fmt.Sprintf("%.3fs", d.Seconds())
	}
	return NewMenuModel(opts.Width, opts.Height, best)
}

// Init starts in the menu, or in the game when the menu is skipped.
func (m App) Init() tea.Cmd {
	if m.opts.SkipMenu {
		return func() tea.Msg { return startGameMsg{} }
	}
	return m.menu.Init()
}

type startGameMsg struct{}

// Update routes messages to the active view.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Width = msg.Width
		m.opts.Height = msg.Height
	case startGameMsg:
		return m.startGame()
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewRecords:
		return m.updateRecords(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch m.menu.Selected() {
	case ChoiceQuit:
		m.done = true
		return m, tea.Quit
	case ChoiceStart:
		return m.startGame()
	case ChoiceRecords:
		m.records = NewRecordsModel(m.env.Store, m.env.Stages, m.opts.Width, m.opts.Height)
		m.view = viewRecords
		return m, m.records.Init()
	}
	return m, cmd
}

func (m App) startGame() (tea.Model, tea.Cmd) {
	g, err := NewGameModel(m.env, m.opts.Start, m.opts.Width, m.opts.Height)
	if err != nil {
		m.err = err
		m.done = true
		return m, tea.Quit
	}
	m.game = g
	m.live.set(g.session)
	m.view = viewGame
	return m, m.game.Init()
}

func (m App) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	switch {
	case m.game.IsQuitting():
		m.done = true
		return m, tea.Quit
	case m.game.BackToMenu():
		if m.opts.SkipMenu {
			m.done = true
			return m, tea.Quit
		}
		m.menu = newMenu(m.env, m.opts)
		m.view = viewMenu
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m App) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.records.Update(msg)
	m.records = next.(RecordsModel)

	switch {
	case m.records.IsQuitting():
		m.done = true
		return m, tea.Quit
	case m.records.IsGoingBack():
		m.menu = newMenu(m.env, m.opts)
		m.view = viewMenu
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the active view.
func (m App) View() string {
	if m.done {
		return ""
	}
	switch m.view {
	case viewGame:
		return m.game.View()
	case viewRecords:
		return m.records.View()
	default:
		return m.menu.View()
	}
}

// Close stops the running session. Call it once the program has exited.
func (m App) Close() {
	m.live.close()
}

// Err returns the error that ended the app, if any.
func (m App) Err() error {
	return m.err
}

// Run starts the app on the local terminal until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, env *Env, opts Options) error {
	p := tea.NewProgram(
		NewApp(env, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if app, ok := final.(App); ok {
		app.Close()
		if err == nil {
			err = app.Err()
		}
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
