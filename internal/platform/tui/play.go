package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-stealth/internal/core"
	"github.com/vovakirdan/tui-stealth/internal/game"
	"github.com/vovakirdan/tui-stealth/internal/world"
)

// GameModel plays one campaign run in the terminal.
type GameModel struct {
	env     *Env
	session *game.Session
	start   int
	screen  *core.Screen
	keys    *KeyMapper
	input   core.InputFrame
	best    time.Duration // campaign record once the run is over

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a session and starts it at stage index start.
func NewGameModel(env *Env, start, width, height int) (GameModel, error) {
	s, err := env.NewSession()
	if err != nil {
		return GameModel{}, err
	}
	if err := s.StartStage(start); err != nil {
		s.Close()
		return GameModel{}, err
	}

	return GameModel{
		env:     env,
		session: s,
		start:   start,
		screen:  core.NewScreen(width, height),
		keys:    NewKeyMapper(),
		input:   core.NewInputFrame(),
	}, nil
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.env.Config.Sim.FrameRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case stageClearedMsg:
		if m.session.Status() == game.StatusCleared {
			if err := m.session.Next(); err != nil {
				m.env.logger().Error("cannot start next stage", "err", err)
				m.session.Close()
			}
		}
		return m, nil
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.MapKeyToFrame(msg, &m.input) {
		m.session.Close()
		m.quitting = true
		return m, tea.Quit
	}

	action, _ := m.keys.MapKey(msg)
	status := m.session.Status()

	switch {
	case status == game.StatusPlaying && action == core.ActionPause:
		m.togglePause()

	case status.Over() && action == core.ActionRestart:
		if err := m.session.StartStage(m.start); err != nil {
			m.env.logger().Error("cannot restart", "err", err)
		}
		m.best = 0

	case status.Over() && (action == core.ActionBack || action == core.ActionConfirm):
		m.session.Close()
		m.backToMenu = true
	}

	return m, nil
}

func (m *GameModel) togglePause() {
	if !m.session.Paused() {
		m.session.Pause()
		return
	}
	if err := m.session.Resume(); err != nil {
		m.env.logger().Error("cannot resume", "err", err)
	}
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.session.Status() == game.StatusPlaying && !m.session.Paused() {
		in := game.Intent{
			Move: Facing(m.input.Move),
			Fire: m.input.Has(core.ActionFire),
		}
		switch m.session.Frame(in) {
		case game.StatusCleared:
			cmd = clearPauseCmd(m.env.Config.StageClearPause())
		case game.StatusVictory, game.StatusCaught:
			m.best = m.env.bestCampaign()
		}
	}

	m.input.Clear()
	return m, tea.Batch(tickCmd(m.env.Config.Sim.FrameRate), cmd)
}

// View renders the stage and any overlay.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	s := m.screen
	s.Clear()

	st := m.session.Stage()
	hud := HUD{
		Stage:   m.session.Index() + 1,
		Stages:  m.session.Stages(),
		Name:    st.Name,
		Elapsed: m.session.Elapsed(),
		Paused:  m.session.Paused(),
	}

	height := 0
	m.session.View(func(w *world.World) {
		hud.Ammo = w.Ammo
		drawWorld(s, w, 0, 1)
		height = w.Grid.Height()
	})
	s.DrawTextColor(0, 0, hud.String(), core.ColorBrightYellow)
	s.DrawTextColor(0, height+2, controlsLine, core.ColorGray)

	switch status := m.session.Status(); {
	case m.session.Paused():
		drawPanel(s, core.ColorCyan, "PAUSED", "", "P: resume   Q: quit")
	case status == game.StatusCleared:
		drawPanel(s, core.ColorBrightGreen, m.clearedLines()...)
	case status.Over():
		c := core.ColorBrightGreen
		if status != game.StatusVictory {
			c = core.ColorBrightRed
		}
		drawPanel(s, c, m.resultLines()...)
	}

	return RenderScreen(s)
}

func (m GameModel) clearedLines() []string {
	lines := []string{
		fmt.Sprintf("Stage %d Cleared!", m.session.Index()+1),
		fmt.Sprintf("Time: %.3fs", m.session.Elapsed().Seconds()),
	}
	if rec := m.session.LastRecords().Stage; rec.Improved {
		lines = append(lines, "New stage record!")
	}
	return lines
}

func (m GameModel) resultLines() []string {
	total := m.session.Total()
	lines := []string{"===== GAME RESULT =====", ""}

	switch m.session.Status() {
	case game.StatusVictory:
		lines = append(lines, "You cleared all stages!")
		if m.session.LastRecords().Campaign.Improved {
			lines = append(lines, "New Record!")
		}
	case game.StatusCaught:
		lines = append(lines,
			fmt.Sprintf("You were caught at Stage %d! Game Over.", m.session.Index()+1),
			"Record unchanged.")
	default:
		lines = append(lines, "You failed to clear all stages.", "Record unchanged.")
	}

	lines = append(lines, "", fmt.Sprintf("Total Playtime: %.3fs", total.Seconds()))
	if m.best > 0 {
		lines = append(lines, fmt.Sprintf("Best Record   : %.3fs", m.best.Seconds()))
	} else {
		lines = append(lines, "Best Record   : --")
	}
	lines = append(lines, fmt.Sprintf("Your Time     : %.3fs", total.Seconds()))

	return append(lines, "", "R: restart   B: menu   Q: quit")
}

// Session exposes the running session.
func (m GameModel) Session() *game.Session {
	return m.session
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
