package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-stealth/internal/config"
	"github.com/vovakirdan/tui-stealth/internal/core"
	"github.com/vovakirdan/tui-stealth/internal/game"
	"github.com/vovakirdan/tui-stealth/internal/stage"
	"github.com/vovakirdan/tui-stealth/internal/world"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testEnv() *Env {
	cfg := config.DefaultConfig()
	cfg.Sim.TickIntervalMS = int(time.Hour / time.Millisecond)

	return &Env{
		Stages: []stage.Stage{{
			ID:    1,
			Name:  "hall",
			Ammo:  2,
			Rows:  []string{"#####", "#...#", "#####"},
			Start: world.Point{X: 1, Y: 1},
			Goal:  world.Point{X: 3, Y: 1},
		}},
		Config: cfg,
		Logger: log.New(io.Discard),
	}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{runes("w"), core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runes("d"), core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionFire, false},
		{runes("p"), core.ActionPause, false},
		{runes("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runes("x"), core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		assert.Equal(t, tt.action, action, tt.msg.String())
		assert.Equal(t, tt.quit, quit, tt.msg.String())
	}
}

func TestFacing(t *testing.T) {
	assert.Equal(t, world.FacingUp, Facing(core.ActionUp))
	assert.Equal(t, world.FacingRight, Facing(core.ActionRight))
	assert.Equal(t, world.FacingNone, Facing(core.ActionFire))
}

func TestDrawWorld(t *testing.T) {
	st := stage.Stage{
		ID:    1,
		Rows:  []string{"#######", "#.....#", "#######"},
		Start: world.Point{X: 1, Y: 1},
		Goal:  world.Point{X: 5, Y: 1},
		Obstacles: []stage.ObstacleSpec{
			{Kind: world.KindLinear, X: 3, Y: 1, HP: 1, Axis: world.AxisHorizontal, Dir: 1},
		},
	}
	w := st.NewWorld(world.DefaultRules())
	w.Projectiles = append(w.Projectiles, world.Projectile{
		WorldX: 2 * w.Rules.SubunitsPerTile,
		WorldY: w.Rules.SubunitsPerTile,
		Active: true,
	})

	s := core.NewScreen(7, 4)
	drawWorld(s, w, 0, 1)

	assert.Equal(t, "#######", s.Row(1))
	assert.Equal(t, "#P*X.G#", s.Row(2))
	assert.Equal(t, core.ColorBrightGreen, s.GetCell(5, 2).Color)
	assert.Equal(t, core.ColorBrightCyan, s.GetCell(1, 2).Color)
}

func TestHUDString(t *testing.T) {
	h := HUD{Stage: 2, Stages: 6, Name: "vault", Elapsed: 1500 * time.Millisecond, Ammo: 3}
	assert.Equal(t, "=== Stealth ===  Stage 2/6 vault   Time: 1.50s   Ammo: 3", h.String())

	h.Paused = true
	assert.Contains(t, h.String(), "[PAUSED]")
}

func TestGameModelClearsStage(t *testing.T) {
	m, err := NewGameModel(testEnv(), 0, 60, 20)
	require.NoError(t, err)
	defer m.Session().Close()

	step := func(msg tea.Msg) tea.Cmd {
		next, cmd := m.Update(msg)
		m = next.(GameModel)
		return cmd
	}

	step(runes("d"))
	step(TickMsg(time.Now()))
	step(runes("d"))
	step(TickMsg(time.Now()))

	assert.Equal(t, game.StatusVictory, m.Session().Status())
	assert.Contains(t, m.View(), "You cleared all stages!")

	step(runes("r"))
	assert.Equal(t, game.StatusPlaying, m.Session().Status())

	step(runes("q"))
	assert.True(t, m.IsQuitting())
	assert.Equal(t, game.StatusAborted, m.Session().Status())
}

func TestGameModelPause(t *testing.T) {
	m, err := NewGameModel(testEnv(), 0, 60, 20)
	require.NoError(t, err)
	defer m.Session().Close()

	next, _ := m.Update(runes("p"))
	m = next.(GameModel)
	require.True(t, m.Session().Paused())
	assert.Contains(t, m.View(), "PAUSED")

	next, _ = m.Update(runes("p"))
	m = next.(GameModel)
	assert.False(t, m.Session().Paused())
}

func TestAppMenuToRecordsAndBack(t *testing.T) {
	app := NewApp(testEnv(), Options{Width: 80, Height: 24})

	next, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = next.(App)
	assert.Equal(t, viewRecords, app.view)
	assert.Equal(t, "campaign", app.records.Track())

	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = next.(App)
	assert.Equal(t, "stage-1", app.records.Track())

	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = next.(App)
	assert.Equal(t, viewMenu, app.view)
}

func TestAppStartAndClose(t *testing.T) {
	app := NewApp(testEnv(), Options{Width: 80, Height: 24})

	next, _ := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = next.(App)
	require.Equal(t, viewGame, app.view)
	assert.True(t, app.game.Session().Scheduler().Running())

	app.Close()
	assert.False(t, app.game.Session().Scheduler().Running())
}
