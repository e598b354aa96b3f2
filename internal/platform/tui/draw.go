package tui

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-stealth/internal/core"
	"github.com/vovakirdan/tui-stealth/internal/world"
)

const (
	glyphPlayer     = 'P'
	glyphGoal       = 'G'
	glyphProjectile = '*'
	glyphLinear     = 'X'
	glyphSpinner    = 'O'
	glyphPursuer    = 'Z'
)

// HUD is the status line above the map.
type HUD struct {
	Stage   int // 1-based position in the campaign
	Stages  int
	Name    string
	Elapsed time.Duration
	Ammo    int
	Paused  bool
}

func (h HUD) String() string {
	line := fmt.Sprintf("=== Stealth ===  Stage %d/%d %s   Time: %.2fs   Ammo: %d",
		h.Stage, h.Stages, h.Name, h.Elapsed.Seconds(), h.Ammo)
	if h.Paused {
		line += "   [PAUSED]"
	}
	return line
}

const controlsLine = "WASD/arrows: move   Space/F: fire   P: pause   Q: quit"

func tileColor(t world.Tile) core.Color {
	switch t {
	case world.TileWall:
		return core.ColorWhite
	case world.TileBrick:
		return core.ColorOrange
	case world.TileWater, world.TileDeep:
		return core.ColorBlue
	case world.TileLava, world.TileMagma:
		return core.ColorRed
	case world.TileMachine, world.TileMachines:
		return core.ColorYellow
	default:
		return core.ColorGray
	}
}

func obstacleGlyph(o *world.Obstacle) (rune, core.Color) {
	switch m := o.Motion.(type) {
	case *world.Spinner:
		return glyphSpinner, core.ColorMagenta
	case *world.Pursuer:
		if m.Alert {
			return glyphPursuer, core.ColorBrightRed
		}
		return glyphPursuer, core.ColorOrange
	default:
		return glyphLinear, core.ColorRed
	}
}

// drawWorld draws the map with its top-left corner at (ox, oy). Layers go
// tiles, goal, obstacles, projectiles, then the player on top.
func drawWorld(s *core.Screen, w *world.World, ox, oy int) {
	g := w.Grid
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			t := g.At(x, y)
			s.SetCell(ox+x, oy+y, rune(t), tileColor(t))
		}
	}

	s.SetCell(ox+w.Goal.X, oy+w.Goal.Y, glyphGoal, core.ColorBrightGreen)

	for i := range w.Obstacles {
		o := &w.Obstacles[i]
		if !o.Active {
			continue
		}
		r, c := obstacleGlyph(o)
		s.SetCell(ox+o.X, oy+o.Y, r, c)
	}

	for i := range w.Projectiles {
		p := &w.Projectiles[i]
		if !p.Active {
			continue
		}
		t := p.Tile(w.Rules.SubunitsPerTile)
		s.SetCell(ox+t.X, oy+t.Y, glyphProjectile, core.ColorBrightYellow)
	}

	pc := core.ColorBrightCyan
	if !w.Player.Alive {
		pc = core.ColorRed
	}
	s.SetCell(ox+w.Player.X, oy+w.Player.Y, glyphPlayer, pc)
}

// drawPanel draws a boxed message centered on the screen.
func drawPanel(s *core.Screen, c core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = core.Max(width, len([]rune(l)))
	}
	r := core.NewRect(0, 0, s.Width(), s.Height()).Centered(width+4, len(lines)+2)

	for y := r.Y; y < r.Bottom(); y++ {
		s.DrawHLine(r.X, y, r.W, ' ', core.ColorDefault)
	}
	s.DrawBox(r, c)
	for i, l := range lines {
		s.DrawTextColor(r.X+2, r.Y+1+i, l, c)
	}
}
