package behavior

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-stealth/internal/world"
)

// fixedPlayer is a PlayerView pinned to one tile.
type fixedPlayer world.Point

func (p fixedPlayer) Tile() world.Point { return world.Point(p) }

// room builds a walled w x h world with extra walls at the given tiles.
func room(t *testing.T, w, h int, walls ...world.Point) *world.World {
	t.Helper()

	rows := make([]string, h)
	for y := range rows {
		if y == 0 || y == h-1 {
			rows[y] = strings.Repeat("#", w)
			continue
		}
		rows[y] = "#" + strings.Repeat(".", w-2) + "#"
	}
	grid := world.NewGrid(rows)
	for _, p := range walls {
		grid.Set(p.X, p.Y, world.TileWall)
	}
	return world.New(1, grid, world.Point{X: 1, Y: 1}, world.Point{X: w - 2, Y: h - 2}, 0, world.DefaultRules())
}

func TestLinearReversesAtWall(t *testing.T) {
	w := room(t, 12, 10, world.Point{X: 6, Y: 5})
	m := &world.Linear{Axis: world.AxisHorizontal, Dir: 1}
	o := w.AddObstacle(5, 5, 1, m)

	NewEngine(nil).Advance(w, o)

	assert.Equal(t, world.Point{X: 4, Y: 5}, o.Tile(), "should step once to the left")
	assert.Equal(t, -1, m.Dir)
	assert.Equal(t, 4*w.Rules.SubunitsPerTile, o.WorldX)
}

func TestLinearReversesAtMargin(t *testing.T) {
	w := room(t, 12, 10)
	m := &world.Linear{Axis: world.AxisVertical, Dir: 1}
	o := w.AddObstacle(3, 8, 1, m)

	NewEngine(nil).Advance(w, o)

	assert.Equal(t, world.Point{X: 3, Y: 7}, o.Tile())
	assert.Equal(t, -1, m.Dir)
}

func TestLinearBoxedInHolds(t *testing.T) {
	w := room(t, 12, 10, world.Point{X: 4, Y: 5}, world.Point{X: 6, Y: 5})
	m := &world.Linear{Axis: world.AxisHorizontal, Dir: 1}
	o := w.AddObstacle(5, 5, 1, m)
	e := NewEngine(nil)

	for i := range 4 {
		e.Advance(w, o)
		assert.Equal(t, world.Point{X: 5, Y: 5}, o.Tile(), "tick %d", i)
	}
	assert.Equal(t, 1, m.Dir, "direction flips every tick while boxed in")
}

func TestLinearStaysOnLegalTiles(t *testing.T) {
	w := room(t, 14, 9,
		world.Point{X: 7, Y: 3}, world.Point{X: 3, Y: 5}, world.Point{X: 10, Y: 2},
	)
	w.Grid.Set(5, 6, world.TileWater)
	w.AddObstacle(2, 3, 1, &world.Linear{Axis: world.AxisHorizontal, Dir: 1})
	w.AddObstacle(5, 2, 1, &world.Linear{Axis: world.AxisVertical, Dir: 1})
	w.AddObstacle(12, 7, 1, &world.Linear{Axis: world.AxisHorizontal, Dir: -1})
	w.AddObstacle(10, 7, 1, &world.Linear{Axis: world.AxisVertical, Dir: -1})
	e := NewEngine(nil)

	for tick := range 100 {
		e.Tick(w)
		for i, o := range w.Obstacles {
			require.True(t, w.Grid.InBounds(o.X, o.Y), "tick %d obstacle %d left the margin at %+v", tick, i, o.Tile())
			require.True(t, w.Grid.Passable(o.X, o.Y), "tick %d obstacle %d on blocked tile %+v", tick, i, o.Tile())
			require.Equal(t, o.X*w.Rules.SubunitsPerTile, o.WorldX)
			require.Equal(t, o.Y*w.Rules.SubunitsPerTile, o.WorldY)
		}
	}
}

func TestSpinnerCommitsOnOpenFloor(t *testing.T) {
	w := room(t, 12, 12)
	m := &world.Spinner{CenterX: 5, CenterY: 5, Radius: 2}
	o := w.AddObstacle(5, 5, 1, m)

	NewEngine(nil).Advance(w, o)

	assert.Equal(t, world.Point{X: 7, Y: 5}, o.Tile(), "angle 0 puts the spinner east of center")
	assert.Equal(t, 1, m.AngleIndex)
}

func TestSpinnerHoldsButKeepsTurning(t *testing.T) {
	w := room(t, 12, 12, world.Point{X: 7, Y: 5})
	m := &world.Spinner{CenterX: 5, CenterY: 5, Radius: 2}
	o := w.AddObstacle(5, 3, 1, m)

	NewEngine(nil).Advance(w, o)

	assert.Equal(t, world.Point{X: 5, Y: 3}, o.Tile(), "blocked candidate holds position")
	assert.Equal(t, 1, m.AngleIndex)
}

func TestSpinnerAngleAlwaysIncreases(t *testing.T) {
	w := room(t, 10, 10, world.Point{X: 5, Y: 2}, world.Point{X: 2, Y: 5})
	m := &world.Spinner{CenterX: 5, CenterY: 5, Radius: 4}
	w.AddObstacle(5, 5, 1, m)
	e := NewEngine(nil)

	prev := m.AngleIndex
	for range 64 {
		e.Tick(w)
		require.Greater(t, m.AngleIndex, prev)
		prev = m.AngleIndex
	}
}

func TestPursuerAlertMatchesSightRange(t *testing.T) {
	w := room(t, 20, 20)
	m := &world.Pursuer{Dir: 1, SightRange: 4}
	o := w.AddObstacle(10, 10, 1, m)
	e := NewEngine(nil)

	positions := []world.Point{
		{X: 10, Y: 6}, {X: 12, Y: 12}, {X: 15, Y: 10}, {X: 1, Y: 1}, {X: 9, Y: 12}, {X: 18, Y: 18},
	}
	for _, p := range positions {
		e.SetPlayer(fixedPlayer(p))
		before := o.Tile()
		e.Advance(w, o)

		dist := abs(p.X-before.X) + abs(p.Y-before.Y)
		assert.Equal(t, dist <= m.SightRange, m.Alert, "player at %+v, pursuer at %+v", p, before)
	}
}

func TestPursuerChasesAlongLongerAxis(t *testing.T) {
	w := room(t, 20, 20)
	m := &world.Pursuer{Dir: 1, SightRange: 6}
	o := w.AddObstacle(10, 10, 1, m)
	e := NewEngine(nil)

	e.SetPlayer(fixedPlayer{X: 13, Y: 9})
	e.Advance(w, o)
	assert.True(t, m.Alert)
	assert.Equal(t, world.Point{X: 11, Y: 10}, o.Tile())

	// Equal deltas step vertically
	e.SetPlayer(fixedPlayer{X: 9, Y: 9})
	o2 := &w.Obstacles[0]
	w.PlaceObstacle(o2, 10, 10)
	e.Advance(w, o2)
	assert.Equal(t, world.Point{X: 10, Y: 9}, o2.Tile())
}

func TestPursuerFallsBackToOtherAxis(t *testing.T) {
	w := room(t, 20, 20, world.Point{X: 11, Y: 10})
	m := &world.Pursuer{Dir: 1, SightRange: 8}
	o := w.AddObstacle(10, 10, 1, m)
	e := NewEngine(nil)
	e.SetPlayer(fixedPlayer{X: 14, Y: 12})

	e.Advance(w, o)

	assert.Equal(t, world.Point{X: 10, Y: 11}, o.Tile(), "wall on the x step should push the pursuer along y")
}

func TestPursuerWithNoPassableAxisHolds(t *testing.T) {
	w := room(t, 20, 20, world.Point{X: 11, Y: 10}, world.Point{X: 10, Y: 11})
	m := &world.Pursuer{Dir: 1, SightRange: 8}
	o := w.AddObstacle(10, 10, 1, m)
	e := NewEngine(nil)
	e.SetPlayer(fixedPlayer{X: 14, Y: 12})

	e.Advance(w, o)

	assert.Equal(t, world.Point{X: 10, Y: 10}, o.Tile())
	assert.True(t, m.Alert)
}

func TestPursuerPatrolsWhenUnaware(t *testing.T) {
	w := room(t, 12, 10, world.Point{X: 7, Y: 5})
	m := &world.Pursuer{Dir: 1, SightRange: 2}
	o := w.AddObstacle(5, 5, 1, m)
	e := NewEngine(nil)
	e.SetPlayer(fixedPlayer{X: 1, Y: 1})

	e.Advance(w, o)
	assert.Equal(t, world.Point{X: 6, Y: 5}, o.Tile())
	assert.False(t, m.Alert)

	e.Advance(w, o)
	assert.Equal(t, world.Point{X: 5, Y: 5}, o.Tile(), "patrol reverses at the wall")
	assert.Equal(t, -1, m.Dir)
}

func TestPursuerIdleWithoutPlayer(t *testing.T) {
	w := room(t, 12, 10)
	m := &world.Pursuer{Dir: 1, SightRange: 20}
	o := w.AddObstacle(5, 5, 1, m)
	e := NewEngine(nil)

	e.Advance(w, o)
	assert.Equal(t, world.Point{X: 5, Y: 5}, o.Tile())

	e.SetPlayer(fixedPlayer{X: 5, Y: 1})
	e.SetPlayer(nil)
	e.Advance(w, o)
	assert.Equal(t, world.Point{X: 5, Y: 5}, o.Tile(), "a cleared player view must not be chased")
	assert.Nil(t, e.Player())
}

func TestPursuitHook(t *testing.T) {
	w := room(t, 12, 10)
	m := &world.Pursuer{Dir: 1, SightRange: 10}
	o := w.AddObstacle(5, 5, 1, m)

	calls := 0
	deny := HookFunc(func(_ *world.World, got *world.Obstacle, _ PlayerView) Verdict {
		calls++
		assert.Same(t, o, got)
		return Deny
	})
	e := NewEngine(deny)
	e.SetPlayer(fixedPlayer{X: 5, Y: 1})

	e.Advance(w, o)
	assert.Equal(t, 1, calls)
	assert.Equal(t, world.Point{X: 5, Y: 5}, o.Tile(), "denied move is rolled back")
	assert.True(t, m.Alert, "alert survives a denied move")

	allow := HookFunc(func(*world.World, *world.Obstacle, PlayerView) Verdict { return Continue })
	e = NewEngine(allow)
	e.SetPlayer(fixedPlayer{X: 5, Y: 1})
	e.Advance(w, o)
	assert.Equal(t, world.Point{X: 5, Y: 4}, o.Tile())
}

func TestTickSkipsInactive(t *testing.T) {
	w := room(t, 12, 10)
	w.AddObstacle(3, 3, 1, &world.Linear{Axis: world.AxisHorizontal, Dir: 1})
	w.AddObstacle(3, 5, 1, &world.Linear{Axis: world.AxisHorizontal, Dir: 1})
	w.Obstacles[1].Active = false

	n := NewEngine(nil).Tick(w)

	assert.Equal(t, 1, n)
	assert.Equal(t, world.Point{X: 4, Y: 3}, w.Obstacles[0].Tile())
	assert.Equal(t, world.Point{X: 3, Y: 5}, w.Obstacles[1].Tile())
}
