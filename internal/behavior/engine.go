// Package behavior advances obstacles one tick at a time.
//
// Every obstacle kind has its own movement policy. Moves that would leave
// the playfield or land on an impassable tile are resolved by that policy
// (reverse, hold, or try the other axis) and never reported as errors.
package behavior

import (
	"math"
	"sync/atomic"

	"github.com/vovakirdan/tui-stealth/internal/world"
)

// PlayerView is the read-only view of the player used for pursuit.
type PlayerView interface {
	Tile() world.Point
}

// Verdict is returned by a PursuitHook.
type Verdict int

const (
	// Continue keeps the move the pursuer just made.
	Continue Verdict = iota
	// Deny rolls the pursuer back to the tile it held before this tick.
	Deny
)

// PursuitHook lets a stage script its pursuers. It is consulted after the
// built-in pursuit update of every Pursuer, every tick.
type PursuitHook interface {
	AfterPursuit(w *world.World, o *world.Obstacle, p PlayerView) Verdict
}

// HookFunc adapts a function to PursuitHook.
type HookFunc func(w *world.World, o *world.Obstacle, p PlayerView) Verdict

// AfterPursuit calls f.
func (f HookFunc) AfterPursuit(w *world.World, o *world.Obstacle, p PlayerView) Verdict {
	return f(w, o, p)
}

type playerRef struct {
	view PlayerView
}

// Engine applies the per-kind movement policies.
type Engine struct {
	player atomic.Pointer[playerRef]
	hook   PursuitHook
}

// NewEngine creates an engine. hook may be nil.
func NewEngine(hook PursuitHook) *Engine {
	return &Engine{hook: hook}
}

// SetPlayer registers the player pursuers chase. Pass nil when the stage
// ends so the reference never outlives it.
func (e *Engine) SetPlayer(p PlayerView) {
	if p == nil {
		e.player.Store(nil)
		return
	}
	e.player.Store(&playerRef{view: p})
}

// Player returns the registered player view, or nil.
func (e *Engine) Player() PlayerView {
	ref := e.player.Load()
	if ref == nil {
		return nil
	}
	return ref.view
}

// Tick advances every active obstacle once and returns how many moved or
// held. The caller must hold the world lock.
func (e *Engine) Tick(w *world.World) int {
	n := 0
	for i := range w.Obstacles {
		o := &w.Obstacles[i]
		if !o.Active {
			continue
		}
		e.Advance(w, o)
		n++
	}
	return n
}

// Advance runs one tick of o's movement policy.
func (e *Engine) Advance(w *world.World, o *world.Obstacle) {
	switch m := o.Motion.(type) {
	case *world.Linear:
		advanceLinear(w, o, m)
	case *world.Spinner:
		advanceSpinner(w, o, m)
	case *world.Pursuer:
		p := e.Player()
		if p == nil {
			return
		}
		from := o.Tile()
		advancePursuer(w, o, m, p.Tile())
		if e.hook != nil && e.hook.AfterPursuit(w, o, p) == Deny {
			w.PlaceObstacle(o, from.X, from.Y)
		}
	}
}

// legal reports whether an obstacle may stand on (x, y).
func legal(w *world.World, x, y int) bool {
	return w.Grid.InBounds(x, y) && w.Grid.Passable(x, y)
}

func advanceLinear(w *world.World, o *world.Obstacle, m *world.Linear) {
	dx, dy := 1, 0
	if m.Axis == world.AxisVertical {
		dx, dy = 0, 1
	}

	nx, ny := o.X+dx*m.Dir, o.Y+dy*m.Dir
	if legal(w, nx, ny) {
		w.PlaceObstacle(o, nx, ny)
		return
	}

	// Reverse and step once from the original tile. Blocked on both sides
	// means the obstacle holds and tries again next tick.
	m.Dir = -m.Dir
	nx, ny = o.X+dx*m.Dir, o.Y+dy*m.Dir
	if legal(w, nx, ny) {
		w.PlaceObstacle(o, nx, ny)
	}
}

func advanceSpinner(w *world.World, o *world.Obstacle, m *world.Spinner) {
	angle := float64(m.AngleIndex) * w.Rules.SpinnerStep
	r := float64(m.Radius)
	nx := m.CenterX + int(math.Round(r*math.Cos(angle)))
	ny := m.CenterY + int(math.Round(r*math.Sin(angle)))

	if legal(w, nx, ny) {
		w.PlaceObstacle(o, nx, ny)
	}
	m.AngleIndex++
}

func advancePursuer(w *world.World, o *world.Obstacle, m *world.Pursuer, target world.Point) {
	dx, dy := target.X-o.X, target.Y-o.Y
	m.Alert = abs(dx)+abs(dy) <= m.SightRange

	nx, ny := o.X, o.Y
	if m.Alert {
		if abs(dx) > abs(dy) {
			nx += sign(dx)
		} else {
			ny += sign(dy)
		}

		if !legal(w, nx, ny) {
			if nx != o.X {
				nx, ny = o.X, o.Y+sign(dy)
			} else {
				nx, ny = o.X+sign(dx), o.Y
			}
		}
	} else {
		nx += m.Dir
		if !legal(w, nx, o.Y) {
			m.Dir = -m.Dir
			nx = o.X + m.Dir
		}
	}

	if (nx != o.X || ny != o.Y) && legal(w, nx, ny) {
		w.PlaceObstacle(o, nx, ny)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
