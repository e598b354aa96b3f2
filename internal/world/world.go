package world

import "sync"

// ImmunePolicy decides what happens to a projectile that strikes an
// obstacle immune to damage.
type ImmunePolicy string

const (
	// ImmunePass lets the projectile fly on through the immune obstacle.
	ImmunePass ImmunePolicy = "pass"
	// ImmuneAbsorb consumes the projectile without damaging the obstacle.
	ImmuneAbsorb ImmunePolicy = "absorb"
)

// Rules are the per-run constants of the simulation.
type Rules struct {
	SubunitsPerTile    int
	ProjectileRange    int // in tiles
	ProjectileCapacity int
	SpinnerStep        float64 // radians per angle index
	FinalStage         int     // stage on which pursuers take damage
	ImmuneHit          ImmunePolicy
}

// DefaultRules returns the stock simulation constants.
func DefaultRules() Rules {
	return Rules{
		SubunitsPerTile:    16,
		ProjectileRange:    8,
		ProjectileCapacity: 16,
		SpinnerStep:        0.2,
		FinalStage:         6,
		ImmuneHit:          ImmunePass,
	}
}

// World is the complete state of one stage.
type World struct {
	mu sync.Mutex

	StageID     int
	Grid        *Grid
	Obstacles   []Obstacle
	Projectiles []Projectile
	Player      Player
	Goal        Point
	Ammo        int
	Rules       Rules
}

// New creates a world over the grid with the player standing on start.
func New(stageID int, grid *Grid, start, goal Point, ammo int, rules Rules) *World {
	w := &World{
		StageID: stageID,
		Grid:    grid,
		Goal:    goal,
		Ammo:    ammo,
		Rules:   rules,
	}
	w.Player.Alive = true
	w.placePlayer(start.X, start.Y)
	return w
}

// Do runs fn while holding the world lock.
func (w *World) Do(fn func(w *World)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(w)
}

// AddObstacle appends an active obstacle at (x, y).
// The returned pointer is valid until the next AddObstacle.
func (w *World) AddObstacle(x, y, hp int, m Motion) *Obstacle {
	w.Obstacles = append(w.Obstacles, Obstacle{Active: true, HP: hp, Motion: m})
	o := &w.Obstacles[len(w.Obstacles)-1]
	w.PlaceObstacle(o, x, y)
	return o
}

// PlaceObstacle commits an obstacle move, keeping the sub-tile position in step.
func (w *World) PlaceObstacle(o *Obstacle, x, y int) {
	o.X, o.Y = x, y
	o.WorldX = x * w.Rules.SubunitsPerTile
	o.WorldY = y * w.Rules.SubunitsPerTile
}

// ActiveObstacles counts obstacles still in play.
func (w *World) ActiveObstacles() int {
	n := 0
	for i := range w.Obstacles {
		if w.Obstacles[i].Active {
			n++
		}
	}
	return n
}

// MovePlayer turns the player toward f and steps one tile if the target is
// passable. It reports whether the player moved.
func (w *World) MovePlayer(f Facing) bool {
	dx, dy, ok := f.Vector()
	if !ok || !w.Player.Alive {
		return false
	}
	w.Player.Facing = f

	nx, ny := w.Player.X+dx, w.Player.Y+dy
	if !w.Grid.Passable(nx, ny) {
		return false
	}
	w.placePlayer(nx, ny)
	return true
}

func (w *World) placePlayer(x, y int) {
	w.Player.X, w.Player.Y = x, y
	w.Player.WorldX = x * w.Rules.SubunitsPerTile
	w.Player.WorldY = y * w.Rules.SubunitsPerTile
}
