// Package collision holds the pure collision decisions of the simulation.
// Every function expects the caller to hold the world lock.
package collision

import "github.com/vovakirdan/tui-stealth/internal/world"

// Hit is the outcome of a projectile striking a tile.
type Hit int

const (
	// HitNone means no active obstacle stands on the tile.
	HitNone Hit = iota
	// HitDamaged means an obstacle lost one hit point and survived.
	HitDamaged
	// HitDestroyed means an obstacle lost its last hit point.
	HitDestroyed
	// HitImmune means the obstacle on the tile cannot be damaged this stage.
	HitImmune
)

func (h Hit) String() string {
	switch h {
	case HitNone:
		return "none"
	case HitDamaged:
		return "damaged"
	case HitDestroyed:
		return "destroyed"
	case HitImmune:
		return "immune"
	default:
		return "unknown"
	}
}

// PlayerCaught reports whether any active obstacle shares the player's tile.
func PlayerCaught(w *world.World) bool {
	for i := range w.Obstacles {
		o := &w.Obstacles[i]
		if o.Active && o.X == w.Player.X && o.Y == w.Player.Y {
			return true
		}
	}
	return false
}

// GoalReached reports whether the player stands on the goal tile.
func GoalReached(w *world.World) bool {
	return w.Player.X == w.Goal.X && w.Player.Y == w.Goal.Y
}

// IsImpassable classifies a tile symbol.
func IsImpassable(t world.Tile) bool {
	return t.Impassable()
}

// Blocked reports whether a projectile entering (tx, ty) hits a wall.
// Tiles outside the grid count as walls.
func Blocked(w *world.World, tx, ty int) bool {
	if !w.Grid.Contains(tx, ty) {
		return true
	}
	return IsImpassable(w.Grid.At(tx, ty))
}

// Damageable reports whether o takes projectile damage on the world's stage.
// Pursuers are only vulnerable on the final stage.
func Damageable(w *world.World, o *world.Obstacle) bool {
	if o.Kind() == world.KindPursuer {
		return w.StageID == w.Rules.FinalStage
	}
	return true
}

// Strike resolves a projectile entering (tx, ty) against the first
// damageable active obstacle on that tile. Immune obstacles are skipped;
// HitImmune is returned only when nothing on the tile could be damaged.
func Strike(w *world.World, tx, ty int) Hit {
	result := HitNone
	for i := range w.Obstacles {
		o := &w.Obstacles[i]
		if !o.Active || o.X != tx || o.Y != ty {
			continue
		}
		if !Damageable(w, o) {
			result = HitImmune
			continue
		}
		o.HP--
		if o.HP <= 0 {
			o.Active = false
			return HitDestroyed
		}
		return HitDamaged
	}
	return result
}

// Consumes reports whether a hit ends the projectile's flight.
func Consumes(h Hit, policy world.ImmunePolicy) bool {
	switch h {
	case HitDamaged, HitDestroyed:
		return true
	case HitImmune:
		return policy == world.ImmuneAbsorb
	default:
		return false
	}
}
