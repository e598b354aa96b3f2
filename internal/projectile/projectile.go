// Package projectile spawns and advances the player's projectiles.
//
// Projectiles live in the world's pool. A slot is reused once inactive and
// the pool grows up to Rules.ProjectileCapacity; spawn requests beyond that
// are dropped without charging ammunition.
package projectile

import (
	"github.com/vovakirdan/tui-stealth/internal/collision"
	"github.com/vovakirdan/tui-stealth/internal/world"
)

// Outcome describes what happened to a spawn request.
type Outcome int

const (
	Fired Outcome = iota
	NoAmmo
	NoFacing
	PoolFull
)

func (o Outcome) String() string {
	switch o {
	case Fired:
		return "fired"
	case NoAmmo:
		return "no ammo"
	case NoFacing:
		return "no facing"
	case PoolFull:
		return "pool full"
	default:
		return "unknown"
	}
}

// Report summarizes one Advance pass.
type Report struct {
	Moved    int
	Expired  int
	Walls    int
	Hits     int // damaging hits, kills included
	Kills    int
	Immune   int
	Absorbed int // immune hits that consumed the projectile
}

// Spawn tries to fire from the player's sub-tile position in the direction
// the player faces.
func Spawn(w *world.World) Outcome {
	dx, dy, ok := w.Player.Facing.Vector()
	if !ok {
		return NoFacing
	}
	if w.Ammo <= 0 {
		return NoAmmo
	}

	slot := freeSlot(w)
	if slot < 0 {
		return PoolFull
	}

	w.Ammo--
	w.Projectiles[slot] = world.Projectile{
		WorldX: w.Player.WorldX,
		WorldY: w.Player.WorldY,
		DirX:   dx,
		DirY:   dy,
		Active: true,
	}
	return Fired
}

// Fire is Spawn reduced to whether a projectile left the player.
func Fire(w *world.World) bool {
	return Spawn(w) == Fired
}

// freeSlot returns the index of a usable pool slot, growing the pool when
// every slot is busy, or -1 when the pool is at capacity.
func freeSlot(w *world.World) int {
	for i := range w.Projectiles {
		if !w.Projectiles[i].Active {
			return i
		}
	}
	if len(w.Projectiles) >= w.Rules.ProjectileCapacity {
		return -1
	}
	w.Projectiles = append(w.Projectiles, world.Projectile{})
	return len(w.Projectiles) - 1
}

// Advance moves every active projectile one tile.
//
// Range expiry is checked before anything at the candidate tile, so a
// projectile that runs out of range on the tick it would hit a wall counts
// as expired.
func Advance(w *world.World) Report {
	var r Report
	step := w.Rules.SubunitsPerTile
	maxDist := w.Rules.ProjectileRange * step

	for i := range w.Projectiles {
		p := &w.Projectiles[i]
		if !p.Active {
			continue
		}

		nx := p.WorldX + p.DirX*step
		ny := p.WorldY + p.DirY*step
		p.Distance += step
		if p.Distance >= maxDist {
			p.Active = false
			r.Expired++
			continue
		}

		tx, ty := w.ToTile(nx), w.ToTile(ny)
		if collision.Blocked(w, tx, ty) {
			p.Active = false
			r.Walls++
			continue
		}

		hit := collision.Strike(w, tx, ty)
		switch hit {
		case collision.HitDestroyed:
			r.Kills++
			r.Hits++
		case collision.HitDamaged:
			r.Hits++
		case collision.HitImmune:
			r.Immune++
		}
		if collision.Consumes(hit, w.Rules.ImmuneHit) {
			if hit == collision.HitImmune {
				r.Absorbed++
			}
			p.Active = false
			continue
		}

		p.WorldX, p.WorldY = nx, ny
		r.Moved++
	}
	return r
}
