package world

// Projectile is one slot of the projectile pool.
type Projectile struct {
	WorldX, WorldY int
	DirX, DirY     int // unit vector in tile space
	Distance       int // sub-tile units traveled
	Active         bool
}

// Tile returns the tile the projectile is in.
func (p *Projectile) Tile(subunits int) Point {
	return Point{X: floorDiv(p.WorldX, subunits), Y: floorDiv(p.WorldY, subunits)}
}

// ActiveProjectiles counts in-flight projectiles.
func (w *World) ActiveProjectiles() int {
	n := 0
	for i := range w.Projectiles {
		if w.Projectiles[i].Active {
			n++
		}
	}
	return n
}

// ToTile converts a sub-tile coordinate to a tile coordinate.
func (w *World) ToTile(sub int) int {
	return floorDiv(sub, w.Rules.SubunitsPerTile)
}

func floorDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
