// Package world holds the shared state of one stage: the tile grid, the
// obstacles, the projectile pool, the player and the goal.
//
// Everything in a World is guarded by a single mutex. Code outside this
// package reaches the state through World.Do, which holds the lock for the
// duration of the callback. Functions in the simulation packages take a
// *World and assume the caller already holds that lock.
package world

// Tile is one cell of the stage map, stored as its map symbol.
type Tile rune

// Map symbols.
const (
	TileOpen     Tile = '.'
	TileBlank    Tile = ' '
	TileWall     Tile = '#'
	TileBrick    Tile = '@'
	TileWater    Tile = 'w'
	TileDeep     Tile = 'W'
	TileLava     Tile = 'l'
	TileMagma    Tile = 'L'
	TileMachine  Tile = 'm'
	TileMachines Tile = 'M'
)

// Impassable reports whether nothing may stand on or fly through the tile.
func (t Tile) Impassable() bool {
	switch t {
	case TileWall, TileBrick, TileWater, TileDeep, TileLava, TileMagma, TileMachine, TileMachines:
		return true
	default:
		return false
	}
}

// String returns the tile symbol.
func (t Tile) String() string {
	return string(rune(t))
}
