package world

// Facing is the direction the player last moved in.
type Facing int

const (
	FacingNone Facing = iota
	FacingUp
	FacingDown
	FacingLeft
	FacingRight
)

// String returns a human-readable facing name.
func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "Up"
	case FacingDown:
		return "Down"
	case FacingLeft:
		return "Left"
	case FacingRight:
		return "Right"
	default:
		return "None"
	}
}

// Vector returns the unit tile-space direction for the facing.
// ok is false for FacingNone and unknown values.
func (f Facing) Vector() (dx, dy int, ok bool) {
	switch f {
	case FacingUp:
		return 0, -1, true
	case FacingDown:
		return 0, 1, true
	case FacingLeft:
		return -1, 0, true
	case FacingRight:
		return 1, 0, true
	default:
		return 0, 0, false
	}
}

// Player is the character controlled by keyboard input.
type Player struct {
	X, Y           int
	WorldX, WorldY int
	Facing         Facing
	Alive          bool
}

// Tile returns the player's tile position.
func (p *Player) Tile() Point {
	return Point{X: p.X, Y: p.Y}
}
