package world

// Kind identifies an obstacle's behavior.
type Kind int

const (
	KindLinear Kind = iota
	KindSpinner
	KindPursuer
)

// String returns the kind name as used in stage files.
func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindSpinner:
		return "spinner"
	case KindPursuer:
		return "pursuer"
	default:
		return "unknown"
	}
}

// Axis is the movement axis of a Linear obstacle.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// Motion is the kind-specific state of an obstacle.
// It is implemented only by *Linear, *Spinner and *Pursuer.
type Motion interface {
	Kind() Kind
	motion()
}

// Linear walks back and forth along one axis.
type Linear struct {
	Axis Axis
	Dir  int // +1 or -1
}

// Spinner orbits a fixed center.
type Spinner struct {
	CenterX, CenterY int
	Radius           int
	AngleIndex       int // radians = AngleIndex * Rules.SpinnerStep
}

// Pursuer chases the player inside its sight range and patrols otherwise.
type Pursuer struct {
	Dir        int // patrol direction, +1 or -1
	SightRange int
	Alert      bool
}

func (*Linear) Kind() Kind  { return KindLinear }
func (*Spinner) Kind() Kind { return KindSpinner }
func (*Pursuer) Kind() Kind { return KindPursuer }

func (*Linear) motion()  {}
func (*Spinner) motion() {}
func (*Pursuer) motion() {}

// Obstacle is a moving hazard. Touching an active obstacle catches the player.
type Obstacle struct {
	X, Y           int // tile position
	WorldX, WorldY int // sub-tile position, always tile * SubunitsPerTile
	Active         bool
	HP             int
	Motion         Motion
}

// Kind returns the obstacle's behavior kind.
func (o *Obstacle) Kind() Kind {
	if o.Motion == nil {
		return KindLinear
	}
	return o.Motion.Kind()
}

// Tile returns the obstacle's tile position.
func (o *Obstacle) Tile() Point {
	return Point{X: o.X, Y: o.Y}
}
