// Package stage loads stage definitions and builds worlds from them.
//
// A stage file is YAML: an id, a name, the starting ammunition, the map as a
// list of rows and a list of obstacles. In the map, S marks the player's start
// and G the goal; both become open floor once loaded.
package stage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-stealth/internal/world"
)

// ErrNotFound is returned when no stage has the requested id.
var ErrNotFound = errors.New("stage: not found")

const (
	symbolStart = 'S'
	symbolGoal  = 'G'
)

// Stage is a validated stage definition.
type Stage struct {
	ID        int
	Name      string
	Ammo      int
	Rows      []string // start and goal already replaced with open floor
	Start     world.Point
	Goal      world.Point
	Obstacles []ObstacleSpec
	Source    string
}

// ObstacleSpec is the starting state of one obstacle.
type ObstacleSpec struct {
	Kind world.Kind
	X, Y int
	HP   int

	Axis world.Axis // linear
	Dir  int        // linear, pursuer

	CenterX, CenterY int // spinner
	Radius           int

	Sight int // pursuer
}

// Width returns the width of the widest map row.
func (s *Stage) Width() int {
	w := 0
	for _, row := range s.Rows {
		if n := len([]rune(row)); n > w {
			w = n
		}
	}
	return w
}

// Height returns the number of map rows.
func (s *Stage) Height() int {
	return len(s.Rows)
}

// NewWorld builds a fresh world for the stage.
func (s *Stage) NewWorld(rules world.Rules) *world.World {
	w := world.New(s.ID, world.NewGrid(s.Rows), s.Start, s.Goal, s.Ammo, rules)
	for _, spec := range s.Obstacles {
		w.AddObstacle(spec.X, spec.Y, spec.HP, spec.motion())
	}
	return w
}

func (o ObstacleSpec) motion() world.Motion {
	switch o.Kind {
	case world.KindSpinner:
		return &world.Spinner{CenterX: o.CenterX, CenterY: o.CenterY, Radius: o.Radius}
	case world.KindPursuer:
		return &world.Pursuer{Dir: o.Dir, SightRange: o.Sight}
	default:
		return &world.Linear{Axis: o.Axis, Dir: o.Dir}
	}
}

// build validates a parsed file and converts it into a Stage.
func build(ys yamlStage) (Stage, error) {
	if ys.ID <= 0 {
		return Stage{}, fmt.Errorf("id must be positive, got %d", ys.ID)
	}
	if len(ys.Map) == 0 {
		return Stage{}, errors.New("map is empty")
	}
	if ys.Ammo < 0 {
		return Stage{}, fmt.Errorf("ammo must not be negative, got %d", ys.Ammo)
	}

	s := Stage{
		ID:   ys.ID,
		Name: ys.Name,
		Ammo: ys.Ammo,
		Rows: make([]string, len(ys.Map)),
	}
	if s.Name == "" {
		s.Name = fmt.Sprintf("Stage %d", s.ID)
	}

	starts, goals := 0, 0
	for y, row := range ys.Map {
		runes := []rune(row)
		for x, r := range runes {
			switch r {
			case symbolStart:
				s.Start = world.Point{X: x, Y: y}
				runes[x] = rune(world.TileOpen)
				starts++
			case symbolGoal:
				s.Goal = world.Point{X: x, Y: y}
				runes[x] = rune(world.TileOpen)
				goals++
			}
		}
		s.Rows[y] = string(runes)
	}
	if starts != 1 {
		return Stage{}, fmt.Errorf("map needs exactly one %c, found %d", symbolStart, starts)
	}
	if goals != 1 {
		return Stage{}, fmt.Errorf("map needs exactly one %c, found %d", symbolGoal, goals)
	}

	grid := world.NewGrid(s.Rows)
	for i, yo := range ys.Obstacles {
		spec, err := buildObstacle(yo)
		if err != nil {
			return Stage{}, fmt.Errorf("obstacle %d: %w", i, err)
		}
		if !grid.InBounds(spec.X, spec.Y) || !grid.Passable(spec.X, spec.Y) {
			return Stage{}, fmt.Errorf("obstacle %d: start (%d,%d) is not a free tile inside the border", i, spec.X, spec.Y)
		}
		s.Obstacles = append(s.Obstacles, spec)
	}

	return s, nil
}

func buildObstacle(yo yamlObstacle) (ObstacleSpec, error) {
	spec := ObstacleSpec{HP: yo.HP}
	if spec.HP == 0 {
		spec.HP = 1
	}
	if spec.HP < 0 {
		return ObstacleSpec{}, fmt.Errorf("hp must be at least 1, got %d", yo.HP)
	}

	switch strings.ToLower(yo.Kind) {
	case "linear", "":
		spec.Kind = world.KindLinear
		switch strings.ToLower(yo.Axis) {
		case "horizontal", "h", "":
			spec.Axis = world.AxisHorizontal
		case "vertical", "v":
			spec.Axis = world.AxisVertical
		default:
			return ObstacleSpec{}, fmt.Errorf("unknown axis %q", yo.Axis)
		}
		if err := checkDir(yo.Dir); err != nil {
			return ObstacleSpec{}, err
		}
		if yo.X == nil || yo.Y == nil {
			return ObstacleSpec{}, errors.New("linear obstacle needs x and y")
		}
		spec.Dir, spec.X, spec.Y = yo.Dir, *yo.X, *yo.Y

	case "spinner":
		spec.Kind = world.KindSpinner
		if yo.Center == nil {
			return ObstacleSpec{}, errors.New("spinner needs a center")
		}
		if yo.Radius < 0 {
			return ObstacleSpec{}, fmt.Errorf("radius must not be negative, got %d", yo.Radius)
		}
		spec.CenterX, spec.CenterY, spec.Radius = yo.Center.X, yo.Center.Y, yo.Radius
		// Angle zero sits east of the center.
		spec.X, spec.Y = spec.CenterX+spec.Radius, spec.CenterY
		if yo.X != nil && yo.Y != nil {
			spec.X, spec.Y = *yo.X, *yo.Y
		}

	case "pursuer":
		spec.Kind = world.KindPursuer
		if err := checkDir(yo.Dir); err != nil {
			return ObstacleSpec{}, err
		}
		if yo.Sight < 0 {
			return ObstacleSpec{}, fmt.Errorf("sight must not be negative, got %d", yo.Sight)
		}
		if yo.X == nil || yo.Y == nil {
			return ObstacleSpec{}, errors.New("pursuer needs x and y")
		}
		spec.Dir, spec.Sight, spec.X, spec.Y = yo.Dir, yo.Sight, *yo.X, *yo.Y

	default:
		return ObstacleSpec{}, fmt.Errorf("unknown kind %q", yo.Kind)
	}

	return spec, nil
}

func checkDir(dir int) error {
	if dir != 1 && dir != -1 {
		return fmt.Errorf("dir must be 1 or -1, got %d", dir)
	}
	return nil
}
