package world

// Margin is the number of border tiles obstacles may never enter.
const Margin = 1

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// Grid is a rectangular tile map indexed as cells[y][x].
type Grid struct {
	width  int
	height int
	cells  [][]Tile
}

// NewGrid builds a grid from map rows. Short rows are padded with open floor.
func NewGrid(rows []string) *Grid {
	width := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}

	g := &Grid{
		width:  width,
		height: len(rows),
		cells:  make([][]Tile, len(rows)),
	}
	for y, row := range rows {
		line := make([]Tile, width)
		for x := range line {
			line[x] = TileOpen
		}
		for x, r := range []rune(row) {
			line[x] = Tile(r)
		}
		g.cells[y] = line
	}
	return g
}

// Width returns the grid width in tiles.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height in tiles.
func (g *Grid) Height() int {
	return g.height
}

// Contains reports whether (x, y) lies on the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// InBounds reports whether (x, y) lies inside the reserved border margin.
func (g *Grid) InBounds(x, y int) bool {
	return x >= Margin && x < g.width-Margin && y >= Margin && y < g.height-Margin
}

// At returns the tile at (x, y). Off-grid coordinates read as wall.
func (g *Grid) At(x, y int) Tile {
	if !g.Contains(x, y) {
		return TileWall
	}
	return g.cells[y][x]
}

// Set replaces the tile at (x, y). Off-grid coordinates are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.Contains(x, y) {
		return
	}
	g.cells[y][x] = t
}

// Passable reports whether (x, y) is on the grid and not impassable.
func (g *Grid) Passable(x, y int) bool {
	return g.Contains(x, y) && !g.cells[y][x].Impassable()
}

// Row returns row y as a string.
func (g *Grid) Row(y int) string {
	if y < 0 || y >= g.height {
		return ""
	}
	runes := make([]rune, g.width)
	for x, t := range g.cells[y] {
		runes[x] = rune(t)
	}
	return string(runes)
}
