package maze

// Cell represents a single square of the maze grid.
// It carries one wall flag per side and the visited mark used while carving.
type Cell struct {
	X          int  // X is the column of the cell.
	Y          int  // Y is the row of the cell.
	TopWall    bool // TopWall indicates whether there is a wall on the top side of the cell.
	RightWall  bool // RightWall indicates whether there is a wall on the right side of the cell.
	BottomWall bool // BottomWall indicates whether there is a wall on the bottom side of the cell.
	LeftWall   bool // LeftWall indicates whether there is a wall on the left side of the cell.
	Visited    bool // Visited is set once the generator has reached the cell.
}

func newCell(x, y int) *Cell {
	return &Cell{
		X:          x,
		Y:          y,
		TopWall:    true,
		RightWall:  true,
		BottomWall: true,
		LeftWall:   true,
	}
}

// Position returns the coordinate of the cell.
func (c *Cell) Position() Position {
	return Position{X: c.X, Y: c.Y}
}

// HasWall returns true if there is a wall on side d of the cell.
func (c *Cell) HasWall(d Direction) bool {
	switch d {
	case Top:
		return c.TopWall
	case Right:
		return c.RightWall
	case Bottom:
		return c.BottomWall
	case Left:
		return c.LeftWall
	default:
		return true
	}
}

// setWall sets the presence of a wall on side d of the cell.
// Callers are responsible for keeping the facing wall of the neighbour in sync.
func (c *Cell) setWall(d Direction, hasWall bool) {
	switch d {
	case Top:
		c.TopWall = hasWall
	case Right:
		c.RightWall = hasWall
	case Bottom:
		c.BottomWall = hasWall
	case Left:
		c.LeftWall = hasWall
	}
}

// Walls returns the wall flags in direction order (top, right, bottom, left).
func (c *Cell) Walls() [4]bool {
	return [4]bool{c.TopWall, c.RightWall, c.BottomWall, c.LeftWall}
}
