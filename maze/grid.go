/*
Package maze provides tools for creating and carving rectangular mazes.

It defines the `Grid` structure, composed of `Cell` objects that carry wall flags on each
side, and a `Generator` that carves a perfect maze into a grid with randomized depth-first
backtracking. Walls are always opened in pairs so that two adjacent cells agree on the wall
between them.

Utility functions enable neighbor detection, move validation, spanning-tree verification
and ASCII visualization of the maze.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrNotAdjacent       = errors.New("cells are not adjacent")
	ErrRowOutOfBounds    = errors.New("row is out of the maze")
)

// Grid is a cols x rows collection of cells addressed by the linear index x + y*cols.
type Grid struct {
	cols  int
	rows  int
	cells []*Cell
}

// NewGrid creates a grid with every wall closed and no cell visited.
func NewGrid(cols, rows int) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cols, rows)
	}

	cells := make([]*Cell, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cells = append(cells, newCell(x, y))
		}
	}

	return &Grid{
		cols:  cols,
		rows:  rows,
		cells: cells,
	}, nil
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cells returns every cell in index order. The slice must not be modified.
func (g *Grid) Cells() []*Cell {
	return g.cells
}

// InBound reports whether (x, y) lies inside the grid.
func (g *Grid) InBound(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// CellAt returns the cell at (x, y), or nil when the coordinate is out of bounds.
func (g *Grid) CellAt(x, y int) *Cell {
	if !g.InBound(x, y) {
		return nil
	}
	return g.cells[x+y*g.cols]
}

// At returns the cell at p, or nil when p is out of bounds.
func (g *Grid) At(p Position) *Cell {
	return g.CellAt(p.X, p.Y)
}

// Neighbors returns the in-bound cells adjacent to c, in the order top, right, bottom, left.
func (g *Grid) Neighbors(c *Cell) []*Cell {
	result := make([]*Cell, 0, len(Directions))
	for _, d := range Directions {
		if n := g.At(c.Position().Add(d)); n != nil {
			result = append(result, n)
		}
	}
	return result
}

// OpenWall removes the wall between two adjacent cells, on both sides.
func (g *Grid) OpenWall(a, b *Cell) error {
	d, ok := a.Position().DirectionTo(b.Position())
	if !ok {
		return fmt.Errorf("%w: %s and %s", ErrNotAdjacent, a.Position(), b.Position())
	}

	g.openTowards(a, d)
	return nil
}

// openTowards opens side d of c and, when a cell lies beyond it, that cell's facing side.
// d must be valid.
func (g *Grid) openTowards(c *Cell, d Direction) {
	c.setWall(d, false)
	if n := g.At(c.Position().Add(d)); n != nil {
		n.setWall(d.Opposite(), false)
	}
}

// IsPassable reports whether the wall on side d of c is open.
// It says nothing about whether a cell exists on the other side.
func (g *Grid) IsPassable(c *Cell, d Direction) bool {
	return c != nil && d.Valid() && !c.HasWall(d)
}

// Step returns the position reached by moving from p in direction d.
// The move is legal only if the wall is open and the destination is in bounds.
func (g *Grid) Step(p Position, d Direction) (Position, bool) {
	if !g.IsPassable(g.At(p), d) {
		return p, false
	}

	next := p.Add(d)
	if !g.InBound(next.X, next.Y) {
		return p, false
	}
	return next, true
}

// OpenRow opens the given sides of every cell on row. Sides facing another cell are opened
// on both cells; sides on the outer boundary only exist on one cell.
func (g *Grid) OpenRow(row int, sides ...Direction) error {
	if row < 0 || row >= g.rows {
		return fmt.Errorf("%w: %d", ErrRowOutOfBounds, row)
	}

	for x := 0; x < g.cols; x++ {
		c := g.CellAt(x, row)
		for _, d := range sides {
			if !d.Valid() {
				return fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
			}
			g.openTowards(c, d)
		}
	}
	return nil
}

// Connections counts the open walls shared by two cells.
func (g *Grid) Connections() int {
	count := 0
	for _, c := range g.cells {
		// Right and bottom only, so each shared wall is counted once.
		if c.X+1 < g.cols && !c.RightWall {
			count++
		}
		if c.Y+1 < g.rows && !c.BottomWall {
			count++
		}
	}
	return count
}

// String provides a textual representation of the maze.
func (g *Grid) String() string {
	return g.Render(nil)
}

// Render draws the maze as ASCII art, placing markers at their positions.
func (g *Grid) Render(markers map[Position]rune) string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+")
	for x := 0; x < g.cols; x++ {
		if g.CellAt(x, 0).TopWall {
			output.WriteString("---+")
		} else {
			output.WriteString("   +")
		}
	}
	output.WriteString("\n")

	for y := 0; y < g.rows; y++ {
		// Cell rows
		if g.CellAt(0, y).LeftWall {
			output.WriteString("|")
		} else {
			output.WriteString(" ")
		}
		for x := 0; x < g.cols; x++ {
			cell := g.CellAt(x, y)
			if marker, ok := markers[cell.Position()]; ok {
				output.WriteString(" " + string(marker) + " ")
			} else {
				output.WriteString("   ")
			}

			if cell.RightWall {
				output.WriteString("|")
			} else {
				output.WriteString(" ")
			}
		}
		output.WriteString("\n")

		// Wall rows
		output.WriteString("+")
		for x := 0; x < g.cols; x++ {
			if g.CellAt(x, y).BottomWall {
				output.WriteString("---+")
			} else {
				output.WriteString("   +")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}
