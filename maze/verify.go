package maze

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

var (
	ErrAsymmetricWall = errors.New("wall is open on one side only")
	ErrDisconnected   = errors.New("maze is not connected")
	ErrCycle          = errors.New("maze contains a cycle")
)

// Verify checks that g is a perfect maze: walls agree between neighbors, every cell is
// reachable from every other and there are exactly cols*rows-1 connections.
func Verify(g *Grid) error {
	if err := VerifyConnected(g); err != nil {
		return err
	}

	if edges := g.Connections(); edges != len(g.cells)-1 {
		return fmt.Errorf("%w: %d connections for %d cells", ErrCycle, edges, len(g.cells))
	}
	return nil
}

// VerifyConnected checks wall symmetry and that every cell is reachable, allowing cycles.
// A maze whose entry row has been opened still satisfies it.
func VerifyConnected(g *Grid) error {
	for _, c := range g.cells {
		for _, d := range []Direction{Right, Bottom} {
			n := g.At(c.Position().Add(d))
			if n == nil {
				continue
			}
			if c.HasWall(d) != n.HasWall(d.Opposite()) {
				return fmt.Errorf("%w: %s %s", ErrAsymmetricWall, c.Position(), d)
			}
		}
	}

	reached := Reachable(g, g.cells[0].Position())
	if reached.Size() != len(g.cells) {
		return fmt.Errorf("%w: reached %d of %d cells", ErrDisconnected, reached.Size(), len(g.cells))
	}
	return nil
}

// Reachable collects every position connected to start through open walls.
func Reachable(g *Grid, start Position) mapset.Set[Position] {
	visited := mapset.New[Position]()
	if !g.InBound(start.X, start.Y) {
		return visited
	}

	queue := []Position{start}
	visited.Put(start)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range Directions {
			next, ok := g.Step(current, d)
			if !ok || visited.Has(next) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}

	return visited
}
