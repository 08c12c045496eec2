package maze

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var ErrStartOutOfBounds = errors.New("start cell is out of the maze")

// Generator carves perfect mazes with randomized depth-first backtracking.
// All randomness comes from the injected source, so a fixed seed reproduces a maze exactly.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator drawing from rng.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeededGenerator returns a generator backed by a PCG source seeded with seed.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed)))
}

// Generate builds a cols x rows grid and carves a maze into it starting from start.
func (gen *Generator) Generate(cols, rows int, start Position) (*Grid, error) {
	grid, err := NewGrid(cols, rows)
	if err != nil {
		return nil, err
	}

	if err := gen.Carve(grid, start); err != nil {
		return nil, err
	}
	return grid, nil
}

// Carve turns a fully walled grid into a spanning tree.
//
// From the current cell an unvisited neighbor is picked uniformly at random, the wall to it is
// opened and the walk moves on, pushing the current cell on the stack. A cell without unvisited
// neighbors pops the stack. Carving ends when both are exhausted, after exactly
// cols*rows-1 walls have been opened.
func (gen *Generator) Carve(g *Grid, start Position) error {
	current := g.At(start)
	if current == nil {
		return fmt.Errorf("%w: %s", ErrStartOutOfBounds, start)
	}

	current.Visited = true
	stack := make([]*Cell, 0, g.cols*g.rows)

	for {
		if d, ok := gen.pickUnvisited(g, current); ok {
			next := g.At(current.Position().Add(d))
			next.Visited = true
			stack = append(stack, current)
			g.openTowards(current, d)
			current = next
			continue
		}

		if len(stack) == 0 {
			return nil
		}
		current = pop(&stack)
	}
}

// pickUnvisited chooses the direction of one of the unvisited neighbors of c.
// It reports false when every neighbor has been visited.
func (gen *Generator) pickUnvisited(g *Grid, c *Cell) (Direction, bool) {
	var candidates []Direction
	for _, d := range Directions {
		if n := g.At(c.Position().Add(d)); n != nil && !n.Visited {
			candidates = append(candidates, d)
		}
	}

	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[gen.rng.IntN(len(candidates))], true
}

// IntN exposes the generator's random source for choices that must follow carving,
// such as start and goal placement.
func (gen *Generator) IntN(n int) int {
	return gen.rng.IntN(n)
}

// pop removes and returns the last element of a stack of cells.
func pop(s *[]*Cell) *Cell {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}
