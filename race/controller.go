package race

import (
	"time"

	"github.com/beka-birhanu/vinom-maze-race/maze"
)

// Human moves one cell per directional input, through open walls only.
type Human struct {
	grid *maze.Grid
	pos  maze.Position
}

// NewHuman places a human-controlled runner at start.
func NewHuman(grid *maze.Grid, start maze.Position) *Human {
	return &Human{grid: grid, pos: start}
}

// TryMove attempts one step in direction d. Blocked moves leave the position unchanged.
func (h *Human) TryMove(d maze.Direction) bool {
	next, ok := h.grid.Step(h.pos, d)
	if !ok {
		return false
	}
	h.pos = next
	return true
}

// Position returns the current cell of the runner.
func (h *Human) Position() maze.Position {
	return h.pos
}

// Autonomous follows a precomputed path, one cell every moveDelay.
type Autonomous struct {
	pos       maze.Position
	path      []maze.Position
	cursor    int // index of pos in path
	moveDelay time.Duration
	lastMove  time.Time
}

// NewAutonomous creates an agent at start that will walk path. An empty path never moves.
func NewAutonomous(start maze.Position, path []maze.Position, moveDelay time.Duration, now time.Time) *Autonomous {
	return &Autonomous{
		pos:       start,
		path:      path,
		moveDelay: moveDelay,
		lastMove:  now,
	}
}

// Tick advances the agent to the next path cell once moveDelay has passed since its last move.
// It reports whether the agent moved.
func (a *Autonomous) Tick(now time.Time) bool {
	if a.Done() || now.Sub(a.lastMove) < a.moveDelay {
		return false
	}

	a.cursor++
	a.pos = a.path[a.cursor]
	a.lastMove = now
	return true
}

// Done reports whether the agent has nothing left to walk.
func (a *Autonomous) Done() bool {
	return a.cursor >= len(a.path)-1
}

// Position returns the current cell of the agent.
func (a *Autonomous) Position() maze.Position {
	return a.pos
}

// Path returns the route the agent follows.
func (a *Autonomous) Path() []maze.Position {
	return a.path
}
