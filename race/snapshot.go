package race

import (
	"time"

	"github.com/beka-birhanu/vinom-maze-race/maze"
)

// CellState is the drawable state of a cell.
type CellState struct {
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Walls   [4]bool `json:"walls"` // top, right, bottom, left
	Visited bool    `json:"visited"`
}

// Snapshot is a copy of everything a presentation layer draws in one frame.
type Snapshot struct {
	Cols      int             `json:"cols"`
	Rows      int             `json:"rows"`
	Cells     []CellState     `json:"cells"`
	Human     maze.Position   `json:"human"`
	Agent     maze.Position   `json:"agent"`
	Goal      maze.Position   `json:"goal"`
	AgentPath []maze.Position `json:"agent_path"`
	Status    Status          `json:"status"`
	ElapsedMs int64           `json:"elapsed_ms"`
	LeftMs    int64           `json:"left_ms"`
}

// Snapshot copies the race state at now.
func (r *Race) Snapshot(now time.Time) Snapshot {
	cells := make([]CellState, 0, len(r.grid.Cells()))
	for _, c := range r.grid.Cells() {
		cells = append(cells, CellState{
			X:       c.X,
			Y:       c.Y,
			Walls:   c.Walls(),
			Visited: c.Visited,
		})
	}

	return Snapshot{
		Cols:      r.grid.Cols(),
		Rows:      r.grid.Rows(),
		Cells:     cells,
		Human:     r.human.Position(),
		Agent:     r.agent.Position(),
		Goal:      r.goal,
		AgentPath: append([]maze.Position(nil), r.agent.Path()...),
		Status:    r.status,
		ElapsedMs: r.Elapsed(now).Milliseconds(),
		LeftMs:    r.Remaining(now).Milliseconds(),
	}
}

// Render draws the race as ASCII art with H for the human, A for the agent and G for the goal.
func (r *Race) Render() string {
	return r.grid.Render(map[maze.Position]rune{
		r.goal:             'G',
		r.agent.Position(): 'A',
		r.human.Position(): 'H',
	})
}
