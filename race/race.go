/*
Package race runs a timed race through a generated maze between a human-controlled runner and
an autonomous agent that follows an A* route to the goal.

A Race is driven by a cooperative loop: each call to Tick applies pending inputs to the human,
advances the agent when its move delay has elapsed and then evaluates the win and lose
conditions, in that order. The maze is read-only once the race exists.
*/
package race

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze-race/maze"
	"github.com/beka-birhanu/vinom-maze-race/pathfind"
)

// Race-related errors.
var (
	ErrInvalidMoveDelay   = errors.New("move delay must be positive")
	ErrInvalidTimeLimit   = errors.New("time limit must be positive")
	ErrInvalidPosition    = errors.New("position is out of the maze")
	ErrInvalidEntryRow    = errors.New("entry row is out of the maze")
	ErrStartEqualsGoal    = errors.New("runner starts on the goal")
	ErrRaceAlreadyStopped = errors.New("race already finished")
)

// Status is the state of a race.
type Status int

const (
	Running Status = iota
	HumanWon
	AgentWon
	TimeUp
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case HumanWon:
		return "human_won"
	case AgentWon:
		return "agent_won"
	case TimeUp:
		return "time_up"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Finished reports whether the race is over.
func (s Status) Finished() bool {
	return s != Running
}

// Config describes a race.
type Config struct {
	Cols       int              // Cols is the number of maze columns.
	Rows       int              // Rows is the number of maze rows.
	Seed       uint64           // Seed drives maze carving and start/goal placement.
	EntryRow   int              // EntryRow is opened after carving; negative disables it.
	EntrySides []maze.Direction // EntrySides are the sides opened on EntryRow.
	MoveDelay  time.Duration    // MoveDelay is the time between two agent moves.
	TimeLimit  time.Duration    // TimeLimit ends the race when nobody reached the goal.

	// Optional fixed placements. When nil they are drawn at random: the human starts on the
	// first row, the goal sits on the last row and the agent starts next to the human.
	HumanStart *maze.Position
	AgentStart *maze.Position
	Goal       *maze.Position
}

// Race owns a maze, both controllers and the race clock.
type Race struct {
	grid      *maze.Grid
	human     *Human
	agent     *Autonomous
	goal      maze.Position
	startedAt time.Time
	endedAt   time.Time
	timeLimit time.Duration
	status    Status
}

// New generates the maze, places runners and goal, and plans the agent route.
// Configuration errors are returned before any carving happens.
func New(cfg Config, now time.Time) (*Race, error) {
	if cfg.Cols <= 0 || cfg.Rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", maze.ErrInvalidDimensions, cfg.Cols, cfg.Rows)
	}
	if cfg.MoveDelay <= 0 {
		return nil, ErrInvalidMoveDelay
	}
	if cfg.TimeLimit <= 0 {
		return nil, ErrInvalidTimeLimit
	}
	if cfg.EntryRow >= cfg.Rows {
		return nil, fmt.Errorf("%w: %d", ErrInvalidEntryRow, cfg.EntryRow)
	}

	gen := maze.NewSeededGenerator(cfg.Seed)
	grid, err := gen.Generate(cfg.Cols, cfg.Rows, maze.Position{})
	if err != nil {
		return nil, fmt.Errorf("generating maze: %w", err)
	}

	if cfg.EntryRow >= 0 {
		if err := grid.OpenRow(cfg.EntryRow, cfg.EntrySides...); err != nil {
			return nil, fmt.Errorf("opening entry row: %w", err)
		}
	}

	humanStart, err := place(grid, cfg.HumanStart, func() maze.Position {
		return maze.Position{X: gen.IntN(cfg.Cols), Y: 0}
	})
	if err != nil {
		return nil, err
	}

	goal, err := place(grid, cfg.Goal, func() maze.Position {
		if cfg.Rows == 1 && cfg.Cols > 1 {
			// Single row: draw among the other columns so the goal never sits under the human.
			x := gen.IntN(cfg.Cols - 1)
			if x >= humanStart.X {
				x++
			}
			return maze.Position{X: x, Y: 0}
		}
		return maze.Position{X: gen.IntN(cfg.Cols), Y: cfg.Rows - 1}
	})
	if err != nil {
		return nil, err
	}

	agentStart, err := place(grid, cfg.AgentStart, func() maze.Position { return humanStart })
	if err != nil {
		return nil, err
	}

	if humanStart == goal || agentStart == goal {
		return nil, ErrStartEqualsGoal
	}

	path := pathfind.FindPath(grid, agentStart, goal)

	return &Race{
		grid:      grid,
		human:     NewHuman(grid, humanStart),
		agent:     NewAutonomous(agentStart, path, cfg.MoveDelay, now),
		goal:      goal,
		startedAt: now,
		timeLimit: cfg.TimeLimit,
		status:    Running,
	}, nil
}

// place returns the fixed position when given, otherwise a drawn one, checking it is in the maze.
func place(grid *maze.Grid, fixed *maze.Position, draw func() maze.Position) (maze.Position, error) {
	pos := draw
	if fixed != nil {
		pos = func() maze.Position { return *fixed }
	}

	p := pos()
	if grid.At(p) == nil {
		return p, fmt.Errorf("%w: %s", ErrInvalidPosition, p)
	}
	return p, nil
}

// Tick runs one step of the race loop: inputs, agent, then win and lose checks.
func (r *Race) Tick(now time.Time, inputs []maze.Direction) Status {
	if r.status.Finished() {
		return r.status
	}

	for _, d := range inputs {
		r.human.TryMove(d)
	}

	r.agent.Tick(now)

	switch {
	case r.human.Position() == r.goal:
		r.finish(HumanWon, now)
	case r.agent.Position() == r.goal:
		r.finish(AgentWon, now)
	case now.Sub(r.startedAt) >= r.timeLimit:
		r.finish(TimeUp, now)
	}

	return r.status
}

// Stop ends a running race as timed out.
func (r *Race) Stop(now time.Time) error {
	if r.status.Finished() {
		return ErrRaceAlreadyStopped
	}
	r.finish(TimeUp, now)
	return nil
}

func (r *Race) finish(s Status, now time.Time) {
	r.status = s
	r.endedAt = now
}

// Status returns the current state of the race.
func (r *Race) Status() Status {
	return r.status
}

// Elapsed returns the race time at now, frozen once the race is over.
func (r *Race) Elapsed(now time.Time) time.Duration {
	if r.status.Finished() {
		now = r.endedAt
	}
	return now.Sub(r.startedAt)
}

// Remaining returns the time left before the race times out.
func (r *Race) Remaining(now time.Time) time.Duration {
	return max(r.timeLimit-r.Elapsed(now), 0)
}

// Grid returns the maze of the race.
func (r *Race) Grid() *maze.Grid {
	return r.grid
}

// Human returns the human controller.
func (r *Race) Human() *Human {
	return r.human
}

// Agent returns the autonomous controller.
func (r *Race) Agent() *Autonomous {
	return r.agent
}

// Goal returns the goal position.
func (r *Race) Goal() maze.Position {
	return r.goal
}
