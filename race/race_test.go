package race

import (
	"strings"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze-race/maze"
	"github.com/beka-birhanu/vinom-maze-race/pathfind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{
		Cols:       8,
		Rows:       6,
		Seed:       99,
		EntryRow:   0,
		EntrySides: maze.DefaultEntrySides,
		MoveDelay:  500 * time.Millisecond,
		TimeLimit:  time.Minute,
	}
}

func ptr(p maze.Position) *maze.Position {
	return &p
}

func TestNew(t *testing.T) {
	t.Run("Places runners on the first row and goal on the last", func(t *testing.T) {
		r, err := New(testConfig(), epoch)
		require.NoError(t, err)

		assert.Equal(t, 0, r.Human().Position().Y)
		assert.Equal(t, r.Human().Position(), r.Agent().Position())
		assert.Equal(t, 5, r.Goal().Y)
		assert.Equal(t, Running, r.Status())

		path := r.Agent().Path()
		require.NotEmpty(t, path)
		assert.Equal(t, r.Agent().Position(), path[0])
		assert.Equal(t, r.Goal(), path[len(path)-1])
	})

	t.Run("Opens the entry row and keeps the maze connected", func(t *testing.T) {
		r, err := New(testConfig(), epoch)
		require.NoError(t, err)

		for x := 0; x < 8; x++ {
			c := r.Grid().CellAt(x, 0)
			assert.False(t, c.TopWall)
			assert.False(t, c.LeftWall)
			assert.False(t, c.RightWall)
		}
		assert.NoError(t, maze.VerifyConnected(r.Grid()))
	})

	t.Run("Negative entry row leaves a perfect maze", func(t *testing.T) {
		cfg := testConfig()
		cfg.EntryRow = -1
		r, err := New(cfg, epoch)
		require.NoError(t, err)

		assert.NoError(t, maze.Verify(r.Grid()))
	})

	t.Run("Same seed gives the same race", func(t *testing.T) {
		first, err := New(testConfig(), epoch)
		require.NoError(t, err)
		second, err := New(testConfig(), epoch)
		require.NoError(t, err)

		assert.Equal(t, first.Render(), second.Render())
		assert.Equal(t, first.Agent().Path(), second.Agent().Path())
	})

	t.Run("Single row never puts the goal under the human", func(t *testing.T) {
		cfg := testConfig()
		cfg.Rows = 1
		for seed := uint64(0); seed < 20; seed++ {
			cfg.Seed = seed
			r, err := New(cfg, epoch)
			require.NoError(t, err)
			assert.NotEqual(t, r.Human().Position(), r.Goal())
		}
	})

	t.Run("Rejects bad configuration", func(t *testing.T) {
		cfg := testConfig()
		cfg.Cols = 0
		_, err := New(cfg, epoch)
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)

		cfg = testConfig()
		cfg.MoveDelay = 0
		_, err = New(cfg, epoch)
		assert.ErrorIs(t, err, ErrInvalidMoveDelay)

		cfg = testConfig()
		cfg.TimeLimit = 0
		_, err = New(cfg, epoch)
		assert.ErrorIs(t, err, ErrInvalidTimeLimit)

		cfg = testConfig()
		cfg.EntryRow = 6
		_, err = New(cfg, epoch)
		assert.ErrorIs(t, err, ErrInvalidEntryRow)

		cfg = testConfig()
		cfg.Goal = ptr(maze.Position{X: 8, Y: 0})
		_, err = New(cfg, epoch)
		assert.ErrorIs(t, err, ErrInvalidPosition)

		cfg = testConfig()
		cfg.HumanStart = ptr(maze.Position{X: 1, Y: 1})
		cfg.AgentStart = ptr(maze.Position{X: 2, Y: 2})
		cfg.Goal = ptr(maze.Position{X: 1, Y: 1})
		_, err = New(cfg, epoch)
		assert.ErrorIs(t, err, ErrStartEqualsGoal)
	})
}

func TestTick(t *testing.T) {
	t.Run("Agent wins when the human stays put", func(t *testing.T) {
		r, err := New(testConfig(), epoch)
		require.NoError(t, err)

		steps := pathfind.Steps(r.Agent().Path())
		now := epoch
		for i := 0; i < steps; i++ {
			now = now.Add(500 * time.Millisecond)
			status := r.Tick(now, nil)
			if i < steps-1 {
				assert.Equal(t, Running, status)
			}
		}
		assert.Equal(t, AgentWon, r.Status())
		assert.Equal(t, r.Goal(), r.Agent().Position())
		assert.Equal(t, time.Duration(steps)*500*time.Millisecond, r.Elapsed(now.Add(time.Hour)))
	})

	t.Run("Human wins by following the shortest route", func(t *testing.T) {
		r, err := New(testConfig(), epoch)
		require.NoError(t, err)

		path := pathfind.FindPath(r.Grid(), r.Human().Position(), r.Goal())
		var inputs []maze.Direction
		for i := 1; i < len(path); i++ {
			d, ok := path[i-1].DirectionTo(path[i])
			require.True(t, ok)
			inputs = append(inputs, d)
		}

		// The human moves before the agent, so the whole route in one tick wins.
		assert.Equal(t, HumanWon, r.Tick(epoch.Add(500*time.Millisecond), inputs))
		assert.Equal(t, r.Goal(), r.Human().Position())
	})

	t.Run("Human is checked before the agent on the same tick", func(t *testing.T) {
		cfg := testConfig()
		cfg.Rows, cfg.Cols = 1, 3
		cfg.EntryRow = -1
		cfg.HumanStart = ptr(maze.Position{X: 1, Y: 0})
		cfg.AgentStart = ptr(maze.Position{X: 1, Y: 0})
		cfg.Goal = ptr(maze.Position{X: 2, Y: 0})
		r, err := New(cfg, epoch)
		require.NoError(t, err)

		assert.Equal(t, HumanWon, r.Tick(epoch.Add(time.Second), []maze.Direction{maze.Right}))
		assert.Equal(t, maze.Position{X: 2, Y: 0}, r.Agent().Position())
	})

	t.Run("Blocked inputs are ignored", func(t *testing.T) {
		cfg := testConfig()
		cfg.EntryRow = -1
		cfg.HumanStart = ptr(maze.Position{X: 0, Y: 0})
		r, err := New(cfg, epoch)
		require.NoError(t, err)

		r.Tick(epoch, []maze.Direction{maze.Top, maze.Left})
		assert.Equal(t, maze.Position{}, r.Human().Position())
	})

	t.Run("Times out and then ignores further ticks", func(t *testing.T) {
		cfg := testConfig()
		cfg.MoveDelay = time.Hour
		cfg.TimeLimit = 10 * time.Second
		r, err := New(cfg, epoch)
		require.NoError(t, err)

		assert.Equal(t, Running, r.Tick(epoch.Add(9*time.Second), nil))
		assert.Equal(t, time.Second, r.Remaining(epoch.Add(9*time.Second)))
		assert.Equal(t, TimeUp, r.Tick(epoch.Add(10*time.Second), nil))

		human := r.Human().Position()
		assert.Equal(t, TimeUp, r.Tick(epoch.Add(11*time.Second), maze.Directions))
		assert.Equal(t, human, r.Human().Position())
		assert.Zero(t, r.Remaining(epoch.Add(time.Hour)))
	})

	t.Run("Stop ends a running race once", func(t *testing.T) {
		r, err := New(testConfig(), epoch)
		require.NoError(t, err)

		assert.NoError(t, r.Stop(epoch.Add(time.Second)))
		assert.Equal(t, TimeUp, r.Status())
		assert.ErrorIs(t, r.Stop(epoch.Add(2*time.Second)), ErrRaceAlreadyStopped)
	})
}

func TestSnapshot(t *testing.T) {
	r, err := New(testConfig(), epoch)
	require.NoError(t, err)

	s := r.Snapshot(epoch.Add(1500 * time.Millisecond))
	assert.Equal(t, 8, s.Cols)
	assert.Equal(t, 6, s.Rows)
	assert.Len(t, s.Cells, 48)
	assert.Equal(t, r.Goal(), s.Goal)
	assert.Equal(t, r.Human().Position(), s.Human)
	assert.Equal(t, Running, s.Status)
	assert.Equal(t, int64(1500), s.ElapsedMs)
	assert.Equal(t, int64(58500), s.LeftMs)
	assert.Equal(t, r.Agent().Path(), s.AgentPath)

	rendered := r.Render()
	assert.Equal(t, 1, strings.Count(rendered, "G"))
	assert.Equal(t, 1, strings.Count(rendered, "H"))
}
