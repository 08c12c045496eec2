package config

import (
	"os"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze-race/maze"
	"github.com/stretchr/testify/assert"
)

func TestInitConfig(t *testing.T) {
	t.Run("Defaults follow the reference game", func(t *testing.T) {
		for _, key := range []string{
			"VIEWPORT_WIDTH", "VIEWPORT_HEIGHT", "CELL_SIZE", "MAZE_SEED", "ENTRY_ROW",
			"ENTRY_SIDES", "MOVE_DELAY_MS", "TIME_LIMIT_MS", "TICK_RATE_HZ", "REDIS_ADDR",
		} {
			// Setenv restores the previous value when the test ends.
			t.Setenv(key, "")
			_ = os.Unsetenv(key)
		}

		c := initConfig()
		assert.Equal(t, 32, c.Cols())
		assert.Equal(t, 18, c.Rows())
		assert.Nil(t, c.MazeSeed)
		assert.Equal(t, 0, c.EntryRow)
		assert.Equal(t, []maze.Direction{maze.Top, maze.Left, maze.Right}, c.EntrySides)
		assert.Equal(t, 500*time.Millisecond, c.MoveDelay)
		assert.Equal(t, time.Minute, c.TimeLimit)
		assert.Equal(t, time.Second/30, c.TickInterval())
		assert.Empty(t, c.RedisAddr)
	})

	t.Run("Reads overrides from the environment", func(t *testing.T) {
		t.Setenv("VIEWPORT_WIDTH", "100")
		t.Setenv("VIEWPORT_HEIGHT", "50")
		t.Setenv("CELL_SIZE", "10")
		t.Setenv("MAZE_SEED", "1234")
		t.Setenv("ENTRY_ROW", "-1")
		t.Setenv("ENTRY_SIDES", "top")
		t.Setenv("MOVE_DELAY_MS", "250")
		t.Setenv("REDIS_ADDR", "localhost:6379")

		c := initConfig()
		assert.Equal(t, 10, c.Cols())
		assert.Equal(t, 5, c.Rows())
		if assert.NotNil(t, c.MazeSeed) {
			assert.Equal(t, uint64(1234), *c.MazeSeed)
		}
		assert.Equal(t, -1, c.EntryRow)
		assert.Equal(t, []maze.Direction{maze.Top}, c.EntrySides)
		assert.Equal(t, 250*time.Millisecond, c.MoveDelay)
		assert.Equal(t, "localhost:6379", c.RedisAddr)
	})
}

func TestGetEnvWithDefault(t *testing.T) {
	t.Setenv("MAZE_TEST_VALUE", "set")

	assert.Equal(t, "set", getEnvWithDefault("MAZE_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", getEnvWithDefault("MAZE_TEST_MISSING", "fallback"))
	assert.Equal(t, 7, getEnvAsIntWithDefault("MAZE_TEST_MISSING", 7))
}
