package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	t.Run("Creates every cell closed and unvisited", func(t *testing.T) {
		g, err := NewGrid(4, 3)
		require.NoError(t, err)

		assert.Equal(t, 4, g.Cols())
		assert.Equal(t, 3, g.Rows())
		assert.Len(t, g.Cells(), 12)
		for i, c := range g.Cells() {
			assert.Equal(t, i, c.X+c.Y*g.Cols())
			assert.Equal(t, [4]bool{true, true, true, true}, c.Walls())
			assert.False(t, c.Visited)
		}
		assert.Zero(t, g.Connections())
	})

	t.Run("Rejects non-positive dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {0, 0}} {
			_, err := NewGrid(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		}
	})
}

func TestCellAt(t *testing.T) {
	g, err := NewGrid(3, 2)
	require.NoError(t, err)

	c := g.CellAt(2, 1)
	require.NotNil(t, c)
	assert.Equal(t, Position{X: 2, Y: 1}, c.Position())

	assert.Nil(t, g.CellAt(-1, 0))
	assert.Nil(t, g.CellAt(3, 0))
	assert.Nil(t, g.CellAt(0, 2))
	assert.Nil(t, g.At(Position{X: 0, Y: -1}))
}

func TestNeighbors(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)

	t.Run("Center cell lists top, right, bottom, left", func(t *testing.T) {
		var got []Position
		for _, n := range g.Neighbors(g.CellAt(1, 1)) {
			got = append(got, n.Position())
		}
		assert.Equal(t, []Position{{1, 0}, {2, 1}, {1, 2}, {0, 1}}, got)
	})

	t.Run("Corner cell only has in-bound neighbors", func(t *testing.T) {
		var got []Position
		for _, n := range g.Neighbors(g.CellAt(0, 0)) {
			got = append(got, n.Position())
		}
		assert.Equal(t, []Position{{1, 0}, {0, 1}}, got)
	})
}

func TestOpenWall(t *testing.T) {
	t.Run("Opens both facing walls", func(t *testing.T) {
		g, err := NewGrid(2, 2)
		require.NoError(t, err)

		a, b := g.CellAt(0, 0), g.CellAt(1, 0)
		require.NoError(t, g.OpenWall(a, b))
		assert.False(t, a.RightWall)
		assert.False(t, b.LeftWall)
		assert.True(t, a.BottomWall)

		c := g.CellAt(0, 1)
		require.NoError(t, g.OpenWall(c, a))
		assert.False(t, c.TopWall)
		assert.False(t, a.BottomWall)
		assert.Equal(t, 2, g.Connections())
	})

	t.Run("Rejects non-adjacent cells without changes", func(t *testing.T) {
		g, err := NewGrid(3, 3)
		require.NoError(t, err)

		a, b := g.CellAt(0, 0), g.CellAt(1, 1)
		assert.ErrorIs(t, g.OpenWall(a, b), ErrNotAdjacent)
		assert.ErrorIs(t, g.OpenWall(a, a), ErrNotAdjacent)
		assert.Equal(t, [4]bool{true, true, true, true}, a.Walls())
		assert.Equal(t, [4]bool{true, true, true, true}, b.Walls())
	})
}

func TestOpenTowards(t *testing.T) {
	g, err := NewGrid(2, 2)
	require.NoError(t, err)

	g.openTowards(g.CellAt(0, 0), Bottom)
	assert.False(t, g.CellAt(0, 0).BottomWall)
	assert.False(t, g.CellAt(0, 1).TopWall)

	g.openTowards(g.CellAt(1, 0), Top)
	assert.False(t, g.CellAt(1, 0).TopWall)
	assert.Equal(t, 1, g.Connections())
}

func TestIsPassableAndStep(t *testing.T) {
	g, err := NewGrid(2, 1)
	require.NoError(t, err)
	require.NoError(t, g.OpenWall(g.CellAt(0, 0), g.CellAt(1, 0)))

	assert.True(t, g.IsPassable(g.CellAt(0, 0), Right))
	assert.False(t, g.IsPassable(g.CellAt(0, 0), Bottom))
	assert.False(t, g.IsPassable(nil, Right))

	next, ok := g.Step(Position{X: 0, Y: 0}, Right)
	assert.True(t, ok)
	assert.Equal(t, Position{X: 1, Y: 0}, next)

	next, ok = g.Step(Position{X: 0, Y: 0}, Top)
	assert.False(t, ok)
	assert.Equal(t, Position{X: 0, Y: 0}, next)
}

func TestOpenRow(t *testing.T) {
	t.Run("Opens top, left and right keeping bottom closed", func(t *testing.T) {
		g, err := NewGrid(4, 3)
		require.NoError(t, err)

		require.NoError(t, g.OpenRow(0, DefaultEntrySides...))
		for x := 0; x < 4; x++ {
			c := g.CellAt(x, 0)
			assert.False(t, c.TopWall)
			assert.False(t, c.LeftWall)
			assert.False(t, c.RightWall)
			assert.True(t, c.BottomWall)
		}
		for x := 0; x < 4; x++ {
			assert.Equal(t, [4]bool{true, true, true, true}, g.CellAt(x, 1).Walls())
		}
		assert.Equal(t, 3, g.Connections())
	})

	t.Run("Opening bottom keeps walls symmetric", func(t *testing.T) {
		g, err := NewGrid(3, 2)
		require.NoError(t, err)

		require.NoError(t, g.OpenRow(0, Bottom))
		for x := 0; x < 3; x++ {
			assert.False(t, g.CellAt(x, 0).BottomWall)
			assert.False(t, g.CellAt(x, 1).TopWall)
		}
	})

	t.Run("Boundary sides are cleared on the row only", func(t *testing.T) {
		g, err := NewGrid(3, 2)
		require.NoError(t, err)

		require.NoError(t, g.OpenRow(1, Bottom))
		for x := 0; x < 3; x++ {
			assert.False(t, g.CellAt(x, 1).BottomWall)
			assert.True(t, g.CellAt(x, 0).BottomWall)
		}
	})

	t.Run("Rejects a row outside the grid", func(t *testing.T) {
		g, err := NewGrid(3, 2)
		require.NoError(t, err)

		assert.ErrorIs(t, g.OpenRow(2, Top), ErrRowOutOfBounds)
		assert.ErrorIs(t, g.OpenRow(-1, Top), ErrRowOutOfBounds)
		assert.ErrorIs(t, g.OpenRow(0, Direction(9)), ErrUnknownDirection)
	})
}

func TestRender(t *testing.T) {
	g, err := NewGrid(2, 1)
	require.NoError(t, err)
	require.NoError(t, g.OpenWall(g.CellAt(0, 0), g.CellAt(1, 0)))

	expected := "+---+---+\n" +
		"|       |\n" +
		"+---+---+\n"
	assert.Equal(t, expected, g.String())

	expected = "+---+---+\n" +
		"| H     |\n" +
		"+---+---+\n"
	assert.Equal(t, expected, g.Render(map[Position]rune{{X: 0, Y: 0}: 'H'}))
}
