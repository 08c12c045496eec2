package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze-race/maze"
	"github.com/beka-birhanu/vinom-maze-race/race"
	"github.com/google/uuid"
)

// RaceSessionManager creates races and relays inputs and state between them and clients.
type RaceSessionManager interface {
	// NewSession starts a race for player. A nil seed draws a fresh maze.
	NewSession(player string, seed *uint64) (uuid.UUID, error)

	// Move queues a directional input for the human runner of a race.
	Move(id uuid.UUID, d maze.Direction) error

	// Snapshot returns the latest published state of a race.
	Snapshot(id uuid.UUID) (race.Snapshot, error)

	// Render returns the latest ASCII rendering of a race.
	Render(id uuid.UUID) (string, error)

	// Leaderboard returns the n fastest winning times.
	Leaderboard(ctx context.Context, n int64) ([]Score, error)
}
