package i

import (
	"context"
	"time"
)

// Score is one leaderboard entry.
type Score struct {
	Player  string        `json:"player"`
	Elapsed time.Duration `json:"-"`
	// ElapsedMs mirrors Elapsed for JSON consumers.
	ElapsedMs int64 `json:"elapsed_ms"`
}

// Leaderboard keeps the best winning time of each player.
type Leaderboard interface {
	// Record stores elapsed for player if it beats the player's previous best.
	Record(ctx context.Context, player string, elapsed time.Duration) error

	// Top returns up to n entries, fastest first.
	Top(ctx context.Context, n int64) ([]Score, error)
}
