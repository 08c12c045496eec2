// Package leaderboard stores the best winning race times in a Redis sorted set.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze-race/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

var ErrEmptyPlayer = errors.New("player name is empty")

// RedisLeaderboard keeps one score per player, the elapsed milliseconds of their fastest win.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	key    string
	logger i.Logger
}

// NewRedisLeaderboard initializes a RedisLeaderboard storing scores under key.
func NewRedisLeaderboard(client *redis.Client, key string, logger i.Logger) (*RedisLeaderboard, error) {
	if key == "" {
		return nil, errors.New("leaderboard key is empty")
	}
	if logger == nil {
		return nil, errors.New("logger is missing")
	}

	pool := goredis.NewPool(client)
	return &RedisLeaderboard{
		client: client,
		locker: redsync.New(pool),
		key:    key,
		logger: logger,
	}, nil
}

var _ i.Leaderboard = &RedisLeaderboard{}

// Record stores elapsed for player when it is faster than the stored best.
// The read-compare-write runs under a distributed lock so concurrent wins keep the minimum.
func (l *RedisLeaderboard) Record(ctx context.Context, player string, elapsed time.Duration) error {
	if player == "" {
		return ErrEmptyPlayer
	}

	mutex := l.locker.NewMutex(l.key + ":record_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("obtaining leaderboard lock: %w", err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	score := float64(elapsed.Milliseconds())
	best, err := l.client.ZScore(ctx, l.key, player).Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return err
	case best <= score:
		return nil
	}

	if err := l.client.ZAdd(ctx, l.key, redis.Z{Score: score, Member: player}).Err(); err != nil {
		return err
	}
	l.logger.Info("new best time", "player", player, "elapsed", elapsed)
	return nil
}

// Top returns up to n players with the lowest times.
func (l *RedisLeaderboard) Top(ctx context.Context, n int64) ([]i.Score, error) {
	if n <= 0 {
		return []i.Score{}, nil
	}

	entries, err := l.client.ZRangeWithScores(ctx, l.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]i.Score, 0, len(entries))
	for _, e := range entries {
		member, ok := e.Member.(string)
		if !ok {
			continue
		}
		scores = append(scores, NewScore(member, time.Duration(e.Score)*time.Millisecond))
	}
	return scores, nil
}

// NewScore builds a leaderboard entry from a player and elapsed time.
func NewScore(player string, elapsed time.Duration) i.Score {
	return i.Score{Player: player, Elapsed: elapsed, ElapsedMs: elapsed.Milliseconds()}
}
