package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze-race/maze"
	"github.com/beka-birhanu/vinom-maze-race/race"
	"github.com/beka-birhanu/vinom-maze-race/service/i"
	"github.com/google/uuid"
)

const (
	defaultTickInterval = time.Second / 30
	defaultSessionTTL   = 5 * time.Minute
	inputQueueSize      = 64
	recordTimeout       = 2 * time.Second
)

var (
	ErrSessionNotFound   = errors.New("race session not found")
	ErrInputQueueFull    = errors.New("too many pending inputs")
	ErrRaceFinished      = errors.New("race is already over")
	ErrNoLeaderboard     = errors.New("leaderboard is not configured")
	ErrMissingRaceConfig = errors.New("race config is missing")
)

// session is a race together with the channels feeding its loop and its last published state.
type session struct {
	race     *race.Race
	player   string
	inputs   chan maze.Direction
	stop     chan struct{}
	snapshot race.Snapshot
	render   string
	sync.RWMutex
}

// RaceSessionManager runs every race in its own loop. Only that loop touches the race;
// requests reach it through the input channel and read the published snapshot.
type RaceSessionManager struct {
	raceConfig   race.Config
	fixedSeed    *uint64
	tickInterval time.Duration
	sessionTTL   time.Duration
	leaderboard  i.Leaderboard
	logger       i.Logger
	now          func() time.Time
	sessions     map[uuid.UUID]*session
	wg           sync.WaitGroup
	sync.RWMutex
}

// Config holds the dependencies of a RaceSessionManager.
type Config struct {
	RaceConfig   *race.Config     // Template for new races; Seed is replaced per session
	FixedSeed    *uint64          // Seed used when a request names none; nil draws one per race
	TickInterval time.Duration    // Time between two loop iterations
	SessionTTL   time.Duration    // How long finished races stay queryable
	Leaderboard  i.Leaderboard    // Optional store for winning times
	Logger       i.Logger         // Logger for session events
	Clock        func() time.Time // Optional clock, time.Now by default
}

// NewRaceSessionManager creates a manager with no running sessions.
func NewRaceSessionManager(c *Config) (*RaceSessionManager, error) {
	if c.RaceConfig == nil {
		return nil, ErrMissingRaceConfig
	}
	if c.Logger == nil {
		return nil, errors.New("logger is missing")
	}

	rsm := &RaceSessionManager{
		raceConfig:   *c.RaceConfig,
		fixedSeed:    c.FixedSeed,
		tickInterval: c.TickInterval,
		sessionTTL:   c.SessionTTL,
		leaderboard:  c.Leaderboard,
		logger:       c.Logger,
		now:          c.Clock,
		sessions:     make(map[uuid.UUID]*session),
	}

	if rsm.tickInterval <= 0 {
		rsm.tickInterval = defaultTickInterval
	}
	if rsm.sessionTTL <= 0 {
		rsm.sessionTTL = defaultSessionTTL
	}
	if rsm.now == nil {
		rsm.now = time.Now
	}
	return rsm, nil
}

var _ i.RaceSessionManager = &RaceSessionManager{}

// NewSession generates a race and starts its loop. A nil seed draws a random one.
func (m *RaceSessionManager) NewSession(player string, seed *uint64) (uuid.UUID, error) {
	cfg := m.raceConfig
	switch {
	case seed != nil:
		cfg.Seed = *seed
	case m.fixedSeed != nil:
		cfg.Seed = *m.fixedSeed
	default:
		cfg.Seed = rand.Uint64()
	}

	r, err := race.New(cfg, m.now())
	if err != nil {
		m.logger.Error("creating race", "player", player, "err", err)
		return uuid.Nil, err
	}

	s := &session{
		race:   r,
		player: player,
		inputs: make(chan maze.Direction, inputQueueSize),
		stop:   make(chan struct{}),
	}
	s.publish(m.now())

	sessionID := m.saveSession(s)
	m.wg.Add(1)
	go m.run(sessionID, s)

	m.logger.Info("started new race",
		"session", sessionID, "player", player, "seed", cfg.Seed,
		"cols", cfg.Cols, "rows", cfg.Rows, "agent_steps", len(r.Agent().Path())-1)
	return sessionID, nil
}

// saveSession stores s under a fresh ID.
func (m *RaceSessionManager) saveSession(s *session) uuid.UUID {
	m.Lock()
	defer m.Unlock()

	sessionID := uuid.New()
	for {
		if _, ok := m.sessions[sessionID]; !ok {
			break
		}
		sessionID = uuid.New()
	}

	m.sessions[sessionID] = s
	return sessionID
}

// run is the race loop: drain inputs, tick, publish, until the race ends or is stopped.
func (m *RaceSessionManager) run(id uuid.UUID, s *session) {
	defer m.wg.Done()
	ticker := time.NewTicker(m.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			now := m.now()
			_ = s.race.Stop(now)
			s.publish(now)
			return
		case <-ticker.C:
			now := m.now()
			status := s.race.Tick(now, drain(s.inputs))
			s.publish(now)
			if status.Finished() {
				m.finish(id, s, now)
				return
			}
		}
	}
}

// drain collects every input queued so far without blocking.
func drain(inputs <-chan maze.Direction) []maze.Direction {
	var pending []maze.Direction
	for {
		select {
		case d := <-inputs:
			pending = append(pending, d)
		default:
			return pending
		}
	}
}

// finish records a human win and schedules the session for removal.
func (m *RaceSessionManager) finish(id uuid.UUID, s *session, now time.Time) {
	status := s.race.Status()
	elapsed := s.race.Elapsed(now)
	m.logger.Info("race finished", "session", id, "player", s.player, "status", status, "elapsed", elapsed)

	if status == race.HumanWon && m.leaderboard != nil && s.player != "" {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := m.leaderboard.Record(ctx, s.player, elapsed); err != nil {
			m.logger.Error("recording leaderboard score", "player", s.player, "err", err)
		}
	}

	time.AfterFunc(m.sessionTTL, func() { m.clean(id) })
}

// publish copies the race state for readers.
func (s *session) publish(now time.Time) {
	snapshot := s.race.Snapshot(now)
	render := s.race.Render()

	s.Lock()
	defer s.Unlock()
	s.snapshot = snapshot
	s.render = render
}

// Move queues an input for the next tick of the race.
func (m *RaceSessionManager) Move(id uuid.UUID, d maze.Direction) error {
	s, err := m.session(id)
	if err != nil {
		return err
	}

	s.RLock()
	finished := s.snapshot.Status.Finished()
	s.RUnlock()
	if finished {
		return ErrRaceFinished
	}

	select {
	case s.inputs <- d:
		return nil
	default:
		m.logger.Warning("dropping input, queue full", "session", id)
		return ErrInputQueueFull
	}
}

// Snapshot returns the state published by the last tick.
func (m *RaceSessionManager) Snapshot(id uuid.UUID) (race.Snapshot, error) {
	s, err := m.session(id)
	if err != nil {
		return race.Snapshot{}, err
	}

	s.RLock()
	defer s.RUnlock()
	return s.snapshot, nil
}

// Render returns the ASCII drawing published by the last tick.
func (m *RaceSessionManager) Render(id uuid.UUID) (string, error) {
	s, err := m.session(id)
	if err != nil {
		return "", err
	}

	s.RLock()
	defer s.RUnlock()
	return s.render, nil
}

// Leaderboard returns the n fastest wins.
func (m *RaceSessionManager) Leaderboard(ctx context.Context, n int64) ([]i.Score, error) {
	if m.leaderboard == nil {
		return nil, ErrNoLeaderboard
	}
	return m.leaderboard.Top(ctx, n)
}

func (m *RaceSessionManager) session(id uuid.UUID) (*session, error) {
	m.RLock()
	defer m.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *RaceSessionManager) clean(id uuid.UUID) {
	m.Lock()
	defer m.Unlock()
	delete(m.sessions, id)
}

// StopAll ends every running race and waits for their loops to exit.
func (m *RaceSessionManager) StopAll() {
	m.Lock()
	for _, s := range m.sessions {
		s.stopOnce()
	}
	m.Unlock()

	m.wg.Wait()
}

// stopOnce closes the stop channel if the loop has not been stopped yet.
func (s *session) stopOnce() {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
}
