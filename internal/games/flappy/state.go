package flappy

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// RoundState is the phase of the current round.
type RoundState int

const (
	RoundPlaying RoundState = iota
	RoundEnded
)

// String returns a human-readable name for the round state.
func (s RoundState) String() string {
	switch s {
	case RoundPlaying:
		return "playing"
	case RoundEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// EndReason records which terminal condition ended a round.
type EndReason string

const (
	EndNone      EndReason = ""
	EndBoundary  EndReason = "boundary"
	EndCollision EndReason = "collision"
)

// SimulationState is a read-only snapshot of the simulation after a tick.
// Renderers and hosts only ever see this value.
type SimulationState struct {
	Avatar     Avatar
	Obstacles  []Obstacle
	SpawnTimer float64
	Round      RoundState
	Reason     EndReason // set while Round == RoundEnded
	Held       float64   // seconds spent in RoundEnded so far
	Hold       float64   // seconds RoundEnded lasts before the reset
	Ticks      uint64    // gameplay ticks in the current round
	RoundTime  float64   // gameplay seconds in the current round
	Spawned    int       // obstacles spawned in the current round
	Rounds     int       // rounds ended since the simulation was created
}

// Ended reports whether the round is over and the terminal message should show.
func (s SimulationState) Ended() bool {
	return s.Round == RoundEnded
}

// RoundSummary describes a finished round to round-end observers.
type RoundSummary struct {
	Round    int
	Reason   EndReason
	Duration float64 // gameplay seconds
	Ticks    uint64
	Spawned  int
}

// Simulation owns all mutable game state and advances it one tick at a time.
// It is not safe for concurrent use; each host drives its own instance from a
// single goroutine.
type Simulation struct {
	cfg      config.GameConfig
	avatar   Avatar
	registry *Registry
	gen      *Generator
	logger   *log.Logger

	round     RoundState
	reason    EndReason
	held      float64
	ticks     uint64
	roundTime float64
	spawned   int
	rounds    int

	observers []func(RoundSummary)
}

// NewSimulation creates a simulation in the Playing state with initial conditions.
// A nil logger discards log output.
func NewSimulation(cfg config.GameConfig, src IntSource, logger *log.Logger) *Simulation {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Simulation{
		cfg:      cfg,
		registry: NewRegistry(),
		gen:      NewGenerator(cfg.Obstacles, cfg.World.Width, src),
		logger:   logger,
	}
	s.Reset()
	return s
}

// OnRoundEnd registers a callback invoked every time a round ends.
func (s *Simulation) OnRoundEnd(fn func(RoundSummary)) {
	s.observers = append(s.observers, fn)
}

// Config returns the configuration the simulation runs with.
func (s *Simulation) Config() config.GameConfig {
	return s.cfg
}

// Tick advances the simulation by dt seconds with the input polled this frame.
//
// While Playing, one tick runs: spawn timer, boundary check on the position
// reached last tick, jump and integration, scrolling and pruning, and the
// obstacle scan. Any terminal condition moves the round to Ended and freezes
// the world.
//
// While Ended, gameplay does not advance: dt only counts towards the
// game-over hold. Once the hold has elapsed the simulation resets and the
// remainder of dt is dropped, as if the frame clock had been restarted.
func (s *Simulation) Tick(dt float64, in core.InputFrame) SimulationState {
	if dt < 0 {
		dt = 0
	}

	if s.round == RoundEnded {
		s.held += dt
		if s.held >= s.cfg.Round.GameOverHold {
			s.Reset()
		}
		return s.State()
	}

	s.ticks++
	s.roundTime += dt

	if o, ok := s.gen.Advance(dt); ok {
		s.registry.Append(o)
		s.spawned++
	}

	if OutOfBounds(s.avatar, s.cfg.World.Height) {
		s.end(EndBoundary)
		return s.State()
	}

	s.avatar.Integrate(dt, in.Has(core.ActionJump), s.cfg.Physics)
	s.registry.Advance(dt, s.cfg.Obstacles.Speed)

	if _, hit := Collides(s.avatar, s.registry, s.cfg.World.Height); hit {
		s.end(EndCollision)
	}

	return s.State()
}

// Resume ends the game-over hold immediately and starts a fresh round.
// Hosts that realise the hold on their own clock call this once it elapsed.
// It does nothing while a round is being played.
func (s *Simulation) Resume() SimulationState {
	if s.round == RoundEnded {
		s.Reset()
	}
	return s.State()
}

// Reset restores the initial conditions: avatar at the start point and at
// rest, no obstacles, spawn timer at zero, Playing.
func (s *Simulation) Reset() {
	s.avatar = NewAvatar(s.cfg.Avatar)
	s.registry.Clear()
	s.gen.Reset()

	s.round = RoundPlaying
	s.reason = EndNone
	s.held = 0
	s.ticks = 0
	s.roundTime = 0
	s.spawned = 0
}

// end moves the round into Ended and notifies observers.
func (s *Simulation) end(reason EndReason) {
	s.round = RoundEnded
	s.reason = reason
	s.held = 0
	s.rounds++

	summary := RoundSummary{
		Round:    s.rounds,
		Reason:   reason,
		Duration: s.roundTime,
		Ticks:    s.ticks,
		Spawned:  s.spawned,
	}
	s.logger.Debug("round ended",
		"round", summary.Round,
		"reason", reason,
		"duration", summary.Duration,
		"ticks", summary.Ticks,
		"y", s.avatar.Pos.Y,
	)
	for _, fn := range s.observers {
		fn(summary)
	}
}

// State returns a snapshot of the current simulation state.
func (s *Simulation) State() SimulationState {
	return SimulationState{
		Avatar:     s.avatar,
		Obstacles:  s.registry.Obstacles(),
		SpawnTimer: s.gen.Timer(),
		Round:      s.round,
		Reason:     s.reason,
		Held:       s.held,
		Hold:       s.cfg.Round.GameOverHold,
		Ticks:      s.ticks,
		RoundTime:  s.roundTime,
		Spawned:    s.spawned,
		Rounds:     s.rounds,
	}
}
