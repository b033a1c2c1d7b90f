package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// seqSource replays a fixed sequence of offsets and records the ranges asked for.
type seqSource struct {
	vals  []int
	i     int
	calls [][2]int
}

func (s *seqSource) IntRange(lo, hi int) int {
	s.calls = append(s.calls, [2]int{lo, hi})
	v := lo
	if len(s.vals) > 0 {
		v = s.vals[s.i%len(s.vals)]
		s.i++
	}
	return core.Clamp(v, lo, hi)
}

func newTestSim(t *testing.T, vals ...int) (*Simulation, *seqSource) {
	t.Helper()
	src := &seqSource{vals: vals}
	return NewSimulation(config.DefaultConfig(), src, nil), src
}

func noInput() core.InputFrame {
	return core.NewInputFrame()
}

func jumpInput() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	return in
}
