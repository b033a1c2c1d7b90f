package flappy

import (
	"testing"

	"github.com/vovakirdan/flapper/internal/config"
)

func TestGeneratorSpawnCadence(t *testing.T) {
	src := &seqSource{vals: []int{0}}
	g := NewGenerator(config.DefaultConfig().Obstacles, 800, src)

	if _, ok := g.Advance(1.4); ok {
		t.Fatal("no obstacle should spawn before the interval")
	}
	if !approx(g.Timer(), 1.4) {
		t.Errorf("timer = %v, expected 1.4", g.Timer())
	}

	o, ok := g.Advance(0.2)
	if !ok {
		t.Fatal("crossing the interval should spawn an obstacle")
	}
	if g.Timer() != 0 {
		t.Errorf("timer should reset to 0 after a spawn, got %v", g.Timer())
	}
	if o.X != 800 {
		t.Errorf("obstacle should spawn at the right edge, got x=%v", o.X)
	}
	if o.Width != 60 {
		t.Errorf("obstacle width = %v, expected 60", o.Width)
	}
}

func TestGeneratorAtMostOneSpawnPerCall(t *testing.T) {
	g := NewGenerator(config.DefaultConfig().Obstacles, 800, &seqSource{})

	if _, ok := g.Advance(10); !ok {
		t.Fatal("a long frame should still spawn")
	}
	if g.Timer() != 0 {
		t.Errorf("timer = %v, expected 0", g.Timer())
	}
	if _, ok := g.Advance(0); ok {
		t.Error("a long frame must not leave spawns owed to later frames")
	}
}

func TestGeneratorExactInterval(t *testing.T) {
	g := NewGenerator(config.DefaultConfig().Obstacles, 800, &seqSource{})
	if _, ok := g.Advance(1.5); !ok {
		t.Error("reaching the interval exactly should spawn")
	}
}

func TestGapInvariant(t *testing.T) {
	src := NewRandSource(7)
	g := NewGenerator(config.DefaultConfig().Obstacles, 800, src)

	for i := 0; i < 2000; i++ {
		o, ok := g.Advance(1.5)
		if !ok {
			t.Fatal("expected a spawn every interval")
		}
		if o.GapBottom-o.GapTop != 150 {
			t.Fatalf("gap = %v, expected 150", o.GapBottom-o.GapTop)
		}
		if o.GapTop < 100 || o.GapTop > 400 {
			t.Fatalf("gap top %v outside [100, 400]", o.GapTop)
		}
	}
}

func TestGapRangeRequested(t *testing.T) {
	src := &seqSource{vals: []int{0, 300, 123}}
	g := NewGenerator(config.DefaultConfig().Obstacles, 800, src)

	want := []float64{100, 400, 223}
	for i, w := range want {
		o, _ := g.Advance(1.5)
		if o.GapTop != w {
			t.Errorf("spawn %d: gap top = %v, expected %v", i, o.GapTop, w)
		}
	}
	for _, c := range src.calls {
		if c != [2]int{0, 300} {
			t.Errorf("generator asked for range %v, expected [0 300]", c)
		}
	}
}

func TestRandSourceRange(t *testing.T) {
	src := NewRandSource(42)
	seen := map[int]bool{}
	for i := 0; i < 5000; i++ {
		v := src.IntRange(0, 3)
		if v < 0 || v > 3 {
			t.Fatalf("IntRange(0, 3) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 4 {
		t.Errorf("both bounds should be reachable, saw %v", seen)
	}
	if v := src.IntRange(5, 5); v != 5 {
		t.Errorf("IntRange(5, 5) = %d", v)
	}
}

func TestRegistryAdvanceMovesUniformly(t *testing.T) {
	r := NewRegistry()
	r.Append(Obstacle{X: 300, Width: 60})
	r.Append(Obstacle{X: 600, Width: 60})

	r.Advance(0.5, 200)

	obs := r.Obstacles()
	if obs[0].X != 200 || obs[1].X != 500 {
		t.Errorf("positions = %v, %v; expected 200, 500", obs[0].X, obs[1].X)
	}
}

func TestRegistryPruning(t *testing.T) {
	tests := []struct {
		name    string
		startX  float64
		dt      float64
		removed bool
	}{
		{"trailing edge still on screen", 2, 0.305, false}, // x=-59, right edge at 1
		{"trailing edge exactly at zero", 2, 0.31, false},  // x=-60, right edge at 0
		{"trailing edge past zero", 2, 0.315, true},        // x=-61, right edge at -1
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry()
			r.Append(Obstacle{X: tc.startX, Width: 60})

			got := r.Advance(tc.dt, 200)
			if got != tc.removed {
				t.Errorf("Advance() removed = %v, expected %v", got, tc.removed)
			}
			if (r.Len() == 0) != tc.removed {
				t.Errorf("Len() = %d after advance", r.Len())
			}
		})
	}
}

func TestRegistryPrunesOnlyFront(t *testing.T) {
	r := NewRegistry()
	// Two obstacles both fully off-screen after the move: only the front goes.
	r.Append(Obstacle{X: -200, Width: 60})
	r.Append(Obstacle{X: -100, Width: 60})
	r.Append(Obstacle{X: 400, Width: 60})

	if !r.Advance(0, 200) {
		t.Fatal("front obstacle should be removed")
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", r.Len())
	}
	front, _ := r.Front()
	if front.X != -100 {
		t.Errorf("front after prune = %v, expected -100", front.X)
	}

	r.Advance(0, 200)
	front, _ = r.Front()
	if r.Len() != 1 || front.X != 400 {
		t.Errorf("second frame should prune the next front, got len=%d front=%v", r.Len(), front.X)
	}
}

func TestRegistryStaysSorted(t *testing.T) {
	cfg := config.DefaultConfig().Obstacles
	g := NewGenerator(cfg, 800, NewRandSource(3))
	r := NewRegistry()

	for i := 0; i < 3000; i++ {
		if o, ok := g.Advance(1.0 / 60); ok {
			r.Append(o)
		}
		r.Advance(1.0/60, cfg.Speed)

		obs := r.Obstacles()
		for j := 1; j < len(obs); j++ {
			if obs[j-1].X >= obs[j].X {
				t.Fatalf("frame %d: registry not sorted by x: %v", i, obs)
			}
		}
		if len(obs) > 0 && obs[0].Right() < 0 {
			t.Fatalf("frame %d: off-screen obstacle left at the front", i)
		}
	}
}

func TestRegistryClearAndCopy(t *testing.T) {
	r := NewRegistry()
	r.Append(Obstacle{X: 10, Width: 60})

	obs := r.Obstacles()
	obs[0].X = 999
	if front, _ := r.Front(); front.X != 10 {
		t.Error("Obstacles() must return a copy")
	}

	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len() after Clear = %d", r.Len())
	}
	if _, ok := r.Front(); ok {
		t.Error("Front() of empty registry should report false")
	}
}

func TestObstacleRects(t *testing.T) {
	o := Obstacle{X: 500, Width: 60, GapTop: 200, GapBottom: 350}

	top := o.TopRect()
	if top.X != 500 || top.Y != 0 || top.W != 60 || top.H != 200 {
		t.Errorf("TopRect() = %+v", top)
	}
	bottom := o.BottomRect(600)
	if bottom.Y != 350 || bottom.Bottom() != 600 || bottom.W != 60 {
		t.Errorf("BottomRect() = %+v", bottom)
	}
}
