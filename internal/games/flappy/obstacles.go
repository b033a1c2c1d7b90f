package flappy

import (
	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// Obstacle is one spawned pipe pair: a top segment from the ceiling down to
// GapTop and a bottom segment from GapBottom down to the floor.
type Obstacle struct {
	X         float64 // Leading (left) edge
	Width     float64
	GapTop    float64
	GapBottom float64
}

// TopRect returns the collision rectangle for the top segment.
func (o Obstacle) TopRect() core.Rect {
	return core.NewRect(o.X, 0, o.Width, o.GapTop)
}

// BottomRect returns the collision rectangle for the bottom segment.
func (o Obstacle) BottomRect(worldH float64) core.Rect {
	return core.NewRect(o.X, o.GapBottom, o.Width, worldH-o.GapBottom)
}

// Right returns the trailing edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// Registry holds the live obstacles ordered by spawn time, which is also
// ascending X because every obstacle scrolls at the same speed.
type Registry struct {
	obstacles []Obstacle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{obstacles: make([]Obstacle, 0, 8)}
}

// Append adds a freshly spawned obstacle at the tail.
func (r *Registry) Append(o Obstacle) {
	r.obstacles = append(r.obstacles, o)
}

// Advance scrolls every obstacle left by speed*dt, then drops the front
// obstacle if it has fully left the world. At most one obstacle is removed
// per call and only ever the front one; that is only correct while all
// obstacles share one speed.
// Returns true if an obstacle was removed.
func (r *Registry) Advance(dt, speed float64) bool {
	dx := speed * dt
	for i := range r.obstacles {
		r.obstacles[i].X -= dx
	}

	if len(r.obstacles) > 0 && r.obstacles[0].Right() < 0 {
		r.obstacles = r.obstacles[1:]
		return true
	}
	return false
}

// Clear removes every obstacle.
func (r *Registry) Clear() {
	r.obstacles = r.obstacles[:0]
}

// Len returns the number of live obstacles.
func (r *Registry) Len() int {
	return len(r.obstacles)
}

// Front returns the oldest (leftmost) obstacle.
func (r *Registry) Front() (Obstacle, bool) {
	if len(r.obstacles) == 0 {
		return Obstacle{}, false
	}
	return r.obstacles[0], true
}

// Obstacles returns a copy of the live obstacles, front first.
func (r *Registry) Obstacles() []Obstacle {
	out := make([]Obstacle, len(r.obstacles))
	copy(out, r.obstacles)
	return out
}

// Generator spawns obstacles at a fixed cadence with a random gap position.
type Generator struct {
	cfg    config.Obstacles
	worldW float64
	src    IntSource
	timer  float64
}

// NewGenerator creates a generator with an empty spawn timer.
func NewGenerator(cfg config.Obstacles, worldW float64, src IntSource) *Generator {
	return &Generator{
		cfg:    cfg,
		worldW: worldW,
		src:    src,
	}
}

// Advance adds dt to the spawn timer. When the timer reaches the spawn
// interval it is zeroed and one obstacle is returned at the world's right
// edge. A single call never spawns more than one obstacle, however large dt is.
func (g *Generator) Advance(dt float64) (Obstacle, bool) {
	g.timer += dt
	if g.timer < g.cfg.SpawnInterval {
		return Obstacle{}, false
	}
	g.timer = 0
	return g.spawn(), true
}

// spawn creates an obstacle with its gap top drawn from [GapTopMin, GapTopMax].
func (g *Generator) spawn() Obstacle {
	gapTop := float64(g.cfg.GapTopMin + g.src.IntRange(0, g.cfg.GapTopMax-g.cfg.GapTopMin))
	return Obstacle{
		X:         g.worldW,
		Width:     g.cfg.Width,
		GapTop:    gapTop,
		GapBottom: gapTop + g.cfg.GapSize,
	}
}

// Timer returns the time accumulated since the last spawn.
func (g *Generator) Timer() float64 {
	return g.timer
}

// Reset zeroes the spawn timer.
func (g *Generator) Reset() {
	g.timer = 0
}
