// Package flappy implements the simulation core of a Flappy Bird-style game:
// an avatar falls under gravity, jumps on demand, and must stay inside the
// play area while obstacle pairs scroll towards it.
//
// All state lives in a Simulation that is advanced by Tick(dt, input) and
// read back as a SimulationState snapshot, so hosts (terminal, SSH, desktop
// window) only supply time and input and draw what they are given.
package flappy

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// Visual characters for terminal rendering
const (
	PlayerChar    = '▶'
	PlayerBody    = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
)

// Game binds a Simulation to the host-facing surface: stepping by elapsed
// time and rendering into a character screen scaled from world pixels.
type Game struct {
	sim   *Simulation
	state SimulationState
}

// New creates a game. rt.Seed seeds the gap placement; 0 seeds from the clock.
func New(cfg config.GameConfig, rt core.RuntimeConfig, logger *log.Logger) *Game {
	return NewWithSource(cfg, NewRandSource(rt.Seed), logger)
}

// NewWithSource creates a game that draws gap positions from src.
func NewWithSource(cfg config.GameConfig, src IntSource, logger *log.Logger) *Game {
	sim := NewSimulation(cfg, src, logger)
	return &Game{
		sim:   sim,
		state: sim.State(),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Simulation exposes the underlying simulation.
func (g *Game) Simulation() *Simulation {
	return g.sim
}

// Step advances the game by dt seconds.
func (g *Game) Step(dt float64, in core.InputFrame) SimulationState {
	g.state = g.sim.Tick(dt, in)
	return g.state
}

// Resume cuts the game-over hold short and starts the next round.
func (g *Game) Resume() SimulationState {
	g.state = g.sim.Resume()
	return g.state
}

// State returns the snapshot produced by the last Step.
func (g *Game) State() SimulationState {
	return g.state
}

// Render draws the last snapshot to the screen, scaling the world to fit.
// While the round is ended only the terminal message is shown.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.state.Ended() {
		g.drawGameOver(dst)
		return
	}

	v := newViewport(g.sim.cfg.World, dst)
	for _, o := range g.state.Obstacles {
		g.drawObstacle(dst, v, o)
	}
	g.drawAvatar(dst, v, g.state.Avatar)
}

// drawObstacle renders both segments of an obstacle with caps facing the gap.
func (g *Game) drawObstacle(dst *core.Screen, v viewport, o Obstacle) {
	x0, x1 := v.colSpan(o.X, o.Right())
	gapTop := v.row(o.GapTop)
	gapBottom := v.row(o.GapBottom)

	dst.FillRect(x0, 0, x1, gapTop, PipeChar, core.ColorGreen)
	if gapTop > 0 {
		dst.FillRect(x0, gapTop-1, x1, gapTop, PipeCapTop, core.ColorBrightGreen)
	}

	dst.FillRect(x0, gapBottom, x1, dst.Height(), PipeChar, core.ColorGreen)
	if gapBottom < dst.Height() {
		dst.FillRect(x0, gapBottom, x1, gapBottom+1, PipeCapBottom, core.ColorBrightGreen)
	}
}

// drawAvatar renders the avatar's bounding box with a beak on its top-right cell.
func (g *Game) drawAvatar(dst *core.Screen, v viewport, a Avatar) {
	b := a.Bounds()
	x0, x1 := v.colSpan(b.X, b.Right())
	y0, y1 := v.rowSpan(b.Y, b.Bottom())

	dst.FillRect(x0, y0, x1, y1, PlayerBody, core.ColorYellow)
	dst.SetColored(x1-1, y0, PlayerChar, core.ColorYellow)
}

// drawGameOver draws the terminal message box in the center of the screen.
func (g *Game) drawGameOver(dst *core.Screen) {
	title := g.sim.cfg.Round.Message
	remaining := math.Max(g.state.Hold-g.state.Held, 0)
	subtitle := fmt.Sprintf("%s  |  next round in %.1fs", g.state.Reason, remaining)

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxX+boxW, boxY+boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorRed)
	dst.DrawTextCentered(boxY+1, title, core.ColorRed)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorGray)
}

// viewport maps world pixels onto screen cells.
type viewport struct {
	sx, sy float64 // cells per pixel
	h      int
}

func newViewport(world config.World, dst *core.Screen) viewport {
	return viewport{
		sx: float64(dst.Width()) / world.Width,
		sy: float64(dst.Height()) / world.Height,
		h:  dst.Height(),
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return core.Clamp(int(math.Floor(y*v.sy)), 0, v.h)
}

// colSpan returns the half-open cell range covering [x0, x1), at least one cell wide.
func (v viewport) colSpan(x0, x1 float64) (int, int) {
	c0, c1 := v.col(x0), int(math.Ceil(x1*v.sx))
	if c1 <= c0 {
		c1 = c0 + 1
	}
	return c0, c1
}

// rowSpan returns the half-open cell range covering [y0, y1), at least one cell tall.
func (v viewport) rowSpan(y0, y1 float64) (int, int) {
	r0, r1 := int(math.Floor(y0*v.sy)), int(math.Ceil(y1*v.sy))
	if r1 <= r0 {
		r1 = r0 + 1
	}
	return r0, r1
}
