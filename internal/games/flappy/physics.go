package flappy

import (
	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// Avatar is the player-controlled falling entity.
// Pos is the center of its bounding box; only Pos.Y ever changes.
type Avatar struct {
	Pos  core.Vec2
	Vel  float64 // px/s, negative = upward
	Size float64
}

// NewAvatar places an avatar at rest on the configured start point.
func NewAvatar(cfg config.Avatar) Avatar {
	return Avatar{
		Pos:  core.V(cfg.StartX, cfg.StartY),
		Size: cfg.Size,
	}
}

// Bounds returns the avatar's collision rectangle.
func (a Avatar) Bounds() core.Rect {
	return core.RectAround(a.Pos, a.Size, a.Size)
}

// Integrate advances the avatar by dt seconds.
// A jump sets (not adds) the velocity before gravity is applied, so the jump
// frame still accumulates gravity. Velocity is updated before position and is
// never clamped. dt is applied in one step however large it is; a long frame
// can carry the avatar through an obstacle or past a boundary.
func (a *Avatar) Integrate(dt float64, jump bool, phys config.Physics) {
	if jump {
		a.Vel = phys.JumpImpulse
	}
	a.Vel += phys.Gravity * dt
	a.Pos.Y += a.Vel * dt
}
