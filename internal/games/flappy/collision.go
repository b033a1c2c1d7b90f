package flappy

// OutOfBounds reports whether the avatar's center has left the vertical play area.
func OutOfBounds(a Avatar, worldH float64) bool {
	return a.Pos.Y < 0 || a.Pos.Y > worldH
}

// Collides tests the avatar against the top and bottom segment of every live
// obstacle and returns the first one hit. Touching edges do not collide.
func Collides(a Avatar, r *Registry, worldH float64) (Obstacle, bool) {
	box := a.Bounds()
	for _, o := range r.obstacles {
		if box.Intersects(o.TopRect()) || box.Intersects(o.BottomRect(worldH)) {
			return o, true
		}
	}
	return Obstacle{}, false
}
