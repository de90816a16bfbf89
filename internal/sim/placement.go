package sim

// OccupancyFunc answers "who stands at (x, y)?" and returns nil for an empty
// cell. The Match supplies it so placement never touches the roster directly.
type OccupancyFunc func(x, y int) *Entity

// Place puts e on the first free traversable cell found by a row-major scan
// that starts at a random cell and wraps around. Every cell is visited at
// most once, so the search is exhaustive and always terminates. Returns false
// when the grid has no free cell; e is left untouched in that case.
func Place(e *Entity, g *Grid, occupied OccupancyFunc, rng Rand) bool {
	w, h := g.Width(), g.Height()
	startX := rng.Intn(w)
	startY := rng.Intn(h)
	for i := 0; i < w*h; i++ {
		x := (startX + i%w) % w
		y := (startY + i/w) % h
		if !g.IsTraversable(x, y) {
			continue
		}
		if occupied != nil && occupied(x, y) != nil {
			continue
		}
		e.setPos(x, y)
		return true
	}
	return false
}
