package sim

// Step is a unit offset on the grid.
type Step struct{ DX, DY int }

var (
	cardinalSteps = []Step{
		{0, -1}, // up
		{0, 1},  // down
		{-1, 0}, // left
		{1, 0},  // right
	}
	// Cardinal first, then diagonals in up-left, up-right, down-left, down-right order.
	kingSteps = []Step{
		{0, -1}, {0, 1}, {-1, 0}, {1, 0},
		{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
	}
)

// moveRules is the movement table keyed by kind. The player has no entry:
// it only moves on explicit command.
var moveRules = map[Kind][]Step{
	KindKnight:  cardinalSteps,
	KindMonster: kingSteps,
}

// isCardinalStep reports whether (dx, dy) is exactly one of the four unit steps.
func isCardinalStep(dx, dy int) bool {
	for _, s := range cardinalSteps {
		if s.DX == dx && s.DY == dy {
			return true
		}
	}
	return false
}

// stepFighter draws one direction from the fighter's rule and moves if the
// destination is valid and traversable. Occupancy is not checked, so fighters
// may share cells. Returns the attempted destination and whether it moved.
func stepFighter(f *Entity, g *Grid, rng Rand) (int, int, bool) {
	steps := moveRules[f.kind]
	if len(steps) == 0 {
		return f.x, f.y, false
	}
	s := steps[rng.Intn(len(steps))]
	nx, ny := f.x+s.DX, f.y+s.DY
	if !g.IsTraversable(nx, ny) {
		return nx, ny, false
	}
	f.setPos(nx, ny)
	return nx, ny, true
}
