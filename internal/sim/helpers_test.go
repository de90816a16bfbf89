package sim

import "testing"

// scriptedRand replays fixed draws. Once the script runs out every draw is 0,
// which for fighters is the "up" step.
type scriptedRand struct {
	draws []int
	calls int
}

func (r *scriptedRand) Intn(n int) int {
	r.calls++
	if len(r.draws) == 0 {
		return 0
	}
	d := r.draws[0]
	r.draws = r.draws[1:]
	return d % n
}

// openRows returns a w x h layout of open ground.
func openRows(w, h int) []string {
	row := make([]byte, w)
	for i := range row {
		row[i] = '.'
	}
	rows := make([]string, h)
	for i := range rows {
		rows[i] = string(row)
	}
	return rows
}

// newFixedMatch builds a match on a fixed layout with the player parked on
// (px, py) and the given fighters. Setup consumes no draws from r.
func newFixedMatch(t *testing.T, rows []string, px, py int, r Rand, fighters ...FighterSpec) *Match {
	t.Helper()
	opts := []Option{WithTerrain(rows...), WithPlayerAt(px, py), WithRand(r)}
	for _, f := range fighters {
		opts = append(opts, WithFighter(f))
	}
	m, err := NewMatch(Config{Seed: 1}, opts...)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	return m
}

// fighterAt returns the living fighter at (x, y).
func fighterAt(t *testing.T, m *Match, x, y int) EntityView {
	t.Helper()
	for _, f := range m.Fighters() {
		if f.X == x && f.Y == y {
			return f
		}
	}
	t.Fatalf("no fighter at (%d,%d)", x, y)
	return EntityView{}
}

// checkCounters recounts the roster and compares it with the incremental
// faction counters.
func checkCounters(t *testing.T, m *Match) {
	t.Helper()
	var c FactionCounts
	for _, f := range m.Fighters() {
		switch f.Faction {
		case FactionKnights:
			c.Knights++
		case FactionMonsters:
			c.Monsters++
		}
	}
	if c != m.Counts() {
		t.Fatalf("counters %+v, recount %+v", m.Counts(), c)
	}
}
