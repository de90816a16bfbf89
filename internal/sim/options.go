package sim

import "go.uber.org/zap"

// Config is the setup of a new match.
type Config struct {
	Width  int
	Height int
	// Seed drives the match RNG. 0 picks a clock-derived seed, reported by
	// Match.Seed so the run can be replayed.
	Seed int64
	// FighterDensity is the number of cells per fighter when the roster is
	// generated: maxFighters = Width*Height / FighterDensity. 0 means 15.
	FighterDensity int
}

// DefaultFighterDensity matches one fighter per fifteen cells.
const DefaultFighterDensity = 15

// FighterSpec places a fighter with fixed stats instead of rolling them.
// Health 0 means the normal starting health.
type FighterSpec struct {
	Kind     Kind
	X, Y     int
	Health   int
	Attack   int
	Defense  int
	Medicine int
}

// setup collects option values before NewMatch builds the match.
type setup struct {
	rng       Rand
	logger    *zap.Logger
	simLog    *SimLog
	terrain   []string
	playerSet bool
	playerX   int
	playerY   int
	fighters  []FighterSpec
}

// Option customises match construction.
type Option func(*setup)

// WithRand replaces the seeded generator. Tests use it to script draws.
func WithRand(r Rand) Option {
	return func(s *setup) {
		s.rng = r
	}
}

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *setup) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSimLog records match events into sl instead of a fresh non-verbose log.
func WithSimLog(sl *SimLog) Option {
	return func(s *setup) {
		if sl != nil {
			s.simLog = sl
		}
	}
}

// WithVerbose enables per-fighter movement entries in the match log.
func WithVerbose(v bool) Option {
	return func(s *setup) {
		s.simLog = NewSimLog(v)
	}
}

// WithTerrain uses a fixed layout (ParseGrid format) instead of generating
// one. Config.Width and Config.Height are then taken from the rows.
func WithTerrain(rows ...string) Option {
	return func(s *setup) {
		s.terrain = append([]string(nil), rows...)
	}
}

// WithPlayerAt puts the player on (x, y) instead of a random free cell.
func WithPlayerAt(x, y int) Option {
	return func(s *setup) {
		s.playerSet = true
		s.playerX, s.playerY = x, y
	}
}

// WithFighter adds a fighter with fixed position and stats. When at least
// one is given the random roster is not generated.
func WithFighter(spec FighterSpec) Option {
	return func(s *setup) {
		s.fighters = append(s.fighters, spec)
	}
}

// Knight is shorthand for a knight FighterSpec.
func Knight(x, y, attack, defense, medicine int) FighterSpec {
	return FighterSpec{Kind: KindKnight, X: x, Y: y, Attack: attack, Defense: defense, Medicine: medicine}
}

// Monster is shorthand for a monster FighterSpec.
func Monster(x, y, attack, defense, medicine int) FighterSpec {
	return FighterSpec{Kind: KindMonster, X: x, Y: y, Attack: attack, Defense: defense, Medicine: medicine}
}
