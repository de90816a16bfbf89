package sim

import (
	"fmt"

	"github.com/enetx/fsm"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Match owns one game: the terrain, the player, the fighter roster, the
// faction counters and the state machine. It is not safe for concurrent use;
// the driver calls it from one goroutine.
type Match struct {
	id      string
	seed    int64
	grid    *Grid
	player  *Entity
	roster  []*Entity // living fighters, insertion order
	counts  FactionCounts
	rng     Rand
	machine *fsm.FSM
	winner  Winner
	turn    int
	nextID  int

	logger *zap.Logger
	simLog *SimLog
}

// NewMatch generates the terrain, places the player and populates the
// roster. It fails with ErrPlacementFailure when the player cannot be placed
// and with ErrInvalidDimensions for a non-positive grid size.
func NewMatch(cfg Config, opts ...Option) (*Match, error) {
	st := setup{}
	for _, o := range opts {
		o(&st)
	}
	if st.logger == nil {
		st.logger = zap.NewNop()
	}
	if st.simLog == nil {
		st.simLog = NewSimLog(false)
	}

	m := &Match{
		id:     uuid.NewString(),
		seed:   resolveSeed(cfg.Seed),
		logger: st.logger,
		simLog: st.simLog,
	}
	m.rng = st.rng
	if m.rng == nil {
		m.rng = NewRand(m.seed)
	}
	m.logger = m.logger.With(zap.String("match_id", m.id))

	var err error
	if len(st.terrain) > 0 {
		m.grid, err = ParseGrid(st.terrain)
	} else {
		m.grid, err = GenerateGrid(cfg.Width, cfg.Height, m.rng)
	}
	if err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}

	if err := m.placePlayer(st); err != nil {
		m.logger.Warn("player placement failed",
			zap.Int("width", m.grid.Width()),
			zap.Int("height", m.grid.Height()))
		return nil, fmt.Errorf("new match: %w", err)
	}

	if len(st.fighters) > 0 {
		for _, spec := range st.fighters {
			if err := m.addFixedFighter(spec); err != nil {
				return nil, fmt.Errorf("new match: %w", err)
			}
		}
	} else {
		m.populateRoster(cfg.FighterDensity)
	}

	m.machine = newMatchMachine(func() {
		m.logger.Info("match ended",
			zap.Int("turn", m.turn),
			zap.Stringer("winner", m.winner),
			zap.Int("knights", m.counts.Knights),
			zap.Int("monsters", m.counts.Monsters))
	})

	m.simLog.Add(0, "--", "none", CategorySetup, "roster",
		fmt.Sprintf("knights=%d monsters=%d", m.counts.Knights, m.counts.Monsters), len(m.roster))
	m.logger.Info("match created",
		zap.Int64("seed", m.seed),
		zap.Int("width", m.grid.Width()),
		zap.Int("height", m.grid.Height()),
		zap.Int("knights", m.counts.Knights),
		zap.Int("monsters", m.counts.Monsters))
	return m, nil
}

func (m *Match) newEntityID() int {
	id := m.nextID
	m.nextID++
	return id
}

// placePlayer puts the avatar on its fixed cell or on a random free one. The
// player joins the occupancy lookup only once it has a position.
func (m *Match) placePlayer(st setup) error {
	p := newPlayer(m.newEntityID())
	if st.playerSet {
		if !m.grid.IsTraversable(st.playerX, st.playerY) {
			return fmt.Errorf("player at (%d,%d) not on open ground: %w", st.playerX, st.playerY, ErrPlacementFailure)
		}
		p.setPos(st.playerX, st.playerY)
	} else if !Place(p, m.grid, m.EntityAt, m.rng) {
		return fmt.Errorf("player: %w", ErrPlacementFailure)
	}
	m.player = p
	m.simLog.Add(0, p.Label(), "none", CategorySetup, "placed",
		fmt.Sprintf("at (%d,%d)", p.x, p.y), 0)
	return nil
}

// populateRoster creates up to Width*Height/density fighters, keeping the
// teams balanced: a knight is tried whenever knights <= monsters. A failed
// placement still consumes the attempt.
func (m *Match) populateRoster(density int) {
	if density <= 0 {
		density = DefaultFighterDensity
	}
	maxFighters := m.grid.Width() * m.grid.Height() / density
	for i := 0; i < maxFighters; i++ {
		kind := KindMonster
		if m.counts.Knights <= m.counts.Monsters {
			kind = KindKnight
		}
		f := newFighter(m.newEntityID(), kind, m.rng)
		if !Place(f, m.grid, m.EntityAt, m.rng) {
			m.logger.Warn("fighter placement failed", zap.Stringer("kind", kind))
			m.simLog.Add(0, f.Label(), f.Faction().String(), CategorySetup, "placement_failed", "no free cell", 0)
			continue
		}
		m.addFighter(f)
	}
}

// addFixedFighter places a fighter described by a FighterSpec.
func (m *Match) addFixedFighter(spec FighterSpec) error {
	if spec.Kind != KindKnight && spec.Kind != KindMonster {
		return fmt.Errorf("fighter kind %s: %w", spec.Kind, ErrPlacementFailure)
	}
	if !m.grid.IsTraversable(spec.X, spec.Y) {
		return fmt.Errorf("%s at (%d,%d) not on open ground: %w", spec.Kind, spec.X, spec.Y, ErrPlacementFailure)
	}
	health := spec.Health
	if health <= 0 {
		health = fighterStartHealth
	}
	medicine := spec.Medicine
	if medicine < 0 {
		medicine = 0
	}
	f := &Entity{
		id:       m.newEntityID(),
		kind:     spec.Kind,
		health:   health,
		attack:   spec.Attack,
		defense:  spec.Defense,
		medicine: medicine,
	}
	f.setPos(spec.X, spec.Y)
	m.addFighter(f)
	return nil
}

// addFighter appends a placed fighter to the roster and bumps its counter.
func (m *Match) addFighter(f *Entity) {
	m.roster = append(m.roster, f)
	switch f.Faction() {
	case FactionKnights:
		m.counts.Knights++
	case FactionMonsters:
		m.counts.Monsters++
	}
	m.simLog.Add(0, f.Label(), f.Faction().String(), CategorySetup, "placed",
		fmt.Sprintf("at (%d,%d) atk=%d def=%d med=%d", f.x, f.y, f.attack, f.defense, f.medicine), f.health)
}

// EntityAt is the occupancy lookup handed to placement and the turn engine.
// The player shadows any fighter on its cell; among stacked fighters the
// earliest in roster order wins.
func (m *Match) EntityAt(x, y int) *Entity {
	if m.player != nil && m.player.x == x && m.player.y == y {
		return m.player
	}
	for _, f := range m.roster {
		if f.x == x && f.y == y {
			return f
		}
	}
	return nil
}

// AttemptPlayerMove moves the player one cardinal step. It returns false,
// with no side effect, for diagonal or zero steps and for destinations that
// are off-grid or blocked. Moving onto a fighter is allowed.
func (m *Match) AttemptPlayerMove(dx, dy int) (bool, error) {
	if err := m.requireActive("player move"); err != nil {
		return false, err
	}
	p := m.player
	if !isCardinalStep(dx, dy) {
		m.simLog.Add(m.turn, p.Label(), "none", CategoryPlayer, "invalid_step",
			fmt.Sprintf("step (%d,%d) is not cardinal", dx, dy), 0)
		return false, nil
	}
	nx, ny := p.x+dx, p.y+dy
	if !m.grid.IsTraversable(nx, ny) {
		m.simLog.Add(m.turn, p.Label(), "none", CategoryPlayer, "blocked",
			fmt.Sprintf("(%d,%d) → (%d,%d)", p.x, p.y, nx, ny), 0)
		return false, nil
	}
	m.simLog.Add(m.turn, p.Label(), "none", CategoryPlayer, "moved",
		fmt.Sprintf("(%d,%d) → (%d,%d)", p.x, p.y, nx, ny), 0)
	p.setPos(nx, ny)
	return true, nil
}

// AdvanceTurn runs one full turn (movement, interaction, cleanup) and then
// the end-condition check.
func (m *Match) AdvanceTurn() (TurnReport, error) {
	if err := m.requireActive("advance turn"); err != nil {
		return TurnReport{}, err
	}
	if err := m.fire(eventTick); err != nil {
		return TurnReport{}, err
	}
	report := m.runTurn()
	if w, over := decideWinner(m.counts); over {
		m.winner = w
		if err := m.fire(eventEliminate); err != nil {
			return report, err
		}
	}
	report.State = m.State()
	report.Winner = m.winner
	return report, nil
}

// Pause suspends an active match.
func (m *Match) Pause() error {
	switch m.State() {
	case StateEnded:
		return fmt.Errorf("pause: %w", ErrMatchEnded)
	case StatePaused:
		return fmt.Errorf("pause: already paused: %w", ErrInvalidTransition)
	}
	return m.fire(eventPause)
}

// Resume continues a paused match.
func (m *Match) Resume() error {
	switch m.State() {
	case StateEnded:
		return fmt.Errorf("resume: %w", ErrMatchEnded)
	case StateActive:
		return fmt.Errorf("resume: not paused: %w", ErrInvalidTransition)
	}
	return m.fire(eventResume)
}

// TogglePause pauses an active match or resumes a paused one.
func (m *Match) TogglePause() error {
	if m.IsPaused() {
		return m.Resume()
	}
	return m.Pause()
}

// Quit ends the match with no winner.
func (m *Match) Quit() error {
	if m.State() == StateEnded {
		return fmt.Errorf("quit: %w", ErrMatchEnded)
	}
	m.winner = WinnerNone
	return m.fire(eventQuit)
}

// IsPaused reports whether the match is paused.
func (m *Match) IsPaused() bool { return m.State() == StatePaused }

// State returns the current session state.
func (m *Match) State() State { return State(m.machine.Current()) }

// Winner returns the winner of an ended match, WinnerNone otherwise.
func (m *Match) Winner() Winner { return m.winner }

// Turn returns the number of turns played.
func (m *Match) Turn() int { return m.turn }

// Seed returns the seed the match RNG was built from.
func (m *Match) Seed() int64 { return m.seed }

// ID returns the match id used in logs and reports.
func (m *Match) ID() string { return m.id }

// Grid returns the terrain. The grid has no mutating methods.
func (m *Match) Grid() *Grid { return m.grid }

// Counts returns the living fighters per faction.
func (m *Match) Counts() FactionCounts { return m.counts }

// Log returns the match event log.
func (m *Match) Log() *SimLog { return m.simLog }

// Player returns a snapshot of the player.
func (m *Match) Player() EntityView { return m.player.View() }

// Fighters returns snapshots of the living fighters in roster order.
func (m *Match) Fighters() []EntityView {
	out := make([]EntityView, 0, len(m.roster))
	for _, f := range m.roster {
		out = append(out, f.View())
	}
	return out
}

// Entities returns every living entity, fighters first and the player last.
func (m *Match) Entities() []EntityView {
	return append(m.Fighters(), m.player.View())
}

// Summary returns counts and combined health per faction.
func (m *Match) Summary() Summary {
	s := Summary{
		Turn:     m.turn,
		State:    m.State(),
		Winner:   m.winner,
		Knights:  m.counts.Knights,
		Monsters: m.counts.Monsters,
	}
	for _, f := range m.roster {
		switch f.Faction() {
		case FactionKnights:
			s.KnightHealth += f.health
			s.KnightMedicine += f.medicine
		case FactionMonsters:
			s.MonsterHealth += f.health
			s.MonsterMedicine += f.medicine
		}
	}
	return s
}

// Render draws the grid as text with entity symbols on top of the terrain.
// The player is drawn last so it stays visible on shared cells.
func (m *Match) Render() string {
	rows := m.grid.Rows()
	buf := make([][]byte, len(rows))
	for y, r := range rows {
		buf[y] = []byte(r)
	}
	for _, e := range m.Entities() {
		if m.grid.IsValidPosition(e.X, e.Y) {
			buf[e.Y][e.X] = e.Symbol
		}
	}
	out := make([]byte, 0, (m.grid.Width()+1)*m.grid.Height())
	for _, r := range buf {
		out = append(out, r...)
		out = append(out, '\n')
	}
	return string(out)
}

// requireActive rejects moves and turns outside the Active state.
func (m *Match) requireActive(op string) error {
	switch m.State() {
	case StateEnded:
		return fmt.Errorf("%s: %w", op, ErrMatchEnded)
	case StatePaused:
		return fmt.Errorf("%s: %w", op, ErrMatchPaused)
	}
	return nil
}

// fire triggers a state machine event and records real state changes.
func (m *Match) fire(ev fsm.Event) error {
	from := m.State()
	if err := m.machine.Trigger(ev); err != nil {
		return fmt.Errorf("%s from %s: %w: %w", ev, from, ErrInvalidTransition, err)
	}
	to := m.State()
	if from != to {
		m.simLog.Add(m.turn, "--", "none", CategoryState, "change",
			fmt.Sprintf("%s → %s", from, to), 0)
		m.logger.Info("match state changed",
			zap.Stringer("from", from),
			zap.Stringer("to", to),
			zap.String("event", string(ev)))
	}
	return nil
}
