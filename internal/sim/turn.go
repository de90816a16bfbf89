package sim

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"
)

// Movement records one fighter's movement attempt.
type Movement struct {
	Fighter string
	FromX   int
	FromY   int
	ToX     int
	ToY     int
	Moved   bool
}

// Attack records one resolved attack. Damage is zero when the defender's
// defense absorbed the blow.
type Attack struct {
	Attacker string
	Defender string
	Damage   int
	Health   int // defender health after the attack
	Killed   bool
}

// Heal records one successful heal.
type Heal struct {
	Patient  string
	Medic    string
	Health   int // patient health after the heal
	Medicine int // medic stock after the heal
}

// Death records a fighter removed during cleanup.
type Death struct {
	Fighter string
	Faction Faction
	X, Y    int
}

// TurnReport is everything that happened in one AdvanceTurn call.
type TurnReport struct {
	Turn      int
	Movements []Movement
	Attacks   []Attack
	Heals     []Heal
	Deaths    []Death
	Before    FactionCounts
	After     FactionCounts
	State     State
	Winner    Winner
}

// neighbourOffsets are the 8 surrounding cells, scanned row by row.
var neighbourOffsets = func() []Step {
	out := make([]Step, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out = append(out, Step{dx, dy})
		}
	}
	return out
}()

// runTurn executes movement, interaction and cleanup. The caller has already
// checked that the match is active.
func (m *Match) runTurn() TurnReport {
	m.turn++
	report := TurnReport{Turn: m.turn, Before: m.counts}

	m.moveFighters(&report)
	pending := m.resolveInteractions(&report)
	m.removeDead(pending, &report)

	report.After = m.counts
	m.logger.Debug("turn resolved",
		zap.Int("turn", m.turn),
		zap.Int("attacks", len(report.Attacks)),
		zap.Int("heals", len(report.Heals)),
		zap.Int("deaths", len(report.Deaths)),
		zap.Int("knights", m.counts.Knights),
		zap.Int("monsters", m.counts.Monsters))
	return report
}

// moveFighters is phase A: every fighter takes one step in roster order.
func (m *Match) moveFighters(report *TurnReport) {
	report.Movements = make([]Movement, 0, len(m.roster))
	for _, f := range m.roster {
		fx, fy := f.x, f.y
		nx, ny, moved := stepFighter(f, m.grid, m.rng)
		report.Movements = append(report.Movements, Movement{
			Fighter: f.Label(),
			FromX:   fx,
			FromY:   fy,
			ToX:     nx,
			ToY:     ny,
			Moved:   moved,
		})
		key := "blocked"
		if moved {
			key = "moved"
		}
		m.simLog.AddVerbose(m.turn, f.Label(), f.Faction().String(), CategoryMove, key,
			fmt.Sprintf("(%d,%d) → (%d,%d)", fx, fy, nx, ny), 0)
	}
}

// pendingRemoval is the set of fighters marked dead during phase B, plus the
// order in which they were first marked.
type pendingRemoval struct {
	set   mapset.Set[*Entity]
	order []*Entity
}

func newPendingRemoval() *pendingRemoval {
	return &pendingRemoval{set: mapset.New[*Entity]()}
}

// mark adds e once; later marks of the same fighter are ignored.
func (p *pendingRemoval) mark(e *Entity) {
	if p.set.Has(e) {
		return
	}
	p.set.Put(e)
	p.order = append(p.order, e)
}

func (p *pendingRemoval) has(e *Entity) bool { return p.set.Has(e) }

func (p *pendingRemoval) size() int { return p.set.Size() }

// resolveInteractions is phase B. It walks a snapshot of the roster; fighters
// marked dead stay on their cell until cleanup.
func (m *Match) resolveInteractions(report *TurnReport) *pendingRemoval {
	pending := newPendingRemoval()
	snapshot := append([]*Entity(nil), m.roster...)
	for _, f := range snapshot {
		if !f.IsAlive() {
			continue
		}
		for _, off := range neighbourOffsets {
			nx, ny := f.x+off.DX, f.y+off.DY
			if !m.grid.IsValidPosition(nx, ny) {
				continue
			}
			t := m.EntityAt(nx, ny)
			if t == nil || t == f || !t.IsFighter() {
				continue
			}
			if t.Faction() == f.Faction() {
				m.tryHeal(f, t, report)
				continue
			}
			m.tryAttack(f, t, pending, report)
		}
	}
	return pending
}

// tryHeal lets medic t treat f. The eligibility guard runs before the coin
// flip, so no draw is spent on an ineligible pair. There is no clamp after the
// increment; the guard alone keeps a healed fighter at or below 3.
func (m *Match) tryHeal(f, t *Entity, report *TurnReport) {
	if f.health >= fighterStartHealth || t.medicine <= 0 {
		return
	}
	if m.rng.Intn(2) != 1 {
		return
	}
	f.health++
	t.medicine--
	report.Heals = append(report.Heals, Heal{
		Patient:  f.Label(),
		Medic:    t.Label(),
		Health:   f.health,
		Medicine: t.medicine,
	})
	m.simLog.Add(m.turn, f.Label(), f.Faction().String(), CategoryHeal, "healed",
		fmt.Sprintf("by %s at (%d,%d) health %d medicine left %d", t.Label(), t.x, t.y, f.health, t.medicine), f.health)
}

// tryAttack resolves f attacking t. A weaker fighter never initiates, and
// damage at or below zero leaves t untouched.
func (m *Match) tryAttack(f, t *Entity, pending *pendingRemoval, report *TurnReport) {
	if f.attack < t.attack {
		return
	}
	dmg := f.attack - t.defense
	if dmg < 0 {
		dmg = 0
	}
	t.takeDamage(dmg)
	killed := !t.IsAlive()
	report.Attacks = append(report.Attacks, Attack{
		Attacker: f.Label(),
		Defender: t.Label(),
		Damage:   dmg,
		Health:   t.health,
		Killed:   killed,
	})
	key := "hit"
	if dmg == 0 {
		key = "blocked"
	}
	m.simLog.Add(m.turn, f.Label(), f.Faction().String(), CategoryAttack, key,
		fmt.Sprintf("%s at (%d,%d) for %d (health %d)", t.Label(), t.x, t.y, dmg, t.health), dmg)
	if killed {
		pending.mark(t)
	}
}

// removeDead is phase C: marked fighters leave the roster once each and the
// faction counters drop accordingly.
func (m *Match) removeDead(pending *pendingRemoval, report *TurnReport) {
	if pending.size() == 0 {
		return
	}
	kept := m.roster[:0]
	for _, f := range m.roster {
		if !pending.has(f) {
			kept = append(kept, f)
		}
	}
	for i := len(kept); i < len(m.roster); i++ {
		m.roster[i] = nil
	}
	m.roster = kept

	for _, f := range pending.order {
		switch f.Faction() {
		case FactionKnights:
			m.counts.Knights--
		case FactionMonsters:
			m.counts.Monsters--
		}
		report.Deaths = append(report.Deaths, Death{Fighter: f.Label(), Faction: f.Faction(), X: f.x, Y: f.y})
		m.simLog.Add(m.turn, f.Label(), f.Faction().String(), CategoryDeath, "removed",
			fmt.Sprintf("at (%d,%d)", f.x, f.y), 0)
	}
}
