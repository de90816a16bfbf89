package sim

import (
	"fmt"
	"math"
)

// Kind tags the entity variant. Behaviour differences (movement rule,
// combat eligibility) are looked up by kind rather than dispatched.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindKnight
	KindMonster
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindKnight:
		return "knight"
	case KindMonster:
		return "monster"
	default:
		return "unknown"
	}
}

// Symbol returns the glyph used on text and pixel renderings.
func (k Kind) Symbol() byte {
	switch k {
	case KindKnight:
		return 'K'
	case KindMonster:
		return 'M'
	default:
		return 'A'
	}
}

// Faction is the team a fighter belongs to.
type Faction uint8

const (
	FactionNone Faction = iota // player
	FactionKnights
	FactionMonsters
)

func (f Faction) String() string {
	switch f {
	case FactionKnights:
		return "knights"
	case FactionMonsters:
		return "monsters"
	default:
		return "none"
	}
}

// Fighter stat ranges. Health starts at fighterStartHealth; the heal guard
// uses it as the nominal maximum.
const (
	fighterStartHealth = 3
	attackMin          = 1
	attackMax          = 3
	defenseMin         = 1
	defenseMax         = 2
	medicineMax        = 2
)

// Entity is the single record type for the player and every fighter.
type Entity struct {
	id       int
	kind     Kind
	x, y     int
	health   int
	attack   int
	defense  int
	medicine int
}

// newPlayer creates the invulnerable player avatar. Position is set by placement.
func newPlayer(id int) *Entity {
	return &Entity{id: id, kind: KindPlayer, health: math.MaxInt}
}

// newFighter rolls a fighter's fixed stats from the match RNG.
func newFighter(id int, kind Kind, rng Rand) *Entity {
	return &Entity{
		id:       id,
		kind:     kind,
		health:   fighterStartHealth,
		attack:   rng.Intn(attackMax-attackMin+1) + attackMin,
		defense:  rng.Intn(defenseMax-defenseMin+1) + defenseMin,
		medicine: rng.Intn(medicineMax + 1),
	}
}

// ID returns the match-unique entity id.
func (e *Entity) ID() int { return e.id }

// Kind returns the entity variant.
func (e *Entity) Kind() Kind { return e.kind }

// Pos returns the current cell.
func (e *Entity) Pos() (int, int) { return e.x, e.y }

// Health returns current health; the player reports math.MaxInt.
func (e *Entity) Health() int { return e.health }

// Attack returns the fixed attack power.
func (e *Entity) Attack() int { return e.attack }

// Defense returns the fixed defense.
func (e *Entity) Defense() int { return e.defense }

// Medicine returns the remaining medicine stock.
func (e *Entity) Medicine() int { return e.medicine }

// Symbol returns the display glyph.
func (e *Entity) Symbol() byte { return e.kind.Symbol() }

// IsFighter reports whether the entity takes part in combat.
func (e *Entity) IsFighter() bool { return e.kind == KindKnight || e.kind == KindMonster }

// Faction returns the fighter's team, FactionNone for the player.
func (e *Entity) Faction() Faction {
	switch e.kind {
	case KindKnight:
		return FactionKnights
	case KindMonster:
		return FactionMonsters
	default:
		return FactionNone
	}
}

// IsAlive reports health > 0. The player is always alive.
func (e *Entity) IsAlive() bool { return e.health > 0 }

// Label returns a short identifier such as "K3" or "A0" for logs.
func (e *Entity) Label() string {
	return fmt.Sprintf("%c%d", e.Symbol(), e.id)
}

func (e *Entity) setPos(x, y int) {
	e.x, e.y = x, y
}

// takeDamage lowers health, clamping at zero. The player ignores damage.
func (e *Entity) takeDamage(dmg int) {
	if e.kind == KindPlayer || dmg <= 0 {
		return
	}
	e.health -= dmg
	if e.health < 0 {
		e.health = 0
	}
}

// EntityView is a read-only copy of an entity handed to front-ends.
type EntityView struct {
	ID       int
	Kind     Kind
	Faction  Faction
	Symbol   byte
	Label    string
	X, Y     int
	Health   int
	Attack   int
	Defense  int
	Medicine int
}

// View snapshots the entity.
func (e *Entity) View() EntityView {
	return EntityView{
		ID:       e.id,
		Kind:     e.kind,
		Faction:  e.Faction(),
		Symbol:   e.Symbol(),
		Label:    e.Label(),
		X:        e.x,
		Y:        e.y,
		Health:   e.health,
		Attack:   e.attack,
		Defense:  e.defense,
		Medicine: e.medicine,
	}
}
