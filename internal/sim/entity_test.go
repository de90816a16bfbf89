package sim

import "testing"

func TestNewFighter_StatRanges(t *testing.T) {
	rng := NewRand(11)
	for i := 0; i < 500; i++ {
		f := newFighter(i, KindKnight, rng)
		if f.Health() != 3 {
			t.Fatalf("fighter %d health %d, want 3", i, f.Health())
		}
		if f.Attack() < 1 || f.Attack() > 3 {
			t.Fatalf("fighter %d attack %d out of [1,3]", i, f.Attack())
		}
		if f.Defense() < 1 || f.Defense() > 2 {
			t.Fatalf("fighter %d defense %d out of [1,2]", i, f.Defense())
		}
		if f.Medicine() < 0 || f.Medicine() > 2 {
			t.Fatalf("fighter %d medicine %d out of [0,2]", i, f.Medicine())
		}
	}
}

func TestNewFighter_DrawOrder(t *testing.T) {
	f := newFighter(4, KindMonster, &scriptedRand{draws: []int{2, 0, 1}})
	if f.Attack() != 3 || f.Defense() != 1 || f.Medicine() != 1 {
		t.Fatalf("got atk=%d def=%d med=%d, want 3/1/1", f.Attack(), f.Defense(), f.Medicine())
	}
	if f.Label() != "M4" {
		t.Fatalf("label %q, want M4", f.Label())
	}
}

func TestEntity_TakeDamageClamps(t *testing.T) {
	f := &Entity{kind: KindKnight, health: 2}
	f.takeDamage(5)
	if f.Health() != 0 {
		t.Fatalf("health %d, want 0", f.Health())
	}
	if f.IsAlive() {
		t.Fatal("fighter at 0 health should be dead")
	}
	f.takeDamage(1)
	if f.Health() != 0 {
		t.Fatalf("health went negative: %d", f.Health())
	}
}

func TestEntity_PlayerIgnoresDamage(t *testing.T) {
	p := newPlayer(0)
	before := p.Health()
	p.takeDamage(100)
	if p.Health() != before || !p.IsAlive() {
		t.Fatal("player should be invulnerable")
	}
	if p.IsFighter() || p.Faction() != FactionNone {
		t.Fatal("player should not be a fighter")
	}
}

func TestStepFighter_KnightNeverDiagonal(t *testing.T) {
	g, _ := ParseGrid(openRows(9, 9))
	rng := NewRand(5)
	for i := 0; i < 300; i++ {
		k := &Entity{kind: KindKnight, x: 4, y: 4}
		nx, ny, moved := stepFighter(k, g, rng)
		if !moved {
			t.Fatalf("knight in open centre failed to move")
		}
		if !isCardinalStep(nx-4, ny-4) {
			t.Fatalf("knight stepped (%d,%d)", nx-4, ny-4)
		}
	}
}

func TestStepFighter_MonsterReachesDiagonals(t *testing.T) {
	g, _ := ParseGrid(openRows(3, 3))
	seen := map[Step]bool{}
	for d := 0; d < 8; d++ {
		m := &Entity{kind: KindMonster, x: 1, y: 1}
		nx, ny, moved := stepFighter(m, g, &scriptedRand{draws: []int{d}})
		if !moved {
			t.Fatalf("draw %d: monster failed to move", d)
		}
		seen[Step{nx - 1, ny - 1}] = true
	}
	if len(seen) != 8 {
		t.Fatalf("monster reached %d distinct neighbours, want 8", len(seen))
	}
}

func TestStepFighter_BlockedStaysPut(t *testing.T) {
	g, _ := ParseGrid([]string{"%%%", "%.%", "%~%"})
	for d := 0; d < 8; d++ {
		m := &Entity{kind: KindMonster, x: 1, y: 1}
		if _, _, moved := stepFighter(m, g, &scriptedRand{draws: []int{d}}); moved {
			t.Fatalf("draw %d: monster moved into blocked terrain", d)
		}
		if x, y := m.Pos(); x != 1 || y != 1 {
			t.Fatalf("draw %d: position changed to (%d,%d)", d, x, y)
		}
	}
}

func TestStepFighter_OffGridStaysPut(t *testing.T) {
	g, _ := ParseGrid(openRows(2, 2))
	k := &Entity{kind: KindKnight}
	if _, _, moved := stepFighter(k, g, &scriptedRand{draws: []int{0}}); moved {
		t.Fatal("step off the top edge should be rejected")
	}
}
