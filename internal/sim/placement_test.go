package sim

import "testing"

func occupiedAt(cells ...[2]int) OccupancyFunc {
	blocker := &Entity{kind: KindKnight, health: fighterStartHealth}
	return func(x, y int) *Entity {
		for _, c := range cells {
			if c[0] == x && c[1] == y {
				return blocker
			}
		}
		return nil
	}
}

func TestPlace_OnlyFreeCell(t *testing.T) {
	g, _ := ParseGrid([]string{"%%%", "%.%", "%%%"})
	e := &Entity{kind: KindMonster}
	if !Place(e, g, nil, NewRand(3)) {
		t.Fatal("placement should succeed")
	}
	if x, y := e.Pos(); x != 1 || y != 1 {
		t.Fatalf("placed at (%d,%d), want (1,1)", x, y)
	}
}

func TestPlace_SkipsOccupied(t *testing.T) {
	g, _ := ParseGrid(openRows(2, 2))
	e := &Entity{kind: KindKnight}
	occ := occupiedAt([2]int{0, 0}, [2]int{1, 0}, [2]int{0, 1})
	if !Place(e, g, occ, &scriptedRand{draws: []int{0, 0}}) {
		t.Fatal("placement should succeed")
	}
	if x, y := e.Pos(); x != 1 || y != 1 {
		t.Fatalf("placed at (%d,%d), want (1,1)", x, y)
	}
}

func TestPlace_ScanWrapsFromStart(t *testing.T) {
	// Start at (2,1), which is forest; the next cell in the scan is (0,1).
	g, _ := ParseGrid([]string{"...", "..%"})
	e := &Entity{kind: KindKnight}
	if !Place(e, g, nil, &scriptedRand{draws: []int{2, 1}}) {
		t.Fatal("placement should succeed")
	}
	if x, y := e.Pos(); x != 0 || y != 1 {
		t.Fatalf("placed at (%d,%d), want (0,1)", x, y)
	}
}

func TestPlace_FullGridFails(t *testing.T) {
	g, _ := ParseGrid([]string{".%", "~."})
	e := &Entity{kind: KindKnight, x: -1, y: -1}
	occ := occupiedAt([2]int{0, 0}, [2]int{1, 1})
	if Place(e, g, occ, NewRand(9)) {
		t.Fatal("placement should fail when every open cell is taken")
	}
	if x, y := e.Pos(); x != -1 || y != -1 {
		t.Fatalf("failed placement moved entity to (%d,%d)", x, y)
	}
}

func TestPlace_ExhaustiveFromAnyStart(t *testing.T) {
	// A single free cell must be found whatever the start cell is.
	g, _ := ParseGrid([]string{"%%%%", "%%%%", "%%.%"})
	for sx := 0; sx < g.Width(); sx++ {
		for sy := 0; sy < g.Height(); sy++ {
			e := &Entity{kind: KindMonster}
			if !Place(e, g, nil, &scriptedRand{draws: []int{sx, sy}}) {
				t.Fatalf("start (%d,%d): placement failed", sx, sy)
			}
			if x, y := e.Pos(); x != 2 || y != 2 {
				t.Fatalf("start (%d,%d): placed at (%d,%d)", sx, sy, x, y)
			}
		}
	}
}
