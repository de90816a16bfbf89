package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/knights-vs-monsters/internal/sim"
)

func TestCollectTurn(t *testing.T) {
	rs := runStats{casualties: map[string]struct{}{}}
	collectTurn(&rs, sim.TurnReport{
		Attacks: []sim.Attack{{Damage: 2}, {Damage: 0}, {Damage: 1}},
		Heals:   []sim.Heal{{Patient: "K1"}},
		Deaths: []sim.Death{
			{Fighter: "M2", Faction: sim.FactionMonsters},
			{Fighter: "K3", Faction: sim.FactionKnights},
		},
	})
	if rs.attacks != 3 || rs.damagingHits != 2 || rs.heals != 1 {
		t.Fatalf("totals attacks=%d hits=%d heals=%d", rs.attacks, rs.damagingHits, rs.heals)
	}
	if rs.knightDeaths != 1 || rs.monsterDeaths != 1 {
		t.Fatalf("deaths k=%d m=%d", rs.knightDeaths, rs.monsterDeaths)
	}
	if got := joinSet(rs.casualties); got != "K3,M2" {
		t.Fatalf("casualties %q", got)
	}
}

func TestRunMatch_StopsAtTurnLimit(t *testing.T) {
	m, err := sim.NewMatch(sim.Config{Width: 30, Height: 20, Seed: 8})
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	rs, err := runMatch(1, m, 3)
	if err != nil {
		t.Fatalf("runMatch: %v", err)
	}
	if rs.turns > 3 {
		t.Fatalf("ran %d turns past the limit", rs.turns)
	}
	if m.State() != sim.StateEnded {
		t.Fatalf("match should be closed after the run, state %s", m.State())
	}
	if !rs.finished && rs.winner != sim.WinnerNone {
		t.Fatalf("cut-off run reported winner %s", rs.winner)
	}
}

func TestIsStalemate(t *testing.T) {
	if !isStalemate(runStats{knightsLeft: 2, monstersLeft: 1}) {
		t.Fatal("unfinished run with both sides alive is a stalemate")
	}
	if isStalemate(runStats{finished: true, knightsLeft: 2}) {
		t.Fatal("finished run is not a stalemate")
	}
}

func TestSummarize(t *testing.T) {
	all := []runStats{
		{finished: true, winner: sim.WinnerKnights, turns: 40, firstDeathTurn: 5, knightsLeft: 3},
		{finished: true, winner: sim.WinnerMonsters, turns: 60, firstDeathTurn: -1, monstersLeft: 1},
		{turns: 500, knightsLeft: 1, monstersLeft: 1, firstDeathTurn: 9},
	}
	ag := summarize(all)
	if ag.knightWins != 1 || ag.monsterWins != 1 || ag.stalemates != 1 {
		t.Fatalf("outcomes %+v", ag)
	}
	if got := avgTurnString(ag.finishedTurns); got != "50.0" {
		t.Fatalf("avg match length %s, want 50.0", got)
	}
	if got := avgTurnString(ag.firstDeathTurns); got != "7.0" {
		t.Fatalf("avg first death %s, want 7.0", got)
	}
	notes := aggregateNotes(all)
	if len(notes) != 3 || !strings.Contains(notes[0], "stalemates 1") {
		t.Fatalf("notes %q", notes)
	}
}

func TestAvg(t *testing.T) {
	if avg(10, 0) != 0 {
		t.Fatal("avg with zero runs should be 0")
	}
	if avg(9, 2) != 4.5 {
		t.Fatalf("avg(9,2)=%v", avg(9, 2))
	}
	if avgTurnString(nil) != "n/a" {
		t.Fatal("empty average should read n/a")
	}
}
