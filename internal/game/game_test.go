package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Garsondee/knights-vs-monsters/internal/config"
	"github.com/Garsondee/knights-vs-monsters/internal/sim"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = seed
	g, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestEventLog_RingBuffer(t *testing.T) {
	el := NewEventLog()
	for i := 0; i < logMaxEntries+5; i++ {
		el.Add(i, "K1", sim.FactionKnights, "x")
	}
	got := el.Recent()
	if len(got) != logMaxEntries {
		t.Fatalf("len %d, want %d", len(got), logMaxEntries)
	}
	if got[0].Turn != 5 || got[len(got)-1].Turn != logMaxEntries+4 {
		t.Fatalf("order wrong: first=%d last=%d", got[0].Turn, got[len(got)-1].Turn)
	}
	el.Reset()
	if len(el.Recent()) != 0 {
		t.Fatal("Reset should empty the log")
	}
}

func TestEventLog_AddReport(t *testing.T) {
	el := NewEventLog()
	el.AddReport(sim.TurnReport{
		Turn:    4,
		Attacks: []sim.Attack{{Attacker: "K1", Defender: "M2", Damage: 2}, {Attacker: "M2", Defender: "K1"}},
		Heals:   []sim.Heal{{Patient: "K3", Medic: "K1", Health: 3}},
		Deaths:  []sim.Death{{Fighter: "M2", Faction: sim.FactionMonsters}},
		State:   sim.StateEnded,
		Winner:  sim.WinnerKnights,
	})
	got := el.Recent()
	if len(got) != 5 {
		t.Fatalf("expected 5 lines, got %d: %+v", len(got), got)
	}
	if got[0].Faction != sim.FactionKnights || got[1].Faction != sim.FactionMonsters {
		t.Fatalf("factions not decoded from labels: %+v", got[:2])
	}
	if !strings.Contains(got[1].Message, "glances") {
		t.Fatalf("zero-damage attack message %q", got[1].Message)
	}
	if !strings.Contains(got[4].Message, "knights") {
		t.Fatalf("end line %q", got[4].Message)
	}
}

func TestFitCellSize(t *testing.T) {
	if got := fitCellSize(20, 15); got != maxCellSize {
		t.Errorf("20x15 cell %d, want %d", got, maxCellSize)
	}
	if got := fitCellSize(200, 200); got != minCellSize {
		t.Errorf("200x200 cell %d, want floor %d", got, minCellSize)
	}
	if got := fitCellSize(60, 10); got != maxBoardW/60 {
		t.Errorf("60x10 cell %d, want %d", got, maxBoardW/60)
	}
}

func TestApply_PauseBlocksMoves(t *testing.T) {
	g := newTestGame(t, 11)
	if err := g.apply(intentPause); err != nil {
		t.Fatalf("apply pause: %v", err)
	}
	if !g.match.IsPaused() {
		t.Fatal("match should be paused")
	}
	before := g.match.Player()
	for _, in := range []intent{intentUp, intentDown, intentLeft, intentRight} {
		_ = g.apply(in)
	}
	if after := g.match.Player(); after.X != before.X || after.Y != before.Y {
		t.Fatal("player moved while paused")
	}
	if !strings.Contains(g.status, "paused") {
		t.Fatalf("status %q", g.status)
	}
	_ = g.apply(intentPause)
	if g.match.IsPaused() {
		t.Fatal("second P should resume")
	}
}

func TestApply_AcceptedMoveAdvancesTurn(t *testing.T) {
	g := newTestGame(t, 12)
	for _, in := range []intent{intentUp, intentDown, intentLeft, intentRight} {
		turn := g.match.Turn()
		_ = g.apply(in)
		if g.status == "" && g.match.Turn() != turn+1 {
			t.Fatalf("accepted move did not advance the turn")
		}
		if g.status != "" && g.match.Turn() != turn && g.match.State() == sim.StateActive {
			t.Fatalf("rejected move advanced the turn")
		}
		if g.match.State() != sim.StateActive {
			return
		}
	}
}

func TestAutoTick(t *testing.T) {
	g := newTestGame(t, 13)
	g.autoTick(time.Second)
	if g.match.Turn() != 0 {
		t.Fatal("auto tick ran while auto-play is off")
	}
	_ = g.apply(intentAuto)
	if !g.autoPlay {
		t.Fatal("space should enable auto-play")
	}
	g.autoTick(g.tickEvery*3 + g.tickEvery/2)
	if g.match.State() == sim.StateActive && g.match.Turn() != 3 {
		t.Fatalf("turn %d after 3.5 intervals, want 3", g.match.Turn())
	}
}

func TestApply_RestartAndQuit(t *testing.T) {
	g := newTestGame(t, 14)
	first := g.match.ID()
	if err := g.apply(intentRestart); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if g.match.ID() == first {
		t.Fatal("restart should build a new match")
	}
	if g.match.Seed() != 15 {
		t.Fatalf("restart seed %d, want 15", g.match.Seed())
	}
	_ = g.apply(intentQuit)
	if !g.quit || g.match.State() != sim.StateEnded || g.match.Winner() != sim.WinnerNone {
		t.Fatalf("quit: flag=%v state=%s winner=%s", g.quit, g.match.State(), g.match.Winner())
	}
}

func TestApply_CopyReport(t *testing.T) {
	g := newTestGame(t, 16)
	var copied string
	g.copyText = func(s string) error {
		copied = s
		return nil
	}
	_ = g.apply(intentCopy)
	if !strings.Contains(copied, "Active knights") || !strings.Contains(copied, "A") {
		t.Fatalf("unexpected report:\n%s", copied)
	}
	if g.status != "report copied" {
		t.Fatalf("status %q", g.status)
	}

	g.copyText = func(string) error { return errors.New("no clipboard") }
	_ = g.apply(intentCopy)
	if g.status != "copy failed" {
		t.Fatalf("status %q", g.status)
	}
}
