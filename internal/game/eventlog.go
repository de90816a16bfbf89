package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/knights-vs-monsters/internal/sim"
)

const (
	logPanelWidth = 300
	logMaxEntries = 80
	logLineHeight = 14
	logTitleH     = 18
)

// EventEntry is one line of the on-screen battle log.
type EventEntry struct {
	Turn    int
	Label   string // e.g. "K3", "M7"; "--" for match events
	Faction sim.Faction
	Message string
}

// EventLog is a ring buffer of recent battle events.
type EventLog struct {
	entries []EventEntry
	head    int
	count   int
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]EventEntry, logMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (el *EventLog) Add(turn int, label string, faction sim.Faction, msg string) {
	el.entries[el.head] = EventEntry{
		Turn:    turn,
		Label:   label,
		Faction: faction,
		Message: msg,
	}
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// Recent returns entries oldest first.
func (el *EventLog) Recent() []EventEntry {
	result := make([]EventEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

// Reset drops every entry.
func (el *EventLog) Reset() {
	el.head, el.count = 0, 0
}

// AddReport turns a TurnReport into log lines: attacks, heals, deaths and
// the end of the match. Plain movement is left out.
func (el *EventLog) AddReport(rep sim.TurnReport) {
	for _, a := range rep.Attacks {
		msg := fmt.Sprintf("hits %s for %d", a.Defender, a.Damage)
		if a.Damage == 0 {
			msg = fmt.Sprintf("glances off %s", a.Defender)
		}
		el.Add(rep.Turn, a.Attacker, factionOf(a.Attacker), msg)
	}
	for _, h := range rep.Heals {
		el.Add(rep.Turn, h.Patient, factionOf(h.Patient), fmt.Sprintf("healed by %s (hp %d)", h.Medic, h.Health))
	}
	for _, d := range rep.Deaths {
		el.Add(rep.Turn, d.Fighter, d.Faction, "falls")
	}
	if rep.State == sim.StateEnded {
		el.Add(rep.Turn, "--", sim.FactionNone, fmt.Sprintf("match over, winner: %s", rep.Winner))
	}
}

// factionOf reads the faction from a fighter label's leading symbol.
func factionOf(label string) sim.Faction {
	if label == "" {
		return sim.FactionNone
	}
	switch label[0] {
	case sim.KindKnight.Symbol():
		return sim.FactionKnights
	case sim.KindMonster.Symbol():
		return sim.FactionMonsters
	default:
		return sim.FactionNone
	}
}

func factionColor(f sim.Faction) color.RGBA {
	switch f {
	case sim.FactionKnights:
		return color.RGBA{R: 80, G: 130, B: 230, A: 255}
	case sim.FactionMonsters:
		return color.RGBA{R: 220, G: 70, B: 70, A: 255}
	default:
		return color.RGBA{R: 200, G: 200, B: 160, A: 255}
	}
}

// Draw renders the log panel at panelX, newest entry at the bottom.
func (el *EventLog) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 14, G: 14, B: 18, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 60, B: 80, A: 255}, false)
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), logTitleH, color.RGBA{R: 26, G: 26, B: 36, A: 255}, false)
	drawText(screen, "BATTLE LOG", panelX+8, 3, color.White)

	entries := el.Recent()
	maxVisible := (panelH - logTitleH - 6) / logLineHeight
	if maxVisible < 0 {
		maxVisible = 0
	}
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := logTitleH + 4
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), logLineHeight, color.RGBA{R: 34, G: 34, B: 48, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, factionColor(e.Faction), false)
		drawText(screen, fmt.Sprintf("%3d %-3s %s", e.Turn, e.Label, e.Message), panelX+12, y+1, color.RGBA{R: 220, G: 220, B: 220, A: 255})
		y += logLineHeight
	}
}
