package sim

import (
	"fmt"
	"strings"
)

// Log categories.
const (
	CategoryMove   = "move"
	CategoryAttack = "attack"
	CategoryHeal   = "heal"
	CategoryDeath  = "death"
	CategoryState  = "state"
	CategoryPlayer = "player"
	CategorySetup  = "setup"
)

// SimLogEntry is one recorded match event.
type SimLogEntry struct {
	Turn     int
	Actor    string // "K3", "M7", "A0"; "--" for match-wide events
	Faction  string
	Category string
	Event    string
	Detail   string
	Amount   int // damage, health or count, depending on the event
}

//	[T=042] K3   attack   hit              M7 at (4,2) for 2 (health 1)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-8s %-16s %s", e.Turn, e.Actor, e.Category, e.Event, e.Detail)
}

// Query selects entries; zero fields match anything. ToTurn 0 means no
// upper bound.
type Query struct {
	Category string
	Event    string
	Actor    string
	Contains string
	FromTurn int
	ToTurn   int
}

func (q Query) matches(e SimLogEntry) bool {
	switch {
	case q.Category != "" && e.Category != q.Category:
		return false
	case q.Event != "" && e.Event != q.Event:
		return false
	case q.Actor != "" && e.Actor != q.Actor:
		return false
	case e.Turn < q.FromTurn:
		return false
	case q.ToTurn > 0 && e.Turn > q.ToTurn:
		return false
	case q.Contains != "" && !strings.Contains(e.Detail, q.Contains):
		return false
	}
	return true
}

// SimLog is the append-only event record of a match. Fighter movement is
// kept only in verbose mode.
type SimLog struct {
	verbose bool
	entries []SimLogEntry
}

// NewSimLog creates an empty log.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

func (sl *SimLog) Add(turn int, actor, faction, category, event, detail string, amount int) {
	sl.entries = append(sl.entries, SimLogEntry{
		Turn:     turn,
		Actor:    actor,
		Faction:  faction,
		Category: category,
		Event:    event,
		Detail:   detail,
		Amount:   amount,
	})
}

// AddVerbose is Add gated on verbose mode.
func (sl *SimLog) AddVerbose(turn int, actor, faction, category, event, detail string, amount int) {
	if sl.verbose {
		sl.Add(turn, actor, faction, category, event, detail, amount)
	}
}

// Entries returns the whole log. Callers must not modify it.
func (sl *SimLog) Entries() []SimLogEntry { return sl.entries }

func (sl *SimLog) Len() int { return len(sl.entries) }

// Tail returns at most the n latest entries.
func (sl *SimLog) Tail(n int) []SimLogEntry {
	if n >= len(sl.entries) {
		return sl.entries
	}
	return sl.entries[len(sl.entries)-n:]
}

// Select returns the matching entries in recording order.
func (sl *SimLog) Select(q Query) []SimLogEntry {
	var hits []SimLogEntry
	for _, e := range sl.entries {
		if q.matches(e) {
			hits = append(hits, e)
		}
	}
	return hits
}

// Count returns the number of matching entries.
func (sl *SimLog) Count(q Query) int {
	n := 0
	for _, e := range sl.entries {
		if q.matches(e) {
			n++
		}
	}
	return n
}

// Has reports whether any entry matches.
func (sl *SimLog) Has(q Query) bool {
	_, ok := sl.First(q)
	return ok
}

// First returns the earliest matching entry.
func (sl *SimLog) First(q Query) (SimLogEntry, bool) {
	for _, e := range sl.entries {
		if q.matches(e) {
			return e, true
		}
	}
	return SimLogEntry{}, false
}

// FirstTurn returns the turn of the earliest match, or -1.
func (sl *SimLog) FirstTurn(q Query) int {
	if e, ok := sl.First(q); ok {
		return e.Turn
	}
	return -1
}

// Last returns the latest matching entry.
func (sl *SimLog) Last(q Query) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if q.matches(sl.entries[i]) {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// Format renders the matching entries one per line.
func (sl *SimLog) Format(q Query) string {
	return FormatEntries(sl.Select(q))
}

// FormatEntries renders entries one per line.
func FormatEntries(entries []SimLogEntry) string {
	lines := make([]string, 0, len(entries)+1)
	for _, e := range entries {
		lines = append(lines, e.String())
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
