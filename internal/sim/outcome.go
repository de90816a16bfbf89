package sim

import (
	"fmt"
	"strings"
)

// Winner is the result carried by an ended match.
type Winner int

const (
	WinnerNone Winner = iota // quit, or still running
	WinnerKnights
	WinnerMonsters
)

func (w Winner) String() string {
	switch w {
	case WinnerKnights:
		return "knights"
	case WinnerMonsters:
		return "monsters"
	case WinnerNone:
		return "none"
	default:
		return "unknown"
	}
}

// FactionCounts holds the living fighter count per faction.
type FactionCounts struct {
	Knights  int
	Monsters int
}

// decideWinner applies the end-condition check. The knight check runs first,
// so a turn that wipes out both factions is a Monsters win.
func decideWinner(c FactionCounts) (Winner, bool) {
	if c.Knights == 0 {
		return WinnerMonsters, true
	}
	if c.Monsters == 0 {
		return WinnerKnights, true
	}
	return WinnerNone, false
}

// Summary is the pause screen information: active fighters and their
// combined health per faction.
type Summary struct {
	Turn            int
	State           State
	Winner          Winner
	Knights         int
	Monsters        int
	KnightHealth    int
	MonsterHealth   int
	KnightMedicine  int
	MonsterMedicine int
}

// String formats the summary as a short block of text.
func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Match info at T=%03d (%s) ---\n", s.Turn, s.State)
	fmt.Fprintf(&sb, "Active knights:  %d  total health %d  medicine %d\n", s.Knights, s.KnightHealth, s.KnightMedicine)
	fmt.Fprintf(&sb, "Active monsters: %d  total health %d  medicine %d\n", s.Monsters, s.MonsterHealth, s.MonsterMedicine)
	if s.State == StateEnded {
		fmt.Fprintf(&sb, "Winner: %s\n", s.Winner)
	}
	return sb.String()
}
