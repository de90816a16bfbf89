package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Garsondee/knights-vs-monsters/internal/config"
	"github.com/Garsondee/knights-vs-monsters/internal/report"
	"github.com/Garsondee/knights-vs-monsters/internal/sim"
)

type runStats struct {
	runIndex int
	seed     int64
	matchID  string

	winner   sim.Winner
	finished bool
	turns    int

	knightsStart  int
	monstersStart int
	knightsLeft   int
	monstersLeft  int

	attacks        int
	damagingHits   int
	heals          int
	knightDeaths   int
	monsterDeaths  int
	firstDeathTurn int
	firstHealTurn  int
	casualties     map[string]struct{}
}

func main() {
	var (
		cfgPath  string
		pdfPath  string
		verbose  bool
		runs     int
		turns    int
		seedBase int64
		seedStep int64
		width    int
		height   int
		density  int
	)
	flag.StringVar(&cfgPath, "config", "", "YAML config file (defaults when empty)")
	flag.StringVar(&pdfPath, "pdf", "", "write a PDF report of the last run to this path")
	flag.BoolVar(&verbose, "verbose", false, "debug logging")
	flag.IntVar(&runs, "runs", config.DefaultRuns, "number of headless matches")
	flag.IntVar(&turns, "turns", config.DefaultTurnLimit, "turn limit per match")
	flag.Int64Var(&seedBase, "seed-base", 42, "RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", config.DefaultSeedStep, "seed increment between runs")
	flag.IntVar(&width, "width", config.DefaultWidth, "grid width")
	flag.IntVar(&height, "height", config.DefaultHeight, "grid height")
	flag.IntVar(&density, "density", sim.DefaultFighterDensity, "cells per fighter")
	flag.Parse()

	logger := newLogger(verbose)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	if cfgPath == "" {
		cfg.Seed = seedBase
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "runs":
			cfg.Runs = runs
		case "turns":
			cfg.TurnLimit = turns
		case "seed-base":
			cfg.Seed = seedBase
		case "seed-step":
			cfg.SeedStep = seedStep
		case "width":
			cfg.Width = width
		case "height":
			cfg.Height = height
		case "density":
			cfg.FighterDensity = density
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Headless Battle Report ===\n")
	fmt.Printf("grid=%dx%d density=%d runs=%d turn_limit=%d seed_base=%d seed_step=%d\n\n",
		cfg.Width, cfg.Height, cfg.FighterDensity, cfg.Runs, cfg.TurnLimit, cfg.Seed, cfg.SeedStep)

	all := make([]runStats, 0, cfg.Runs)
	var last *sim.Match
	for i := 0; i < cfg.Runs; i++ {
		mc := cfg.ToMatchConfig()
		mc.Seed = cfg.RunSeed(i)
		m, err := sim.NewMatch(mc, sim.WithLogger(logger))
		if err != nil {
			fmt.Printf("run %d: %v\n", i+1, err)
			continue
		}
		stats, err := runMatch(i+1, m, cfg.TurnLimit)
		if err != nil {
			fmt.Printf("run %d: %v\n", i+1, err)
			continue
		}
		all = append(all, stats)
		printRun(stats)
		last = m
	}

	printAggregate(all)

	if pdfPath != "" && last != nil {
		b, err := report.Generate(last, "Knights vs Monsters: batch report", aggregateNotes(all))
		if err != nil {
			fmt.Printf("error: pdf: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(pdfPath, b, 0o644); err != nil { // #nosec G306
			fmt.Printf("error: write %s: %v\n", pdfPath, err)
			os.Exit(1)
		}
		fmt.Printf("\npdf written to %s (%d bytes)\n", pdfPath, len(b))
	}
}

func newLogger(verbose bool) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		l, err = cfg.Build()
	}
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// runMatch plays m until it ends or the turn limit is reached.
func runMatch(runIndex int, m *sim.Match, turnLimit int) (runStats, error) {
	start := m.Counts()
	rs := runStats{
		runIndex:      runIndex,
		seed:          m.Seed(),
		matchID:       m.ID(),
		knightsStart:  start.Knights,
		monstersStart: start.Monsters,
		casualties:    map[string]struct{}{},
	}
	for m.State() == sim.StateActive && m.Turn() < turnLimit {
		rep, err := m.AdvanceTurn()
		if err != nil {
			return rs, err
		}
		collectTurn(&rs, rep)
	}
	if m.State() == sim.StateActive {
		if err := m.Quit(); err != nil {
			return rs, err
		}
	} else {
		rs.finished = true
	}
	end := m.Counts()
	rs.winner = m.Winner()
	rs.turns = m.Turn()
	rs.knightsLeft = end.Knights
	rs.monstersLeft = end.Monsters
	rs.firstDeathTurn = m.Log().FirstTurn(sim.Query{Category: sim.CategoryDeath})
	rs.firstHealTurn = m.Log().FirstTurn(sim.Query{Category: sim.CategoryHeal, Event: "healed"})
	return rs, nil
}

// collectTurn folds one turn report into the run totals.
func collectTurn(rs *runStats, rep sim.TurnReport) {
	rs.attacks += len(rep.Attacks)
	for _, a := range rep.Attacks {
		if a.Damage > 0 {
			rs.damagingHits++
		}
	}
	rs.heals += len(rep.Heals)
	for _, d := range rep.Deaths {
		switch d.Faction {
		case sim.FactionKnights:
			rs.knightDeaths++
		case sim.FactionMonsters:
			rs.monsterDeaths++
		}
		rs.casualties[d.Fighter] = struct{}{}
	}
}

// isStalemate reports a run cut off by the turn limit with both sides alive.
func isStalemate(rs runStats) bool {
	return !rs.finished && rs.knightsLeft > 0 && rs.monstersLeft > 0
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d id=%s) ---\n", rs.runIndex, rs.seed, rs.matchID)
	outcome := rs.winner.String()
	if isStalemate(rs) {
		outcome = "stalemate"
	}
	fmt.Printf("outcome=%s turns=%d knights=%d/%d monsters=%d/%d\n",
		outcome, rs.turns, rs.knightsLeft, rs.knightsStart, rs.monstersLeft, rs.monstersStart)
	fmt.Printf("event_totals: attacks=%d damaging_hits=%d heals=%d knight_deaths=%d monster_deaths=%d\n",
		rs.attacks, rs.damagingHits, rs.heals, rs.knightDeaths, rs.monsterDeaths)
	fmt.Printf("phase_markers: first_death=%d first_heal=%d\n", rs.firstDeathTurn, rs.firstHealTurn)
	fmt.Printf("casualties: %s\n\n", joinSet(rs.casualties))
}

// aggregate holds batch totals shared by the console and PDF output.
type aggregate struct {
	runs            int
	knightWins      int
	monsterWins     int
	stalemates      int
	totalTurns      int
	totalAttacks    int
	totalHits       int
	totalHeals      int
	totalDeaths     int
	firstDeathTurns []int
	finishedTurns   []int
}

func summarize(all []runStats) aggregate {
	ag := aggregate{runs: len(all)}
	for _, rs := range all {
		switch {
		case isStalemate(rs):
			ag.stalemates++
		case rs.winner == sim.WinnerKnights:
			ag.knightWins++
		case rs.winner == sim.WinnerMonsters:
			ag.monsterWins++
		}
		ag.totalTurns += rs.turns
		ag.totalAttacks += rs.attacks
		ag.totalHits += rs.damagingHits
		ag.totalHeals += rs.heals
		ag.totalDeaths += rs.knightDeaths + rs.monsterDeaths
		if rs.firstDeathTurn >= 0 {
			ag.firstDeathTurns = append(ag.firstDeathTurns, rs.firstDeathTurn)
		}
		if rs.finished {
			ag.finishedTurns = append(ag.finishedTurns, rs.turns)
		}
	}
	return ag
}

func aggregateNotes(all []runStats) []string {
	ag := summarize(all)
	return []string{
		fmt.Sprintf("Runs: %d   knight wins %d   monster wins %d   stalemates %d", ag.runs, ag.knightWins, ag.monsterWins, ag.stalemates),
		fmt.Sprintf("Avg per run: turns %.1f  attacks %.1f  hits %.1f  heals %.1f  deaths %.1f",
			avg(ag.totalTurns, ag.runs), avg(ag.totalAttacks, ag.runs), avg(ag.totalHits, ag.runs),
			avg(ag.totalHeals, ag.runs), avg(ag.totalDeaths, ag.runs)),
		fmt.Sprintf("Avg first death turn %s   avg match length %s", avgTurnString(ag.firstDeathTurns), avgTurnString(ag.finishedTurns)),
	}
}

func printAggregate(all []runStats) {
	ag := summarize(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d knight_wins=%d monster_wins=%d stalemates=%d\n", ag.runs, ag.knightWins, ag.monsterWins, ag.stalemates)
	fmt.Printf("avg_per_run: turns=%.1f attacks=%.1f damaging_hits=%.1f heals=%.1f deaths=%.1f\n",
		avg(ag.totalTurns, ag.runs), avg(ag.totalAttacks, ag.runs), avg(ag.totalHits, ag.runs),
		avg(ag.totalHeals, ag.runs), avg(ag.totalDeaths, ag.runs))
	fmt.Printf("phase_marker_avg_turns: first_death=%s match_length=%s\n",
		avgTurnString(ag.firstDeathTurns), avgTurnString(ag.finishedTurns))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTurnString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
