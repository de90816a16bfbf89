package game

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/Garsondee/knights-vs-monsters/internal/config"
	"github.com/Garsondee/knights-vs-monsters/internal/sim"
)

// borderWidth is the pixel gap between the window edge and the board.
const borderWidth = 16

// hudLines is the room reserved under the board for the status block.
const hudLines = 6

// reportLogLines caps the log tail in the clipboard report.
const reportLogLines = 30

// Board size limits in pixels; cells shrink to fit larger grids.
const (
	maxCellSize = 32
	minCellSize = 10
	maxBoardW   = 960
	maxBoardH   = 640
)

// intent is a player command decoded from the keyboard.
type intent int

const (
	intentNone intent = iota
	intentUp
	intentDown
	intentLeft
	intentRight
	intentPause
	intentAuto
	intentRestart
	intentCopy
	intentQuit
)

var keyIntents = map[ebiten.Key]intent{
	ebiten.KeyW:          intentUp,
	ebiten.KeyArrowUp:    intentUp,
	ebiten.KeyS:          intentDown,
	ebiten.KeyArrowDown:  intentDown,
	ebiten.KeyA:          intentLeft,
	ebiten.KeyArrowLeft:  intentLeft,
	ebiten.KeyD:          intentRight,
	ebiten.KeyArrowRight: intentRight,
	ebiten.KeyP:          intentPause,
	ebiten.KeySpace:      intentAuto,
	ebiten.KeyR:          intentRestart,
	ebiten.KeyC:          intentCopy,
	ebiten.KeyQ:          intentQuit,
	ebiten.KeyEscape:     intentQuit,
}

// moveSteps maps movement intents onto grid offsets.
var moveSteps = map[intent][2]int{
	intentUp:    {0, -1},
	intentDown:  {0, 1},
	intentLeft:  {-1, 0},
	intentRight: {1, 0},
}

// Game is the ebiten front-end. It owns one match at a time and turns key
// presses into player moves and turns.
type Game struct {
	cfg    config.Config
	logger *zap.Logger
	match  *sim.Match
	events *EventLog

	width    int
	height   int
	offX     int
	offY     int
	cellSize int

	// Auto-play advances one turn every tickEvery without player input.
	autoPlay  bool
	tickEvery time.Duration
	tickAccum time.Duration

	status   string
	quit     bool
	copyText func(string) error
}

// New builds the front-end and its first match.
func New(cfg config.Config, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Game{
		cfg:       cfg,
		logger:    logger,
		events:    NewEventLog(),
		offX:      borderWidth,
		offY:      borderWidth,
		tickEvery: time.Duration(cfg.AutoTickMillis) * time.Millisecond,
		copyText:  clipboard.WriteAll,
	}
	if g.tickEvery <= 0 {
		g.tickEvery = config.DefaultAutoTickMillis * time.Millisecond
	}
	if err := g.startMatch(cfg.Seed); err != nil {
		return nil, err
	}
	g.cellSize = fitCellSize(cfg.Width, cfg.Height)
	g.width = borderWidth + g.boardW() + borderWidth + logPanelWidth
	g.height = max(borderWidth+g.boardH()+hudLines*lineH+2*borderWidth, 360)
	return g, nil
}

// fitCellSize picks the largest cell that keeps the board inside the limits.
func fitCellSize(w, h int) int {
	if w <= 0 || h <= 0 {
		return maxCellSize
	}
	cs := min(maxCellSize, maxBoardW/w, maxBoardH/h)
	return max(cs, minCellSize)
}

func (g *Game) boardW() int { return g.match.Grid().Width() * g.cellSize }
func (g *Game) boardH() int { return g.match.Grid().Height() * g.cellSize }

// startMatch replaces the current match. Seed 0 asks for a clock seed.
func (g *Game) startMatch(seed int64) error {
	mc := g.cfg.ToMatchConfig()
	mc.Seed = seed
	m, err := sim.NewMatch(mc, sim.WithLogger(g.logger))
	if err != nil {
		return fmt.Errorf("start match: %w", err)
	}
	g.match = m
	g.events.Reset()
	c := m.Counts()
	g.events.Add(0, "--", sim.FactionNone, fmt.Sprintf("%d knights vs %d monsters (seed %d)", c.Knights, c.Monsters, m.Seed()))
	g.autoPlay = false
	g.tickAccum = 0
	g.status = ""
	return nil
}

func (g *Game) Update() error {
	for k, in := range keyIntents {
		if inpututil.IsKeyJustPressed(k) {
			if err := g.apply(in); err != nil {
				return err
			}
		}
	}
	if g.quit {
		return ebiten.Termination
	}
	g.autoTick(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// autoTick accumulates frame time and runs the turns that are due.
func (g *Game) autoTick(dt time.Duration) {
	if !g.autoPlay || g.match.State() != sim.StateActive {
		g.tickAccum = 0
		return
	}
	g.tickAccum += dt
	for g.tickAccum >= g.tickEvery && g.match.State() == sim.StateActive {
		g.tickAccum -= g.tickEvery
		g.advance()
	}
}

// apply executes one intent. Errors from the match are shown on the HUD;
// only a failed restart is returned, since there is no match left to show.
func (g *Game) apply(in intent) error {
	switch in {
	case intentUp, intentDown, intentLeft, intentRight:
		step := moveSteps[in]
		ok, err := g.match.AttemptPlayerMove(step[0], step[1])
		switch {
		case err != nil:
			g.status = statusFor(err)
		case !ok:
			g.status = "can't move there"
		default:
			g.status = ""
			g.advance()
		}
	case intentPause:
		if err := g.match.TogglePause(); err != nil {
			g.status = statusFor(err)
		}
	case intentAuto:
		if g.match.State() == sim.StateActive {
			g.autoPlay = !g.autoPlay
		}
	case intentRestart:
		seed := int64(0)
		if g.cfg.Seed != 0 {
			seed = g.match.Seed() + 1
		}
		return g.startMatch(seed)
	case intentCopy:
		if err := g.copyText(MatchReport(g.match)); err != nil {
			g.logger.Warn("clipboard copy failed", zap.Error(err))
			g.status = "copy failed"
		} else {
			g.status = "report copied"
		}
	case intentQuit:
		if g.match.State() != sim.StateEnded {
			if err := g.match.Quit(); err != nil {
				g.logger.Warn("quit failed", zap.Error(err))
			}
		}
		g.quit = true
	}
	return nil
}

// advance runs one turn and feeds the outcome to the log panel.
func (g *Game) advance() {
	rep, err := g.match.AdvanceTurn()
	if err != nil {
		g.status = statusFor(err)
		return
	}
	g.events.AddReport(rep)
	if rep.State == sim.StateEnded {
		g.autoPlay = false
	}
}

func statusFor(err error) string {
	switch {
	case errors.Is(err, sim.ErrMatchPaused):
		return "paused: press P to resume"
	case errors.Is(err, sim.ErrMatchEnded):
		return "match over: press R to restart"
	default:
		return err.Error()
	}
}

// MatchReport is the plain-text report copied to the clipboard: the summary,
// the board and the latest log lines.
func MatchReport(m *sim.Match) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Knights vs Monsters  match %s  seed %d\n", m.ID(), m.Seed())
	sb.WriteString(m.Summary().String())
	sb.WriteString(m.Render())
	sb.WriteString(sim.FormatEntries(m.Log().Tail(reportLogLines)))
	return sb.String()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})
	g.drawBoard(screen)
	g.drawHUD(screen)
	g.events.Draw(screen, g.width-logPanelWidth, g.height)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Match exposes the running match for the caller's final report.
func (g *Game) Match() *sim.Match { return g.match }
