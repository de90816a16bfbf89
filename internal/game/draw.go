package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/knights-vs-monsters/internal/sim"
)

// uiFace is the bitmap face for all on-screen text (7x13 cells).
var uiFace = text.NewGoXFace(basicfont.Face7x13)

const (
	charW = 7
	lineH = 13
)

var terrainColors = map[sim.Terrain]color.RGBA{
	sim.TerrainOpen:   {R: 112, G: 140, B: 78, A: 255},
	sim.TerrainForest: {R: 34, G: 78, B: 38, A: 255},
	sim.TerrainWater:  {R: 44, G: 84, B: 150, A: 255},
}

var entityColors = map[sim.Kind]color.RGBA{
	sim.KindPlayer:  {R: 245, G: 215, B: 70, A: 255},
	sim.KindKnight:  {R: 70, G: 120, B: 230, A: 255},
	sim.KindMonster: {R: 210, G: 60, B: 60, A: 255},
}

func drawText(dst *ebiten.Image, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, uiFace, op)
}

// drawBoard paints terrain, then fighters, then the player on top.
func (g *Game) drawBoard(screen *ebiten.Image) {
	grid := g.match.Grid()
	cs := float32(g.cellSize)
	ox, oy := float32(g.offX), float32(g.offY)
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			vector.FillRect(screen, ox+float32(x)*cs, oy+float32(y)*cs, cs, cs, terrainColors[grid.At(x, y)], false)
		}
	}
	gridCol := color.RGBA{R: 0, G: 0, B: 0, A: 50}
	for x := 0; x <= grid.Width(); x++ {
		xf := ox + float32(x)*cs
		vector.StrokeLine(screen, xf, oy, xf, oy+float32(grid.Height())*cs, 1, gridCol, false)
	}
	for y := 0; y <= grid.Height(); y++ {
		yf := oy + float32(y)*cs
		vector.StrokeLine(screen, ox, yf, ox+float32(grid.Width())*cs, yf, 1, gridCol, false)
	}

	for _, e := range g.match.Entities() {
		cx := ox + (float32(e.X)+0.5)*cs
		cy := oy + (float32(e.Y)+0.5)*cs
		vector.FillCircle(screen, cx, cy, cs*0.42, entityColors[e.Kind], true)
		if e.Kind != sim.KindPlayer {
			// Health pips along the bottom of the cell.
			for i := 0; i < e.Health && i < 5; i++ {
				vector.FillRect(screen, ox+float32(e.X)*cs+2+float32(i)*5, oy+float32(e.Y+1)*cs-5, 4, 3, color.White, false)
			}
		}
		drawText(screen, string(e.Symbol), int(cx)-charW/2, int(cy)-lineH/2, color.Black)
	}
}

// drawHUD writes status lines under the board. While paused it adds the
// faction summary.
func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.match.Summary()
	mode := "manual"
	if g.autoPlay {
		mode = "auto"
	}
	lines := []string{
		fmt.Sprintf("Turn %d  %s  %s  K:%d M:%d", s.Turn, s.State, mode, s.Knights, s.Monsters),
		"WASD move  Space auto  P pause  R restart  C copy  Q quit",
	}
	if s.State == sim.StatePaused || s.State == sim.StateEnded {
		lines = append(lines,
			fmt.Sprintf("Knights  %d alive, health %d", s.Knights, s.KnightHealth),
			fmt.Sprintf("Monsters %d alive, health %d", s.Monsters, s.MonsterHealth))
	}
	if s.State == sim.StateEnded {
		lines = append(lines, "Winner: "+s.Winner.String())
	}
	if g.status != "" {
		lines = append(lines, g.status)
	}

	x := g.offX
	y := g.offY + g.boardH() + 8
	vector.FillRect(screen, float32(x-4), float32(y-4), float32(g.boardW()+8), float32(len(lines)*lineH+8), color.RGBA{R: 10, G: 12, B: 16, A: 220}, false)
	for i, l := range lines {
		drawText(screen, l, x, y+i*lineH, color.RGBA{R: 230, G: 230, B: 210, A: 255})
	}
}
