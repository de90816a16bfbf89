// Package report renders a printable PDF of a match: the battlefield with
// every surviving entity, the faction summary and the tail of the event log.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/Garsondee/knights-vs-monsters/internal/sim"
)

const (
	pageW       = 595
	pageH       = 842
	margin      = 40
	maxCell     = 24.0
	gridAreaH   = 420.0
	titleSize   = 16
	fontSize    = 9
	logSize     = 7
	logLineH    = 9.0
	maxLogLines = 24
)

type rgb struct{ r, g, b int }

var terrainFill = map[sim.Terrain]rgb{
	sim.TerrainOpen:   {222, 214, 170},
	sim.TerrainForest: {70, 120, 60},
	sim.TerrainWater:  {70, 110, 180},
}

var entityInk = map[sim.Kind]rgb{
	sim.KindPlayer:  {20, 20, 20},
	sim.KindKnight:  {30, 60, 160},
	sim.KindMonster: {170, 30, 30},
}

// ErrNoMatch is returned when Generate is called without a match.
var ErrNoMatch = errors.New("report: no match")

// Generate returns PDF bytes for m. notes are printed under the summary,
// one per line; the headless runner uses them for batch statistics.
func Generate(m *sim.Match, title string, notes []string) ([]byte, error) {
	if m == nil {
		return nil, ErrNoMatch
	}
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	if title == "" {
		title = "Knights vs Monsters"
	}
	pdf.SetTextColor(30, 30, 30)
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin, margin)
	pdf.CellFormat(pageW-2*margin, 18, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", fontSize)
	pdf.CellFormat(pageW-2*margin, 12,
		fmt.Sprintf("match %s  seed %d  turn %d", m.ID(), m.Seed(), m.Turn()), "", 1, "L", false, 0, "")

	y := drawGrid(pdf, m, margin+40)
	y = drawSummary(pdf, m.Summary(), notes, y+14)
	drawLog(pdf, m.Log(), y+10)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// cellSize fits the grid into the page width and the grid area height.
func cellSize(w, h int) float64 {
	size := math.Min((pageW-2*margin)/float64(w), gridAreaH/float64(h))
	return math.Min(size, maxCell)
}

// drawGrid paints terrain cells and entity letters; returns the y below it.
func drawGrid(pdf *gofpdf.Fpdf, m *sim.Match, top float64) float64 {
	g := m.Grid()
	cs := cellSize(g.Width(), g.Height())
	pdf.SetLineWidth(0.3)
	pdf.SetDrawColor(90, 90, 90)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := terrainFill[g.At(x, y)]
			pdf.SetFillColor(c.r, c.g, c.b)
			pdf.Rect(margin+float64(x)*cs, top+float64(y)*cs, cs, cs, "FD")
		}
	}

	pdf.SetFont("Helvetica", "B", math.Max(cs*0.6, 4))
	for _, e := range m.Entities() {
		ink := entityInk[e.Kind]
		pdf.SetTextColor(ink.r, ink.g, ink.b)
		pdf.SetXY(margin+float64(e.X)*cs, top+float64(e.Y)*cs)
		pdf.CellFormat(cs, cs, string(e.Symbol), "", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(30, 30, 30)
	return top + float64(g.Height())*cs
}

func drawSummary(pdf *gofpdf.Fpdf, s sim.Summary, notes []string, top float64) float64 {
	lines := []string{
		fmt.Sprintf("State: %s   Winner: %s", s.State, s.Winner),
		fmt.Sprintf("Knights: %d alive, %d total health, %d medicine", s.Knights, s.KnightHealth, s.KnightMedicine),
		fmt.Sprintf("Monsters: %d alive, %d total health, %d medicine", s.Monsters, s.MonsterHealth, s.MonsterMedicine),
	}
	lines = append(lines, notes...)
	pdf.SetFont("Helvetica", "", fontSize)
	pdf.SetXY(margin, top)
	for _, l := range lines {
		pdf.CellFormat(pageW-2*margin, 12, l, "", 1, "L", false, 0, "")
	}
	return pdf.GetY()
}

// drawLog prints the most recent event log lines that fit on the page.
func drawLog(pdf *gofpdf.Fpdf, sl *sim.SimLog, top float64) {
	if sl == nil || sl.Len() == 0 {
		return
	}
	room := int((pageH - margin - top) / logLineH)
	n := min(maxLogLines, room)
	if n <= 0 {
		return
	}
	pdf.SetFont("Courier", "", logSize)
	pdf.SetXY(margin, top)
	for _, e := range sl.Tail(n) {
		// Core fonts are cp1252; the arrow has no glyph there.
		line := strings.ReplaceAll(e.String(), "→", "->")
		pdf.CellFormat(pageW-2*margin, logLineH, line, "", 1, "L", false, 0, "")
	}
}
