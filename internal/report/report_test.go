package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Garsondee/knights-vs-monsters/internal/sim"
)

func TestGenerate_NilMatch(t *testing.T) {
	if _, err := Generate(nil, "x", nil); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err=%v, want ErrNoMatch", err)
	}
}

func TestGenerate_ProducesPDF(t *testing.T) {
	m, err := sim.NewMatch(sim.Config{Width: 20, Height: 15, Seed: 5})
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	for i := 0; i < 10 && m.State() == sim.StateActive; i++ {
		if _, err := m.AdvanceTurn(); err != nil {
			t.Fatalf("AdvanceTurn: %v", err)
		}
	}
	b, err := Generate(m, "Test battle", []string{"runs: 1"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(b) < 100 {
		t.Errorf("PDF too short: %d bytes", len(b))
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Error("output is not a PDF (missing %PDF header)")
	}
}

func TestCellSize(t *testing.T) {
	if got := cellSize(5, 5); got != maxCell {
		t.Errorf("small grid cell %.1f, want cap %.1f", got, maxCell)
	}
	if got := cellSize(200, 10); got*200 > pageW-2*margin+0.001 {
		t.Errorf("wide grid overflows page: cell %.2f", got)
	}
	if got := cellSize(10, 200); got*200 > gridAreaH+0.001 {
		t.Errorf("tall grid overflows grid area: cell %.2f", got)
	}
}
