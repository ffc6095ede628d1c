package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestFillRectScales(t *testing.T) {
	// 10 cols × 5 rows shows a 100 × 100 field: 10 units per column, 10 per sub-pixel row
	c := NewCanvas(10, 5, 100, 100)
	c.FillRect(20, 30, 40, 50)

	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			want := x >= 2 && x <= 3 && y >= 3 && y <= 4
			if c.Pixel(x, y) != want {
				t.Errorf("Pixel(%d, %d) = %v, want %v", x, y, c.Pixel(x, y), want)
			}
		}
	}
}

func TestFillRectTinyStillVisible(t *testing.T) {
	c := NewCanvas(10, 5, 100, 100)
	c.FillRect(51, 51, 52, 52)
	if !c.Pixel(5, 5) {
		t.Error("a sub-pixel box should light the pixel under its center")
	}
}

func TestRenderOnlyChangedCells(t *testing.T) {
	c := NewCanvas(4, 2, 4, 4)
	c.Set(Point{X: 1, Y: 0})
	c.Set(Point{X: 1, Y: 1})

	var first bytes.Buffer
	if err := c.Render(&first); err != nil {
		t.Fatal(err)
	}
	if !strings.ContainsRune(first.String(), BlockFull) {
		t.Errorf("first render %q should contain a full block", first.String())
	}

	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Errorf("unchanged frame rendered %q, want nothing", second.String())
	}

	c.Clear()
	var third bytes.Buffer
	c.Render(&third)
	if !strings.Contains(third.String(), "\033[1;2H ") {
		t.Errorf("cleared cell should be blanked, got %q", third.String())
	}

	c.ForceRedraw()
	var fourth bytes.Buffer
	c.Render(&fourth)
	if strings.Count(fourth.String(), " ") != 8 {
		t.Errorf("forced redraw should emit all 8 cells, got %q", fourth.String())
	}
}

func TestHalfBlocks(t *testing.T) {
	c := NewCanvas(2, 1, 2, 2)
	c.Set(Point{X: 0, Y: 0})
	c.Set(Point{X: 1, Y: 1})
	if c.cell(0, 0) != BlockUpperHalf || c.cell(1, 0) != BlockLowerHalf {
		t.Errorf("cells = %q %q, want upper and lower halves", c.cell(0, 0), c.cell(1, 0))
	}
}

func TestPolygonFilled(t *testing.T) {
	c := NewCanvas(20, 10, 20, 20)
	square := []Point{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15}}
	c.Polygon(square, true)
	if !c.Pixel(10, 10) {
		t.Error("center of a filled square should be set")
	}
	c.Clear()
	c.Polygon(square, false)
	if c.Pixel(10, 10) || !c.Pixel(5, 10) {
		t.Error("outline should set edges only")
	}
}

func TestToField(t *testing.T) {
	c := NewCanvas(80, 24, 800, 600)
	if got := c.ToField(0); got != 5 {
		t.Errorf("ToField(0) = %v, want 5", got)
	}
	if got := c.ToField(79); got != 795 {
		t.Errorf("ToField(79) = %v, want 795", got)
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 2)
	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[3;4Hhi" {
		t.Errorf("output = %q", got)
	}
}

func TestMarkTextDirty(t *testing.T) {
	c := NewCanvas(4, 2, 4, 4)
	var buf strings.Builder
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}

	buf.Reset()
	c.MarkTextDirty(2, 2, 2)
	c.MarkTextDirty(1, 9, 3)
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "\033[2;2H  "; got != want {
		t.Errorf("render after MarkTextDirty = %q, want %q", got, want)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name                 string
		termW, termH         int
		wantW, wantH         int
		wantOffCol, wantOffR int
	}{
		{"wide terminal is pillarboxed", 200, 40, 107, 40, 46, 0},
		{"tall terminal is letterboxed", 80, 60, 80, 30, 0, 15},
		{"huge terminal is capped", 400, 200, 160, 60, 120, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, oc, or := Fit(tt.termW, tt.termH, 160, 60, 800, 600)
			if w != tt.wantW || h != tt.wantH || oc != tt.wantOffCol || or != tt.wantOffR {
				t.Errorf("Fit(%d, %d) = %d, %d, %d, %d; want %d, %d, %d, %d",
					tt.termW, tt.termH, w, h, oc, or, tt.wantW, tt.wantH, tt.wantOffCol, tt.wantOffR)
			}
		})
	}
}
