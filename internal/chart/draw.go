package chart

import (
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Style holds the colours and sizes of the chart
type Style struct {
	Background   drawing.Color
	LineColor    drawing.Color
	GridColor    drawing.Color
	LabelColor   drawing.Color
	LabelSize    float64
	LabelGap     int
	GridWidth    float64
	LineWidth    float64
	MarkerRadius float64
	// fill alpha at the top and bottom of the plot area
	FillTopAlpha    uint8
	FillBottomAlpha uint8
	FillBands       int
}

// DefaultStyle is a blue line over translucent blue on white
func DefaultStyle() Style {
	blue := drawing.Color{R: 0x21, G: 0x96, B: 0xF3, A: 255}
	return Style{
		Background:      drawing.ColorWhite,
		LineColor:       blue,
		GridColor:       drawing.Color{R: 211, G: 211, B: 211, A: 128},
		LabelColor:      drawing.Color{R: 128, G: 128, B: 128, A: 255},
		LabelSize:       9,
		LabelGap:        8,
		GridWidth:       1,
		LineWidth:       3,
		MarkerRadius:    4,
		FillTopAlpha:    77,
		FillBottomAlpha: 26,
		FillBands:       24,
	}
}

// Draw renders p with its top-left corner at (left, top).
// An empty plot issues no drawing calls.
func Draw(r gochart.Renderer, p Plot, left, top int, s Style) {
	if p.Empty() {
		return
	}

	ox, oy := float64(left), float64(top)
	drawGrid(r, p, ox, oy, s)
	if len(p.Points) > 1 {
		drawArea(r, p, ox, oy, s)
		drawLine(r, p, ox, oy, s)
	}
	drawMarkers(r, p, ox, oy, s)
}

func drawGrid(r gochart.Renderer, p Plot, ox, oy float64, s Style) {
	r.SetStrokeColor(s.GridColor)
	r.SetStrokeWidth(s.GridWidth)
	for _, g := range p.Gridlines {
		r.MoveTo(px(ox), px(oy+g.Y))
		r.LineTo(px(ox+p.Width), px(oy+g.Y))
		r.Stroke()
	}

	r.SetFontColor(s.LabelColor)
	r.SetFontSize(s.LabelSize)
	for _, g := range p.Gridlines {
		// right-aligned against the left edge of the plot
		box := r.MeasureText(g.Label)
		x := px(ox) - s.LabelGap - box.Width()
		y := px(oy + g.Y + float64(box.Height())/3)
		r.Text(g.Label, x, y)
	}
}

func drawArea(r gochart.Renderer, p Plot, ox, oy float64, s Style) {
	area := p.Area()
	bands := max(s.FillBands, 1)
	bandHeight := p.Height / float64(bands)

	for i := 0; i < bands; i++ {
		y0 := float64(i) * bandHeight
		y1 := y0 + bandHeight
		poly := clipBand(area, y0, y1)
		if len(poly) < 3 {
			continue
		}

		t := (y0 + y1) / 2 / p.Height
		alpha := float64(s.FillTopAlpha) + t*(float64(s.FillBottomAlpha)-float64(s.FillTopAlpha))
		fill := s.LineColor
		fill.A = uint8(math.Round(alpha))

		r.SetFillColor(fill)
		r.MoveTo(px(ox+poly[0].X), px(oy+poly[0].Y))
		for _, v := range poly[1:] {
			r.LineTo(px(ox+v.X), px(oy+v.Y))
		}
		r.Close()
		r.Fill()
	}
}

func drawLine(r gochart.Renderer, p Plot, ox, oy float64, s Style) {
	r.SetStrokeColor(s.LineColor)
	r.SetStrokeWidth(s.LineWidth)
	for i, pt := range p.Points {
		if i == 0 {
			r.MoveTo(px(ox+pt.X), px(oy+pt.Y))
			continue
		}
		r.LineTo(px(ox+pt.X), px(oy+pt.Y))
	}
	r.Stroke()
}

func drawMarkers(r gochart.Renderer, p Plot, ox, oy float64, s Style) {
	r.SetFillColor(s.LineColor)
	r.SetStrokeColor(s.LineColor)
	r.SetStrokeWidth(1)
	for _, pt := range p.Points {
		r.Circle(s.MarkerRadius, px(ox+pt.X), px(oy+pt.Y))
		r.FillStroke()
	}
}

func px(v float64) int {
	return int(math.Round(v))
}
