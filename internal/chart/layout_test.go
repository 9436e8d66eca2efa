package chart

import (
	"math"
	"reflect"
	"testing"
	"time"

	"pingclock/internal/models"
)

func ok(ms int) models.Sample {
	return models.Succeeded(time.Time{}, time.Duration(ms)*time.Millisecond)
}

func failed() models.Sample {
	return models.Failed(time.Time{}, models.FailureTimeout, nil)
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLayoutNothingToDraw(t *testing.T) {
	tests := []struct {
		name    string
		samples []models.Sample
	}{
		{name: "nil history", samples: nil},
		{name: "empty history", samples: []models.Sample{}},
		{name: "all failed", samples: []models.Sample{failed(), failed(), failed()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Layout(tt.samples, 400, 200)
			if !p.Empty() {
				t.Errorf("expected empty plot, got %d points", len(p.Points))
			}
			if len(p.Gridlines) != 0 {
				t.Errorf("expected no gridlines, got %d", len(p.Gridlines))
			}
			if p.Area() != nil {
				t.Error("expected no area polygon")
			}
		})
	}
}

func TestLayoutMixedHistory(t *testing.T) {
	samples := []models.Sample{ok(50), ok(150), failed(), ok(80)}
	p := Layout(samples, 400, 200)

	if p.MaxLatency != 150*time.Millisecond {
		t.Errorf("MaxLatency = %v, want 150ms", p.MaxLatency)
	}
	if !near(p.Step, 400.0/3) {
		t.Errorf("Step = %v, want %v", p.Step, 400.0/3)
	}

	var labels []string
	for _, g := range p.Gridlines {
		labels = append(labels, g.Label)
	}
	want := []string{"0ms", "30ms", "60ms", "90ms", "120ms", "150ms"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("gridline labels = %v, want %v", labels, want)
	}
	for i, g := range p.Gridlines {
		if wantY := 200 * (1 - float64(i)/GridSteps); !near(g.Y, wantY) {
			t.Errorf("gridline %d at y=%v, want %v", i, g.Y, wantY)
		}
	}

	wantPoints := []struct {
		index int
		x, y  float64
	}{
		{index: 0, x: 0, y: 200 * (1 - 50.0/150)},
		{index: 1, x: 400.0 / 3, y: 0},
		{index: 3, x: 400, y: 200 * (1 - 80.0/150)},
	}
	if len(p.Points) != len(wantPoints) {
		t.Fatalf("got %d points, want %d", len(p.Points), len(wantPoints))
	}
	for i, w := range wantPoints {
		got := p.Points[i]
		if got.Index != w.index || !near(got.X, w.x) || !near(got.Y, w.y) {
			t.Errorf("point %d = (idx %d, %v, %v), want (idx %d, %v, %v)", i, got.Index, got.X, got.Y, w.index, w.x, w.y)
		}
	}
}

func TestLayoutFloorsScale(t *testing.T) {
	p := Layout([]models.Sample{ok(5), ok(12), ok(8)}, 300, 100)
	if p.MaxLatency != MinScale {
		t.Errorf("MaxLatency = %v, want floor %v", p.MaxLatency, MinScale)
	}
	if got := p.Gridlines[len(p.Gridlines)-1].Label; got != "100ms" {
		t.Errorf("top label = %q, want 100ms", got)
	}
	if !near(p.Points[1].Y, 100*(1-12.0/100)) {
		t.Errorf("12ms mapped to y=%v", p.Points[1].Y)
	}
}

func TestLayoutSingleSample(t *testing.T) {
	p := Layout([]models.Sample{ok(40)}, 400, 200)
	if p.Step != 0 {
		t.Errorf("Step = %v, want 0", p.Step)
	}
	if len(p.Points) != 1 || p.Points[0].X != 0 {
		t.Fatalf("points = %+v, want one point at x=0", p.Points)
	}
	if math.IsNaN(p.Points[0].Y) || math.IsInf(p.Points[0].Y, 0) {
		t.Errorf("single point y = %v", p.Points[0].Y)
	}
	if p.Area() != nil {
		t.Error("a single point must not produce an area")
	}
}

func TestLayoutDoesNotMutateInput(t *testing.T) {
	samples := []models.Sample{ok(50), failed(), ok(300)}
	before := make([]models.Sample, len(samples))
	copy(before, samples)

	Layout(samples, 400, 200)

	if !reflect.DeepEqual(samples, before) {
		t.Error("Layout modified its input")
	}
}

func TestAreaClosesToBaseline(t *testing.T) {
	p := Layout([]models.Sample{failed(), ok(50), ok(100), failed()}, 300, 100)
	area := p.Area()
	if len(area) != 4 {
		t.Fatalf("area has %d vertices, want 4", len(area))
	}
	last, first := area[2], area[3]
	if last.X != p.Points[1].X || last.Y != 100 {
		t.Errorf("baseline right corner = %+v", last)
	}
	if first.X != p.Points[0].X || first.Y != 100 {
		t.Errorf("baseline left corner = %+v", first)
	}
}

func TestClipBand(t *testing.T) {
	square := []Vec{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	band := clipBand(square, 2, 5)
	if len(band) != 4 {
		t.Fatalf("clipped square has %d vertices, want 4: %v", len(band), band)
	}
	for _, v := range band {
		if v.Y < 2 || v.Y > 5 {
			t.Errorf("vertex %+v escapes band [2,5]", v)
		}
	}

	if got := clipBand(square, 20, 30); len(got) != 0 {
		t.Errorf("band outside polygon kept %v", got)
	}

	triangle := []Vec{{0, 10}, {5, 0}, {10, 10}}
	top := clipBand(triangle, 0, 5)
	for _, v := range top {
		if v.Y == 5 && (v.X < 2.5-1e-9 || v.X > 7.5+1e-9) {
			t.Errorf("cut edge vertex %+v off the triangle sides", v)
		}
	}
}
