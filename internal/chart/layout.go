// Package chart draws the scrolling latency chart: horizontal gridlines,
// a gradient-filled area and a line with point markers.
package chart

import (
	"fmt"
	"time"

	"pingclock/internal/models"
)

const (
	// MinScale keeps flat low-latency data legible
	MinScale = 100 * time.Millisecond
	// GridSteps is the number of intervals between gridlines
	GridSteps = 5
)

// Point is a sample mapped into plot coordinates
type Point struct {
	X, Y    float64
	Index   int
	Latency time.Duration
}

// Vec is a bare 2D coordinate
type Vec struct {
	X, Y float64
}

// Gridline is a horizontal guide at a latency value
type Gridline struct {
	Y     float64
	Value time.Duration
	Label string
}

// Plot is the coordinate mapping of a history onto a drawing area.
// The origin is the top-left corner; y grows downwards.
type Plot struct {
	Width, Height float64
	MaxLatency    time.Duration
	Step          float64
	Gridlines     []Gridline
	Points        []Point
}

// Empty reports whether there is nothing to draw
func (p Plot) Empty() bool {
	return len(p.Points) == 0
}

// Layout maps samples onto a width x height area. Failed samples keep
// their slot on the x axis but produce no point. samples is not modified.
func Layout(samples []models.Sample, width, height float64) Plot {
	plot := Plot{Width: width, Height: height}
	if len(samples) == 0 {
		return plot
	}

	var maxLatency time.Duration
	valid := 0
	for _, s := range samples {
		if !s.OK {
			continue
		}
		valid++
		if s.Latency > maxLatency {
			maxLatency = s.Latency
		}
	}
	if valid == 0 {
		return plot
	}
	plot.MaxLatency = max(maxLatency, MinScale)

	if len(samples) > 1 {
		plot.Step = width / float64(len(samples)-1)
	}

	plot.Gridlines = make([]Gridline, 0, GridSteps+1)
	for i := 0; i <= GridSteps; i++ {
		value := plot.MaxLatency * time.Duration(i) / GridSteps
		plot.Gridlines = append(plot.Gridlines, Gridline{
			Y:     plot.y(value),
			Value: value,
			Label: fmt.Sprintf("%dms", value.Milliseconds()),
		})
	}

	plot.Points = make([]Point, 0, valid)
	for i, s := range samples {
		if !s.OK {
			continue
		}
		plot.Points = append(plot.Points, Point{
			X:       float64(i) * plot.Step,
			Y:       plot.y(s.Latency),
			Index:   i,
			Latency: s.Latency,
		})
	}

	return plot
}

func (p Plot) y(latency time.Duration) float64 {
	return p.Height * (1 - float64(latency)/float64(p.MaxLatency))
}

// Area returns the closed polygon under the line, or nil when fewer than
// two points exist
func (p Plot) Area() []Vec {
	if len(p.Points) < 2 {
		return nil
	}
	poly := make([]Vec, 0, len(p.Points)+2)
	for _, pt := range p.Points {
		poly = append(poly, Vec{pt.X, pt.Y})
	}
	first, last := p.Points[0], p.Points[len(p.Points)-1]
	return append(poly, Vec{last.X, p.Height}, Vec{first.X, p.Height})
}
