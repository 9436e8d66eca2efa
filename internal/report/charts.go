package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	pingchart "pingclock/internal/chart"
	"pingclock/internal/history"
	"pingclock/internal/models"
)

// generateLiveChart renders the last window of samples the way the live
// view showed them
func generateLiveChart(outputDir string, sess models.Session, samples []models.Sample) error {
	if len(samples) > history.DefaultCapacity {
		samples = samples[len(samples)-history.DefaultCapacity:]
	}

	filename := filepath.Join(outputDir, fmt.Sprintf("live_%s.png", sanitizeFilename(sess.Host)))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := pingchart.Render(file, samples, pingchart.DefaultOptions()); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// generateLatencyChart plots every successful sample of the session over
// time, with the warn and bad thresholds as reference lines
func generateLatencyChart(outputDir string, sess models.Session, samples []models.Sample) error {
	var (
		timestamps []time.Time
		values     []float64
	)
	for _, s := range samples {
		if ms, ok := s.LatencyMs(); ok {
			timestamps = append(timestamps, s.CapturedAt)
			values = append(values, ms)
		}
	}
	if len(values) < 2 {
		return fmt.Errorf("%w: have %d", errNotEnoughData, len(values))
	}

	first, last := timestamps[0], timestamps[len(timestamps)-1]
	threshold := func(name string, d time.Duration, color drawing.Color) chart.TimeSeries {
		ms := models.Milliseconds(d)
		return chart.TimeSeries{
			Name: name,
			Style: chart.Style{
				StrokeColor:     color,
				StrokeWidth:     1,
				StrokeDashArray: []float64{5, 5},
			},
			XValues: []time.Time{first, last},
			YValues: []float64{ms, ms},
		}
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Latency - %s", sess.Host),
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Time",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeMinuteValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Latency (ms)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: sess.Host,
				Style: chart.Style{
					StrokeColor: pingchart.DefaultStyle().LineColor,
					StrokeWidth: 2,
				},
				XValues: timestamps,
				YValues: values,
			},
			threshold("warn", models.WarnThreshold, drawing.Color{R: 255, G: 152, B: 0, A: 255}),
			threshold("bad", models.BadThreshold, drawing.Color{R: 244, G: 67, B: 54, A: 255}),
		},
	}

	filename := filepath.Join(outputDir, fmt.Sprintf("latency_%s.png", sanitizeFilename(sess.Host)))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := graph.Render(chart.PNG, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
