package chart

import (
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"

	"pingclock/internal/models"
)

// Output formats
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Options sizes a rendered canvas
type Options struct {
	Width   int
	Height  int
	Padding gochart.Box
	Format  string
	Style   Style
}

// DefaultOptions matches the live view: labels in the left padding
func DefaultOptions() Options {
	return Options{
		Width:  800,
		Height: 240,
		Padding: gochart.Box{
			Top:    16,
			Left:   40,
			Right:  16,
			Bottom: 24,
		},
		Format: FormatPNG,
		Style:  DefaultStyle(),
	}
}

// Render draws samples onto a fresh canvas and writes it to w
func Render(w io.Writer, samples []models.Sample, opts Options) error {
	var provider gochart.RendererProvider
	switch opts.Format {
	case FormatPNG, "":
		provider = gochart.PNG
	case FormatSVG:
		provider = gochart.SVG
	default:
		return fmt.Errorf("unsupported chart format %q", opts.Format)
	}

	plotW := opts.Width - opts.Padding.Left - opts.Padding.Right
	plotH := opts.Height - opts.Padding.Top - opts.Padding.Bottom
	if plotW <= 0 || plotH <= 0 {
		return fmt.Errorf("canvas %dx%d too small for its padding", opts.Width, opts.Height)
	}

	r, err := provider(opts.Width, opts.Height)
	if err != nil {
		return fmt.Errorf("chart renderer init failed: %w", err)
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("chart font load failed: %w", err)
	}
	r.SetDPI(gochart.DefaultDPI)
	r.SetFont(font)

	r.SetFillColor(opts.Style.Background)
	r.MoveTo(0, 0)
	r.LineTo(opts.Width, 0)
	r.LineTo(opts.Width, opts.Height)
	r.LineTo(0, opts.Height)
	r.Close()
	r.Fill()

	plot := Layout(samples, float64(plotW), float64(plotH))
	Draw(r, plot, opts.Padding.Left, opts.Padding.Top, opts.Style)

	return r.Save(w)
}
