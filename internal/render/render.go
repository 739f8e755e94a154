// Package render draws the chart as a PNG with gonum/plot, for clients that
// cannot run the interactive page.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rewired-gh/probebar/internal/figure"
	"github.com/rewired-gh/probebar/internal/models"
	"github.com/rewired-gh/probebar/internal/palette"
)

// Options controls the rendered image.
type Options struct {
	Title  string
	Width  int // pixels
	Height int // pixels
	YTicks int
	Probe  models.ProbeRange
}

const (
	// dpi is the resolution vgimg renders PNGs at.
	dpi = 96

	defaultWidth  = 690
	defaultHeight = 630
	defaultYTicks = 9
)

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = defaultWidth
	}
	if o.Height <= 0 {
		o.Height = defaultHeight
	}
	if o.YTicks < 2 {
		o.YTicks = defaultYTicks
	}
	return o
}

var (
	errorBarColor = color.RGBA{R: 211, G: 211, B: 211, A: 255} // lightgrey
	referenceGrey = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// intervals adapts categories to plotter.XYer and plotter.YErrorer.
type intervals []models.Category

func (iv intervals) Len() int { return len(iv) }

func (iv intervals) XY(i int) (float64, float64) { return float64(i), iv[i].Mean }

func (iv intervals) YError(i int) (float64, float64) { return iv[i].Margin, iv[i].Margin }

// PNG writes the chart for probe. colors holds one fill per category, as
// produced by the engine for the same probe.
func PNG(w io.Writer, categories []models.Category, colors []palette.RGB, probe float64, opts Options) error {
	opts = opts.withDefaults()
	p, err := Plot(categories, colors, probe, opts)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(pixels(opts.Width), pixels(opts.Height), "png")
	if err != nil {
		return fmt.Errorf("failed to create png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write png: %w", err)
	}
	return nil
}

// Plot assembles the gonum plot without encoding it.
func Plot(categories []models.Category, colors []palette.RGB, probe float64, opts Options) (*plot.Plot, error) {
	if len(categories) == 0 {
		return nil, errors.New("no categories to render")
	}
	if len(colors) != len(categories) {
		return nil, fmt.Errorf("got %d colors for %d categories", len(colors), len(categories))
	}
	opts = opts.withDefaults()

	p := plot.New()
	p.Title.Text = strings.ReplaceAll(opts.Title, "<br>", "\n")
	p.BackgroundColor = color.White

	n := len(categories)
	p.X.Min = -1.25
	p.X.Max = float64(n-1) + 0.65
	// Error bars above the probe range stay visible.
	p.Y.Min = opts.Probe.Min
	p.Y.Max = opts.Probe.Max
	for _, c := range categories {
		p.Y.Max = math.Max(p.Y.Max, c.Upper())
	}

	xTicks := make([]plot.Tick, n)
	for i, c := range categories {
		xTicks[i] = plot.Tick{Value: float64(i), Label: c.Label}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)

	var ticks []plot.Tick
	for _, v := range opts.Probe.Ticks(opts.YTicks) {
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf("%.1f", v)})
	}
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)

	// Bars touch each other, so each spans a full unit around its x.
	for i, c := range categories {
		bar, err := plotter.NewPolygon(plotter.XYs{
			{X: float64(i) - 0.5, Y: 0},
			{X: float64(i) + 0.5, Y: 0},
			{X: float64(i) + 0.5, Y: c.Mean},
			{X: float64(i) - 0.5, Y: c.Mean},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create bar %s: %w", c.Label, err)
		}
		bar.Color = colors[i].Color()
		bar.LineStyle.Width = 0
		p.Add(bar)
	}

	errBars, err := plotter.NewYErrorBars(intervals(categories))
	if err != nil {
		return nil, fmt.Errorf("failed to create error bars: %w", err)
	}
	errBars.LineStyle.Color = errorBarColor
	errBars.LineStyle.Width = vg.Points(1.5)
	errBars.CapWidth = vg.Points(8.4)
	p.Add(errBars)

	ref, err := plotter.NewLine(plotter.XYs{
		{X: p.X.Min, Y: probe},
		{X: p.X.Max, Y: probe},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create reference line: %w", err)
	}
	ref.LineStyle.Color = referenceGrey
	ref.LineStyle.Width = vg.Points(0.8)
	ref.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(ref)

	label, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: -1.1, Y: probe}},
		Labels: []string{figure.FormatProbe(probe)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create probe label: %w", err)
	}
	p.Add(label)

	return p, nil
}

func pixels(px int) vg.Length {
	return vg.Length(px) * vg.Inch / dpi
}
