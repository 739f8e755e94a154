// Package figure builds the chart description for one probe value: the bar
// trace with per-bar fill colors and error bars, the dashed reference line,
// the probe annotation and the stepped color legend.
package figure

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"

	"github.com/rewired-gh/probebar/internal/engine"
	"github.com/rewired-gh/probebar/internal/models"
	"github.com/rewired-gh/probebar/internal/palette"
)

// Options controls layout; zero values fall back to the defaults below.
type Options struct {
	Title       string
	Width       int
	Height      int
	YTicks      int
	LegendTicks int
	ErrorWidth  float64
	Probe       models.ProbeRange
}

const (
	defaultWidth       = 690
	defaultHeight      = 630
	defaultYTicks      = 9
	defaultLegendTicks = 12
	defaultErrorWidth  = 8.4

	// annotationX places the probe label left of the first bar.
	annotationX = -1.1
	xPadLeft    = 1.25
	xPadRight   = 0.65
)

var revisionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/rewired-gh/probebar/figure"))

// WithDefaults fills zero fields with the standard chart geometry.
func (o Options) WithDefaults() Options {
	if o.Width <= 0 {
		o.Width = defaultWidth
	}
	if o.Height <= 0 {
		o.Height = defaultHeight
	}
	if o.YTicks < 2 {
		o.YTicks = defaultYTicks
	}
	if o.LegendTicks < 2 {
		o.LegendTicks = defaultLegendTicks
	}
	if o.ErrorWidth <= 0 {
		o.ErrorWidth = defaultErrorWidth
	}
	return o
}

// FormatProbe renders a probe value the way the annotation shows it: no
// trailing zeros, no exponent.
func FormatProbe(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Revision derives a stable ID from the probe and the category statistics.
// Equal inputs always give equal IDs, so it doubles as an ETag.
func Revision(probe float64, categories []models.Category) string {
	h := sha1.New()
	var buf [8]byte
	write := func(f float64) {
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	}
	write(probe)
	for _, c := range categories {
		h.Write([]byte(c.Label))
		write(c.Mean)
		write(c.Margin)
	}
	return uuid.NewSHA1(revisionNamespace, h.Sum(nil)).String()
}

// Build clamps probe into the configured range and describes the chart for it.
func Build(opts Options, categories []models.Category, eng *engine.Engine, probe float64) *Figure {
	opts = opts.WithDefaults()
	probe = opts.Probe.Clamp(probe)

	n := len(categories)
	xs := make([]int, n)
	labels := make([]string, n)
	means := make([]float64, n)
	margins := make([]float64, n)
	tickVals := make([]float64, n)
	for i, c := range categories {
		xs[i] = i
		tickVals[i] = float64(i)
		labels[i] = c.Label
		means[i] = c.Mean
		margins[i] = c.Margin
	}

	bars := BarTrace{
		Type:   "bar",
		X:      xs,
		Y:      means,
		Marker: BarMarker{Color: palette.Strings(eng.FillColors(probe, categories))},
		ErrorY: ErrorBars{
			Type:    "data",
			Array:   margins,
			Color:   "lightgrey",
			Width:   opts.ErrorWidth,
			Visible: true,
		},
		// x stays numeric so the axis range can extend left of the first bar
		// for the annotation; labels reach the hover text through customdata.
		CustomData:    labels,
		HoverTemplate: "category: %{customdata}<br>mean: %{y}<extra></extra>",
		ShowLegend:    false,
	}

	id := Revision(probe, categories)

	return &Figure{
		ID:    id,
		Probe: probe,
		Data:  []any{bars, legendTrace(eng.Scale(), opts.LegendTicks)},
		Layout: Layout{
			Title: Title{
				Text:    opts.Title,
				X:       0.56,
				Y:       0.95,
				XAnchor: "center",
				Font:    Font{Size: 25, Color: "black", Family: "Arial"},
			},
			Width:       opts.Width,
			Height:      opts.Height,
			AutoSize:    false,
			BarGap:      0,
			PlotBgColor: "white",
			XAxis: Axis{
				TickMode:   "array",
				TickVals:   tickVals,
				TickText:   labels,
				AutoMargin: true,
				ShowLine:   true,
				LineColor:  "black",
				Range:      []float64{-xPadLeft, float64(n-1) + xPadRight},
			},
			YAxis: Axis{
				TickMode:   "array",
				TickVals:   opts.Probe.Ticks(opts.YTicks),
				TickFormat: ".1f",
				Ticks:      "outside",
				AutoMargin: true,
				ShowLine:   true,
				LineColor:  "black",
				Position:   0.12,
			},
			Shapes:       []Shape{referenceLine(probe)},
			Annotations:  []Annotation{probeAnnotation(probe)},
			DataRevision: id,
			UIRevision:   "probebar",
		},
	}
}

func referenceLine(probe float64) Shape {
	return Shape{
		Type: "line",
		XRef: "paper",
		YRef: "y",
		X0:   0,
		X1:   1,
		Y0:   probe,
		Y1:   probe,
		Line: ShapeLine{Color: "grey", Width: 0.8, Dash: "dash"},
	}
}

func probeAnnotation(probe float64) Annotation {
	return Annotation{
		Text:       FormatProbe(probe),
		X:          annotationX,
		Y:          probe,
		XRef:       "x",
		YRef:       "y",
		ShowArrow:  true,
		ArrowColor: "grey",
		AX:         -45,
		AY:         0,
		BorderPad:  5,
		Height:     10,
		HoverText:  "y-axis value of interest",
		BgColor:    "black",
		Opacity:    0.31,
		Align:      "right",
		Font:       Font{Size: 12, Color: "beige", Family: "verdana, sans-serif"},
	}
}

func legendTrace(scale *engine.ColorScale, ticks int) LegendTrace {
	vals := palette.Linspace(0, 1, ticks)
	text := make([]string, len(vals))
	for i, v := range vals {
		text[i] = fmt.Sprintf("%.2f", v)
	}

	return LegendTrace{
		Type:       "scatter",
		X:          []any{nil},
		Y:          []any{nil},
		Mode:       "markers",
		ShowLegend: false,
		HoverInfo:  "skip",
		Marker: LegendMarker{
			ColorScale: scale.SteppedScale(ticks),
			CMin:       0,
			CMax:       1,
			ShowScale:  true,
			ColorBar: ColorBar{
				Orientation: "h",
				Thickness:   15,
				X:           0.65,
				Y:           -0.05,
				XAnchor:     "center",
				YAnchor:     "top",
				Len:         0.7,
				TickFormat:  ".2f",
				TickVals:    vals,
				TickText:    text,
				Ticks:       "outside",
				TickLen:     2,
				TickFont:    Font{Size: 10},
			},
		},
	}
}
