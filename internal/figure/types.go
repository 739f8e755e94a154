package figure

import "github.com/rewired-gh/probebar/internal/models"

// Figure is a chart description in the shape Plotly's react() accepts.
type Figure struct {
	ID     string  `json:"id"`
	Probe  float64 `json:"probe"`
	Data   []any   `json:"data"`
	Layout Layout  `json:"layout"`
}

// BarTrace draws one bar per category with its error bar.
type BarTrace struct {
	Type          string    `json:"type"`
	X             []int     `json:"x"`
	Y             []float64 `json:"y"`
	Marker        BarMarker `json:"marker"`
	ErrorY        ErrorBars `json:"error_y"`
	CustomData    []string  `json:"customdata"`
	HoverTemplate string    `json:"hovertemplate"`
	ShowLegend    bool      `json:"showlegend"`
}

// BarMarker carries the per-bar fill colors.
type BarMarker struct {
	Color []string `json:"color"`
}

// ErrorBars are symmetric error bars with explicit half-widths.
type ErrorBars struct {
	Type    string    `json:"type"`
	Array   []float64 `json:"array"`
	Color   string    `json:"color"`
	Width   float64   `json:"width"`
	Visible bool      `json:"visible"`
}

// LegendTrace is an invisible scatter trace whose only purpose is to carry
// the color bar.
type LegendTrace struct {
	Type       string       `json:"type"`
	X          []any        `json:"x"`
	Y          []any        `json:"y"`
	Mode       string       `json:"mode"`
	ShowLegend bool         `json:"showlegend"`
	HoverInfo  string       `json:"hoverinfo"`
	Marker     LegendMarker `json:"marker"`
}

// LegendMarker maps the stepped scale onto [0, 1].
type LegendMarker struct {
	ColorScale []models.ColorStop `json:"colorscale"`
	CMin       float64            `json:"cmin"`
	CMax       float64            `json:"cmax"`
	ShowScale  bool               `json:"showscale"`
	ColorBar   ColorBar           `json:"colorbar"`
}

// ColorBar is a horizontal color legend below the plot.
type ColorBar struct {
	Orientation string    `json:"orientation"`
	Thickness   int       `json:"thickness"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	XAnchor     string    `json:"xanchor"`
	YAnchor     string    `json:"yanchor"`
	Len         float64   `json:"len"`
	TickFormat  string    `json:"tickformat"`
	TickVals    []float64 `json:"tickvals"`
	TickText    []string  `json:"ticktext"`
	Ticks       string    `json:"ticks"`
	TickLen     int       `json:"ticklen"`
	TickFont    Font      `json:"tickfont"`
}

// Layout is the subset of Plotly layout attributes the chart uses.
type Layout struct {
	Title        Title        `json:"title"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	AutoSize     bool         `json:"autosize"`
	BarGap       float64      `json:"bargap"`
	PlotBgColor  string       `json:"plot_bgcolor"`
	XAxis        Axis         `json:"xaxis"`
	YAxis        Axis         `json:"yaxis"`
	Shapes       []Shape      `json:"shapes"`
	Annotations  []Annotation `json:"annotations"`
	DataRevision string       `json:"datarevision"`
	UIRevision   string       `json:"uirevision"`
}

// Title is the chart title block.
type Title struct {
	Text    string  `json:"text"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	XAnchor string  `json:"xanchor"`
	Font    Font    `json:"font"`
}

// Font holds Plotly font settings.
type Font struct {
	Size   int    `json:"size,omitempty"`
	Color  string `json:"color,omitempty"`
	Family string `json:"family,omitempty"`
}

// Axis holds tick and range settings for one axis.
type Axis struct {
	TickMode   string    `json:"tickmode"`
	TickVals   []float64 `json:"tickvals"`
	TickText   []string  `json:"ticktext,omitempty"`
	TickFormat string    `json:"tickformat,omitempty"`
	Ticks      string    `json:"ticks,omitempty"`
	AutoMargin bool      `json:"automargin"`
	ShowLine   bool      `json:"showline"`
	LineColor  string    `json:"linecolor"`
	Range      []float64 `json:"range,omitempty"`
	Position   float64   `json:"position,omitempty"`
}

// Shape is a layout line; the reference line spans the full plot width.
type Shape struct {
	Type string    `json:"type"`
	XRef string    `json:"xref"`
	YRef string    `json:"yref"`
	X0   float64   `json:"x0"`
	X1   float64   `json:"x1"`
	Y0   float64   `json:"y0"`
	Y1   float64   `json:"y1"`
	Line ShapeLine `json:"line"`
}

// ShapeLine styles a Shape.
type ShapeLine struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
	Dash  string  `json:"dash"`
}

// Annotation is the probe value label next to the y axis.
type Annotation struct {
	Text       string  `json:"text"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	XRef       string  `json:"xref"`
	YRef       string  `json:"yref"`
	ShowArrow  bool    `json:"showarrow"`
	ArrowColor string  `json:"arrowcolor"`
	AX         float64 `json:"ax"`
	AY         float64 `json:"ay"`
	BorderPad  int     `json:"borderpad"`
	Height     int     `json:"height"`
	HoverText  string  `json:"hovertext"`
	BgColor    string  `json:"bgcolor"`
	Opacity    float64 `json:"opacity"`
	Align      string  `json:"align"`
	Font       Font    `json:"font"`
}
