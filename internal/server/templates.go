package server

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/rewired-gh/probebar/internal/figure"
	"github.com/rewired-gh/probebar/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageData is the template data for the chart page.
type pageData struct {
	Title        string
	Width        int
	SliderHeight int
	Probe        models.ProbeRange
	Marks        []string
	Figure       *figure.Figure
}

var funcMap = template.FuncMap{
	"json": pageJSON,
}

// pageJSON encodes v for embedding in a script block. An encoding failure
// aborts template execution.
func pageJSON(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode page data: %w", err)
	}
	return template.JS(b), nil
}

func parseTemplates() *template.Template {
	return template.Must(template.New("pages").Funcs(funcMap).ParseFS(templateFS, "templates/*.html"))
}

func renderPage(t *template.Template, w io.Writer, data pageData) error {
	return t.ExecuteTemplate(w, "index.html", data)
}

func formatMarks(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return out
}
