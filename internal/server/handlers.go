package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/rewired-gh/probebar/internal/engine"
	"github.com/rewired-gh/probebar/internal/figure"
	"github.com/rewired-gh/probebar/internal/logger"
	"github.com/rewired-gh/probebar/internal/render"
)

var errBadProbe = errors.New("value must be a finite number")

// probeValue reads ?value=, falling back to the configured initial value, and
// clamps it onto the slider grid.
func (s *Server) probeValue(r *http.Request) (float64, error) {
	raw := r.URL.Query().Get("value")
	if raw == "" {
		return s.opts.Probe.Initial, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errBadProbe
	}
	return s.opts.Probe.Clamp(v), nil
}

// handleIndex renders the chart page with the initial figure inlined.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	fig := figure.Build(s.opts.Figure, s.store.All(), s.engine, s.opts.Probe.Initial)

	data := pageData{
		Title:        s.pageTitle(),
		Width:        fig.Layout.Width,
		SliderHeight: fig.Layout.Height * 7 / 10,
		Probe:        s.opts.Probe,
		Marks:        formatMarks(s.opts.Probe.Ticks(s.opts.Marks)),
		Figure:       fig,
	}

	var buf bytes.Buffer
	if err := renderPage(s.templates, &buf, data); err != nil {
		logger.Error("Failed to render page: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// handleFigure returns the chart description for ?value=.
func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	probe, err := s.probeValue(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fig := figure.Build(s.opts.Figure, s.store.All(), s.engine, probe)

	etag := `"` + fig.ID + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	jsonOK(w, fig)
}

// colorsResponse is the JSON body of /api/colors.
type colorsResponse struct {
	Value  float64             `json:"value"`
	Colors []engine.Assignment `json:"colors"`
}

// handleColors returns the per-category engine output for ?value=.
func (s *Server) handleColors(w http.ResponseWriter, r *http.Request) {
	probe, err := s.probeValue(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	jsonOK(w, colorsResponse{
		Value:  probe,
		Colors: s.engine.Assign(probe, s.store.All()),
	})
}

// handleCategories returns the precomputed category statistics.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, map[string]any{
		"categories": s.store.All(),
		"scale":      s.engine.Scale().Stops(),
	})
}

// handleChartPNG renders the chart for ?value= as a PNG.
func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	probe, err := s.probeValue(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	cats := s.store.All()
	opts := render.Options{
		Title:  s.opts.Figure.Title,
		Width:  s.opts.Figure.Width,
		Height: s.opts.Figure.Height,
		YTicks: s.opts.Figure.YTicks,
		Probe:  s.opts.Probe,
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, cats, s.engine.FillColors(probe, cats), probe, opts); err != nil {
		logger.Error("Failed to render chart for %v: %v", probe, err)
		jsonError(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("ETag", `"`+figure.Revision(probe, cats)+`"`)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, map[string]any{"status": "ok", "categories": s.store.Len()})
}

func jsonOK(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("Failed to encode response: %v", err)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// statusRecorder captures the status code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogger tags each request with an ID and logs it once it completes.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		logger.Debug("%s %s %d %v request_id=%s", r.Method, r.URL.RequestURI(), rec.status, time.Since(start), id)
		if rec.status >= http.StatusInternalServerError {
			logger.Warn("%s %s failed with %d (request_id=%s)", r.Method, r.URL.Path, rec.status, id)
		}
	})
}

