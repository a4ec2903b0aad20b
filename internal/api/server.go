// Package api serves generated heightmaps and terrain maps over HTTP so a
// frontend can preview parameter changes without shelling out to the CLI.
// All endpoints are GET and read-only.
package api

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/talgya/mapforge/internal/heightmap"
	"github.com/talgya/mapforge/internal/persistence"
	"github.com/talgya/mapforge/internal/render"
	"github.com/talgya/mapforge/internal/terrain"
)

// maxDimension caps requested raster sizes; generation is O(w*h*octaves) and
// an unbounded request would pin a core for minutes.
const maxDimension = 4096

// Server serves map previews over HTTP.
type Server struct {
	Port    int
	Presets *persistence.DB // Optional; preset endpoints 404 without it
}

// Handler returns the route table, split out from Start so tests can drive
// the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/heightmap", s.handleHeightmap)
	mux.HandleFunc("/api/v1/terrain", s.handleTerrain)
	mux.HandleFunc("/api/v1/presets", s.handlePresets)
	return mux
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "presets", s.Presets != nil)

	go func() {
		if err := http.ListenAndServe(addr, s.Handler()); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleHeightmap generates a greyscale heightmap from query parameters.
// Unspecified parameters take the reference defaults.
func (s *Server) handleHeightmap(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	cfg, width, height, err := paramsFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	gen, err := heightmap.NewGenerator(cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	field, err := gen.Generate(width, height)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, field.Gray()); err != nil {
		slog.Error("heightmap encode failed", "error", err)
		return
	}
	slog.Info("heightmap served", "size", fmt.Sprintf("%dx%d", width, height), "elapsed", time.Since(start))
}

// handleTerrain generates and classifies in one request. The palette comes
// from a named preset when ?preset= is given, otherwise the default bands.
func (s *Server) handleTerrain(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()

	cfg, width, height, err := paramsFromQuery(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	palette := terrain.DefaultPalette()
	if name := q.Get("preset"); name != "" {
		if s.Presets == nil {
			http.Error(w, "preset store not configured", http.StatusNotFound)
			return
		}
		presetCfg, presetPalette, err := s.Presets.LoadPreset(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		cfg = presetCfg
		palette = presetPalette
	}

	gen, err := heightmap.NewGenerator(cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	field, err := gen.Generate(width, height)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	img, err := terrain.Classify(field, palette)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var out image.Image = img
	if side := q.Get("preview"); side != "" {
		n, err := strconv.Atoi(side)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid preview: %q", side), http.StatusBadRequest)
			return
		}
		out = render.Preview(img, n)
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, out); err != nil {
		slog.Error("terrain encode failed", "error", err)
		return
	}
	slog.Info("terrain served", "size", fmt.Sprintf("%dx%d", width, height), "elapsed", time.Since(start))
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	if s.Presets == nil {
		http.Error(w, "preset store not configured", http.StatusNotFound)
		return
	}
	presets, err := s.Presets.ListPresets()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	type entry struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		CreatedAt string `json:"created_at"`
	}
	out := make([]entry, 0, len(presets))
	for _, p := range presets {
		out = append(out, entry{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt})
	}
	writeJSON(w, out)
}

// paramsFromQuery maps query parameters onto a noise config plus dimensions,
// starting from the reference defaults.
func paramsFromQuery(q url.Values) (heightmap.Config, int, int, error) {
	cfg := heightmap.DefaultConfig()

	var err error
	if cfg.Seed, err = int64Param(q, "seed", cfg.Seed); err != nil {
		return cfg, 0, 0, err
	}
	if p := q.Get("primitive"); p != "" {
		cfg.Primitive = p
	}
	if cfg.BaseFreq, err = floatParam(q, "base_frequency", cfg.BaseFreq); err != nil {
		return cfg, 0, 0, err
	}
	if cfg.Octaves, err = intParam(q, "octaves", cfg.Octaves); err != nil {
		return cfg, 0, 0, err
	}
	if cfg.Lacunarity, err = floatParam(q, "lacunarity", cfg.Lacunarity); err != nil {
		return cfg, 0, 0, err
	}
	if cfg.Gain, err = floatParam(q, "gain", cfg.Gain); err != nil {
		return cfg, 0, 0, err
	}
	if cfg.WarpAmp, err = floatParam(q, "warp_amplitude", cfg.WarpAmp); err != nil {
		return cfg, 0, 0, err
	}
	if cfg.WarpFreq, err = floatParam(q, "warp_frequency", cfg.WarpFreq); err != nil {
		return cfg, 0, 0, err
	}

	width, err := intParam(q, "width", 512)
	if err != nil {
		return cfg, 0, 0, err
	}
	height, err := intParam(q, "height", 512)
	if err != nil {
		return cfg, 0, 0, err
	}
	if width > maxDimension || height > maxDimension {
		return cfg, 0, 0, fmt.Errorf("dimensions capped at %d per side, got %dx%d", maxDimension, width, height)
	}

	return cfg, width, height, nil
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

func int64Param(q url.Values, name string, def int64) (int64, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("JSON encode failed", "error", err)
	}
}
