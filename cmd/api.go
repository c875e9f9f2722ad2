package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/terrarisk/hazard-cli/internal/hazard"
	"github.com/terrarisk/hazard-cli/internal/inventory"
	"github.com/terrarisk/hazard-cli/internal/provider"
	"github.com/terrarisk/hazard-cli/internal/reader"
	"github.com/terrarisk/hazard-cli/internal/scenario"
	"github.com/terrarisk/hazard-cli/internal/sourcepath"
)

// apiServer serves hazard lookups over HTTP.
type apiServer struct {
	store         reader.DatasetStore
	inv           *inventory.Inventory
	defaultInterp string
}

// newRouter wires the API routes.
func newRouter(s *apiServer) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/paths", s.handlePaths)
		r.Post("/curves", s.handleCurves)
		r.Post("/parameters", s.handleParameters)
	})

	return r
}

type lookupRequest struct {
	Hazard        string    `json:"hazard"`
	Model         string    `json:"model"`
	Scenario      string    `json:"scenario"`
	Year          int       `json:"year"`
	Longitudes    []float64 `json:"longitudes"`
	Latitudes     []float64 `json:"latitudes"`
	Interpolation string    `json:"interpolation,omitempty"`
}

func (s *apiServer) handlePaths(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t, err := hazard.Lookup(q.Get("hazard"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	year := 2050
	if y := q.Get("year"); y != "" {
		parsed, convErr := strconv.Atoi(y)
		if convErr != nil {
			writeError(w, http.StatusBadRequest, eris.Errorf("bad year %q", y))
			return
		}
		year = parsed
	}

	resolve := sourcepath.Generic(s.inv, t, sourcepath.EmbeddedDefaults())
	path, err := resolve(q.Get("model"), q.Get("scenario"), year)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

func (s *apiServer) handleCurves(w http.ResponseWriter, r *http.Request) {
	req, t, pcfg, ok := s.parseLookup(w, r)
	if !ok {
		return
	}
	if t.Kind() != hazard.Acute {
		writeError(w, http.StatusBadRequest, eris.Errorf("hazard %s is chronic; use /api/v1/parameters", t))
		return
	}
	p, err := provider.NewAcute(pcfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	curves, rps, err := p.IntensityCurves(r.Context(), req.Longitudes, req.Latitudes, req.Model, req.Scenario, req.Year)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"return_periods": rps,
		"curves":         curves,
	})
}

func (s *apiServer) handleParameters(w http.ResponseWriter, r *http.Request) {
	req, t, pcfg, ok := s.parseLookup(w, r)
	if !ok {
		return
	}
	if t.Kind() != hazard.Chronic {
		writeError(w, http.StatusBadRequest, eris.Errorf("hazard %s is acute; use /api/v1/curves", t))
		return
	}
	p, err := provider.NewChronic(pcfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	params, err := p.Parameters(r.Context(), req.Longitudes, req.Latitudes, req.Model, req.Scenario, req.Year)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"parameters": params})
}

// parseLookup decodes and validates the shared lookup request shape.
func (s *apiServer) parseLookup(w http.ResponseWriter, r *http.Request) (lookupRequest, hazard.Type, provider.Config, bool) {
	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, eris.New("invalid request body"))
		return req, "", provider.Config{}, false
	}
	t, err := hazard.Lookup(req.Hazard)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return req, "", provider.Config{}, false
	}
	if len(req.Longitudes) == 0 || len(req.Longitudes) != len(req.Latitudes) {
		writeError(w, http.StatusBadRequest, eris.New("longitudes and latitudes must be non-empty and equal length"))
		return req, "", provider.Config{}, false
	}

	interp := req.Interpolation
	if interp == "" {
		interp = s.defaultInterp
	}
	pcfg := provider.Config{
		SourcePath:    sourcepath.Generic(s.inv, t, sourcepath.EmbeddedDefaults()),
		Reader:        reader.NewGridReader(s.store),
		Interpolation: reader.Interpolation(interp),
	}
	return req, t, pcfg, true
}

// statusFor maps lookup errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case eris.Is(err, sourcepath.ErrNoData):
		return http.StatusNotFound
	case eris.Is(err, sourcepath.ErrInvalidModel),
		eris.Is(err, scenario.ErrUnknownScenario),
		eris.Is(err, provider.ErrInvalidConfiguration):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
