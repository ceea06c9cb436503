package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/adapter"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/catalog"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/generator"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/logger"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/metrics"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/models"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/simulate"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/telemetry"
)

// SiteInfo describes one supported export format.
type SiteInfo struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// SitesResponse lists the supported case exports and catalog files.
type SitesResponse struct {
	Sites    []SiteInfo `json:"sites"`
	Catalogs []string   `json:"catalogs"`
}

// CaseResponse pairs a normalized case with its derived metrics.
type CaseResponse struct {
	Case    models.Case     `json:"case"`
	Summary metrics.Summary `json:"summary"`
}

// SimulateResponse carries the simulation parameters and their outcome.
type SimulateResponse struct {
	Site   string          `json:"site"`
	Params simulate.Params `json:"params"`
	Stats  simulate.Stats  `json:"stats"`
}

func (s *Server) HandleSites(w http.ResponseWriter, r *http.Request) {
	resp := SitesResponse{Catalogs: s.catalogs.Files()}
	for _, key := range s.registry.Keys() {
		a, _ := s.registry.Get(key)
		resp.Sites = append(resp.Sites, SiteInfo{Key: key, Name: a.DisplayName()})
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleCase normalizes a raw site export posted as the request body.
func (s *Server) HandleCase(w http.ResponseWriter, r *http.Request) {
	c, ok := s.normalize(w, r)
	if !ok {
		return
	}
	sum, err := metrics.Summarize(c, s.settings.Thresholds)
	if err != nil {
		s.respondCoreError(w, r, err)
		return
	}
	telemetry.FilesProcessed.WithLabelValues(c.Site).Inc()
	respondJSON(w, http.StatusOK, CaseResponse{Case: c, Summary: sum})
}

// HandleSimulate runs the configured opening simulation against a posted export.
// Query parameters trials, openings, goal and hit_ratio override the defaults.
func (s *Server) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	p, err := simulationParams(s.settings.Simulation, r.URL.Query())
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrMsgValidation, Fields: map[string]string{"query": err.Error()}})
		return
	}
	c, ok := s.normalize(w, r)
	if !ok {
		return
	}
	stats, err := simulate.RunContext(r.Context(), c, p, s.settings.NewSource())
	if errors.Is(err, context.Canceled) {
		logger.FromContext(r.Context()).Debug("Simulation abandoned by client")
		return
	}
	if err != nil {
		s.respondCoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, SimulateResponse{Site: c.Site, Params: p, Stats: stats})
}

// HandleCatalog summarizes a posted site catalog listing.
func (s *Server) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	stats, err := s.catalogs.Process(chi.URLParam(r, "file"), body)
	if err != nil {
		if errors.Is(err, adapter.ErrUnknownSite) {
			respondError(w, http.StatusNotFound, ErrMsgUnknownCatalog)
			return
		}
		if errors.Is(err, catalog.ErrNoCases) {
			respondError(w, http.StatusUnprocessableEntity, ErrMsgEmpty)
			return
		}
		s.respondCoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// HandleGenerate validates the input and returns a generated comparison or
// tiered table. Identical requests are answered from the LRU cache.
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug("Failed to decode generate request", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}
	if err := s.validate.ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrMsgValidation, Fields: FormatValidationError(err)})
		return
	}
	req = req.withDefaults(s.settings.Source, s.settings.Seed)

	key := req.cacheKey()
	if resp, ok := s.cache.Get(key); ok {
		telemetry.GenerationCacheHits.Inc()
		respondJSON(w, http.StatusOK, resp)
		return
	}

	resp, err := s.generate(req)
	if err != nil {
		s.respondCoreError(w, r, err)
		return
	}
	s.cache.Add(key, resp)
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) generate(req GenerateRequest) (GenerateResponse, error) {
	in := req.input()
	src := generator.NewSource(req.Source, *req.Seed)

	if len(req.Tiered) > 0 {
		var props generator.TierProportions
		copy(props[:], req.Tiered)
		res, err := generator.GenerateTiered(in, props, s.settings.Compare.Improved, src)
		if err != nil {
			return GenerateResponse{}, err
		}
		run, err := generator.Describe(res, in.CasePrice, s.settings.Compare.ImprovedThresholds)
		if err != nil {
			return GenerateResponse{}, err
		}
		telemetry.Generations.WithLabelValues(telemetry.ModeTiered).Inc()
		return GenerateResponse{Tiered: &run}, nil
	}

	cmp, err := generator.Compare(in, src, s.settings.Compare)
	if err != nil {
		return GenerateResponse{}, err
	}
	telemetry.Generations.WithLabelValues(telemetry.ModeCompare).Inc()
	return GenerateResponse{Comparison: &cmp}, nil
}

func (s *Server) normalize(w http.ResponseWriter, r *http.Request) (models.Case, bool) {
	body, ok := readBody(w, r)
	if !ok {
		return models.Case{}, false
	}
	c, err := s.registry.NormalizeBytes(chi.URLParam(r, "site"), body)
	if err != nil {
		s.respondCoreError(w, r, err)
		return models.Case{}, false
	}
	return c, true
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return nil, false
	}
	return body, true
}

// respondCoreError maps the core's typed errors to status codes.
func (s *Server) respondCoreError(w http.ResponseWriter, r *http.Request, err error) {
	var dataErr *adapter.MalformedDataError
	var rangeErr *generator.InvalidRangeError
	switch {
	case errors.Is(err, adapter.ErrUnknownSite):
		respondError(w, http.StatusNotFound, ErrMsgUnknownSite)
	case errors.As(err, &dataErr):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrMsgMalformed, Field: dataErr.Field})
	case errors.Is(err, models.ErrEmptyItemSet):
		respondError(w, http.StatusUnprocessableEntity, ErrMsgEmpty)
	case errors.As(err, &rangeErr):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrMsgInvalidRange, Field: rangeErr.Field})
	default:
		logger.FromContext(r.Context()).Error("Request failed", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgInternal)
	}
}
