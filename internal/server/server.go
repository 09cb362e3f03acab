// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the catalog to a browsing frontend over HTTP.
// The catalog is held as an immutable snapshot behind an atomic pointer;
// reload builds a fresh catalog and swaps the pointer, so query handlers
// never observe a partially loaded state.
// See docs/ARCHITECTURE.md § Browse API.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/paper-compass/internal/catalog"
	"github.com/pdiddy/paper-compass/pkg/types"
)

// Server holds the catalog snapshot and the data directory it reloads from.
type Server struct {
	dataDir  string
	log      *slog.Logger
	snapshot atomic.Pointer[snapshot]
}

type snapshot struct {
	catalog *catalog.Catalog
	report  catalog.LoadReport
}

// New builds a Server and performs the initial catalog load. Load warnings
// go to the logger; only an unreadable data directory is fatal.
func New(cfg types.CatalogConfig, log *slog.Logger) (*Server, error) {
	s := &Server{dataDir: cfg.DataDir, log: log}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rebuilds the catalog from disk and swaps the snapshot atomically.
func (s *Server) Reload() error {
	c, report, err := catalog.Load(s.dataDir, io.Discard)
	if err != nil {
		return err
	}
	for _, vr := range report {
		if vr.Err != nil {
			s.log.Warn("venue not loaded", "venue", vr.Venue, "err", vr.Err)
		}
	}
	s.snapshot.Store(&snapshot{catalog: c, report: report})
	s.log.Info("catalog loaded",
		"venues", len(c.LoadedVenues()),
		"papers", c.Len(),
		"skipped", report.TotalSkipped())
	return nil
}

// Router returns the HTTP handler for the browse API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/venues", s.handleVenues)
	r.Get("/api/papers", s.handlePapers)
	r.Get("/api/keyfields/{venue}", s.handleKeyFields)
	r.Post("/api/reload", s.handleReload)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// venueInfo is one row of the /api/venues response.
type venueInfo struct {
	Venue   string `json:"venue"`
	Papers  int    `json:"papers"`
	Skipped int    `json:"skipped"`
	Years   []int  `json:"years,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleVenues(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot.Load()

	infos := make([]venueInfo, 0, len(snap.report))
	for _, vr := range snap.report {
		info := venueInfo{
			Venue:   vr.Venue,
			Papers:  vr.Loaded,
			Skipped: vr.Skipped,
			Years:   snap.catalog.Years(vr.Venue),
		}
		if vr.Err != nil {
			info.Error = vr.Err.Error()
		}
		infos = append(infos, info)
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handlePapers(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r)
	if err != nil {
		httpError(w, http.StatusBadRequest, "%v", err)
		return
	}

	snap := s.snapshot.Load()
	papers, err := snap.catalog.Filter(q)
	if err != nil {
		httpError(w, http.StatusBadRequest, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, papers)
}

func (s *Server) handleKeyFields(w http.ResponseWriter, r *http.Request) {
	venue := chi.URLParam(r, "venue")

	snap := s.snapshot.Load()
	summary, err := snap.catalog.KeyFieldSummary(venue)
	if err != nil {
		httpError(w, http.StatusNotFound, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(); err != nil {
		httpError(w, http.StatusInternalServerError, "reload failed: %v", err)
		return
	}
	snap := s.snapshot.Load()
	writeJSON(w, http.StatusOK, map[string]int{
		"venues": len(snap.catalog.LoadedVenues()),
		"papers": snap.catalog.Len(),
	})
}

// queryFromRequest maps URL parameters onto a filter query. Year parsing
// failures are reported as validation errors rather than ignored.
func queryFromRequest(r *http.Request) (catalog.Query, error) {
	params := r.URL.Query()
	q := catalog.Query{
		Venues:  params["venue"],
		Keyword: params.Get("q"),
		Mode:    catalog.MatchMode(params.Get("mode")),
		Fields:  params["field"],
	}

	var err error
	if q.YearFrom, err = yearParam(params.Get("from")); err != nil {
		return q, err
	}
	if q.YearTo, err = yearParam(params.Get("to")); err != nil {
		return q, err
	}

	switch params.Get("include_rejected") {
	case "", "0", "false":
	default:
		q.IncludeRejected = true
	}

	for _, field := range []string{"track", "status", "primary_area", "award", "session"} {
		if values := params["kf_"+field]; len(values) > 0 {
			if q.KeyFields == nil {
				q.KeyFields = make(map[string][]string)
			}
			q.KeyFields[field] = values
		}
	}

	return q, nil
}

func yearParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return year, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": fmt.Sprintf(format, args...),
	})
}
