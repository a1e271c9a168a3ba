package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/mkessel/trendmap/pkg/board"
	"github.com/mkessel/trendmap/pkg/buildinfo"
	"github.com/mkessel/trendmap/pkg/errors"
	"github.com/mkessel/trendmap/pkg/pipeline"
	"github.com/mkessel/trendmap/pkg/store"
)

// =============================================================================
// JSON Helpers
// =============================================================================

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

// statusFor maps application errors to HTTP status codes.
func statusFor(err error) int {
	if stderrors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeTrendNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPlatform, errors.ErrCodeInvalidCanvas,
		errors.ErrCodeInvalidTrend, errors.ErrCodeInvalidKeyword, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeMissingCreds, errors.ErrCodeUnauthorized:
		return http.StatusServiceUnavailable
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// =============================================================================
// Version
// =============================================================================

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"built":   buildinfo.Date,
	})
}

// =============================================================================
// Trends
// =============================================================================

func (s *Server) handleListTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := s.store.ListTrends(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if trends == nil {
		trends = []board.Trend{}
	}
	writeJSON(w, http.StatusOK, trends)
}

func (s *Server) handleSaveTrend(w http.ResponseWriter, r *http.Request) {
	var trend board.Trend
	if err := json.NewDecoder(r.Body).Decode(&trend); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body"))
		return
	}
	if err := validateTrend(&trend); err != nil {
		writeError(w, err)
		return
	}

	created := trend.ID == ""
	if err := s.store.SaveTrend(r.Context(), &trend); err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, trend)
}

func validateTrend(t *board.Trend) error {
	if err := errors.ValidateTrendName(t.Name); err != nil {
		return err
	}
	if err := errors.ValidateTrendSize(t.Size); err != nil {
		return err
	}
	if err := errors.ValidateCategory(t.Category); err != nil {
		return err
	}
	return errors.ValidateHexColor(t.Color)
}

func (s *Server) handleGetTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := s.store.GetTrend(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trend)
}

func (s *Server) handleDeleteTrend(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTrend(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// Layout
// =============================================================================

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{
		Canvas: r.URL.Query().Get("canvas"),
	}

	trends, err := s.store.ListTrends(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	trends = orderByCategory(trends, categories)

	layout, err := s.runner.Compose(r.Context(), trends, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

// orderByCategory sorts trends into the curated band order and drops
// trends whose category is disabled. An empty category list leaves the
// stored order untouched.
func orderByCategory(trends []board.Trend, categories []store.Category) []board.Trend {
	if len(categories) == 0 {
		return trends
	}

	rank := make(map[string]int, len(categories))
	enabled := make(map[string]bool, len(categories))
	for i, c := range categories {
		rank[c.Name] = i
		enabled[c.Name] = c.Enabled
	}

	out := make([]board.Trend, 0, len(trends))
	for _, t := range trends {
		if on, known := enabled[t.Category]; known && !on {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, iKnown := rank[out[i].Category]
		rj, jKnown := rank[out[j].Category]
		if iKnown != jKnown {
			return iKnown // known categories come first
		}
		return ri < rj
	})
	return out
}

// =============================================================================
// Fetch
// =============================================================================

type fetchRequest struct {
	Region        string   `json:"region,omitempty"`
	Limit         int      `json:"limit,omitempty"`
	Refresh       bool     `json:"refresh,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
	WatchlistOnly bool     `json:"watchlist_only,omitempty"`
	Replace       bool     `json:"replace,omitempty"` // replace the stored working set
}

type fetchResponse struct {
	Platform   string        `json:"platform"`
	Candidates int           `json:"candidates"`
	Trends     []board.Trend `json:"trends"`
	CacheHit   bool          `json:"cache_hit"`
	Replaced   bool          `json:"replaced"`
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	platform := chi.URLParam(r, "platform")

	var req fetchRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body"))
			return
		}
	}

	opts := pipeline.Options{
		Platforms:     []string{platform},
		Region:        req.Region,
		Limit:         req.Limit,
		Refresh:       req.Refresh,
		Keywords:      req.Keywords,
		WatchlistOnly: req.WatchlistOnly,
		Fetchers:      s.fetchers,
		Logger:        s.logger,
	}

	candidates, hit, err := s.runner.FetchWithCacheInfo(r.Context(), platform, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	trends := pipeline.Curate(candidates, opts)

	if req.Replace {
		if err := s.store.ReplaceTrends(r.Context(), trends); err != nil {
			writeError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, fetchResponse{
		Platform:   platform,
		Candidates: len(candidates),
		Trends:     trends,
		CacheHit:   hit,
		Replaced:   req.Replace,
	})
}

// =============================================================================
// Categories
// =============================================================================

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if categories == nil {
		categories = []store.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleSaveCategories(w http.ResponseWriter, r *http.Request) {
	var categories []store.Category
	if err := json.NewDecoder(r.Body).Decode(&categories); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body"))
		return
	}
	for _, c := range categories {
		if err := errors.ValidateCategory(c.Name); err != nil {
			writeError(w, err)
			return
		}
		if c.Name == "" {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "category name cannot be empty"))
			return
		}
	}

	if err := s.store.SaveCategories(r.Context(), categories); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// =============================================================================
// Branding
// =============================================================================

func (s *Server) handleGetBranding(w http.ResponseWriter, r *http.Request) {
	branding, err := s.store.GetBranding(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if branding == nil {
		branding = &store.Branding{}
	}
	writeJSON(w, http.StatusOK, branding)
}

func (s *Server) handleSaveBranding(w http.ResponseWriter, r *http.Request) {
	var branding store.Branding
	if err := json.NewDecoder(r.Body).Decode(&branding); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body"))
		return
	}
	if err := errors.ValidateHexColor(branding.Accent); err != nil {
		writeError(w, err)
		return
	}

	if err := s.store.SaveBranding(r.Context(), &branding); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, branding)
}
