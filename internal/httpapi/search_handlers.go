package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"neighborfit-engine/internal/config"
	"neighborfit-engine/internal/events"
	"neighborfit-engine/internal/matching"
	"neighborfit-engine/internal/store"
)

type SearchHandler struct {
	DB     *sql.DB
	Hub    *events.Hub
	CfgVal *atomic.Value // stores config.Config
	Status *atomic.Value // stores SearchStatus
}

type searchResponse struct {
	Success      bool                     `json:"success"`
	Count        int                      `json:"count"`
	TotalMatched int                      `json:"totalMatched"`
	Data         []matching.RankedListing `json:"data"`
}

// Search scores the candidate set against the request's preferences and
// returns the ranked page. Matching can be switched off per request, which
// turns this into a plain area-filtered list with flat scores.
func (h SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cfg := h.CfgVal.Load().(config.Config)

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	if errs := req.Preferences.Validate(); len(errs) > 0 {
		WriteJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"errors":  errs,
		})
		return
	}

	minScore := cfg.Search.MinScore
	if req.MinScore != nil {
		if *req.MinScore < 0 || *req.MinScore > 100 {
			WriteError(w, r, http.StatusBadRequest, "invalid_min_score", "minScore must be 0..100")
			return
		}
		minScore = *req.MinScore
	}

	limit := req.Limit
	if limit <= 0 {
		limit = cfg.Search.DefaultLimit
	}
	if limit > cfg.Search.MaxLimit {
		limit = cfg.Search.MaxLimit
	}

	prefs := req.Preferences.Resolve()

	candidates, err := store.SearchSet(r.Context(), h.DB, req.Area, prefs.GenderPreference)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	res := matching.Rank(candidates, prefs, minScore, limit)
	if res.Listings == nil {
		res.Listings = []matching.RankedListing{}
	}

	if h.Status != nil {
		h.Status.Store(nextStatus(h.Status, req.Area, res.TotalMatched, time.Since(start)))
	}
	if h.Hub != nil {
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeSearchRan, map[string]any{
			"area":    req.Area,
			"matched": res.TotalMatched,
		}))
	}

	writeJSON(w, searchResponse{
		Success:      true,
		Count:        len(res.Listings),
		TotalMatched: res.TotalMatched,
		Data:         res.Listings,
	})
}

func nextStatus(val *atomic.Value, area string, matched int, dur time.Duration) SearchStatus {
	var s SearchStatus
	if cur, ok := val.Load().(SearchStatus); ok {
		s = cur
	}
	s.TotalSearches++
	s.LastRunAt = time.Now().UTC().Format(time.RFC3339)
	s.LastArea = area
	s.LastMatched = matched
	s.LastDurMS = dur.Milliseconds()
	return s
}

// Stats merges the dataset aggregates with the rolling search counters.
func (h SearchHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetStats(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	var status SearchStatus
	if h.Status != nil {
		if cur, ok := h.Status.Load().(SearchStatus); ok {
			status = cur
		}
	}

	writeJSON(w, map[string]any{
		"success":  true,
		"dataset":  stats,
		"searches": status,
	})
}
