package httpapi

import "neighborfit-engine/internal/matching"

// SearchRequest is the POST /api/search body: matching knobs plus the
// transport-level controls that never reach the scorers.
type SearchRequest struct {
	matching.Preferences
	Area     string `json:"area"`
	MinScore *int   `json:"minScore"`
	Limit    int    `json:"limit"`
}

// SearchStatus is the rolling counter behind GET /api/search/stats.
type SearchStatus struct {
	TotalSearches int    `json:"total_searches"`
	LastRunAt     string `json:"last_run_at"`
	LastArea      string `json:"last_area"`
	LastMatched   int    `json:"last_matched"`
	LastDurMS     int64  `json:"last_dur_ms"`
}
