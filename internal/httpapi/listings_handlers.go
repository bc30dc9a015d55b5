package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"neighborfit-engine/internal/domain"
	"neighborfit-engine/internal/events"
	"neighborfit-engine/internal/store"
)

type ListingsHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

// List returns one price-ascending page of listings, optionally narrowed to
// an area.
func (h ListingsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	listings, total, err := store.ListListings(r.Context(), h.DB, store.ListListingsOpts{
		Page: page, Limit: limit, Area: q.Get("area"),
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	writeJSON(w, map[string]any{
		"success": true,
		"count":   len(listings),
		"total":   total,
		"data":    listings,
	})
}

func (h ListingsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/pgs/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid listing id")
		return
	}

	l, ok, err := store.GetListing(r.Context(), h.DB, id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "PG not found")
		return
	}
	writeJSON(w, map[string]any{"success": true, "data": l})
}

func (h ListingsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/pgs/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid listing id")
		return
	}

	deleted, err := store.DeleteListing(r.Context(), h.DB, id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if !deleted {
		WriteError(w, r, http.StatusNotFound, "not_found", "PG not found")
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeListingDeleted, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"success": true, "id": id})
}

func (h ListingsHandler) Areas(w http.ResponseWriter, r *http.Request) {
	areas, err := store.Areas(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if areas == nil {
		areas = []string{}
	}
	writeJSON(w, map[string]any{"success": true, "count": len(areas), "data": areas})
}

// Seed inserts one sample listing, a dev aid for empty databases.
func (h ListingsHandler) Seed(w http.ResponseWriter, r *http.Request) {
	l := store.SampleListing()
	if _, err := store.InsertListingIgnore(r.Context(), h.DB, l); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeListingCreated, map[string]any{"id": l.ID}))
	writeJSON(w, map[string]any{"success": true, "data": l})
}
