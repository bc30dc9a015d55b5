package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"neighborfit-engine/internal/config"
	"neighborfit-engine/internal/domain"
	"neighborfit-engine/internal/events"
	"neighborfit-engine/internal/store"
)

var testSecret = []byte("test-secret")

func testConfig() config.Config {
	var c config.Config
	c.App.Port = 38471
	c.Search.MinScore = 0
	c.Search.DefaultLimit = 50
	c.Search.MaxLimit = 200
	c.Auth.TokenTTLHours = 1
	return c
}

func testMux(t *testing.T) (*http.ServeMux, *sql.DB) {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db.Pool); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	var cfgVal atomic.Value
	cfgVal.Store(testConfig())
	var status atomic.Value
	status.Store(SearchStatus{})

	mux := NewMux(Deps{
		DB:           db.Pool,
		Hub:          events.NewHub(),
		CfgVal:       &cfgVal,
		SearchStatus: &status,
		JWTSecret:    testSecret,
		TokenTTL:     time.Hour,
		StartedAt:    time.Now(),
	})
	return mux, db.Pool
}

func seedListings(t *testing.T, db *sql.DB, listings ...domain.Listing) {
	t.Helper()
	for _, l := range listings {
		if _, err := store.InsertListingIgnore(context.Background(), db, l); err != nil {
			t.Fatalf("insert %s: %v", l.ID, err)
		}
	}
}

func fixtureListing(id, area string, price float64, gender string, amenities []string) domain.Listing {
	return domain.Listing{
		ID:               id,
		Name:             "PG " + id,
		Area:             area,
		Location:         area,
		Price:            price,
		PriceDisplay:     "x",
		OccupancyType:    "Twin Sharing",
		GenderPreference: gender,
		Description:      "d",
		Amenities:        amenities,
	}
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
