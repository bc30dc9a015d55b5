package store

import (
	"context"
	"path/filepath"
	"testing"

	"neighborfit-engine/internal/domain"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db.Pool); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func testListing(id, area string, price float64, gender string) domain.Listing {
	return domain.Listing{
		ID:               id,
		Name:             "PG " + id,
		Area:             area,
		Location:         area + " main road",
		Price:            price,
		PriceDisplay:     "x",
		OccupancyType:    "Twin Sharing",
		GenderPreference: gender,
		Description:      "d",
		Amenities:        []string{"WiFi"},
	}
}

func TestInsertAndGetListing(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	added, err := InsertListingIgnore(ctx, db.Pool, testListing("a", "Koramangala", 12000, "Co-ed"))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !added {
		t.Fatal("first insert reported as duplicate")
	}

	// same id again is a no-op
	added, err = InsertListingIgnore(ctx, db.Pool, testListing("a", "Koramangala", 12000, "Co-ed"))
	if err != nil {
		t.Fatalf("insert dup: %v", err)
	}
	if added {
		t.Fatal("duplicate insert reported as added")
	}

	l, ok, err := GetListing(ctx, db.Pool, "a")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if l.Name != "PG a" || l.Price != 12000 || len(l.Amenities) != 1 {
		t.Fatalf("unexpected listing: %+v", l)
	}

	_, ok, err = GetListing(ctx, db.Pool, "missing")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if ok {
		t.Fatal("missing id found")
	}
}

func TestListListingsPagingAndArea(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	fixtures := []domain.Listing{
		testListing("a", "Koramangala", 12000, "Co-ed"),
		testListing("b", "HSR Layout", 9000, "Girls Only"),
		testListing("c", "Koramangala", 8000, "Boys Only"),
	}
	for _, l := range fixtures {
		if _, err := InsertListingIgnore(ctx, db.Pool, l); err != nil {
			t.Fatalf("insert %s: %v", l.ID, err)
		}
	}

	// price ascending, all areas
	got, total, err := ListListings(ctx, db.Pool, ListListingsOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(got) != 3 {
		t.Fatalf("total=%d len=%d", total, len(got))
	}
	if got[0].ID != "c" || got[2].ID != "a" {
		t.Fatalf("bad order: %s..%s", got[0].ID, got[2].ID)
	}

	// area contains match, case-insensitive
	got, total, err = ListListings(ctx, db.Pool, ListListingsOpts{Area: "koramangala"})
	if err != nil {
		t.Fatalf("list area: %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Fatalf("area filter: total=%d len=%d", total, len(got))
	}

	// paging
	got, total, err = ListListings(ctx, db.Pool, ListListingsOpts{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if total != 3 || len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("page 2: total=%d len=%d", total, len(got))
	}
}

func TestSearchSetGenderPrefilter(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	fixtures := []domain.Listing{
		testListing("a", "Koramangala", 12000, "Boys Only"),
		testListing("b", "Koramangala", 9000, "Girls Only"),
		testListing("c", "Koramangala", 8000, "Co-ed"),
	}
	for _, l := range fixtures {
		if _, err := InsertListingIgnore(ctx, db.Pool, l); err != nil {
			t.Fatalf("insert %s: %v", l.ID, err)
		}
	}

	// "any" keeps everything, in insertion order
	got, err := SearchSet(ctx, db.Pool, "", "any")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 3 || got[0].ID != "a" || got[2].ID != "c" {
		t.Fatalf("any: %+v", ids(got))
	}

	got, err = SearchSet(ctx, db.Pool, "", "Girls Only")
	if err != nil {
		t.Fatalf("search girls: %v", err)
	}
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("girls: %+v", ids(got))
	}
}

func TestAreasAndStats(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	for _, l := range []domain.Listing{
		testListing("a", "Koramangala", 12000, "Co-ed"),
		testListing("b", "HSR Layout", 8000, "Co-ed"),
		testListing("c", "Koramangala", 10000, "Co-ed"),
	} {
		if _, err := InsertListingIgnore(ctx, db.Pool, l); err != nil {
			t.Fatalf("insert %s: %v", l.ID, err)
		}
	}

	areas, err := Areas(ctx, db.Pool)
	if err != nil {
		t.Fatalf("areas: %v", err)
	}
	if len(areas) != 2 || areas[0] != "HSR Layout" {
		t.Fatalf("areas: %v", areas)
	}

	stats, err := GetStats(ctx, db.Pool)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalListings != 3 || stats.AreaCount != 2 {
		t.Fatalf("stats: %+v", stats)
	}
	if stats.MinPrice != 8000 || stats.MaxPrice != 12000 || stats.AvgPrice != 10000 {
		t.Fatalf("price stats: %+v", stats)
	}
}

func TestDeleteListing(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if _, err := InsertListingIgnore(ctx, db.Pool, testListing("a", "X", 1000, "Co-ed")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	deleted, err := DeleteListing(ctx, db.Pool, "a")
	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}
	deleted, err = DeleteListing(ctx, db.Pool, "a")
	if err != nil {
		t.Fatalf("delete again: %v", err)
	}
	if deleted {
		t.Fatal("second delete reported rows")
	}
}

func TestSeedListingsCleansRows(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	items := []domain.Listing{
		{Name: "No ID PG", Area: "HSR Layout", Price: 9000},
		{ID: "pg-x", Price: -5},
	}
	added, failed, err := SeedListings(ctx, db.Pool, items)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if added != 2 || failed != 0 {
		t.Fatalf("added=%d failed=%d", added, failed)
	}

	l, ok, err := GetListing(ctx, db.Pool, "pg-x")
	if err != nil || !ok {
		t.Fatalf("get seeded: ok=%v err=%v", ok, err)
	}
	if l.Name != "Unknown PG" || l.Price != 0 || l.Area != "Unknown" {
		t.Fatalf("not cleaned: %+v", l)
	}
}

func ids(ls []domain.Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}
