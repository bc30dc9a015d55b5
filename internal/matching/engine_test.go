package matching

import (
	"testing"

	"neighborfit-engine/internal/domain"
)

// Prefs chosen so that a listing with no amenities scores 0.25*budget + 39:
// price under budget => 64, at the flexible ceiling => 54, far over => 39.
func flatPrefs() Resolved {
	return Preferences{
		GenderPreference: "any",
		RoomType:         "any",
		FoodPreference:   "any",
		CookingFacility:  "not_needed",
		WifiPriority:     "low",
		ACPriority:       "low",
		PowerPriority:    "low",
		SecurityPriority: "low",
		GymPriority:      "low",
		ParkingPriority:  "low",
	}.Resolve()
}

func rankFixtures() []domain.Listing {
	return []domain.Listing{
		{ID: "a", Price: 10000},
		{ID: "b", Price: 18000},
		{ID: "c", Price: 10000},
		{ID: "d", Price: 50000},
	}
}

func ids(rs []RankedListing) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestRankFiltersAndKeepsStableOrder(t *testing.T) {
	res := Rank(rankFixtures(), flatPrefs(), 60, 10)

	if res.TotalMatched != 2 {
		t.Fatalf("totalMatched = %d, want 2", res.TotalMatched)
	}
	got := ids(res.Listings)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("order = %v, want [a c]", got)
	}
	if res.Listings[0].MatchScore != 64 || res.Listings[1].MatchScore != 64 {
		t.Fatalf("tie scores = %d/%d, want 64/64", res.Listings[0].MatchScore, res.Listings[1].MatchScore)
	}
}

func TestRankSortsDescendingAndTruncates(t *testing.T) {
	res := Rank(rankFixtures(), flatPrefs(), 0, 2)

	if res.TotalMatched != 4 {
		t.Fatalf("totalMatched = %d, want 4 (pre-truncation)", res.TotalMatched)
	}
	got := ids(res.Listings)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("order = %v, want [a c]", got)
	}

	full := Rank(rankFixtures(), flatPrefs(), 0, 10)
	want := []string{"a", "c", "b", "d"}
	for i, id := range ids(full.Listings) {
		if id != want[i] {
			t.Fatalf("full order = %v, want %v", ids(full.Listings), want)
		}
	}
	for i := 1; i < len(full.Listings); i++ {
		if full.Listings[i].MatchScore > full.Listings[i-1].MatchScore {
			t.Fatalf("not descending at %d: %v", i, full.Listings)
		}
	}
}

func TestRankMatchingDisabled(t *testing.T) {
	off := false
	p := Preferences{EnableMatching: &off}.Resolve()

	res := Rank(rankFixtures(), p, 80, 10)

	if res.TotalMatched != 4 {
		t.Fatalf("totalMatched = %d, want 4 (filter skipped)", res.TotalMatched)
	}
	want := []string{"a", "b", "c", "d"}
	for i, id := range ids(res.Listings) {
		if id != want[i] {
			t.Fatalf("input order not preserved: %v", ids(res.Listings))
		}
	}
	for _, r := range res.Listings {
		if r.MatchScore != DisabledScore {
			t.Fatalf("score = %d, want %d", r.MatchScore, DisabledScore)
		}
	}
}

func TestRankEmptyInput(t *testing.T) {
	res := Rank(nil, flatPrefs(), 60, 10)
	if len(res.Listings) != 0 || res.TotalMatched != 0 {
		t.Fatalf("empty input: %+v", res)
	}
}
