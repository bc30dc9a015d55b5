package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"neighborfit-engine/internal/domain"
)

// LoadListingsFile reads the bulk listings JSON (an array of Listing).
func LoadListingsFile(path string) ([]domain.Listing, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read listings file: %w", err)
	}
	var out []domain.Listing
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("unmarshal listings: %w", err)
	}
	return out, nil
}

// SeedListings inserts rows that aren't present yet (by id), cleaning each
// record up front so a partially-filled source row still lands. Bad rows are
// counted, not fatal.
func SeedListings(ctx context.Context, db *sql.DB, items []domain.Listing) (added, failed int, err error) {
	for _, l := range items {
		ok, err := InsertListingIgnore(ctx, db, cleanListing(l))
		if err != nil {
			failed++
			continue
		}
		if ok {
			added++
		}
	}
	return added, failed, nil
}

func cleanListing(l domain.Listing) domain.Listing {
	if l.ID == "" {
		l.ID = "pg-" + uuid.NewString()
	}
	if l.Name == "" {
		l.Name = "Unknown PG"
	}
	if l.Area == "" {
		l.Area = "Unknown"
	}
	if l.Location == "" {
		l.Location = "Unknown"
	}
	if l.Price < 0 {
		l.Price = 0
	}
	if l.PriceDisplay == "" {
		l.PriceDisplay = fmt.Sprintf("₹%.0f", l.Price)
	}
	if l.OccupancyType == "" {
		l.OccupancyType = "Unknown"
	}
	if l.GenderPreference == "" {
		l.GenderPreference = "Unknown"
	}
	if l.Description == "" {
		l.Description = "No description available"
	}
	return l
}

// SampleListing is the dev-aid row behind POST /seed.
func SampleListing() domain.Listing {
	return cleanListing(domain.Listing{
		ID:               "pg-sample-" + uuid.NewString()[:8],
		Name:             "Sunrise Comfort PG",
		Area:             "Koramangala",
		Location:         "5th Block, Koramangala",
		Price:            12500,
		OccupancyType:    "Twin Sharing",
		GenderPreference: "Co-ed",
		Description:      "Well-lit twin sharing rooms near the tech corridor.",
		VerificationTags: []string{"Verified"},
		Amenities:        []string{"WiFi", "AC", "Power Backup", "Security", "Veg Food", "Parking"},
	})
}
