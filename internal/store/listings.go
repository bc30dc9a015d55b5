package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"neighborfit-engine/internal/domain"
)

const listingColumns = `id, name, area, location, price, price_display, occupancy_type,
gender_preference, description, contact_info, verification_tags, amenities, images,
latitude, longitude`

type ListListingsOpts struct {
	Page  int    // 1-based
	Limit int    // per page
	Area  string // contains match, case-insensitive; "" or "all" disables
}

// genderPatterns mirrors the search prefilter of the original service: a
// single-gender request narrows the candidate set before scoring.
var genderPatterns = map[string][]string{
	"Boys Only":  {"boys", "male", "men"},
	"Girls Only": {"girls", "female", "women"},
	"Co-ed":      {"co-ed", "both", "mixed"},
}

func scanListing(rows interface{ Scan(...any) error }) (domain.Listing, error) {
	var l domain.Listing
	var tagsJSON, amenitiesJSON, imagesJSON string
	err := rows.Scan(
		&l.ID, &l.Name, &l.Area, &l.Location, &l.Price, &l.PriceDisplay,
		&l.OccupancyType, &l.GenderPreference, &l.Description, &l.ContactInfo,
		&tagsJSON, &amenitiesJSON, &imagesJSON,
		&l.Coordinates.Latitude, &l.Coordinates.Longitude,
	)
	if err != nil {
		return domain.Listing{}, err
	}
	_ = json.Unmarshal([]byte(tagsJSON), &l.VerificationTags)
	_ = json.Unmarshal([]byte(amenitiesJSON), &l.Amenities)
	_ = json.Unmarshal([]byte(imagesJSON), &l.Images)
	return l, nil
}

// ListListings returns one price-ascending page plus the unpaged total.
func ListListings(ctx context.Context, db *sql.DB, opts ListListingsOpts) ([]domain.Listing, int, error) {
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}

	where, args := "", []any{}
	if a := strings.TrimSpace(opts.Area); a != "" && a != "all" {
		where = "WHERE LOWER(area) LIKE '%' || LOWER(?) || '%'"
		args = append(args, a)
	}

	var total int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM listings "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
SELECT %s
FROM listings
%s
ORDER BY price ASC
LIMIT ? OFFSET ?;
`, listingColumns, where)
	args = append(args, opts.Limit, (opts.Page-1)*opts.Limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}

// SearchSet loads the scoring candidates, applying the area and single-gender
// prefilters at the query layer. Order is by rowid so the ranker's stable
// tie-break sees insertion order.
func SearchSet(ctx context.Context, db *sql.DB, area, genderPreference string) ([]domain.Listing, error) {
	var where []string
	var args []any

	if a := strings.TrimSpace(area); a != "" && a != "all" {
		where = append(where, "LOWER(area) LIKE '%' || LOWER(?) || '%'")
		args = append(args, a)
	}
	if pats, ok := genderPatterns[genderPreference]; ok {
		var likes []string
		for _, p := range pats {
			likes = append(likes, "LOWER(gender_preference) LIKE '%' || ? || '%'")
			args = append(args, p)
		}
		where = append(where, "("+strings.Join(likes, " OR ")+")")
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	query := fmt.Sprintf(`
SELECT %s
FROM listings
%s
ORDER BY rowid;
`, listingColumns, whereSQL)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func GetListing(ctx context.Context, db *sql.DB, id string) (domain.Listing, bool, error) {
	row := db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM listings WHERE id = ?;`, listingColumns), id)
	l, err := scanListing(row)
	if err == sql.ErrNoRows {
		return domain.Listing{}, false, nil
	}
	if err != nil {
		return domain.Listing{}, false, err
	}
	return l, true, nil
}

func DeleteListing(ctx context.Context, db *sql.DB, id string) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?;`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// InsertListingIgnore inserts a listing, skipping duplicates by id.
func InsertListingIgnore(ctx context.Context, db *sql.DB, l domain.Listing) (added bool, err error) {
	tags, _ := json.Marshal(emptyIfNil(l.VerificationTags))
	amenities, _ := json.Marshal(emptyIfNil(l.Amenities))
	images, _ := json.Marshal(emptyIfNil(l.Images))

	_, err = db.ExecContext(ctx, `
INSERT OR IGNORE INTO listings
(id, name, area, location, price, price_display, occupancy_type, gender_preference,
 description, contact_info, verification_tags, amenities, images, latitude, longitude, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		l.ID, l.Name, l.Area, l.Location, l.Price, l.PriceDisplay, l.OccupancyType,
		l.GenderPreference, l.Description, l.ContactInfo, string(tags), string(amenities),
		string(images), l.Coordinates.Latitude, l.Coordinates.Longitude,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert listing: %w", err)
	}

	var changes int
	if e := db.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

// Areas returns the sorted distinct area names.
func Areas(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT DISTINCT area FROM listings ORDER BY area;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type Stats struct {
	TotalListings int      `json:"totalListings"`
	AreaCount     int      `json:"areas"`
	AreasList     []string `json:"areasList"`
	AvgPrice      int      `json:"avgPrice"`
	MinPrice      float64  `json:"minPrice"`
	MaxPrice      float64  `json:"maxPrice"`
}

// GetStats aggregates the landing-page numbers in two queries.
func GetStats(ctx context.Context, db *sql.DB) (Stats, error) {
	var s Stats
	var avg, min, max sql.NullFloat64

	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*), AVG(price), MIN(price), MAX(price) FROM listings;`,
	).Scan(&s.TotalListings, &avg, &min, &max)
	if err != nil {
		return Stats{}, err
	}
	s.AvgPrice = int(avg.Float64 + 0.5)
	s.MinPrice = min.Float64
	s.MaxPrice = max.Float64

	areas, err := Areas(ctx, db)
	if err != nil {
		return Stats{}, err
	}
	s.AreasList = areas
	s.AreaCount = len(areas)
	return s, nil
}

func emptyIfNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
