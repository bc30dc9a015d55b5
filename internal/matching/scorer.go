package matching

import (
	"math"
	"strings"

	"neighborfit-engine/internal/domain"
)

// Aggregate weights. They sum to 1.00 so the total stays in 0..100.
const (
	weightBudget     = 0.25
	weightRoom       = 0.15
	weightGender     = 0.10
	weightLifestyle  = 0.15
	weightAmenity    = 0.25
	weightFoodSocial = 0.10
)

// DisabledScore is assigned to every listing when matching is turned off.
const DisabledScore = 75

// Breakdown carries the six sub-scores and the rounded aggregate.
type Breakdown struct {
	Budget     float64 `json:"budget"`
	Room       float64 `json:"room"`
	Gender     float64 `json:"gender"`
	Lifestyle  float64 `json:"lifestyle"`
	Amenity    float64 `json:"amenity"`
	FoodSocial float64 `json:"foodSocial"`
	Total      int     `json:"total"`
}

// Score computes the 0..100 compatibility score for one listing. Pure
// function: same inputs, same score.
func Score(l domain.Listing, p Resolved) int {
	return ScoreBreakdown(l, p).Total
}

// ScoreBreakdown is Score plus the per-factor contributions, for debugging
// and tests.
func ScoreBreakdown(l domain.Listing, p Resolved) Breakdown {
	amenityText := joinLower(l.Amenities)

	b := Breakdown{
		Budget:     budgetScore(l.Price, float64(p.Budget)),
		Room:       roomScore(l.OccupancyType, p.RoomType),
		Gender:     genderScore(l.GenderPreference, p.GenderPreference),
		Lifestyle:  lifestyleScore(l.Amenities, l.VerificationTags, p.Lifestyle),
		Amenity:    amenityScore(amenityText, p.Priorities),
		FoodSocial: foodSocialScore(amenityText, p),
	}

	total := b.Budget*weightBudget +
		b.Room*weightRoom +
		b.Gender*weightGender +
		b.Lifestyle*weightLifestyle +
		b.Amenity*weightAmenity +
		b.FoodSocial*weightFoodSocial
	b.Total = int(math.Round(total))
	return b
}

// budgetScore: 100 at or under budget, linear decay to 60 across the 20%
// tolerance band, then a steep slide toward 0 (-5 points per 1000 over the
// flexible ceiling). Caller guarantees budget > 0 (see Resolve).
func budgetScore(price, budget float64) float64 {
	const tolerance = 0.2
	flexible := budget * (1 + tolerance)

	switch {
	case price <= budget:
		return 100
	case price <= flexible:
		excess := price - budget
		maxExcess := budget * tolerance
		return math.Max(0, 100-(excess/maxExcess)*40)
	default:
		excess := price - flexible
		return math.Max(0, 20-(excess/1000)*5)
	}
}

// roomScore: exact category match is 100, anything else is a 30-point floor
// so a room-type mismatch alone never knocks a listing out of a tolerant
// search.
func roomScore(occupancy, want string) float64 {
	if want == "any" {
		return 100
	}
	occ := strings.ToLower(occupancy)
	pref := strings.ToLower(want)

	for _, rc := range roomCategories {
		name := strings.ToLower(rc.Name)
		if !strings.Contains(occ, name) {
			continue
		}
		if pref == name {
			return 100
		}
		for _, syn := range rc.Synonyms {
			if pref == syn {
				return 100
			}
		}
	}
	return 30
}

// genderScore treats a policy mismatch as an absolute exclusion (0), with one
// exception: co-ed listings are acceptable (90) for any single-gender request
// and perfect (100) when co-ed was asked for.
func genderScore(listingGender, want string) float64 {
	if want == "any" {
		return 100
	}
	lg := strings.ToLower(listingGender)

	if strings.Contains(lg, "co-ed") || strings.Contains(lg, "both") || strings.Contains(lg, "mixed") {
		if want == "Co-ed" {
			return 100
		}
		return 90
	}

	if (want == "Boys Only" && strings.Contains(lg, "boys")) ||
		(want == "Girls Only" && strings.Contains(lg, "girls")) {
		return 100
	}
	return 0
}

// lifestyleScore starts at 50 and adds the active profile's weight for every
// keyword found in every amenity tag. Overlapping keywords double-count on
// purpose; see the table notes.
func lifestyleScore(amenities, verificationTags []string, lifestyle string) float64 {
	weights, ok := lifestyleWeights[lifestyle]
	if !ok {
		weights = lifestyleWeights["budget"]
	}

	score := 50.0
	for _, a := range amenities {
		al := strings.ToLower(a)
		for kw, w := range weights {
			if strings.Contains(al, kw) {
				score += float64(w)
			}
		}
	}
	for _, t := range verificationTags {
		tl := strings.ToLower(t)
		if strings.Contains(tl, "verified") || strings.Contains(tl, "partner") {
			if w, ok := weights["verified"]; ok {
				score += float64(w)
			} else {
				score += verifiedTagFallback
			}
		}
	}
	return math.Min(100, score)
}

// amenityScore is weighted recall over the six categories: every category's
// priority weight goes into the denominator, and into the numerator when the
// listing's amenity text mentions any of its keywords.
func amenityScore(amenityText string, priorities map[string]string) float64 {
	var totalWeight, achieved int
	for _, cat := range amenityCategories {
		w := priorityWeights[priorities[cat.Key]]
		totalWeight += w
		for _, kw := range cat.Keywords {
			if strings.Contains(amenityText, kw) {
				achieved += w
				break
			}
		}
	}
	if totalWeight == 0 {
		return 50
	}
	return float64(achieved) / float64(totalWeight) * 100
}

// foodSocialScore: base 50 plus independent bonuses for food, cooking and
// social-environment matches, capped at 100.
func foodSocialScore(amenityText string, p Resolved) float64 {
	score := 50.0

	switch p.FoodPreference {
	case "veg":
		if strings.Contains(amenityText, "veg") || strings.Contains(amenityText, "vegetarian") {
			score += 20
		}
	case "nonveg":
		if strings.Contains(amenityText, "non-veg") || strings.Contains(amenityText, "non vegetarian") {
			score += 20
		}
	default: // any / both: no text check, flat bonus
		score += 15
	}

	switch p.CookingFacility {
	case "full":
		if strings.Contains(amenityText, "kitchen") || strings.Contains(amenityText, "cooking") {
			score += 15
		}
	case "basic":
		if strings.Contains(amenityText, "basic kitchen") || strings.Contains(amenityText, "kitchenette") {
			score += 15
		}
	}

	switch p.SocialEnvironment {
	case "active":
		if strings.Contains(amenityText, "common area") || strings.Contains(amenityText, "recreation") ||
			strings.Contains(amenityText, "games") {
			score += 10
		}
	case "quiet":
		if strings.Contains(amenityText, "quiet") || strings.Contains(amenityText, "peaceful") ||
			strings.Contains(amenityText, "study area") {
			score += 10
		}
	}

	return math.Min(100, score)
}

func joinLower(tags []string) string {
	return strings.ToLower(strings.Join(tags, " "))
}
