package matching

import "fmt"

// Request-level bounds. Budgets outside this band are treated as client
// mistakes rather than folded silently.
const (
	MinRequestBudget = 5000
	MaxRequestBudget = 50000
)

// Validate checks the wire values before Resolve folds them. Empty strings
// and a zero budget are fine (they mean "default"); anything else must be in
// its domain. Returns human-readable problems, empty when the request is ok.
func (p Preferences) Validate() []string {
	var errs []string

	if p.Budget != 0 && (p.Budget < MinRequestBudget || p.Budget > MaxRequestBudget) {
		errs = append(errs, fmt.Sprintf("budget must be between %d and %d", MinRequestBudget, MaxRequestBudget))
	}

	check := func(field, v string, domain []string) {
		if v == "" {
			return
		}
		for _, d := range domain {
			if v == d {
				return
			}
		}
		errs = append(errs, fmt.Sprintf("%s must be one of %v", field, domain))
	}

	check("roomType", p.RoomType, roomTypeDomain)
	check("genderPreference", p.GenderPreference, genderDomain)
	check("lifestyle", p.Lifestyle, lifestyleDomain)
	check("wifiPriority", p.WifiPriority, priorityDomain)
	check("acPriority", p.ACPriority, priorityDomain)
	check("powerPriority", p.PowerPriority, priorityDomain)
	check("securityPriority", p.SecurityPriority, priorityDomain)
	check("gymPriority", p.GymPriority, priorityDomain)
	check("parkingPriority", p.ParkingPriority, priorityDomain)
	check("foodPreference", p.FoodPreference, foodDomain)
	check("cookingFacility", p.CookingFacility, cookingDomain)
	check("socialEnvironment", p.SocialEnvironment, socialDomain)
	check("noiseTolerance", p.NoiseTolerance, priorityDomain)
	check("maxCommuteTime", p.MaxCommuteTime, commuteDomain)
	check("transportMode", p.TransportMode, transportDomain)
	check("nearbyEssentials", p.NearbyEssentials, nearbyDomain)

	return errs
}
