package matching

// Preferences is the wire shape of a search request's matching knobs. Every
// field is optional; zero values mean "use the documented default".
// maxCommuteTime, transportMode and nearbyEssentials are accepted and
// validated but do not currently influence any sub-score.
type Preferences struct {
	Budget            int    `json:"budget"`
	RoomType          string `json:"roomType"`
	GenderPreference  string `json:"genderPreference"`
	Lifestyle         string `json:"lifestyle"`
	WifiPriority      string `json:"wifiPriority"`
	ACPriority        string `json:"acPriority"`
	PowerPriority     string `json:"powerPriority"`
	SecurityPriority  string `json:"securityPriority"`
	GymPriority       string `json:"gymPriority"`
	ParkingPriority   string `json:"parkingPriority"`
	FoodPreference    string `json:"foodPreference"`
	CookingFacility   string `json:"cookingFacility"`
	SocialEnvironment string `json:"socialEnvironment"`
	NoiseTolerance    string `json:"noiseTolerance"`
	MaxCommuteTime    string `json:"maxCommuteTime"`
	TransportMode     string `json:"transportMode"`
	NearbyEssentials  string `json:"nearbyEssentials"`
	EnableMatching    *bool  `json:"enableMatching"`
}

// DefaultBudget is also the fallback for non-positive budgets: the original
// algorithm divides by the budget inside the tolerance band, so a zero budget
// folds to the default instead of reaching the scorer.
const DefaultBudget = 15000

// Resolved is a Preferences value with every default applied and every enum
// folded into its documented domain. Scorers only ever see Resolved values.
type Resolved struct {
	Budget            int
	RoomType          string
	GenderPreference  string
	Lifestyle         string
	Priorities        map[string]string // keyed by amenityCategory.Key
	FoodPreference    string
	CookingFacility   string
	SocialEnvironment string
	NoiseTolerance    string
	EnableMatching    bool
}

var (
	roomTypeDomain  = []string{"any", "Single", "Twin", "Triple", "Quad", "Dormitory"}
	genderDomain    = []string{"any", "Boys Only", "Girls Only", "Co-ed"}
	lifestyleDomain = []string{"budget", "comfort", "location", "verified"}
	priorityDomain  = []string{"low", "medium", "high"}
	foodDomain      = []string{"any", "veg", "nonveg", "both"}
	cookingDomain   = []string{"not_needed", "basic", "full"}
	socialDomain    = []string{"quiet", "moderate", "active"}

	// Unscored pass-through fields still have fixed domains.
	commuteDomain   = []string{"30", "45", "60", "90"}
	transportDomain = []string{"any", "metro", "bus", "bike", "walking"}
	nearbyDomain    = []string{"basic", "moderate", "extensive"}
)

// Resolve applies defaults once. Out-of-domain values fold to the default
// rather than erroring; the HTTP layer rejects them earlier, this is the
// library-level backstop.
func (p Preferences) Resolve() Resolved {
	r := Resolved{
		Budget:            p.Budget,
		RoomType:          pick(p.RoomType, roomTypeDomain, "any"),
		GenderPreference:  pick(p.GenderPreference, genderDomain, "any"),
		Lifestyle:         pick(p.Lifestyle, lifestyleDomain, "budget"),
		FoodPreference:    pick(p.FoodPreference, foodDomain, "veg"),
		CookingFacility:   pick(p.CookingFacility, cookingDomain, "full"),
		SocialEnvironment: pick(p.SocialEnvironment, socialDomain, "moderate"),
		NoiseTolerance:    pick(p.NoiseTolerance, priorityDomain, "medium"),
		EnableMatching:    true,
	}
	if r.Budget <= 0 {
		r.Budget = DefaultBudget
	}
	if p.EnableMatching != nil {
		r.EnableMatching = *p.EnableMatching
	}
	r.Priorities = map[string]string{
		"wifi":     pick(p.WifiPriority, priorityDomain, "medium"),
		"ac":       pick(p.ACPriority, priorityDomain, "medium"),
		"power":    pick(p.PowerPriority, priorityDomain, "high"),
		"security": pick(p.SecurityPriority, priorityDomain, "high"),
		"gym":      pick(p.GymPriority, priorityDomain, "low"),
		"parking":  pick(p.ParkingPriority, priorityDomain, "medium"),
	}
	return r
}

func pick(v string, domain []string, def string) string {
	for _, d := range domain {
		if v == d {
			return v
		}
	}
	return def
}
