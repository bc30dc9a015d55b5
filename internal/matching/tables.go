package matching

// Keyword tables behind the scorers. These are fixed data, never mutated at
// runtime; tweaking a weight means editing this file and re-reading the tests
// that pin the totals.

// roomCategory maps a canonical occupancy category to the request values that
// count as asking for it. Order matters: the listing text is checked against
// categories top to bottom, same as the canonical table this was lifted from.
type roomCategory struct {
	Name     string
	Synonyms []string
}

var roomCategories = []roomCategory{
	{Name: "Single", Synonyms: []string{"single", "private", "1"}},
	{Name: "Twin", Synonyms: []string{"double", "twin", "sharing", "2"}},
	{Name: "Triple", Synonyms: []string{"triple", "three", "3"}},
	{Name: "Quad", Synonyms: []string{"quad", "four", "4"}},
	{Name: "Dormitory", Synonyms: []string{"dorm", "dormitory", "shared"}},
}

// lifestyleWeights holds the keyword point values per lifestyle profile.
// Matching is substring-based and cumulative: a tag that contains two keywords
// earns both weights.
var lifestyleWeights = map[string]map[string]int{
	"budget": {
		"wifi":         20,
		"food":         15,
		"laundry":      10,
		"power backup": 10,
		"verified":     15,
	},
	"comfort": {
		"ac":           25,
		"wifi":         20,
		"housekeeping": 15,
		"security":     15,
		"food":         10,
	},
	"location": {
		"metro":        30,
		"transport":    20,
		"restaurants":  15,
		"shopping":     10,
		"connectivity": 15,
	},
	"verified": {
		"verified": 40,
		"security": 25,
		"cctv":     15,
		"safety":   10,
		"partner":  10,
	},
}

// verifiedTagFallback is added per verification tag when the active profile
// has no "verified" weight of its own.
const verifiedTagFallback = 10

// amenityCategory is one of the six priority-weighted amenity checks.
type amenityCategory struct {
	Key      string
	Keywords []string
}

var amenityCategories = []amenityCategory{
	{Key: "wifi", Keywords: []string{"wifi", "internet"}},
	{Key: "ac", Keywords: []string{"ac", "air conditioning", "cooling"}},
	{Key: "power", Keywords: []string{"power backup", "generator", "ups"}},
	{Key: "security", Keywords: []string{"security", "cctv", "guard"}},
	{Key: "gym", Keywords: []string{"gym", "fitness", "exercise"}},
	{Key: "parking", Keywords: []string{"parking", "bike parking", "car parking"}},
}

var priorityWeights = map[string]int{
	"low":    1,
	"medium": 2,
	"high":   3,
}
