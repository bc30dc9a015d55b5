package domain

type Coordinates struct {
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// Listing is one PG (paying-guest) accommodation record. Free-text fields
// (occupancyType, genderPreference, amenities) are matched case-insensitively
// by the scorer; no normalization is stored.
type Listing struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Area             string      `json:"area"`
	Location         string      `json:"location"`
	Price            float64     `json:"price"`
	PriceDisplay     string      `json:"priceDisplay"`
	OccupancyType    string      `json:"occupancyType"`
	GenderPreference string      `json:"genderPreference"`
	Description      string      `json:"description"`
	ContactInfo      string      `json:"contactInfo,omitempty"`
	VerificationTags []string    `json:"verificationTags"`
	Amenities        []string    `json:"amenities"`
	Images           []string    `json:"images,omitempty"`
	Coordinates      Coordinates `json:"coordinates"`
}
