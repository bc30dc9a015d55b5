package matching

import (
	"strings"
	"testing"
)

func TestValidateAcceptsDefaultsAndGoodValues(t *testing.T) {
	if errs := (Preferences{}).Validate(); len(errs) != 0 {
		t.Fatalf("empty request: %v", errs)
	}

	p := Preferences{
		Budget:           12000,
		RoomType:         "Single",
		GenderPreference: "Co-ed",
		MaxCommuteTime:   "45",
		TransportMode:    "metro",
		NearbyEssentials: "extensive",
	}
	if errs := p.Validate(); len(errs) != 0 {
		t.Fatalf("valid request: %v", errs)
	}
}

func TestValidateRejectsOutOfDomain(t *testing.T) {
	cases := []struct {
		name string
		p    Preferences
		want string
	}{
		{"budget too low", Preferences{Budget: 100}, "budget"},
		{"bad room type", Preferences{RoomType: "castle"}, "roomType"},
		{"bad commute", Preferences{MaxCommuteTime: "120"}, "maxCommuteTime"},
		{"bad transport", Preferences{TransportMode: "teleport"}, "transportMode"},
		{"bad essentials", Preferences{NearbyEssentials: "everything"}, "nearbyEssentials"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.p.Validate()
			if len(errs) != 1 || !strings.Contains(errs[0], tc.want) {
				t.Fatalf("errors = %v, want one mentioning %q", errs, tc.want)
			}
		})
	}
}
