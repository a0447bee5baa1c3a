package squad

import (
	"strings"
	"time"
)

// Position groups used for squad breakdowns. Provider position labels are
// free-form text; anything unrecognized lands in GroupUnknown.
const (
	GroupGoalkeeper = "Goalkeeper"
	GroupDefender   = "Defender"
	GroupMidfielder = "Midfielder"
	GroupForward    = "Forward"
	GroupUnknown    = "Unknown"
)

// NationalityUnknown buckets players with no nationality on record.
const NationalityUnknown = "Unknown"

// Player is one squad member. Age is nil when the date of birth is missing
// or unparseable.
type Player struct {
	ID          int64
	Name        string
	Position    string
	Nationality string
	DateOfBirth string
	Age         *int
	ShirtNumber *int
}

// GroupForPosition maps a provider position label to a canonical group.
func GroupForPosition(position string) string {
	p := strings.ToLower(strings.TrimSpace(position))
	switch {
	case p == "":
		return GroupUnknown
	case strings.Contains(p, "keeper"):
		return GroupGoalkeeper
	case strings.Contains(p, "back"), strings.Contains(p, "defence"), strings.Contains(p, "defender"), strings.Contains(p, "defense"):
		return GroupDefender
	case strings.Contains(p, "midfield"):
		return GroupMidfielder
	case strings.Contains(p, "forward"), strings.Contains(p, "winger"), strings.Contains(p, "attack"), strings.Contains(p, "striker"), strings.Contains(p, "offence"):
		return GroupForward
	default:
		return GroupUnknown
	}
}

// AgeAt derives a player's age in whole years from a YYYY-MM-DD date of
// birth. Returns nil when the value is missing or malformed.
func AgeAt(dateOfBirth string, now time.Time) *int {
	dob, err := time.Parse("2006-01-02", strings.TrimSpace(dateOfBirth))
	if err != nil {
		return nil
	}

	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return nil
	}
	return &years
}
