package espn

// Wire types for the ESPN site API scoreboard payload.

type scoreboardEnvelope struct {
	Events []eventItem `json:"events"`
}

type eventItem struct {
	ID           string                 `json:"id"`
	Date         string                 `json:"date"`
	Status       statusItem             `json:"status"`
	Competitions []eventCompetitionItem `json:"competitions"`
}

type statusItem struct {
	Type statusTypeItem `json:"type"`
}

type statusTypeItem struct {
	Name string `json:"name"`
}

type eventCompetitionItem struct {
	Competitors []competitorItem `json:"competitors"`
	Venue       venueItem        `json:"venue"`
}

type competitorItem struct {
	HomeAway string       `json:"homeAway"`
	Score    string       `json:"score"`
	Team     teamNameItem `json:"team"`
}

type teamNameItem struct {
	DisplayName string `json:"displayName"`
}

type venueItem struct {
	FullName string `json:"fullName"`
}
