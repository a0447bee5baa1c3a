package footballdata

// Wire types for the football-data.org v4 API. Only the fields the mappers
// read are declared.

type competitionsEnvelope struct {
	Competitions []competitionItem `json:"competitions"`
}

type competitionItem struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Code   string   `json:"code"`
	Type   string   `json:"type"`
	Emblem string   `json:"emblem"`
	Area   areaItem `json:"area"`
}

type areaItem struct {
	Name string `json:"name"`
}

type teamsEnvelope struct {
	Teams []teamItem `json:"teams"`
}

type teamItem struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	ShortName  string      `json:"shortName"`
	TLA        string      `json:"tla"`
	Crest      string      `json:"crest"`
	Venue      string      `json:"venue"`
	Founded    int         `json:"founded"`
	ClubColors string      `json:"clubColors"`
	Area       areaItem    `json:"area"`
	Squad      []squadItem `json:"squad"`
}

type squadItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	Nationality string `json:"nationality"`
	DateOfBirth string `json:"dateOfBirth"`
	ShirtNumber *int   `json:"shirtNumber"`
}

type matchesEnvelope struct {
	Matches []matchItem `json:"matches"`
}

type matchItem struct {
	ID          int64               `json:"id"`
	UTCDate     string              `json:"utcDate"`
	Status      string              `json:"status"`
	Venue       string              `json:"venue"`
	HomeTeam    teamRefItem         `json:"homeTeam"`
	AwayTeam    teamRefItem         `json:"awayTeam"`
	Score       scoreItem           `json:"score"`
	Competition competitionRefItem  `json:"competition"`
}

type teamRefItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type scoreItem struct {
	Winner   string        `json:"winner"`
	FullTime scorePairItem `json:"fullTime"`
}

type scorePairItem struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type competitionRefItem struct {
	Name string `json:"name"`
}
