package team

// Record is the structured provider's view of a club.
type Record struct {
	ID         int64
	Name       string
	ShortName  string
	TLA        string
	Founded    int
	Venue      string
	CrestURL   string
	ClubColors string
	Area       string
}
