package competition

// Competition is a league or cup as listed by the structured provider.
type Competition struct {
	ID        int64
	Name      string
	Code      string
	Type      string
	Area      string
	EmblemURL string
}
