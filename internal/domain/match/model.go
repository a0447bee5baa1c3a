package match

import (
	"strings"
	"time"
)

// Source tags identify which provider produced a match.
const (
	SourceLiveSchedule   = "espn"
	SourceStructuredData = "football-data"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusPostponed = "POSTPONED"
	StatusUnknown   = "UNKNOWN"
)

// Match is a single fixture normalized from either provider. Scores are
// pointers: nil means "no score recorded", which is distinct from 0-0.
type Match struct {
	HomeTeam     string
	AwayTeam     string
	HomeTeamID   int64
	AwayTeamID   int64
	KickoffAt    time.Time
	Status       string
	HomeScore    *int
	AwayScore    *int
	Competition  string
	Venue        string
	Source       string
}

// HasScore reports whether both sides have a recorded score.
func (m Match) HasScore() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// IdentityKey is the cross-provider dedup key: normalized team names plus
// the kickoff date in UTC. Provider IDs are not comparable across feeds.
func (m Match) IdentityKey() string {
	return normalizeTeamName(m.HomeTeam) + "|" + normalizeTeamName(m.AwayTeam) + "|" + m.KickoffAt.UTC().Format("2006-01-02")
}

func normalizeTeamName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func NormalizeStatus(status string) string {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case StatusScheduled:
		return StatusScheduled
	case StatusLive:
		return StatusLive
	case StatusFinished:
		return StatusFinished
	case StatusPostponed:
		return StatusPostponed
	default:
		return StatusUnknown
	}
}

func IsFinishedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinished
}

func IsLiveStatus(status string) bool {
	return NormalizeStatus(status) == StatusLive
}

func IsScheduledStatus(status string) bool {
	return NormalizeStatus(status) == StatusScheduled
}
