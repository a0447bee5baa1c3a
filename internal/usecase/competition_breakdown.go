package usecase

import (
	"sort"
	"time"

	"github.com/matchscope/matchscope-api/internal/domain/match"
)

// Competition engagement states within a team's season.
const (
	EngagementActive    = "active"
	EngagementUpcoming  = "upcoming"
	EngagementCompleted = "completed"
)

// Display ordering for the breakdown buckets. Continental competitions
// outrank domestic leagues, leagues outrank domestic cups; unlisted
// competitions sort last by name.
var competitionPriority = map[string]int{
	"UEFA Champions League":  1,
	"Champions League":       1,
	"UEFA Europa League":     2,
	"Europa League":          2,
	"UEFA Conference League": 3,
	"Premier League":         4,
	"La Liga":                4,
	"Primera Division":       4,
	"Serie A":                4,
	"Bundesliga":             4,
	"Ligue 1":                4,
	"FA Cup":                 5,
	"Copa del Rey":           5,
	"DFB-Pokal":              5,
	"Coppa Italia":           5,
	"EFL Cup":                6,
	"Championship":           7,
}

// CompetitionEngagement summarizes where a team stands in one competition,
// derived from its past and future fixtures.
type CompetitionEngagement struct {
	Name             string
	Status           string
	MatchesPlayed    int
	MatchesRemaining int
	LastKickoff      *time.Time
	NextKickoff      *time.Time
}

// CompetitionBreakdown buckets a team's competitions into active (past and
// future fixtures), upcoming (future fixtures only), and completed (past
// fixtures only). A competition whose fixtures are all postponed or unknown
// counts toward the total but lands in no bucket.
type CompetitionBreakdown struct {
	Active            []CompetitionEngagement
	Upcoming          []CompetitionEngagement
	Completed         []CompetitionEngagement
	TotalCompetitions int
}

// ComputeCompetitionBreakdown derives the per-competition engagement view
// from a team's fixture list. Fixtures without a competition label fall
// into an "Unknown" competition rather than being dropped.
func ComputeCompetitionBreakdown(matches []match.Match, now time.Time) CompetitionBreakdown {
	now = now.UTC()

	type window struct {
		played    int
		remaining int
		last      time.Time
		next      time.Time
	}
	byCompetition := make(map[string]*window)

	for _, m := range matches {
		name := m.Competition
		if name == "" {
			name = "Unknown"
		}
		w := byCompetition[name]
		if w == nil {
			w = &window{}
			byCompetition[name] = w
		}

		kickoff := m.KickoffAt.UTC()
		switch {
		case kickoff.After(now) && match.IsScheduledStatus(m.Status):
			w.remaining++
			if w.next.IsZero() || kickoff.Before(w.next) {
				w.next = kickoff
			}
		case !kickoff.After(now) && (match.IsFinishedStatus(m.Status) || match.IsLiveStatus(m.Status)):
			w.played++
			if kickoff.After(w.last) {
				w.last = kickoff
			}
		}
	}

	breakdown := CompetitionBreakdown{
		Active:            []CompetitionEngagement{},
		Upcoming:          []CompetitionEngagement{},
		Completed:         []CompetitionEngagement{},
		TotalCompetitions: len(byCompetition),
	}

	for name, w := range byCompetition {
		engagement := CompetitionEngagement{
			Name:             name,
			MatchesPlayed:    w.played,
			MatchesRemaining: w.remaining,
		}
		if !w.last.IsZero() {
			last := w.last
			engagement.LastKickoff = &last
		}
		if !w.next.IsZero() {
			next := w.next
			engagement.NextKickoff = &next
		}

		switch {
		case w.played > 0 && w.remaining > 0:
			engagement.Status = EngagementActive
			breakdown.Active = append(breakdown.Active, engagement)
		case w.remaining > 0:
			engagement.Status = EngagementUpcoming
			breakdown.Upcoming = append(breakdown.Upcoming, engagement)
		case w.played > 0:
			engagement.Status = EngagementCompleted
			breakdown.Completed = append(breakdown.Completed, engagement)
		}
	}

	sortEngagements(breakdown.Active)
	sortEngagements(breakdown.Upcoming)
	sortEngagements(breakdown.Completed)

	return breakdown
}

func sortEngagements(engagements []CompetitionEngagement) {
	sort.SliceStable(engagements, func(i, j int) bool {
		left, right := competitionRank(engagements[i].Name), competitionRank(engagements[j].Name)
		if left != right {
			return left < right
		}
		return engagements[i].Name < engagements[j].Name
	})
}

func competitionRank(name string) int {
	if rank, ok := competitionPriority[name]; ok {
		return rank
	}
	return 99
}
