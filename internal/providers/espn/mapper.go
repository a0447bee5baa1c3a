package espn

import (
	"strconv"
	"strings"
	"time"

	"github.com/matchscope/matchscope-api/internal/domain/match"
)

// ESPN truncates event timestamps to minute precision.
const eventTimeLayout = "2006-01-02T15:04Z"

// mapEvent converts one scoreboard event. Returns false when the event has
// no resolvable home and away side.
func mapEvent(item eventItem, competitionName string) (match.Match, bool) {
	if len(item.Competitions) == 0 {
		return match.Match{}, false
	}

	var home, away *competitorItem
	for i := range item.Competitions[0].Competitors {
		competitor := &item.Competitions[0].Competitors[i]
		switch strings.ToLower(competitor.HomeAway) {
		case "home":
			home = competitor
		case "away":
			away = competitor
		}
	}
	if home == nil || away == nil {
		return match.Match{}, false
	}

	homeName := strings.TrimSpace(home.Team.DisplayName)
	awayName := strings.TrimSpace(away.Team.DisplayName)
	if homeName == "" || awayName == "" {
		return match.Match{}, false
	}

	status := mapEventStatus(item.Status.Type.Name)
	out := match.Match{
		HomeTeam:    homeName,
		AwayTeam:    awayName,
		KickoffAt:   parseEventTime(item.Date),
		Status:      status,
		Competition: strings.TrimSpace(competitionName),
		Venue:       strings.TrimSpace(item.Competitions[0].Venue.FullName),
		Source:      match.SourceLiveSchedule,
	}

	// ESPN reports "0" for unplayed matches; only live and finished events
	// carry a real score.
	if status == match.StatusLive || status == match.StatusFinished {
		out.HomeScore = parseScore(home.Score)
		out.AwayScore = parseScore(away.Score)
	}

	return out, true
}

func mapEventStatus(name string) string {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "STATUS_SCHEDULED":
		return match.StatusScheduled
	case "STATUS_IN_PROGRESS", "STATUS_FIRST_HALF", "STATUS_SECOND_HALF", "STATUS_HALFTIME":
		return match.StatusLive
	case "STATUS_FINAL", "STATUS_FULL_TIME":
		return match.StatusFinished
	case "STATUS_POSTPONED", "STATUS_CANCELED":
		return match.StatusPostponed
	default:
		return match.StatusUnknown
	}
}

func parseEventTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(eventTimeLayout, value); err == nil {
		return parsed.UTC()
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC()
	}
	return time.Time{}
}

func parseScore(value string) *int {
	score, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || score < 0 {
		return nil
	}
	return &score
}
