package footballdata

import (
	"strings"
	"time"

	"github.com/matchscope/matchscope-api/internal/domain/competition"
	"github.com/matchscope/matchscope-api/internal/domain/match"
	"github.com/matchscope/matchscope-api/internal/domain/squad"
	"github.com/matchscope/matchscope-api/internal/domain/team"
)

func mapCompetition(item competitionItem) competition.Competition {
	return competition.Competition{
		ID:        item.ID,
		Name:      strings.TrimSpace(item.Name),
		Code:      strings.TrimSpace(item.Code),
		Type:      strings.TrimSpace(item.Type),
		Area:      strings.TrimSpace(item.Area.Name),
		EmblemURL: strings.TrimSpace(item.Emblem),
	}
}

func mapTeamRecord(item teamItem) team.Record {
	return team.Record{
		ID:         item.ID,
		Name:       strings.TrimSpace(item.Name),
		ShortName:  strings.TrimSpace(item.ShortName),
		TLA:        strings.TrimSpace(item.TLA),
		Founded:    item.Founded,
		Venue:      strings.TrimSpace(item.Venue),
		CrestURL:   strings.TrimSpace(item.Crest),
		ClubColors: strings.TrimSpace(item.ClubColors),
		Area:       strings.TrimSpace(item.Area.Name),
	}
}

func mapSquadPlayer(item squadItem, now time.Time) squad.Player {
	return squad.Player{
		ID:          item.ID,
		Name:        strings.TrimSpace(item.Name),
		Position:    strings.TrimSpace(item.Position),
		Nationality: strings.TrimSpace(item.Nationality),
		DateOfBirth: strings.TrimSpace(item.DateOfBirth),
		Age:         squad.AgeAt(item.DateOfBirth, now),
		ShirtNumber: item.ShirtNumber,
	}
}

func mapMatch(item matchItem) match.Match {
	kickoff, _ := time.Parse(time.RFC3339, strings.TrimSpace(item.UTCDate))

	return match.Match{
		HomeTeam:    strings.TrimSpace(item.HomeTeam.Name),
		AwayTeam:    strings.TrimSpace(item.AwayTeam.Name),
		HomeTeamID:  item.HomeTeam.ID,
		AwayTeamID:  item.AwayTeam.ID,
		KickoffAt:   kickoff.UTC(),
		Status:      mapMatchStatus(item.Status),
		HomeScore:   item.Score.FullTime.Home,
		AwayScore:   item.Score.FullTime.Away,
		Competition: strings.TrimSpace(item.Competition.Name),
		Venue:       strings.TrimSpace(item.Venue),
		Source:      match.SourceStructuredData,
	}
}

// mapMatchStatus folds the provider's status vocabulary into the service's
// closed set. CANCELLED joins POSTPONED: either way the match will not be
// played at the listed kickoff. AWARDED carries a final result.
func mapMatchStatus(status string) string {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "SCHEDULED", "TIMED":
		return match.StatusScheduled
	case "IN_PLAY", "PAUSED", "LIVE":
		return match.StatusLive
	case "FINISHED", "AWARDED":
		return match.StatusFinished
	case "POSTPONED", "SUSPENDED", "CANCELLED":
		return match.StatusPostponed
	default:
		return match.StatusUnknown
	}
}
