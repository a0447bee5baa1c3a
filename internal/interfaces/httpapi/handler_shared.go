package httpapi

import (
	"context"
	"time"

	"github.com/matchscope/matchscope-api/internal/domain/competition"
	"github.com/matchscope/matchscope-api/internal/domain/match"
	"github.com/matchscope/matchscope-api/internal/domain/squad"
	"github.com/matchscope/matchscope-api/internal/domain/team"
	"github.com/matchscope/matchscope-api/internal/usecase"
)

type competitionDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Type      string `json:"type,omitempty"`
	Area      string `json:"area,omitempty"`
	EmblemURL string `json:"emblem_url,omitempty"`
}

type teamDTO struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ShortName  string `json:"short_name,omitempty"`
	TLA        string `json:"tla,omitempty"`
	Founded    int    `json:"founded,omitempty"`
	Venue      string `json:"venue,omitempty"`
	CrestURL   string `json:"crest_url,omitempty"`
	ClubColors string `json:"club_colors,omitempty"`
	Area       string `json:"area,omitempty"`
}

type matchDTO struct {
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
	HomeTeamID  int64  `json:"home_team_id,omitempty"`
	AwayTeamID  int64  `json:"away_team_id,omitempty"`
	KickoffAt   string `json:"kickoff_at"`
	Status      string `json:"status"`
	HomeScore   *int   `json:"home_score,omitempty"`
	AwayScore   *int   `json:"away_score,omitempty"`
	Competition string `json:"competition,omitempty"`
	Venue       string `json:"venue,omitempty"`
	Source      string `json:"source"`
}

type matchFeedDTO struct {
	Date    string            `json:"date"`
	Matches []matchDTO        `json:"matches"`
	Stats   feedProvenanceDTO `json:"stats"`
}

type feedProvenanceDTO struct {
	PrimarySourceCount int            `json:"primary_source_count"`
	FallbackAddedCount int            `json:"fallback_added_count"`
	TotalUnique        int            `json:"total_unique"`
	ByCompetition      map[string]int `json:"by_competition"`
	PrimaryFailed      bool           `json:"primary_failed"`
	FallbackUsed       bool           `json:"fallback_used"`
}

type recordSplitDTO struct {
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

type performanceStatsDTO struct {
	Played              int            `json:"played"`
	Wins                int            `json:"wins"`
	Draws               int            `json:"draws"`
	Losses              int            `json:"losses"`
	WinPercentage       float64        `json:"win_percentage"`
	Points              int            `json:"points"`
	GoalsFor            int            `json:"goals_for"`
	GoalsAgainst        int            `json:"goals_against"`
	GoalDifference      int            `json:"goal_difference"`
	AverageGoalsFor     float64        `json:"average_goals_for"`
	AverageGoalsAgainst float64        `json:"average_goals_against"`
	CleanSheets         int            `json:"clean_sheets"`
	Form                []string       `json:"form"`
	HomeRecord          recordSplitDTO `json:"home_record"`
	AwayRecord          recordSplitDTO `json:"away_record"`
}

type playerDTO struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Position    string `json:"position,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Age         *int   `json:"age,omitempty"`
	ShirtNumber *int   `json:"shirt_number,omitempty"`
}

type squadSummaryDTO struct {
	TotalPlayers       int     `json:"total_players"`
	AverageAge         float64 `json:"average_age"`
	YoungestAge        int     `json:"youngest_age"`
	OldestAge          int     `json:"oldest_age"`
	TotalNationalities int     `json:"total_nationalities"`
}

type ageDistributionDTO struct {
	Under20   int `json:"under_20"`
	Age20to24 int `json:"age_20_24"`
	Age25to29 int `json:"age_25_29"`
	Age30Plus int `json:"age_30_plus"`
}

type topNationalityDTO struct {
	Country      string  `json:"country"`
	Count        int     `json:"count"`
	SharePercent float64 `json:"share_percent"`
}

type squadInsightsDTO struct {
	SquadSummary         squadSummaryDTO        `json:"squad_summary"`
	FullSquadByPosition  map[string][]playerDTO `json:"full_squad_by_position"`
	NationalityBreakdown map[string]int         `json:"nationality_breakdown"`
	YoungTalents         []playerDTO            `json:"young_talents"`
	ExperiencedPlayers   []playerDTO            `json:"experienced_players"`
	AgeDistribution      ageDistributionDTO     `json:"age_distribution"`
	TopNationality       *topNationalityDTO     `json:"top_nationality,omitempty"`
}

type competitionEngagementDTO struct {
	Name             string `json:"name"`
	Status           string `json:"status"`
	MatchesPlayed    int    `json:"matches_played"`
	MatchesRemaining int    `json:"matches_remaining"`
	LastKickoff      string `json:"last_kickoff,omitempty"`
	NextKickoff      string `json:"next_kickoff,omitempty"`
}

type competitionBreakdownDTO struct {
	Active            []competitionEngagementDTO `json:"active"`
	Upcoming          []competitionEngagementDTO `json:"upcoming"`
	Completed         []competitionEngagementDTO `json:"completed"`
	TotalCompetitions int                        `json:"total_competitions"`
}

type teamAnalysisDTO struct {
	Team                *teamDTO                 `json:"team_info,omitempty"`
	Stats               *performanceStatsDTO     `json:"stats,omitempty"`
	RecentMatches       []matchDTO               `json:"recent_matches"`
	UpcomingMatches     []matchDTO               `json:"upcoming_matches"`
	TopPerformers       *squadInsightsDTO        `json:"top_performers,omitempty"`
	CompetitionAnalysis *competitionBreakdownDTO `json:"competition_analysis,omitempty"`
	Sections            map[string]string        `json:"sections"`
}

func competitionToDTO(ctx context.Context, v competition.Competition) competitionDTO {
	ctx, span := startSpan(ctx, "httpapi.competitionToDTO")
	defer span.End()

	return competitionDTO{
		ID:        v.ID,
		Name:      v.Name,
		Code:      v.Code,
		Type:      v.Type,
		Area:      v.Area,
		EmblemURL: v.EmblemURL,
	}
}

func teamToDTO(ctx context.Context, v team.Record) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		ID:         v.ID,
		Name:       v.Name,
		ShortName:  v.ShortName,
		TLA:        v.TLA,
		Founded:    v.Founded,
		Venue:      v.Venue,
		CrestURL:   v.CrestURL,
		ClubColors: v.ClubColors,
		Area:       v.Area,
	}
}

func matchToDTO(ctx context.Context, v match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	return matchDTO{
		HomeTeam:    v.HomeTeam,
		AwayTeam:    v.AwayTeam,
		HomeTeamID:  v.HomeTeamID,
		AwayTeamID:  v.AwayTeamID,
		KickoffAt:   v.KickoffAt.UTC().Format(time.RFC3339),
		Status:      v.Status,
		HomeScore:   v.HomeScore,
		AwayScore:   v.AwayScore,
		Competition: v.Competition,
		Venue:       v.Venue,
		Source:      v.Source,
	}
}

func matchesToDTO(ctx context.Context, matches []match.Match) []matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchesToDTO")
	defer span.End()

	out := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchToDTO(ctx, m))
	}
	return out
}

func matchFeedToDTO(ctx context.Context, feed usecase.MatchFeed) matchFeedDTO {
	ctx, span := startSpan(ctx, "httpapi.matchFeedToDTO")
	defer span.End()

	return matchFeedDTO{
		Date:    feed.Date.Format("2006-01-02"),
		Matches: matchesToDTO(ctx, feed.Matches),
		Stats: feedProvenanceDTO{
			PrimarySourceCount: feed.PrimaryCount,
			FallbackAddedCount: feed.FallbackAdded,
			TotalUnique:        feed.TotalUnique,
			ByCompetition:      feed.ByCompetition,
			PrimaryFailed:      feed.PrimaryFailed,
			FallbackUsed:       feed.FallbackUsed,
		},
	}
}

func playerToDTO(ctx context.Context, v squad.Player) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		ID:          v.ID,
		Name:        v.Name,
		Position:    v.Position,
		Nationality: v.Nationality,
		DateOfBirth: v.DateOfBirth,
		Age:         v.Age,
		ShirtNumber: v.ShirtNumber,
	}
}

func playersToDTO(ctx context.Context, players []squad.Player) []playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playersToDTO")
	defer span.End()

	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerToDTO(ctx, p))
	}
	return out
}

func performanceStatsToDTO(ctx context.Context, v usecase.PerformanceStats) performanceStatsDTO {
	ctx, span := startSpan(ctx, "httpapi.performanceStatsToDTO")
	defer span.End()

	form := v.Form
	if form == nil {
		form = []string{}
	}

	return performanceStatsDTO{
		Played:              v.Played,
		Wins:                v.Wins,
		Draws:               v.Draws,
		Losses:              v.Losses,
		WinPercentage:       v.WinPercentage,
		Points:              v.Points,
		GoalsFor:            v.GoalsFor,
		GoalsAgainst:        v.GoalsAgainst,
		GoalDifference:      v.GoalDifference,
		AverageGoalsFor:     v.AverageGoalsFor,
		AverageGoalsAgainst: v.AverageGoalsAgainst,
		CleanSheets:         v.CleanSheets,
		Form:                form,
		HomeRecord:          recordSplitDTO(v.HomeRecord),
		AwayRecord:          recordSplitDTO(v.AwayRecord),
	}
}

func squadInsightsToDTO(ctx context.Context, v usecase.SquadInsights) squadInsightsDTO {
	ctx, span := startSpan(ctx, "httpapi.squadInsightsToDTO")
	defer span.End()

	byPosition := make(map[string][]playerDTO, len(v.ByPosition))
	for group, members := range v.ByPosition {
		byPosition[group] = playersToDTO(ctx, members)
	}

	dto := squadInsightsDTO{
		SquadSummary: squadSummaryDTO{
			TotalPlayers:       v.Summary.TotalPlayers,
			AverageAge:         v.Summary.AverageAge,
			YoungestAge:        v.Summary.YoungestAge,
			OldestAge:          v.Summary.OldestAge,
			TotalNationalities: v.Summary.TotalNationalities,
		},
		FullSquadByPosition:  byPosition,
		NationalityBreakdown: v.NationalityBreakdown,
		YoungTalents:         playersToDTO(ctx, v.YoungTalents),
		ExperiencedPlayers:   playersToDTO(ctx, v.ExperiencedPlayers),
		AgeDistribution: ageDistributionDTO{
			Under20:   v.AgeDistribution.Under20,
			Age20to24: v.AgeDistribution.Age20to24,
			Age25to29: v.AgeDistribution.Age25to29,
			Age30Plus: v.AgeDistribution.Age30Plus,
		},
	}
	if v.TopNationality != nil {
		dto.TopNationality = &topNationalityDTO{
			Country:      v.TopNationality.Country,
			Count:        v.TopNationality.Count,
			SharePercent: v.TopNationality.SharePercent,
		}
	}

	return dto
}

func engagementToDTO(v usecase.CompetitionEngagement) competitionEngagementDTO {
	dto := competitionEngagementDTO{
		Name:             v.Name,
		Status:           v.Status,
		MatchesPlayed:    v.MatchesPlayed,
		MatchesRemaining: v.MatchesRemaining,
	}
	if v.LastKickoff != nil {
		dto.LastKickoff = v.LastKickoff.UTC().Format(time.RFC3339)
	}
	if v.NextKickoff != nil {
		dto.NextKickoff = v.NextKickoff.UTC().Format(time.RFC3339)
	}
	return dto
}

func engagementsToDTO(engagements []usecase.CompetitionEngagement) []competitionEngagementDTO {
	out := make([]competitionEngagementDTO, 0, len(engagements))
	for _, engagement := range engagements {
		out = append(out, engagementToDTO(engagement))
	}
	return out
}

func competitionBreakdownToDTO(ctx context.Context, v usecase.CompetitionBreakdown) competitionBreakdownDTO {
	ctx, span := startSpan(ctx, "httpapi.competitionBreakdownToDTO")
	defer span.End()

	return competitionBreakdownDTO{
		Active:            engagementsToDTO(v.Active),
		Upcoming:          engagementsToDTO(v.Upcoming),
		Completed:         engagementsToDTO(v.Completed),
		TotalCompetitions: v.TotalCompetitions,
	}
}

func teamAnalysisToDTO(ctx context.Context, v usecase.TeamAnalysis) teamAnalysisDTO {
	ctx, span := startSpan(ctx, "httpapi.teamAnalysisToDTO")
	defer span.End()

	dto := teamAnalysisDTO{
		RecentMatches:   matchesToDTO(ctx, v.RecentMatches),
		UpcomingMatches: matchesToDTO(ctx, v.UpcomingMatches),
		Sections:        v.Sections,
	}
	if v.Team != nil {
		mapped := teamToDTO(ctx, *v.Team)
		dto.Team = &mapped
	}
	if v.Stats != nil {
		mapped := performanceStatsToDTO(ctx, *v.Stats)
		dto.Stats = &mapped
	}
	if v.TopPerformers != nil {
		mapped := squadInsightsToDTO(ctx, *v.TopPerformers)
		dto.TopPerformers = &mapped
	}
	if v.Competitions != nil {
		mapped := competitionBreakdownToDTO(ctx, *v.Competitions)
		dto.CompetitionAnalysis = &mapped
	}

	return dto
}
