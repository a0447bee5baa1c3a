package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matchscope/matchscope-api/internal/domain/match"
	"github.com/matchscope/matchscope-api/internal/domain/squad"
	"github.com/matchscope/matchscope-api/internal/domain/team"
	"github.com/matchscope/matchscope-api/internal/platform/logging"
	"github.com/matchscope/matchscope-api/internal/providers"
	"github.com/sourcegraph/conc"
)

// Analysis section names and states. A failed section is marked
// unavailable; the rest of the analysis is still served.
const (
	SectionTeamInfo        = "team_info"
	SectionSquad           = "squad"
	SectionRecentMatches   = "recent_matches"
	SectionUpcomingMatches = "upcoming_matches"
	SectionCompetitions    = "competition_analysis"

	SectionStateOK          = "ok"
	SectionStateUnavailable = "unavailable"
)

const (
	recentMatchLimit   = 10
	upcomingMatchLimit = 10

	// The competition breakdown scans a wider fixture window so completed
	// cup runs still show up.
	competitionScanLimit = 50
)

// TeamAnalysisProvider serves the independent retrievals the analysis is
// assembled from.
type TeamAnalysisProvider interface {
	TeamInfo(ctx context.Context, teamID int64) (team.Record, error)
	TeamSquad(ctx context.Context, teamID int64) ([]squad.Player, error)
	TeamMatches(ctx context.Context, teamID int64, status string, limit int) ([]match.Match, error)
}

// TeamAnalysis is the assembled report. Pointers are nil exactly when the
// backing section is unavailable; an empty-but-served section yields a
// present zero value instead.
type TeamAnalysis struct {
	Team            *team.Record
	Stats           *PerformanceStats
	RecentMatches   []match.Match
	UpcomingMatches []match.Match
	TopPerformers   *SquadInsights
	Competitions    *CompetitionBreakdown
	Sections        map[string]string
}

type AnalysisService struct {
	provider   TeamAnalysisProvider
	formWindow int
	logger     *logging.Logger
	now        func() time.Time
}

func NewAnalysisService(provider TeamAnalysisProvider, formWindow int, logger *logging.Logger) *AnalysisService {
	if logger == nil {
		logger = logging.Default()
	}
	if formWindow < 1 {
		formWindow = 10
	}

	return &AnalysisService{
		provider:   provider,
		formWindow: formWindow,
		logger:     logger,
		now:        time.Now,
	}
}

// BuildTeamAnalysis runs the five section retrievals concurrently and
// assembles whatever succeeded. A missing team aborts with not-found; all
// sections failing aborts with a dependency error; any other partial
// failure degrades to section markers.
func (s *AnalysisService) BuildTeamAnalysis(ctx context.Context, teamID int64) (TeamAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.BuildTeamAnalysis")
	defer span.End()

	if teamID <= 0 {
		return TeamAnalysis{}, fmt.Errorf("%w: team id must be greater than zero", ErrInvalidInput)
	}

	var (
		info        team.Record
		infoErr     error
		roster      []squad.Player
		rosterErr   error
		recent      []match.Match
		recentErr   error
		upcoming    []match.Match
		upcomingErr error
		season      []match.Match
		seasonErr   error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		info, infoErr = s.provider.TeamInfo(ctx, teamID)
	})
	wg.Go(func() {
		roster, rosterErr = s.provider.TeamSquad(ctx, teamID)
	})
	wg.Go(func() {
		recent, recentErr = s.provider.TeamMatches(ctx, teamID, match.StatusFinished, recentMatchLimit)
	})
	wg.Go(func() {
		upcoming, upcomingErr = s.provider.TeamMatches(ctx, teamID, match.StatusScheduled, upcomingMatchLimit)
	})
	wg.Go(func() {
		season, seasonErr = s.provider.TeamMatches(ctx, teamID, "", competitionScanLimit)
	})
	wg.Wait()

	if infoErr != nil && errors.Is(infoErr, providers.ErrNotFound) {
		return TeamAnalysis{}, fmt.Errorf("%w: team %d", ErrNotFound, teamID)
	}
	if infoErr != nil && rosterErr != nil && recentErr != nil && upcomingErr != nil && seasonErr != nil {
		s.logger.ErrorContext(ctx, "all analysis sections failed", "team_id", teamID, "error", infoErr)
		return TeamAnalysis{}, fmt.Errorf("%w: team analysis sources failed for team %d", ErrDependencyUnavailable, teamID)
	}

	analysis := TeamAnalysis{
		Sections: map[string]string{
			SectionTeamInfo:        SectionStateOK,
			SectionSquad:           SectionStateOK,
			SectionRecentMatches:   SectionStateOK,
			SectionUpcomingMatches: SectionStateOK,
			SectionCompetitions:    SectionStateOK,
		},
	}

	if infoErr != nil {
		s.markUnavailable(ctx, &analysis, SectionTeamInfo, teamID, infoErr)
	} else {
		analysis.Team = &info
	}

	if rosterErr != nil {
		s.markUnavailable(ctx, &analysis, SectionSquad, teamID, rosterErr)
	} else {
		insights := ComputeSquadInsights(roster)
		analysis.TopPerformers = &insights
	}

	if recentErr != nil {
		s.markUnavailable(ctx, &analysis, SectionRecentMatches, teamID, recentErr)
	} else {
		analysis.RecentMatches = recent
		stats := ComputeTeamStats(recent, teamID, s.formWindow)
		analysis.Stats = &stats
	}

	if upcomingErr != nil {
		s.markUnavailable(ctx, &analysis, SectionUpcomingMatches, teamID, upcomingErr)
	} else {
		analysis.UpcomingMatches = upcoming
	}

	if seasonErr != nil {
		s.markUnavailable(ctx, &analysis, SectionCompetitions, teamID, seasonErr)
	} else {
		breakdown := ComputeCompetitionBreakdown(season, s.now())
		analysis.Competitions = &breakdown
	}

	return analysis, nil
}

func (s *AnalysisService) markUnavailable(ctx context.Context, analysis *TeamAnalysis, section string, teamID int64, err error) {
	analysis.Sections[section] = SectionStateUnavailable
	s.logger.WarnContext(ctx, "analysis section unavailable",
		"section", section,
		"team_id", teamID,
		"error", err,
	)
}
