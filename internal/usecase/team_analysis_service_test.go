package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matchscope/matchscope-api/internal/domain/match"
	"github.com/matchscope/matchscope-api/internal/domain/squad"
	"github.com/matchscope/matchscope-api/internal/domain/team"
	"github.com/matchscope/matchscope-api/internal/platform/logging"
	"github.com/matchscope/matchscope-api/internal/providers"
)

type fakeAnalysisProvider struct {
	info      team.Record
	infoErr   error
	roster    []squad.Player
	rosterErr error

	finished    []match.Match
	finishedErr error
	scheduled   []match.Match
	schedErr    error
	season      []match.Match
	seasonErr   error
}

func (f *fakeAnalysisProvider) TeamInfo(context.Context, int64) (team.Record, error) {
	return f.info, f.infoErr
}

func (f *fakeAnalysisProvider) TeamSquad(context.Context, int64) ([]squad.Player, error) {
	return f.roster, f.rosterErr
}

func (f *fakeAnalysisProvider) TeamMatches(_ context.Context, _ int64, status string, _ int) ([]match.Match, error) {
	switch status {
	case match.StatusFinished:
		return f.finished, f.finishedErr
	case match.StatusScheduled:
		return f.scheduled, f.schedErr
	default:
		return f.season, f.seasonErr
	}
}

func healthyAnalysisProvider() *fakeAnalysisProvider {
	return &fakeAnalysisProvider{
		info:   team.Record{ID: 57, Name: "Arsenal FC"},
		roster: []squad.Player{player("Keeper", "Goalkeeper", "Spain", 28)},
		finished: []match.Match{
			{
				HomeTeamID: 57, AwayTeamID: 61,
				KickoffAt: time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC),
				Status:    match.StatusFinished,
				HomeScore: intPtr(2), AwayScore: intPtr(0),
			},
		},
		scheduled: []match.Match{
			{
				HomeTeamID: 61, AwayTeamID: 57,
				KickoffAt: time.Date(2026, 9, 5, 15, 0, 0, 0, time.UTC),
				Status:    match.StatusScheduled,
			},
		},
		season: []match.Match{
			{
				HomeTeamID: 57, AwayTeamID: 61,
				KickoffAt:   time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC),
				Status:      match.StatusFinished,
				HomeScore:   intPtr(2),
				AwayScore:   intPtr(0),
				Competition: "Premier League",
			},
			{
				HomeTeamID: 61, AwayTeamID: 57,
				KickoffAt:   time.Date(2026, 9, 5, 15, 0, 0, 0, time.UTC),
				Status:      match.StatusScheduled,
				Competition: "Premier League",
			},
		},
	}
}

func intPtr(v int) *int { return &v }

func TestBuildTeamAnalysis_AllSectionsHealthy(t *testing.T) {
	service := NewAnalysisService(healthyAnalysisProvider(), 10, logging.NewNop())

	analysis, err := service.BuildTeamAnalysis(context.Background(), 57)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for section, state := range analysis.Sections {
		if state != SectionStateOK {
			t.Fatalf("section %s should be ok, got %s", section, state)
		}
	}
	if analysis.Team == nil || analysis.Team.Name != "Arsenal FC" {
		t.Fatalf("unexpected team %+v", analysis.Team)
	}
	if analysis.Stats == nil || analysis.Stats.Wins != 1 {
		t.Fatalf("unexpected stats %+v", analysis.Stats)
	}
	if analysis.TopPerformers == nil || analysis.TopPerformers.Summary.TotalPlayers != 1 {
		t.Fatalf("unexpected performers %+v", analysis.TopPerformers)
	}
	if len(analysis.UpcomingMatches) != 1 {
		t.Fatalf("unexpected upcoming matches %+v", analysis.UpcomingMatches)
	}
	if analysis.Competitions == nil || analysis.Competitions.TotalCompetitions != 1 {
		t.Fatalf("unexpected competition breakdown %+v", analysis.Competitions)
	}
}

func TestBuildTeamAnalysis_SquadFailureIsIsolated(t *testing.T) {
	provider := healthyAnalysisProvider()
	provider.rosterErr = providers.NewFailure("football-data", providers.ErrUnavailable, 503, "down")

	service := NewAnalysisService(provider, 10, logging.NewNop())
	analysis, err := service.BuildTeamAnalysis(context.Background(), 57)
	if err != nil {
		t.Fatalf("one failed section must not fail the analysis: %v", err)
	}

	if analysis.Sections[SectionSquad] != SectionStateUnavailable {
		t.Fatalf("squad section should be unavailable, got %s", analysis.Sections[SectionSquad])
	}
	if analysis.TopPerformers != nil {
		t.Fatalf("unavailable squad must yield nil performers, got %+v", analysis.TopPerformers)
	}
	if analysis.Sections[SectionTeamInfo] != SectionStateOK || analysis.Stats == nil {
		t.Fatalf("healthy sections must survive: %+v", analysis)
	}
}

func TestBuildTeamAnalysis_EmptyRosterIsServed(t *testing.T) {
	provider := healthyAnalysisProvider()
	provider.roster = nil

	service := NewAnalysisService(provider, 10, logging.NewNop())
	analysis, err := service.BuildTeamAnalysis(context.Background(), 57)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.Sections[SectionSquad] != SectionStateOK {
		t.Fatalf("an empty roster is still a served section")
	}
	if analysis.TopPerformers == nil || analysis.TopPerformers.Summary.TotalPlayers != 0 {
		t.Fatalf("expected present zero-value insights, got %+v", analysis.TopPerformers)
	}
}

func TestBuildTeamAnalysis_CompetitionFailureIsIsolated(t *testing.T) {
	provider := healthyAnalysisProvider()
	provider.seasonErr = providers.NewFailure("football-data", providers.ErrUnavailable, 503, "down")

	service := NewAnalysisService(provider, 10, logging.NewNop())
	analysis, err := service.BuildTeamAnalysis(context.Background(), 57)
	if err != nil {
		t.Fatalf("one failed section must not fail the analysis: %v", err)
	}

	if analysis.Sections[SectionCompetitions] != SectionStateUnavailable {
		t.Fatalf("competition section should be unavailable, got %s", analysis.Sections[SectionCompetitions])
	}
	if analysis.Competitions != nil {
		t.Fatalf("unavailable section must yield nil breakdown, got %+v", analysis.Competitions)
	}
	if analysis.Sections[SectionTeamInfo] != SectionStateOK || analysis.Stats == nil {
		t.Fatalf("healthy sections must survive: %+v", analysis)
	}
}

func TestBuildTeamAnalysis_MissingTeamAborts(t *testing.T) {
	provider := healthyAnalysisProvider()
	provider.infoErr = providers.NewFailure("football-data", providers.ErrNotFound, 404, "no such team")

	service := NewAnalysisService(provider, 10, logging.NewNop())
	_, err := service.BuildTeamAnalysis(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestBuildTeamAnalysis_AllSectionsFailedAborts(t *testing.T) {
	failure := providers.NewFailure("football-data", providers.ErrUnavailable, 503, "down")
	provider := &fakeAnalysisProvider{
		infoErr:     failure,
		rosterErr:   failure,
		finishedErr: failure,
		schedErr:    failure,
		seasonErr:   failure,
	}

	service := NewAnalysisService(provider, 10, logging.NewNop())
	_, err := service.BuildTeamAnalysis(context.Background(), 57)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestBuildTeamAnalysis_RejectsInvalidID(t *testing.T) {
	service := NewAnalysisService(healthyAnalysisProvider(), 10, logging.NewNop())
	_, err := service.BuildTeamAnalysis(context.Background(), 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
