package usecase

import (
	"context"
	"fmt"

	"github.com/matchscope/matchscope-api/internal/domain/competition"
	"github.com/matchscope/matchscope-api/internal/domain/team"
	"github.com/matchscope/matchscope-api/internal/platform/logging"
)

// CatalogProvider serves the structured provider's reference data.
type CatalogProvider interface {
	Competitions(ctx context.Context) ([]competition.Competition, error)
	TeamsByCompetition(ctx context.Context, competitionID int64) ([]team.Record, error)
	TeamInfo(ctx context.Context, teamID int64) (team.Record, error)
}

// CatalogService exposes competitions and teams as normalized lookups.
type CatalogService struct {
	provider CatalogProvider
	logger   *logging.Logger
}

func NewCatalogService(provider CatalogProvider, logger *logging.Logger) *CatalogService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CatalogService{provider: provider, logger: logger}
}

func (s *CatalogService) ListCompetitions(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListCompetitions")
	defer span.End()

	competitions, err := s.provider.Competitions(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "list competitions failed", "error", err)
		return nil, mapProviderFailure(err)
	}
	return competitions, nil
}

func (s *CatalogService) ListTeamsByCompetition(ctx context.Context, competitionID int64) ([]team.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListTeamsByCompetition")
	defer span.End()

	if competitionID <= 0 {
		return nil, fmt.Errorf("%w: competition id must be greater than zero", ErrInvalidInput)
	}

	teams, err := s.provider.TeamsByCompetition(ctx, competitionID)
	if err != nil {
		s.logger.WarnContext(ctx, "list teams failed", "competition_id", competitionID, "error", err)
		return nil, mapProviderFailure(err)
	}
	return teams, nil
}

func (s *CatalogService) GetTeam(ctx context.Context, teamID int64) (team.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetTeam")
	defer span.End()

	if teamID <= 0 {
		return team.Record{}, fmt.Errorf("%w: team id must be greater than zero", ErrInvalidInput)
	}

	record, err := s.provider.TeamInfo(ctx, teamID)
	if err != nil {
		s.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		return team.Record{}, mapProviderFailure(err)
	}
	return record, nil
}
