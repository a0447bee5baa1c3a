package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/matchscope/matchscope-api/internal/config"
	"github.com/matchscope/matchscope-api/internal/domain/competition"
	"github.com/matchscope/matchscope-api/internal/domain/match"
	"github.com/matchscope/matchscope-api/internal/domain/squad"
	"github.com/matchscope/matchscope-api/internal/domain/team"
	"github.com/matchscope/matchscope-api/internal/platform/logging"
	"github.com/matchscope/matchscope-api/internal/providers"
	"github.com/matchscope/matchscope-api/internal/usecase"
)

type stubDataSource struct {
	team    team.Record
	teamErr error
	roster  []squad.Player
	matches []match.Match
}

func (s *stubDataSource) Competitions(context.Context) ([]competition.Competition, error) {
	return []competition.Competition{{ID: 2021, Name: "Premier League", Code: "PL"}}, nil
}

func (s *stubDataSource) TeamsByCompetition(context.Context, int64) ([]team.Record, error) {
	return []team.Record{s.team}, nil
}

func (s *stubDataSource) TeamInfo(context.Context, int64) (team.Record, error) {
	return s.team, s.teamErr
}

func (s *stubDataSource) TeamSquad(context.Context, int64) ([]squad.Player, error) {
	return s.roster, nil
}

func (s *stubDataSource) TeamMatches(context.Context, int64, string, int) ([]match.Match, error) {
	return s.matches, nil
}

func (s *stubDataSource) MatchesByDateRange(context.Context, time.Time, time.Time) ([]match.Match, error) {
	return s.matches, nil
}

func (s *stubDataSource) Scoreboard(context.Context, string, string, time.Time) ([]match.Match, error) {
	return s.matches, nil
}

func newTestRouter(t *testing.T, source *stubDataSource) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	leagues := []config.TrackedLeague{{Code: "eng.1", Name: "Premier League"}}

	handler := NewHandler(
		usecase.NewCatalogService(source, logger),
		usecase.NewAnalysisService(source, 10, logger),
		usecase.NewFeedService(source, source, leagues, 4, logger),
		logger,
	)
	return NewRouter(handler, logger, []string{"*"})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestHandler_GetTeam(t *testing.T) {
	source := &stubDataSource{team: team.Record{ID: 57, Name: "Arsenal FC", TLA: "ARS"}}
	router := newTestRouter(t, source)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams/57", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["name"].(string); got != "Arsenal FC" {
		t.Fatalf("unexpected team payload %v", data)
	}
}

func TestHandler_GetTeam_InvalidID(t *testing.T) {
	router := newTestRouter(t, &stubDataSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams/abc", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_GetTeamAnalysis_NotFound(t *testing.T) {
	source := &stubDataSource{
		teamErr: providers.NewFailure("football-data", providers.ErrNotFound, 404, "no such team"),
	}
	router := newTestRouter(t, source)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams/9999/analysis", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandler_GetTeamAnalysis_SectionsInPayload(t *testing.T) {
	source := &stubDataSource{
		team:   team.Record{ID: 57, Name: "Arsenal FC"},
		roster: []squad.Player{{Name: "Keeper", Position: "Goalkeeper", Nationality: "Spain"}},
	}
	router := newTestRouter(t, source)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams/57/analysis", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	sections, _ := data["sections"].(map[string]any)
	for _, section := range []string{"team_info", "squad", "recent_matches", "upcoming_matches", "competition_analysis"} {
		if got, _ := sections[section].(string); got != "ok" {
			t.Fatalf("expected section %s to be ok, got %v", section, sections[section])
		}
	}
	if _, ok := data["top_performers"].(map[string]any); !ok {
		t.Fatalf("expected top_performers in payload, got %v", data)
	}
	if _, ok := data["competition_analysis"].(map[string]any); !ok {
		t.Fatalf("expected competition_analysis in payload, got %v", data)
	}
}

func TestHandler_GetMatchesToday(t *testing.T) {
	source := &stubDataSource{
		matches: []match.Match{
			{
				HomeTeam:    "Arsenal",
				AwayTeam:    "Chelsea",
				KickoffAt:   time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC),
				Status:      match.StatusScheduled,
				Competition: "Premier League",
				Source:      match.SourceLiveSchedule,
			},
		},
	}
	router := newTestRouter(t, source)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches/today?date=2026-08-30", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["date"].(string); got != "2026-08-30" {
		t.Fatalf("unexpected feed date %v", data["date"])
	}
	stats, _ := data["stats"].(map[string]any)
	if got, _ := stats["total_unique"].(float64); got != 1 {
		t.Fatalf("unexpected provenance stats %v", stats)
	}
}

func TestHandler_GetMatchesToday_BadDate(t *testing.T) {
	router := newTestRouter(t, &stubDataSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches/today?date=30-08-2026", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_Healthz(t *testing.T) {
	router := newTestRouter(t, &stubDataSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
