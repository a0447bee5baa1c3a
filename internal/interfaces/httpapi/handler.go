package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/matchscope/matchscope-api/internal/platform/logging"
	"github.com/matchscope/matchscope-api/internal/usecase"
)

type Handler struct {
	catalogService  *usecase.CatalogService
	analysisService *usecase.AnalysisService
	feedService     *usecase.FeedService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	catalogService *usecase.CatalogService,
	analysisService *usecase.AnalysisService,
	feedService *usecase.FeedService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalogService:  catalogService,
		analysisService: analysisService,
		feedService:     feedService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	competitions, err := h.catalogService.ListCompetitions(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]competitionDTO, 0, len(competitions))
	for _, c := range competitions {
		items = append(items, competitionToDTO(ctx, c))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeamsByCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByCompetition")
	defer span.End()

	competitionID, err := parseIDPathValue(r, "competitionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.catalogService.ListTeamsByCompetition(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(ctx, t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := parseIDPathValue(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	record, err := h.catalogService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, record))
}

func (h *Handler) GetTeamAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamAnalysis")
	defer span.End()

	teamID, err := parseIDPathValue(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	analysis, err := h.analysisService.BuildTeamAnalysis(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "build team analysis failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamAnalysisToDTO(ctx, analysis))
}

func (h *Handler) GetMatchesToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchesToday")
	defer span.End()

	req := matchFeedRequest{Date: strings.TrimSpace(r.URL.Query().Get("date"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var day time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", usecase.ErrInvalidInput))
			return
		}
		day = parsed
	}

	feed, err := h.feedService.MatchesForDay(ctx, day)
	if err != nil {
		h.logger.WarnContext(ctx, "build match feed failed", "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchFeedToDTO(ctx, feed))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func parseIDPathValue(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return id, nil
}

type matchFeedRequest struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
}
