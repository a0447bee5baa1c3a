package footballdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/matchscope/matchscope-api/internal/domain/competition"
	"github.com/matchscope/matchscope-api/internal/domain/match"
	"github.com/matchscope/matchscope-api/internal/domain/squad"
	"github.com/matchscope/matchscope-api/internal/domain/team"
	"github.com/matchscope/matchscope-api/internal/platform/logging"
	"github.com/matchscope/matchscope-api/internal/platform/resilience"
	"github.com/matchscope/matchscope-api/internal/providers"
)

const (
	defaultBaseURL  = "https://api.football-data.org/v4"
	providerName    = "football-data"
	maxResponseSize = 6 << 20
)

var errFootballDataTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Now            func() time.Time
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	now            func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		now:            now,
	}
}

func (c *Client) Competitions(ctx context.Context) ([]competition.Competition, error) {
	var envelope competitionsEnvelope
	if err := c.doJSON(ctx, "/competitions", nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(envelope.Competitions))
	for _, item := range envelope.Competitions {
		if item.ID <= 0 {
			continue
		}
		out = append(out, mapCompetition(item))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (c *Client) TeamsByCompetition(ctx context.Context, competitionID int64) ([]team.Record, error) {
	if competitionID <= 0 {
		return nil, fmt.Errorf("competition id must be greater than zero")
	}

	path := fmt.Sprintf("/competitions/%d/teams", competitionID)
	var envelope teamsEnvelope
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch teams competition_id=%d: %w", competitionID, err)
	}

	out := make([]team.Record, 0, len(envelope.Teams))
	for _, item := range envelope.Teams {
		if item.ID <= 0 {
			continue
		}
		out = append(out, mapTeamRecord(item))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (c *Client) TeamInfo(ctx context.Context, teamID int64) (team.Record, error) {
	if teamID <= 0 {
		return team.Record{}, fmt.Errorf("team id must be greater than zero")
	}

	var item teamItem
	if err := c.doJSON(ctx, fmt.Sprintf("/teams/%d", teamID), nil, &item); err != nil {
		return team.Record{}, fmt.Errorf("fetch team team_id=%d: %w", teamID, err)
	}
	if item.ID <= 0 {
		return team.Record{}, providers.NewFailure(providerName, providers.ErrMalformed, 0, "team payload missing id")
	}

	return mapTeamRecord(item), nil
}

// TeamSquad reads the roster from the team detail payload. Concurrent
// info+squad fetches for the same team collapse into one upstream request
// via singleflight.
func (c *Client) TeamSquad(ctx context.Context, teamID int64) ([]squad.Player, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("team id must be greater than zero")
	}

	var item teamItem
	if err := c.doJSON(ctx, fmt.Sprintf("/teams/%d", teamID), nil, &item); err != nil {
		return nil, fmt.Errorf("fetch squad team_id=%d: %w", teamID, err)
	}

	now := c.now().UTC()
	out := make([]squad.Player, 0, len(item.Squad))
	for _, member := range item.Squad {
		player := mapSquadPlayer(member, now)
		if player.Name == "" {
			continue
		}
		out = append(out, player)
	}

	return out, nil
}

func (c *Client) TeamMatches(ctx context.Context, teamID int64, status string, limit int) ([]match.Match, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("team id must be greater than zero")
	}

	query := map[string]string{}
	if trimmed := strings.TrimSpace(status); trimmed != "" {
		query["status"] = strings.ToUpper(trimmed)
	}
	if limit > 0 {
		query["limit"] = strconv.Itoa(limit)
	}

	path := fmt.Sprintf("/teams/%d/matches", teamID)
	var envelope matchesEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch team matches team_id=%d: %w", teamID, err)
	}

	return sortedMatches(envelope.Matches), nil
}

func (c *Client) MatchesByDateRange(ctx context.Context, from, to time.Time) ([]match.Match, error) {
	query := map[string]string{
		"dateFrom": from.UTC().Format("2006-01-02"),
		"dateTo":   to.UTC().Format("2006-01-02"),
	}

	var envelope matchesEnvelope
	if err := c.doJSON(ctx, "/matches", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch matches %s..%s: %w", query["dateFrom"], query["dateTo"], err)
	}

	return sortedMatches(envelope.Matches), nil
}

func sortedMatches(items []matchItem) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		mapped := mapMatch(item)
		if mapped.HomeTeam == "" || mapped.AwayTeam == "" {
			continue
		}
		out = append(out, mapped)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].HomeTeam < out[j].HomeTeam
	})
	return out
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
			return providers.NewFailure(providerName, providers.ErrUnavailable, 0, "circuit breaker open")
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errFootballDataTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return providers.NewFailure(providerName, providers.ErrMalformed, 0, fmt.Sprintf("unexpected response payload type %T", out))
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return providers.NewFailure(providerName, providers.ErrMalformed, 0, "decode provider payload: "+err.Error())
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("X-Auth-Token", c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			failure := providers.NewFailure(providerName, providers.ErrUnavailable, 0, "send request: "+sanitizeSensitiveText(err.Error(), c.token))
			lastErr = crerr.Mark(failure, errFootballDataTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
			_ = resp.Body.Close()
			if readErr != nil {
				failure := providers.NewFailure(providerName, providers.ErrUnavailable, 0, "read response body: "+readErr.Error())
				lastErr = crerr.Mark(failure, errFootballDataTransient)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				failure := providers.ClassifyStatus(providerName, resp.StatusCode, abbreviateBody(raw))
				if !isRetryableStatus(resp.StatusCode) {
					// 404 and 429 are terminal: retrying a rate-limited
					// request only burns more of the per-minute budget.
					return nil, failure
				}
				lastErr = crerr.Mark(failure, errFootballDataTransient)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = providers.NewFailure(providerName, providers.ErrUnavailable, 0, "provider request failed")
	}
	c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

func abbreviateBody(raw []byte) string {
	const maxLen = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > maxLen {
		return body[:maxLen] + "..."
	}
	return body
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
