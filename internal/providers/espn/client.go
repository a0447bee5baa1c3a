package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/matchscope/matchscope-api/internal/domain/match"
	"github.com/matchscope/matchscope-api/internal/platform/logging"
	"github.com/matchscope/matchscope-api/internal/platform/resilience"
	"github.com/matchscope/matchscope-api/internal/providers"
)

const (
	defaultBaseURL  = "https://site.api.espn.com/apis/site/v2/sports/soccer"
	providerName    = "espn"
	maxResponseSize = 6 << 20
)

var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
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
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Scoreboard fetches one league's events for a single day. competitionName
// labels the resulting matches; ESPN's own league naming is not carried.
func (c *Client) Scoreboard(ctx context.Context, leagueCode, competitionName string, day time.Time) ([]match.Match, error) {
	leagueCode = strings.TrimSpace(leagueCode)
	if leagueCode == "" {
		return nil, fmt.Errorf("league code is required")
	}

	path := "/" + url.PathEscape(leagueCode) + "/scoreboard"
	query := map[string]string{
		"dates": day.UTC().Format("20060102"),
	}

	var envelope scoreboardEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch scoreboard league=%s: %w", leagueCode, err)
	}

	out := make([]match.Match, 0, len(envelope.Events))
	for _, event := range envelope.Events {
		mapped, ok := mapEvent(event, competitionName)
		if !ok {
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
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
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
			if reqErr != nil && crerr.Is(reqErr, errESPNTransient) {
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

		resp, err := c.httpClient.Do(req)
		if err != nil {
			failure := providers.NewFailure(providerName, providers.ErrUnavailable, 0, "send request: "+err.Error())
			lastErr = crerr.Mark(failure, errESPNTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
			_ = resp.Body.Close()
			if readErr != nil {
				failure := providers.NewFailure(providerName, providers.ErrUnavailable, 0, "read response body: "+readErr.Error())
				lastErr = crerr.Mark(failure, errESPNTransient)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				failure := providers.ClassifyStatus(providerName, resp.StatusCode, abbreviateBody(raw))
				if !isRetryableStatus(resp.StatusCode) {
					return nil, failure
				}
				lastErr = crerr.Mark(failure, errESPNTransient)
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
	c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code >= http.StatusInternalServerError
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
