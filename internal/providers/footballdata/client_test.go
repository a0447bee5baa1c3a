package footballdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matchscope/matchscope-api/internal/domain/match"
	"github.com/matchscope/matchscope-api/internal/platform/logging"
	"github.com/matchscope/matchscope-api/internal/platform/resilience"
	"github.com/matchscope/matchscope-api/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:        server.URL,
		Token:          "test-token",
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
		Now:            func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) },
	})
	return client, server
}

func TestTeamMatches_MapsPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams/57/matches", r.URL.Path)
		assert.Equal(t, "FINISHED", r.URL.Query().Get("status"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "test-token", r.Header.Get("X-Auth-Token"))

		_, _ = w.Write([]byte(`{"matches":[
			{"utcDate":"2026-08-22T14:00:00Z","status":"FINISHED",
			 "homeTeam":{"id":57,"name":"Arsenal FC"},"awayTeam":{"id":61,"name":"Chelsea FC"},
			 "score":{"winner":"HOME_TEAM","fullTime":{"home":2,"away":1}},
			 "competition":{"name":"Premier League"}},
			{"utcDate":"2026-08-15T14:00:00Z","status":"TIMED",
			 "homeTeam":{"id":64,"name":"Liverpool FC"},"awayTeam":{"id":57,"name":"Arsenal FC"},
			 "score":{"fullTime":{"home":null,"away":null}},
			 "competition":{"name":"Premier League"}}
		]}`))
	})

	matches, err := client.TeamMatches(context.Background(), 57, "finished", 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Sorted by kickoff ascending.
	assert.Equal(t, "Liverpool FC", matches[0].HomeTeam)
	assert.Equal(t, match.StatusScheduled, matches[0].Status)
	assert.False(t, matches[0].HasScore())

	assert.Equal(t, "Arsenal FC", matches[1].HomeTeam)
	assert.Equal(t, match.StatusFinished, matches[1].Status)
	require.True(t, matches[1].HasScore())
	assert.Equal(t, 2, *matches[1].HomeScore)
	assert.Equal(t, 1, *matches[1].AwayScore)
	assert.Equal(t, match.SourceStructuredData, matches[1].Source)
}

func TestTeamSquad_DerivesAges(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams/57", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":57,"name":"Arsenal FC","squad":[
			{"id":1,"name":"Keeper One","position":"Goalkeeper","nationality":"Spain","dateOfBirth":"1998-05-10"},
			{"id":2,"name":"Young Gun","position":"Centre-Forward","nationality":"","dateOfBirth":"2006-12-01"},
			{"id":3,"name":"No Birthday","position":"Defence","nationality":"Brazil","dateOfBirth":""}
		]}`))
	})

	players, err := client.TeamSquad(context.Background(), 57)
	require.NoError(t, err)
	require.Len(t, players, 3)

	require.NotNil(t, players[0].Age)
	assert.Equal(t, 28, *players[0].Age)
	require.NotNil(t, players[1].Age)
	assert.Equal(t, 19, *players[1].Age)
	assert.Nil(t, players[2].Age)
}

func TestDoJSON_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
	})

	_, err := client.TeamInfo(context.Background(), 999)
	require.ErrorIs(t, err, providers.ErrNotFound)

	failure, ok := providers.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, providerName, failure.Provider)
	assert.Equal(t, http.StatusNotFound, failure.StatusCode)
}

func TestDoJSON_RateLimitedIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:        server.URL,
		Token:          "test-token",
		MaxRetries:     3,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	_, err := client.Competitions(context.Background())
	require.ErrorIs(t, err, providers.ErrRateLimited)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDoJSON_ServerErrorRetriesThenFails(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:        server.URL,
		Token:          "test-token",
		MaxRetries:     1,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	_, err := client.Competitions(context.Background())
	require.ErrorIs(t, err, providers.ErrUnavailable)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDoJSON_MalformedPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"matches": [{]`))
	})

	_, err := client.MatchesByDateRange(context.Background(),
		time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	)
	require.ErrorIs(t, err, providers.ErrMalformed)
}

func TestDoJSON_CircuitBreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Token:   "test-token",
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 2; i++ {
		_, err := client.Competitions(context.Background())
		require.Error(t, err)
	}
	seen := calls.Load()

	_, err := client.Competitions(context.Background())
	require.ErrorIs(t, err, providers.ErrUnavailable)
	assert.Equal(t, seen, calls.Load(), "open breaker must not reach the server")
}
