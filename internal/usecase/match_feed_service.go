package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/matchscope/matchscope-api/internal/config"
	"github.com/matchscope/matchscope-api/internal/domain/match"
	"github.com/matchscope/matchscope-api/internal/platform/logging"
	ants "github.com/panjf2000/ants/v2"
)

// LiveScheduleProvider serves per-league scoreboards for a single day.
type LiveScheduleProvider interface {
	Scoreboard(ctx context.Context, leagueCode, competitionName string, day time.Time) ([]match.Match, error)
}

// StructuredMatchProvider serves the fallback match list by date range.
type StructuredMatchProvider interface {
	MatchesByDateRange(ctx context.Context, from, to time.Time) ([]match.Match, error)
}

// MatchFeed is the merged day feed with provenance counters. The counters
// always satisfy PrimaryCount + FallbackAdded == TotalUnique.
type MatchFeed struct {
	Date          time.Time
	Matches       []match.Match
	PrimaryCount  int
	FallbackAdded int
	TotalUnique   int
	ByCompetition map[string]int
	PrimaryFailed bool
	FallbackUsed  bool
}

type FeedService struct {
	live          LiveScheduleProvider
	structured    StructuredMatchProvider
	leagues       []config.TrackedLeague
	maxConcurrent int
	logger        *logging.Logger
	now           func() time.Time
}

func NewFeedService(
	live LiveScheduleProvider,
	structured StructuredMatchProvider,
	leagues []config.TrackedLeague,
	maxConcurrent int,
	logger *logging.Logger,
) *FeedService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	return &FeedService{
		live:          live,
		structured:    structured,
		leagues:       leagues,
		maxConcurrent: maxConcurrent,
		logger:        logger,
		now:           time.Now,
	}
}

// MatchesForDay aggregates the day's matches. The live provider is the
// primary source, fanned out per tracked league; the structured provider
// fills in only when the primary yields nothing. Both providers failing is
// reported as an error, distinct from a genuinely empty day.
func (s *FeedService) MatchesForDay(ctx context.Context, day time.Time) (MatchFeed, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.MatchesForDay")
	defer span.End()

	if day.IsZero() {
		day = s.now()
	}
	day = day.UTC().Truncate(24 * time.Hour)

	feed := MatchFeed{
		Date:          day,
		ByCompetition: make(map[string]int, len(s.leagues)),
	}

	primary, failedLeagues := s.collectScoreboards(ctx, day)
	feed.PrimaryFailed = len(s.leagues) > 0 && failedLeagues == len(s.leagues)

	seen := make(map[string]struct{}, len(primary))
	merged := make([]match.Match, 0, len(primary))
	for _, m := range primary {
		key := m.IdentityKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, m)
	}
	feed.PrimaryCount = len(merged)

	if feed.PrimaryCount == 0 {
		feed.FallbackUsed = true
		fallback, err := s.structured.MatchesByDateRange(ctx, day, day)
		if err != nil {
			if feed.PrimaryFailed {
				s.logger.ErrorContext(ctx, "all match sources failed", "date", day.Format("2006-01-02"), "error", err)
				return feed, fmt.Errorf("%w: all match sources failed for %s", ErrDependencyUnavailable, day.Format("2006-01-02"))
			}
			// Primary answered with an empty day; a broken fallback does
			// not turn that into an outage.
			s.logger.WarnContext(ctx, "fallback source failed after empty primary feed", "date", day.Format("2006-01-02"), "error", err)
		}
		for _, m := range fallback {
			key := m.IdentityKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, m)
			feed.FallbackAdded++
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].KickoffAt.Equal(merged[j].KickoffAt) {
			return merged[i].KickoffAt.Before(merged[j].KickoffAt)
		}
		if merged[i].Competition != merged[j].Competition {
			return merged[i].Competition < merged[j].Competition
		}
		return merged[i].HomeTeam < merged[j].HomeTeam
	})

	for _, m := range merged {
		label := m.Competition
		if label == "" {
			label = "Unknown"
		}
		feed.ByCompetition[label]++
	}

	feed.Matches = merged
	feed.TotalUnique = len(merged)

	s.logger.InfoContext(ctx, "match feed assembled",
		"date", day.Format("2006-01-02"),
		"primary_count", feed.PrimaryCount,
		"fallback_added", feed.FallbackAdded,
		"total_unique", feed.TotalUnique,
		"failed_leagues", failedLeagues,
	)

	return feed, nil
}

// collectScoreboards fans out one scoreboard call per tracked league over a
// bounded worker pool. Results keep the configured league order so the
// merged feed stays deterministic.
func (s *FeedService) collectScoreboards(ctx context.Context, day time.Time) ([]match.Match, int) {
	type leagueResult struct {
		matches []match.Match
		err     error
	}

	results := make([]leagueResult, len(s.leagues))

	poolSize := s.maxConcurrent
	if poolSize > len(s.leagues) {
		poolSize = len(s.leagues)
	}
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		// Degrade to sequential fetches rather than dropping the feed.
		s.logger.WarnContext(ctx, "worker pool unavailable, fetching scoreboards sequentially", "error", err)
		for i, league := range s.leagues {
			matches, fetchErr := s.live.Scoreboard(ctx, league.Code, league.Name, day)
			results[i] = leagueResult{matches: matches, err: fetchErr}
		}
	} else {
		defer pool.Release()

		var wg sync.WaitGroup
		for i, league := range s.leagues {
			i, league := i, league
			wg.Add(1)
			submitErr := pool.Submit(func() {
				defer wg.Done()
				matches, fetchErr := s.live.Scoreboard(ctx, league.Code, league.Name, day)
				results[i] = leagueResult{matches: matches, err: fetchErr}
			})
			if submitErr != nil {
				wg.Done()
				results[i] = leagueResult{err: submitErr}
			}
		}
		wg.Wait()
	}

	failed := 0
	out := make([]match.Match, 0, 64)
	for i, result := range results {
		if result.err != nil {
			failed++
			s.logger.WarnContext(ctx, "scoreboard fetch failed",
				"league", s.leagues[i].Code,
				"error", result.err,
			)
			continue
		}
		out = append(out, result.matches...)
	}

	return out, failed
}
