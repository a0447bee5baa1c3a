package usecase

import (
	"errors"
	"fmt"

	"github.com/matchscope/matchscope-api/internal/providers"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// mapProviderFailure folds a classified provider failure into the service
// sentinels the HTTP boundary understands. Rate-limited and malformed
// upstreams both surface as a dependency outage: the caller can retry
// later either way.
func mapProviderFailure(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, providers.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, providers.ErrRateLimited),
		errors.Is(err, providers.ErrMalformed),
		errors.Is(err, providers.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	default:
		return err
	}
}
