package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	domaingames "github.com/statiq/gridiron-sync/internal/domain/games"
	"github.com/statiq/gridiron-sync/internal/logging"
)

const (
	defaultRetryAttempts   = 3
	defaultInitialInterval = 200 * time.Millisecond
)

// retryingScoreProvider wraps a ScoreProvider with exponential backoff.
// Only score fetches are wrapped; vote, consensus, and chat calls
// self-heal on their next poll tick instead of retrying inline.
type retryingScoreProvider struct {
	inner           ScoreProvider
	logger          *slog.Logger
	maxAttempts     uint64
	initialInterval time.Duration
}

// NewRetryingScoreProvider wraps the given provider with retries. If
// maxAttempts or initialInterval are <= 0, defaults are used.
func NewRetryingScoreProvider(inner ScoreProvider, logger *slog.Logger, maxAttempts int, initialInterval time.Duration) ScoreProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initialInterval <= 0 {
		initialInterval = defaultInitialInterval
	}
	return &retryingScoreProvider{
		inner:           inner,
		logger:          logger,
		maxAttempts:     uint64(maxAttempts),
		initialInterval: initialInterval,
	}
}

func (r *retryingScoreProvider) FetchGames(ctx context.Context, classification string) ([]domaingames.Game, error) {
	var result []domaingames.Game
	attempt := 0

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.initialInterval

	operation := func() error {
		attempt++
		games, err := r.inner.FetchGames(ctx, classification)
		if err == nil {
			result = games
			return nil
		}
		if !IsTransient(err) {
			return backoff.Permanent(err)
		}
		logging.Warn(r.logger, "score fetch retry", "attempt", attempt, "error", err)
		return err
	}

	policy := backoff.WithMaxRetries(backoff.WithContext(bo, ctx), r.maxAttempts-1)
	if err := backoff.Retry(operation, policy); err != nil {
		logging.Warn(r.logger, "score fetch failed", "attempts", attempt, "error", err)
		return nil, err
	}
	return result, nil
}
