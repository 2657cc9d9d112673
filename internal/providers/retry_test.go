package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	domaingames "github.com/statiq/gridiron-sync/internal/domain/games"
)

type flakyProvider struct {
	calls    int
	failures int
	err      error
	games    []domaingames.Game
}

func (f *flakyProvider) FetchGames(ctx context.Context, classification string) ([]domaingames.Game, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return f.games, nil
}

func TestRetryingProviderRecovers(t *testing.T) {
	inner := &flakyProvider{
		failures: 2,
		err:      errors.New("connection reset"),
		games:    []domaingames.Game{{ID: "g1", Status: domaingames.StatusUpcoming, Upcoming: &domaingames.UpcomingState{Date: "2025-10-03"}}},
	}

	p := NewRetryingScoreProvider(inner, nil, 3, time.Millisecond)
	games, err := p.FetchGames(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 1 || inner.calls != 3 {
		t.Fatalf("expected recovery on third call, calls=%d games=%d", inner.calls, len(games))
	}
}

func TestRetryingProviderGivesUp(t *testing.T) {
	inner := &flakyProvider{failures: 10, err: errors.New("connection reset")}

	p := NewRetryingScoreProvider(inner, nil, 3, time.Millisecond)
	if _, err := p.FetchGames(context.Background(), ""); err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if inner.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", inner.calls)
	}
}

func TestRetryingProviderStopsOnPermanentError(t *testing.T) {
	inner := &flakyProvider{failures: 10, err: &StatusError{Endpoint: "/scores", Status: 404}}

	p := NewRetryingScoreProvider(inner, nil, 3, time.Millisecond)
	if _, err := p.FetchGames(context.Background(), ""); err == nil {
		t.Fatal("expected error")
	}
	if inner.calls != 1 {
		t.Fatalf("expected a single attempt for a non-transient error, got %d", inner.calls)
	}
}

func TestIsTransient(t *testing.T) {
	if IsTransient(nil) {
		t.Fatal("nil is not transient")
	}
	if IsTransient(ErrChatClosed) {
		t.Fatal("policy closure is not transient")
	}
	if !IsTransient(&StatusError{Status: 503}) {
		t.Fatal("503 should be transient")
	}
	if !IsTransient(&StatusError{Status: 429}) {
		t.Fatal("429 should be transient")
	}
	if IsTransient(&StatusError{Status: 403}) {
		t.Fatal("403 should not be transient")
	}
	if !IsTransient(errors.New("dial tcp: timeout")) {
		t.Fatal("network errors should be transient")
	}
}
