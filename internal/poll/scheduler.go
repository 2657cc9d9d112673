package poll

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/statiq/gridiron-sync/internal/logging"
	"github.com/statiq/gridiron-sync/internal/metrics"
)

// FetchFunc performs one refresh cycle for a subscription.
type FetchFunc func(ctx context.Context) error

// LivenessFunc gates whether a subscription keeps polling. When it
// returns false the pending tick is skipped and the timer is torn down
// instead of idling.
type LivenessFunc func() bool

// Scheduler builds cadence-agnostic polling subscriptions. Consumers pick
// the interval (15s for live scores, 500ms for chat) and own the
// subscription lifetime: Cancel is mandatory on teardown, not optional
// cleanup, because a stale timer firing after its consumer is gone is the
// defect class this type exists to prevent.
type Scheduler struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New constructs a Scheduler. Logger and recorder may be nil.
func New(logger *slog.Logger, recorder *metrics.Recorder) *Scheduler {
	return &Scheduler{logger: logger, metrics: recorder}
}

// Subscription is one polling loop. Fetches within a subscription are
// strictly sequential; a tick never starts while a prior fetch is still
// outstanding.
type Subscription struct {
	name     string
	interval time.Duration
	fetch    FetchFunc
	alive    LivenessFunc
	logger   *slog.Logger
	metrics  *metrics.Recorder

	ticker   *time.Ticker
	ticks    <-chan time.Time // overrides ticker.C when set (tests)
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
}

// Subscribe prepares a subscription without starting it.
func (s *Scheduler) Subscribe(name string, interval time.Duration, fetch FetchFunc, alive LivenessFunc) *Subscription {
	return &Subscription{
		name:     name,
		interval: interval,
		fetch:    fetch,
		alive:    alive,
		logger:   s.logger,
		metrics:  s.metrics,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start fetches once immediately, then re-fetches every interval while
// the liveness predicate holds. Fetch errors are reported but do not stop
// the loop; only cancellation, context expiry, or a false predicate do.
func (sub *Subscription) Start(ctx context.Context) {
	sub.startMu.Lock()
	if sub.started {
		sub.startMu.Unlock()
		return
	}
	sub.started = true
	sub.startMu.Unlock()

	ticks := sub.ticks
	if ticks == nil {
		sub.ticker = time.NewTicker(sub.interval)
		ticks = sub.ticker.C
	}

	go func() {
		defer close(sub.stopped)
		defer sub.stopTicker()

		logging.Info(sub.logger, "poll subscription started",
			"subscription", sub.name,
			logging.FieldDurationMS, sub.interval.Milliseconds(),
		)

		sub.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				logging.Info(sub.logger, "poll subscription stopped", "subscription", sub.name)
				return
			case <-sub.done:
				logging.Info(sub.logger, "poll subscription cancelled", "subscription", sub.name)
				return
			case <-ticks:
				// A cancel racing a tick must win: re-check before fetching.
				select {
				case <-sub.done:
					logging.Info(sub.logger, "poll subscription cancelled", "subscription", sub.name)
					return
				case <-ctx.Done():
					return
				default:
				}
				if sub.alive != nil && !sub.alive() {
					logging.Info(sub.logger, "poll subscription torn down, liveness lost", "subscription", sub.name)
					return
				}
				sub.fetchOnce(ctx)
			}
		}
	}()
}

// Cancel stops the subscription. It is idempotent and safe to call from
// any goroutine; no fetch is invoked after Cancel returns and the loop
// has drained.
func (sub *Subscription) Cancel() {
	sub.stopOnce.Do(func() {
		close(sub.done)
		sub.stopTicker()
	})
}

// Done is closed once the polling loop has fully exited.
func (sub *Subscription) Done() <-chan struct{} {
	return sub.stopped
}

func (sub *Subscription) fetchOnce(ctx context.Context) {
	start := time.Now()
	err := sub.fetch(ctx)
	if sub.metrics != nil {
		sub.metrics.RecordSchedulerTick(sub.name, time.Since(start), err)
	}
	if err != nil {
		// Transient failures must not kill live updates; next tick retries.
		logging.Error(sub.logger, "poll fetch failed", err,
			"subscription", sub.name,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
	}
}

func (sub *Subscription) stopTicker() {
	if sub.ticker != nil {
		sub.ticker.Stop()
	}
}
