package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	fetches         int
	errors          int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about backend fetches,
// scheduler ticks, and vote submissions. It is intentionally simple so it
// can be swapped for a real backend later.
type Recorder struct {
	mu       sync.Mutex
	stats    map[string]*sourceStats
	voteOK   int
	voteFail int
	otel     *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*sourceStats),
		otel:  otel,
	}
}

// RecordFetch increments counters for one backend call from the named
// source (scores, consensus, chat, team) and stores the last latency.
func (r *Recorder) RecordFetch(source string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(source)
	r.mu.Lock()
	stats.fetches++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordFetch(source, duration, err)
	}
}

// RecordSchedulerTick tracks one poll-scheduler cycle for a subscription.
func (r *Recorder) RecordSchedulerTick(name string, duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordSchedulerTick(name, duration, err)
}

// RecordVoteSubmission tracks a remote vote submission outcome.
func (r *Recorder) RecordVoteSubmission(err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if err != nil {
		r.voteFail++
	} else {
		r.voteOK++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordVoteSubmission(err)
	}
}

// Snapshot is a copy of the current stats for one fetch source.
type Snapshot struct {
	Fetches         int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.stats[source]; ok && stats != nil {
		return Snapshot{
			Fetches:         stats.fetches,
			Errors:          stats.errors,
			LastCallLatency: stats.lastCallLatency,
		}
	}
	return Snapshot{}
}

// Fetches returns the total calls recorded for a source.
func (r *Recorder) Fetches(source string) int {
	return r.Snapshot(source).Fetches
}

// FetchErrors returns the failed calls recorded for a source.
func (r *Recorder) FetchErrors(source string) int {
	return r.Snapshot(source).Errors
}

// VoteSubmissions returns the (succeeded, failed) remote vote counts.
func (r *Recorder) VoteSubmissions() (int, int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.voteOK, r.voteFail
}

func (r *Recorder) ensureStats(source string) *sourceStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[source]
	if !ok {
		stats = &sourceStats{}
		r.stats[source] = stats
	}
	return stats
}
