package relay

import (
	"context"
	"math/rand"
	"time"

	"github.com/minhyannv/askloop/pkg/chat"
	loggerpkg "github.com/minhyannv/askloop/pkg/logger"
	"github.com/minhyannv/askloop/pkg/store"
	"github.com/minhyannv/askloop/pkg/webhook"
)

// Asker sends one question to the chat endpoint.
type Asker interface {
	Ask(ctx context.Context, question string) (chat.Completion, error)
}

// Notifier delivers a progress notification. Implementations swallow
// their own delivery errors.
type Notifier interface {
	Notify(ctx context.Context, n webhook.Notification)
}

// RunStore persists one run's files.
type RunStore interface {
	SaveAnswer(n int, answer string) (string, error)
	SaveQuestion(n int, question string) (string, error)
}

// RunInfo identifies an opened run.
type RunInfo struct {
	ID  string
	Dir string
}

// OpenFunc creates the run directory for a loop started at now.
type OpenFunc func(now time.Time) (RunStore, RunInfo, error)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option configures optional runtime dependencies for Loop.
type Option func(*loopDeps)

type loopDeps struct {
	logger loggerpkg.Logger
	now    func() time.Time
	sleep  SleepFunc
	delay  func() time.Duration
	open   OpenFunc
	seed   func() (string, error)
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *loopDeps) {
		d.logger = loggerpkg.OrNop(l)
	}
}

// WithClock overrides the time source used to name the run directory.
func WithClock(now func() time.Time) Option {
	return func(d *loopDeps) {
		d.now = now
	}
}

// WithSleep overrides the inter-iteration wait.
func WithSleep(sleep SleepFunc) Option {
	return func(d *loopDeps) {
		d.sleep = sleep
	}
}

// WithDelay overrides the delay picker.
func WithDelay(delay func() time.Duration) Option {
	return func(d *loopDeps) {
		d.delay = delay
	}
}

// WithStore overrides how the run directory is opened.
func WithStore(open OpenFunc) Option {
	return func(d *loopDeps) {
		d.open = open
	}
}

// WithSeed overrides where the initial question comes from.
func WithSeed(seed func() (string, error)) Option {
	return func(d *loopDeps) {
		d.seed = seed
	}
}

// FSStore opens run directories under logsDir.
func FSStore(logsDir string) OpenFunc {
	return func(now time.Time) (RunStore, RunInfo, error) {
		run, err := store.Open(logsDir, now)
		if err != nil {
			return nil, RunInfo{}, err
		}
		return run, RunInfo{ID: run.ID, Dir: run.Dir}, nil
	}
}

// UniformDelay picks a whole number of seconds uniformly in [minDelay, maxDelay].
func UniformDelay(minDelay, maxDelay time.Duration) func() time.Duration {
	lo := int64(minDelay / time.Second)
	hi := int64(maxDelay / time.Second)
	if hi < lo {
		lo, hi = hi, lo
	}
	return func() time.Duration {
		return time.Duration(lo+rand.Int63n(hi-lo+1)) * time.Second
	}
}

// Sleep waits for d unless ctx is canceled first.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
