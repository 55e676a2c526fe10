// Package relay runs the ask → save → derive → save → sleep loop.
package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/minhyannv/askloop/pkg/chat"
	configpkg "github.com/minhyannv/askloop/pkg/config"
	loggerpkg "github.com/minhyannv/askloop/pkg/logger"
	"github.com/minhyannv/askloop/pkg/question"
	"github.com/minhyannv/askloop/pkg/webhook"
)

// State is a step of the loop state machine.
type State int

const (
	StateStart State = iota
	StateIterating
	StateDoneNoSeed
	StateDoneRequestFailed
	StateDoneExtractFailed
	StateCanceled
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateIterating:
		return "iterating"
	case StateDoneNoSeed:
		return "done_no_seed"
	case StateDoneRequestFailed:
		return "done_request_failed"
	case StateDoneExtractFailed:
		return "done_extract_failed"
	case StateCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result describes how a loop ended.
type Result struct {
	State State
	// Iterations counts the iterations that produced a new question.
	Iterations int
	RunID      string
	RunDir     string
}

// Loop holds the loop's collaborators. It is not safe for concurrent use.
type Loop struct {
	asker    Asker
	notifier Notifier

	logger loggerpkg.Logger
	now    func() time.Time
	sleep  SleepFunc
	delay  func() time.Duration
	open   OpenFunc
	seed   func() (string, error)
}

// New builds a Loop from cfg. Defaults read the seed file, write under
// cfg.LogsDir and sleep a uniform delay between cfg.MinDelay and cfg.MaxDelay.
func New(cfg configpkg.Config, asker Asker, notifier Notifier, opts ...Option) (*Loop, error) {
	if asker == nil {
		return nil, errors.New("asker is required")
	}
	if notifier == nil {
		return nil, errors.New("notifier is required")
	}
	cfg = configpkg.Normalize(cfg)

	deps := loopDeps{
		logger: loggerpkg.NopLogger{},
		now:    time.Now,
		sleep:  Sleep,
		delay:  UniformDelay(cfg.MinDelay, cfg.MaxDelay),
		open:   FSStore(cfg.LogsDir),
		seed: func() (string, error) {
			return question.ReadSeed(cfg.SeedFile)
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}

	return &Loop{
		asker:    asker,
		notifier: notifier,
		logger:   deps.logger,
		now:      deps.now,
		sleep:    deps.sleep,
		delay:    deps.delay,
		open:     deps.open,
		seed:     deps.seed,
	}, nil
}

// Run drives the loop until a terminal state. It has no iteration cap.
// The returned error is non-nil only when the run directory cannot be created.
func (l *Loop) Run(ctx context.Context) (Result, error) {
	res := Result{State: StateStart}

	current, err := l.seed()
	if err != nil {
		l.logger.Error("no initial question to process", loggerpkg.Fields{"error": err.Error()})
		l.notifier.Notify(ctx, webhook.Notification{
			Title:       "Error",
			Description: "No initial question to process.",
			Color:       webhook.ColorFailure,
			Footer:      "Process failed to start",
		})
		res.State = StateDoneNoSeed
		return res, nil
	}

	runStore, info, err := l.open(l.now())
	if err != nil {
		l.logger.Error("failed to create run directory", loggerpkg.Fields{"error": err.Error()})
		l.notifier.Notify(ctx, webhook.Notification{
			Title:       "Error",
			Description: "Could not create the run directory.",
			Color:       webhook.ColorFailure,
			Footer:      "Process failed to start",
		})
		return res, fmt.Errorf("open run: %w", err)
	}
	res.RunID = info.ID
	res.RunDir = info.Dir
	l.logger.Info("run started", loggerpkg.Fields{"run_id": info.ID, "dir": info.Dir, "question": current})

	l.notifier.Notify(ctx, webhook.Notification{
		Title:       "Initial Question",
		Description: current,
		Color:       webhook.ColorStart,
		Footer:      "Starting conversation...",
	})

	res.State = StateIterating
	for n := 1; ; n++ {
		completion, err := l.asker.Ask(ctx, current)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Warn("run canceled", loggerpkg.Fields{"run_id": info.ID, "iteration": n})
				res.State = StateCanceled
				return res, nil
			}
			l.logger.Error("failed to get a response", loggerpkg.Fields{
				"run_id":    info.ID,
				"iteration": n,
				"error":     err.Error(),
			})
			l.notifier.Notify(ctx, webhook.Notification{
				Title:       "Process Error",
				Description: fmt.Sprintf("Failed to get a response at iteration %d", n),
				Color:       webhook.ColorFailure,
				Footer:      "Process failed",
			})
			res.State = StateDoneRequestFailed
			return res, nil
		}

		l.recordAnswer(ctx, runStore, n, completion)

		next, err := question.FromReply(completion)
		if err != nil {
			l.logger.Error("failed to extract a new question", loggerpkg.Fields{
				"run_id":    info.ID,
				"iteration": n,
				"error":     err.Error(),
			})
			l.notifier.Notify(ctx, webhook.Notification{
				Title:       "Process Finished",
				Description: "Could not extract a new question.",
				Color:       webhook.ColorFailure,
				Footer:      "Process ended",
			})
			res.State = StateDoneExtractFailed
			return res, nil
		}

		// The derived question is used next even if saving it fails.
		current = next
		res.Iterations = n
		l.recordQuestion(ctx, runStore, n, current)

		delay := l.delay()
		l.logger.Info("sleeping", loggerpkg.Fields{"seconds": int(delay / time.Second)})
		if err := l.sleep(ctx, delay); err != nil {
			l.logger.Warn("run canceled", loggerpkg.Fields{"run_id": info.ID, "iteration": n})
			res.State = StateCanceled
			return res, nil
		}
	}
}

func (l *Loop) recordAnswer(ctx context.Context, runStore RunStore, n int, completion chat.Completion) {
	answer, err := completion.Answer()
	if err != nil {
		l.logger.Error("failed to save response", loggerpkg.Fields{"iteration": n, "error": err.Error()})
		return
	}

	footer := l.save(n, "response", func() (string, error) {
		return runStore.SaveAnswer(n, answer)
	})
	l.notifier.Notify(ctx, webhook.Notification{
		Title:       fmt.Sprintf("Answer #%d", n),
		Description: answer,
		Color:       webhook.ColorAnswer,
		Footer:      footer,
	})
}

func (l *Loop) recordQuestion(ctx context.Context, runStore RunStore, n int, q string) {
	footer := l.save(n, "question", func() (string, error) {
		return runStore.SaveQuestion(n, q)
	})
	l.notifier.Notify(ctx, webhook.Notification{
		Title:       fmt.Sprintf("Question #%d", n),
		Description: q,
		Color:       webhook.ColorQuestion,
		Footer:      footer,
	})
}

// save runs write and returns the notification footer describing the outcome.
func (l *Loop) save(n int, kind string, write func() (string, error)) string {
	path, err := write()
	if err != nil {
		l.logger.Error("failed to save "+kind, loggerpkg.Fields{"iteration": n, "error": err.Error()})
		return "Not saved: " + err.Error()
	}
	l.logger.Info(kind+" saved", loggerpkg.Fields{"iteration": n, "path": path})
	return "Saved to: " + path
}
