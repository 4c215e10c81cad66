package probe

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	BaseURL        string
	Endpoints      []Endpoint
	Attempts       int
	Interval       time.Duration
	PollTimeout    time.Duration
	RequestTimeout time.Duration
}

func DefaultOptions(baseURL string) Options {
	return Options{
		BaseURL:        baseURL,
		Endpoints:      DefaultEndpoints(),
		Attempts:       DefaultAttempts,
		Interval:       DefaultInterval,
		PollTimeout:    DefaultPollTimeout,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// Run waits for the service to become ready and then verifies every
// endpoint. It returns ErrTimedOut when the service never became ready (no
// endpoint is checked in that case) and ErrChecksFailed when at least one
// check failed.
func Run(ctx context.Context, opts Options, r *Reporter) (Summary, error) {
	if len(opts.Endpoints) == 0 {
		return Summary{}, errors.New("no endpoints to verify")
	}

	waiter := NewWaiter(opts.BaseURL)
	waiter.Attempts = opts.Attempts
	waiter.Interval = opts.Interval
	waiter.Timeout = opts.PollTimeout
	waiter.Out = r.Progress()

	r.Banner()

	if err := waiter.Wait(ctx); err != nil {
		if errors.Is(err, ErrTimedOut) {
			if rerr := r.TimedOut(opts.BaseURL, waiter.Budget()); rerr != nil {
				log.WithError(rerr).Error("failed to print report")
			}
		}
		return Summary{}, err
	}

	r.Ready()

	verifier := NewVerifier(opts.BaseURL)
	verifier.Timeout = opts.RequestTimeout

	summary := verifier.Run(ctx, opts.Endpoints, r.Result)

	if err := r.Summary(summary, opts.BaseURL); err != nil {
		return summary, errors.Wrap(err, "failed to print summary")
	}

	if !summary.OK() {
		return summary, ErrChecksFailed
	}
	return summary, nil
}
