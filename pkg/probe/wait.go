package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultAttempts    = 30
	DefaultInterval    = 1 * time.Second
	DefaultPollTimeout = 1 * time.Second

	progressEvery = 5
)

type State int

const (
	StateWaiting State = iota
	StateReady
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateReady:
		return "ready"
	case StateTimedOut:
		return "timed out"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Waiter polls a base URL until it answers with 200 OK.
type Waiter struct {
	BaseURL  string
	Attempts int
	Interval time.Duration
	Timeout  time.Duration

	// Out receives "still waiting" progress lines; nil discards them.
	Out io.Writer

	client *http.Client
	state  State
}

func NewWaiter(baseURL string) *Waiter {
	return &Waiter{
		BaseURL:  baseURL,
		Attempts: DefaultAttempts,
		Interval: DefaultInterval,
		Timeout:  DefaultPollTimeout,
	}
}

func (w *Waiter) State() State {
	return w.state
}

// Budget is the total time the waiter is willing to wait.
func (w *Waiter) Budget() time.Duration {
	return time.Duration(w.Attempts) * w.Interval
}

// Wait blocks until the service is ready, the attempts are used up
// (ErrTimedOut) or ctx is cancelled. Failed attempts are never fatal on
// their own.
func (w *Waiter) Wait(ctx context.Context) error {
	w.state = StateWaiting
	w.client = &http.Client{Timeout: w.Timeout}

	out := w.Out
	if out == nil {
		out = io.Discard
	}

	for attempt := 1; attempt <= w.Attempts; attempt++ {
		err := w.poll(ctx)
		if err == nil {
			w.state = StateReady
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.WithFields(log.Fields{"kind": "probe", "url": w.BaseURL, "attempt": attempt, "err": err}).Debug("not ready yet")

		if attempt%progressEvery == 0 {
			fmt.Fprintf(out, "   Still waiting... (%s)\n", time.Duration(attempt)*w.Interval)
		}

		if attempt == w.Attempts {
			break
		}

		timer := time.NewTimer(w.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	w.state = StateTimedOut
	return ErrTimedOut
}

func (w *Waiter) poll(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.BaseURL, nil)
	if err != nil {
		return err
	}

	res, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("http service %q returned status %q", w.BaseURL, res.Status)
	}

	return nil
}
