// Package refresh drives the top-level device loop: ensure the link is up,
// fetch remote state, render exactly one frame, sleep. Cycles run strictly
// sequentially; retryable failures are absorbed into backoff state and a
// degraded render, never propagated.
package refresh

import (
	"context"
	"time"

	"solpanel/hal"
	"solpanel/model"
)

// Link is the slice of the network link the orchestrator needs.
type Link interface {
	EnsureConnected() *model.LinkError
	State() model.ConnectionState
	MarkDegraded()
	MarkHealthy()
}

// Fetcher performs one remote retrieval and classifies the result.
type Fetcher interface {
	Fetch(ctx context.Context) model.Outcome
}

// Renderer composes frames; see package render.
type Renderer interface {
	Render(current *model.Snapshot, conn model.ConnectionState, age time.Duration) *hal.Frame
	Fatal(title, detail string) *hal.Frame
}

// Options tunes cycle timing. Zero values get sensible defaults from New.
type Options struct {
	// Interval is the base sleep between cycles.
	Interval time.Duration
	// MaxDelay caps the backoff. Defaults to 8x Interval.
	MaxDelay time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Orchestrator owns the only mutable state that crosses cycle boundaries:
// the current snapshot, the failure counter, and the fatal-error latch.
// It is single-threaded; no locking is required or provided.
type Orchestrator struct {
	link     Link
	fetcher  Fetcher
	renderer Renderer
	display  hal.Display
	led      hal.LED
	log      hal.Logger

	interval time.Duration
	maxDelay time.Duration
	now      func() time.Time

	current  *model.Snapshot
	failures int
	fatal    *model.LinkError
}

func New(link Link, fetcher Fetcher, renderer Renderer, display hal.Display, led hal.LED, log hal.Logger, opts Options) *Orchestrator {
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Second
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 8 * opts.Interval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Orchestrator{
		link:     link,
		fetcher:  fetcher,
		renderer: renderer,
		display:  display,
		led:      led,
		log:      log,
		interval: opts.Interval,
		maxDelay: opts.MaxDelay,
		now:      opts.Now,
	}
}

// Run loops cycles until the context is canceled.
func (o *Orchestrator) Run(ctx context.Context) error {
	for {
		delay := o.RunCycle(ctx)
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// RunCycle executes exactly one cycle and returns the delay to sleep before
// the next one. Every path renders exactly once.
func (o *Orchestrator) RunCycle(ctx context.Context) time.Duration {
	o.led.High()
	defer o.led.Low()

	if o.fatal != nil {
		// Terminal error-display mode: no reconnects, no fetches.
		o.commit(o.fatalFrame())
		return o.interval
	}

	if lerr := o.link.EnsureConnected(); lerr != nil {
		if lerr.Fatal() {
			o.fatal = lerr
			o.logLine("link: fatal: " + lerr.Error())
			o.commit(o.fatalFrame())
			return o.interval
		}
		o.failures++
		o.logLine("link: " + lerr.Error() + ", retrying with backoff")
		o.renderCurrent()
		return o.delay()
	}

	fetchCtx, cancel := context.WithTimeout(ctx, o.interval)
	outcome := o.fetcher.Fetch(fetchCtx)
	cancel()

	switch outcome.Kind {
	case model.OutcomeSuccess:
		o.current = outcome.Data
		o.failures = 0
		o.link.MarkHealthy()
	case model.OutcomeMalformed:
		o.failures++
		o.link.MarkDegraded()
		o.logLine("fetch: malformed payload: " + outcome.Reason)
	default:
		o.failures++
		o.link.MarkDegraded()
		o.logLine("fetch: " + outcome.Kind.String())
	}

	o.renderCurrent()
	return o.delay()
}

// Current returns the snapshot shown on screen, nil before the first success.
func (o *Orchestrator) Current() *model.Snapshot { return o.current }

// Failures returns the consecutive-failure counter feeding the backoff.
func (o *Orchestrator) Failures() int { return o.failures }

// Fatal reports whether the loop latched into error-display mode.
func (o *Orchestrator) Fatal() bool { return o.fatal != nil }

func (o *Orchestrator) renderCurrent() {
	var age time.Duration
	if o.current != nil {
		age = o.now().Sub(o.current.FetchedAt)
	}
	o.commit(o.renderer.Render(o.current, o.link.State(), age))
}

func (o *Orchestrator) fatalFrame() *hal.Frame {
	return o.renderer.Fatal("WIFI AUTH FAILED", "CHECK CREDENTIALS")
}

func (o *Orchestrator) commit(f *hal.Frame) {
	if err := o.display.Commit(f); err != nil {
		o.logLine("display: " + err.Error())
	}
}

// delay maps the failure counter onto a doubling delay capped at maxDelay,
// back to the base interval as soon as anything succeeds.
func (o *Orchestrator) delay() time.Duration {
	d := o.interval
	for i := 0; i < o.failures && d < o.maxDelay; i++ {
		d *= 2
	}
	if d > o.maxDelay {
		d = o.maxDelay
	}
	return d
}

func (o *Orchestrator) logLine(s string) {
	if o.log != nil {
		o.log.WriteLineString(s)
	}
}
