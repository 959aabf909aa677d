package refresh

import (
	"context"
	"testing"
	"time"

	"solpanel/hal"
	"solpanel/model"
)

// fakeLink scripts EnsureConnected results and mirrors the state transitions
// of the real link.
type fakeLink struct {
	errs  []*model.LinkError
	calls int
	state model.ConnectionState
}

func (l *fakeLink) EnsureConnected() *model.LinkError {
	var e *model.LinkError
	if l.calls < len(l.errs) {
		e = l.errs[l.calls]
	}
	l.calls++
	if e != nil {
		l.state = model.Disconnected
		return e
	}
	if l.state != model.Degraded {
		l.state = model.Connected
	}
	return nil
}

func (l *fakeLink) State() model.ConnectionState { return l.state }

func (l *fakeLink) MarkDegraded() {
	if l.state == model.Connected {
		l.state = model.Degraded
	}
}

func (l *fakeLink) MarkHealthy() {
	if l.state == model.Degraded {
		l.state = model.Connected
	}
}

type fakeFetcher struct {
	outcomes []model.Outcome
	calls    int
}

func (f *fakeFetcher) Fetch(ctx context.Context) model.Outcome {
	i := f.calls
	f.calls++
	if i >= len(f.outcomes) {
		i = len(f.outcomes) - 1
	}
	return f.outcomes[i]
}

// renderCall records one Render invocation.
type renderCall struct {
	current *model.Snapshot
	conn    model.ConnectionState
	age     time.Duration
}

type fakeRenderer struct {
	calls      []renderCall
	fatalCalls int
}

func (r *fakeRenderer) Render(current *model.Snapshot, conn model.ConnectionState, age time.Duration) *hal.Frame {
	r.calls = append(r.calls, renderCall{current: current, conn: conn, age: age})
	return hal.NewFrame(8, 8)
}

func (r *fakeRenderer) Fatal(title, detail string) *hal.Frame {
	r.fatalCalls++
	return hal.NewFrame(8, 8)
}

type fakeDisplay struct {
	commits int
}

func (d *fakeDisplay) Size() (int, int)          { return 8, 8 }
func (d *fakeDisplay) Commit(f *hal.Frame) error { d.commits++; return nil }

type nopLED struct{}

func (nopLED) High() {}
func (nopLED) Low()  {}

func newTestOrch(lnk Link, f Fetcher, r Renderer, d *fakeDisplay, interval time.Duration) *Orchestrator {
	return New(lnk, f, r, d, nopLED{}, nil, Options{
		Interval: interval,
		Now:      func() time.Time { return time.Unix(1700000000, 0) },
	})
}

func success(slot uint64) model.Outcome {
	return model.Success(model.Snapshot{
		PriceUSD:   123.45,
		BalanceSOL: 1,
		Slot:       slot,
		TPS:        10,
		FetchedAt:  time.Unix(1700000000, 0),
	})
}

func TestSuccessCycle(t *testing.T) {
	lnk := &fakeLink{}
	fet := &fakeFetcher{outcomes: []model.Outcome{success(999)}}
	ren := &fakeRenderer{}
	disp := &fakeDisplay{}
	o := newTestOrch(lnk, fet, ren, disp, time.Second)

	delay := o.RunCycle(context.Background())
	if delay != time.Second {
		t.Fatalf("delay = %v, want base interval", delay)
	}
	if o.Current() == nil || o.Current().Slot != 999 {
		t.Fatalf("current = %+v", o.Current())
	}
	if len(ren.calls) != 1 {
		t.Fatalf("render calls = %d, want 1", len(ren.calls))
	}
	if ren.calls[0].conn != model.Connected {
		t.Fatalf("rendered conn = %v, want connected", ren.calls[0].conn)
	}
	if disp.commits != 1 {
		t.Fatalf("commits = %d, want 1", disp.commits)
	}
}

func TestMalformedKeepsPreviousSnapshot(t *testing.T) {
	lnk := &fakeLink{}
	fet := &fakeFetcher{outcomes: []model.Outcome{
		success(999),
		model.Malformed("bad schema"),
	}}
	ren := &fakeRenderer{}
	disp := &fakeDisplay{}
	o := newTestOrch(lnk, fet, ren, disp, time.Second)

	o.RunCycle(context.Background())
	before := o.Current()

	o.RunCycle(context.Background())
	if o.Current() != before {
		t.Fatal("malformed payload overwrote the current snapshot")
	}
	last := ren.calls[len(ren.calls)-1]
	if last.current != before {
		t.Fatal("second render did not show the previous snapshot")
	}
	if last.conn != model.Degraded {
		t.Fatalf("second render conn = %v, want degraded", last.conn)
	}
	if o.Failures() != 1 {
		t.Fatalf("failures = %d, want 1", o.Failures())
	}
}

func TestBackoffMonotonicThenReset(t *testing.T) {
	// Three timeouts, then a success: delays must strictly increase, then
	// snap back to the base interval.
	lnk := &fakeLink{}
	fet := &fakeFetcher{outcomes: []model.Outcome{
		model.Timeout(),
		model.Timeout(),
		model.Timeout(),
		success(999),
	}}
	ren := &fakeRenderer{}
	disp := &fakeDisplay{}
	o := newTestOrch(lnk, fet, ren, disp, time.Second)

	var delays []time.Duration
	for i := 0; i < 4; i++ {
		delays = append(delays, o.RunCycle(context.Background()))
	}

	if !(delays[0] < delays[1] && delays[1] < delays[2]) {
		t.Fatalf("backoff not strictly increasing: %v", delays[:3])
	}
	if delays[3] != time.Second {
		t.Fatalf("delay after success = %v, want base interval", delays[3])
	}
	if o.Failures() != 0 {
		t.Fatalf("failures after success = %d, want 0", o.Failures())
	}

	// Cycles 1-3 rendered without data in a non-connected state; cycle 4
	// shows the decoded values while connected.
	for i := 0; i < 3; i++ {
		if ren.calls[i].current != nil {
			t.Fatalf("cycle %d rendered data before any success", i+1)
		}
		if ren.calls[i].conn == model.Connected {
			t.Fatalf("cycle %d rendered as connected after a failed fetch", i+1)
		}
	}
	if ren.calls[3].conn != model.Connected {
		t.Fatalf("cycle 4 conn = %v, want connected", ren.calls[3].conn)
	}
	if ren.calls[3].current == nil || ren.calls[3].current.PriceUSD != 123.45 {
		t.Fatalf("cycle 4 snapshot = %+v", ren.calls[3].current)
	}
}

func TestBackoffCapped(t *testing.T) {
	lnk := &fakeLink{}
	fet := &fakeFetcher{outcomes: []model.Outcome{model.Unreachable()}}
	ren := &fakeRenderer{}
	disp := &fakeDisplay{}
	o := New(lnk, fet, ren, disp, nopLED{}, nil, Options{
		Interval: time.Second,
		MaxDelay: 4 * time.Second,
	})

	var last time.Duration
	for i := 0; i < 10; i++ {
		last = o.RunCycle(context.Background())
		if last > 4*time.Second {
			t.Fatalf("delay %v exceeds cap", last)
		}
	}
	if last != 4*time.Second {
		t.Fatalf("delay = %v, want cap after many failures", last)
	}
}

func TestFatalAuthRejectLatches(t *testing.T) {
	lnk := &fakeLink{errs: []*model.LinkError{{Kind: model.AuthRejected}}}
	fet := &fakeFetcher{outcomes: []model.Outcome{success(1)}}
	ren := &fakeRenderer{}
	disp := &fakeDisplay{}
	o := newTestOrch(lnk, fet, ren, disp, time.Second)

	const cycles = 4
	for i := 0; i < cycles; i++ {
		if delay := o.RunCycle(context.Background()); delay != time.Second {
			t.Fatalf("fatal-mode delay = %v, want base interval", delay)
		}
	}

	if !o.Fatal() {
		t.Fatal("fatal latch not set")
	}
	if fet.calls != 0 {
		t.Fatalf("fetch called %d times after fatal link error", fet.calls)
	}
	if ren.fatalCalls != cycles {
		t.Fatalf("fatal renders = %d, want one per cycle", ren.fatalCalls)
	}
	if disp.commits != cycles {
		t.Fatalf("commits = %d, want exactly one per cycle", disp.commits)
	}
	// Only the first cycle touched the link; fatal mode stops reconnects.
	if lnk.calls != 1 {
		t.Fatalf("link calls = %d, want 1", lnk.calls)
	}
}

func TestRetryableLinkFailureSkipsFetch(t *testing.T) {
	lnk := &fakeLink{errs: []*model.LinkError{{Kind: model.RadioFault}}}
	fet := &fakeFetcher{outcomes: []model.Outcome{success(1)}}
	ren := &fakeRenderer{}
	disp := &fakeDisplay{}
	o := newTestOrch(lnk, fet, ren, disp, time.Second)

	delay := o.RunCycle(context.Background())
	if fet.calls != 0 {
		t.Fatal("fetch ran despite link failure")
	}
	if len(ren.calls) != 1 || ren.calls[0].conn != model.Disconnected {
		t.Fatalf("render calls = %+v, want one disconnected render", ren.calls)
	}
	if delay <= time.Second {
		t.Fatalf("delay = %v, want backoff above base", delay)
	}

	// Next cycle recovers and fetches.
	o.RunCycle(context.Background())
	if fet.calls != 1 {
		t.Fatalf("fetch calls after recovery = %d, want 1", fet.calls)
	}
	if o.Failures() != 0 {
		t.Fatalf("failures after recovery = %d, want 0", o.Failures())
	}
}

func TestEveryCycleRendersOnce(t *testing.T) {
	lnk := &fakeLink{errs: []*model.LinkError{nil, {Kind: model.RadioFault}, nil}}
	fet := &fakeFetcher{outcomes: []model.Outcome{
		success(1),
		model.Malformed("x"),
		model.Timeout(),
	}}
	ren := &fakeRenderer{}
	disp := &fakeDisplay{}
	o := newTestOrch(lnk, fet, ren, disp, time.Second)

	const cycles = 6
	for i := 0; i < cycles; i++ {
		o.RunCycle(context.Background())
	}
	if disp.commits != cycles {
		t.Fatalf("commits = %d, want %d", disp.commits, cycles)
	}
}

func TestRenderAgeUsesFreshnessTimestamp(t *testing.T) {
	fetchedAt := time.Unix(1700000000, 0)
	now := fetchedAt.Add(42 * time.Second)

	lnk := &fakeLink{}
	fet := &fakeFetcher{outcomes: []model.Outcome{
		model.Success(model.Snapshot{Slot: 1, FetchedAt: fetchedAt}),
		model.Unreachable(),
	}}
	ren := &fakeRenderer{}
	disp := &fakeDisplay{}
	o := New(lnk, fet, ren, disp, nopLED{}, nil, Options{
		Interval: time.Second,
		Now:      func() time.Time { return now },
	})

	o.RunCycle(context.Background())
	o.RunCycle(context.Background())
	last := ren.calls[len(ren.calls)-1]
	if last.age != 42*time.Second {
		t.Fatalf("age = %v, want 42s", last.age)
	}
}
