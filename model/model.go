// Package model holds the value types passed between the refresh pipeline
// stages: connection state, fetch outcomes, and the render-ready snapshot.
package model

import "time"

// LamportsPerSOL converts raw lamport balances to SOL.
const LamportsPerSOL = 1_000_000_000

// ConnectionState is the wireless link state as seen by the refresh loop.
type ConnectionState uint8

const (
	Disconnected ConnectionState = iota
	Connecting
	Connected
	// Degraded means the link is up but the last fetch failed.
	Degraded
)

func (s ConnectionState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Degraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// Snapshot is the decoded, render-ready view of remote chain state. It is
// immutable once built: each successful fetch replaces the whole value.
type Snapshot struct {
	PriceUSD   float64
	BalanceSOL float64
	Slot       uint64
	TPS        uint64
	Address    string
	FetchedAt  time.Time
}

// OutcomeKind tags the result of one fetch cycle.
type OutcomeKind uint8

const (
	OutcomeSuccess OutcomeKind = iota + 1
	// OutcomeTimeout: no response before the request deadline.
	OutcomeTimeout
	// OutcomeUnreachable: connection refused, DNS failure, link down.
	OutcomeUnreachable
	// OutcomeMalformed: a response arrived but did not decode into the
	// expected schema, or decoded values failed plausibility checks.
	OutcomeMalformed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeUnreachable:
		return "unreachable"
	case OutcomeMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one fetch. Data is set only for success;
// Reason is set only for malformed payloads.
type Outcome struct {
	Kind   OutcomeKind
	Data   *Snapshot
	Reason string
}

func Success(s Snapshot) Outcome {
	return Outcome{Kind: OutcomeSuccess, Data: &s}
}

func Timeout() Outcome { return Outcome{Kind: OutcomeTimeout} }

func Unreachable() Outcome { return Outcome{Kind: OutcomeUnreachable} }

func Malformed(reason string) Outcome {
	return Outcome{Kind: OutcomeMalformed, Reason: reason}
}

// LinkErrorKind tags wireless association failures.
type LinkErrorKind uint8

const (
	// AuthRejected is fatal until the device is reconfigured.
	AuthRejected LinkErrorKind = iota + 1
	LinkTimeout
	RadioFault
)

func (k LinkErrorKind) String() string {
	switch k {
	case AuthRejected:
		return "auth rejected"
	case LinkTimeout:
		return "link timeout"
	case RadioFault:
		return "radio fault"
	default:
		return "unknown"
	}
}

// LinkError wraps an association failure with its retry classification.
type LinkError struct {
	Kind LinkErrorKind
	Err  error
}

func (e *LinkError) Error() string {
	if e.Err != nil {
		return "link: " + e.Kind.String() + ": " + e.Err.Error()
	}
	return "link: " + e.Kind.String()
}

func (e *LinkError) Unwrap() error { return e.Err }

// Fatal reports whether retrying with the same configuration is pointless.
func (e *LinkError) Fatal() bool { return e.Kind == AuthRejected }
