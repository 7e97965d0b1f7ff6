// Package rtclock models the real-time-clock collaborator: a wall-clock
// source that may or may not be running, plus the monotonic millisecond
// counter every record timestamp is relative to.
package rtclock

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Source reads the wall clock and counts milliseconds since the session
// process started. Like the RTC chip it stands in for, it reports
// not-running until it has been set once.
type Source struct {
	clk   clock.Clock
	start time.Time
	set   bool
}

// New creates a Source anchored at the clock's current instant. Pass
// clock.New() for the real clock or a clock.Mock to drive time in tests.
func New(clk clock.Clock) *Source {
	return &Source{clk: clk, start: clk.Now()}
}

// Running reports whether the clock has been set. An unset clock is not
// an error: the logger simply skips the time reference and keeps
// relative timestamps only.
func (s *Source) Running() bool {
	return s.set
}

// SetNow marks the clock as set at the current wall time.
func (s *Source) SetNow() {
	s.set = true
}

// UnixSeconds returns the current wall-clock time as seconds since the
// Unix epoch.
func (s *Source) UnixSeconds() uint32 {
	return uint32(s.clk.Now().Unix())
}

// Millis returns milliseconds elapsed since the Source was created,
// which is the session's timestamp origin.
func (s *Source) Millis() uint32 {
	return uint32(s.clk.Now().Sub(s.start).Milliseconds())
}
