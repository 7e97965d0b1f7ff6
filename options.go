package sdlog

import (
	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"

	"github.com/stemsat/sdlog/internal/rtclock"
	"github.com/stemsat/sdlog/internal/storage"
)

type Option func(*Logger)

// WithDevice swaps the storage device the logger writes to. The default
// is a DiskDevice rooted at the current directory.
func WithDevice(dev storage.Device) Option {
	return func(l *Logger) {
		l.dev = dev
	}
}

// WithClock swaps the clock behind the RTC source. Pass a clock.Mock to
// drive time in tests.
func WithClock(clk clock.Clock) Option {
	return func(l *Logger) {
		l.rtc = rtclock.New(clk)
	}
}

// WithLogger swaps the diagnostic logger. Diagnostics are a side
// channel only; no API result depends on them.
func WithLogger(logger golog.Logger) Option {
	return func(l *Logger) {
		l.log = logger
	}
}

// WithMemoryGuard installs the device-specific free-memory probe
// consulted by Begin before it touches the storage device.
func WithMemoryGuard(freeBytes func() int) Option {
	return func(l *Logger) {
		l.memFree = freeBytes
	}
}
