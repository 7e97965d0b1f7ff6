// Package session owns the one open log file of a logging session: it
// claims the first free 8.3 filename slot under the log directory and
// provides the only write path the rest of the system uses.
package session

import (
	"errors"
	"fmt"

	"github.com/edaniels/golog"

	"github.com/stemsat/sdlog/internal/storage"
)

const (
	// OutputBufSize matches the SD driver's block cache. One byte is
	// reserved so a single write can never fill the buffer completely.
	OutputBufSize = 512

	// MaxWriteBytes is the largest chunk a single WriteBytes call
	// accepts; longer buffers are truncated and callers must call again.
	MaxWriteBytes = OutputBufSize - 1

	// RootPath is the log directory on the storage device.
	RootPath = "/data"

	// PrefixMax is the widest usable filename prefix. Together with a
	// single-digit index it fills the 8-character base name of the 8.3
	// convention.
	PrefixMax = 7

	maxFileIndex = 1000
)

// ErrNamesExhausted is returned by Begin when every filename slot
// 0..999 is already taken.
var ErrNamesExhausted = errors.New("all 1000 filename slots are taken")

// Session is one power-on logging session: a single open file plus the
// scratch buffer shared by every format-then-write call. It has no
// close operation; a session ends with the process.
type Session struct {
	dev  storage.Device
	file storage.File
	csv  bool
	out  []byte
	log  golog.Logger
}

// Begin creates the log directory if needed, then walks candidate names
// <prefix><index>.<csv|bin> until it finds an index with no existing
// file. The prefix shrinks as the index grows so the base name stays
// within 8 characters: width 7 for indices 0-9, 6 for 10-99, 5 for
// 100-999. Past index 999 there is no valid 8.3 name left and Begin
// fails.
func Begin(dev storage.Device, prefix string, csvMode bool, logger golog.Logger) (*Session, error) {
	if !dev.Exists(RootPath) {
		if err := dev.Mkdir(RootPath); err != nil {
			return nil, fmt.Errorf("create %s: %w", RootPath, err)
		}
	}

	prefix = TruncatePrefix(prefix)

	for i := 0; i < maxFileIndex; i++ {
		name := FileNameAt(prefix, i, csvMode)
		if dev.Exists(name) {
			continue
		}

		f, err := dev.OpenAppend(name)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}

		logger.Debugw("opened log file", "name", name)
		return &Session{
			dev:  dev,
			file: f,
			csv:  csvMode,
			out:  make([]byte, 0, OutputBufSize),
			log:  logger,
		}, nil
	}

	return nil, ErrNamesExhausted
}

// TruncatePrefix keeps at most the first PrefixMax bytes of p. Shorter
// prefixes pass through unchanged; nothing is ever read past them.
func TruncatePrefix(p string) string {
	if len(p) > PrefixMax {
		return p[:PrefixMax]
	}
	return p
}

// widthFor returns the usable prefix width for a file index, or 0 once
// the index no longer fits an 8-character base name.
func widthFor(index int) int {
	switch {
	case index < 10:
		return 7
	case index < 100:
		return 6
	case index < 1000:
		return 5
	default:
		return 0
	}
}

// FileNameAt builds the candidate path for one index, narrowing the
// prefix to the width the index leaves free.
func FileNameAt(prefix string, index int, csvMode bool) string {
	if w := widthFor(index); len(prefix) > w {
		prefix = prefix[:w]
	}

	ext := "bin"
	if csvMode {
		ext = "csv"
	}
	return fmt.Sprintf("%s/%s%d.%s", RootPath, prefix, index, ext)
}

// WriteBytes appends at most MaxWriteBytes of b to the session file and
// forces a sync so the data survives power loss. It returns how many
// bytes the device accepted, or 0 when no file is open. A short count
// is not retried; callers treat count < len(b) as a write fault.
func (s *Session) WriteBytes(b []byte) int {
	if s == nil || s.file == nil || !s.file.IsOpen() {
		return 0
	}

	if len(b) > MaxWriteBytes {
		b = b[:MaxWriteBytes]
	}

	// The device driver must never be handed the buffer it shares with
	// the formatting code, so writes out of the scratch buffer get
	// copied first.
	if s.aliasesScratch(b) {
		tmp := make([]byte, len(b))
		copy(tmp, b)
		b = tmp
	}

	n, err := s.file.Write(b)
	if err != nil {
		s.log.Warnw("device write failed", "file", s.file.Name(), "error", err)
		return n
	}
	if n < len(b) {
		s.log.Warnw("short device write", "file", s.file.Name(), "wrote", n, "want", len(b))
	}

	if err := s.file.Sync(); err != nil {
		s.log.Warnw("device sync failed", "file", s.file.Name(), "error", err)
	}

	return n
}

// WriteString appends text via WriteBytes.
func (s *Session) WriteString(text string) int {
	return s.WriteBytes([]byte(text))
}

// Buffer hands out the session scratch buffer, emptied, for a single
// format-then-write call. Contents must be fully written out before the
// next operation that formats into it; nothing may retain the slice
// across calls.
func (s *Session) Buffer() []byte {
	return s.out[:0]
}

func (s *Session) aliasesScratch(b []byte) bool {
	if len(b) == 0 || cap(s.out) == 0 {
		return false
	}
	return &b[0] == &s.out[:1][0]
}

// IsOpen reports whether the session file is open for writing.
func (s *Session) IsOpen() bool {
	return s != nil && s.file != nil && s.file.IsOpen()
}

// CSV reports whether the session was opened in CSV mode.
func (s *Session) CSV() bool {
	return s.csv
}

// FileName returns the device path of the session file.
func (s *Session) FileName() string {
	if s == nil || s.file == nil {
		return ""
	}
	return s.file.Name()
}
