package record

import (
	"bufio"
	"fmt"
	"io"
)

// Entry is one decoded unit from a binary log stream: either the
// time-reference sentinel or a sensor record.
type Entry struct {
	TimeRef       bool
	UnixSeconds   uint32
	SessionMillis uint32
	Record        *Record
}

// Scanner walks an append-only binary log stream unit by unit. The
// stream is an optional time-reference sentinel followed by records of
// type-specific stride, with nothing in between.
type Scanner struct {
	r     *bufio.Reader
	entry Entry
	err   error
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r)}
}

// Scan advances to the next entry. It returns false at the end of the
// stream or on the first malformed or truncated entry; Err tells the
// two apart.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}

	head, err := s.r.Peek(1)
	if err != nil {
		if err != io.EOF {
			s.err = err
		}
		return false
	}

	if head[0] == TimeRefMarker {
		buf := make([]byte, TimeRefSizeBytes)
		if _, err := io.ReadFull(s.r, buf); err != nil {
			s.err = fmt.Errorf("truncated time reference: %w", err)
			return false
		}
		unix, millis, err := DecodeTimeRefFromBytes(buf)
		if err != nil {
			s.err = err
			return false
		}
		s.entry = Entry{TimeRef: true, UnixSeconds: unix, SessionMillis: millis}
		return true
	}

	t := SensorType(head[0])
	if !t.Valid() {
		s.err = fmt.Errorf("invalid sensor type %d", head[0])
		return false
	}

	buf := make([]byte, t.SizeBytes())
	if _, err := io.ReadFull(s.r, buf); err != nil {
		s.err = fmt.Errorf("truncated %s record: %w", t, err)
		return false
	}

	rec, err := DecodeRecordFromBytes(buf)
	if err != nil {
		s.err = err
		return false
	}

	s.entry = Entry{Record: rec}
	return true
}

// Entry returns the entry read by the last successful Scan.
func (s *Scanner) Entry() Entry {
	return s.entry
}

// Err returns the first error hit while scanning, nil at a clean end of
// stream.
func (s *Scanner) Err() error {
	return s.err
}
