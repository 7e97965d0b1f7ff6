// Package csvfmt builds the text lines of the CSV log flavor. The
// format is a bare comma-joined line per reading, not quoted RFC 4180
// output, so lines are assembled by hand.
package csvfmt

import (
	"strconv"
	"strings"
)

// TimeHeader formats the line that anchors relative timestamps to
// wall-clock time. It is the CSV counterpart of the binary
// time-reference record and appears at most once, as the first line.
func TimeHeader(unixSeconds, sessionMillis uint32) string {
	var b strings.Builder
	b.WriteString("time: ")
	b.WriteString(strconv.FormatUint(uint64(unixSeconds), 10))
	b.WriteString(" at ")
	b.WriteString(strconv.FormatUint(uint64(sessionMillis), 10))
	b.WriteByte('\n')
	return b.String()
}

// ReadingLine formats one sensor reading:
//
//	<session_millis>,<sensor_name>,<value...>\n
func ReadingLine(sessionMillis uint32, sensorName string, values ...float32) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(sessionMillis), 10))
	b.WriteByte(',')
	b.WriteString(sensorName)
	for _, v := range values {
		b.WriteByte(',')
		b.WriteString(ftoa(v))
	}
	b.WriteByte('\n')
	return b.String()
}

func ftoa(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
