package sdlog

import (
	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"

	"github.com/stemsat/sdlog/internal/csvfmt"
	"github.com/stemsat/sdlog/internal/record"
	"github.com/stemsat/sdlog/internal/rtclock"
	"github.com/stemsat/sdlog/internal/session"
	"github.com/stemsat/sdlog/internal/storage"
)

// minFreeMemory is the headroom the storage driver needs before a
// session may start.
const minFreeMemory = 400

// Logger is the data-logging kit: one storage device, one clock source
// and at most one active session. All operations are synchronous and
// single-threaded; nothing here is safe for concurrent use.
type Logger struct {
	dev     storage.Device
	rtc     *rtclock.Source
	log     golog.Logger
	memFree func() int
	sess    *session.Session
}

// New builds a Logger. Without options it writes to a disk device
// rooted at the current directory and uses the real clock.
func New(opts ...Option) *Logger {
	l := &Logger{
		dev: storage.NewDiskDevice("."),
		log: golog.Global(),
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.rtc == nil {
		l.rtc = rtclock.New(clock.New())
	}

	return l
}

// Begin starts a logging session: it initializes the storage device,
// claims the first free log filename under /data and, if the clock is
// running, writes the time-reference record as the very first bytes of
// the new file.
//
// The boolean result is the sole programmatic success signal; the
// distinct failure causes (memory headroom, device init, directory
// creation, all 1000 name slots taken) are reported on the diagnostic
// log only. Calling Begin again abandons the previous session's file
// and claims the next free index.
func (l *Logger) Begin(chipSelect int, prefix string, csvMode bool) bool {
	if l.memFree != nil {
		if free := l.memFree(); free < minFreeMemory {
			l.log.Errorw("not enough memory for storage driver",
				"free", free, "need", minFreeMemory)
			return false
		}
	}

	if err := l.dev.Begin(chipSelect); err != nil {
		l.log.Errorw("storage device init failed", "error", err)
		return false
	}

	sess, err := session.Begin(l.dev, prefix, csvMode, l.log)
	if err != nil {
		l.log.Errorw("could not open a log file", "error", err)
		return false
	}
	l.sess = sess

	if l.rtc.Running() {
		l.EmitTimeReference()
	}

	return l.sess.IsOpen()
}

// IsOpen reports whether a session log file is currently open.
func (l *Logger) IsOpen() bool {
	return l.sess.IsOpen()
}

// FileName returns the device path of the session log file, or "" when
// no session is open.
func (l *Logger) FileName() string {
	return l.sess.FileName()
}

// WriteBytes appends raw bytes to the session file, capped at the
// session chunk size per call, each write followed by a forced sync.
// It returns 0 when no session is open; that is the only
// "not yet initialized" signal on the hot path.
func (l *Logger) WriteBytes(b []byte) int {
	return l.sess.WriteBytes(b)
}

// WriteString appends text to the session file via WriteBytes.
func (l *Logger) WriteString(text string) int {
	return l.sess.WriteString(text)
}

// SetClockNow marks the RTC as running at the current wall time, the
// host-side analog of setting the clock chip once before a deployment.
func (l *Logger) SetClockNow() bool {
	l.rtc.SetNow()
	return true
}

// EmitTimeReference writes the record anchoring session-relative
// timestamps to wall-clock time, in the flavor matching the session
// mode. It returns the bytes written: 0 when the clock is not running
// or no session is open. Begin is the only caller that should ever
// need this; the record belongs at the head of the file, once.
func (l *Logger) EmitTimeReference() int {
	if !l.sess.IsOpen() || !l.rtc.Running() {
		return 0
	}

	if l.sess.CSV() {
		return l.sess.WriteString(csvfmt.TimeHeader(l.rtc.UnixSeconds(), l.rtc.Millis()))
	}

	buf := record.AppendTimeRef(l.sess.Buffer(), l.rtc.UnixSeconds(), l.rtc.Millis())
	return l.sess.WriteBytes(buf)
}

// binaryWrite is the single encode path behind every per-sensor binary
// operation: format into the session scratch buffer, then hand the
// bytes to the session write path.
func (l *Logger) binaryWrite(t record.SensorType, id uint8, timestamp uint32, values ...float32) int {
	if !l.sess.IsOpen() {
		return 0
	}

	rec := record.Record{Type: t, ID: id, Timestamp: timestamp, Values: values}
	buf, err := record.AppendRecord(l.sess.Buffer(), &rec)
	if err != nil {
		l.log.Errorw("record encode failed", "type", t.String(), "error", err)
		return 0
	}

	return l.sess.WriteBytes(buf)
}

// csvWrite is the single format path behind every per-sensor CSV
// operation.
func (l *Logger) csvWrite(sensorName string, timestamp uint32, values ...float32) int {
	if !l.sess.IsOpen() {
		return 0
	}
	return l.sess.WriteString(csvfmt.ReadingLine(timestamp, sensorName, values...))
}

// WriteAcceleration appends one CSV acceleration line.
func (l *Logger) WriteAcceleration(sensorName string, d Acceleration) int {
	return l.csvWrite(sensorName, d.Timestamp, d.X, d.Y, d.Z)
}

// BinaryWriteAcceleration appends one 18-byte acceleration record.
func (l *Logger) BinaryWriteAcceleration(sensorID uint8, d Acceleration) int {
	return l.binaryWrite(record.Acceleration, sensorID, d.Timestamp, d.X, d.Y, d.Z)
}

// WriteMagnetic appends one CSV magnetometer line.
func (l *Logger) WriteMagnetic(sensorName string, d Magnetic) int {
	return l.csvWrite(sensorName, d.Timestamp, d.X, d.Y, d.Z)
}

// BinaryWriteMagnetic appends one 18-byte magnetometer record.
func (l *Logger) BinaryWriteMagnetic(sensorID uint8, d Magnetic) int {
	return l.binaryWrite(record.Magnetic, sensorID, d.Timestamp, d.X, d.Y, d.Z)
}

// WriteGyro appends one CSV gyroscope line.
func (l *Logger) WriteGyro(sensorName string, d Gyro) int {
	return l.csvWrite(sensorName, d.Timestamp, d.X, d.Y, d.Z)
}

// BinaryWriteGyro appends one 18-byte gyroscope record.
func (l *Logger) BinaryWriteGyro(sensorID uint8, d Gyro) int {
	return l.binaryWrite(record.Gyro, sensorID, d.Timestamp, d.X, d.Y, d.Z)
}

// WriteOrientation appends one CSV orientation line.
func (l *Logger) WriteOrientation(sensorName string, d Orientation) int {
	return l.csvWrite(sensorName, d.Timestamp, d.Roll, d.Pitch, d.Heading)
}

// BinaryWriteOrientation appends one 18-byte orientation record.
func (l *Logger) BinaryWriteOrientation(sensorID uint8, d Orientation) int {
	return l.binaryWrite(record.Orientation, sensorID, d.Timestamp, d.Roll, d.Pitch, d.Heading)
}

// WriteTemperature appends one CSV temperature line.
func (l *Logger) WriteTemperature(sensorName string, d Temperature) int {
	return l.csvWrite(sensorName, d.Timestamp, d.Celsius)
}

// BinaryWriteTemperature appends one 10-byte temperature record.
func (l *Logger) BinaryWriteTemperature(sensorID uint8, d Temperature) int {
	return l.binaryWrite(record.Temperature, sensorID, d.Timestamp, d.Celsius)
}

// WriteLuminosity appends one CSV luminosity line.
func (l *Logger) WriteLuminosity(sensorName string, d Luminosity) int {
	return l.csvWrite(sensorName, d.Timestamp, d.Lux)
}

// BinaryWriteLuminosity appends one 10-byte luminosity record.
func (l *Logger) BinaryWriteLuminosity(sensorID uint8, d Luminosity) int {
	return l.binaryWrite(record.Luminosity, sensorID, d.Timestamp, d.Lux)
}

// WriteUVLight appends one CSV UV index line.
func (l *Logger) WriteUVLight(sensorName string, d UVLight) int {
	return l.csvWrite(sensorName, d.Timestamp, d.Index)
}

// BinaryWriteUVLight appends one 10-byte UV index record.
func (l *Logger) BinaryWriteUVLight(sensorID uint8, d UVLight) int {
	return l.binaryWrite(record.UV, sensorID, d.Timestamp, d.Index)
}

// WritePressure appends one CSV pressure line.
func (l *Logger) WritePressure(sensorName string, d Pressure) int {
	return l.csvWrite(sensorName, d.Timestamp, d.Millibars)
}

// BinaryWritePressure appends one 10-byte pressure record.
func (l *Logger) BinaryWritePressure(sensorID uint8, d Pressure) int {
	return l.binaryWrite(record.Pressure, sensorID, d.Timestamp, d.Millibars)
}
