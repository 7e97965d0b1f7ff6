package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// SensorType tags every binary record with the sensor class it came from.
//
// The numeric values are part of the on-disk format. Renumbering an
// existing tag breaks every previously written file, so new sensor
// classes must only ever be appended.
type SensorType uint8

const (
	Acceleration SensorType = iota
	Magnetic
	Gyro
	Orientation
	Temperature
	Luminosity
	UV
	Pressure
)

// Type (1) + ID (1) + Timestamp (4)
const HeaderSizeBytes = 6

// Marker (2) + UnixSeconds (4) + SessionMillis (4)
const TimeRefSizeBytes = 10

// TimeRefMarker fills the first two bytes of a time-reference record.
// No sensor type tag ever reaches this value, so a decoder can always
// tell the sentinel apart from a record header.
const TimeRefMarker = 0xFF

var sensorNames = [...]string{
	"acceleration",
	"magnetic",
	"gyro",
	"orientation",
	"temperature",
	"luminosity",
	"uv",
	"pressure",
}

// Valid reports whether t is a known sensor type tag.
func (t SensorType) Valid() bool {
	return int(t) < len(sensorNames)
}

func (t SensorType) String() string {
	if t.Valid() {
		return sensorNames[t]
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// FloatCount returns the number of float32 payload fields for t:
// 3 for the vector types, 1 for the scalar types.
func (t SensorType) FloatCount() int {
	switch t {
	case Acceleration, Magnetic, Gyro, Orientation:
		return 3
	case Temperature, Luminosity, UV, Pressure:
		return 1
	default:
		return 0
	}
}

// SizeBytes returns the total encoded record size for t: the 6-byte
// header plus 4 bytes per payload float. No padding, no alignment.
func (t SensorType) SizeBytes() int {
	return HeaderSizeBytes + 4*t.FloatCount()
}

// ParseSensorType maps a sensor class name back to its tag.
func ParseSensorType(name string) (SensorType, bool) {
	for i, n := range sensorNames {
		if n == name {
			return SensorType(i), true
		}
	}
	return 0, false
}

// Record is a single sensor observation in its decoded form.
//
// Timestamp is the session-relative millisecond captured when the reading
// was taken upstream, not wall-clock time. The time-reference record
// written at the head of a session anchors these to real time.
type Record struct {
	Type      SensorType
	ID        uint8
	Timestamp uint32
	Values    []float32
}

// AppendRecord encodes r and appends the bytes to dst.
//
// The record is encoded as:
//
//	<type:uint8><id:uint8><timestamp:uint32><float32>...
//
// All multi-byte fields use little-endian byte order. The number of
// payload floats must match the record type's fixed layout.
func AppendRecord(dst []byte, r *Record) ([]byte, error) {
	if !r.Type.Valid() {
		return dst, fmt.Errorf("invalid sensor type %d", uint8(r.Type))
	}
	if len(r.Values) != r.Type.FloatCount() {
		return dst, fmt.Errorf("%s record needs %d values, got %d",
			r.Type, r.Type.FloatCount(), len(r.Values))
	}

	dst = append(dst, byte(r.Type), r.ID)
	dst = binary.LittleEndian.AppendUint32(dst, r.Timestamp)
	for _, v := range r.Values {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}

	return dst, nil
}

// DecodeRecordFromBytes decodes a single record from data. The record
// type read from the header determines how many payload floats follow.
func DecodeRecordFromBytes(data []byte) (*Record, error) {
	var typ uint8
	var id uint8
	var timestamp uint32

	buf := bytes.NewReader(data)

	if err := binary.Read(buf, binary.LittleEndian, &typ); err != nil {
		return nil, err
	}
	if err := binary.Read(buf, binary.LittleEndian, &id); err != nil {
		return nil, err
	}
	if err := binary.Read(buf, binary.LittleEndian, &timestamp); err != nil {
		return nil, err
	}

	t := SensorType(typ)
	if !t.Valid() {
		return nil, fmt.Errorf("invalid sensor type %d", typ)
	}

	values := make([]float32, t.FloatCount())
	for i := range values {
		var bits uint32
		if err := binary.Read(buf, binary.LittleEndian, &bits); err != nil {
			return nil, err
		}
		values[i] = math.Float32frombits(bits)
	}

	return &Record{
		Type:      t,
		ID:        id,
		Timestamp: timestamp,
		Values:    values,
	}, nil
}

// AppendTimeRef encodes the time-reference sentinel and appends the
// bytes to dst:
//
//	0xFF 0xFF <unix_seconds:uint32> <session_millis:uint32>
//
// It anchors the session-relative timestamps of the records that follow
// to wall-clock time, and is only ever written once, as the first bytes
// of a freshly opened log file.
func AppendTimeRef(dst []byte, unixSeconds, sessionMillis uint32) []byte {
	dst = append(dst, TimeRefMarker, TimeRefMarker)
	dst = binary.LittleEndian.AppendUint32(dst, unixSeconds)
	dst = binary.LittleEndian.AppendUint32(dst, sessionMillis)
	return dst
}

// DecodeTimeRefFromBytes decodes a time-reference record.
func DecodeTimeRefFromBytes(data []byte) (unixSeconds, sessionMillis uint32, err error) {
	if len(data) < TimeRefSizeBytes {
		return 0, 0, io.ErrUnexpectedEOF
	}
	if data[0] != TimeRefMarker || data[1] != TimeRefMarker {
		return 0, 0, errors.New("missing time-reference marker")
	}
	unixSeconds = binary.LittleEndian.Uint32(data[2:6])
	sessionMillis = binary.LittleEndian.Uint32(data[6:10])
	return unixSeconds, sessionMillis, nil
}
