package sdlog

// Reading types. Timestamp is always the session-relative millisecond
// captured when the reading was taken, not wall-clock time.

// Acceleration is one accelerometer sample, in m/s² per axis.
type Acceleration struct {
	Timestamp uint32
	X, Y, Z   float32
}

// Magnetic is one magnetometer sample, in µT per axis.
type Magnetic struct {
	Timestamp uint32
	X, Y, Z   float32
}

// Gyro is one gyroscope sample, in rad/s per axis.
type Gyro struct {
	Timestamp uint32
	X, Y, Z   float32
}

// Orientation is one fused attitude sample, in degrees.
type Orientation struct {
	Timestamp            uint32
	Roll, Pitch, Heading float32
}

// Temperature is one temperature sample.
type Temperature struct {
	Timestamp uint32
	Celsius   float32
}

// Luminosity is one ambient light sample.
type Luminosity struct {
	Timestamp uint32
	Lux       float32
}

// UVLight is one UV index sample.
type UVLight struct {
	Timestamp uint32
	Index     float32
}

// Pressure is one barometric pressure sample.
type Pressure struct {
	Timestamp uint32
	Millibars float32
}
