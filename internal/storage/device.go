// Package storage abstracts the block storage device the logger
// persists to. On the target hardware this is an SPI-attached SD card;
// on a host it is a directory on the local filesystem.
package storage

// Device is the storage collaborator. Paths handed to it are
// device-absolute (e.g. "/data/LOG0.bin").
type Device interface {
	// Begin initializes the device. chipSelect designates the select
	// line the device is wired to; implementations that have no bus
	// ignore it.
	Begin(chipSelect int) error

	// Exists reports whether a file or directory is present at path.
	Exists(path string) bool

	// Mkdir creates a single directory at path.
	Mkdir(path string) error

	// OpenAppend opens path for appending, creating it if needed.
	OpenAppend(path string) (File, error)
}

// File is an open append-only file on a Device.
type File interface {
	// Write appends p and returns how many bytes the device accepted.
	Write(p []byte) (int, error)

	// Sync blocks until buffered data has reached the device.
	Sync() error

	// IsOpen reports whether the handle is still usable.
	IsOpen() bool

	// Name returns the device-absolute path the file was opened with.
	Name() string
}
