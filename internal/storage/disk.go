package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// DiskDevice maps device-absolute paths onto a directory on the host
// filesystem. It is the implementation used by the command-line tools
// and the tests.
type DiskDevice struct {
	root string
}

func NewDiskDevice(root string) *DiskDevice {
	return &DiskDevice{root: root}
}

// Begin makes sure the root directory is reachable. The chip-select
// line has no meaning on a host filesystem.
func (d *DiskDevice) Begin(chipSelect int) error {
	return os.MkdirAll(d.root, 0755)
}

func (d *DiskDevice) Exists(path string) bool {
	_, err := os.Stat(d.hostPath(path))
	return err == nil
}

func (d *DiskDevice) Mkdir(path string) error {
	// 0 (special bit - ignored), 7 (rwx - owner), 5 (r-x - user group), 5 (r-x - others)
	return os.Mkdir(d.hostPath(path), 0755)
}

func (d *DiskDevice) OpenAppend(path string) (File, error) {
	f, err := os.OpenFile(d.hostPath(path), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &diskFile{f: f, name: path}, nil
}

func (d *DiskDevice) hostPath(path string) string {
	return filepath.Join(d.root, strings.TrimPrefix(path, "/"))
}

type diskFile struct {
	f      *os.File
	name   string
	closed bool
}

func (df *diskFile) Write(p []byte) (int, error) {
	return df.f.Write(p)
}

func (df *diskFile) Sync() error {
	return df.f.Sync()
}

func (df *diskFile) IsOpen() bool {
	return !df.closed
}

func (df *diskFile) Name() string {
	return df.name
}
