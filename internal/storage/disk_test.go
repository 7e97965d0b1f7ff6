package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiskDeviceMkdirAndExists(t *testing.T) {
	dev := NewDiskDevice(t.TempDir())

	if err := dev.Begin(10); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if dev.Exists("/data") {
		t.Fatal("fresh device should not have /data")
	}
	if err := dev.Mkdir("/data"); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if !dev.Exists("/data") {
		t.Fatal("/data should exist after mkdir")
	}
}

func TestDiskDeviceOpenAppendCreatesFile(t *testing.T) {
	root := t.TempDir()
	dev := NewDiskDevice(root)

	if err := dev.Mkdir("/data"); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	f, err := dev.OpenAppend("/data/LOG0.bin")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if !f.IsOpen() {
		t.Fatal("freshly opened file should report open")
	}
	if f.Name() != "/data/LOG0.bin" {
		t.Fatalf("name mismatch: %q", f.Name())
	}

	n, err := f.Write([]byte("abc"))
	if err != nil || n != 3 {
		t.Fatalf("write = %d, %v", n, err)
	}
	if err := f.Sync(); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "data", "LOG0.bin"))
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "abc" {
		t.Fatalf("file content %q, want abc", data)
	}
}

func TestDiskDeviceAppendsAcrossOpens(t *testing.T) {
	root := t.TempDir()
	dev := NewDiskDevice(root)

	if err := dev.Mkdir("/data"); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	f1, err := dev.OpenAppend("/data/LOG0.bin")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := f1.Write([]byte("one")); err != nil {
		t.Fatal(err)
	}

	f2, err := dev.OpenAppend("/data/LOG0.bin")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if _, err := f2.Write([]byte("two")); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(root, "data", "LOG0.bin"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "onetwo" {
		t.Fatalf("file content %q, want onetwo", data)
	}
}
