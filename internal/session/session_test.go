package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edaniels/golog"

	"github.com/stemsat/sdlog/internal/storage"
)

func newDevice(t *testing.T) (*storage.DiskDevice, string) {
	t.Helper()
	root := t.TempDir()
	return storage.NewDiskDevice(root), root
}

func preCreate(t *testing.T, root string, names ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, "data"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		path := filepath.Join(root, strings.TrimPrefix(name, "/"))
		f, err := os.Create(path)
		if err != nil {
			t.Fatalf("pre-create %s: %v", name, err)
		}
		f.Close()
	}
}

func TestTruncatePrefix(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"MYSENSORDATA", "MYSENSO"},
		{"EXACTLY7", "EXACTLY"},
		{"SHORT", "SHORT"},
		{"", ""},
	}

	for _, c := range cases {
		if got := TruncatePrefix(c.in); got != c.want {
			t.Errorf("TruncatePrefix(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFileNameWidthSchedule(t *testing.T) {
	cases := []struct {
		index int
		want  string
	}{
		{0, "/data/LOGDATA0.bin"},
		{9, "/data/LOGDATA9.bin"},
		{10, "/data/LOGDAT10.bin"},
		{99, "/data/LOGDAT99.bin"},
		{100, "/data/LOGDA100.bin"},
		{999, "/data/LOGDA999.bin"},
	}

	for _, c := range cases {
		got := FileNameAt("LOGDATA", c.index, false)
		if got != c.want {
			t.Errorf("FileNameAt(LOGDATA, %d) = %q, want %q", c.index, got, c.want)
		}

		// Base name must fit 8.3: at most 8 chars before the dot.
		base := strings.TrimPrefix(got, "/data/")
		if dot := strings.IndexByte(base, '.'); dot > 8 {
			t.Errorf("index %d: base name %q exceeds 8 characters", c.index, base)
		}
	}
}

func TestFileNameExtensionFollowsMode(t *testing.T) {
	if got := FileNameAt("LOG", 0, true); got != "/data/LOG0.csv" {
		t.Fatalf("csv name = %q", got)
	}
	if got := FileNameAt("LOG", 0, false); got != "/data/LOG0.bin" {
		t.Fatalf("bin name = %q", got)
	}
}

func TestBeginCreatesDataDirectoryAndFirstFile(t *testing.T) {
	dev, root := newDevice(t)

	s, err := Begin(dev, "LOG", false, golog.NewTestLogger(t))
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if !s.IsOpen() {
		t.Fatal("session should be open")
	}
	if s.FileName() != "/data/LOG0.bin" {
		t.Fatalf("file name %q, want /data/LOG0.bin", s.FileName())
	}
	if _, err := os.Stat(filepath.Join(root, "data", "LOG0.bin")); err != nil {
		t.Fatalf("log file missing on disk: %v", err)
	}
}

func TestBeginPicksFirstFreeSlot(t *testing.T) {
	dev, root := newDevice(t)
	preCreate(t, root,
		"/data/PREFIX0.bin",
		"/data/PREFIX1.bin",
		"/data/PREFIX2.bin",
		"/data/PREFIX3.bin",
		"/data/PREFIX4.bin",
	)

	s, err := Begin(dev, "PREFIX", false, golog.NewTestLogger(t))
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if s.FileName() != "/data/PREFIX5.bin" {
		t.Fatalf("file name %q, want /data/PREFIX5.bin", s.FileName())
	}
}

func TestBeginTruncatesLongPrefix(t *testing.T) {
	dev, _ := newDevice(t)

	s, err := Begin(dev, "MYSENSORDATA", false, golog.NewTestLogger(t))
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if s.FileName() != "/data/MYSENSO0.bin" {
		t.Fatalf("file name %q, want /data/MYSENSO0.bin", s.FileName())
	}
}

func TestBeginShrinksPrefixPastTen(t *testing.T) {
	dev, root := newDevice(t)

	names := make([]string, 10)
	for i := 0; i < 10; i++ {
		names[i] = FileNameAt("LOGDATA", i, false)
	}
	preCreate(t, root, names...)

	s, err := Begin(dev, "LOGDATA", false, golog.NewTestLogger(t))
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if s.FileName() != "/data/LOGDAT10.bin" {
		t.Fatalf("file name %q, want /data/LOGDAT10.bin", s.FileName())
	}
}

func TestBeginFailsWhenSlotsExhausted(t *testing.T) {
	dev, root := newDevice(t)

	names := make([]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		names = append(names, FileNameAt("LOGDATA", i, false))
	}
	preCreate(t, root, names...)

	if _, err := Begin(dev, "LOGDATA", false, golog.NewTestLogger(t)); err != ErrNamesExhausted {
		t.Fatalf("expected ErrNamesExhausted, got %v", err)
	}
}

func TestSuccessiveBeginsClaimNewIndices(t *testing.T) {
	dev, _ := newDevice(t)
	logger := golog.NewTestLogger(t)

	for i := 0; i < 3; i++ {
		s, err := Begin(dev, "LOG", false, logger)
		if err != nil {
			t.Fatalf("begin %d failed: %v", i, err)
		}
		want := fmt.Sprintf("/data/LOG%d.bin", i)
		if s.FileName() != want {
			t.Fatalf("begin %d opened %q, want %q", i, s.FileName(), want)
		}
	}
}

func TestWriteBytesCapsChunkSize(t *testing.T) {
	dev, root := newDevice(t)

	s, err := Begin(dev, "LOG", false, golog.NewTestLogger(t))
	if err != nil {
		t.Fatal(err)
	}

	big := make([]byte, 600)
	n := s.WriteBytes(big)
	if n != MaxWriteBytes {
		t.Fatalf("wrote %d bytes, want %d", n, MaxWriteBytes)
	}

	data, err := os.ReadFile(filepath.Join(root, "data", "LOG0.bin"))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != MaxWriteBytes {
		t.Fatalf("file holds %d bytes, want %d", len(data), MaxWriteBytes)
	}
}

func TestWriteBytesFromScratchBuffer(t *testing.T) {
	dev, root := newDevice(t)

	s, err := Begin(dev, "LOG", false, golog.NewTestLogger(t))
	if err != nil {
		t.Fatal(err)
	}

	buf := s.Buffer()
	buf = append(buf, 0xDE, 0xAD, 0xBE, 0xEF)

	if n := s.WriteBytes(buf); n != 4 {
		t.Fatalf("wrote %d bytes, want 4", n)
	}

	data, err := os.ReadFile(filepath.Join(root, "data", "LOG0.bin"))
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if string(data) != string(want) {
		t.Fatalf("file content % x, want % x", data, want)
	}
}

func TestWriteString(t *testing.T) {
	dev, root := newDevice(t)

	s, err := Begin(dev, "LOG", true, golog.NewTestLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	if !s.CSV() {
		t.Fatal("session should report csv mode")
	}

	if n := s.WriteString("100,temp,21.5\n"); n != 14 {
		t.Fatalf("wrote %d bytes, want 14", n)
	}

	data, err := os.ReadFile(filepath.Join(root, "data", "LOG0.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "100,temp,21.5\n" {
		t.Fatalf("file content %q", data)
	}
}

func TestNilSessionWritesNothing(t *testing.T) {
	var s *Session
	if n := s.WriteBytes([]byte("abc")); n != 0 {
		t.Fatalf("nil session wrote %d bytes", n)
	}
}
