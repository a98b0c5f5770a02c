package memory

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/srodi/sysmon/pkg/procfs"
)

func fixture(t *testing.T, files map[string]string) procfs.FS {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return procfs.NewFS(root)
}

func TestReadCounters(t *testing.T) {
	fs := fixture(t, map[string]string{
		"meminfo": "MemTotal:        1000 kB\nMemFree:          250 kB\nMemAvailable:     600 kB\n",
	})
	c, err := ReadCounters(fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.TotalKB != 1000 || c.FreeKB != 250 {
		t.Fatalf("unexpected counters %+v", c)
	}
	if math.Abs(c.UsedPercent()-75.0) > 1e-9 {
		t.Fatalf("expected 75%%, got %.4f", c.UsedPercent())
	}
}

func TestReadCountersMatchesLabelsInAnyOrder(t *testing.T) {
	fs := fixture(t, map[string]string{
		"meminfo": "Buffers: 12 kB\nMemFree: 100 kB\nCached: 7 kB\nMemTotal: 400 kB\n",
	})
	c, err := ReadCounters(fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.TotalKB != 400 || c.FreeKB != 100 {
		t.Fatalf("unexpected counters %+v", c)
	}
}

func TestReadCountersErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missingTotal", "MemFree: 1 kB\n"},
		{"missingFree", "MemTotal: 10 kB\n"},
		{"zeroTotal", "MemTotal: 0 kB\nMemFree: 0 kB\n"},
		{"badValue", "MemTotal: lots kB\nMemFree: 1 kB\n"},
		{"noValue", "MemTotal:\nMemFree: 1 kB\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadCounters(fixture(t, map[string]string{"meminfo": tc.content}))
			var perr *procfs.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
		})
	}

	_, err := ReadCounters(procfs.NewFS(t.TempDir()))
	var ioErr *procfs.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError for missing meminfo, got %v", err)
	}
}

func TestUsedPercentZeroTotal(t *testing.T) {
	if got := (Counters{}).UsedPercent(); got != 0 {
		t.Fatalf("expected 0, got %.2f", got)
	}
}

func TestResidentKB(t *testing.T) {
	fs := fixture(t, map[string]string{
		"42/status": "Name:\tdb\nVmPeak:\t 9000 kB\nVmRSS:\t    8192 kB\nVmRSS:\t 1 kB\n",
		"2/status":  "Name:\tkthreadd\nState:\tS (sleeping)\n",
		"7/status":  "VmRSS:\tmany kB\n",
	})

	rss, err := ResidentKB(fs, 42)
	if err != nil || rss != 8192 {
		t.Fatalf("expected 8192 kB, got %d (%v)", rss, err)
	}

	rss, err = ResidentKB(fs, 2)
	if err != nil || rss != 0 {
		t.Fatalf("kernel thread should report 0 without error, got %d (%v)", rss, err)
	}

	_, err = ResidentKB(fs, 7)
	var perr *procfs.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}

	_, err = ResidentKB(fs, 99)
	var gone *procfs.ProcessGoneError
	if !errors.As(err, &gone) || gone.PID != 99 {
		t.Fatalf("expected ProcessGoneError for pid 99, got %v", err)
	}
}
