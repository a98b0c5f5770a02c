package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/srodi/sysmon/pkg/report"
	"github.com/srodi/sysmon/pkg/types"
)

func sampleSnapshot() *types.Snapshot {
	return &types.Snapshot{
		Taken: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		Metrics: types.SystemMetrics{
			CPUPercent:  12.345,
			MemPercent:  75,
			UptimeHours: 2.5,
		},
		Processes: []types.ProcessRecord{
			{PID: 1, Name: "init", CPUSeconds: 3, MemMB: 5},
			{PID: 2, Name: "postgres", CPUSeconds: 1, MemMB: 50},
			{PID: 3, Name: "a-very-long-process-name-that-overflows", CPUSeconds: 0.5, MemMB: 1},
		},
		Skipped: 1,
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, View{
		Snapshot: sampleSnapshot(),
		Sort:     report.SortMemory,
		TopK:     2,
		Interval: 3 * time.Second,
		Prompt:   "Enter PID to kill or 0 to refresh: ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"CPU Usage: 12.35%",
		"Memory Usage: 75.00%",
		"System Uptime: 2.50 hours",
		"Sort: Memory",
		"(1 exited during scan)",
		"PID     Process Name             CPU (s)     MEM (MB)",
		strings.Repeat("-", 60),
		"2       postgres                 1.00        50.00",
		"1       init                     3.00        5.00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "a-very-long") {
		t.Fatalf("topK should have cut the third row:\n%s", out)
	}
	if strings.Index(out, "postgres") > strings.Index(out, "init ") {
		t.Fatalf("memory sort should list postgres first:\n%s", out)
	}
	if !strings.HasSuffix(out, "Enter PID to kill or 0 to refresh: ") {
		t.Fatalf("prompt should end the screen, got %q", out[len(out)-40:])
	}
}

func TestRenderTruncatesLongNames(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, View{Snapshot: sampleSnapshot(), TopK: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "a-very-long-process-nam~ 0.50") {
		t.Fatalf("expected truncated name column:\n%s", buf.String())
	}
}

func TestRenderFailedCycle(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, View{Status: "snapshot failed: reading /proc/stat: permission denied", StatusErr: true, Color: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "PID") || strings.Contains(out, "CPU Usage") {
		t.Fatalf("failed cycle must not render metrics or table:\n%s", out)
	}
	if !strings.Contains(out, alertRed+"snapshot failed") {
		t.Fatalf("error status should be highlighted:\n%q", out)
	}
}

func TestRenderEmptyAfterFilter(t *testing.T) {
	var buf bytes.Buffer
	v := View{Snapshot: sampleSnapshot(), Filter: report.FilterConfig{NameFilter: "nginx"}}
	if err := Render(&buf, v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No processes matched current filters") {
		t.Fatalf("expected empty-table notice:\n%s", buf.String())
	}
}

func TestNameWidthFor(t *testing.T) {
	cases := map[int]int{
		0:   defaultNameWidth,
		60:  defaultNameWidth,
		80:  defaultNameWidth,
		90:  35,
		200: maxNameWidth,
	}
	for width, want := range cases {
		if got := NameWidthFor(width); got != want {
			t.Fatalf("NameWidthFor(%d): expected %d, got %d", width, want, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"overflowing", 5, "over~"},
		{"ab", 1, "a"},
		{"ab", 0, ""},
		{"ünïcödé", 4, "ünï~"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.n); got != tc.want {
			t.Fatalf("truncate(%q, %d): expected %q, got %q", tc.in, tc.n, tc.want, got)
		}
	}
}
