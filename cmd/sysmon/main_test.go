//go:build linux

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/srodi/sysmon/pkg/report"
	"github.com/srodi/sysmon/pkg/types"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Interval != 3*time.Second || cfg.TopK != types.DefaultTopK || cfg.SortKey() != report.SortCPU {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Watch || cfg.HideKernel || cfg.Filter != "" {
		t.Fatalf("optional features should be off by default: %+v", cfg)
	}
}

func TestParseConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysmon.yaml")
	if err := os.WriteFile(path, []byte("interval: 10s\ntopk: 4\nsort: mem\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := parseConfig([]string{"-config", path, "-topk", "7", "-interval", "-1s"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TopK != 7 {
		t.Fatalf("explicit flag should win, got topk=%d", cfg.TopK)
	}
	if cfg.SortKey() != report.SortMemory {
		t.Fatalf("file value should survive when the flag is not given")
	}
	if cfg.Interval != 3*time.Second {
		t.Fatalf("invalid interval should fall back to default, got %v", cfg.Interval)
	}
}

func TestParseConfigBadFile(t *testing.T) {
	if _, err := parseConfig([]string{"-config", filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestSessionView(t *testing.T) {
	cfg, err := parseConfig([]string{"-watch"})
	if err != nil {
		t.Fatal(err)
	}
	s := &session{cfg: cfg, cycleErr: errors.New("cpu counters: boom"), action: "Process 5 terminated successfully."}
	v := s.view()
	if !v.StatusErr || !strings.HasPrefix(v.Status, "snapshot failed: cpu counters: boom") {
		t.Fatalf("cycle error should take the status line, got %+v", v)
	}
	if v.Prompt != "" {
		t.Fatalf("watch mode must not prompt, got %q", v.Prompt)
	}

	s.cfg.Watch = false
	s.cycleErr = nil
	v = s.view()
	if v.StatusErr || v.Status != "Process 5 terminated successfully." {
		t.Fatalf("unexpected status %+v", v)
	}
	if v.Prompt == "" {
		t.Fatalf("interactive mode should prompt")
	}
}

func TestReadLines(t *testing.T) {
	var got []string
	for line := range readLines(bytes.NewBufferString("2\n1234\n")) {
		got = append(got, line)
	}
	if strings.Join(got, ",") != "2,1234" {
		t.Fatalf("unexpected lines %q", got)
	}
}
