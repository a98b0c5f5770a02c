package monitor

import (
	"fmt"
	"time"

	"github.com/srodi/sysmon/pkg/collector/cpu"
	"github.com/srodi/sysmon/pkg/collector/memory"
	"github.com/srodi/sysmon/pkg/collector/process"
	"github.com/srodi/sysmon/pkg/collector/uptime"
	"github.com/srodi/sysmon/pkg/procfs"
	"github.com/srodi/sysmon/pkg/types"
)

// now allows tests to pin snapshot timestamps.
var now = time.Now

// Monitor assembles snapshots. It owns the CPU rate state, so a single
// Monitor must be reused across cycles.
type Monitor struct {
	fs    procfs.FS
	rate  *cpu.RateCalculator
	procs *process.Enumerator
}

// New returns a Monitor reading from fs.
func New(fs procfs.FS) *Monitor {
	return NewWithEnumerator(fs, process.NewEnumerator(fs))
}

// NewWithEnumerator returns a Monitor that lists processes with procs.
func NewWithEnumerator(fs procfs.FS, procs *process.Enumerator) *Monitor {
	return &Monitor{
		fs:    fs,
		rate:  cpu.NewRateCalculator(),
		procs: procs,
	}
}

// Prime feeds one CPU sample to the rate calculator so that the next
// snapshot reports a real delta instead of the first-sample zero.
func (m *Monitor) Prime() error {
	counters, err := cpu.ReadCounters(m.fs)
	if err != nil {
		return fmt.Errorf("priming cpu counters: %w", err)
	}
	m.rate.Percent(counters)
	return nil
}

// TakeSnapshot reads all system sources and enumerates processes. Any
// system-level failure fails the whole snapshot; per-process failures only
// drop the affected process.
func (m *Monitor) TakeSnapshot() (types.Snapshot, error) {
	counters, err := cpu.ReadCounters(m.fs)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("cpu counters: %w", err)
	}
	cpuPercent := m.rate.Percent(counters)

	mem, err := memory.ReadCounters(m.fs)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("memory counters: %w", err)
	}

	secs, err := uptime.ReadSeconds(m.fs)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("uptime: %w", err)
	}

	records, skipped, err := m.procs.List()
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("listing processes: %w", err)
	}

	return types.Snapshot{
		Taken: now(),
		Metrics: types.SystemMetrics{
			CPUPercent:  cpuPercent,
			MemPercent:  mem.UsedPercent(),
			UptimeHours: uptime.Hours(secs),
		},
		Processes: records,
		Skipped:   skipped,
	}, nil
}
