package types

import "time"

// DefaultTopK controls how many ranked processes the table displays.
const DefaultTopK = 10

// CPUCounters holds the cumulative system CPU time buckets, in clock ticks,
// from the aggregate "cpu" line of /proc/stat.
type CPUCounters struct {
	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	IOWait  uint64
	IRQ     uint64
	SoftIRQ uint64
	Steal   uint64
}

// IdleTime is the time the CPUs spent doing nothing, including waiting on I/O.
func (c CPUCounters) IdleTime() uint64 {
	return c.Idle + c.IOWait
}

// TotalTime sums all eight buckets.
func (c CPUCounters) TotalTime() uint64 {
	return c.User + c.Nice + c.System + c.Idle + c.IOWait + c.IRQ + c.SoftIRQ + c.Steal
}

// SystemMetrics is recomputed every cycle.
type SystemMetrics struct {
	CPUPercent  float64
	MemPercent  float64
	UptimeHours float64
}

// ProcessRecord describes one live process during one cycle. CPUSeconds is
// cumulative since the process started, not a rate.
type ProcessRecord struct {
	PID        int
	Name       string
	CPUSeconds float64
	MemMB      float64
}

// Snapshot is one fully assembled observation. Processes keep enumeration
// order; Skipped counts processes dropped because they vanished mid-read.
type Snapshot struct {
	Taken     time.Time
	Metrics   SystemMetrics
	Processes []ProcessRecord
	Skipped   int
}
