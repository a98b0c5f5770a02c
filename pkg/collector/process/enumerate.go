package process

import (
	"github.com/srodi/sysmon/pkg/collector/memory"
	"github.com/srodi/sysmon/pkg/procfs"
	"github.com/srodi/sysmon/pkg/types"
)

// Per-process readers, swappable so tests can simulate processes exiting
// between enumeration and read.
var (
	readCPUTicks = ReadCPUTicks
	residentKB   = memory.ResidentKB
)

// Enumerator walks the process table and builds one record per live process.
type Enumerator struct {
	fs         procfs.FS
	clockTicks int64
}

// NewEnumerator returns an Enumerator using the platform clock-tick rate.
func NewEnumerator(fs procfs.FS) *Enumerator {
	return NewEnumeratorWithTicks(fs, procfs.ClockTicks())
}

// NewEnumeratorWithTicks returns an Enumerator converting CPU ticks with the
// given ticks-per-second rate.
func NewEnumeratorWithTicks(fs procfs.FS, clockTicks int64) *Enumerator {
	if clockTicks <= 0 {
		clockTicks = procfs.ClockTicks()
	}
	return &Enumerator{fs: fs, clockTicks: clockTicks}
}

// ClockTicks returns the ticks-per-second rate used for CPU seconds.
func (e *Enumerator) ClockTicks() int64 {
	return e.clockTicks
}

// List returns a record for every numeric entry of the process table that
// could be read completely, in directory order. Processes whose records fail
// to read are left out and counted in skipped; they never abort the scan.
// Only a failure to list the table itself is returned as an error.
func (e *Enumerator) List() (records []types.ProcessRecord, skipped int, err error) {
	names, err := e.fs.ReadDirNames()
	if err != nil {
		return nil, 0, err
	}

	records = make([]types.ProcessRecord, 0, len(names))
	for _, name := range names {
		pid, ok := procfs.ParsePID(name)
		if !ok {
			continue
		}
		rec, err := e.record(pid)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func (e *Enumerator) record(pid int) (types.ProcessRecord, error) {
	ticks, err := readCPUTicks(e.fs, pid)
	if err != nil {
		return types.ProcessRecord{}, err
	}
	rss, err := residentKB(e.fs, pid)
	if err != nil {
		return types.ProcessRecord{}, err
	}
	return types.ProcessRecord{
		PID:        pid,
		Name:       ticks.Name,
		CPUSeconds: CPUSeconds(ticks, e.clockTicks),
		MemMB:      MegabytesFromKB(rss),
	}, nil
}

// CPUSeconds converts cumulative ticks to seconds at clockTicks per second.
func CPUSeconds(t Ticks, clockTicks int64) float64 {
	if clockTicks <= 0 {
		return 0
	}
	return float64(t.Total()) / float64(clockTicks)
}

// MegabytesFromKB converts a kB figure to MB.
func MegabytesFromKB(kb uint64) float64 {
	return float64(kb) / 1024
}
