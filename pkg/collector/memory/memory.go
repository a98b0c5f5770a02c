package memory

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/srodi/sysmon/pkg/procfs"
)

// Counters holds the system memory totals reported by meminfo, in kB.
type Counters struct {
	TotalKB uint64
	FreeKB  uint64
}

// UsedPercent returns (total-free)/total as a percentage.
func (c Counters) UsedPercent() float64 {
	if c.TotalKB == 0 {
		return 0
	}
	used := float64(c.TotalKB) - float64(c.FreeKB)
	if used < 0 {
		used = 0
	}
	return 100 * used / float64(c.TotalKB)
}

// ReadCounters scans meminfo for the MemTotal and MemFree lines. Labels are
// matched rather than read by position so field reordering is harmless.
func ReadCounters(fs procfs.FS) (Counters, error) {
	path := fs.Path("meminfo")
	f, err := fs.Open("meminfo")
	if err != nil {
		return Counters{}, &procfs.IOError{Path: path, Err: err}
	}
	defer f.Close()

	var c Counters
	var haveTotal, haveFree bool
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && !(haveTotal && haveFree) {
		line := scanner.Text()
		switch {
		case !haveTotal && strings.HasPrefix(line, "MemTotal:"):
			if c.TotalKB, err = labelValue(path, line); err != nil {
				return Counters{}, err
			}
			haveTotal = true
		case !haveFree && strings.HasPrefix(line, "MemFree:"):
			if c.FreeKB, err = labelValue(path, line); err != nil {
				return Counters{}, err
			}
			haveFree = true
		}
	}
	if err := scanner.Err(); err != nil {
		return Counters{}, &procfs.IOError{Path: path, Err: err}
	}

	switch {
	case !haveTotal:
		return Counters{}, procfs.ParseErrorf(path, "MemTotal not found")
	case !haveFree:
		return Counters{}, procfs.ParseErrorf(path, "MemFree not found")
	case c.TotalKB == 0:
		return Counters{}, procfs.ParseErrorf(path, "MemTotal is zero")
	}
	return c, nil
}

// ResidentKB returns the VmRSS value from the status file of pid. A status
// without a VmRSS line, as for kernel threads, reports 0.
func ResidentKB(fs procfs.FS, pid int) (uint64, error) {
	f, err := fs.Open(strconv.Itoa(pid), "status")
	if err != nil {
		return 0, &procfs.ProcessGoneError{PID: pid, Err: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "VmRSS:") {
			return labelValue(fs.PIDPath(pid, "status"), line)
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, &procfs.ProcessGoneError{PID: pid, Err: err}
	}
	return 0, nil
}

// labelValue parses lines shaped like "<label> <integer> [unit]".
func labelValue(path, line string) (uint64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, procfs.ParseErrorf(path, "no value in %q", line)
	}
	v, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, procfs.ParseErrorf(path, "%s %v", strings.TrimSuffix(fields[0], ":"), err)
	}
	return v, nil
}
