package cpu

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/srodi/sysmon/pkg/procfs"
	"github.com/srodi/sysmon/pkg/types"
)

const counterFields = 8

// ReadCounters parses the aggregate "cpu" line, the first line of stat.
func ReadCounters(fs procfs.FS) (types.CPUCounters, error) {
	path := fs.Path("stat")
	f, err := fs.Open("stat")
	if err != nil {
		return types.CPUCounters{}, &procfs.IOError{Path: path, Err: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return types.CPUCounters{}, &procfs.IOError{Path: path, Err: err}
		}
		return types.CPUCounters{}, procfs.ParseErrorf(path, "empty file")
	}
	return parseCounters(path, scanner.Text())
}

func parseCounters(path, line string) (types.CPUCounters, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != "cpu" {
		return types.CPUCounters{}, procfs.ParseErrorf(path, "first line does not start with the cpu label")
	}
	fields = fields[1:]
	if len(fields) < counterFields {
		return types.CPUCounters{}, procfs.ParseErrorf(path, "expected %d cpu counters, got %d", counterFields, len(fields))
	}

	var v [counterFields]uint64
	for i := range v {
		n, err := strconv.ParseUint(fields[i], 10, 64)
		if err != nil {
			return types.CPUCounters{}, procfs.ParseErrorf(path, "cpu counter %d: %v", i+1, err)
		}
		v[i] = n
	}

	return types.CPUCounters{
		User:    v[0],
		Nice:    v[1],
		System:  v[2],
		Idle:    v[3],
		IOWait:  v[4],
		IRQ:     v[5],
		SoftIRQ: v[6],
		Steal:   v[7],
	}, nil
}
