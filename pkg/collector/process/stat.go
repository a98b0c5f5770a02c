package process

import (
	"io"
	"strconv"
	"strings"

	"github.com/srodi/sysmon/pkg/procfs"
)

// Positions in the stat record, 1-indexed as documented in proc(5).
const (
	fieldState = 3
	fieldUTime = 14
	fieldSTime = 15
)

// Ticks holds the raw CPU accounting of one process.
type Ticks struct {
	Name  string
	UTime uint64
	STime uint64
}

// Total is user plus system ticks.
func (t Ticks) Total() uint64 {
	return t.UTime + t.STime
}

// ReadCPUTicks reads the name, utime and stime of pid from its stat record.
func ReadCPUTicks(fs procfs.FS, pid int) (Ticks, error) {
	f, err := fs.Open(strconv.Itoa(pid), "stat")
	if err != nil {
		return Ticks{}, &procfs.ProcessGoneError{PID: pid, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Ticks{}, &procfs.ProcessGoneError{PID: pid, Err: err}
	}
	return parseStat(fs.PIDPath(pid, "stat"), pid, string(data))
}

// parseStat splits the record around the parenthesized name, which may itself
// contain spaces or parentheses, and reads the remaining fields by position.
func parseStat(path string, pid int, line string) (Ticks, error) {
	line = strings.TrimSpace(line)
	l := strings.IndexByte(line, '(')
	r := strings.LastIndexByte(line, ')')
	if l <= 0 || r < l {
		return Ticks{}, procfs.ParseErrorf(path, "process name is not enclosed in parentheses")
	}

	got, err := strconv.Atoi(strings.TrimSpace(line[:l]))
	if err != nil {
		return Ticks{}, procfs.ParseErrorf(path, "pid field: %v", err)
	}
	if got != pid {
		return Ticks{}, procfs.ParseErrorf(path, "record is for pid %d", got)
	}

	rest := strings.Fields(line[r+1:])
	field := func(i int) string { return rest[i-fieldState] }
	if len(rest) < fieldSTime-fieldState+1 {
		return Ticks{}, procfs.ParseErrorf(path, "expected at least %d fields, got %d", fieldSTime, len(rest)+2)
	}

	utime, err := strconv.ParseUint(field(fieldUTime), 10, 64)
	if err != nil {
		return Ticks{}, procfs.ParseErrorf(path, "utime: %v", err)
	}
	stime, err := strconv.ParseUint(field(fieldSTime), 10, 64)
	if err != nil {
		return Ticks{}, procfs.ParseErrorf(path, "stime: %v", err)
	}

	return Ticks{
		Name:  CleanName(line[l : r+1]),
		UTime: utime,
		STime: stime,
	}, nil
}

// CleanName removes every literal parenthesis from a raw name field.
func CleanName(raw string) string {
	return strings.NewReplacer("(", "", ")", "").Replace(raw)
}
