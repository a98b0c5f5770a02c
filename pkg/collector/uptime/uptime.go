package uptime

import (
	"os"
	"strconv"
	"strings"

	"github.com/srodi/sysmon/pkg/procfs"
)

// readFile allows tests to stub reading the uptime file.
var readFile = os.ReadFile

// ReadSeconds returns the leading value of the uptime file: seconds since boot.
func ReadSeconds(fs procfs.FS) (float64, error) {
	path := fs.Path("uptime")
	data, err := readFile(path)
	if err != nil {
		return 0, &procfs.IOError{Path: path, Err: err}
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, procfs.ParseErrorf(path, "empty file")
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || secs < 0 {
		return 0, procfs.ParseErrorf(path, "invalid uptime %q", fields[0])
	}
	return secs, nil
}

// Hours converts seconds of uptime to hours.
func Hours(seconds float64) float64 {
	return seconds / 3600
}
