package procfs

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/tklauser/go-sysconf"
)

// DefaultRoot is where the kernel mounts the process table.
const DefaultRoot = "/proc"

// fallbackClockTicks is USER_HZ on every mainstream Linux build.
const fallbackClockTicks = 100

// sysconfValue allows tests to stub the platform clock-tick query.
var sysconfValue = sysconf.Sysconf

// FS resolves kernel-exposed files relative to a process table root.
type FS struct {
	root string
}

// NewFS returns an FS rooted at root, or at DefaultRoot when root is empty.
func NewFS(root string) FS {
	if root == "" {
		root = DefaultRoot
	}
	return FS{root: root}
}

// Root returns the directory the FS reads from.
func (fs FS) Root() string {
	if fs.root == "" {
		return DefaultRoot
	}
	return fs.root
}

// Path joins elem onto the root.
func (fs FS) Path(elem ...string) string {
	return filepath.Join(append([]string{fs.Root()}, elem...)...)
}

// PIDPath returns the path of name inside the directory of pid.
func (fs FS) PIDPath(pid int, name string) string {
	return fs.Path(strconv.Itoa(pid), name)
}

// Open opens a file below the root. The caller owns the descriptor.
func (fs FS) Open(elem ...string) (*os.File, error) {
	return os.Open(fs.Path(elem...))
}

// ReadDirNames lists the entry names of the root directory.
func (fs FS) ReadDirNames() ([]string, error) {
	dir, err := os.Open(fs.Root())
	if err != nil {
		return nil, &IOError{Path: fs.Root(), Err: err}
	}
	defer dir.Close()

	names, err := dir.Readdirnames(0)
	if err != nil {
		return nil, &IOError{Path: fs.Root(), Err: err}
	}
	return names, nil
}

// ClockTicks returns the number of clock ticks per second the kernel uses
// for per-process CPU accounting.
func ClockTicks() int64 {
	hz, err := sysconfValue(sysconf.SC_CLK_TCK)
	if err != nil || hz <= 0 {
		return fallbackClockTicks
	}
	return hz
}

// ParsePID reports whether name is a purely numeric process identifier.
func ParsePID(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return 0, false
		}
	}
	pid, err := strconv.Atoi(name)
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}
