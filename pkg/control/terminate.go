package control

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// kill allows tests to stub signal delivery.
var kill = unix.Kill

// ActionError reports a termination request the OS rejected.
type ActionError struct {
	PID    int
	Signal syscall.Signal
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("sending %s to pid %d: %v", signalName(e.Signal), e.PID, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// Terminate sends sig to pid and returns without waiting for the process to
// exit.
func Terminate(pid int, sig syscall.Signal) error {
	if pid <= 0 {
		return &ActionError{PID: pid, Signal: sig, Err: fmt.Errorf("invalid pid %d", pid)}
	}
	if err := kill(pid, sig); err != nil {
		return &ActionError{PID: pid, Signal: sig, Err: err}
	}
	return nil
}

// Outcome formats the operator-facing result of a termination request.
func Outcome(pid int, err error) string {
	if err != nil {
		return "Error terminating process: " + err.Error()
	}
	return fmt.Sprintf("Process %d terminated successfully.", pid)
}

// ParseSignal accepts "SIGTERM", "TERM", "term" or a signal number.
func ParseSignal(name string) (syscall.Signal, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return unix.SIGTERM, nil
	}
	if n, err := strconv.Atoi(name); err == nil {
		if n <= 0 || unix.SignalName(syscall.Signal(n)) == "" {
			return 0, fmt.Errorf("unknown signal %d", n)
		}
		return syscall.Signal(n), nil
	}
	if !strings.HasPrefix(name, "SIG") {
		name = "SIG" + name
	}
	if sig := unix.SignalNum(name); sig != 0 {
		return sig, nil
	}
	return 0, fmt.Errorf("unknown signal %q", name)
}

func signalName(sig syscall.Signal) string {
	if name := unix.SignalName(sig); name != "" {
		return name
	}
	return sig.String()
}
