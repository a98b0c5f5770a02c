package control

import (
	"strconv"
	"strings"

	"github.com/srodi/sysmon/pkg/report"
)

const (
	sortQuestion = "Sort by: 1) CPU  2) Memory  (default: CPU): "
	pidQuestion  = "Enter PID to kill or 0 to refresh: "
)

type stage int

const (
	askSort stage = iota
	askPID
)

// Action is what one line of operator input asks for.
type Action struct {
	Sort        report.SortKey
	SortChanged bool
	PID         int // > 0 requests termination
	Quit        bool
}

// Prompt alternates between asking for the sort column and for a process to
// terminate. It only interprets lines; reading them is up to the caller.
type Prompt struct {
	stage stage
}

// Question returns the text shown for the current stage.
func (p *Prompt) Question() string {
	if p.stage == askPID {
		return pidQuestion
	}
	return sortQuestion
}

// Feed interprets one input line and advances to the next question.
// "q" or "quit" ends the session at either stage.
func (p *Prompt) Feed(line string) Action {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "q", "quit":
		return Action{Quit: true}
	}

	if p.stage == askSort {
		p.stage = askPID
		return Action{Sort: report.ParseSortChoice(line), SortChanged: true}
	}

	p.stage = askSort
	pid, err := strconv.Atoi(line)
	if err != nil || pid < 0 {
		pid = 0
	}
	return Action{PID: pid}
}
