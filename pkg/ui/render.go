package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/srodi/sysmon/pkg/report"
	"github.com/srodi/sysmon/pkg/types"
)

const (
	pidWidth         = 8
	defaultNameWidth = 25
	maxNameWidth     = 48
	numberWidth      = 12
	// baseLineWidth is the table width with the default name column.
	baseLineWidth = pidWidth + defaultNameWidth + 2*numberWidth + 3
)

// View is everything one screen needs.
type View struct {
	Snapshot  *types.Snapshot // nil when this cycle's snapshot failed
	Sort      report.SortKey
	Filter    report.FilterConfig
	TopK      int
	Interval  time.Duration
	Status    string
	StatusErr bool
	Prompt    string
	NameWidth int
	Color     bool
}

// NameWidthFor sizes the name column for a terminal termWidth columns wide.
func NameWidthFor(termWidth int) int {
	if termWidth <= 0 {
		return defaultNameWidth
	}
	w := defaultNameWidth + termWidth - (baseLineWidth + 20)
	switch {
	case w < defaultNameWidth:
		return defaultNameWidth
	case w > maxNameWidth:
		return maxNameWidth
	}
	return w
}

// Render writes the metrics header, the ranked table, the status line and
// the prompt.
func Render(w io.Writer, v View) error {
	var b strings.Builder
	nameWidth := v.NameWidth
	if nameWidth <= 0 {
		nameWidth = defaultNameWidth
	}

	b.WriteString(Banner(v.Color))
	if s := v.Snapshot; s != nil {
		fmt.Fprintf(&b, "CPU Usage: %.2f%%\n", s.Metrics.CPUPercent)
		fmt.Fprintf(&b, "Memory Usage: %.2f%%\n", s.Metrics.MemPercent)
		fmt.Fprintf(&b, "System Uptime: %.2f hours\n", s.Metrics.UptimeHours)
	}
	b.WriteString(Rule(v.Color))

	if s := v.Snapshot; s != nil {
		rows := report.Rank(report.FilterRecords(s.Processes, v.Filter), v.Sort, v.TopK)
		fmt.Fprintf(&b, "\nUpdated: %s | Interval: %v | Sort: %s | Processes: %d",
			s.Taken.Format(time.TimeOnly), v.Interval, v.Sort, len(s.Processes))
		if s.Skipped > 0 {
			note := fmt.Sprintf(" (%d exited during scan)", s.Skipped)
			if v.Color {
				note = flame + note + reset
			}
			b.WriteString(note)
		}
		b.WriteString("\n\n")
		writeTable(&b, rows, nameWidth)
	}

	if v.Status != "" {
		b.WriteString("\n")
		switch {
		case v.StatusErr && v.Color:
			b.WriteString(alertRed + v.Status + reset)
		case v.Color:
			b.WriteString(mint + v.Status + reset)
		default:
			b.WriteString(v.Status)
		}
		b.WriteString("\n")
	}

	if v.Prompt != "" {
		b.WriteString("\n" + v.Prompt)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTable(b *strings.Builder, rows []types.ProcessRecord, nameWidth int) {
	fmt.Fprintf(b, "%-*s%-*s%-*s%-*s\n",
		pidWidth, "PID", nameWidth, "Process Name", numberWidth, "CPU (s)", numberWidth, "MEM (MB)")
	b.WriteString(strings.Repeat("-", pidWidth+nameWidth+2*numberWidth+3) + "\n")
	if len(rows) == 0 {
		b.WriteString("No processes matched current filters\n")
		return
	}
	for _, r := range rows {
		fmt.Fprintf(b, "%-*d%-*s%-*.2f%-*.2f\n",
			pidWidth, r.PID,
			nameWidth, truncate(r.Name, nameWidth-1),
			numberWidth, r.CPUSeconds,
			numberWidth, r.MemMB)
	}
}

// truncate cuts s to at most n runes so columns stay aligned.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n == 1 {
		return string(runes[:1])
	}
	return string(runes[:n-1]) + "~"
}
