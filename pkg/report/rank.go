package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/srodi/sysmon/pkg/types"
)

// SortKey selects the column used to rank processes.
type SortKey int

const (
	// SortCPU ranks by cumulative CPU seconds. It is the default.
	SortCPU SortKey = iota
	// SortMemory ranks by resident memory.
	SortMemory
)

func (k SortKey) String() string {
	if k == SortMemory {
		return "Memory"
	}
	return "CPU"
}

// ParseSortChoice maps the operator's numeric answer to a SortKey: 2 selects
// memory, anything else (including unparseable input) selects CPU.
func ParseSortChoice(s string) SortKey {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err == nil && n == 2 {
		return SortMemory
	}
	return SortCPU
}

// ParseSortName accepts the names used in configuration ("cpu", "mem",
// "memory") as well as the numeric choices.
func ParseSortName(s string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cpu", "1":
		return SortCPU, true
	case "mem", "memory", "2":
		return SortMemory, true
	}
	return SortCPU, false
}

// FilterConfig controls which processes appear in the table.
type FilterConfig struct {
	HideKernel bool
	NameFilter string // case-insensitive substring; empty matches everything
}

// FilterRecords returns the records passing cfg, preserving order.
func FilterRecords(records []types.ProcessRecord, cfg FilterConfig) []types.ProcessRecord {
	filtered := make([]types.ProcessRecord, 0, len(records))
	needle := strings.ToLower(cfg.NameFilter)
	for _, rec := range records {
		if passesFilters(rec, cfg.HideKernel, needle) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// Rank returns a copy of records sorted descending by key and cut to topK.
// Ties keep their incoming order. topK <= 0 keeps every record.
func Rank(records []types.ProcessRecord, key SortKey, topK int) []types.ProcessRecord {
	ranked := make([]types.ProcessRecord, len(records))
	copy(ranked, records)

	value := func(r types.ProcessRecord) float64 { return r.CPUSeconds }
	if key == SortMemory {
		value = func(r types.ProcessRecord) float64 { return r.MemMB }
	}
	sort.SliceStable(ranked, func(i, j int) bool { return value(ranked[i]) > value(ranked[j]) })

	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

func passesFilters(rec types.ProcessRecord, hideKernel bool, needle string) bool {
	if hideKernel && isKernelThread(rec) {
		return false
	}
	if needle != "" && !strings.Contains(strings.ToLower(rec.Name), needle) {
		return false
	}
	return true
}

// isKernelThread recognizes kernel threads: they map no user memory and carry
// one of the well-known kernel worker names.
func isKernelThread(rec types.ProcessRecord) bool {
	if rec.MemMB != 0 {
		return false
	}
	name := strings.ToLower(rec.Name)
	switch {
	case strings.HasPrefix(name, "kworker"), strings.HasPrefix(name, "ksoftirqd"), strings.HasPrefix(name, "kthreadd"),
		strings.HasPrefix(name, "migration"), strings.HasPrefix(name, "watchdog"), strings.HasPrefix(name, "rcu"),
		strings.HasPrefix(name, "irq/"), strings.HasPrefix(name, "cpuhp"), strings.HasPrefix(name, "kswapd"):
		return true
	}
	return false
}
