package cpu

import (
	"sync"

	"github.com/srodi/sysmon/pkg/types"
)

// RateCalculator turns successive cumulative CPU counter samples into a busy
// percentage. One instance lives for the whole monitor lifetime.
//
// The first sample has no prior state and reports 0. A sample whose total did
// not advance (duplicate read within one tick) or went backwards also reports
// 0. Stored counters are replaced on every call regardless.
type RateCalculator struct {
	mu        sync.Mutex
	primed    bool
	prevIdle  uint64
	prevTotal uint64
}

// NewRateCalculator returns a calculator with no prior sample.
func NewRateCalculator() *RateCalculator {
	return &RateCalculator{}
}

// Percent returns the CPU busy percentage in [0, 100] since the previous call.
func (r *RateCalculator) Percent(c types.CPUCounters) float64 {
	idle, total := c.IdleTime(), c.TotalTime()

	r.mu.Lock()
	defer r.mu.Unlock()

	primed, prevIdle, prevTotal := r.primed, r.prevIdle, r.prevTotal
	r.primed, r.prevIdle, r.prevTotal = true, idle, total

	if !primed || total <= prevTotal {
		return 0
	}
	diffTotal := float64(total - prevTotal)
	diffIdle := 0.0
	if idle > prevIdle {
		diffIdle = float64(idle - prevIdle)
	}
	return clampPercent((1 - diffIdle/diffTotal) * 100)
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
