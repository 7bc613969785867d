package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests        uint64
	errorRequests        uint64
	totalDurationMs      uint64
	punchesRecorded      uint64
	transitionsRejected  uint64
	integrityViolations  uint64
	consolidationRuns    uint64
	consolidationSkipped uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) PunchRecorded() { atomic.AddUint64(&c.punchesRecorded, 1) }

func (c *Collector) TransitionRejected() { atomic.AddUint64(&c.transitionsRejected, 1) }

func (c *Collector) IntegrityViolations(n int) {
	if n > 0 {
		atomic.AddUint64(&c.integrityViolations, uint64(n))
	}
}

func (c *Collector) ConsolidationRun(skipped int) {
	atomic.AddUint64(&c.consolidationRuns, 1)
	if skipped > 0 {
		atomic.AddUint64(&c.consolidationSkipped, uint64(skipped))
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":             total,
		"errorsTotal":               atomic.LoadUint64(&c.errorRequests),
		"avgDurationMs":             avg,
		"punchesRecorded":           atomic.LoadUint64(&c.punchesRecorded),
		"transitionsRejected":       atomic.LoadUint64(&c.transitionsRejected),
		"integrityViolations":       atomic.LoadUint64(&c.integrityViolations),
		"consolidationRuns":         atomic.LoadUint64(&c.consolidationRuns),
		"consolidationUnitsSkipped": atomic.LoadUint64(&c.consolidationSkipped),
	}
}
