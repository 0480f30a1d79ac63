package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps process-lifetime counters exposed on /metrics.
type Collector struct {
	requests        atomic.Uint64
	clientErrors    atomic.Uint64
	serverErrors    atomic.Uint64
	rateLimited     atomic.Uint64
	totalDurationMs atomic.Uint64
	payrollRows     atomic.Uint64
	payrollSkipped  atomic.Uint64
	jobsFailed      atomic.Uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.requests.Add(1)
	switch {
	case status == 429:
		c.rateLimited.Add(1)
		c.clientErrors.Add(1)
	case status >= 500:
		c.serverErrors.Add(1)
	case status >= 400:
		c.clientErrors.Add(1)
	}
	c.totalDurationMs.Add(uint64(duration.Milliseconds()))
}

func (c *Collector) PayrollCalculated(calculated, skipped int) {
	if c == nil {
		return
	}
	c.payrollRows.Add(uint64(calculated))
	c.payrollSkipped.Add(uint64(skipped))
}

func (c *Collector) JobFailed() {
	if c == nil {
		return
	}
	c.jobsFailed.Add(1)
}

func (c *Collector) Snapshot() map[string]any {
	total := c.requests.Load()
	totalMs := c.totalDurationMs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":          total,
		"clientErrorsTotal":      c.clientErrors.Load(),
		"serverErrorsTotal":      c.serverErrors.Load(),
		"rateLimitedTotal":       c.rateLimited.Load(),
		"avgDurationMs":          avg,
		"totalDurationMs":        totalMs,
		"payrollRowsCalculated":  c.payrollRows.Load(),
		"payrollRowsSkippedPaid": c.payrollSkipped.Load(),
		"jobsFailedTotal":        c.jobsFailed.Load(),
	}
}
