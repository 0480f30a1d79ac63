package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(404, 20*time.Millisecond)
	c.Record(429, 0)
	c.Record(500, 30*time.Millisecond)
	c.PayrollCalculated(4, 1)
	c.JobFailed()

	snap := c.Snapshot()
	assert.Equal(t, uint64(4), snap["requestsTotal"])
	assert.Equal(t, uint64(2), snap["clientErrorsTotal"])
	assert.Equal(t, uint64(1), snap["serverErrorsTotal"])
	assert.Equal(t, uint64(1), snap["rateLimitedTotal"])
	assert.Equal(t, uint64(60), snap["totalDurationMs"])
	assert.Equal(t, float64(15), snap["avgDurationMs"])
	assert.Equal(t, uint64(4), snap["payrollRowsCalculated"])
	assert.Equal(t, uint64(1), snap["payrollRowsSkippedPaid"])
	assert.Equal(t, uint64(1), snap["jobsFailedTotal"])
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.Record(200, time.Second)
	c.PayrollCalculated(1, 0)
	c.JobFailed()
}
