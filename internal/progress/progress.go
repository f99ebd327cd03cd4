// Package progress reports completed probe tasks through the logger.
package progress

import (
	"log/slog"
	"sync/atomic"
)

// Counter counts completed tasks and logs every `every` completions and on the last one.
type Counter struct {
	total  int64
	every  int64
	done   atomic.Int64
	logger *slog.Logger
}

// NewCounter builds a counter for total tasks. every <= 0 logs roughly every 10%.
func NewCounter(total, every int, log *slog.Logger) *Counter {
	step := int64(every)
	if step <= 0 {
		step = int64(total) / 10
	}
	if step < 1 {
		step = 1
	}
	return &Counter{total: int64(total), every: step, logger: log}
}

// Done records one completed task. Safe for concurrent use.
func (c *Counter) Done() {
	n := c.done.Add(1)
	if c.logger == nil {
		return
	}
	if n%c.every == 0 || n == c.total {
		c.logger.Info("probe progress", "done", n, "total", c.total)
	}
}

// Completed returns the number of tasks reported so far.
func (c *Counter) Completed() int64 {
	return c.done.Load()
}
