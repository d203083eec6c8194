// Package maintenance runs periodic background tasks as Go tickers: the
// scheduled snapshot refresh and cache eviction for the long-running API.
package maintenance

import (
	"context"
	"log/slog"
	"time"
)

// Task is one periodic job. A zero or negative Interval disables it.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context)
}

// Start launches all configured tasks. Blocks until ctx is cancelled and
// every task loop has returned. Intended to be called with `go`.
func Start(ctx context.Context, tasks []Task, logger *slog.Logger) {
	done := make(chan struct{})
	running := 0
	for _, task := range tasks {
		if task.Interval <= 0 || task.Run == nil {
			logger.Info("Maintenance task disabled", "task", task.Name)
			continue
		}
		running++
		t := time.NewTicker(task.Interval)
		go func() {
			defer t.Stop()
			runLoop(ctx, t.C, task.Run)
			done <- struct{}{}
		}()
		logger.Info("Maintenance task scheduled", "task", task.Name, "interval", task.Interval)
	}

	<-ctx.Done()
	for i := 0; i < running; i++ {
		<-done
	}
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func(ctx context.Context)) {
	for {
		select {
		case <-ch:
			fn(ctx)
		case <-ctx.Done():
			return
		}
	}
}
