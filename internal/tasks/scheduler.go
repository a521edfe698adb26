package tasks

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartScheduler enqueues the periodic jobs: daily reminders at 08:00 UTC
// and monthly reports at 09:00 UTC on the first of each month. It runs until
// ctx is cancelled.
func StartScheduler(ctx context.Context, q *Queue, logger *zap.Logger) {
	go runAt(ctx, nextDaily, func() {
		if _, err := q.Enqueue(ctx, JobDailyReminders, struct{}{}); err != nil {
			logger.Error("failed to enqueue daily reminders", zap.Error(err))
		}
	})
	go runAt(ctx, nextMonthly, func() {
		if _, err := q.Enqueue(ctx, JobMonthlyReports, struct{}{}); err != nil {
			logger.Error("failed to enqueue monthly reports", zap.Error(err))
		}
	})
}

func runAt(ctx context.Context, next func(time.Time) time.Time, fire func()) {
	for {
		timer := time.NewTimer(time.Until(next(time.Now().UTC())))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			fire()
		}
	}
}

func nextDaily(now time.Time) time.Time {
	run := time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, time.UTC)
	if !run.After(now) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}

func nextMonthly(now time.Time) time.Time {
	run := time.Date(now.Year(), now.Month(), 1, 9, 0, 0, 0, time.UTC)
	if !run.After(now) {
		run = run.AddDate(0, 1, 0)
	}
	return run
}
