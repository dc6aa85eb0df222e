package tasks

import (
	"context"

	"github.com/moodk/moodk/internal/api/ratelimit"
	"github.com/moodk/moodk/internal/scheduler"
)

const LimiterCleanupTaskID = "limiter-cleanup"

// RegisterLimiterCleanupTask registers the sweep of expired rate limit buckets.
func RegisterLimiterCleanupTask(sched *scheduler.Scheduler, limiter *ratelimit.IPLimiter, cron string) error {
	if cron == "" {
		cron = "*/5 * * * *"
	}
	return sched.RegisterTask(&scheduler.TaskConfig{
		ID:          LimiterCleanupTaskID,
		Name:        "Rate Limiter Cleanup",
		Description: "Forgets client IPs whose rate limit window has expired",
		Cron:        cron,
		Func: func(ctx context.Context) error {
			limiter.Cleanup()
			return ctx.Err()
		},
	})
}
