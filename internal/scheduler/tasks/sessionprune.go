package tasks

import (
	"github.com/moodk/moodk/internal/scheduler"
	"github.com/moodk/moodk/internal/session"
)

const SessionPruneTaskID = "session-prune"

// RegisterSessionPruneTask registers the idle session sweep.
func RegisterSessionPruneTask(sched *scheduler.Scheduler, sessions *session.Manager, cron string) error {
	if cron == "" {
		cron = "*/10 * * * *"
	}
	return sched.RegisterTask(&scheduler.TaskConfig{
		ID:          SessionPruneTaskID,
		Name:        "Session Prune",
		Description: "Drops sessions that have been idle past the configured window",
		Cron:        cron,
		Func:        sessions.Prune,
	})
}
