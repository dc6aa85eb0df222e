package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s, err := New(zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func TestRegisterTask_Duplicate(t *testing.T) {
	s := newTestScheduler(t)
	cfg := &TaskConfig{ID: "a", Name: "A", Cron: "0 * * * *", Func: func(context.Context) error { return nil }}

	require.NoError(t, s.RegisterTask(cfg))
	assert.ErrorIs(t, s.RegisterTask(cfg), ErrTaskExists)
}

func TestRegisterTask_BadCron(t *testing.T) {
	s := newTestScheduler(t)
	err := s.RegisterTask(&TaskConfig{ID: "bad", Cron: "not a cron", Func: func(context.Context) error { return nil }})
	assert.Error(t, err)
}

func TestRunNow(t *testing.T) {
	s := newTestScheduler(t)

	var runs atomic.Int32
	require.NoError(t, s.RegisterTask(&TaskConfig{
		ID:   "count",
		Name: "Count",
		Cron: "0 3 * * *",
		Func: func(context.Context) error {
			runs.Add(1)
			return nil
		},
	}))
	require.NoError(t, s.RegisterTask(&TaskConfig{
		ID:   "fail",
		Name: "Fail",
		Cron: "0 4 * * *",
		Func: func(context.Context) error { return errors.New("boom") },
	}))
	s.Start()

	require.NoError(t, s.RunNow("count"))
	assert.Equal(t, int32(1), runs.Load())

	require.NoError(t, s.RunNow("fail"))
	info, err := s.GetTask("fail")
	require.NoError(t, err)
	assert.Equal(t, "boom", info.LastError)
	assert.NotNil(t, info.LastRun)
	assert.False(t, info.Running)

	assert.ErrorIs(t, s.RunNow("nope"), ErrTaskUnknown)
	_, err = s.GetTask("nope")
	assert.ErrorIs(t, err, ErrTaskUnknown)
}

func TestListTasks_SortedWithNextRun(t *testing.T) {
	s := newTestScheduler(t)
	noop := func(context.Context) error { return nil }

	require.NoError(t, s.RegisterTask(&TaskConfig{ID: "b", Cron: "*/5 * * * *", Func: noop}))
	require.NoError(t, s.RegisterTask(&TaskConfig{ID: "a", Cron: "*/5 * * * *", Func: noop}))
	s.Start()

	tasks := s.ListTasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].ID)
	assert.Equal(t, "b", tasks[1].ID)

	require.Eventually(t, func() bool {
		info, err := s.GetTask("a")
		return err == nil && info.NextRun != nil
	}, time.Second, 10*time.Millisecond)
}

func TestStart_RunOnStart(t *testing.T) {
	s := newTestScheduler(t)

	done := make(chan struct{})
	require.NoError(t, s.RegisterTask(&TaskConfig{
		ID:         "boot",
		Cron:       "0 0 1 1 *",
		RunOnStart: true,
		Func: func(context.Context) error {
			close(done)
			return nil
		},
	}))
	s.Start()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunOnStart task did not run")
	}
}
