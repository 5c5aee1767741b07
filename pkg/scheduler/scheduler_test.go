package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name    string
	mu      sync.Mutex
	runs    int
	block   chan struct{}
	panicOn bool
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Run() {
	j.mu.Lock()
	j.runs++
	j.mu.Unlock()
	if j.panicOn {
		panic("boom")
	}
	if j.block != nil {
		<-j.block
	}
}

func (j *countingJob) count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.runs
}

func newScheduler(t *testing.T) *Scheduler {
	t.Helper()
	return New(context.Background())
}

func TestRegisterDuplicateKind(t *testing.T) {
	s := newScheduler(t)
	build := func(args ...string) (Job, error) { return &countingJob{name: "j"}, nil }

	require.NoError(t, s.Register("monitor_sync", build))
	require.Error(t, s.Register("monitor_sync", build))
}

func TestAddJobUnknownKind(t *testing.T) {
	s := newScheduler(t)

	_, err := s.AddIntervalJob("nope", time.Second)
	require.Error(t, err)

	_, err = s.AddImmediateJob("nope")
	require.Error(t, err)
}

func TestImmediateJobLifecycle(t *testing.T) {
	s := newScheduler(t)
	job := &countingJob{name: "一次性作业"}
	require.NoError(t, s.Register("once", func(args ...string) (Job, error) { return job, nil }))

	var mu sync.Mutex
	var events []Event
	done := make(chan struct{})
	s.AddListener(func(e Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
		if e.Status != StatusStarted {
			close(done)
		}
	})

	ids, err := s.AddImmediateJob("once")
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.NotEmpty(t, ids["一次性作业"])

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("等待作业完成超时")
	}

	assert.Equal(t, 1, job.count())
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 2)
	assert.Equal(t, StatusStarted, events[0].Status)
	assert.Equal(t, StatusSucceeded, events[1].Status)
}

func TestJobPanicReportsFailed(t *testing.T) {
	s := newScheduler(t)
	require.NoError(t, s.Register("bad", func(args ...string) (Job, error) {
		return &countingJob{name: "异常作业", panicOn: true}, nil
	}))

	done := make(chan Event, 1)
	s.AddListener(func(e Event) {
		if e.Status != StatusStarted {
			done <- e
		}
	})

	_, err := s.AddImmediateJob("bad")
	require.NoError(t, err)

	select {
	case e := <-done:
		assert.Equal(t, StatusFailed, e.Status)
		assert.Error(t, e.Err)
	case <-time.After(2 * time.Second):
		t.Fatal("等待失败事件超时")
	}
}

func TestIntervalJobBookkeeping(t *testing.T) {
	s := newScheduler(t)
	require.NoError(t, s.Register("tick", func(args ...string) (Job, error) {
		return &countingJob{name: "周期作业"}, nil
	}))

	ids, err := s.AddIntervalJob("tick", 15*time.Second)
	require.NoError(t, err)
	id := ids["周期作业"]
	require.NotEmpty(t, id)

	list := s.ListJobs()
	require.Len(t, list, 1)
	assert.Equal(t, "tick", list[0].Kind)
	assert.Equal(t, 15*time.Second, list[0].Interval)

	require.NoError(t, s.RemoveJob(id))
	assert.Empty(t, s.ListJobs())
	require.Error(t, s.RemoveJob(id))
}

// 同一登记项触发重叠时跳过本次执行
func TestRunJobSkipWhenRunning(t *testing.T) {
	s := newScheduler(t)
	job := &countingJob{name: "慢作业", block: make(chan struct{})}
	entry := &jobEntry{id: "j1", kind: "slow", job: job}

	go s.runJob(entry)

	// 等待第一个实例进入运行态
	require.Eventually(t, func() bool { return job.count() == 1 }, time.Second, 10*time.Millisecond)

	s.runJob(entry) // 应被跳过
	assert.Equal(t, 1, job.count())

	close(job.block)
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&entry.running) == 0
	}, time.Second, 10*time.Millisecond)

	s.runJob(entry)
	assert.Equal(t, 2, job.count())
}
