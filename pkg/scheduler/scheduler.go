package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"cmdb/pkg/tools"

	"github.com/robfig/cron/v3"
	"github.com/zeromicro/go-zero/core/logc"
)

// Job 调度作业，Run 为无参入口
type Job interface {
	Name() string
	Run()
}

// JobBuilder 作业构造函数，按注册的作业类型静态分发
type JobBuilder func(args ...string) (Job, error)

// Status 作业生命周期状态
type Status string

const (
	StatusStarted   Status = "运行中"
	StatusSucceeded Status = "成功"
	StatusFailed    Status = "失败"
)

// Event 作业生命周期事件，推送给全部监听器
type Event struct {
	JobID   string
	JobName string
	Kind    string
	Status  Status
	Err     error
	At      time.Time
}

// Listener 生命周期事件监听器
type Listener func(Event)

// JobInfo 已登记作业的描述信息
type JobInfo struct {
	ID       string        `json:"id"`
	Kind     string        `json:"kind"`
	Name     string        `json:"name"`
	Interval time.Duration `json:"interval"`
}

type jobEntry struct {
	id       string
	kind     string
	job      Job
	interval time.Duration
	entryID  cron.EntryID
	running  int32
}

// Scheduler 事件调度器
// 作业类型通过 Register 静态注册，取代按字符串路径反射加载；
// 进程启动时构造一次并注入使用方，不做隐式单例。
type Scheduler struct {
	ctx       context.Context
	cron      *cron.Cron
	mu        sync.RWMutex
	registry  map[string]JobBuilder
	jobs      map[string]*jobEntry
	listeners []Listener
}

// New 创建调度器实例
func New(ctx context.Context) *Scheduler {
	return &Scheduler{
		ctx:      ctx,
		cron:     cron.New(),
		registry: make(map[string]JobBuilder),
		jobs:     make(map[string]*jobEntry),
	}
}

// Register 注册作业类型
func (s *Scheduler) Register(kind string, build JobBuilder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.registry[kind]; ok {
		return fmt.Errorf("作业类型已注册: %s", kind)
	}
	s.registry[kind] = build
	return nil
}

// AddListener 注册生命周期监听器
func (s *Scheduler) AddListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Start 启动调度器
func (s *Scheduler) Start() {
	s.cron.Start()
	logc.Info(s.ctx, "事件调度器启动成功")
}

// Stop 停止调度器，等待在途作业完成
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	logc.Info(s.ctx, "事件调度器已停止")
}

// AddIntervalJob 添加间隔性作业
// 返回 作业名 -> 作业ID 的映射
func (s *Scheduler) AddIntervalJob(kind string, every time.Duration, args ...string) (map[string]string, error) {
	entry, err := s.newEntry(kind, every, args...)
	if err != nil {
		return nil, err
	}

	entryID := s.cron.Schedule(cron.Every(every), cron.FuncJob(func() {
		s.runJob(entry)
	}))

	s.mu.Lock()
	entry.entryID = entryID
	s.jobs[entry.id] = entry
	s.mu.Unlock()

	logc.Infof(s.ctx, "间隔作业已登记, kind: %s, id: %s, interval: %s", kind, entry.id, every)
	return map[string]string{entry.job.Name(): entry.id}, nil
}

// AddImmediateJob 添加一次性作业，立即异步执行
func (s *Scheduler) AddImmediateJob(kind string, args ...string) (map[string]string, error) {
	entry, err := s.newEntry(kind, 0, args...)
	if err != nil {
		return nil, err
	}

	go s.runJob(entry)

	logc.Infof(s.ctx, "一次性作业已触发, kind: %s, id: %s", kind, entry.id)
	return map[string]string{entry.job.Name(): entry.id}, nil
}

// RemoveJob 按ID移除作业
func (s *Scheduler) RemoveJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("作业不存在: %s", id)
	}
	if entry.interval > 0 {
		s.cron.Remove(entry.entryID)
	}
	delete(s.jobs, id)
	return nil
}

// ListJobs 列出全部登记作业
func (s *Scheduler) ListJobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]JobInfo, 0, len(s.jobs))
	for _, entry := range s.jobs {
		list = append(list, JobInfo{
			ID:       entry.id,
			Kind:     entry.kind,
			Name:     entry.job.Name(),
			Interval: entry.interval,
		})
	}
	return list
}

func (s *Scheduler) newEntry(kind string, every time.Duration, args ...string) (*jobEntry, error) {
	s.mu.RLock()
	build, ok := s.registry[kind]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("未注册的作业类型: %s", kind)
	}

	job, err := build(args...)
	if err != nil {
		return nil, fmt.Errorf("构造作业失败, kind: %s, err: %w", kind, err)
	}

	return &jobEntry{
		id:       tools.RandId(),
		kind:     kind,
		job:      job,
		interval: every,
	}, nil
}

// runJob 执行作业并广播生命周期事件
// 同一作业登记项最多一个在途实例，触发重叠时跳过本次执行
func (s *Scheduler) runJob(entry *jobEntry) {
	if !atomic.CompareAndSwapInt32(&entry.running, 0, 1) {
		logc.Infof(s.ctx, "作业仍在执行, 跳过本次触发, id: %s, name: %s", entry.id, entry.job.Name())
		return
	}
	defer atomic.StoreInt32(&entry.running, 0)

	s.notify(entry, StatusStarted, nil)

	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("作业异常退出: %v", r)
			}
		}()
		entry.job.Run()
	}()

	if runErr != nil {
		s.notify(entry, StatusFailed, runErr)
		return
	}
	s.notify(entry, StatusSucceeded, nil)
}

func (s *Scheduler) notify(entry *jobEntry, status Status, err error) {
	event := Event{
		JobID:   entry.id,
		JobName: entry.job.Name(),
		Kind:    entry.kind,
		Status:  status,
		Err:     err,
		At:      time.Now(),
	}

	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l(event)
	}

	switch status {
	case StatusFailed:
		logc.Errorf(s.ctx, "作业执行失败, id: %s, name: %s, err: %v", entry.id, entry.job.Name(), err)
	case StatusSucceeded:
		logc.Infof(s.ctx, "作业执行成功, id: %s, name: %s", entry.id, entry.job.Name())
	}
}
