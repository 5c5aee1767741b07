package tasks

import (
	"cmdb/internal/ctx"
	"cmdb/pkg/executor"
	"cmdb/pkg/scheduler"
)

// RegisterAll 注册全部任务类型
// 任务按类型名登记，调度器只认类型名，构造细节收敛在这里
func RegisterAll(sched *scheduler.Scheduler, svcCtx *ctx.Context, runner *executor.Runner) error {
	builders := map[string]scheduler.JobBuilder{
		"monitor_sync": func(args ...string) (scheduler.Job, error) {
			return NewMonitorSyncJob(svcCtx, runner), nil
		},
		"hardware_sync": func(args ...string) (scheduler.Job, error) {
			return NewHardwareSyncJob(svcCtx), nil
		},
	}
	for kind, build := range builders {
		if err := sched.Register(kind, build); err != nil {
			return err
		}
	}
	return nil
}
