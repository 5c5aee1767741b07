package services

import (
	"cmdb/internal/ctx"
	"cmdb/pkg/executor"
	"cmdb/pkg/scheduler"
)

var (
	HostService        InterHostService
	IPService          InterIPService
	DiskService        InterDiskService
	ProjectService     InterProjectService
	IDCService         InterIDCService
	MetricService      InterMetricService
	MonitorDataService InterMonitorDataService
	TaskService        InterTaskService
)

func NewServices(ctx *ctx.Context, runner *executor.Runner, sched *scheduler.Scheduler) {
	HostService = newInterHostService(ctx, runner)
	IPService = newInterIPService(ctx)
	DiskService = newInterDiskService(ctx)
	ProjectService = newInterProjectService(ctx)
	IDCService = newInterIDCService(ctx)
	MetricService = newInterMetricService(ctx)
	MonitorDataService = newInterMonitorDataService(ctx)
	TaskService = newInterTaskService(ctx, sched)
}
