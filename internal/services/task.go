package services

import (
	"cmdb/internal/ctx"
	"cmdb/internal/types"
	"cmdb/pkg/scheduler"
)

type taskService struct {
	ctx   *ctx.Context
	sched *scheduler.Scheduler
}

type InterTaskService interface {
	// Trigger 立即触发一次指定类型的任务
	Trigger(req *types.RequestTaskTrigger) (map[string]string, error)
	Remove(id string) error
	List() types.ResponseTaskList
}

func newInterTaskService(ctx *ctx.Context, sched *scheduler.Scheduler) InterTaskService {
	return &taskService{
		ctx:   ctx,
		sched: sched,
	}
}

func (s *taskService) Trigger(req *types.RequestTaskTrigger) (map[string]string, error) {
	return s.sched.AddImmediateJob(req.Kind, req.Args...)
}

func (s *taskService) Remove(id string) error {
	return s.sched.RemoveJob(id)
}

func (s *taskService) List() types.ResponseTaskList {
	return types.ResponseTaskList{List: s.sched.ListJobs()}
}
