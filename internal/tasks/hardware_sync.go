package tasks

import (
	"cmdb/internal/ctx"

	"github.com/zeromicro/go-zero/core/logc"
)

// HardwareSyncJob 硬件信息巡检任务
// 目前仅占位登记，巡检逻辑待硬件口径确定后补齐
type HardwareSyncJob struct {
	ctx *ctx.Context
}

func NewHardwareSyncJob(ctx *ctx.Context) *HardwareSyncJob {
	return &HardwareSyncJob{
		ctx: ctx,
	}
}

func (j *HardwareSyncJob) Name() string {
	return "hardware_sync"
}

func (j *HardwareSyncJob) Run() {
	logc.Info(j.ctx.Ctx, "硬件信息巡检任务触发, 当前为空实现")
}
