package api

import (
	"cmdb/internal/services"
	"cmdb/internal/types"
	"cmdb/pkg/response"

	"github.com/gin-gonic/gin"
)

type taskController struct{}

var TaskController = new(taskController)

func (taskController taskController) API(gin *gin.RouterGroup) {
	t := gin.Group("task")
	{
		t.POST("taskTrigger", taskController.Trigger)
		t.POST("taskRemove", taskController.Remove)
		t.GET("taskList", taskController.List)
	}
}

// Trigger 立即触发一次指定类型的任务
func (taskController taskController) Trigger(ctx *gin.Context) {
	r := new(types.RequestTaskTrigger)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	if err := r.ValidateParams(); err != nil {
		response.Fail(ctx, nil, err.Error())
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return services.TaskService.Trigger(r)
	})
}

func (taskController taskController) Remove(ctx *gin.Context) {
	r := new(types.RequestTaskRemove)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return nil, services.TaskService.Remove(r.ID)
	})
}

func (taskController taskController) List(ctx *gin.Context) {
	Service(ctx, func() (interface{}, interface{}) {
		return services.TaskService.List(), nil
	})
}
