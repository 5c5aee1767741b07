package api

import (
	"cmdb/internal/services"
	"cmdb/internal/types"

	"github.com/gin-gonic/gin"
)

type monitorDataController struct{}

var MonitorDataController = new(monitorDataController)

func (monitorDataController monitorDataController) API(gin *gin.RouterGroup) {
	m := gin.Group("monitorData")
	{
		m.GET("monitorDataList", monitorDataController.List)
	}
}

func (monitorDataController monitorDataController) List(ctx *gin.Context) {
	r := new(types.RequestMonitorDataQuery)
	BindQuery(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return services.MonitorDataService.List(r)
	})
}
