package api

import (
	"cmdb/internal/services"
	"cmdb/internal/types"

	"github.com/gin-gonic/gin"
)

type diskController struct{}

var DiskController = new(diskController)

// 磁盘记录由主机纳管流程维护，这里只提供查询
func (diskController diskController) API(gin *gin.RouterGroup) {
	d := gin.Group("disk")
	{
		d.GET("diskList", diskController.List)
		d.GET("diskGet", diskController.Get)
	}
}

func (diskController diskController) List(ctx *gin.Context) {
	r := new(types.RequestDiskQuery)
	BindQuery(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return services.DiskService.List(r)
	})
}

func (diskController diskController) Get(ctx *gin.Context) {
	r := new(types.RequestDiskQuery)
	BindQuery(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return services.DiskService.Get(r.UUID)
	})
}
