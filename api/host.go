package api

import (
	"cmdb/internal/services"
	"cmdb/internal/types"
	"cmdb/pkg/response"

	"github.com/gin-gonic/gin"
)

type hostController struct{}

var HostController = new(hostController)

func (hostController hostController) API(gin *gin.RouterGroup) {
	h := gin.Group("host")
	{
		h.POST("hostCreate", hostController.Create)
		h.POST("hostUpdate", hostController.Update)
		h.POST("hostDelete", hostController.Delete)
		h.GET("hostList", hostController.List)
		h.GET("hostGet", hostController.Get)
	}
}

// Create 纳管主机，远端初始化与事实采集成功后才会入库
func (hostController hostController) Create(ctx *gin.Context) {
	r := new(types.RequestHostCreate)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	if err := r.ValidateParams(); err != nil {
		response.Fail(ctx, nil, err.Error())
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return services.HostService.Create(r)
	})
}

func (hostController hostController) Update(ctx *gin.Context) {
	r := new(types.RequestHostUpdate)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return nil, services.HostService.Update(r)
	})
}

func (hostController hostController) Delete(ctx *gin.Context) {
	r := new(types.RequestHostQuery)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return nil, services.HostService.Delete(r.UUID)
	})
}

func (hostController hostController) List(ctx *gin.Context) {
	r := new(types.RequestHostQuery)
	BindQuery(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return services.HostService.List(r)
	})
}

func (hostController hostController) Get(ctx *gin.Context) {
	r := new(types.RequestHostQuery)
	BindQuery(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return services.HostService.Get(r.UUID)
	})
}
