package api

import (
	"cmdb/internal/services"
	"cmdb/internal/types"
	"cmdb/pkg/response"

	"github.com/gin-gonic/gin"
)

type ipController struct{}

var IPController = new(ipController)

func (ipController ipController) API(gin *gin.RouterGroup) {
	i := gin.Group("ip")
	{
		i.POST("ipCreate", ipController.Create)
		i.POST("ipUpdate", ipController.Update)
		i.POST("ipDelete", ipController.Delete)
		i.GET("ipList", ipController.List)
	}
}

func (ipController ipController) Create(ctx *gin.Context) {
	r := new(types.RequestIPCreate)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	if err := r.ValidateParams(); err != nil {
		response.Fail(ctx, nil, err.Error())
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return services.IPService.Create(r)
	})
}

func (ipController ipController) Update(ctx *gin.Context) {
	r := new(types.RequestIPUpdate)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return nil, services.IPService.Update(r)
	})
}

func (ipController ipController) Delete(ctx *gin.Context) {
	r := new(types.RequestIPQuery)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return nil, services.IPService.Delete(r.UUID)
	})
}

func (ipController ipController) List(ctx *gin.Context) {
	r := new(types.RequestIPQuery)
	BindQuery(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return services.IPService.List(r)
	})
}
