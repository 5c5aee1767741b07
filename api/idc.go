package api

import (
	"cmdb/internal/services"
	"cmdb/internal/types"
	"cmdb/pkg/response"

	"github.com/gin-gonic/gin"
)

type idcController struct{}

var IDCController = new(idcController)

func (idcController idcController) API(gin *gin.RouterGroup) {
	i := gin.Group("idc")
	{
		i.POST("idcCreate", idcController.Create)
		i.POST("idcUpdate", idcController.Update)
		i.POST("idcDelete", idcController.Delete)
		i.GET("idcList", idcController.List)
	}
}

func (idcController idcController) Create(ctx *gin.Context) {
	r := new(types.RequestIDCCreate)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	if err := r.ValidateParams(); err != nil {
		response.Fail(ctx, nil, err.Error())
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return services.IDCService.Create(r)
	})
}

func (idcController idcController) Update(ctx *gin.Context) {
	r := new(types.RequestIDCUpdate)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return nil, services.IDCService.Update(r)
	})
}

func (idcController idcController) Delete(ctx *gin.Context) {
	r := new(types.RequestIDCQuery)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return nil, services.IDCService.Delete(r.UUID)
	})
}

func (idcController idcController) List(ctx *gin.Context) {
	r := new(types.RequestIDCQuery)
	BindQuery(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return services.IDCService.List(r)
	})
}
