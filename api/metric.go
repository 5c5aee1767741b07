package api

import (
	"cmdb/internal/services"
	"cmdb/internal/types"
	"cmdb/pkg/response"

	"github.com/gin-gonic/gin"
)

type metricController struct{}

var MetricController = new(metricController)

func (metricController metricController) API(gin *gin.RouterGroup) {
	m := gin.Group("metric")
	{
		m.POST("metricCreate", metricController.Create)
		m.POST("metricUpdate", metricController.Update)
		m.POST("metricDelete", metricController.Delete)
		m.GET("metricList", metricController.List)
	}
}

func (metricController metricController) Create(ctx *gin.Context) {
	r := new(types.RequestMetricCreate)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	if err := r.ValidateParams(); err != nil {
		response.Fail(ctx, nil, err.Error())
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return services.MetricService.Create(r)
	})
}

func (metricController metricController) Update(ctx *gin.Context) {
	r := new(types.RequestMetricUpdate)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return nil, services.MetricService.Update(r)
	})
}

func (metricController metricController) Delete(ctx *gin.Context) {
	r := new(types.RequestMetricQuery)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return nil, services.MetricService.Delete(r.UUID)
	})
}

func (metricController metricController) List(ctx *gin.Context) {
	r := new(types.RequestMetricQuery)
	BindQuery(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return services.MetricService.List(r)
	})
}
