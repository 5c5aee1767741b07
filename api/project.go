package api

import (
	"cmdb/internal/services"
	"cmdb/internal/types"
	"cmdb/pkg/response"

	"github.com/gin-gonic/gin"
)

type projectController struct{}

var ProjectController = new(projectController)

func (projectController projectController) API(gin *gin.RouterGroup) {
	p := gin.Group("project")
	{
		p.POST("projectCreate", projectController.Create)
		p.POST("projectUpdate", projectController.Update)
		p.POST("projectDelete", projectController.Delete)
		p.GET("projectList", projectController.List)
	}
}

func (projectController projectController) Create(ctx *gin.Context) {
	r := new(types.RequestProjectCreate)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	if err := r.ValidateParams(); err != nil {
		response.Fail(ctx, nil, err.Error())
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return services.ProjectService.Create(r)
	})
}

func (projectController projectController) Update(ctx *gin.Context) {
	r := new(types.RequestProjectUpdate)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return nil, services.ProjectService.Update(r)
	})
}

func (projectController projectController) Delete(ctx *gin.Context) {
	r := new(types.RequestProjectQuery)
	BindJson(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return nil, services.ProjectService.Delete(r.UUID)
	})
}

func (projectController projectController) List(ctx *gin.Context) {
	r := new(types.RequestProjectQuery)
	BindQuery(ctx, r)
	if ctx.IsAborted() {
		return
	}
	Service(ctx, func() (interface{}, interface{}) {
		return services.ProjectService.List(r)
	})
}
