package api

import (
	"cmdb/pkg/response"

	"github.com/gin-gonic/gin"
)

// Service 统一的业务调用出口，第二个返回值非空按失败处理
func Service(ctx *gin.Context, fn func() (interface{}, interface{})) {
	data, err := fn()
	if err != nil {
		if e, ok := err.(error); ok {
			response.Fail(ctx, nil, e.Error())
			return
		}
		response.Fail(ctx, nil, err)
		return
	}
	response.Success(ctx, data, "success")
}

// BindQuery 解析查询参数，失败直接终止请求
func BindQuery(ctx *gin.Context, req interface{}) {
	if err := ctx.ShouldBindQuery(req); err != nil {
		response.Fail(ctx, nil, "参数解析失败: "+err.Error())
		ctx.Abort()
	}
}

// BindJson 解析请求体，失败直接终止请求
func BindJson(ctx *gin.Context, req interface{}) {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.Fail(ctx, nil, "参数解析失败: "+err.Error())
		ctx.Abort()
	}
}
