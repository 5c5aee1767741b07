package initialization

import (
	"context"

	"cmdb/api"
	"cmdb/internal/global"
	"cmdb/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/logc"
)

func InitRoute() {
	gin.SetMode(global.Config.Server.Mode)
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestLog(),
	)

	allApi(engine)

	logc.Infof(context.Background(), "服务启动, 监听端口: %s", global.Config.Server.Port)
	if err := engine.Run(":" + global.Config.Server.Port); err != nil {
		panic(err)
	}
}

func allApi(engine *gin.Engine) {
	v1 := engine.Group("api/cmdb")
	{
		api.HostController.API(v1)
		api.IPController.API(v1)
		api.DiskController.API(v1)
		api.ProjectController.API(v1)
		api.IDCController.API(v1)
		api.MetricController.API(v1)
		api.MonitorDataController.API(v1)
		api.TaskController.API(v1)
	}
}
