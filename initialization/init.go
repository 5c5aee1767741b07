package initialization

import (
	"context"
	"time"

	"cmdb/config"
	"cmdb/internal/ctx"
	"cmdb/internal/global"
	"cmdb/internal/repo"
	"cmdb/internal/services"
	"cmdb/internal/tasks"
	"cmdb/pkg/client"
	"cmdb/pkg/executor"
	"cmdb/pkg/scheduler"

	"github.com/zeromicro/go-zero/core/logc"
)

func InitBasic() {

	// 初始化配置
	global.Config = config.InitConfig()

	db := client.NewDBClient(client.DBConfig{
		Host:    global.Config.MySQL.Host,
		Port:    global.Config.MySQL.Port,
		User:    global.Config.MySQL.User,
		Pass:    global.Config.MySQL.Pass,
		DBName:  global.Config.MySQL.DBName,
		Timeout: global.Config.MySQL.Timeout,
	})
	if db == nil {
		panic("数据库初始化失败")
	}

	dbRepo := repo.NewRepoEntry(db)
	svcCtx := ctx.NewContext(context.Background(), dbRepo)

	timeout := time.Duration(global.Config.Ansible.TimeoutSeconds) * time.Second
	transport := executor.NewSSHTransport(global.Config.Ansible.KeyFile, timeout)
	runner := executor.NewRunner(transport, global.Config.Ansible.Forks, timeout)

	sched := scheduler.New(svcCtx.Ctx)
	if err := tasks.RegisterAll(sched, svcCtx, runner); err != nil {
		panic(err)
	}
	sched.AddListener(func(e scheduler.Event) {
		if e.Err != nil {
			logc.Errorf(svcCtx.Ctx, "任务 %s(%s) 状态: %s, err: %s", e.JobName, e.JobID, e.Status, e.Err.Error())
			return
		}
		logc.Infof(svcCtx.Ctx, "任务 %s(%s) 状态: %s", e.JobName, e.JobID, e.Status)
	})
	sched.Start()

	// 监控同步定时任务
	if global.Config.Monitor.Enabled {
		interval := time.Duration(global.Config.Monitor.SyncIntervalSeconds) * time.Second
		if _, err := sched.AddIntervalJob("monitor_sync", interval); err != nil {
			logc.Errorf(svcCtx.Ctx, "登记监控同步任务失败: %s", err.Error())
		}
	}

	services.NewServices(svcCtx, runner, sched)
}
