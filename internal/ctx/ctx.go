package ctx

import (
	"context"

	"cmdb/internal/repo"
)

// Context 服务层上下文，注入数据访问入口与根上下文
// 各服务实例化时持有同一份，关闭时取消 Ctx 即可让后台任务退出
type Context struct {
	DB  repo.Entry
	Ctx context.Context
}

func NewContext(ctx context.Context, db repo.Entry) *Context {
	return &Context{
		DB:  db,
		Ctx: ctx,
	}
}
