package models

import "time"

// 资源状态枚举，磁盘与IP共用空闲/已绑定两态
const (
	StatusFree  = 0 // 空闲
	StatusBound = 1 // 已绑定/挂载
)

// IP类型枚举，创建时由地址自动推导
const (
	IPTypePrivate = 0 // 内网
	IPTypePublic  = 1 // 外网
)

// 指标类型枚举
const (
	MetricTypeHost = 0 // 主机级指标
	MetricTypeDisk = 1 // 磁盘级指标
)

// ResourceBase 展示型资源的公共字段
type ResourceBase struct {
	ID        int64     `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"-"`
	UUID      string    `gorm:"column:uuid;type:varchar(32);not null;uniqueIndex" json:"uuid"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// ManagedBase 管理型资源的公共字段，带操作人与更新时间
type ManagedBase struct {
	ResourceBase
	CreatedBy string    `gorm:"column:created_by;type:varchar(32)" json:"createdBy"`
	UpdatedBy string    `gorm:"column:updated_by;type:varchar(32)" json:"updatedBy"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:datetime;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

type Page struct {
	Index int64 `json:"index" form:"index"`
	Size  int64 `json:"size" form:"size"`
}
