package models

import "time"

// Metric 监控指标定义表
// name 同时是采集结果里事实项的键名；磁盘级指标统一读 disk_info 事实再按名取字段
type Metric struct {
	ManagedBase
	Name    string `gorm:"column:name;type:varchar(64);not null;index" json:"name"`
	Type    int    `gorm:"column:type;type:smallint;not null" json:"type"`
	Comment string `gorm:"column:comment;type:varchar(64)" json:"comment"`
}

func (Metric) TableName() string {
	return "metric"
}

// IsDiskMetric 是否为磁盘级指标
func (m Metric) IsDiskMetric() bool {
	return m.Type == MetricTypeDisk
}

// MonitorData 监控数据表
// instance 为主机uuid；磁盘级指标每个分区一行，分区名写入 extra_flag
type MonitorData struct {
	ID        int64     `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"-"`
	Instance  string    `gorm:"column:instance;type:varchar(32);not null;uniqueIndex:uk_instance_metric_time_flag" json:"instance"`
	Metric    string    `gorm:"column:metric;type:varchar(32);not null;uniqueIndex:uk_instance_metric_time_flag" json:"metric"`
	Value     float64   `gorm:"column:value;type:double;not null" json:"value"`
	// extra_flag 参与唯一键：磁盘级指标同一轮采样每个分区一行，时间戳相同，靠分区名区分
	ExtraFlag string    `gorm:"column:extra_flag;type:varchar(64);not null;default:'';uniqueIndex:uk_instance_metric_time_flag" json:"extraFlag"`
	Time      time.Time `gorm:"column:time;type:datetime;not null;uniqueIndex:uk_instance_metric_time_flag" json:"time"`
}

func (MonitorData) TableName() string {
	return "monitor_data"
}
