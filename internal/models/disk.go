package models

// Disk 磁盘表模型
// uuid 由分区UUID与设备链接ID拼接后取MD5生成，跨主机共享的盘（如LVM/集群盘）
// 在多台主机上会解析出同一个 uuid，借此去重；与主机的归属关系经 DiskHost 维护
type Disk struct {
	ResourceBase
	Partition string `gorm:"column:partition;type:varchar(255)" json:"partition"`
	// 采集到的容量字符串的整数部分，单位保持源端上报口径，暂不做换算
	Size   int `gorm:"column:size;type:int;not null" json:"size"`
	Status int `gorm:"column:status;type:smallint;not null;default:1" json:"status"`

	// 逻辑外键
	IDC string `gorm:"column:idc;type:varchar(32);index" json:"idc"`
}

func (Disk) TableName() string {
	return "disk"
}

// DiskHost 磁盘主机关联表，一块盘可以挂载到多台主机
type DiskHost struct {
	ResourceBase
	DiskID string `gorm:"column:disk_id;type:varchar(32);not null;uniqueIndex:uk_disk_host" json:"diskId"`
	HostID string `gorm:"column:host_id;type:varchar(32);not null;uniqueIndex:uk_disk_host" json:"hostId"`
}

func (DiskHost) TableName() string {
	return "disk_host"
}
