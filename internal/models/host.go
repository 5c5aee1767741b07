package models

// Host 主机表模型
// cpu/model/memory/os 由采集流程回填，创建后只读
type Host struct {
	ManagedBase
	Name     string `gorm:"column:name;type:varchar(64);not null;uniqueIndex:uk_name_project" json:"name"`
	Username string `gorm:"column:username;type:varchar(32);not null" json:"username"`
	Password string `gorm:"column:password;type:varchar(64);not null" json:"-"`
	SSHPort  int    `gorm:"column:ssh_port;type:int;not null" json:"sshPort"`
	Type     int    `gorm:"column:type;type:smallint" json:"type"`
	CPU      int    `gorm:"column:cpu;type:smallint;not null" json:"cpu"`
	Model    string `gorm:"column:model;type:varchar(64)" json:"model"`
	Memory   int    `gorm:"column:memory;type:int;not null" json:"memory"`
	OS       string `gorm:"column:os;type:varchar(24)" json:"os"`

	// 逻辑外键，不建数据库级约束
	Project string `gorm:"column:project;type:varchar(32);uniqueIndex:uk_name_project;index" json:"project"`
	IDC     string `gorm:"column:idc;type:varchar(32);index" json:"idc"`
}

func (Host) TableName() string {
	return "host"
}
