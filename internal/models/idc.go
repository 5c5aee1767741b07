package models

// IDC 机房表模型
// 删除前需保证没有主机/磁盘/IP 仍引用该机房
type IDC struct {
	ManagedBase
	Name    string `gorm:"column:name;type:varchar(64);not null;uniqueIndex" json:"name"`
	Region  string `gorm:"column:region;type:varchar(64);index" json:"region"`
	Enabled *bool  `gorm:"column:enabled;type:tinyint(1);not null;default:1" json:"enabled"`
}

func (IDC) TableName() string {
	return "idc"
}
