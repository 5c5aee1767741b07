package models

// IP IP地址表模型
// type 在创建时由地址自动判定内外网，不接受调用方传入；
// used_to_sync 标记该地址用于监控同步，同一主机至多一条为 true
type IP struct {
	ResourceBase
	Address    string `gorm:"column:address;type:varchar(255);not null;index" json:"address"`
	Type       int    `gorm:"column:type;type:smallint;not null" json:"type"`
	Bandwidth  int    `gorm:"column:bandwidth;type:int" json:"bandwidth"`
	Status     int    `gorm:"column:status;type:smallint;not null" json:"status"`
	UsedToSync bool   `gorm:"column:used_to_sync;type:tinyint(1);not null;default:0" json:"usedToSync"`

	// 逻辑外键，parent 为宿主机IP（NAT/浮动IP场景）
	IDC    string `gorm:"column:idc;type:varchar(32);index" json:"idc"`
	Parent string `gorm:"column:parent;type:varchar(255)" json:"parent"`
	Host   string `gorm:"column:host;type:varchar(32);index" json:"host"`
}

func (IP) TableName() string {
	return "ip"
}
