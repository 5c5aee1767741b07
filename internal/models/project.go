package models

// Project 项目表模型，主机的逻辑归属
type Project struct {
	ResourceBase
	Name    string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Enabled *bool  `gorm:"column:enabled;type:tinyint(1);not null;default:1" json:"enabled"`
	Comment string `gorm:"column:comment;type:text" json:"comment"`
}

func (Project) TableName() string {
	return "project"
}

func (p Project) GetEnabled() *bool {
	if p.Enabled == nil {
		isOk := false
		return &isOk
	}
	return p.Enabled
}
