package types

import "cmdb/internal/models"

type RequestDiskQuery struct {
	UUID  string `json:"uuid" form:"uuid"`
	Query string `json:"query" form:"query"`
	IDC   string `json:"idc" form:"idc"`
	models.Page
}

// ResponseDiskDetail 磁盘详情，带挂载主机列表
type ResponseDiskDetail struct {
	models.Disk
	Hosts []string `json:"hosts"`
}

type ResponseDiskList struct {
	List  []models.Disk `json:"list"`
	Total int64         `json:"total"`
}
