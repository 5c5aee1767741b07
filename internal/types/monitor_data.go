package types

import "cmdb/internal/models"

type RequestMonitorDataQuery struct {
	Instance string `json:"instance" form:"instance"`
	Metric   string `json:"metric" form:"metric"`
	// 时间范围，RFC3339 字符串，为空表示不限
	Start string `json:"start" form:"start"`
	End   string `json:"end" form:"end"`
	models.Page
}

type ResponseMonitorDataList struct {
	List  []models.MonitorData `json:"list"`
	Total int64                `json:"total"`
}
