package types

import (
	"fmt"

	"cmdb/internal/models"
)

type RequestMetricCreate struct {
	Name    string `json:"name" form:"name"`
	Type    int    `json:"type" form:"type"`
	Comment string `json:"comment" form:"comment"`
}

func (r *RequestMetricCreate) ValidateParams() error {
	if r.Name == "" {
		return fmt.Errorf("name(指标名称)不可为空")
	}
	if r.Type != models.MetricTypeHost && r.Type != models.MetricTypeDisk {
		return fmt.Errorf("type(指标类型)不合法: %d", r.Type)
	}
	return nil
}

type RequestMetricUpdate struct {
	UUID    string `json:"uuid" form:"uuid"`
	Name    string `json:"name" form:"name"`
	Type    int    `json:"type" form:"type"`
	Comment string `json:"comment" form:"comment"`
}

type RequestMetricQuery struct {
	UUID  string `json:"uuid" form:"uuid"`
	Query string `json:"query" form:"query"`
	models.Page
}

type ResponseMetricList struct {
	List  []models.Metric `json:"list"`
	Total int64           `json:"total"`
}
