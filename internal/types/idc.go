package types

import (
	"fmt"

	"cmdb/internal/models"
)

type RequestIDCCreate struct {
	Name    string `json:"name" form:"name"`
	Region  string `json:"region" form:"region"`
	Enabled *bool  `json:"enabled" form:"enabled"`
}

func (r *RequestIDCCreate) ValidateParams() error {
	if r.Name == "" {
		return fmt.Errorf("name(机房名称)不可为空")
	}
	return nil
}

type RequestIDCUpdate struct {
	UUID    string `json:"uuid" form:"uuid"`
	Name    string `json:"name" form:"name"`
	Region  string `json:"region" form:"region"`
	Enabled *bool  `json:"enabled" form:"enabled"`
}

type RequestIDCQuery struct {
	UUID   string `json:"uuid" form:"uuid"`
	Query  string `json:"query" form:"query"`
	Region string `json:"region" form:"region"`
	models.Page
}

type ResponseIDCList struct {
	List  []models.IDC `json:"list"`
	Total int64        `json:"total"`
}
