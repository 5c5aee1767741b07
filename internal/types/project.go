package types

import (
	"fmt"

	"cmdb/internal/models"
)

type RequestProjectCreate struct {
	Name    string `json:"name" form:"name"`
	Comment string `json:"comment" form:"comment"`
	Enabled *bool  `json:"enabled" form:"enabled"`
}

func (r *RequestProjectCreate) ValidateParams() error {
	if r.Name == "" {
		return fmt.Errorf("name(项目名称)不可为空")
	}
	return nil
}

type RequestProjectUpdate struct {
	UUID    string `json:"uuid" form:"uuid"`
	Name    string `json:"name" form:"name"`
	Comment string `json:"comment" form:"comment"`
	Enabled *bool  `json:"enabled" form:"enabled"`
}

type RequestProjectQuery struct {
	UUID  string `json:"uuid" form:"uuid"`
	Query string `json:"query" form:"query"`
	models.Page
}

type ResponseProjectList struct {
	List  []models.Project `json:"list"`
	Total int64            `json:"total"`
}
