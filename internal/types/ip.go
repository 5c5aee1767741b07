package types

import (
	"fmt"
	"net"

	"cmdb/internal/models"
)

type RequestIPCreate struct {
	Address string `json:"address" form:"address"`
	// type 不接受传入，创建时由地址推导
	Bandwidth  int    `json:"bandwidth" form:"bandwidth"`
	UsedToSync bool   `json:"usedToSync" form:"usedToSync"`
	Parent     string `json:"parent" form:"parent"`
	Host       string `json:"host" form:"host"`
	IDC        string `json:"idc" form:"idc"`
}

func (r *RequestIPCreate) ValidateParams() error {
	if net.ParseIP(r.Address) == nil {
		return fmt.Errorf("address(IP地址)不合法: %s", r.Address)
	}
	if r.Parent != "" && net.ParseIP(r.Parent) == nil {
		return fmt.Errorf("parent(宿主机地址)不合法: %s", r.Parent)
	}
	return nil
}

type RequestIPUpdate struct {
	UUID       string `json:"uuid" form:"uuid"`
	Bandwidth  int    `json:"bandwidth" form:"bandwidth"`
	UsedToSync bool   `json:"usedToSync" form:"usedToSync"`
	IDC        string `json:"idc" form:"idc"`
}

type RequestIPQuery struct {
	UUID  string `json:"uuid" form:"uuid"`
	Query string `json:"query" form:"query"`
	IDC   string `json:"idc" form:"idc"`
	Host  string `json:"host" form:"host"`
	models.Page
}

type ResponseIPList struct {
	List  []models.IP `json:"list"`
	Total int64       `json:"total"`
}
