package types

import (
	"fmt"
	"net"

	"cmdb/internal/models"
)

type RequestHostCreate struct {
	Name     string `json:"name" form:"name"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	SSHPort  int    `json:"sshPort" form:"sshPort"`
	Type     int    `json:"type" form:"type"`
	// 主机主IP，采集完成后与探测到的地址合并入库
	IP string `json:"ip" form:"ip"`
	// 宿主机IP，NAT/浮动IP场景可选
	ParentIP  string `json:"parentIp" form:"parentIp"`
	Bandwidth int    `json:"bandwidth" form:"bandwidth"`
	Project   string `json:"project" form:"project"`
	IDC       string `json:"idc" form:"idc"`
}

func (r *RequestHostCreate) ValidateParams() error {
	if r.Name == "" {
		return fmt.Errorf("name(主机名称)不可为空")
	}
	if r.Username == "" || r.Password == "" {
		return fmt.Errorf("username/password(登录凭据)不可为空")
	}
	if net.ParseIP(r.IP) == nil {
		return fmt.Errorf("ip(主机地址)不合法: %s", r.IP)
	}
	if r.ParentIP != "" && net.ParseIP(r.ParentIP) == nil {
		return fmt.Errorf("parentIp(宿主机地址)不合法: %s", r.ParentIP)
	}
	if r.SSHPort < 22 || r.SSHPort > 65535 {
		return fmt.Errorf("sshPort(SSH端口)必须在 22~65535 之间")
	}
	return nil
}

type RequestHostUpdate struct {
	UUID     string `json:"uuid" form:"uuid"`
	Name     string `json:"name" form:"name"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	SSHPort  int    `json:"sshPort" form:"sshPort"`
	Type     int    `json:"type" form:"type"`
	Project  string `json:"project" form:"project"`
	IDC      string `json:"idc" form:"idc"`
	// ip/parentIp/bandwidth 不允许通过本接口修改，带值直接拒绝
	IP        string `json:"ip" form:"ip"`
	ParentIP  string `json:"parentIp" form:"parentIp"`
	Bandwidth int    `json:"bandwidth" form:"bandwidth"`
}

type RequestHostQuery struct {
	UUID    string `json:"uuid" form:"uuid"`
	Query   string `json:"query" form:"query"`
	Project string `json:"project" form:"project"`
	IDC     string `json:"idc" form:"idc"`
	models.Page
}

// ResponseHostDetail 主机详情，带外键资源
type ResponseHostDetail struct {
	models.Host
	IPs   []models.IP   `json:"ips"`
	Disks []models.Disk `json:"disks"`
}

type ResponseHostList struct {
	List  []models.Host `json:"list"`
	Total int64         `json:"total"`
}
