package services

import (
	"errors"
	"fmt"

	"cmdb/internal/ctx"
	"cmdb/internal/models"
	"cmdb/internal/types"
	"cmdb/pkg/tools"

	"gorm.io/gorm"
)

type ipService struct {
	ctx *ctx.Context
}

type InterIPService interface {
	// Create 手工登记IP，类型按地址推导；parent/host 需指向已存在的资源
	Create(req *types.RequestIPCreate) (models.IP, error)
	Update(req *types.RequestIPUpdate) error
	Delete(uuid string) error
	List(req *types.RequestIPQuery) (types.ResponseIPList, error)
}

func newInterIPService(ctx *ctx.Context) InterIPService {
	return &ipService{
		ctx: ctx,
	}
}

func (s *ipService) Create(req *types.RequestIPCreate) (models.IP, error) {
	if req.Parent != "" {
		if _, err := s.ctx.DB.IP().GetByAddress(req.Parent); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.IP{}, fmt.Errorf("宿主机IP不存在: %s", req.Parent)
			}
			return models.IP{}, err
		}
	}
	if req.Host != "" {
		if _, err := s.ctx.DB.Host().Get(req.Host); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.IP{}, fmt.Errorf("主机不存在: %s", req.Host)
			}
			return models.IP{}, err
		}
	}

	ipType := models.IPTypePublic
	if tools.IsPrivateAddress(req.Address) {
		ipType = models.IPTypePrivate
	}

	status := models.StatusFree
	if req.Host != "" {
		status = models.StatusBound
	}

	ip := models.IP{
		ResourceBase: models.ResourceBase{UUID: tools.GenerateUUID()},
		Address:      req.Address,
		Type:         ipType,
		Bandwidth:    req.Bandwidth,
		Status:       status,
		UsedToSync:   req.UsedToSync,
		IDC:          req.IDC,
		Parent:       req.Parent,
		Host:         req.Host,
	}

	// 同一主机至多一条同步地址，新标记顶掉旧标记
	if req.UsedToSync && req.Host != "" {
		if err := s.ctx.DB.IP().ClearSyncFlag(req.Host); err != nil {
			return models.IP{}, err
		}
	}

	if err := s.ctx.DB.IP().Create(ip); err != nil {
		return models.IP{}, err
	}
	return ip, nil
}

func (s *ipService) Update(req *types.RequestIPUpdate) error {
	ip, err := s.ctx.DB.IP().Get(req.UUID)
	if err != nil {
		return err
	}

	if req.UsedToSync && !ip.UsedToSync && ip.Host != "" {
		if err := s.ctx.DB.IP().ClearSyncFlag(ip.Host); err != nil {
			return err
		}
	}

	ip.Bandwidth = req.Bandwidth
	ip.UsedToSync = req.UsedToSync
	if req.IDC != "" {
		ip.IDC = req.IDC
	}
	return s.ctx.DB.IP().Update(ip)
}

func (s *ipService) Delete(uuid string) error {
	return s.ctx.DB.IP().Delete(uuid)
}

func (s *ipService) List(req *types.RequestIPQuery) (types.ResponseIPList, error) {
	list, total, err := s.ctx.DB.IP().List(req.Query, req.IDC, req.Host, req.Page)
	if err != nil {
		return types.ResponseIPList{}, err
	}
	return types.ResponseIPList{List: list, Total: total}, nil
}
