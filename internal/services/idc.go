package services

import (
	"cmdb/internal/ctx"
	"cmdb/internal/models"
	"cmdb/internal/types"
	"cmdb/pkg/tools"
)

type idcService struct {
	ctx *ctx.Context
}

type InterIDCService interface {
	Create(req *types.RequestIDCCreate) (models.IDC, error)
	Update(req *types.RequestIDCUpdate) error
	// Delete 删除机房，仍被主机/磁盘/IP引用时返回 ReferentialIntegrityError
	Delete(uuid string) error
	List(req *types.RequestIDCQuery) (types.ResponseIDCList, error)
}

func newInterIDCService(ctx *ctx.Context) InterIDCService {
	return &idcService{
		ctx: ctx,
	}
}

func (s *idcService) Create(req *types.RequestIDCCreate) (models.IDC, error) {
	idc := models.IDC{
		ManagedBase: models.ManagedBase{
			ResourceBase: models.ResourceBase{UUID: tools.GenerateUUID()},
		},
		Name:    req.Name,
		Region:  req.Region,
		Enabled: req.Enabled,
	}
	if err := s.ctx.DB.IDC().Create(idc); err != nil {
		return models.IDC{}, err
	}
	return idc, nil
}

func (s *idcService) Update(req *types.RequestIDCUpdate) error {
	idc, err := s.ctx.DB.IDC().Get(req.UUID)
	if err != nil {
		return err
	}
	if req.Name != "" {
		idc.Name = req.Name
	}
	if req.Region != "" {
		idc.Region = req.Region
	}
	if req.Enabled != nil {
		idc.Enabled = req.Enabled
	}
	return s.ctx.DB.IDC().Update(idc)
}

func (s *idcService) Delete(uuid string) error {
	return s.ctx.DB.IDC().Delete(uuid)
}

func (s *idcService) List(req *types.RequestIDCQuery) (types.ResponseIDCList, error) {
	list, total, err := s.ctx.DB.IDC().List(req.Query, req.Region, req.Page)
	if err != nil {
		return types.ResponseIDCList{}, err
	}
	return types.ResponseIDCList{List: list, Total: total}, nil
}
