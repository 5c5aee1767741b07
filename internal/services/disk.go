package services

import (
	"cmdb/internal/ctx"
	"cmdb/internal/types"
)

type diskService struct {
	ctx *ctx.Context
}

type InterDiskService interface {
	// 磁盘记录由纳管流程维护，对外只读
	Get(uuid string) (types.ResponseDiskDetail, error)
	List(req *types.RequestDiskQuery) (types.ResponseDiskList, error)
}

func newInterDiskService(ctx *ctx.Context) InterDiskService {
	return &diskService{
		ctx: ctx,
	}
}

func (s *diskService) Get(uuid string) (types.ResponseDiskDetail, error) {
	disk, err := s.ctx.DB.Disk().Get(uuid)
	if err != nil {
		return types.ResponseDiskDetail{}, err
	}
	hosts, err := s.ctx.DB.Disk().HostIDsByDisk(uuid)
	if err != nil {
		return types.ResponseDiskDetail{}, err
	}
	return types.ResponseDiskDetail{Disk: disk, Hosts: hosts}, nil
}

func (s *diskService) List(req *types.RequestDiskQuery) (types.ResponseDiskList, error) {
	list, total, err := s.ctx.DB.Disk().List(req.Query, req.IDC, req.Page)
	if err != nil {
		return types.ResponseDiskList{}, err
	}
	return types.ResponseDiskList{List: list, Total: total}, nil
}
