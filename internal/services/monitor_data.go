package services

import (
	"fmt"
	"time"

	"cmdb/internal/ctx"
	"cmdb/internal/types"
)

type monitorDataService struct {
	ctx *ctx.Context
}

type InterMonitorDataService interface {
	List(req *types.RequestMonitorDataQuery) (types.ResponseMonitorDataList, error)
}

func newInterMonitorDataService(ctx *ctx.Context) InterMonitorDataService {
	return &monitorDataService{
		ctx: ctx,
	}
}

func (s *monitorDataService) List(req *types.RequestMonitorDataQuery) (types.ResponseMonitorDataList, error) {
	var start, end time.Time
	var err error
	if req.Start != "" {
		if start, err = time.Parse(time.RFC3339, req.Start); err != nil {
			return types.ResponseMonitorDataList{}, fmt.Errorf("start(起始时间)不合法: %s", req.Start)
		}
	}
	if req.End != "" {
		if end, err = time.Parse(time.RFC3339, req.End); err != nil {
			return types.ResponseMonitorDataList{}, fmt.Errorf("end(结束时间)不合法: %s", req.End)
		}
	}

	list, total, err := s.ctx.DB.MonitorData().List(req.Instance, req.Metric, start, end, req.Page)
	if err != nil {
		return types.ResponseMonitorDataList{}, err
	}
	return types.ResponseMonitorDataList{List: list, Total: total}, nil
}
