package services

import (
	"cmdb/internal/ctx"
	"cmdb/internal/models"
	"cmdb/internal/types"
	"cmdb/pkg/tools"
)

type metricService struct {
	ctx *ctx.Context
}

type InterMetricService interface {
	Create(req *types.RequestMetricCreate) (models.Metric, error)
	Update(req *types.RequestMetricUpdate) error
	Delete(uuid string) error
	List(req *types.RequestMetricQuery) (types.ResponseMetricList, error)
}

func newInterMetricService(ctx *ctx.Context) InterMetricService {
	return &metricService{
		ctx: ctx,
	}
}

func (s *metricService) Create(req *types.RequestMetricCreate) (models.Metric, error) {
	metric := models.Metric{
		ManagedBase: models.ManagedBase{
			ResourceBase: models.ResourceBase{UUID: tools.GenerateUUID()},
		},
		Name:    req.Name,
		Type:    req.Type,
		Comment: req.Comment,
	}
	if err := s.ctx.DB.Metric().Create(metric); err != nil {
		return models.Metric{}, err
	}
	return metric, nil
}

func (s *metricService) Update(req *types.RequestMetricUpdate) error {
	metric, err := s.ctx.DB.Metric().Get(req.UUID)
	if err != nil {
		return err
	}
	if req.Name != "" {
		metric.Name = req.Name
	}
	metric.Type = req.Type
	if req.Comment != "" {
		metric.Comment = req.Comment
	}
	return s.ctx.DB.Metric().Update(metric)
}

func (s *metricService) Delete(uuid string) error {
	return s.ctx.DB.Metric().Delete(uuid)
}

func (s *metricService) List(req *types.RequestMetricQuery) (types.ResponseMetricList, error) {
	list, total, err := s.ctx.DB.Metric().List(req.Query, req.Page)
	if err != nil {
		return types.ResponseMetricList{}, err
	}
	return types.ResponseMetricList{List: list, Total: total}, nil
}
