package services

import (
	"cmdb/internal/ctx"
	"cmdb/internal/models"
	"cmdb/internal/types"
	"cmdb/pkg/tools"
)

type projectService struct {
	ctx *ctx.Context
}

type InterProjectService interface {
	Create(req *types.RequestProjectCreate) (models.Project, error)
	Update(req *types.RequestProjectUpdate) error
	// Delete 删除项目，仍有主机归属时返回 ReferentialIntegrityError
	Delete(uuid string) error
	List(req *types.RequestProjectQuery) (types.ResponseProjectList, error)
}

func newInterProjectService(ctx *ctx.Context) InterProjectService {
	return &projectService{
		ctx: ctx,
	}
}

func (s *projectService) Create(req *types.RequestProjectCreate) (models.Project, error) {
	project := models.Project{
		ResourceBase: models.ResourceBase{UUID: tools.GenerateUUID()},
		Name:         req.Name,
		Comment:      req.Comment,
		Enabled:      req.Enabled,
	}
	if err := s.ctx.DB.Project().Create(project); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

func (s *projectService) Update(req *types.RequestProjectUpdate) error {
	project, err := s.ctx.DB.Project().Get(req.UUID)
	if err != nil {
		return err
	}
	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Comment != "" {
		project.Comment = req.Comment
	}
	if req.Enabled != nil {
		project.Enabled = req.Enabled
	}
	return s.ctx.DB.Project().Update(project)
}

func (s *projectService) Delete(uuid string) error {
	return s.ctx.DB.Project().Delete(uuid)
}

func (s *projectService) List(req *types.RequestProjectQuery) (types.ResponseProjectList, error) {
	list, total, err := s.ctx.DB.Project().List(req.Query, req.Page)
	if err != nil {
		return types.ResponseProjectList{}, err
	}
	return types.ResponseProjectList{List: list, Total: total}, nil
}
