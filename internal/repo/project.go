package repo

import (
	"fmt"

	"cmdb/internal/models"

	"gorm.io/gorm"
)

type (
	ProjectRepo struct {
		entryRepo
	}

	InterProjectRepo interface {
		Get(uuid string) (models.Project, error)
		GetByName(name string) (models.Project, error)
		List(query string, page models.Page) ([]models.Project, int64, error)
		Create(project models.Project) error
		Update(project models.Project) error
		Delete(uuid string) error
	}
)

func newProjectInterface(db *gorm.DB, g InterGormDBCli) InterProjectRepo {
	return &ProjectRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (p ProjectRepo) Get(uuid string) (models.Project, error) {
	var project models.Project
	err := p.DB().Model(&models.Project{}).Where("uuid = ?", uuid).First(&project).Error
	return project, err
}

func (p ProjectRepo) GetByName(name string) (models.Project, error) {
	var project models.Project
	err := p.DB().Model(&models.Project{}).Where("name = ?", name).First(&project).Error
	return project, err
}

func (p ProjectRepo) List(query string, page models.Page) ([]models.Project, int64, error) {
	var data []models.Project
	var count int64

	db := p.DB().Model(&models.Project{})
	if query != "" {
		db = db.Where("name LIKE ?", "%"+query+"%")
	}

	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("created_at desc")
	if page.Size > 0 {
		db = db.Limit(int(page.Size)).Offset(int((page.Index - 1) * page.Size))
	}
	if err := db.Find(&data).Error; err != nil {
		return nil, 0, err
	}
	return data, count, nil
}

func (p ProjectRepo) Create(project models.Project) error {
	err := p.g.Create(&models.Project{}, &project)
	if err != nil && IsDuplicateKey(err) {
		return &DuplicateResourceError{Resource: "project", Key: project.Name, Err: err}
	}
	return err
}

func (p ProjectRepo) Update(project models.Project) error {
	return p.DB().Model(&models.Project{}).Where("uuid = ?", project.UUID).Updates(&project).Error
}

// Delete 删除项目，仍有主机归属时拒绝
func (p ProjectRepo) Delete(uuid string) error {
	var count int64
	if err := p.DB().Model(&models.Host{}).Where("project = ?", uuid).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &ReferentialIntegrityError{Resource: "project", UUID: uuid, Refs: fmt.Sprintf("host(%d)", count)}
	}
	return p.g.Delete(Delete{
		Table: &models.Project{},
		Where: map[string]interface{}{"uuid = ?": uuid},
	})
}
