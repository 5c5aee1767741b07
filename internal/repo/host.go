package repo

import (
	"cmdb/internal/models"

	"gorm.io/gorm"
)

type (
	HostRepo struct {
		entryRepo
	}

	InterHostRepo interface {
		Get(uuid string) (models.Host, error)
		List(query, project, idc string, page models.Page) ([]models.Host, int64, error)
		Create(host models.Host) error
		Update(host models.Host) error
		Delete(uuid string) error
		CountByProject(project string) (int64, error)
		CountByIDC(idc string) (int64, error)
	}
)

func newHostInterface(db *gorm.DB, g InterGormDBCli) InterHostRepo {
	return &HostRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (h HostRepo) Get(uuid string) (models.Host, error) {
	var host models.Host
	err := h.DB().Model(&models.Host{}).Where("uuid = ?", uuid).First(&host).Error
	return host, err
}

func (h HostRepo) List(query, project, idc string, page models.Page) ([]models.Host, int64, error) {
	var data []models.Host
	var count int64

	db := h.DB().Model(&models.Host{})
	if query != "" {
		db = db.Where("name LIKE ? OR os LIKE ? OR model LIKE ?", "%"+query+"%", "%"+query+"%", "%"+query+"%")
	}
	if project != "" {
		db = db.Where("project = ?", project)
	}
	if idc != "" {
		db = db.Where("idc = ?", idc)
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

func (h HostRepo) Create(host models.Host) error {
	err := h.g.Create(&models.Host{}, &host)
	if err != nil && IsDuplicateKey(err) {
		return &DuplicateResourceError{Resource: "host", Key: host.Name, Err: err}
	}
	return err
}

func (h HostRepo) Update(host models.Host) error {
	return h.DB().Model(&models.Host{}).Where("uuid = ?", host.UUID).Updates(&host).Error
}

func (h HostRepo) Delete(uuid string) error {
	return h.g.Delete(Delete{
		Table: &models.Host{},
		Where: map[string]interface{}{"uuid = ?": uuid},
	})
}

func (h HostRepo) CountByProject(project string) (int64, error) {
	var count int64
	err := h.DB().Model(&models.Host{}).Where("project = ?", project).Count(&count).Error
	return count, err
}

func (h HostRepo) CountByIDC(idc string) (int64, error) {
	var count int64
	err := h.DB().Model(&models.Host{}).Where("idc = ?", idc).Count(&count).Error
	return count, err
}
