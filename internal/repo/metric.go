package repo

import (
	"cmdb/internal/models"

	"gorm.io/gorm"
)

type (
	MetricRepo struct {
		entryRepo
	}

	InterMetricRepo interface {
		Get(uuid string) (models.Metric, error)
		List(query string, page models.Page) ([]models.Metric, int64, error)
		ListAll() ([]models.Metric, error)
		Create(metric models.Metric) error
		Update(metric models.Metric) error
		Delete(uuid string) error
	}
)

func newMetricInterface(db *gorm.DB, g InterGormDBCli) InterMetricRepo {
	return &MetricRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (m MetricRepo) Get(uuid string) (models.Metric, error) {
	var metric models.Metric
	err := m.DB().Model(&models.Metric{}).Where("uuid = ?", uuid).First(&metric).Error
	return metric, err
}

func (m MetricRepo) List(query string, page models.Page) ([]models.Metric, int64, error) {
	var data []models.Metric
	var count int64

	db := m.DB().Model(&models.Metric{})
	if query != "" {
		db = db.Where("name LIKE ? OR comment LIKE ?", "%"+query+"%", "%"+query+"%")
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

func (m MetricRepo) ListAll() ([]models.Metric, error) {
	var data []models.Metric
	err := m.DB().Model(&models.Metric{}).Find(&data).Error
	return data, err
}

func (m MetricRepo) Create(metric models.Metric) error {
	err := m.g.Create(&models.Metric{}, &metric)
	if err != nil && IsDuplicateKey(err) {
		return &DuplicateResourceError{Resource: "metric", Key: metric.Name, Err: err}
	}
	return err
}

func (m MetricRepo) Update(metric models.Metric) error {
	return m.DB().Model(&models.Metric{}).Where("uuid = ?", metric.UUID).Updates(&metric).Error
}

func (m MetricRepo) Delete(uuid string) error {
	return m.g.Delete(Delete{
		Table: &models.Metric{},
		Where: map[string]interface{}{"uuid = ?": uuid},
	})
}
