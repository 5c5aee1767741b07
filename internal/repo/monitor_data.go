package repo

import (
	"time"

	"cmdb/internal/models"

	"gorm.io/gorm"
)

type (
	MonitorDataRepo struct {
		entryRepo
	}

	InterMonitorDataRepo interface {
		List(instance, metric string, start, end time.Time, page models.Page) ([]models.MonitorData, int64, error)
		BulkCreate(points []models.MonitorData) error
		Latest(instance, metric string) (models.MonitorData, error)
	}
)

func newMonitorDataInterface(db *gorm.DB, g InterGormDBCli) InterMonitorDataRepo {
	return &MonitorDataRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (m MonitorDataRepo) List(instance, metric string, start, end time.Time, page models.Page) ([]models.MonitorData, int64, error) {
	var data []models.MonitorData
	var count int64

	db := m.DB().Model(&models.MonitorData{})
	if instance != "" {
		db = db.Where("instance = ?", instance)
	}
	if metric != "" {
		db = db.Where("metric = ?", metric)
	}
	if !start.IsZero() {
		db = db.Where("time >= ?", start)
	}
	if !end.IsZero() {
		db = db.Where("time <= ?", end)
	}

	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("time desc")
	if page.Size > 0 {
		db = db.Limit(int(page.Size)).Offset(int((page.Index - 1) * page.Size))
	}
	if err := db.Find(&data).Error; err != nil {
		return nil, 0, err
	}
	return data, count, nil
}

// BulkCreate 单条语句批量写入采样点，整批要么全部落库要么全部失败；
// 与已有行撞唯一键（同 instance/metric/extra_flag/time 的重放）跳过不报错
func (m MonitorDataRepo) BulkCreate(points []models.MonitorData) error {
	if len(points) == 0 {
		return nil
	}
	return m.g.BatchCreate(&models.MonitorData{}, &points)
}

func (m MonitorDataRepo) Latest(instance, metric string) (models.MonitorData, error) {
	var point models.MonitorData
	err := m.DB().Model(&models.MonitorData{}).
		Where("instance = ? AND metric = ?", instance, metric).
		Order("time desc").
		First(&point).Error
	return point, err
}
