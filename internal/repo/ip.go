package repo

import (
	"errors"

	"cmdb/internal/models"

	"gorm.io/gorm"
)

type (
	IPRepo struct {
		entryRepo
	}

	InterIPRepo interface {
		Get(uuid string) (models.IP, error)
		GetByAddress(address string) (models.IP, error)
		List(query, idc, host string, page models.Page) ([]models.IP, int64, error)
		ListByHost(hostID string) ([]models.IP, error)
		ListSyncIPs() ([]models.IP, error)
		FindReusable(address string) (models.IP, bool, error)
		Create(ip models.IP) error
		Update(ip models.IP) error
		Delete(uuid string) error
		DetachByHost(hostID string) error
		ClearSyncFlag(hostID string) error
		CountByIDC(idc string) (int64, error)
	}
)

func newIPInterface(db *gorm.DB, g InterGormDBCli) InterIPRepo {
	return &IPRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (i IPRepo) Get(uuid string) (models.IP, error) {
	var ip models.IP
	err := i.DB().Model(&models.IP{}).Where("uuid = ?", uuid).First(&ip).Error
	return ip, err
}

func (i IPRepo) GetByAddress(address string) (models.IP, error) {
	var ip models.IP
	err := i.DB().Model(&models.IP{}).Where("address = ?", address).First(&ip).Error
	return ip, err
}

func (i IPRepo) List(query, idc, host string, page models.Page) ([]models.IP, int64, error) {
	var data []models.IP
	var count int64

	db := i.DB().Model(&models.IP{})
	if query != "" {
		db = db.Where("address LIKE ?", "%"+query+"%")
	}
	if idc != "" {
		db = db.Where("idc = ?", idc)
	}
	if host != "" {
		db = db.Where("host = ?", host)
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

func (i IPRepo) ListByHost(hostID string) ([]models.IP, error) {
	var data []models.IP
	err := i.DB().Model(&models.IP{}).Where("host = ?", hostID).Order("id asc").Find(&data).Error
	return data, err
}

// ListSyncIPs 列出所有用于监控同步的在绑地址
func (i IPRepo) ListSyncIPs() ([]models.IP, error) {
	var data []models.IP
	err := i.DB().Model(&models.IP{}).
		Where("used_to_sync = ? AND status = ?", true, models.StatusBound).
		Find(&data).Error
	return data, err
}

// FindReusable 查找同地址的空闲外网IP，存在则复用而不是新建
func (i IPRepo) FindReusable(address string) (models.IP, bool, error) {
	var ip models.IP
	err := i.DB().Model(&models.IP{}).
		Where("address = ? AND status = ? AND type = ?",
			address, models.StatusFree, models.IPTypePublic).
		First(&ip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.IP{}, false, nil
	}
	if err != nil {
		return models.IP{}, false, err
	}
	return ip, true, nil
}

func (i IPRepo) Create(ip models.IP) error {
	err := i.g.Create(&models.IP{}, &ip)
	if err != nil && IsDuplicateKey(err) {
		return &DuplicateResourceError{Resource: "ip", Key: ip.Address, Err: err}
	}
	return err
}

func (i IPRepo) Update(ip models.IP) error {
	return i.DB().Model(&models.IP{}).Where("uuid = ?", ip.UUID).Updates(&ip).Error
}

func (i IPRepo) Delete(uuid string) error {
	return i.g.Delete(Delete{
		Table: &models.IP{},
		Where: map[string]interface{}{"uuid = ?": uuid},
	})
}

// DetachByHost 主机下线时解绑其全部地址
// 记录保留，置空闲并摘掉同步标记，外网地址后续建机时可按地址复用
func (i IPRepo) DetachByHost(hostID string) error {
	return i.g.Update(Update{
		Table: &models.IP{},
		Where: map[string]interface{}{"host = ?": hostID},
		Update: map[string]interface{}{
			"status":       models.StatusFree,
			"host":         "",
			"used_to_sync": false,
		},
	})
}

func (i IPRepo) ClearSyncFlag(hostID string) error {
	return i.g.Update(Update{
		Table: &models.IP{},
		Where: map[string]interface{}{
			"host = ?":         hostID,
			"used_to_sync = ?": true,
		},
		Update: map[string]interface{}{"used_to_sync": false},
	})
}

func (i IPRepo) CountByIDC(idc string) (int64, error) {
	var count int64
	err := i.DB().Model(&models.IP{}).Where("idc = ?", idc).Count(&count).Error
	return count, err
}
