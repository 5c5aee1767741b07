package repo

import (
	"fmt"
	"strings"

	"cmdb/internal/models"

	"gorm.io/gorm"
)

type (
	IDCRepo struct {
		entryRepo
	}

	InterIDCRepo interface {
		Get(uuid string) (models.IDC, error)
		GetByName(name string) (models.IDC, error)
		List(query, region string, page models.Page) ([]models.IDC, int64, error)
		Create(idc models.IDC) error
		Update(idc models.IDC) error
		Delete(uuid string) error
	}
)

func newIDCInterface(db *gorm.DB, g InterGormDBCli) InterIDCRepo {
	return &IDCRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (i IDCRepo) Get(uuid string) (models.IDC, error) {
	var idc models.IDC
	err := i.DB().Model(&models.IDC{}).Where("uuid = ?", uuid).First(&idc).Error
	return idc, err
}

func (i IDCRepo) GetByName(name string) (models.IDC, error) {
	var idc models.IDC
	err := i.DB().Model(&models.IDC{}).Where("name = ?", name).First(&idc).Error
	return idc, err
}

func (i IDCRepo) List(query, region string, page models.Page) ([]models.IDC, int64, error) {
	var data []models.IDC
	var count int64

	db := i.DB().Model(&models.IDC{})
	if query != "" {
		db = db.Where("name LIKE ?", "%"+query+"%")
	}
	if region != "" {
		db = db.Where("region = ?", region)
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

func (i IDCRepo) Create(idc models.IDC) error {
	err := i.g.Create(&models.IDC{}, &idc)
	if err != nil && IsDuplicateKey(err) {
		return &DuplicateResourceError{Resource: "idc", Key: idc.Name, Err: err}
	}
	return err
}

func (i IDCRepo) Update(idc models.IDC) error {
	return i.DB().Model(&models.IDC{}).Where("uuid = ?", idc.UUID).Updates(&idc).Error
}

// Delete 删除机房，仍有主机/磁盘/IP 引用时拒绝
func (i IDCRepo) Delete(uuid string) error {
	checks := []struct {
		name  string
		table interface{}
	}{
		{"host", &models.Host{}},
		{"disk", &models.Disk{}},
		{"ip", &models.IP{}},
	}
	var refs []string
	for _, c := range checks {
		var count int64
		if err := i.DB().Model(c.table).Where("idc = ?", uuid).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			refs = append(refs, fmt.Sprintf("%s(%d)", c.name, count))
		}
	}
	if len(refs) > 0 {
		return &ReferentialIntegrityError{Resource: "idc", UUID: uuid, Refs: strings.Join(refs, ", ")}
	}
	return i.g.Delete(Delete{
		Table: &models.IDC{},
		Where: map[string]interface{}{"uuid = ?": uuid},
	})
}
