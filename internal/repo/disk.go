package repo

import (
	"errors"

	"cmdb/internal/models"
	"cmdb/pkg/tools"

	"gorm.io/gorm"
)

type (
	DiskRepo struct {
		entryRepo
	}

	InterDiskRepo interface {
		Get(uuid string) (models.Disk, error)
		List(query, idc string, page models.Page) ([]models.Disk, int64, error)
		Create(disk models.Disk) error
		Upsert(disk models.Disk) error
		Update(disk models.Disk) error
		Delete(uuid string) error
		AttachHost(diskID, hostID string) error
		DetachByHost(hostID string) error
		DiskIDsByHost(hostID string) ([]string, error)
		HostIDsByDisk(diskID string) ([]string, error)
		FreeOrphans(diskIDs []string) error
		CountByIDC(idc string) (int64, error)
	}
)

func newDiskInterface(db *gorm.DB, g InterGormDBCli) InterDiskRepo {
	return &DiskRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (d DiskRepo) Get(uuid string) (models.Disk, error) {
	var disk models.Disk
	err := d.DB().Model(&models.Disk{}).Where("uuid = ?", uuid).First(&disk).Error
	return disk, err
}

func (d DiskRepo) List(query, idc string, page models.Page) ([]models.Disk, int64, error) {
	var data []models.Disk
	var count int64

	db := d.DB().Model(&models.Disk{})
	if query != "" {
		db = db.Where("`partition` LIKE ?", "%"+query+"%")
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

func (d DiskRepo) Create(disk models.Disk) error {
	err := d.g.Create(&models.Disk{}, &disk)
	if err != nil && IsDuplicateKey(err) {
		return &DuplicateResourceError{Resource: "disk", Key: disk.UUID, Err: err}
	}
	return err
}

// Upsert 按uuid幂等写入磁盘记录，已存在则刷新容量与状态
func (d DiskRepo) Upsert(disk models.Disk) error {
	var existing models.Disk
	err := d.DB().Model(&models.Disk{}).Where("uuid = ?", disk.UUID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return d.Create(disk)
	}
	if err != nil {
		return err
	}
	return d.g.Update(Update{
		Table: &models.Disk{},
		Where: map[string]interface{}{"uuid = ?": disk.UUID},
		Update: map[string]interface{}{
			"partition": disk.Partition,
			"size":      disk.Size,
			"status":    disk.Status,
			"idc":       disk.IDC,
		},
	})
}

func (d DiskRepo) Update(disk models.Disk) error {
	return d.DB().Model(&models.Disk{}).Where("uuid = ?", disk.UUID).Updates(&disk).Error
}

func (d DiskRepo) Delete(uuid string) error {
	if err := d.g.Delete(Delete{
		Table: &models.DiskHost{},
		Where: map[string]interface{}{"disk_id = ?": uuid},
	}); err != nil {
		return err
	}
	return d.g.Delete(Delete{
		Table: &models.Disk{},
		Where: map[string]interface{}{"uuid = ?": uuid},
	})
}

// AttachHost 建立磁盘与主机的关联，重复挂载视为成功
func (d DiskRepo) AttachHost(diskID, hostID string) error {
	err := d.g.Create(&models.DiskHost{}, &models.DiskHost{
		ResourceBase: models.ResourceBase{UUID: tools.GenerateUUID()},
		DiskID:       diskID,
		HostID:       hostID,
	})
	if err != nil && IsDuplicateKey(err) {
		return nil
	}
	return err
}

func (d DiskRepo) DetachByHost(hostID string) error {
	return d.g.Delete(Delete{
		Table: &models.DiskHost{},
		Where: map[string]interface{}{"host_id = ?": hostID},
	})
}

func (d DiskRepo) DiskIDsByHost(hostID string) ([]string, error) {
	var ids []string
	err := d.DB().Model(&models.DiskHost{}).Where("host_id = ?", hostID).Pluck("disk_id", &ids).Error
	return ids, err
}

func (d DiskRepo) HostIDsByDisk(diskID string) ([]string, error) {
	var ids []string
	err := d.DB().Model(&models.DiskHost{}).Where("disk_id = ?", diskID).Pluck("host_id", &ids).Error
	return ids, err
}

// FreeOrphans 把不再挂载到任何主机的磁盘置为空闲
func (d DiskRepo) FreeOrphans(diskIDs []string) error {
	for _, diskID := range diskIDs {
		var count int64
		if err := d.DB().Model(&models.DiskHost{}).Where("disk_id = ?", diskID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		err := d.g.Update(Update{
			Table:  &models.Disk{},
			Where:  map[string]interface{}{"uuid = ?": diskID},
			Update: map[string]interface{}{"status": models.StatusFree},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (d DiskRepo) CountByIDC(idc string) (int64, error) {
	var count int64
	err := d.DB().Model(&models.Disk{}).Where("idc = ?", idc).Count(&count).Error
	return count, err
}
