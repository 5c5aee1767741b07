package repo

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// DuplicateResourceError 资源唯一性冲突
// 同步IP复活路径会把该错误当作"已存在，复用"处理，其余场景按硬错误上抛
type DuplicateResourceError struct {
	Resource string
	Key      string
	Err      error
}

func (e *DuplicateResourceError) Error() string {
	return fmt.Sprintf("资源已存在, %s: %s, err: %v", e.Resource, e.Key, e.Err)
}

func (e *DuplicateResourceError) Unwrap() error {
	return e.Err
}

// ReferentialIntegrityError 资源仍被引用，拒绝删除
type ReferentialIntegrityError struct {
	Resource string
	UUID     string
	Refs     string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s: %s 仍被以下资源引用, 解绑后才能删除: %s", e.Resource, e.UUID, e.Refs)
}

const mysqlDuplicateEntry = 1062

// IsDuplicateKey 判断错误是否为唯一键冲突
// 并发创建共享磁盘时依赖 Disk.uuid 唯一约束兜底，冲突按良性重复处理
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return false
}
