package repo

import "gorm.io/gorm"

type entryRepo struct {
	g  InterGormDBCli
	db *gorm.DB
}

func (e entryRepo) DB() *gorm.DB {
	return e.db
}

// Entry 数据访问入口，业务层只依赖该接口以便测试替换
type Entry interface {
	Host() InterHostRepo
	Disk() InterDiskRepo
	IP() InterIPRepo
	Metric() InterMetricRepo
	MonitorData() InterMonitorDataRepo
	Project() InterProjectRepo
	IDC() InterIDCRepo
	// Tx 在单个数据库事务内执行 fn，fn 中通过传入的 Entry 访问数据
	Tx(fn func(tx Entry) error) error
}

type repoEntry struct {
	db *gorm.DB
	g  InterGormDBCli
}

// NewRepoEntry 创建数据访问入口
func NewRepoEntry(db *gorm.DB) Entry {
	return &repoEntry{
		db: db,
		g:  NewInterGormDBCli(db),
	}
}

func (r *repoEntry) Host() InterHostRepo {
	return newHostInterface(r.db, r.g)
}

func (r *repoEntry) Disk() InterDiskRepo {
	return newDiskInterface(r.db, r.g)
}

func (r *repoEntry) IP() InterIPRepo {
	return newIPInterface(r.db, r.g)
}

func (r *repoEntry) Metric() InterMetricRepo {
	return newMetricInterface(r.db, r.g)
}

func (r *repoEntry) MonitorData() InterMonitorDataRepo {
	return newMonitorDataInterface(r.db, r.g)
}

func (r *repoEntry) Project() InterProjectRepo {
	return newProjectInterface(r.db, r.g)
}

func (r *repoEntry) IDC() InterIDCRepo {
	return newIDCInterface(r.db, r.g)
}

func (r *repoEntry) Tx(fn func(tx Entry) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&repoEntry{db: tx, g: newTxGormDBCli(tx)})
	})
}
