package repo

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormDBCli struct {
	db *gorm.DB
	// inTx 标记 db 已处于事务中，写操作直接在外层事务内执行
	inTx bool
}

type InterGormDBCli interface {
	Create(table, value interface{}) error
	BatchCreate(table, value interface{}) error
	Update(value Update) error
	Updates(value Updates) error
	Delete(value Delete) error
}

func NewInterGormDBCli(db *gorm.DB) InterGormDBCli {
	return &GormDBCli{
		db: db,
	}
}

// newTxGormDBCli 包装事务内的连接句柄，供 Entry.Tx 使用
func newTxGormDBCli(tx *gorm.DB) InterGormDBCli {
	return &GormDBCli{
		db:   tx,
		inTx: true,
	}
}

// Create 插入数据
func (g GormDBCli) Create(table, value interface{}) error {
	return g.executeTransaction(func(tx *gorm.DB) error {
		return tx.Model(table).Create(value).Error
	}, "数据写入失败")
}

// BatchCreate 单条语句批量插入，唯一键冲突的行跳过不报错
func (g GormDBCli) BatchCreate(table, value interface{}) error {
	return g.executeTransaction(func(tx *gorm.DB) error {
		return tx.Model(table).Clauses(clause.OnConflict{DoNothing: true}).Create(value).Error
	}, "数据批量写入失败")
}

// Update 更新单条数据
func (g GormDBCli) Update(value Update) error {
	return g.executeTransaction(func(tx *gorm.DB) error {
		tx = tx.Model(value.Table)
		for column, val := range value.Where {
			tx = tx.Where(column, val)
		}
		return tx.Updates(value.Update).Error
	}, "数据更新失败")
}

// Updates 更新多条数据
func (g GormDBCli) Updates(value Updates) error {
	return g.executeTransaction(func(tx *gorm.DB) error {
		tx = tx.Model(value.Table)
		for column, val := range value.Where {
			tx = tx.Where(column, val)
		}
		return tx.Updates(value.Updates).Error
	}, "数据更新失败")
}

// Delete 删除数据
func (g GormDBCli) Delete(value Delete) error {
	return g.executeTransaction(func(tx *gorm.DB) error {
		for column, val := range value.Where {
			tx = tx.Where(column, val)
		}
		return tx.Delete(value.Table).Error
	}, "数据删除失败")
}

// executeTransaction 执行事务并处理错误
// 已在事务内时不再 Begin（对 *sql.Tx 重复 Begin 会得到 ErrInvalidTransaction），
// 提交与回滚交给外层事务统一处理
func (g GormDBCli) executeTransaction(operation func(tx *gorm.DB) error, errorMessage string) error {
	if g.inTx {
		if err := operation(g.db); err != nil {
			return fmt.Errorf("%s -> %w", errorMessage, err)
		}
		return nil
	}

	tx := g.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("事务启动失败, err: %s", tx.Error)
	}

	if err := operation(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("%s -> %w", errorMessage, err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("事务提交失败, err: %s", err)
	}

	return nil
}

// Update 定义更新单条数据的结构
type Update struct {
	Table  interface{}
	Where  map[string]interface{}
	Update map[string]interface{}
}

// Updates 定义更新多条数据的结构
type Updates struct {
	Table   interface{}
	Where   map[string]interface{}
	Updates interface{}
}

// Delete 定义删除数据的结构
type Delete struct {
	Table interface{}
	Where map[string]interface{}
}
