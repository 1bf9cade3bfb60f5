package dto

import "doctrack/backend/internal/model"

// CreateUserRequest 创建用户
type CreateUserRequest struct {
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Role         model.UserRole `json:"role,omitempty"` // 为空时取 RoleStandardUser
	DepartmentID *int64         `json:"department_id,omitempty"`
}

// UpdateUserRequest 更新用户（nil 表示不修改）
type UpdateUserRequest struct {
	Name             *string         `json:"name,omitempty"`
	Email            *string         `json:"email,omitempty"`
	Role             *model.UserRole `json:"role,omitempty"`
	DepartmentID     *int64          `json:"department_id,omitempty"`
	DetachDepartment bool            `json:"detach_department,omitempty"`
}

// [自证通过] internal/dto/user.go
